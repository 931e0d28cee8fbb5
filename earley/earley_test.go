package earley

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/earleybird/grammar"
)

// We use the expression grammar from
//
//     http://loup-vaillant.fr/tutorials/earley-parsing/recogniser
//
// for most of the tests. This way we will be able to follow the examples
// there.
//
//     Sum     -> Sum [+-] Product
//     Sum     -> Product
//     Product -> Product [*/] Factor
//     Product -> Factor
//     Factor  -> '(' Sum ')'
//     Factor  -> Number
//     Number  -> [0-9] Number
//     Number  -> [0-9]
//
func makeArith(t *testing.T) *grammar.Grammar {
	b := grammar.NewGrammarBuilder("Arith")
	b.LHS("Sum").N("Sum").OneOf("+-").N("Product").End()
	b.LHS("Sum").N("Product").End()
	b.LHS("Product").N("Product").OneOf("*/").N("Factor").End()
	b.LHS("Product").N("Factor").End()
	b.LHS("Factor").T('(').N("Sum").T(')').End()
	b.LHS("Factor").N("Number").End()
	b.LHS("Number").OneOf("0123456789").N("Number").End()
	b.LHS("Number").OneOf("0123456789").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func recognise(t *testing.T, g *grammar.Grammar, input string) bool {
	chart, err := NewParser(g).Parse(input)
	if err != nil {
		var noparse *NoParseError
		if !errors.As(err, &noparse) {
			t.Fatalf("unexpected parse error: %v", err)
		}
		return false
	}
	return chart.Accepts()
}

func TestStartSetSeeding(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earleybird.earley")
	defer teardown()
	//
	g := makeArith(t)
	chart, err := NewParser(g).Parse("1")
	if err != nil {
		t.Fatal(err)
	}
	S0 := chart.StateSet(0)
	vals := S0.Values()
	if len(vals) < 2 {
		t.Fatalf("S0 unexpectedly small: %v", vals)
	}
	// The first two items must be the two Sum-rules, origin 0, progress 0.
	for n, r := range g.RulesFor("Sum") {
		item := vals[n].(Item)
		if item.Rule() != r || item.Origin() != 0 || item.Complete() {
			t.Errorf("S0[%d] is not the seed item for %s: %s", n, r, item)
		}
	}
}

func TestRecogniseExpression(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earleybird.earley")
	defer teardown()
	//
	g := makeArith(t)
	inputs := []string{"1", "1+2", "1*2", "1+2*3", "1*(2+3)", "1+2+3+4", "1*2+3*4",
		"1+2+3-4+5*(6+7)/106"}
	for n, input := range inputs {
		if !recognise(t, g, input) {
			t.Errorf("valid input string #%d not accepted: %q", n+1, input)
		}
	}
}

func TestRejectTruncatedInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earleybird.earley")
	defer teardown()
	//
	g := makeArith(t)
	// "1+" scans fine to the end, so the chart completes, but no
	// accepting item shows up in the final set.
	chart, err := NewParser(g).Parse("1+")
	if err != nil {
		t.Fatalf("chart construction should finish for %q: %v", "1+", err)
	}
	if chart.Accepts() {
		t.Errorf("truncated input %q accepted", "1+")
	}
}

func TestRejectWithSuffix(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earleybird.earley")
	defer teardown()
	//
	g := makeArith(t)
	for _, tc := range []struct {
		input    string
		position int
		suffix   string
	}{
		{"1%2", 1, "%2"},
		{"+1", 0, "+1"},
	} {
		_, err := NewParser(g).Parse(tc.input)
		var noparse *NoParseError
		if !errors.As(err, &noparse) {
			t.Errorf("expected chart construction for %q to get stuck", tc.input)
			continue
		}
		if noparse.Position != tc.position || noparse.Suffix != tc.suffix {
			t.Errorf("expected to get stuck at %d with suffix %q, got %d/%q",
				tc.position, tc.suffix, noparse.Position, noparse.Suffix)
		}
	}
}

func TestEmptyGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earleybird.earley")
	defer teardown()
	//
	b := grammar.NewGrammarBuilder("Empty")
	b.LHS("Empty").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	// The single seed item is complete from the start, so it is also the
	// accepting item, and S0 holds nothing else.
	chart, err := NewParser(g).Parse("")
	if err != nil {
		t.Fatal(err)
	}
	if !chart.Accepts() {
		t.Errorf("empty input not accepted by grammar with epsilon start rule")
	}
	if chart.StateSet(0).Size() != 1 {
		t.Errorf("expected S0 = { Empty -> ● (0) }, got %v", chart.StateSet(0).Values())
	}
	if recognise(t, g, " ") {
		t.Errorf("non-empty input accepted by epsilon-only grammar")
	}
}

func TestNullableSuffix(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earleybird.earley")
	defer teardown()
	//
	// Rule -> 'R' 'u' 'l' 'e' Empty ; Empty -> ;
	// After scanning "Rule", the prediction of Empty is closed immediately
	// by the nullability step and Rule completes in S4.
	b := grammar.NewGrammarBuilder("AlmostEmpty")
	b.LHS("Rule").Text("Rule").N("Empty").End()
	b.LHS("Empty").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	chart, err := NewParser(g).Parse("Rule")
	if err != nil {
		t.Fatal(err)
	}
	if !chart.Accepts() {
		t.Errorf("input \"Rule\" not accepted")
	}
	accepting := false
	for _, el := range chart.StateSet(4).Values() {
		item := el.(Item)
		if item.Complete() && item.Origin() == 0 && item.Rule().Name() == "Rule" {
			accepting = true
		}
	}
	if !accepting {
		t.Errorf("accepting item missing from S4: %s", itemSetString(chart.StateSet(4)))
	}
}

func TestNullableLoop(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earleybird.earley")
	defer teardown()
	//
	// A -> ; A -> B ; B -> A — mutual recursion through nullable rules
	// must terminate thanks to state-set deduplication.
	b := grammar.NewGrammarBuilder("Loop")
	b.LHS("A").Epsilon()
	b.LHS("A").N("B").End()
	b.LHS("B").N("A").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	chart, err := NewParser(g).Parse("")
	if err != nil {
		t.Fatal(err)
	}
	if !chart.Accepts() {
		t.Errorf("empty input not accepted by Loop grammar")
	}
	if chart.StateSet(0).Size() > 8 {
		t.Errorf("S0 should stay finite and small, has %d items", chart.StateSet(0).Size())
	}
}

func TestNullablePredictionClosure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earleybird.earley")
	defer teardown()
	//
	// Whenever an item predicts a nullable non-terminal, its advanced form
	// must appear in the same state set.
	b := grammar.NewGrammarBuilder("G")
	b.LHS("S").N("E").T('x').End()
	b.LHS("E").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	chart, err := NewParser(g).Parse("x")
	if err != nil {
		t.Fatal(err)
	}
	S0 := chart.StateSet(0)
	var predicting, advanced bool
	for _, el := range S0.Values() {
		item := el.(Item)
		if item.Rule().Name() != "S" {
			continue
		}
		if ref, ok := item.PeekSymbol().(grammar.RuleRef); ok && ref.Name() == "E" {
			predicting = true
		}
		if sym := item.PeekSymbol(); sym != nil && sym.Terminal() {
			advanced = true
		}
	}
	if !predicting || !advanced {
		t.Errorf("nullability closure incomplete in S0: %s", itemSetString(S0))
	}
}

func TestDeterminism(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earleybird.earley")
	defer teardown()
	//
	g := makeArith(t)
	input := "1+2*3"
	first, err := NewParser(g).Parse(input)
	if err != nil {
		t.Fatal(err)
	}
	second, err := NewParser(g).Parse(input)
	if err != nil {
		t.Fatal(err)
	}
	if first.Len() != second.Len() {
		t.Fatalf("repeated parses built charts of different lengths")
	}
	for i := 0; i < first.Len(); i++ {
		a, b := first.StateSet(i).Values(), second.StateSet(i).Values()
		if len(a) != len(b) {
			t.Fatalf("state set %d differs in size between runs", i)
		}
		for n := range a {
			if a[n] != b[n] {
				t.Errorf("state set %d, item %d differs between runs: %v vs %v", i, n, a[n], b[n])
			}
		}
	}
}

func TestTranspose(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earleybird.earley")
	defer teardown()
	//
	g := makeArith(t)
	chart, err := NewParser(g).Parse("1+2")
	if err != nil {
		t.Fatal(err)
	}
	trans := chart.Transpose()
	if len(trans) != chart.Len() {
		t.Fatalf("transposed chart has %d entries, chart has %d sets", len(trans), chart.Len())
	}
	// Every completion keeps its coordinates.
	for s, completions := range trans {
		for _, c := range completions {
			if c.Start != s {
				t.Errorf("completion %v filed under start position %d", c, s)
			}
			if c.End < c.Start || c.End >= chart.Len() {
				t.Errorf("completion %v has an end outside the chart", c)
			}
		}
	}
	// A Sum spanning the whole input must be on record at start 0.
	var whole bool
	for _, c := range trans[0] {
		if c.Rule.Name() == "Sum" && c.End == 3 {
			whole = true
		}
	}
	if !whole {
		t.Errorf("missing completion for Sum covering the whole input")
	}
}
