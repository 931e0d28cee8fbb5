package grammar

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestSymbolKinds(t *testing.T) {
	if RuleRef("Sum").Terminal() {
		t.Errorf("rule reference classified as terminal")
	}
	if !Literal('x').Terminal() || !Chars("xy").Terminal() {
		t.Errorf("terminal symbol not classified as terminal")
	}
	if !Literal('x').Matches('x') || Literal('x').Matches('y') {
		t.Errorf("literal matching is broken")
	}
	oneof := Chars("+-")
	if !oneof.Matches('-') || oneof.Matches('*') {
		t.Errorf("character set matching is broken")
	}
	if RuleRef("Sum").Matches('S') {
		t.Errorf("rule reference must never match a character")
	}
}

func TestSymbolStrings(t *testing.T) {
	if s := Chars("ba").String(); s != "[ab]" {
		t.Errorf("expected character set to print sorted as [ab], is %s", s)
	}
	if s := Literal('+').String(); s != "'+'" {
		t.Errorf("expected literal to print as '+', is %s", s)
	}
}

func TestReservedRuleName(t *testing.T) {
	if _, err := NewRule("@reserved"); err == nil {
		t.Errorf("expected construction of rule '@reserved' to fail, did not")
	}
	if _, err := NewRule("ok@embedded"); err != nil {
		t.Errorf("'@' is only reserved as a prefix: %v", err)
	}
}

func TestEmptyCharacterSet(t *testing.T) {
	if _, err := NewRule("R", Chars("")); err == nil {
		t.Errorf("expected empty character set to be rejected, was not")
	}
}

func TestEmptyGrammar(t *testing.T) {
	if _, err := New("G", nil); err == nil {
		t.Errorf("expected empty grammar to be rejected, was not")
	}
}

func TestStartSymbolAndLookup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earleybird.grammar")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").N("A").End()
	b.LHS("A").T('a').End()
	b.LHS("A").T('b').End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	if g.Start() != "S" {
		t.Errorf("expected start symbol S, is %s", g.Start())
	}
	as := g.RulesFor("A")
	if len(as) != 2 {
		t.Fatalf("expected 2 rules for A, got %d", len(as))
	}
	if as[0] != g.Rule(1) || as[1] != g.Rule(2) {
		t.Errorf("RulesFor does not preserve declaration order")
	}
}

func TestDuplicateRulesStayDistinct(t *testing.T) {
	r1, _ := NewRule("A", Literal('a'))
	r2, _ := NewRule("A", Literal('a'))
	g, err := New("G", []*Rule{r1, r2})
	if err != nil {
		t.Fatal(err)
	}
	rules := g.RulesFor("A")
	if len(rules) != 2 || rules[0] == rules[1] {
		t.Errorf("textually identical rules must stay distinct rules")
	}
}

func TestNullability(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earleybird.grammar")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").N("A").T('x').End()
	b.LHS("A").N("B").N("C").End()
	b.LHS("B").Epsilon()
	b.LHS("C").N("B").End()
	b.LHS("D").T('d').End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	for name, nullable := range map[string]bool{
		"S": false, // body contains a terminal
		"A": true,  // through B and C
		"B": true,  // epsilon-production
		"C": true,  // C -> B with B nullable
		"D": false,
	} {
		if g.DerivesEpsilon(name) != nullable {
			t.Errorf("expected DerivesEpsilon(%s) = %v", name, nullable)
		}
	}
}

func TestNullabilitySelfReference(t *testing.T) {
	// A -> A and A -> B A must count as nullable: a self-reference never
	// blocks the local nullability of a rule.
	b := NewGrammarBuilder("G")
	b.LHS("A").N("A").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	if !g.DerivesEpsilon("A") {
		t.Errorf("A -> A should be nullable")
	}
	//
	b = NewGrammarBuilder("G")
	b.LHS("A").N("B").N("A").End()
	b.LHS("B").Epsilon()
	g, err = b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	if !g.DerivesEpsilon("A") {
		t.Errorf("A -> B A with nullable B should be nullable")
	}
}

func TestNullabilityMutualRecursion(t *testing.T) {
	b := NewGrammarBuilder("Loop")
	b.LHS("A").Epsilon()
	b.LHS("A").N("B").End()
	b.LHS("B").N("A").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	if !g.DerivesEpsilon("A") || !g.DerivesEpsilon("B") {
		t.Errorf("mutually recursive nullable rules not detected")
	}
}

func TestNullabilityIsFixpoint(t *testing.T) {
	b := NewGrammarBuilder("G")
	b.LHS("S").N("A").N("B").End()
	b.LHS("A").Epsilon()
	b.LHS("B").N("A").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	// Running the closure again over the same rules must not change it.
	again := epsilonClosure(g.Rules())
	if !g.nullable.Contains("S") || again.Size() != g.nullable.Size() {
		t.Errorf("nullability closure is not a fixpoint: %v vs %v", g.nullable, again)
	}
	for _, v := range again.Values() {
		if !g.nullable.Contains(v.(string)) {
			t.Errorf("second closure pass produced extra member %v", v)
		}
	}
}

func TestMinLength(t *testing.T) {
	b := NewGrammarBuilder("G")
	b.LHS("S").N("E").T('x').End()
	b.LHS("E").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	if g.MinLength(Literal('x')) != 1 || g.MinLength(Chars("ab")) != 1 {
		t.Errorf("terminals cover at least one character")
	}
	if g.MinLength(RuleRef("E")) != 0 {
		t.Errorf("nullable reference may cover zero characters")
	}
	if g.MinLength(RuleRef("S")) != 1 {
		t.Errorf("non-nullable reference covers at least one character")
	}
}

func TestSignatureStability(t *testing.T) {
	mk := func() *Grammar {
		b := NewGrammarBuilder("G")
		b.LHS("S").T('x').End()
		g, err := b.Grammar()
		if err != nil {
			t.Fatal(err)
		}
		return g
	}
	if mk().sig != mk().sig {
		t.Errorf("identical grammars should have identical signatures")
	}
}
