/*
Package earley provides the chart engine of an Earley parser.

Earley's algorithm decides membership for arbitrary context-free grammars,
including ambiguous and left-recursive ones, by building a chart: one state
set of items per input position, closed under the classic transitions
Predict, Scan and Complete.

From "Practical Earley Parsing" by John Aycock and R. Nigel Horspool, 2002
(http://citeseerx.ist.psu.edu/viewdoc/download?doi=10.1.1.12.4254&rep=rep1&type=pdf):

	Earley parsers operate by constructing a sequence of sets, sometimes
	called Earley sets. Given an input x1 x2 … xn, the parser builds n+1
	sets: an initial set S0 and one set Si for each input symbol xi. […]
	each set is typically represented as a list of items, as suggested by
	Earley. This list representation of a set is particularly convenient,
	because the list of items acts as a ‘work queue’ when building the set:
	items are examined in order, applying Scanner, Predictor and Completer
	as necessary; items added to the set are appended onto the end of the
	list.

This package adopts Aycock and Horspool's refinement for nullable rules:
when a prediction hits a rule that can derive the empty string, the
predicting item is advanced immediately. Nullability is precomputed by the
grammar package.

Terminals are single characters. The engine owns no lexer; any
pre-tokenisation is the caller's business.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package earley

import (
	"fmt"

	"github.com/npillmayer/earleybird/grammar"
	"github.com/npillmayer/earleybird/iteratable"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'earleybird.earley'.
func tracer() tracing.Trace {
	return tracing.Select("earleybird.earley")
}

// Parser is an Earley chart parser for a fixed grammar. Create one with
// NewParser; a Parser may run any number of parses, one at a time.
type Parser struct {
	g      *grammar.Grammar
	states []*iteratable.Set // chart under construction, one set per position
	input  []rune
	mode   uint
}

const (
	optionDumpChart uint = 1 << 1 // dump each state set after it is closed
)

// Option configures a parser.
type Option func(p *Parser)

// DumpChart configures the parser to dump every state set to the trace
// after the set has been closed. Defaults to the config flag "dump-chart".
func DumpChart(b bool) Option {
	return func(p *Parser) {
		if b {
			p.mode |= optionDumpChart
		} else {
			p.mode &^= optionDumpChart
		}
	}
}

// NewParser creates a parser for a grammar.
func NewParser(g *grammar.Grammar, opts ...Option) *Parser {
	p := &Parser{g: g}
	if gconf.GetBool("dump-chart") {
		p.mode |= optionDumpChart
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Parser) hasmode(m uint) bool {
	return p.mode&m > 0
}

// NoParseError reports that chart construction got stuck: at some input
// position no item produced a scan, so the following state set was never
// created. It carries the position and the unconsumed input suffix, as a
// diagnostic. Callers deciding membership only need the fact that the
// chart is incomplete.
type NoParseError struct {
	Position int    // first position at which no progress was possible
	Suffix   string // unconsumed input from that position on
}

func (e *NoParseError) Error() string {
	return fmt.Sprintf("no progress at input position %d, unconsumed suffix %q", e.Position, e.Suffix)
}

// Parse builds the chart for an input string. It returns the completed
// chart, or a *NoParseError if some input position could not be reached.
// Parse never fails for any other reason; whether the input is in the
// language is decided on the returned chart (see Chart.Accepts).
func (p *Parser) Parse(input string) (*Chart, error) {
	p.input = []rune(input)
	p.states = make([]*iteratable.Set, 1, len(p.input)+1)
	start := p.g.RulesFor(p.g.Start())
	S0 := iteratable.NewSet(len(start))
	for _, item := range startItems(start, 0) {
		S0.Add(item)
	}
	p.states[0] = S0
	tracer().Debugf("parsing %q with grammar %s", input, p.g)
	// The outer loop runs to len(input) inclusive, so that completions can
	// still fire after the last character has been scanned.
	for i := 0; i <= len(p.input); i++ {
		if i >= len(p.states) {
			err := &NoParseError{
				Position: i - 1,
				Suffix:   string(p.input[i-1:]),
			}
			tracer().Debugf("chart construction stuck: %v", err)
			return nil, err
		}
		p.closeState(i)
	}
	return &Chart{g: p.g, input: p.input, states: p.states}, nil
}

// closeState runs the Earley transitions over state set Si to a fixpoint.
// Predictions and completions append to Si itself and are picked up by the
// set's cursor; scans are buffered and become Si+1 after the cursor is
// exhausted. Only scans cross position boundaries.
func (p *Parser) closeState(i int) {
	S := p.states[i]
	var scanned []Item
	S.IterateOnce()
	for S.Next() {
		item := S.Item().(Item)
		switch {
		case item.Complete():
			p.complete(S, item, i)
		case item.PeekSymbol().Terminal():
			if adv, ok := p.scan(item, i); ok {
				scanned = append(scanned, adv)
			}
		default:
			p.predict(S, item, i)
		}
	}
	if p.hasmode(optionDumpChart) {
		dumpState(p.states, i)
	}
	if len(scanned) > 0 {
		S1 := iteratable.NewSet(len(scanned))
		for _, item := range scanned {
			S1.Add(item)
		}
		p.states = append(p.states, S1)
	}
}

// Predictor:
// If [A→…•B…, j] is in Si, add [B→•α, i] to Si for all rules B→α, in
// declaration order. If B is nullable, also add [A→…B•…, j] to Si; this
// closure step stands in for completing empty derivations on the spot.
func (p *Parser) predict(S *iteratable.Set, item Item, i int) {
	B := item.PeekSymbol().(grammar.RuleRef)
	for _, start := range startItems(p.g.RulesFor(B.Name()), i) {
		S.Add(start)
	}
	if p.g.DerivesEpsilon(B.Name()) {
		S.Add(item.Advance())
	}
}

// Scanner:
// If [A→…•a…, j] is in Si and terminal a accepts input[i], the advanced
// item [A→…a•…, j] is handed back for inclusion in Si+1. Scans never
// modify Si. Past the end of the input the scanner fails silently.
func (p *Parser) scan(item Item, i int) (Item, bool) {
	if i >= len(p.input) {
		return Item{}, false
	}
	if !item.PeekSymbol().Matches(p.input[i]) {
		return Item{}, false
	}
	return item.Advance(), true
}

// Completer:
// If [A→…•, j] is in Si, add [B→…A•…, k] to Si for all items [B→…•A…, k]
// in Sj. For an empty-span completion (j = i) the origin set is Si itself;
// reading a snapshot of it is sound because any later-appended item that
// waits for A gets advanced by the nullability closure in predict.
func (p *Parser) complete(S *iteratable.Set, item Item, i int) {
	A := item.Rule().Name()
	origin := p.states[item.Origin()]
	for _, el := range origin.Values() {
		waiting := el.(Item)
		if waiting.Complete() {
			continue
		}
		if ref, ok := waiting.PeekSymbol().(grammar.RuleRef); ok && ref.Name() == A {
			S.Add(waiting.Advance())
		}
	}
}
