/*
Package earleybird is a general context-free recogniser and parse-forest
enumerator, based on Earley's algorithm.

Given a grammar and an input string, it decides membership and — when the
string is in the language — enumerates one concrete syntax tree per
distinct derivation, lazily. Nullable rules (rules deriving the empty
string, possibly transitively) are handled correctly, including for
left-recursive grammars. Package structure is as follows:

■ grammar: Package grammar provides rules, symbols and grammars, including
the nullability analysis the engine depends on.

■ iteratable: Package iteratable implements the grow-only ordered set with
a single advancing cursor which serves as an Earley state set.

■ earley: Package earley builds the chart (one state set per input
position) with the classic Predict/Scan/Complete transitions.

■ forest: Package forest walks a completed chart and yields parse trees on
demand.

■ tokenizer: Package tokenizer is a small companion library of matching
state machines; the parser core does not depend on it.

The base package offers the two entry points most clients need: Recognise
and Parse.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package earleybird

import (
	"github.com/npillmayer/earleybird/earley"
	"github.com/npillmayer/earleybird/forest"
	"github.com/npillmayer/earleybird/grammar"
)

// Recognise tells if input is in the language described by the grammar.
// It never fails: any input not in the language — including ill-formed
// input the chart construction gives up on — simply answers false.
func Recognise(g *grammar.Grammar, input string) bool {
	chart, err := earley.NewParser(g).Parse(input)
	if err != nil {
		return false
	}
	return chart.Accepts()
}

// Parse returns a lazy iterator over the parse trees of input, one tree
// per derivation. The iterator is empty iff the input is not in the
// language. For ambiguous grammars with unbounded nullable recursion the
// iterator is infinite; limit it with Take.
func Parse(g *grammar.Grammar, input string) *forest.TreeIterator {
	chart, err := earley.NewParser(g).Parse(input)
	if err != nil {
		return forest.Empty()
	}
	return forest.New(chart)
}
