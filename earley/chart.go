package earley

import (
	"github.com/npillmayer/earleybird/grammar"
	"github.com/npillmayer/earleybird/iteratable"
)

// Chart is the result of a successful chart construction: state sets
// S0 … Sn, one per input position, with n = |input|. A chart is read-only
// once built and may be shared by any number of concurrent consumers; the
// cursors inside its state sets must not be advanced any more.
type Chart struct {
	g      *grammar.Grammar
	input  []rune
	states []*iteratable.Set
}

// Grammar returns the grammar the chart was built for.
func (c *Chart) Grammar() *grammar.Grammar { return c.g }

// Input returns the parsed input characters. Callers must not modify the
// returned slice.
func (c *Chart) Input() []rune { return c.input }

// Len returns the number of state sets, i.e. |input| + 1.
func (c *Chart) Len() int { return len(c.states) }

// StateSet returns state set no. i, or nil if out of range.
func (c *Chart) StateSet(i int) *iteratable.Set {
	if i < 0 || i >= len(c.states) {
		return nil
	}
	return c.states[i]
}

// Accepts tells if the input is in the grammar's language: the final state
// set must hold a complete item for a start-symbol rule with origin 0.
func (c *Chart) Accepts() bool {
	last := c.states[len(c.states)-1]
	for _, el := range last.Values() {
		item := el.(Item)
		if item.Complete() && item.Origin() == 0 && item.Rule().Name() == c.g.Start() {
			tracer().Debugf("ACCEPT: %s", item)
			return true
		}
	}
	return false
}

// Completion is a completed Earley item re-indexed for top-down walking:
// the rule, the position its derivation started at and the position just
// behind its last covered character.
type Completion struct {
	Rule  *grammar.Rule
	Start int
	End   int
}

// Transpose re-indexes the chart's completed items by start position:
// entry s of the result lists every completion starting at s. Within one
// entry, completions keep the chart's insertion order (sets visited in
// position order, items in appearance order), which is the preference
// order for tree enumeration.
func (c *Chart) Transpose() [][]Completion {
	result := make([][]Completion, len(c.states))
	for end, S := range c.states {
		for _, el := range S.Values() {
			item := el.(Item)
			if !item.Complete() {
				continue
			}
			s := item.Origin()
			result[s] = append(result[s], Completion{Rule: item.Rule(), Start: s, End: end})
		}
	}
	return result
}
