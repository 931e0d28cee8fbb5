package earley

import (
	"fmt"
	"strings"

	"github.com/npillmayer/earleybird/grammar"
)

// Item is an Earley item: a grammar rule, the input position the
// derivation started at, and a progress marker into the rule's body. An
// item is complete when the marker has passed the whole body.
//
// Items are small values and get copied freely. Two items are equal iff
// rule, origin and progress match; rules are compared by identity, so
// items of textually identical but distinct rules stay distinct.
type Item struct {
	rule   *grammar.Rule
	origin int
	dot    int
}

// startItems creates one item per rule, each with progress 0 at the given
// origin. Rule order is preserved.
func startItems(rules []*grammar.Rule, origin int) []Item {
	items := make([]Item, len(rules))
	for i, r := range rules {
		items[i] = Item{rule: r, origin: origin}
	}
	return items
}

// Rule returns the grammar rule this item tracks.
func (i Item) Rule() *grammar.Rule { return i.rule }

// Origin returns the input position the item's derivation started at.
func (i Item) Origin() int { return i.origin }

// Complete tells if the dot has passed the whole rule body.
func (i Item) Complete() bool { return i.dot >= i.rule.Len() }

// PeekSymbol returns the body symbol after the dot, or nil for a complete
// item.
func (i Item) PeekSymbol() grammar.Symbol { return i.rule.At(i.dot) }

// Advance returns a copy of the item with the dot moved one symbol
// further.
func (i Item) Advance() Item {
	i.dot++
	return i
}

func (i Item) String() string {
	syms := make([]string, 0, i.rule.Len()+1)
	for n, sym := range i.rule.Body() {
		if n == i.dot {
			syms = append(syms, "●")
		}
		syms = append(syms, sym.String())
	}
	if i.dot >= i.rule.Len() {
		syms = append(syms, "●")
	}
	return fmt.Sprintf("%s -> %s (%d)", i.rule.Name(), strings.Join(syms, " "), i.origin)
}
