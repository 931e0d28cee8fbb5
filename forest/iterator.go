package forest

import (
	"github.com/npillmayer/earleybird/earley"
	"github.com/npillmayer/earleybird/grammar"
)

// extent is an end constraint for a sub-derivation: either "ends exactly
// at pos" or "ends at or before pos". The exact form pins the outermost
// goal; the last child of a rule inherits its parent's constraint, exact or
// at-most, and every other child only gets the at-most form, because
// intermediate boundaries are not recorded in the chart.
type extent struct {
	pos   int
	exact bool
}

// walkState is the read-only state shared by a tree iterator and all of
// its sub-iterators.
type walkState struct {
	completions [][]earley.Completion
	input       []rune
	g           *grammar.Grammar
}

// minLength is a sound lower bound for the input length covered by a body
// suffix. Counting one character per symbol would overestimate nullable
// non-terminals and lose derivations, so the per-symbol minimum comes from
// the grammar's nullable set.
func (st *walkState) minLength(rest []grammar.Symbol) int {
	length := 0
	for _, sym := range rest {
		length += st.g.MinLength(sym)
	}
	return length
}

// frame is one chosen child during the body walk: the child's tree and the
// iterator that can produce the child's alternatives. Terminals have no
// alternatives; their frames carry a nil sub-iterator.
type frame struct {
	node Node
	sub  *TreeIterator
}

// TreeIterator produces the parse trees for one goal — a rule name, a
// start position and an end constraint — one tree per call to Next. The
// top-level iterator returned by New enumerates complete parses of the
// whole input.
//
// Enumeration is a depth-first, backtracking search over the transposed
// chart: candidates are tried in chart insertion order (which follows
// grammar declaration order), and within a candidate the rule body is
// walked left to right, keeping a stack of chosen children. For finite
// forests the iterator is exhausted after the last tree; grammars with
// unbounded nullable recursion yield an infinite stream, to be limited by
// the caller (see Take).
type TreeIterator struct {
	st         *walkState
	start      int
	end        extent
	current    *earley.Completion
	candidates []earley.Completion // reversed, so popping yields chart order
	frames     []frame
	tree       Node
}

// New creates an iterator over all parse trees of the chart, i.e. all
// derivations of the full input from the grammar's start symbol. A chart
// that does not accept its input yields an empty iterator; so does a nil
// chart (for callers that skipped the distinction after a failed chart
// construction).
//
// The chart is only read. Several iterators may walk the same chart
// concurrently.
func New(chart *earley.Chart) *TreeIterator {
	if chart == nil {
		return Empty()
	}
	st := &walkState{
		completions: chart.Transpose(),
		input:       chart.Input(),
		g:           chart.Grammar(),
	}
	return newTreeIterator(st, chart.Grammar().Start(), 0, extent{pos: len(st.input), exact: true})
}

// Empty returns an iterator that yields no trees.
func Empty() *TreeIterator {
	return &TreeIterator{}
}

func newTreeIterator(st *walkState, name string, start int, end extent) *TreeIterator {
	it := &TreeIterator{st: st, start: start, end: end}
	if start >= len(st.completions) {
		return it
	}
	// Collect candidate completions with a matching name at the right
	// start position, honouring the end constraint, then reverse so that
	// popping from the back walks them in chart order.
	for _, c := range st.completions[start] {
		if c.Rule.Name() != name {
			continue
		}
		if end.exact && c.End != end.pos {
			continue
		}
		if !end.exact && c.End > end.pos {
			continue
		}
		it.candidates = append(it.candidates, c)
	}
	for i, j := 0, len(it.candidates)-1; i < j; i, j = i+1, j-1 {
		it.candidates[i], it.candidates[j] = it.candidates[j], it.candidates[i]
	}
	it.nextCandidate()
	return it
}

func (it *TreeIterator) nextCandidate() {
	if len(it.candidates) == 0 {
		it.current = nil
		return
	}
	last := len(it.candidates) - 1
	it.current = &it.candidates[last]
	it.candidates = it.candidates[:last]
}

// Tree returns the tree produced by the last successful call to Next.
func (it *TreeIterator) Tree() Node { return it.tree }

// Next advances the iterator to the next parse tree, returning false when
// the enumeration is exhausted.
func (it *TreeIterator) Next() bool {
	if it.tree != nil {
		// Backtrack from the tree handed out by the previous call only now,
		// so that the next alternative is searched for on demand.
		it.step()
	}
	for {
		if it.current == nil {
			it.tree = nil
			return false
		}
		body := it.current.Rule.Body()

		if len(it.frames) == len(body) {
			// A full set of children. Under an exact end constraint the
			// children must cover the span precisely; the chart records
			// the completion but not its internal boundaries, so a
			// too-short combination can reach this point and has to be
			// skipped.
			if it.end.exact && it.start+it.framesLength() != it.end.pos {
				it.step()
				continue
			}
			children := make([]Node, len(it.frames))
			for i, f := range it.frames {
				children[i] = f.node
			}
			it.tree = &Inner{Name: it.current.Rule.Name(), Children: children}
			return true
		}

		sym := body[len(it.frames)]
		rest := body[len(it.frames)+1:]
		childStart := it.start + it.framesLength()
		var childEnd extent
		if len(rest) == 0 {
			childEnd = it.end // the last child inherits the constraint
		} else {
			childEnd = extent{pos: it.end.pos - it.st.minLength(rest), exact: false}
		}

		if ref, ok := sym.(grammar.RuleRef); ok {
			sub := newTreeIterator(it.st, ref.Name(), childStart, childEnd)
			if sub.Next() {
				it.frames = append(it.frames, frame{node: sub.Tree(), sub: sub})
			} else {
				it.step()
			}
			continue
		}
		// A terminal consumes exactly one character and has no
		// alternatives: match or backtrack.
		if childStart < len(it.st.input) && childStart+1 <= it.end.pos &&
			sym.Matches(it.st.input[childStart]) {
			it.frames = append(it.frames, frame{node: Leaf(it.st.input[childStart])})
		} else {
			it.step()
		}
	}
}

// step backtracks: pop frames until one of them has another alternative,
// then resume with it; if none has, move on to the next candidate rule.
func (it *TreeIterator) step() {
	for {
		if len(it.frames) == 0 {
			it.nextCandidate()
			return
		}
		last := len(it.frames) - 1
		f := it.frames[last]
		it.frames = it.frames[:last]
		if f.sub != nil && f.sub.Next() {
			it.frames = append(it.frames, frame{node: f.sub.Tree(), sub: f.sub})
			return
		}
	}
}

func (it *TreeIterator) framesLength() int {
	length := 0
	for _, f := range it.frames {
		length += f.node.Len()
	}
	return length
}

// Take pulls up to n trees off the iterator. Handy for bounding grammars
// with infinitely many derivations.
func (it *TreeIterator) Take(n int) []Node {
	var trees []Node
	for len(trees) < n && it.Next() {
		trees = append(trees, it.Tree())
	}
	tracer().Debugf("took %d of up to %d trees", len(trees), n)
	return trees
}
