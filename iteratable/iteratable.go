/*
Package iteratable implements an iteratable set container.

Set is a special purpose set type, suitable mainly for implementing
algorithms around scanners and parsers. These kinds of algorithms are often
more straightforward to describe as set constructions and operations.

The central contract is that of a grow-only ordered set with a single
advancing cursor: clients may append members while iterating, and the
cursor will pick up members appended behind it. This is exactly the "work
queue" behaviour an Earley state set needs.

Unusually, filtering set operations are destructive!

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package iteratable

// Set is an ordered set of members with stable insertion order, a hash
// membership index and a single-pass cursor. Members must be comparable;
// membership uses Go equality, so struct members containing pointers
// compare those by identity.
//
// The zero value is not ready for use; create sets with NewSet.
type Set struct {
	items  []interface{}
	index  map[interface{}]struct{}
	cursor int
}

// NewSet creates an empty set with a capacity hint.
func NewSet(capacity int) *Set {
	if capacity < 0 {
		capacity = 0
	}
	return &Set{
		items:  make([]interface{}, 0, capacity),
		index:  make(map[interface{}]struct{}, capacity),
		cursor: -1,
	}
}

// Add appends a member to the set. Members already present are ignored;
// the set never contains duplicates. Appending during an iteration is
// allowed, and the cursor will reach the new member.
func (s *Set) Add(el interface{}) {
	if _, ok := s.index[el]; ok {
		return
	}
	s.index[el] = struct{}{}
	s.items = append(s.items, el)
}

// Size returns the number of members.
func (s *Set) Size() int { return len(s.items) }

// Empty tells if the set has no members.
func (s *Set) Empty() bool { return len(s.items) == 0 }

// Contains tells if el is a member of the set.
func (s *Set) Contains(el interface{}) bool {
	_, ok := s.index[el]
	return ok
}

// First returns the first member in insertion order, or nil for an empty
// set.
func (s *Set) First() interface{} {
	if len(s.items) == 0 {
		return nil
	}
	return s.items[0]
}

// Values returns a snapshot of all members in insertion order. The
// returned slice is a copy; later appends to the set do not show up in it.
func (s *Set) Values() []interface{} {
	vals := make([]interface{}, len(s.items))
	copy(vals, s.items)
	return vals
}

// Each calls f for every member currently in the set, in insertion order.
// It operates on a snapshot: members appended by f are not visited.
func (s *Set) Each(f func(el interface{})) {
	for _, el := range s.Values() {
		f(el)
	}
}

// IterateOnce starts a fresh single pass of the cursor over the set, to be
// advanced with Next. Members appended during the pass are included. The
// pass is exhausted as soon as Next has returned false; an exhausted
// cursor stays exhausted until IterateOnce is called again.
func (s *Set) IterateOnce() {
	s.cursor = -1
}

// Next advances the cursor to the next member and returns true, or returns
// false if the pass is exhausted.
func (s *Set) Next() bool {
	const exhausted = -2
	if s.cursor == exhausted || s.cursor+1 >= len(s.items) {
		s.cursor = exhausted
		return false
	}
	s.cursor++
	return true
}

// Item returns the member under the cursor.
func (s *Set) Item() interface{} {
	if s.cursor < 0 || s.cursor >= len(s.items) {
		return nil
	}
	return s.items[s.cursor]
}

// Copy returns an independent copy of the set with a reset cursor.
func (s *Set) Copy() *Set {
	c := NewSet(len(s.items))
	for _, el := range s.items {
		c.Add(el)
	}
	return c
}

// Subset keeps only the members accepted by pred, in place, and returns
// the receiver. The cursor is reset.
func (s *Set) Subset(pred func(el interface{}) bool) *Set {
	keep := s.items[:0]
	for _, el := range s.items {
		if pred(el) {
			keep = append(keep, el)
		} else {
			delete(s.index, el)
		}
	}
	for i := len(keep); i < len(s.items); i++ {
		s.items[i] = nil
	}
	s.items = keep
	s.cursor = -1
	return s
}

// Equals tells if two sets have the same members, regardless of insertion
// order.
func (s *Set) Equals(other *Set) bool {
	if other == nil || len(s.items) != len(other.items) {
		return false
	}
	for el := range s.index {
		if _, ok := other.index[el]; !ok {
			return false
		}
	}
	return true
}
