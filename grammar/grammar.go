/*
Package grammar provides context-free grammars for Earley parsing.

A grammar is an ordered list of rules. Each rule maps a name to an ordered
body of symbols; alternation is expressed as several rules sharing a name.
The first rule's name is the start symbol. Terminals are single characters,
either as a literal or as a character set.

Grammars may contain epsilon-productions. At construction time the set of
nullable rule names (rules deriving the empty string, possibly through other
nullable rules) is computed once and kept with the grammar; the Earley
engine relies on it for its prediction closure.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammar

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'earleybird.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("earleybird.grammar")
}

// --- Symbols ---------------------------------------------------------------

// Symbol is one entry in a rule body: a reference to a rule, a literal
// character, or a character set. A symbol is terminal iff it is not a
// rule reference.
type Symbol interface {
	// Terminal returns true for symbols matching input characters.
	Terminal() bool
	// Matches tells if an input character satisfies this (terminal) symbol.
	// Rule references never match a character directly.
	Matches(c rune) bool
	String() string
}

// RuleRef matches one derivation of the named rule.
type RuleRef string

// Terminal is false for rule references.
func (r RuleRef) Terminal() bool { return false }

// Matches is false for rule references.
func (r RuleRef) Matches(rune) bool { return false }

func (r RuleRef) String() string { return string(r) }

// Name returns the name of the referenced rule.
func (r RuleRef) Name() string { return string(r) }

// Literal matches exactly one character.
type Literal rune

// Terminal is true for literals.
func (l Literal) Terminal() bool { return true }

// Matches tells if c is the literal's character.
func (l Literal) Matches(c rune) bool { return rune(l) == c }

func (l Literal) String() string { return fmt.Sprintf("'%c'", rune(l)) }

// OneOf matches any character out of a set. The set must not be empty;
// this is checked when the enclosing rule is constructed.
type OneOf struct {
	set map[rune]struct{}
}

// Chars creates a OneOf symbol from the characters of set.
func Chars(set string) OneOf {
	s := make(map[rune]struct{}, len(set))
	for _, c := range set {
		s[c] = struct{}{}
	}
	return OneOf{set: s}
}

// Terminal is true for character sets.
func (o OneOf) Terminal() bool { return true }

// Matches tells if c is a member of the set.
func (o OneOf) Matches(c rune) bool {
	_, ok := o.set[c]
	return ok
}

func (o OneOf) String() string {
	chars := make([]rune, 0, len(o.set))
	for c := range o.set {
		chars = append(chars, c)
	}
	sort.Slice(chars, func(i, j int) bool { return chars[i] < chars[j] })
	return "[" + string(chars) + "]"
}

// --- Rules -----------------------------------------------------------------

// Rule is an immutable named production. Rules are created once and then
// shared read-only, e.g. by the items of an Earley chart.
type Rule struct {
	name string
	body []Symbol
}

// NewRule creates a rule with a name and an ordered body of symbols. The
// body may be empty (an epsilon-production).
//
// Rule names starting with '@' are reserved, and every OneOf symbol in the
// body must have a non-empty character set; violations are construction
// errors.
func NewRule(name string, body ...Symbol) (*Rule, error) {
	if strings.HasPrefix(name, "@") {
		return nil, fmt.Errorf("rule names beginning with @ are reserved: %q", name)
	}
	for i, sym := range body {
		if o, ok := sym.(OneOf); ok && len(o.set) == 0 {
			return nil, fmt.Errorf("rule %q: empty character set at body position %d", name, i)
		}
	}
	r := &Rule{name: name, body: body}
	return r, nil
}

// Name returns the rule's name, i.e. its left-hand side.
func (r *Rule) Name() string { return r.name }

// Body returns the rule's right-hand side. Clients must not modify it.
func (r *Rule) Body() []Symbol { return r.body }

// Len returns the number of symbols in the rule's body.
func (r *Rule) Len() int { return len(r.body) }

// At returns the body symbol at position i, or nil if i is past the end.
func (r *Rule) At(i int) Symbol {
	if i < 0 || i >= len(r.body) {
		return nil
	}
	return r.body[i]
}

// IsEpsilon tells if the rule has an empty body.
func (r *Rule) IsEpsilon() bool { return len(r.body) == 0 }

func (r *Rule) String() string {
	syms := make([]string, len(r.body))
	for i, sym := range r.body {
		syms[i] = sym.String()
	}
	return fmt.Sprintf("%s -> %s", r.name, strings.Join(syms, " "))
}

// locallyNullable tells if every body symbol is a reference to a rule in
// nullset or to the rule itself. A self-reference never blocks nullability
// (A -> A derives epsilon as soon as some other A-rule does, or trivially
// if it is the only one).
func (r *Rule) locallyNullable(nullset *treeset.Set) bool {
	for _, sym := range r.body {
		ref, ok := sym.(RuleRef)
		if !ok {
			return false
		}
		if ref.Name() != r.name && !nullset.Contains(ref.Name()) {
			return false
		}
	}
	return true
}

// --- Grammar ---------------------------------------------------------------

// Grammar is an ordered, non-empty list of rules, together with the
// precomputed set of nullable rule names. The name of the first rule is the
// start symbol. Grammars are immutable after construction and may be shared
// freely, including across concurrent parses.
type Grammar struct {
	name     string
	rules    []*Rule
	byName   map[string][]*Rule
	nullable *treeset.Set
	sig      string
}

// New creates a grammar from a list of rules. The rule list must not be
// empty. Rule order is significant: it determines the start symbol, the
// order of Earley predictions and the preference order of enumerated parse
// trees.
func New(name string, rules []*Rule) (*Grammar, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("grammar %q: a grammar needs at least one rule", name)
	}
	g := &Grammar{
		name:   name,
		rules:  rules,
		byName: make(map[string][]*Rule),
	}
	for _, r := range rules {
		g.byName[r.name] = append(g.byName[r.name], r)
	}
	g.nullable = epsilonClosure(rules)
	g.sig = signature(name, rules)
	tracer().Debugf("created grammar %s", g)
	return g, nil
}

// Name returns the grammar's name.
func (g *Grammar) Name() string { return g.name }

// Start returns the start symbol, i.e. the name of the first rule.
func (g *Grammar) Start() string { return g.rules[0].name }

// Size returns the number of rules.
func (g *Grammar) Size() int { return len(g.rules) }

// Rule returns rule no. n in declaration order.
func (g *Grammar) Rule(n int) *Rule {
	if n < 0 || n >= len(g.rules) {
		return nil
	}
	return g.rules[n]
}

// Rules returns all rules in declaration order. Clients must not modify
// the returned slice.
func (g *Grammar) Rules() []*Rule { return g.rules }

// RulesFor returns all rules sharing a name, in declaration order.
func (g *Grammar) RulesFor(name string) []*Rule { return g.byName[name] }

// DerivesEpsilon tells if the named rule can derive the empty string,
// possibly through other nullable rules.
func (g *Grammar) DerivesEpsilon(name string) bool {
	return g.nullable.Contains(name)
}

// MinLength returns a lower bound for the number of input characters a
// symbol must cover: 1 for terminals and references to non-nullable rules,
// 0 for references to nullable rules. Tree enumeration uses it to tighten
// end constraints.
func (g *Grammar) MinLength(sym Symbol) int {
	if ref, ok := sym.(RuleRef); ok {
		if g.DerivesEpsilon(ref.Name()) {
			return 0
		}
	}
	return 1
}

func (g *Grammar) String() string {
	return fmt.Sprintf("%s#%s (%d rules)", g.name, g.sig, len(g.rules))
}

// Dump is a debugging helper, listing all rules and the nullable set.
func (g *Grammar) Dump() {
	tracer().Debugf("--- grammar %s --------------", g)
	for n, r := range g.rules {
		tracer().Debugf("%3d: %s", n, r)
	}
	tracer().Debugf("nullable: %s", g.nullable)
	tracer().Debugf("-----------------------------")
}

// epsilonClosure computes the least fixed point of local nullability over
// all rules: scan the rule list, insert every locally-nullable rule name,
// repeat until a full pass adds nothing.
func epsilonClosure(rules []*Rule) *treeset.Set {
	nullset := treeset.NewWithStringComparator()
	for changed := true; changed; {
		changed = false
		for _, r := range rules {
			if nullset.Contains(r.name) {
				continue
			}
			if r.locallyNullable(nullset) {
				nullset.Add(r.name)
				changed = true
			}
		}
	}
	return nullset
}

// signature is a short structural fingerprint of a grammar, for trace
// output. Grammars with the same name and identical rule lists hash
// identically.
func signature(name string, rules []*Rule) string {
	rulestrings := make([]string, len(rules))
	for i, r := range rules {
		rulestrings[i] = r.String()
	}
	h, err := structhash.Hash(struct {
		Name  string
		Rules []string
	}{
		Name:  name,
		Rules: rulestrings,
	}, 1)
	if err != nil { // no reason for this to happen, but API demands it
		panic(err)
	}
	return strings.TrimPrefix(h, "v1_")[:8]
}
