package grammar

import "fmt"

// GrammarBuilder is an object to construct a grammar from a sequence of
// rule declarations. Clients start a rule with LHS(name), append body
// symbols, and close it with End() or Epsilon().
//
// Example:
//
//     b := grammar.NewGrammarBuilder("Arith")
//     b.LHS("Sum").N("Sum").OneOf("+-").N("Product").End()
//     b.LHS("Sum").N("Product").End()
//     b.LHS("Empty").Epsilon()
//     g, err := b.Grammar()
//
// Construction errors (reserved rule name, empty character set, empty
// grammar) are collected and returned by Grammar().
type GrammarBuilder struct {
	name  string
	rules []*Rule
	err   error
}

// NewGrammarBuilder creates a builder for a grammar with the given name.
func NewGrammarBuilder(name string) *GrammarBuilder {
	return &GrammarBuilder{name: name}
}

// RuleBuilder collects the body symbols of one rule under construction.
type RuleBuilder struct {
	gb   *GrammarBuilder
	lhs  string
	body []Symbol
}

// LHS starts a new rule with the given left-hand side name.
func (gb *GrammarBuilder) LHS(name string) *RuleBuilder {
	return &RuleBuilder{gb: gb, lhs: name}
}

// Grammar closes the builder and returns the finished grammar, or the
// first error encountered while declaring rules.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	if gb.err != nil {
		return nil, gb.err
	}
	return New(gb.name, gb.rules)
}

// N appends a reference to the named rule.
func (rb *RuleBuilder) N(name string) *RuleBuilder {
	rb.body = append(rb.body, RuleRef(name))
	return rb
}

// T appends a literal character terminal.
func (rb *RuleBuilder) T(c rune) *RuleBuilder {
	rb.body = append(rb.body, Literal(c))
	return rb
}

// Text appends one literal terminal per character of s.
func (rb *RuleBuilder) Text(s string) *RuleBuilder {
	for _, c := range s {
		rb.body = append(rb.body, Literal(c))
	}
	return rb
}

// OneOf appends a character-set terminal matching any character of set.
func (rb *RuleBuilder) OneOf(set string) *RuleBuilder {
	rb.body = append(rb.body, Chars(set))
	return rb
}

// End closes the rule and hands it to the grammar builder.
func (rb *RuleBuilder) End() *GrammarBuilder {
	r, err := NewRule(rb.lhs, rb.body...)
	if err != nil {
		if rb.gb.err == nil {
			rb.gb.err = fmt.Errorf("rule %d: %w", len(rb.gb.rules)+1, err)
		}
		return rb.gb
	}
	rb.gb.rules = append(rb.gb.rules, r)
	return rb.gb
}

// Epsilon closes the rule with an empty body.
func (rb *RuleBuilder) Epsilon() *GrammarBuilder {
	rb.body = nil
	return rb.End()
}
