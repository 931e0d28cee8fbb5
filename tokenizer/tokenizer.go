/*
Package tokenizer is a small companion library of matching state machines.

A Tokenizer is fed the input one character at a time and reports, after
each character, whether the token under construction is still pending, has
just completed, or can no longer match. The Tokenize driver runs one
tokenizer repeatedly over a string with maximal munch: it cuts a token at
the machine's last completion once the machine fails or the input ends,
and resets the machine for the next one.

The building blocks mirror the usual combinator suspects: Literal, OneOf,
Chain, FirstOf, LongestOf, Map, Eat and Empty. They compose freely; the
parser core in package earley does not depend on any of this — it consumes
single characters — but callers who want to pre-chew their input can use
this package on the side.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tokenizer

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'earleybird.tokenizer'.
func tracer() tracing.Trace {
	return tracing.Select("earleybird.tokenizer")
}

// State is the verdict of a tokenizer after one character of input.
type State int8

const (
	// Pending: the token is incomplete, but more input may complete it.
	Pending State = iota
	// Completed: the characters fed since the last reset form a token.
	Completed
	// Failed: no continuation of the input can form a token.
	Failed
)

func (st State) String() string {
	switch st {
	case Pending:
		return "pending"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", st)
}

// Tokenizer is a resettable matching state machine.
type Tokenizer interface {
	// Reset prepares the machine for a fresh token. It reports whether
	// the machine matches the empty string, i.e. completes without input.
	Reset() bool
	// Feed advances the machine by one character.
	Feed(c rune) State
	// MakeToken builds the token value for the matched characters. A
	// false flag suppresses the token (see Eat).
	MakeToken(data []rune) (interface{}, bool)
}

// Token is the default token type produced by the builtin tokenizers: a
// tag identifying the kind of token and the matched characters.
type Token struct {
	Tag      string
	Contents string
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Tag, t.Contents)
}

// Span locates a token in the input, by line and column of its first and
// last character. Columns restart at 0 after a newline.
type Span struct {
	StartLine int
	EndLine   int
	StartChar int
	EndChar   int
}

func (sp Span) String() string {
	return fmt.Sprintf("(%d:%d…%d:%d)", sp.StartLine, sp.StartChar, sp.EndLine, sp.EndChar)
}

// TokenAndSpan pairs a produced token with its location.
type TokenAndSpan struct {
	Token interface{}
	Span  Span
}

// TokenizeError reports that tokenization could not consume the whole
// input. It carries the tokens produced so far and the unconsumed rest.
type TokenizeError struct {
	Tokens []TokenAndSpan
	Rest   string
}

func (e *TokenizeError) Error() string {
	return fmt.Sprintf("tokenization stuck, unconsumed input %q", e.Rest)
}

// pendingCut is a completion the driver has seen but not yet committed:
// the machine may still complete again on a longer prefix, so the cut is
// only made when the machine fails or the input ends.
type pendingCut struct {
	token      interface{}
	emit       bool
	span       Span
	resumeAt   int // input index just behind the completed token
	resumeLine int
	resumeChar int
}

// Tokenize runs a tokenizer over the whole input and returns the produced
// tokens in order. Matching is maximal-munch: after a completion the
// machine keeps being fed, and only when it fails (or the input ends) is
// the token cut at the last completion, with tokenization resuming just
// behind it. If the machine fails without any completion on record, or
// trailing input remains unconsumed, a *TokenizeError with the tokens so
// far and the unconsumed rest is returned.
func Tokenize(input string, t Tokenizer) ([]TokenAndSpan, error) {
	chars := []rune(input)
	matchesEmpty := t.Reset()

	var result []TokenAndSpan
	tokenStart := 0
	var startLine, startChar, endLine, endChar int
	var cut *pendingCut

	commit := func() {
		if cut.emit {
			result = append(result, TokenAndSpan{Token: cut.token, Span: cut.span})
		}
		tokenStart = cut.resumeAt
		startLine, startChar = cut.resumeLine, cut.resumeChar
		endLine, endChar = cut.resumeLine, cut.resumeChar
		t.Reset()
		cut = nil
	}
	stuck := func() ([]TokenAndSpan, error) {
		err := &TokenizeError{Tokens: result, Rest: string(chars[tokenStart:])}
		tracer().Debugf("%v", err)
		return result, err
	}

	progress := 0
	for progress < len(chars) {
		c := chars[progress]
		switch t.Feed(c) {
		case Pending:
			if c == '\n' {
				endLine, endChar = endLine+1, 0
			} else {
				endChar++
			}
			progress++
		case Completed:
			token, emit := t.MakeToken(chars[tokenStart : progress+1])
			span := Span{StartLine: startLine, EndLine: endLine, StartChar: startChar, EndChar: endChar}
			resumeLine, resumeChar := endLine, endChar+1
			if c == '\n' {
				resumeLine, resumeChar = endLine+1, 0
			}
			cut = &pendingCut{
				token:      token,
				emit:       emit,
				span:       span,
				resumeAt:   progress + 1,
				resumeLine: resumeLine,
				resumeChar: resumeChar,
			}
			if c == '\n' {
				endLine, endChar = endLine+1, 0
			} else {
				endChar++
			}
			progress++
		case Failed:
			if cut == nil {
				return stuck()
			}
			// Cut at the last completion and re-feed everything behind it.
			progress = cut.resumeAt
			commit()
		}
	}

	if cut != nil {
		done := cut.resumeAt == len(chars)
		commit()
		if done {
			return result, nil
		}
		return stuck()
	}
	if tokenStart == len(chars) && matchesEmpty {
		// Nothing fed since the last cut and the machine accepts the
		// empty string (only reachable for empty input).
		if token, emit := t.MakeToken(nil); emit {
			result = append(result, TokenAndSpan{Token: token})
		}
		return result, nil
	}
	return stuck()
}
