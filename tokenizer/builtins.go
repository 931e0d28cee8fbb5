package tokenizer

// stateMachine is the Tokenizer contract minus MakeToken, which is the
// same for every machine wrapped in basicTokenizer.
type stateMachine interface {
	Reset() bool
	Feed(c rune) State
}

// basicTokenizer turns a bare state machine into a Tokenizer producing
// tagged Token values.
type basicTokenizer struct {
	tag   string
	state stateMachine
}

func (b *basicTokenizer) Reset() bool       { return b.state.Reset() }
func (b *basicTokenizer) Feed(c rune) State { return b.state.Feed(c) }

func (b *basicTokenizer) MakeToken(data []rune) (interface{}, bool) {
	return Token{Tag: b.tag, Contents: string(data)}, true
}

// --- Literal ---------------------------------------------------------------

type literal struct {
	progress int
	data     []rune
}

func (l *literal) Reset() bool {
	l.progress = 0
	return len(l.data) == 0
}

func (l *literal) Feed(c rune) State {
	if l.progress == len(l.data) || c != l.data[l.progress] {
		return Failed
	}
	l.progress++
	if l.progress == len(l.data) {
		return Completed
	}
	return Pending
}

// Literal matches exactly the characters of lit, in order.
func Literal(tag string, lit string) Tokenizer {
	return &basicTokenizer{tag: tag, state: &literal{data: []rune(lit)}}
}

// --- OneOf -----------------------------------------------------------------

type oneOf struct {
	chars map[rune]struct{}
	done  bool
}

func (o *oneOf) Reset() bool {
	o.done = false
	return false
}

func (o *oneOf) Feed(c rune) State {
	if o.done {
		return Failed
	}
	if _, ok := o.chars[c]; !ok {
		return Failed
	}
	o.done = true
	return Completed
}

// OneOf matches a single character out of set.
func OneOf(tag string, set string) Tokenizer {
	chars := make(map[rune]struct{}, len(set))
	for _, c := range set {
		chars[c] = struct{}{}
	}
	return &basicTokenizer{tag: tag, state: &oneOf{chars: chars}}
}

// --- Chain -----------------------------------------------------------------

type chain struct {
	tokenizers []Tokenizer
	progress   int
	failed     bool
}

func (ch *chain) Reset() bool {
	ch.progress = 0
	ch.failed = false
	allEmpty := true
	for _, t := range ch.tokenizers {
		allEmpty = t.Reset() && allEmpty
	}
	return allEmpty
}

func (ch *chain) Feed(c rune) State {
	if ch.failed || ch.progress == len(ch.tokenizers) {
		return Failed
	}
	switch ch.tokenizers[ch.progress].Feed(c) {
	case Failed:
		ch.failed = true
		return Failed
	case Completed:
		ch.progress++
		if ch.progress == len(ch.tokenizers) {
			return Completed
		}
		return Pending
	}
	return Pending
}

// Chain matches its tokenizers one after the other; the resulting token
// covers the concatenation.
func Chain(tag string, tokenizers ...Tokenizer) Tokenizer {
	return &basicTokenizer{tag: tag, state: &chain{tokenizers: tokenizers}}
}

// --- FirstOf ---------------------------------------------------------------

type firstOf struct {
	tokenizers []Tokenizer
	chosen     int
}

func (f *firstOf) Reset() bool {
	f.chosen = -1
	anyEmpty := false
	for _, t := range f.tokenizers {
		anyEmpty = t.Reset() || anyEmpty
	}
	return anyEmpty
}

func (f *firstOf) Feed(c rune) State {
	if f.chosen >= 0 {
		return f.tokenizers[f.chosen].Feed(c)
	}
	for i, t := range f.tokenizers {
		if st := t.Feed(c); st != Failed {
			f.chosen = i
			return st
		}
	}
	return Failed
}

func (f *firstOf) MakeToken(data []rune) (interface{}, bool) {
	return f.tokenizers[f.chosen].MakeToken(data)
}

// FirstOf commits to the first tokenizer that does not fail on the first
// character and produces that tokenizer's token. Note the commitment:
// alternatives are not revisited, so an earlier short match wins over a
// later long one.
func FirstOf(tokenizers ...Tokenizer) Tokenizer {
	return &firstOf{tokenizers: tokenizers, chosen: -1}
}

// --- LongestOf -------------------------------------------------------------

type longestOf struct {
	tokenizers    []Tokenizer
	inProgress    []int
	lastCompleted int
}

func (l *longestOf) Reset() bool {
	l.inProgress = l.inProgress[:0]
	for i := range l.tokenizers {
		l.inProgress = append(l.inProgress, i)
	}
	l.lastCompleted = -1
	anyEmpty := false
	for _, t := range l.tokenizers {
		anyEmpty = t.Reset() || anyEmpty
	}
	return anyEmpty
}

func (l *longestOf) Feed(c rune) State {
	var completed []int
	alive := l.inProgress[:0]
	for _, idx := range l.inProgress {
		switch l.tokenizers[idx].Feed(c) {
		case Pending:
			alive = append(alive, idx)
		case Completed:
			completed = append(completed, idx)
			alive = append(alive, idx)
		case Failed:
			// drop it
		}
	}
	l.inProgress = alive
	if len(completed) > 0 {
		l.lastCompleted = completed[0]
		return Completed
	}
	if len(l.inProgress) == 0 {
		return Failed
	}
	return Pending
}

func (l *longestOf) MakeToken(data []rune) (interface{}, bool) {
	return l.tokenizers[l.lastCompleted].MakeToken(data)
}

// LongestOf feeds all tokenizers in lock-step and keeps completing as long
// as any of them does, so the token cut by the driver is the longest match;
// ties go to the earliest tokenizer in the argument list.
func LongestOf(tokenizers ...Tokenizer) Tokenizer {
	return &longestOf{lastCompleted: -1, tokenizers: tokenizers}
}

// --- Map, Eat, Empty -------------------------------------------------------

type mapper struct {
	tokenizer Tokenizer
	makeToken func(data []rune) (interface{}, bool)
}

func (m *mapper) Reset() bool       { return m.tokenizer.Reset() }
func (m *mapper) Feed(c rune) State { return m.tokenizer.Feed(c) }

func (m *mapper) MakeToken(data []rune) (interface{}, bool) {
	return m.makeToken(data)
}

// Map matches like tokenizer but builds its tokens with makeToken.
func Map(tokenizer Tokenizer, makeToken func(data []rune) (interface{}, bool)) Tokenizer {
	return &mapper{tokenizer: tokenizer, makeToken: makeToken}
}

// Eat matches like tokenizer but produces no token; use it for separators
// and other ignorable input.
func Eat(tokenizer Tokenizer) Tokenizer {
	return Map(tokenizer, func([]rune) (interface{}, bool) { return nil, false })
}

// Empty matches the empty string and produces nothing.
func Empty(tag string) Tokenizer {
	return Eat(Literal(tag, ""))
}
