package emitorcsv

const (
	stackInitialCap = 8
	stackGrowBy     = 8
)

// tagStack holds the tag tokens between the active group element and the
// current position in the document, in nesting order. It grows by a fixed
// increment instead of failing once the initial capacity is exhausted.
type tagStack struct {
	tokens []string
}

func newTagStack() tagStack {
	return tagStack{tokens: make([]string, 0, stackInitialCap)}
}

func (s *tagStack) push(tok string) {
	if len(s.tokens) == cap(s.tokens) {
		grown := make([]string, len(s.tokens), cap(s.tokens)+stackGrowBy)
		copy(grown, s.tokens)
		s.tokens = grown
	}
	s.tokens = append(s.tokens, tok)
}

// pop removes the most recent token. Popping an empty stack is a no-op so
// that surplus close events can never underflow it.
func (s *tagStack) pop() (string, bool) {
	if len(s.tokens) == 0 {
		return "", false
	}
	tok := s.tokens[len(s.tokens)-1]
	s.tokens = s.tokens[:len(s.tokens)-1]
	return tok, true
}

func (s *tagStack) reset() {
	s.tokens = s.tokens[:0]
}

func (s *tagStack) depth() int {
	return len(s.tokens)
}
