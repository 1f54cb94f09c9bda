package expression

// TokenStream is a cursor over the tokens of one source string.
// The tokens are fixed at construction; only the cursor moves.
type TokenStream struct {
	source string
	tokens []Token
	index  int
}

func NewTokenStream(source string) *TokenStream {
	return &TokenStream{
		source: source,
		tokens: Scan(source),
		index:  0,
	}
}

func (s *TokenStream) Source() string {
	return s.source
}

func (s *TokenStream) Index() int {
	return s.index
}

func (s *TokenStream) Tokens() []Token {
	tokens := make([]Token, len(s.tokens))
	copy(tokens, s.tokens)
	return tokens
}

func (s *TokenStream) Current() Token {
	return s.tokens[s.index]
}

func (s *TokenStream) CurrentText() string {
	switch t := s.Current().(type) {
	case ReservedToken:
		return t.Str
	case NumberToken:
		return t.Str
	case UnknownToken:
		return t.Str
	default:
		return ""
	}
}

// ConsumeIfOp advances when the current token's text equals expected, whatever its kind.
func (s *TokenStream) ConsumeIfOp(expected string) bool {
	switch s.Current().(type) {
	case ReservedToken, NumberToken, UnknownToken:
		if s.CurrentText() != expected {
			return false
		}
		// the last token is always EOF, so index+1 stays in range
		s.index++
		return true
	default:
		return false
	}
}

func (s *TokenStream) ConsumeIfNumber() (int64, bool) {
	t, ok := s.Current().(NumberToken)
	if !ok {
		return 0, false
	}
	s.index++
	return t.Value, true
}

func (s *TokenStream) AtEnd() bool {
	_, ok := s.Current().(EOFToken)
	return ok
}
