package expression

type lexer struct {
	rest   string
	column int
	tokens []Token
}

func newLexer(source string) *lexer {
	return &lexer{
		rest:   source,
		column: 0,
		tokens: nil,
	}
}

// Scan splits source into tokens in a single pass. The first character that cannot start a token
// turns the whole remaining input into one UnknownToken and ends the scan. The result always ends
// with exactly one EOFToken.
func Scan(source string) []Token {
	l := newLexer(source)
	l.scan()
	return l.tokens
}

func (l *lexer) scan() {
	for l.rest != "" {
		if !l.next() {
			break
		}
	}
	l.push(EOFToken{})
}

func (l *lexer) push(t Token) {
	l.tokens = append(l.tokens, t)
}

func (l *lexer) literal(n int) Literal {
	return Literal{
		Str: l.rest[:n],
		Pos: Coordinate{Row: 0, Column: l.column},
	}
}

func (l *lexer) advance(n int) {
	l.rest = l.rest[n:]
	l.column += n
}

// next consumes one step of input and reports whether scanning may continue.
func (l *lexer) next() bool {
	switch l.rest[0] {
	case ' ':
		l.advance(1) // just skip white spaces
		return true

	case '+', '-':
		l.push(ReservedToken{l.literal(1)})
		l.advance(1)
		return true

	default:
		v, rest, err := ParseInteger(l.rest, 10)
		if err != nil {
			l.push(UnknownToken{l.literal(len(l.rest))})
			return false
		}

		consumed := len(l.rest) - len(rest)
		l.push(NumberToken{Literal: l.literal(consumed), Value: v})
		l.advance(consumed)
		return true
	}
}
