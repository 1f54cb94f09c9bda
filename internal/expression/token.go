package expression

type TokenKind int

const (
	ReservedTokenKind TokenKind = iota
	NumberTokenKind
	UnknownTokenKind
	EOFTokenKind
)

func (k TokenKind) String() string {
	switch k {
	case ReservedTokenKind:
		return "reserved"
	case NumberTokenKind:
		return "number"
	case UnknownTokenKind:
		return "unknown"
	case EOFTokenKind:
		return "EOF"
	default:
		return "invalid"
	}
}

// Coordinate is a zero-based location in the source. Row is always 0 because input is a single line.
type Coordinate struct {
	Row    int
	Column int
}

type Token interface {
	Kind() TokenKind
	Text() string
	Coordinate() (Coordinate, bool)
}

// Literal is the source text of a token and where it begins.
type Literal struct {
	Str string
	Pos Coordinate
}

func (l Literal) Text() string {
	return l.Str
}

func (l Literal) Coordinate() (Coordinate, bool) {
	return l.Pos, true
}

type ReservedToken struct {
	Literal
}

func (ReservedToken) Kind() TokenKind {
	return ReservedTokenKind
}

type NumberToken struct {
	Literal
	Value int64
}

func (NumberToken) Kind() TokenKind {
	return NumberTokenKind
}

type UnknownToken struct {
	Literal
}

func (UnknownToken) Kind() TokenKind {
	return UnknownTokenKind
}

type EOFToken struct{}

func (EOFToken) Kind() TokenKind {
	return EOFTokenKind
}

func (EOFToken) Text() string {
	return ""
}

func (EOFToken) Coordinate() (Coordinate, bool) {
	return Coordinate{}, false
}

// CoordinateOf returns where tok begins, or false for the end of input.
func CoordinateOf(tok Token) (Coordinate, bool) {
	switch t := tok.(type) {
	case ReservedToken:
		return t.Pos, true
	case NumberToken:
		return t.Pos, true
	case UnknownToken:
		return t.Pos, true
	case EOFToken:
		return Coordinate{}, false
	default:
		return Coordinate{}, false
	}
}
