package expression

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/karupanerura/go9cc/internal/types"
)

// Render returns the source line followed by a caret under the token at index and message.
// The index is clamped into the token range, and the end of input points just past the source.
func (s *TokenStream) Render(index int, message string) string {
	pos := s.coordinateAt(index)

	var b strings.Builder
	b.WriteString(s.source)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat(" ", pos.Column))
	b.WriteString("^ ")
	b.WriteString(message)
	return b.String()
}

func (s *TokenStream) RenderAtCursor(message string) string {
	return s.Render(s.index, message)
}

// ErrorAt builds a tagged error whose Detail is the rendered diagnostic for the token at index.
func (s *TokenStream) ErrorAt(index int, tag types.ErrorTag, message string) *types.Error {
	index = s.clamp(index)
	pos := s.coordinateAt(index)
	return &types.Error{
		Tag: tag,
		Err: errors.New(message),
		Extra: map[string]any{
			"row":    pos.Row,
			"column": pos.Column,
			"token":  s.tokens[index].Text(),
		},
		Detail: s.Render(index, message),
	}
}

func (s *TokenStream) ErrorAtCursor(tag types.ErrorTag, message string) *types.Error {
	return s.ErrorAt(s.index, tag, message)
}

func (s *TokenStream) clamp(index int) int {
	if index < 0 {
		return 0
	}
	if last := len(s.tokens) - 1; index > last {
		return last
	}
	return index
}

func (s *TokenStream) coordinateAt(index int) Coordinate {
	if pos, ok := CoordinateOf(s.tokens[s.clamp(index)]); ok {
		return pos
	}
	return Coordinate{Row: 0, Column: utf8.RuneCountInString(s.source)}
}
