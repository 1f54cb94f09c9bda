package expression

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/karupanerura/go9cc/internal/types"
)

const maxRadix = 36

// ParseInteger reads the longest run of radix digits at the head of input and returns its value
// together with the unconsumed rest of input, starting at the first non-digit character.
func ParseInteger(input string, radix int) (int64, string, error) {
	if radix > maxRadix {
		return 0, "", &types.Error{
			Tag: types.InvalidRadixErrorTag,
			Err: fmt.Errorf("too big radix (> %d): %d", maxRadix, radix),
		}
	}
	if radix < 2 {
		return 0, "", &types.Error{
			Tag: types.InvalidRadixErrorTag,
			Err: fmt.Errorf("too small radix (< 2): %d", radix),
		}
	}

	end := 0
	for end != len(input) && isDigit(input[end], radix) {
		end++
	}
	if end == 0 {
		return 0, "", &types.Error{
			Tag: types.NoDigitsErrorTag,
			Err: errors.New("no number is parsed"),
		}
	}

	v, err := strconv.ParseInt(input[:end], radix, 64)
	if err != nil {
		return 0, "", &types.Error{
			Tag: types.ValueOutOfRangeErrorTag,
			Err: fmt.Errorf("strconv.ParseInt(%q, %d): %w", input[:end], radix, err),
		}
	}
	return v, input[end:], nil
}

func isDigit(c byte, radix int) bool {
	var d int
	switch {
	case '0' <= c && c <= '9':
		d = int(c - '0')
	case 'a' <= c && c <= 'z':
		d = int(c-'a') + 10
	case 'A' <= c && c <= 'Z':
		d = int(c-'A') + 10
	default:
		return false
	}
	return d < radix
}
