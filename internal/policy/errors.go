package policy

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrValueParse is matched by every *ValueParseError.
var ErrValueParse = errors.New("malformed numeric value")

// ValueParseError reports a constant whose value text is not an integer.
type ValueParseError struct {
	Line    int
	Prefix  string
	Literal string
	Text    string
	Err     error
}

func (e *ValueParseError) Error() string {
	return fmt.Sprintf("line %d: %s_%s: cannot parse value %q: %v", e.Line, e.Prefix, e.Literal, e.Text, e.Err)
}

func (e *ValueParseError) Unwrap() []error {
	return []error{ErrValueParse, e.Err}
}

// ParseValue parses hex (0x or 0X prefix) or decimal text into a 64-bit value.
func ParseValue(text string) (uint64, error) {
	if len(text) > 1 && text[0] == '0' && (text[1] == 'x' || text[1] == 'X') {
		return strconv.ParseUint(text[2:], 16, 64)
	}

	return strconv.ParseUint(text, 10, 64)
}
