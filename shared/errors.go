package shared

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidWidth = errors.New("invalid run width")
	ErrInvalidMode  = errors.New("invalid mode; expected `-` (compress) or `+` (expand)")
	ErrEndOfStream  = errors.New("unexpected end of stream")
	ErrRunOverflow  = errors.New("run length exceeds field width")
	ErrTooManyRuns  = errors.New("too many runs for the count field")
)

type HeaderError struct {
	Field    string
	Expected string
	Found    string
}

func (err HeaderError) Error() string {
	return fmt.Sprintf("malformed frame header: `%v`; expected: %v, found: %v",
		err.Field, err.Expected, err.Found)
}
