package openfootball

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedLine matches every line-level parse failure.
	ErrMalformedLine = errors.New("malformed line")
	ErrMissingHeader = errors.New("date marker before season header")
)

// LineError names the offending line. Line is 1-based and zero when the
// text was classified outside of a file.
type LineError struct {
	Line  int
	Text  string
	Cause error
}

func (e *LineError) Error() string {
	msg := ErrMalformedLine.Error()
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (%v)", msg, e.Cause)
	}
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %q", e.Line, msg, e.Text)
	}
	return fmt.Sprintf("%s: %q", msg, e.Text)
}

func (e *LineError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrMalformedLine}
	}
	return []error{ErrMalformedLine, e.Cause}
}

func malformed(text string, cause error) *LineError {
	return &LineError{Text: text, Cause: cause}
}
