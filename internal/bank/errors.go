package bank

import "fmt"

// FormatError reports a question bank payload that could not be loaded.
// Index is -1 when the payload as a whole is malformed.
type FormatError struct {
	Index  int
	Field  string
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	msg := "bank: malformed payload"
	if e.Index >= 0 {
		msg = fmt.Sprintf("bank: record %d", e.Index)
	}
	if e.Field != "" {
		msg += ": " + e.Field
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FormatError) Unwrap() error { return e.Err }
