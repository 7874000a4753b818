// The errors package holds the error types shared by the model codec and the
// tools built on it: lists that collect the warnings of a decode, and errors
// that name the file they came from.
//
// The functions New, Unwrap, Is and As forward to the standard errors package,
// so that callers need only one import.
package errors

import (
	"errors"
	"strconv"
	"strings"
)

func New(text string) error {
	return errors.New(text)
}

func Unwrap(err error) error {
	return errors.Unwrap(err)
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Errors collects the problems found while processing a model, such as the
// warnings of each chunk, or the failures of each file given to a command.
type Errors []error

// Error reports a single problem as is. Several problems are listed under a
// count, one per line, with continuation lines indented to match.
func (errs Errors) Error() string {
	switch len(errs) {
	case 0:
		return "no errors"
	case 1:
		return errs[0].Error()
	}
	var buf strings.Builder
	buf.WriteString(strconv.Itoa(len(errs)))
	buf.WriteString(" errors:")
	for _, err := range errs {
		buf.WriteString("\n\t")
		buf.WriteString(strings.ReplaceAll(err.Error(), "\n", "\n\t"))
	}
	return buf.String()
}

// Unwrap returns the collected errors, so that Is and As search each of them.
func (errs Errors) Unwrap() []error {
	return errs
}

// Append adds each non-nil err to the list. An Errors argument is flattened
// into the list rather than nested.
func (errs Errors) Append(err ...error) Errors {
	for _, err := range err {
		switch err := err.(type) {
		case nil:
		case Errors:
			errs = errs.Append(err...)
		default:
			errs = append(errs, err)
		}
	}
	return errs
}

// Return returns nil for an empty list, and the list otherwise.
func (errs Errors) Return() error {
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Union flattens errs into a single list, or returns nil if there is nothing
// to report.
func Union(errs ...error) error {
	return Errors(nil).Append(errs...).Return()
}

// FileError reports an error that occurred while handling the file at Path.
type FileError struct {
	Path  string
	Cause error
}

func (err FileError) Error() string {
	if err.Cause == nil {
		return err.Path + ": unknown error"
	}
	return err.Path + ": " + err.Cause.Error()
}

func (err FileError) Unwrap() error {
	return err.Cause
}
