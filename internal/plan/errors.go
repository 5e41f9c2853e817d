package plan

import (
	"errors"
	"fmt"
	"strings"
)

// MissingFieldError reports a required key that is absent or empty.
type MissingFieldError struct {
	Path string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: required field is missing", e.Path)
}

// UnknownTypeError reports a data_type outside the recognized set.
type UnknownTypeError struct {
	Path string
	Type string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("%s: unknown data type %q", e.Path, e.Type)
}

// UnresolvedPrefixError reports a rep_prefix or value_prefix that names no
// context entry.
type UnresolvedPrefixError struct {
	Path   string
	Prefix string
}

func (e *UnresolvedPrefixError) Error() string {
	return fmt.Sprintf("%s: prefix %q is not defined in context", e.Path, e.Prefix)
}

// MissingDelimiterError reports a list-typed column without a delimiter.
type MissingDelimiterError struct {
	Path string
}

func (e *MissingDelimiterError) Error() string {
	return fmt.Sprintf("%s: list column requires a delimiter", e.Path)
}

// DuplicateKeyError reports a key that appears more than once in one object.
type DuplicateKeyError struct {
	Path string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s: key is defined more than once", e.Path)
}

// InvalidURIError reports a context value that is not an absolute URI prefix.
type InvalidURIError struct {
	Path  string
	Value string
}

func (e *InvalidURIError) Error() string {
	return fmt.Sprintf("%s: %q is not an absolute URI prefix", e.Path, e.Value)
}

// InvalidDefaultError reports a default_value that does not convert to the
// column's data type.
type InvalidDefaultError struct {
	Path  string
	Value string
	Type  string
	Err   error
}

func (e *InvalidDefaultError) Error() string {
	return fmt.Sprintf("%s: default %q is not a valid %s: %v", e.Path, e.Value, e.Type, e.Err)
}

func (e *InvalidDefaultError) Unwrap() error {
	return e.Err
}

// ValidationErrors collects every problem found in one plan.
type ValidationErrors struct {
	Errors []error
}

func (v *ValidationErrors) Error() string {
	msgs := make([]string, len(v.Errors))
	for i, err := range v.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("load plan has %d validation error(s): %s", len(v.Errors), strings.Join(msgs, "; "))
}

// Unwrap lets errors.Is and errors.As see each individual error.
func (v *ValidationErrors) Unwrap() []error {
	return v.Errors
}

// Join returns a *ValidationErrors holding errs followed by any errors
// already collected in err, or nil when there are none.
func Join(err error, errs ...error) error {
	joined := &ValidationErrors{Errors: append([]error(nil), errs...)}
	var verrs *ValidationErrors
	if errors.As(err, &verrs) {
		joined.Errors = append(joined.Errors, verrs.Errors...)
	} else if err != nil {
		joined.add(err)
	}
	return joined.orNil()
}

func (v *ValidationErrors) add(err error) {
	v.Errors = append(v.Errors, err)
}

func (v *ValidationErrors) orNil() error {
	if len(v.Errors) == 0 {
		return nil
	}
	return v
}
