package uniform

import (
	"fmt"
	"strings"
)

// Kind categorizes a layout error.
type Kind string

const (
	KindDuplicateField     Kind = "duplicate_field"
	KindDuplicateLayout    Kind = "duplicate_layout"
	KindFieldNotFound      Kind = "field_not_found"
	KindTypeMismatch       Kind = "type_mismatch"
	KindInvalidDeclaration Kind = "invalid_declaration"
)

// Sentinels for errors.Is. Matching is by Kind only.
var (
	ErrDuplicateField     = &Error{Kind: KindDuplicateField}
	ErrDuplicateLayout    = &Error{Kind: KindDuplicateLayout}
	ErrFieldNotFound      = &Error{Kind: KindFieldNotFound}
	ErrTypeMismatch       = &Error{Kind: KindTypeMismatch}
	ErrInvalidDeclaration = &Error{Kind: KindInvalidDeclaration}
)

// Error is the structured error returned for recoverable layout failures:
// conflicting declarations, bad declaration data and writer lookups that miss.
// Programmer errors such as an unregistered TypeTag panic instead.
type Error struct {
	Cause  error
	Kind   Kind
	Layout string
	Field  string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString("uniform: ")
	b.WriteString(string(e.Kind))

	if e.Layout != "" || e.Field != "" {
		b.WriteString(" at ")
		switch {
		case e.Layout != "" && e.Field != "":
			b.WriteString(e.Layout)
			b.WriteByte('.')
			b.WriteString(e.Field)
		case e.Layout != "":
			b.WriteString(e.Layout)
		default:
			b.WriteString(e.Field)
		}
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same Kind
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// errorBuilder provides structured error construction inside the package.
type errorBuilder struct {
	err Error
}

func newError(kind Kind) *errorBuilder {
	return &errorBuilder{err: Error{Kind: kind}}
}

func (b *errorBuilder) layout(name string) *errorBuilder {
	b.err.Layout = name
	return b
}

func (b *errorBuilder) field(name string) *errorBuilder {
	b.err.Field = name
	return b
}

func (b *errorBuilder) cause(err error) *errorBuilder {
	b.err.Cause = err
	return b
}

func (b *errorBuilder) detail(msg string, args ...any) *errorBuilder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

func (b *errorBuilder) build() *Error {
	return &b.err
}
