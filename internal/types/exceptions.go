package types

import (
	"errors"
	"strings"

	"github.com/samber/lo"
)

type ErrorTag string

const (
	ArgumentCountErrorTag   ErrorTag = "ArgumentCountError"
	InvalidRadixErrorTag    ErrorTag = "InvalidRadixError"
	NoDigitsErrorTag        ErrorTag = "NoDigitsError"
	UnexpectedTokenErrorTag ErrorTag = "UnexpectedTokenError"
	ValueOutOfRangeErrorTag ErrorTag = "ValueOutOfRangeError"
)

type Exception interface {
	error
	Exception() any
}

type Error struct {
	Tag   ErrorTag
	Err   error
	Extra map[string]any

	// Detail is a pre-rendered, possibly multi-line diagnostic pointing into the source.
	Detail string
}

var _ Exception = (*Error)(nil)

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Tag)
	}

	var b strings.Builder
	b.WriteString(string(e.Tag))
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Diagnostic returns the caret form when available and the plain message otherwise.
func (e *Error) Diagnostic() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Error()
}

func (e *Error) Exception() any {
	tags := []any{e.Tag}
	for err := errors.Unwrap(error(e)); err != nil; err = errors.Unwrap(err) {
		if e, ok := err.(*Error); ok {
			tags = append(tags, e.Tag)
		}
	}

	o := map[string]any{
		"tags": tags,
	}
	if e.Err != nil {
		o["message"] = e.Err.Error()
	}
	if len(e.Extra) != 0 {
		o = lo.Assign(o, e.Extra)
	}
	return o
}

// HasTag reports whether err or any error it wraps is an *Error tagged with tag.
func HasTag(err error, tag ErrorTag) bool {
	for ; err != nil; err = errors.Unwrap(err) {
		if e, ok := err.(*Error); ok && e.Tag == tag {
			return true
		}
	}
	return false
}
