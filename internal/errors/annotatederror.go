// Package errors provides error annotation with slog attributes and source
// locations, plus re-exports of the standard library helpers so call sites
// only need one errors import.
package errors

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"strconv"
)

// annotatedError carries a message, an optional cause, slog attributes, and
// the program counter of its creation site.
type annotatedError struct {
	msg   string
	cause error
	attrs []slog.Attr
	pc    uintptr
}

func (e *annotatedError) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e *annotatedError) Unwrap() error {
	return e.cause
}

// caller returns the program counter skip frames above the caller of caller.
func caller(skip int) uintptr {
	var pcs [1]uintptr
	runtime.Callers(skip+2, pcs[:])
	return pcs[0]
}

// New creates an annotated error recording the call site.
func New(msg string, attrs ...slog.Attr) error {
	return &annotatedError{msg: msg, cause: nil, attrs: attrs, pc: caller(1)}
}

// NewSentinel creates a plain error without annotations. Use it for
// package-level sentinel declarations that call sites match with Is.
func NewSentinel(msg string) error {
	return stderrors.New(msg)
}

// Wrap annotates err with a message and attributes. Wrapping a nil error
// still produces an error so a buggy call site surfaces in logs instead of
// disappearing.
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	return &annotatedError{msg: msg, cause: err, attrs: attrs, pc: caller(1)}
}

// DecoratePanic converts a recovered panic value into an annotated error
// pointing at the recovery site. Returns nil when excp is nil.
func DecoratePanic(excp any) error {
	if excp == nil {
		return nil
	}
	return &annotatedError{
		msg:   fmt.Sprintf("panic: %v", excp),
		cause: nil,
		attrs: nil,
		pc:    caller(1),
	}
}

// SlogError renders err as a structured "error" group holding the message,
// every annotation in the error chain, and the source location of the
// outermost annotated error.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	attrs := []slog.Attr{slog.String("message", err.Error())}
	source := ""
	for _, annotated := range collectAnnotated(err) {
		for _, attr := range annotated.attrs {
			attrs = append(attrs, slog.Attr{Key: "annotations." + attr.Key, Value: attr.Value})
		}
		if source == "" && annotated.pc != 0 {
			source = sourceLocation(annotated.pc)
		}
	}
	if source != "" {
		attrs = append(attrs, slog.String("source", source))
	}
	return slog.Attr{Key: "error", Value: slog.GroupValue(attrs...)}
}

// collectAnnotated walks the error tree in depth-first order, following both
// single-cause and joined errors.
func collectAnnotated(err error) []*annotatedError {
	if err == nil {
		return nil
	}
	var out []*annotatedError
	if annotated, ok := err.(*annotatedError); ok { //nolint:errorlint // only this node, children follow below.
		out = append(out, annotated)
	}
	switch unwrapped := err.(type) { //nolint:errorlint // walking the tree on purpose.
	case interface{ Unwrap() error }:
		out = append(out, collectAnnotated(unwrapped.Unwrap())...)
	case interface{ Unwrap() []error }:
		for _, joined := range unwrapped.Unwrap() {
			out = append(out, collectAnnotated(joined)...)
		}
	}
	return out
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Unwrap returns the result of calling the Unwrap method on err.
func Unwrap(err error) error {
	return stderrors.Unwrap(err)
}

// Join wraps the given errors into a single error, discarding nils.
func Join(errs ...error) error {
	return stderrors.Join(errs...)
}

func sourceLocation(pc uintptr) string {
	frame, _ := runtime.CallersFrames([]uintptr{pc}).Next()
	if frame.File == "" {
		return ""
	}
	return filepath.Base(frame.File) + ":" + strconv.Itoa(frame.Line)
}
