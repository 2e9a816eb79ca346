package filterql

import (
	"github.com/kolsrud/filterql/canon"
	"github.com/kolsrud/filterql/eval"
	"github.com/kolsrud/filterql/ql"
)

// Kind groups errors by pipeline stage (spec §4.4, C5).
type Kind string

const (
	KindParse      Kind = "Parse"
	KindNormalize  Kind = "Normalize"
	KindEvaluation Kind = "Evaluation"
	KindTranslator Kind = "Translator"
)

// Code is the stable, machine-matchable error code shared by every
// pipeline stage and every adapter.
type Code string

// Error is the common supertype of every error this module raises: it
// carries a Kind, a Code and a message, and always unwraps to the
// concrete sub-package error (ql.Error, canon.Error, eval.Error, or an
// adapter's own error type) via errors.As/errors.Unwrap.
type Error struct {
	Kind    Kind
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.cause }

// AsError wraps an error returned by Parse/Normalize/Evaluate into the
// unified Error type. It returns nil for a nil input; an error of any
// other concrete type (for example an adapter's own error) is wrapped
// with an empty Kind and Code and kept as the cause.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	switch e := err.(type) {
	case *ql.Error:
		return &Error{Kind: KindParse, Code: Code(e.Code), Message: e.Error(), cause: e}
	case *canon.Error:
		return &Error{Kind: KindNormalize, Code: Code(e.Code), Message: e.Error(), cause: e}
	case *eval.Error:
		return &Error{Kind: KindEvaluation, Code: Code(e.Code), Message: e.Error(), cause: e}
	default:
		return &Error{Kind: "", Code: "", Message: err.Error(), cause: err}
	}
}
