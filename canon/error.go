package canon

import "fmt"

// Code is a stable, machine-matchable error code (see filterql.Code).
type Code string

const (
	ErrUnsupportedNode Code = "E_NORMALIZE_UNSUPPORTED_NODE"
	ErrGeneric         Code = "E_NORMALIZE_GENERIC"
)

// Error is raised by Normalize. NodeKind, when non-empty, names the
// surface-tree node kind that could not be normalized.
type Error struct {
	Code     Code
	Message  string
	NodeKind string
}

func (e *Error) Error() string {
	if e.NodeKind != "" {
		return fmt.Sprintf("%s (node kind: %s).", e.Message, e.NodeKind)
	}
	return e.Message + "."
}

func errUnsupported(message, nodeKind string) *Error {
	return &Error{Code: ErrUnsupportedNode, Message: message, NodeKind: nodeKind}
}

func errGeneric(message string) *Error {
	return &Error{Code: ErrGeneric, Message: message}
}
