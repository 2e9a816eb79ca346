// Package filterql is a small, embeddable filter expression engine: a
// human-writable surface syntax compiles through a canonical
// intermediate tree into a predicate over in-memory records.
//
// The pipeline has three pure stages, each independently usable:
//
//	ql.Parse        surface text      -> surface tree
//	canon.Normalize  surface tree      -> canonical tree
//	eval.BuildPredicate canonical tree -> record -> bool
//
// This package is a thin facade wiring the three stages together for
// callers that want the whole pipeline in one call, plus a unified
// error type (Error) that every stage's own error unwraps to.
package filterql
