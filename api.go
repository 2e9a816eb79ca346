package filterql

import (
	"strings"

	"github.com/kolsrud/filterql/canon"
	"github.com/kolsrud/filterql/eval"
	"github.com/kolsrud/filterql/ql"
	"github.com/kolsrud/filterql/record"
)

// NormalizeOptions mirrors canon.Options; re-exported here so callers
// of the facade never need to import the ql/canon/eval sub-packages
// directly. Each entry in TextSearchTargets is a dot-separated path
// (spec §6.1: "path | segment"), e.g. "name" or "ingredients.name".
type NormalizeOptions struct {
	TextSearchTargets []string
}

// EvalOptions mirrors eval.Options.
type EvalOptions struct {
	IgnoreCase     bool
	FoldDiacritics bool
	Locale         string
}

// Predicate is a compiled filter; see eval.Predicate.
type Predicate func(r record.Value) (bool, error)

// Parse compiles filter expression text into a surface tree.
func Parse(text string) (*ql.Node, []ql.Token, error) {
	root, tokens, err := ql.Parse(text)
	if err != nil {
		return nil, tokens, AsError(err)
	}
	return root, tokens, nil
}

// Normalize rewrites a surface tree into its canonical form.
func Normalize(root *ql.Node, opts NormalizeOptions) (*canon.Node, error) {
	targets := make([]ql.Path, len(opts.TextSearchTargets))
	for i, t := range opts.TextSearchTargets {
		targets[i] = strings.Split(t, ".")
	}
	tree, err := canon.Normalize(root, canon.Options{TextSearchTargets: targets})
	if err != nil {
		return nil, AsError(err)
	}
	return tree, nil
}

// BuildPredicate compiles a canonical tree into a reusable Predicate.
func BuildPredicate(tree *canon.Node, opts EvalOptions) Predicate {
	p := eval.BuildPredicate(tree, eval.Options{
		IgnoreCase:     opts.IgnoreCase,
		FoldDiacritics: opts.FoldDiacritics,
		Locale:         opts.Locale,
	})
	return func(r record.Value) (bool, error) {
		ok, err := p(r)
		if err != nil {
			return false, AsError(err)
		}
		return ok, nil
	}
}

// Evaluate parses, normalizes and evaluates text against r in one
// call. It is sugar for callers that compile a filter once per use
// rather than reusing a Predicate across many records.
func Evaluate(text string, r record.Value, normOpts NormalizeOptions, evalOpts EvalOptions) (bool, error) {
	surface, _, err := Parse(text)
	if err != nil {
		return false, err
	}
	tree, err := Normalize(surface, normOpts)
	if err != nil {
		return false, err
	}
	return BuildPredicate(tree, evalOpts)(r)
}
