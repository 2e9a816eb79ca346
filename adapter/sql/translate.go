// Package sql is a reference external translator (spec §6.4): it turns
// a canonical tree into a parameterized SQL WHERE clause instead of
// evaluating it in memory. It never opens a database connection —
// dialects only change how an identifier is quoted and how parameter
// placeholders are written.
package sql

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/kolsrud/filterql/canon"
	"github.com/kolsrud/filterql/ql"
)

// Dialect selects identifier quoting and placeholder style.
type Dialect int

const (
	// Postgres quotes identifiers with double quotes and uses
	// numbered placeholders ($1, $2, ...), matching jackc/pgx.
	Postgres Dialect = iota
	// MSSQL quotes identifiers with brackets and uses '?' placeholders,
	// matching microsoft/go-mssqldb's driver convention.
	MSSQL
)

// WhereClause is the translation result: a SQL boolean expression plus
// its positional arguments, ready to be spliced after "WHERE ".
type WhereClause struct {
	Condition string
	Args      []any
}

// Code is the stable, machine-matchable error code shared with the
// rest of the pipeline (spec §4.4).
type Code string

const (
	ErrUnsupportedFeature Code = "E_ADAPTER_UNSUPPORTED_FEATURE"
	ErrGeneric            Code = "E_ADAPTER_GENERIC"
)

// Error is raised when a canonical node or operator has no translation
// for the target dialect.
type Error struct {
	Code    Code
	Message string
	Target  string
	Feature string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (target: %s, feature: %s).", e.Message, e.Target, e.Feature)
}

func errUnsupported(dialect Dialect, message, feature string) *Error {
	return &Error{Code: ErrUnsupportedFeature, Message: message, Target: dialectName(dialect), Feature: feature}
}

func dialectName(d Dialect) string {
	switch d {
	case Postgres:
		return "postgres"
	case MSSQL:
		return "mssql"
	}
	return "?"
}

// Translate renders tree as a parameterized WHERE clause for dialect.
//
// Path segments are translated to a dotted column/JSON-path expression
// rather than a join, since the canonical tree has no notion of table
// structure; callers translating against a real relational schema are
// expected to post-process Condition (e.g. rewriting "ingredients.name"
// into a correlated subquery) — see the Quantified case below, which is
// the one node kind this reference translator refuses outright.
func Translate(tree *canon.Node, dialect Dialect) (*WhereClause, error) {
	b := &builder{dialect: dialect}
	cond, err := b.build(tree)
	if err != nil {
		return nil, err
	}
	return &WhereClause{Condition: cond, Args: b.args}, nil
}

type builder struct {
	dialect Dialect
	args    []any
}

func (b *builder) build(n *canon.Node) (string, error) {
	switch n.Kind {
	case canon.KAnd:
		return b.joinChildren(n.Children, " AND ")
	case canon.KOr:
		return b.joinChildren(n.Children, " OR ")
	case canon.KNot:
		inner, err := b.build(n.Arg)
		if err != nil {
			return "", err
		}
		return "NOT (" + inner + ")", nil
	case canon.KComparison:
		return b.buildComparison(n)
	case canon.KText:
		return b.buildText(n)
	case canon.KQuantified:
		// Not translatable without knowledge of the target schema (is
		// the sequence a joined table, a JSON array column, ...?);
		// left to a schema-aware translator built on top of this one.
		return "", errUnsupported(b.dialect, "Quantified paths require schema-specific translation", "Quantified")
	}
	return "", errUnsupported(b.dialect, "Unrecognized canonical node", n.Kind.String())
}

func (b *builder) joinChildren(children []*canon.Node, sep string) (string, error) {
	parts := make([]string, len(children))
	for i, c := range children {
		part, err := b.build(c)
		if err != nil {
			return "", err
		}
		parts[i] = part
	}
	return "(" + strings.Join(parts, sep) + ")", nil
}

func (b *builder) buildComparison(n *canon.Node) (string, error) {
	op, err := comparisonOperator(n.CompOp)
	if err != nil {
		return "", b.wrapErr(err)
	}
	col := b.quoteColumn(n.Path)
	if n.Lit.Kind == ql.LitNull {
		if n.CompOp == canon.OpEq {
			return col + " IS NULL", nil
		}
		if n.CompOp == canon.OpNeq {
			return col + " IS NOT NULL", nil
		}
	}
	placeholder := b.bindArg(literalArg(n.Lit))
	return col + " " + op + " " + placeholder, nil
}

func (b *builder) buildText(n *canon.Node) (string, error) {
	col := b.quoteColumn(n.Path)
	var pattern string
	switch n.TextOp {
	case canon.TContains:
		pattern = "%" + escapeLike(n.Needle) + "%"
	case canon.TStartsWith:
		pattern = escapeLike(n.Needle) + "%"
	case canon.TEndsWith:
		pattern = "%" + escapeLike(n.Needle)
	default:
		return "", errUnsupported(b.dialect, "Unrecognized text operator", n.TextOp.String())
	}
	placeholder := b.bindArg(pattern)
	// Case-insensitive LIKE approximates the evaluator's locale-aware
	// folding; a discrepancy on locale-specific casing (e.g. Turkish
	// "İ"/"I") is expected and intentionally not corrected here.
	return "LOWER(" + col + ") LIKE LOWER(" + placeholder + ")", nil
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}

func comparisonOperator(op canon.CompOp) (string, error) {
	switch op {
	case canon.OpEq:
		return "=", nil
	case canon.OpNeq:
		return "<>", nil
	case canon.OpGt:
		return ">", nil
	case canon.OpGte:
		return ">=", nil
	case canon.OpLt:
		return "<", nil
	case canon.OpLte:
		return "<=", nil
	}
	return "", fmt.Errorf("unknown comparison operator")
}

func (b *builder) wrapErr(err error) error {
	return errUnsupported(b.dialect, err.Error(), "CompOp")
}

// quoteColumn renders a canonical (single-segment, post-lift) path as a
// quoted identifier. Multi-segment paths (only possible here if a
// caller hand-builds a canonical tree outside the normalizer) are
// joined with '.', each segment quoted individually.
func (b *builder) quoteColumn(path []string) string {
	quoted := make([]string, len(path))
	for i, seg := range path {
		quoted[i] = b.quoteIdentifier(seg)
	}
	return strings.Join(quoted, ".")
}

func (b *builder) quoteIdentifier(name string) string {
	switch b.dialect {
	case Postgres:
		return pgx.Identifier{name}.Sanitize()
	case MSSQL:
		return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
	}
	return name
}

func (b *builder) bindArg(v any) string {
	b.args = append(b.args, v)
	switch b.dialect {
	case Postgres:
		return "$" + strconv.Itoa(len(b.args))
	default:
		return "?"
	}
}

func literalArg(lit ql.Literal) any {
	switch lit.Kind {
	case ql.LitStr:
		return lit.Str
	case ql.LitNum:
		return lit.Num
	case ql.LitBool:
		return lit.Bool
	default:
		return nil
	}
}
