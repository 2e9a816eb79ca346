package ql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBareTruthyPath(t *testing.T) {
	root, _, err := Parse("name")
	require.NoError(t, err)
	assert.Equal(t, NPath, root.Kind)
	assert.Equal(t, Path{"name"}, root.Path)
}

func TestParseComparison(t *testing.T) {
	root, _, err := Parse(`year > 1990`)
	require.NoError(t, err)
	require.Equal(t, NComparison, root.Kind)
	assert.Equal(t, Path{"year"}, root.Path)
	assert.Equal(t, OpGt, root.CompOp)
	assert.Equal(t, Num(1990), root.Lit)
}

func TestParseColonShorthandString(t *testing.T) {
	root, _, err := Parse(`category: "Spirits"`)
	require.NoError(t, err)
	require.Equal(t, NShorthand, root.Kind)
	assert.Equal(t, RHSLiteral, root.RHSKind)
	assert.Equal(t, Str("Spirits"), root.Lit)
}

func TestParseMultiSegmentPath(t *testing.T) {
	root, _, err := Parse(`ingredients.alcohol_content > 38`)
	require.NoError(t, err)
	assert.Equal(t, Path{"ingredients", "alcohol_content"}, root.Path)
}

func TestParseQuotedIdentifierSegment(t *testing.T) {
	root, _, err := Parse(`a."weird key".b: 1`)
	require.NoError(t, err)
	assert.Equal(t, Path{"a", "weird key", "b"}, root.Path)
}

func TestParseValueList(t *testing.T) {
	root, _, err := Parse(`tags: ("gin", "citrus")`)
	require.NoError(t, err)
	require.Equal(t, NShorthand, root.Kind)
	require.Equal(t, RHSValueList, root.RHSKind)
	require.Len(t, root.Items, 2)
	assert.Equal(t, NLiteral, root.Items[0].Kind)
	assert.Nil(t, root.ListOp)
}

func TestParseValueListExplicitAnd(t *testing.T) {
	root, _, err := Parse(`tags: (AND "gin", "citrus")`)
	require.NoError(t, err)
	require.NotNil(t, root.ListOp)
	assert.Equal(t, OpAnd, *root.ListOp)
}

func TestParseValueListOfComparisonShorthands(t *testing.T) {
	root, _, err := Parse(`alcohol_content: (>5, <=13)`)
	require.NoError(t, err)
	require.Len(t, root.Items, 2)
	assert.Equal(t, NCompShorthand, root.Items[0].Kind)
	assert.Equal(t, OpGt, root.Items[0].CompOp)
}

func TestParseAndOrPrecedenceAndAssociativity(t *testing.T) {
	root, _, err := Parse(`a AND b OR c AND d`)
	require.NoError(t, err)
	// top level should be OR, since AND binds tighter
	require.Equal(t, NLogical, root.Kind)
	assert.Equal(t, OpOr, root.LogicalOp)
	assert.Equal(t, OpAnd, root.Left.LogicalOp)
	assert.Equal(t, OpAnd, root.Right.LogicalOp)
}

func TestParseNotBindsTighterThanAnd(t *testing.T) {
	root, _, err := Parse(`NOT a AND b`)
	require.NoError(t, err)
	require.Equal(t, NLogical, root.Kind)
	assert.Equal(t, NNot, root.Left.Kind)
}

func TestParseGroup(t *testing.T) {
	root, _, err := Parse(`(a AND b) OR c`)
	require.NoError(t, err)
	require.Equal(t, NLogical, root.Kind)
	assert.Equal(t, NGroup, root.Left.Kind)
}

func TestParseCallContainsOneArg(t *testing.T) {
	root, _, err := Parse(`contains("needle")`)
	require.NoError(t, err)
	require.Equal(t, NCall, root.Kind)
	assert.Equal(t, "contains", root.Name)
	require.Len(t, root.Args, 1)
}

func TestParseCallContainsTwoArgs(t *testing.T) {
	root, _, err := Parse(`contains(name, "gin")`)
	require.NoError(t, err)
	require.Len(t, root.Args, 2)
	assert.Equal(t, NPath, root.Args[0].Kind)
	assert.Equal(t, NLiteral, root.Args[1].Kind)
}

func TestParseAnyRequiresExactlyTwoArgs(t *testing.T) {
	_, _, err := Parse(`any(tags)`)
	require.Error(t, err)
}

func TestParseAnyCall(t *testing.T) {
	root, _, err := Parse(`any(tags, value: "gin")`)
	require.NoError(t, err)
	assert.Equal(t, "any", root.Name)
	require.Len(t, root.Args, 2)
	assert.Equal(t, NPath, root.Args[0].Kind)
	assert.Equal(t, NShorthand, root.Args[1].Kind)
}

func TestParseQuotedStringOnlyAfterFirstDotOfPath(t *testing.T) {
	// A bare quoted string in a place that could start an atom is parsed as
	// a literal, never as the head of a path.
	root, _, err := Parse(`contains("literal-not-a-path")`)
	require.NoError(t, err)
	assert.Equal(t, NLiteral, root.Args[0].Kind)
}

func TestParseEndToEndScenario(t *testing.T) {
	root, _, err := Parse(`(category: "Spirits" AND year > 1990) OR NOT (name: "water")`)
	require.NoError(t, err)
	require.Equal(t, NLogical, root.Kind)
	assert.Equal(t, OpOr, root.LogicalOp)
}

func TestParseErrorUnexpectedCharacter(t *testing.T) {
	_, _, err := Parse(`name = $`)
	require.Error(t, err)
	perr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, ErrUnexpectedToken, perr.Code)
}

func TestParseErrorStructuralMismatch(t *testing.T) {
	_, _, err := Parse(`name =`)
	require.Error(t, err)
	perr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, ErrGeneric, perr.Code)
}

func TestParseComparisonNotChainable(t *testing.T) {
	// After consuming one comparison, a second comparison operator is
	// trailing input, not a chained comparison.
	_, _, err := Parse(`a > 1 > 2`)
	require.Error(t, err)
}
