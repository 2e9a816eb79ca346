package canon

import (
	"testing"

	"github.com/kolsrud/filterql/ql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, text string) *ql.Node {
	t.Helper()
	root, _, err := ql.Parse(text)
	require.NoError(t, err)
	return root
}

func normalizeText(t *testing.T, text string, opts Options) *Node {
	t.Helper()
	root := mustParse(t, text)
	n, err := Normalize(root, opts)
	require.NoError(t, err)
	return n
}

func TestNormalizeBarePathTruthiness(t *testing.T) {
	n := normalizeText(t, "name", Options{})
	require.Equal(t, KComparison, n.Kind)
	assert.Equal(t, OpNeq, n.CompOp)
	assert.Equal(t, ql.Null(), n.Lit)
}

func TestNormalizeBareLiteralIsError(t *testing.T) {
	root := mustParse(t, `"hello"`)
	_, err := Normalize(root, Options{})
	require.Error(t, err)
	cerr := err.(*Error)
	assert.Equal(t, ErrGeneric, cerr.Code)
}

func TestNormalizeShorthandString(t *testing.T) {
	n := normalizeText(t, `category: "Spirits"`, Options{})
	require.Equal(t, KText, n.Kind)
	assert.Equal(t, TContains, n.TextOp)
	assert.Equal(t, "Spirits", n.Needle)
}

func TestNormalizeShorthandNumber(t *testing.T) {
	n := normalizeText(t, `year: 1990`, Options{})
	require.Equal(t, KComparison, n.Kind)
	assert.Equal(t, OpEq, n.CompOp)
}

func TestNormalizeShorthandBoolIsUnsupported(t *testing.T) {
	root := mustParse(t, `active: true`)
	_, err := Normalize(root, Options{})
	require.Error(t, err)
	assert.Equal(t, ErrUnsupportedNode, err.(*Error).Code)
}

func TestNormalizeValueListStringsDefaultOr(t *testing.T) {
	n := normalizeText(t, `tags: ("gin", "citrus")`, Options{})
	require.Equal(t, KOr, n.Kind)
	require.Len(t, n.Children, 2)
	assert.Equal(t, KText, n.Children[0].Kind)
}

func TestNormalizeValueListStringsExplicitAnd(t *testing.T) {
	n := normalizeText(t, `tags: (AND "gin", "citrus")`, Options{})
	require.Equal(t, KAnd, n.Kind)
}

func TestNormalizeValueListComparisonShorthandsDefaultAnd(t *testing.T) {
	n := normalizeText(t, `alcohol_content: (>5, <=13)`, Options{})
	require.Equal(t, KAnd, n.Kind)
	require.Len(t, n.Children, 2)
}

func TestNormalizeValueListMixedTypesIsError(t *testing.T) {
	root := mustParse(t, `x: ("a", >5)`)
	_, err := Normalize(root, Options{})
	require.Error(t, err)
	assert.Equal(t, ErrUnsupportedNode, err.(*Error).Code)
}

func TestNormalizeValueListSingletonCollapses(t *testing.T) {
	n := normalizeText(t, `tags: ("gin")`, Options{})
	assert.Equal(t, KText, n.Kind)
}

func TestNormalizeMultiSegmentPathLiftsToQuantified(t *testing.T) {
	n := normalizeText(t, `ingredients.alcohol_content > 38`, Options{})
	require.Equal(t, KQuantified, n.Kind)
	assert.Equal(t, QAny, n.Quant)
	assert.Equal(t, []string{"ingredients"}, n.Path)
	require.Equal(t, KComparison, n.Pred.Kind)
	assert.Equal(t, []string{"alcohol_content"}, n.Pred.Path)
}

func TestNormalizeThreeSegmentPathNestsTwoQuantifiedLayers(t *testing.T) {
	n := normalizeText(t, `a.b.c > 1`, Options{})
	require.Equal(t, KQuantified, n.Kind)
	assert.Equal(t, []string{"a"}, n.Path)
	require.Equal(t, KQuantified, n.Pred.Kind)
	assert.Equal(t, []string{"b"}, n.Pred.Path)
	require.Equal(t, KComparison, n.Pred.Pred.Kind)
	assert.Equal(t, []string{"c"}, n.Pred.Pred.Path)
}

func TestNormalizeValueListOfCompShorthandsLiftsEachLeaf(t *testing.T) {
	n := normalizeText(t, `ingredients.alcohol_content: (>5, <=13)`, Options{})
	require.Equal(t, KAnd, n.Kind)
	require.Len(t, n.Children, 2)
	for _, c := range n.Children {
		require.Equal(t, KQuantified, c.Kind)
		assert.Equal(t, []string{"ingredients"}, c.Path)
		assert.Equal(t, KComparison, c.Pred.Kind)
		assert.Equal(t, []string{"alcohol_content"}, c.Pred.Path)
	}
}

func TestNormalizeNotComparisonInverts(t *testing.T) {
	n := normalizeText(t, `NOT (price > 10)`, Options{})
	require.Equal(t, KComparison, n.Kind)
	assert.Equal(t, OpLte, n.CompOp)
}

func TestNormalizeNotAndDeMorgan(t *testing.T) {
	n := normalizeText(t, `NOT (a AND b)`, Options{})
	require.Equal(t, KOr, n.Kind)
	require.Len(t, n.Children, 2)
	for _, c := range n.Children {
		assert.Equal(t, KComparison, c.Kind)
		assert.Equal(t, OpEq, c.CompOp)
		assert.Equal(t, ql.Null(), c.Lit)
	}
}

func TestNormalizeDoubleNegationCancels(t *testing.T) {
	n := normalizeText(t, `NOT NOT (price > 10)`, Options{})
	require.Equal(t, KComparison, n.Kind)
	assert.Equal(t, OpGt, n.CompOp)
}

func TestNormalizeNotQuantifiedAnyBecomesNone(t *testing.T) {
	n := normalizeText(t, `NOT any(ingredients, name: "juniper")`, Options{})
	require.Equal(t, KQuantified, n.Kind)
	assert.Equal(t, QNone, n.Quant)
}

func TestNormalizeNotQuantifiedAllBecomesAnyOfNegatedPred(t *testing.T) {
	n := normalizeText(t, `NOT all(ingredients, alcohol_content >= 0)`, Options{})
	require.Equal(t, KQuantified, n.Kind)
	assert.Equal(t, QAny, n.Quant)
	require.Equal(t, KComparison, n.Pred.Kind)
	assert.Equal(t, OpLt, n.Pred.CompOp)
}

func TestNormalizeNotTextPreserved(t *testing.T) {
	n := normalizeText(t, `NOT (name: "water")`, Options{})
	require.Equal(t, KNot, n.Kind)
	assert.Equal(t, KText, n.Arg.Kind)
}

func TestNormalizeDeeplyNestedAndFlattens(t *testing.T) {
	n := normalizeText(t, `a AND b AND c AND d`, Options{})
	require.Equal(t, KAnd, n.Kind)
	assert.Len(t, n.Children, 4)
}

func TestNormalizeIsDeterministic(t *testing.T) {
	text := `(category: "Spirits" AND year > 1990) OR NOT (name: "water")`
	root := mustParse(t, text)
	n1, err := Normalize(root, Options{})
	require.NoError(t, err)
	n2, err := Normalize(root, Options{})
	require.NoError(t, err)
	assert.Equal(t, n1, n2)
}

func TestNormalizeTextCallTwoArgs(t *testing.T) {
	n := normalizeText(t, `contains(name, "gin")`, Options{})
	require.Equal(t, KText, n.Kind)
	assert.Equal(t, TContains, n.TextOp)
	assert.Equal(t, []string{"name"}, n.Path)
}

func TestNormalizeTextCallOneArgExpandsOverTargets(t *testing.T) {
	opts := Options{TextSearchTargets: []ql.Path{{"name"}, {"brand"}}}
	n := normalizeText(t, `contains("gin")`, opts)
	require.Equal(t, KOr, n.Kind)
	require.Len(t, n.Children, 2)
}

func TestNormalizeTextCallOneArgNoTargetsIsError(t *testing.T) {
	root := mustParse(t, `contains("gin")`)
	_, err := Normalize(root, Options{})
	require.Error(t, err)
	assert.Equal(t, ErrGeneric, err.(*Error).Code)
}

func TestNormalizeTextCallSingleTargetCollapses(t *testing.T) {
	opts := Options{TextSearchTargets: []ql.Path{{"name"}}}
	n := normalizeText(t, `contains("gin")`, opts)
	assert.Equal(t, KText, n.Kind)
}

func TestNormalizeQuantifierCall(t *testing.T) {
	n := normalizeText(t, `any(tags, value: "gin")`, Options{})
	require.Equal(t, KQuantified, n.Kind)
	assert.Equal(t, QAny, n.Quant)
	assert.Equal(t, []string{"tags"}, n.Path)
}

func TestNormalizeQuantifierNonPathFirstArgIsError(t *testing.T) {
	root := mustParse(t, `any("gin", value: "gin")`)
	_, err := Normalize(root, Options{})
	require.Error(t, err)
	assert.Equal(t, ErrUnsupportedNode, err.(*Error).Code)
}
