package filterql_test

import (
	"testing"

	filterql "github.com/kolsrud/filterql"
	"github.com/kolsrud/filterql/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateEndToEnd(t *testing.T) {
	rec := record.Of(map[string]any{"category": "Spirits", "year": 2000.0})
	ok, err := filterql.Evaluate(`category: "Spirits" AND year > 1990`, rec, filterql.NormalizeOptions{}, filterql.EvalOptions{})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestParseErrorUnwrapsToParseKind(t *testing.T) {
	_, _, err := filterql.Parse(`name = `)
	require.Error(t, err)
	ferr := err.(*filterql.Error)
	assert.Equal(t, filterql.KindParse, ferr.Kind)
}

func TestNormalizeErrorUnwrapsToNormalizeKind(t *testing.T) {
	surface, _, err := filterql.Parse(`"just a literal"`)
	require.NoError(t, err)
	_, err = filterql.Normalize(surface, filterql.NormalizeOptions{})
	require.Error(t, err)
	ferr := err.(*filterql.Error)
	assert.Equal(t, filterql.KindNormalize, ferr.Kind)
}

func TestEvaluationErrorUnwrapsToEvaluationKind(t *testing.T) {
	surface, _, err := filterql.Parse(`missing > 1`)
	require.NoError(t, err)
	tree, err := filterql.Normalize(surface, filterql.NormalizeOptions{})
	require.NoError(t, err)
	pred := filterql.BuildPredicate(tree, filterql.EvalOptions{})
	_, err = pred(record.Of(map[string]any{}))
	require.Error(t, err)
	ferr := err.(*filterql.Error)
	assert.Equal(t, filterql.KindEvaluation, ferr.Kind)
}

func TestTextSearchTargetsWiredThroughFacade(t *testing.T) {
	surface, _, err := filterql.Parse(`contains("gin")`)
	require.NoError(t, err)
	tree, err := filterql.Normalize(surface, filterql.NormalizeOptions{TextSearchTargets: []string{"name", "brand"}})
	require.NoError(t, err)
	pred := filterql.BuildPredicate(tree, filterql.EvalOptions{})
	ok, err := pred(record.Of(map[string]any{"name": "gin", "brand": "Boodles"}))
	require.NoError(t, err)
	assert.True(t, ok)
}
