package sql_test

import (
	"testing"

	"github.com/jackc/pgx/v5/stdlib"
	mssql "github.com/microsoft/go-mssqldb"

	"github.com/kolsrud/filterql/adapter/sql"
	"github.com/kolsrud/filterql/canon"
	"github.com/kolsrud/filterql/ql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectDialect(t *testing.T) {
	d, ok := sql.DetectDialect(&stdlib.Driver{})
	require.True(t, ok)
	assert.Equal(t, sql.Postgres, d)

	d, ok = sql.DetectDialect(&mssql.Driver{})
	require.True(t, ok)
	assert.Equal(t, sql.MSSQL, d)
}

func normalize(t *testing.T, text string) *canon.Node {
	t.Helper()
	surface, _, err := ql.Parse(text)
	require.NoError(t, err)
	tree, err := canon.Normalize(surface, canon.Options{})
	require.NoError(t, err)
	return tree
}

func TestTranslatePostgresComparison(t *testing.T) {
	tree := normalize(t, `year > 1990`)
	where, err := sql.Translate(tree, sql.Postgres)
	require.NoError(t, err)
	assert.Equal(t, `"year" > $1`, where.Condition)
	assert.Equal(t, []any{1990.0}, where.Args)
}

func TestTranslateMSSQLUsesBracketsAndPlaceholders(t *testing.T) {
	tree := normalize(t, `year > 1990`)
	where, err := sql.Translate(tree, sql.MSSQL)
	require.NoError(t, err)
	assert.Equal(t, `[year] > ?`, where.Condition)
}

func TestTranslateAndOr(t *testing.T) {
	tree := normalize(t, `category: "Spirits" AND year > 1990`)
	where, err := sql.Translate(tree, sql.Postgres)
	require.NoError(t, err)
	assert.Contains(t, where.Condition, " AND ")
	assert.Len(t, where.Args, 2)
}

func TestTranslateNullComparison(t *testing.T) {
	tree := normalize(t, `name`)
	where, err := sql.Translate(tree, sql.Postgres)
	require.NoError(t, err)
	assert.Equal(t, `"name" IS NOT NULL`, where.Condition)
	assert.Empty(t, where.Args)
}

func TestTranslateQuantifiedIsUnsupported(t *testing.T) {
	tree := normalize(t, `ingredients.alcohol_content > 38`)
	_, err := sql.Translate(tree, sql.Postgres)
	require.Error(t, err)
	assert.Equal(t, sql.ErrUnsupportedFeature, err.(*sql.Error).Code)
}

func TestTranslateTextContainsUsesLike(t *testing.T) {
	tree := normalize(t, `name: "gin"`)
	where, err := sql.Translate(tree, sql.Postgres)
	require.NoError(t, err)
	assert.Contains(t, where.Condition, "LIKE")
	assert.Equal(t, []any{"%gin%"}, where.Args)
}
