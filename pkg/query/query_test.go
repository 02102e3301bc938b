package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sonalan/filact-sub001/pkg/query"
)

func TestOperatorValid(t *testing.T) {
	known := []query.Operator{
		query.OpEq, query.OpNe, query.OpLt, query.OpLte, query.OpGt, query.OpGte,
		query.OpIn, query.OpNin, query.OpContains, query.OpStartsWith,
		query.OpEndsWith, query.OpBetween, query.OpNull, query.OpNotNull,
	}
	for _, op := range known {
		assert.True(t, op.Valid(), "operator %q should be valid", op)
	}

	assert.False(t, query.Operator("like").Valid())
	assert.False(t, query.Operator("").Valid())
}

func TestPaginationIsCursor(t *testing.T) {
	var nilPage *query.Pagination
	assert.False(t, nilPage.IsCursor())

	assert.False(t, (&query.Pagination{Page: 2, PerPage: 25}).IsCursor())

	// Cursor takes precedence even when offset fields are also set.
	assert.True(t, (&query.Pagination{Page: 2, Cursor: "abc"}).IsCursor())
}
