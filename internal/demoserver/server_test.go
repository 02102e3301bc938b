package demoserver_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonalan/filact-sub001/internal/demoserver"
	"github.com/sonalan/filact-sub001/pkg/provider"
	"github.com/sonalan/filact-sub001/pkg/provider/rest"
	"github.com/sonalan/filact-sub001/pkg/query"
)

func seedUsers() map[string][]map[string]any {
	return map[string][]map[string]any{
		"users": {
			{"id": 1, "name": "alice", "age": 34, "status": "active"},
			{"id": 2, "name": "bob", "age": 28, "status": "inactive"},
			{"id": 3, "name": "carol", "age": 41, "status": "active"},
			{"id": 4, "name": "dave", "age": 22, "status": "active"},
		},
	}
}

// newFixture runs the demo server behind httptest and points a REST
// provider at it, exercising both sides of the wire contract.
func newFixture(t *testing.T) (*demoserver.Server, *rest.Provider) {
	t.Helper()
	srv := demoserver.New(seedUsers())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	p, err := rest.New(ts.URL)
	require.NoError(t, err)
	return srv, p
}

func TestListPaginationAndSort(t *testing.T) {
	_, p := newFixture(t)

	result, err := p.GetList(context.Background(), "users", query.ListParams{
		Pagination: &query.Pagination{Page: 1, PerPage: 2},
		Sort:       []query.Sort{{Field: "age", Order: query.Desc}},
	})
	require.NoError(t, err)

	assert.Equal(t, 4, result.Total)
	assert.Equal(t, 2, result.PageCount)
	require.Len(t, result.Data, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal(result.Data[0], &first))
	assert.Equal(t, "carol", first["name"], "oldest user sorts first")
}

func TestListSecondarySort(t *testing.T) {
	srv := demoserver.New(map[string][]map[string]any{
		"users": {
			{"id": 1, "name": "zoe", "group": "a"},
			{"id": 2, "name": "amy", "group": "b"},
			{"id": 3, "name": "ben", "group": "a"},
		},
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	p, err := rest.New(ts.URL)
	require.NoError(t, err)

	result, err := p.GetList(context.Background(), "users", query.ListParams{
		Sort: []query.Sort{
			{Field: "group", Order: query.Asc},
			{Field: "name", Order: query.Asc},
		},
	})
	require.NoError(t, err)
	require.Len(t, result.Data, 3)

	names := make([]string, 3)
	for i, raw := range result.Data {
		var row map[string]any
		require.NoError(t, json.Unmarshal(raw, &row))
		names[i] = row["name"].(string)
	}
	assert.Equal(t, []string{"ben", "zoe", "amy"}, names)
}

func TestListFilterAndSearch(t *testing.T) {
	_, p := newFixture(t)

	result, err := p.GetList(context.Background(), "users", query.ListParams{
		Filter: []query.Filter{
			{Field: "status", Operator: query.OpEq, Value: "active"},
			{Field: "age", Operator: query.OpGte, Value: 30},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total, "alice and carol are active and 30+")

	result, err = p.GetList(context.Background(), "users", query.ListParams{Search: "aro"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total, "only carol matches")
}

func TestListCursor(t *testing.T) {
	seed := map[string][]map[string]any{"items": {}}
	for i := 1; i <= 12; i++ {
		seed["items"] = append(seed["items"], map[string]any{"id": i, "name": fmt.Sprintf("item-%02d", i)})
	}
	srv := demoserver.New(seed)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	p, err := rest.New(ts.URL)
	require.NoError(t, err)

	// Cursor mode: perPage is short-circuited, the server's default
	// window of 10 applies.
	first, err := p.GetList(context.Background(), "items", query.ListParams{
		Pagination: &query.Pagination{Cursor: "0"},
	})
	require.NoError(t, err)
	assert.Len(t, first.Data, 10)
	require.NotEmpty(t, first.NextCursor)

	second, err := p.GetList(context.Background(), "items", query.ListParams{
		Pagination: &query.Pagination{Cursor: first.NextCursor},
	})
	require.NoError(t, err)
	assert.Len(t, second.Data, 2)
	assert.Empty(t, second.NextCursor, "last page has no next cursor")
}

func TestCRUDRoundTrip(t *testing.T) {
	_, p := newFixture(t)
	ctx := context.Background()

	created, err := p.Create(ctx, "users", provider.CreateParams{
		Data: map[string]any{"name": "erin", "age": 30, "status": "active"},
	})
	require.NoError(t, err)

	var row map[string]any
	require.NoError(t, json.Unmarshal(created, &row))
	id := fmt.Sprint(row["id"])
	assert.Equal(t, "5", id, "ids keep incrementing past the seed")

	fetched, err := p.GetOne(ctx, "users", id, provider.GetOneParams{})
	require.NoError(t, err)
	assert.JSONEq(t, string(created), string(fetched))

	updated, err := p.Update(ctx, "users", provider.UpdateParams{
		ID:   id,
		Data: map[string]any{"status": "suspended"},
	})
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(updated, &row))
	assert.Equal(t, "suspended", row["status"])
	assert.Equal(t, "erin", row["name"], "update merges, id and untouched fields survive")

	require.NoError(t, p.Delete(ctx, "users", provider.DeleteParams{ID: id}))

	_, err = p.GetOne(ctx, "users", id, provider.GetOneParams{})
	var pe *provider.Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 404, pe.StatusCode)
}

func TestBatchOperations(t *testing.T) {
	_, p := newFixture(t)
	ctx := context.Background()

	records, err := p.UpdateMany(ctx, "users", provider.UpdateManyParams{
		IDs:  []any{1, 2},
		Data: map[string]any{"status": "archived"},
	})
	require.NoError(t, err)
	assert.Len(t, records, 2)

	require.NoError(t, p.DeleteMany(ctx, "users", provider.DeleteManyParams{IDs: []any{1, 2, 3}}))

	result, err := p.GetList(ctx, "users", query.ListParams{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)
}

func TestCustomAction(t *testing.T) {
	srv, p := newFixture(t)
	srv.RegisterAction("users", "promote", func(resource string, payload map[string]any) (any, error) {
		return map[string]any{"promoted": payload["id"]}, nil
	})

	result, err := p.Custom(context.Background(), "users", "promote", map[string]any{"id": 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"promoted":1}`, string(result))

	_, err = p.Custom(context.Background(), "users", "unknown", nil)
	var pe *provider.Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 404, pe.StatusCode)
}
