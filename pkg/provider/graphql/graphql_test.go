package graphql_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonalan/filact-sub001/pkg/provider"
	"github.com/sonalan/filact-sub001/pkg/provider/graphql"
	"github.com/sonalan/filact-sub001/pkg/query"
)

type capturedRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// capture collects every GraphQL request posted to the mock endpoint.
type capture struct {
	mu       sync.Mutex
	requests []capturedRequest
}

func (c *capture) record(r *http.Request) capturedRequest {
	var req capturedRequest
	json.NewDecoder(r.Body).Decode(&req)
	c.mu.Lock()
	c.requests = append(c.requests, req)
	c.mu.Unlock()
	return req
}

func (c *capture) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.requests)
}

func newProvider(t *testing.T, handler http.HandlerFunc, opts ...graphql.Option) *graphql.Provider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := graphql.New(server.URL, opts...)
	require.NoError(t, err)
	return p
}

func TestGetListVariables(t *testing.T) {
	var got capturedRequest
	cap := &capture{}
	p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		got = cap.record(r)
		w.Write([]byte(`{"data":{"users":{"data":[{"id":1}],"total":9,"pageInfo":{"page":2,"perPage":5,"pageCount":2}}}}`))
	})

	result, err := p.GetList(context.Background(), "user", query.ListParams{
		Pagination: &query.Pagination{Page: 2, PerPage: 5},
		Sort: []query.Sort{
			{Field: "name", Order: query.Asc},
			{Field: "email", Order: query.Desc},
		},
		Search: "smith",
	})
	require.NoError(t, err)

	assert.Equal(t, float64(2), got.Variables["page"])
	assert.Equal(t, float64(5), got.Variables["perPage"])
	assert.Equal(t, "smith", got.Variables["search"])

	orderBy, ok := got.Variables["orderBy"].([]any)
	require.True(t, ok)
	require.Len(t, orderBy, 2)
	assert.Equal(t, map[string]any{"name": "ASC"}, orderBy[0])
	assert.Equal(t, map[string]any{"email": "DESC"}, orderBy[1])

	assert.Contains(t, got.Query, "users(")
	assert.Contains(t, got.Query, "$orderBy: [OrderByInput!]")
	assert.NotContains(t, got.Query, "$where", "absent params must not be declared")
	assert.NotContains(t, got.Query, "$cursor")

	assert.Equal(t, 9, result.Total)
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 5, result.PerPage)
	assert.Equal(t, 2, result.PageCount)
}

func TestGetListCursorWins(t *testing.T) {
	var got capturedRequest
	cap := &capture{}
	p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		got = cap.record(r)
		w.Write([]byte(`{"data":{"users":{"data":[],"total":0}}}`))
	})

	_, err := p.GetList(context.Background(), "user", query.ListParams{
		Pagination: &query.Pagination{Page: 2, PerPage: 5, Cursor: "abc"},
	})
	require.NoError(t, err)

	assert.Equal(t, "abc", got.Variables["cursor"])
	_, hasPage := got.Variables["page"]
	assert.False(t, hasPage, "cursor mode must drop page")
	_, hasPerPage := got.Variables["perPage"]
	assert.False(t, hasPerPage, "cursor mode must drop perPage")

	assert.Contains(t, got.Query, "$cursor: String")
	assert.NotContains(t, got.Query, "$page")
	assert.NotContains(t, got.Query, "$perPage")
}

func TestGetListWhereTranslation(t *testing.T) {
	var got capturedRequest
	cap := &capture{}
	p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		got = cap.record(r)
		w.Write([]byte(`{"data":{"users":{"data":[],"total":0}}}`))
	})

	_, err := p.GetList(context.Background(), "user", query.ListParams{
		Filter: []query.Filter{
			{Field: "status", Operator: query.OpEq, Value: "active"},
			{Field: "age", Operator: query.OpGte, Value: 21},
			{Field: "name", Operator: query.OpContains, Value: "sm"},
			{Field: "role", Operator: query.OpNin, Value: []any{"bot"}},
			{Field: "deletedAt", Operator: query.OpNull},
			{Field: "email", Operator: query.OpNotNull},
			{Field: "score", Operator: query.OpBetween, Value: []any{1, 10}},
		},
	})
	require.NoError(t, err)

	where, ok := got.Variables["where"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "active", where["status"])
	assert.Equal(t, float64(21), where["age_gte"])
	assert.Equal(t, "sm", where["name_contains"])
	assert.Equal(t, []any{"bot"}, where["role_not_in"])

	// null/notNull carry a nil value under the eq/ne-shaped keys.
	val, present := where["deletedAt"]
	assert.True(t, present)
	assert.Nil(t, val)
	val, present = where["email_not"]
	assert.True(t, present)
	assert.Nil(t, val)

	// between has no mapping and is dropped.
	for key := range where {
		assert.NotContains(t, key, "score")
	}
}

func TestEqNullKeepsFieldKey(t *testing.T) {
	var got capturedRequest
	cap := &capture{}
	p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		got = cap.record(r)
		w.Write([]byte(`{"data":{"users":{"data":[],"total":0}}}`))
	})

	_, err := p.GetList(context.Background(), "user", query.ListParams{
		Filter: []query.Filter{{Field: "manager", Operator: query.OpEq, Value: nil}},
	})
	require.NoError(t, err)

	where := got.Variables["where"].(map[string]any)
	_, present := where["manager"]
	assert.True(t, present, "eq with nil value keys on the bare field name")
	_, wrong := where["manager_not"]
	assert.False(t, wrong)
}

func TestGetOne(t *testing.T) {
	var got capturedRequest
	cap := &capture{}
	p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		got = cap.record(r)
		w.Write([]byte(`{"data":{"user":{"id":"1","name":"alice"}}}`))
	}, graphql.WithResourceFields("user", "id", "name"))

	record, err := p.GetOne(context.Background(), "user", "1", provider.GetOneParams{})
	require.NoError(t, err)

	assert.Contains(t, got.Query, "query($id: ID!) { user(id: $id) { id name } }")
	assert.Equal(t, "1", got.Variables["id"])
	assert.JSONEq(t, `{"id":"1","name":"alice"}`, string(record))
}

func TestCreateMutation(t *testing.T) {
	var got capturedRequest
	cap := &capture{}
	p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		got = cap.record(r)
		w.Write([]byte(`{"data":{"createUser":{"id":"9"}}}`))
	})

	record, err := p.Create(context.Background(), "user", provider.CreateParams{
		Data: map[string]any{"name": "carol"},
	})
	require.NoError(t, err)

	assert.Contains(t, got.Query, "mutation($input: UserInput!) { createUser(input: $input)")
	assert.Equal(t, map[string]any{"name": "carol"}, got.Variables["input"])
	assert.JSONEq(t, `{"id":"9"}`, string(record))
}

func TestDeleteSingleRequest(t *testing.T) {
	cap := &capture{}
	var got capturedRequest
	p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		got = cap.record(r)
		w.Write([]byte(`{"data":{"deleteUser":true}}`))
	})

	err := p.Delete(context.Background(), "user", provider.DeleteParams{ID: "1"})
	require.NoError(t, err)

	assert.Equal(t, 1, cap.count())
	assert.Contains(t, got.Query, "mutation($id: ID!) { deleteUser(id: $id) }")
	assert.Equal(t, "1", got.Variables["id"])
}

func TestDeleteManyFanOut(t *testing.T) {
	cap := &capture{}
	p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		cap.record(r)
		w.Write([]byte(`{"data":{"deleteUser":true}}`))
	})

	err := p.DeleteMany(context.Background(), "user", provider.DeleteManyParams{
		IDs: []any{"1", "2", "3"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, cap.count(), "no batch mutation configured: one request per id")
}

func TestUpdateManyFanOutResults(t *testing.T) {
	cap := &capture{}
	p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		req := cap.record(r)
		id := req.Variables["id"]
		w.Write([]byte(`{"data":{"updateUser":{"id":"` + id.(string) + `"}}}`))
	})

	records, err := p.UpdateMany(context.Background(), "user", provider.UpdateManyParams{
		IDs:  []any{"1", "2", "3", "4"},
		Data: map[string]any{"status": "archived"},
	})
	require.NoError(t, err)

	assert.Equal(t, 4, cap.count())
	require.Len(t, records, 4)
	// Results arrive in input order regardless of request interleaving.
	for i, want := range []string{"1", "2", "3", "4"} {
		assert.JSONEq(t, `{"id":"`+want+`"}`, string(records[i]))
	}
}

func TestDeleteManyBatchDocument(t *testing.T) {
	cap := &capture{}
	var got capturedRequest
	p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		got = cap.record(r)
		w.Write([]byte(`{"data":{"deleteUsers":true}}`))
	}, graphql.WithDocument(graphql.OpDeleteMany, func(ctx graphql.DocumentContext) string {
		return "mutation($ids: [ID!]!) { deleteUsers(ids: $ids) }"
	}))

	err := p.DeleteMany(context.Background(), "user", provider.DeleteManyParams{
		IDs: []any{"1", "2"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, cap.count(), "batch mutation replaces the fan-out")
	assert.Equal(t, []any{"1", "2"}, got.Variables["ids"])
}

func TestGraphQLErrors(t *testing.T) {
	p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors":[{"message":"field not found"},{"message":"bad cursor"}]}`))
	})

	_, err := p.GetOne(context.Background(), "user", "1", provider.GetOneParams{})
	require.Error(t, err)

	var pe *provider.Error
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "GraphQL Error: field not found; bad cursor", pe.Message)
	assert.Zero(t, pe.StatusCode, "GraphQL-level errors carry no status code")
	assert.Len(t, pe.Response, 2)
}

func TestMalformedBodyError(t *testing.T) {
	p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html>502 from proxy</html>`))
	})

	record, err := p.GetOne(context.Background(), "user", "1", provider.GetOneParams{})
	require.Error(t, err, "a 2xx body that is not JSON must not read as success")
	assert.Nil(t, record)

	var pe *provider.Error
	require.True(t, errors.As(err, &pe))
	assert.Zero(t, pe.StatusCode)
	assert.Contains(t, pe.Message, "not valid JSON")
}

func TestHTTPError(t *testing.T) {
	p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "denied", http.StatusForbidden)
	})

	_, err := p.GetOne(context.Background(), "user", "1", provider.GetOneParams{})
	require.Error(t, err)

	var pe *provider.Error
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 403, pe.StatusCode)
	assert.Equal(t, "HTTP 403: Forbidden", pe.Message)
}

func TestTransformError(t *testing.T) {
	sentinel := errors.New("converted")
	p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}, graphql.WithTransformError(func(err error) error { return sentinel }))

	_, err := p.GetOne(context.Background(), "user", "1", provider.GetOneParams{})
	assert.Same(t, sentinel, err)
}

func TestOperationPrefixAndTypename(t *testing.T) {
	var got capturedRequest
	cap := &capture{}
	p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		got = cap.record(r)
		w.Write([]byte(`{"data":{"adminUsers":{"data":[],"total":0}}}`))
	}, graphql.WithOperationPrefix("admin"), graphql.WithTypename())

	_, err := p.GetList(context.Background(), "user", query.ListParams{})
	require.NoError(t, err)

	assert.Contains(t, got.Query, "adminUsers")
	assert.Contains(t, got.Query, "__typename")
}

func TestPluralize(t *testing.T) {
	var got capturedRequest
	cap := &capture{}
	p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		got = cap.record(r)
		w.Write([]byte(`{"data":{"categories":{"data":[],"total":0}}}`))
	})

	_, err := p.GetList(context.Background(), "category", query.ListParams{})
	require.NoError(t, err)
	assert.Contains(t, got.Query, "categories {")
}
