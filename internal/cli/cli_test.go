package cli

import (
	"bytes"
	"io"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonalan/filact-sub001/internal/demoserver"
	"github.com/sonalan/filact-sub001/pkg/query"
)

// startBackend points the CLI's provider at a demo server instance.
func startBackend(t *testing.T) {
	t.Helper()
	srv := demoserver.New(map[string][]map[string]any{
		"users": {
			{"id": 1, "name": "alice", "status": "active"},
			{"id": 2, "name": "bob", "status": "inactive"},
		},
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	t.Setenv("FILACT_PROVIDER", "rest")
	t.Setenv("FILACT_API_URL", ts.URL)
}

// captureStdout runs fn with stdout redirected and returns the output.
func captureStdout(t *testing.T, fn func() error) string {
	t.Helper()
	oldStdout := os.Stdout
	defer func() { os.Stdout = oldStdout }()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	runErr := fn()
	w.Close()

	var buf bytes.Buffer
	io.Copy(&buf, r)
	require.NoError(t, runErr)
	return buf.String()
}

func TestListCommand(t *testing.T) {
	startBackend(t)

	cmd := NewListCommand()
	cmd.SetArgs([]string{"users", "--filter", "status.eq=active", "--output", "json"})

	output := captureStdout(t, cmd.Execute)
	assert.Contains(t, output, "alice")
	assert.NotContains(t, output, "bob")
	assert.Contains(t, output, `"total": 1`)
}

func TestGetCommand(t *testing.T) {
	startBackend(t)

	cmd := NewGetCommand()
	cmd.SetArgs([]string{"users", "2"})

	output := captureStdout(t, cmd.Execute)
	assert.Contains(t, output, "bob")
}

func TestCreateCommandWithSet(t *testing.T) {
	startBackend(t)

	cmd := NewCreateCommand()
	cmd.SetArgs([]string{"users", "--set", "name=carol", "--set", "age=30"})

	output := captureStdout(t, cmd.Execute)
	assert.Contains(t, output, "carol")
	assert.Contains(t, output, `"age": 30`)
}

func TestDeleteCommandBatch(t *testing.T) {
	startBackend(t)

	del := NewDeleteCommand()
	del.SetArgs([]string{"users", "1", "2"})
	captureStdout(t, del.Execute)

	list := NewListCommand()
	list.SetArgs([]string{"users", "--output", "json"})
	output := captureStdout(t, list.Execute)
	assert.Contains(t, output, `"total": 0`)
}

func TestParseSorts(t *testing.T) {
	sorts, err := parseSorts("name:asc,email:desc,age")
	require.NoError(t, err)

	assert.Equal(t, []query.Sort{
		{Field: "name", Order: query.Asc},
		{Field: "email", Order: query.Desc},
		{Field: "age", Order: query.Asc},
	}, sorts)

	_, err = parseSorts("name:sideways")
	assert.Error(t, err)
}

func TestParseFilters(t *testing.T) {
	filters, err := parseFilters([]string{"status.eq=active", "profile.age.gte=21"})
	require.NoError(t, err)

	require.Len(t, filters, 2)
	assert.Equal(t, query.Filter{Field: "status", Operator: query.OpEq, Value: "active"}, filters[0])
	assert.Equal(t, query.Filter{Field: "profile.age", Operator: query.OpGte, Value: "21"}, filters[1])

	_, err = parseFilters([]string{"status=active"})
	assert.Error(t, err, "missing operator segment")

	_, err = parseFilters([]string{"status.like=active"})
	assert.Error(t, err, "unknown operator")
}

func TestBuildBody(t *testing.T) {
	body, err := buildBody(`{"name":"alice"}`, []string{"age=30", "tags=[\"a\",\"b\"]", "nick=bob"})
	require.NoError(t, err)

	assert.Equal(t, "alice", body["name"])
	assert.Equal(t, float64(30), body["age"])
	assert.Equal(t, []any{"a", "b"}, body["tags"])
	assert.Equal(t, "bob", body["nick"])

	_, err = buildBody("not-json", nil)
	assert.Error(t, err)
}
