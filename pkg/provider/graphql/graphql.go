// Package graphql implements the data-provider contract over a single
// GraphQL endpoint. The query model becomes operation variables; the
// documents themselves come from default builders that callers can
// replace per operation.
package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/tidwall/gjson"

	"github.com/sonalan/filact-sub001/pkg/provider"
	"github.com/sonalan/filact-sub001/pkg/query"
)

// Provider talks to one GraphQL endpoint. Construct with New; the
// configuration is immutable afterwards.
type Provider struct {
	cfg config
}

var _ provider.DataProvider = (*Provider)(nil)

type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// New creates a GraphQL provider for the given endpoint.
func New(endpoint string, opts ...Option) (*Provider, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("graphql: endpoint cannot be empty")
	}
	cfg := defaultConfig(endpoint)
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Provider{cfg: cfg}, nil
}

// GetList queries the pluralized resource field with only the variables
// that are actually constrained, and maps the result envelope through
// the configured field names.
func (p *Provider) GetList(ctx context.Context, resource string, params query.ListParams) (*query.ListResult[json.RawMessage], error) {
	vars := map[string]any{}
	if pg := params.Pagination; pg != nil {
		if pg.IsCursor() {
			vars["cursor"] = pg.Cursor
		} else {
			if pg.Page > 0 {
				vars["page"] = pg.Page
			}
			if pg.PerPage > 0 {
				vars["perPage"] = pg.PerPage
			}
		}
	}
	if len(params.Sort) > 0 {
		vars["orderBy"] = buildOrderBy(params.Sort)
	}
	if len(params.Filter) > 0 {
		if where := buildWhere(params.Filter); len(where) > 0 {
			vars["where"] = where
		}
	}
	if params.Search != "" {
		vars["search"] = params.Search
	}

	doc := p.cfg.document(p.docContext(resource, OpGetList, vars))
	data, err := p.exec(ctx, doc, vars)
	if err != nil {
		return nil, err
	}

	envelope := p.rootField(data, p.cfg.prefixed(pluralize(resource)))
	result := &query.ListResult[json.RawMessage]{}
	for _, item := range envelope.Get(p.cfg.fields.Data).Array() {
		result.Data = append(result.Data, json.RawMessage(item.Raw))
	}
	if total := envelope.Get(p.cfg.fields.Total); total.Exists() {
		result.Total = int(total.Int())
	} else {
		result.Total = len(result.Data)
	}
	pageInfo := envelope.Get(p.cfg.fields.PageInfo)
	result.Page = int(pageInfo.Get("page").Int())
	result.PerPage = int(pageInfo.Get("perPage").Int())
	result.PageCount = int(pageInfo.Get("pageCount").Int())
	result.NextCursor = pageInfo.Get("nextCursor").String()
	result.PrevCursor = pageInfo.Get("prevCursor").String()
	return result, nil
}

// GetOne queries the singular resource field by id.
func (p *Provider) GetOne(ctx context.Context, resource string, id any, _ provider.GetOneParams) (json.RawMessage, error) {
	vars := map[string]any{"id": id}
	doc := p.cfg.document(p.docContext(resource, OpGetOne, vars))
	data, err := p.exec(ctx, doc, vars)
	if err != nil {
		return nil, err
	}
	return raw(p.rootField(data, p.cfg.prefixed(resource))), nil
}

// Create runs the create{Resource} mutation.
func (p *Provider) Create(ctx context.Context, resource string, params provider.CreateParams) (json.RawMessage, error) {
	vars := map[string]any{"input": params.Data}
	doc := p.cfg.document(p.docContext(resource, OpCreate, vars))
	data, err := p.exec(ctx, doc, vars)
	if err != nil {
		return nil, err
	}
	return raw(p.rootField(data, p.cfg.prefixed("create"+pascalCase(resource)))), nil
}

// Update runs the update{Resource} mutation.
func (p *Provider) Update(ctx context.Context, resource string, params provider.UpdateParams) (json.RawMessage, error) {
	vars := map[string]any{"id": params.ID, "input": params.Data}
	doc := p.cfg.document(p.docContext(resource, OpUpdate, vars))
	data, err := p.exec(ctx, doc, vars)
	if err != nil {
		return nil, err
	}
	return raw(p.rootField(data, p.cfg.prefixed("update"+pascalCase(resource)))), nil
}

// Delete runs the delete{Resource} mutation.
func (p *Provider) Delete(ctx context.Context, resource string, params provider.DeleteParams) error {
	vars := map[string]any{"id": params.ID}
	doc := p.cfg.document(p.docContext(resource, OpDelete, vars))
	_, err := p.exec(ctx, doc, vars)
	return err
}

// DeleteMany runs the configured batch mutation when one is supplied.
// Without one it falls back to one delete mutation per id, issued
// concurrently with all-or-nothing semantics: the first failure is
// reported and partial success is not distinguishable from none.
func (p *Provider) DeleteMany(ctx context.Context, resource string, params provider.DeleteManyParams) error {
	vars := map[string]any{"ids": params.IDs}
	if doc := p.cfg.document(p.docContext(resource, OpDeleteMany, vars)); doc != "" {
		_, err := p.exec(ctx, doc, vars)
		return err
	}

	return p.fanOut(len(params.IDs), func(i int) error {
		return p.Delete(ctx, resource, provider.DeleteParams{ID: params.IDs[i]})
	})
}

// UpdateMany mirrors DeleteMany: a single batch mutation when
// configured, otherwise a concurrent per-id fan-out whose results keep
// input order.
func (p *Provider) UpdateMany(ctx context.Context, resource string, params provider.UpdateManyParams) ([]json.RawMessage, error) {
	vars := map[string]any{"ids": params.IDs, "input": params.Data}
	if doc := p.cfg.document(p.docContext(resource, OpUpdateMany, vars)); doc != "" {
		data, err := p.exec(ctx, doc, vars)
		if err != nil {
			return nil, err
		}
		envelope := p.rootField(data, p.cfg.prefixed("update"+pascalCase(pluralize(resource))))
		items := envelope.Array()
		records := make([]json.RawMessage, 0, len(items))
		for _, item := range items {
			records = append(records, json.RawMessage(item.Raw))
		}
		return records, nil
	}

	records := make([]json.RawMessage, len(params.IDs))
	err := p.fanOut(len(params.IDs), func(i int) error {
		record, err := p.Update(ctx, resource, provider.UpdateParams{ID: params.IDs[i], Data: params.Data})
		if err != nil {
			return err
		}
		records[i] = record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// fanOut runs fn for each index concurrently and joins, returning the
// first error encountered.
func (p *Provider) fanOut(n int, fn func(i int) error) error {
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = fn(i)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *Provider) docContext(resource string, op Operation, vars map[string]any) DocumentContext {
	present := make(map[string]bool, len(vars))
	for name := range vars {
		present[name] = true
	}
	return DocumentContext{
		Resource:  resource,
		Operation: op,
		Fields:    p.cfg.resourceFields[resource],
		Variables: present,
	}
}

// rootField picks the operation's result out of the data object: the
// expected generated field name when present, otherwise the single
// top-level field (the overridden-document case).
func (p *Provider) rootField(data gjson.Result, want string) gjson.Result {
	if field := data.Get(want); field.Exists() {
		return field
	}
	var only gjson.Result
	count := 0
	data.ForEach(func(_, value gjson.Result) bool {
		only = value
		count++
		return count <= 1
	})
	if count == 1 {
		return only
	}
	return data
}

func raw(result gjson.Result) json.RawMessage {
	if !result.Exists() {
		return nil
	}
	return json.RawMessage(result.Raw)
}

// exec posts {query, variables} and unwraps data/errors. A non-2xx
// status is wrapped like REST; a 2xx response with a non-empty errors
// array becomes a GraphQL-level *provider.Error with no status code.
func (p *Provider) exec(ctx context.Context, document string, variables map[string]any) (gjson.Result, error) {
	encoded, err := json.Marshal(request{Query: document, Variables: variables})
	if err != nil {
		return gjson.Result{}, p.fail(provider.WrapError(err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.endpoint, bytes.NewReader(encoded))
	if err != nil {
		return gjson.Result{}, p.fail(provider.WrapError(err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range p.cfg.headers {
		req.Header.Set(k, v)
	}

	resp, err := p.cfg.httpClient.Do(req)
	if err != nil {
		return gjson.Result{}, p.fail(provider.WrapError(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, p.fail(provider.WrapError(err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return gjson.Result{}, p.fail(provider.NewHTTPError(resp.StatusCode, http.StatusText(resp.StatusCode), string(body)))
	}

	if !gjson.ValidBytes(body) {
		return gjson.Result{}, p.fail(provider.WrapError(fmt.Errorf("graphql: response is not valid JSON: %q", truncate(string(body), 128))))
	}

	doc := gjson.ParseBytes(body)
	if gqlErrs := doc.Get("errors").Array(); len(gqlErrs) > 0 {
		messages := make([]string, len(gqlErrs))
		details := make([]any, len(gqlErrs))
		for i, e := range gqlErrs {
			messages[i] = e.Get("message").String()
			details[i] = e.Value()
		}
		return gjson.Result{}, p.fail(&provider.Error{
			Message:  "GraphQL Error: " + strings.Join(messages, "; "),
			Response: details,
		})
	}

	return doc.Get("data"), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func (p *Provider) fail(err error) error {
	if p.cfg.transformError != nil {
		return p.cfg.transformError(err)
	}
	return err
}
