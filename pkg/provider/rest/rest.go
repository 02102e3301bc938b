// Package rest implements the data-provider contract over plain HTTP:
// the query model maps onto URL query parameters and standard verbs,
// JSON bodies carry records both ways.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/sonalan/filact-sub001/pkg/provider"
	"github.com/sonalan/filact-sub001/pkg/query"
)

// Provider talks to a REST backend rooted at a base URL. Construct with
// New; the configuration is immutable afterwards.
type Provider struct {
	cfg config
}

var _ provider.DataProvider = (*Provider)(nil)
var _ provider.CustomExecutor = (*Provider)(nil)

// New creates a REST provider for the given base URL.
func New(baseURL string, opts ...Option) (*Provider, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("rest: baseURL cannot be empty")
	}
	cfg := defaultConfig(strings.TrimRight(baseURL, "/"))
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Provider{cfg: cfg}, nil
}

// GetList issues GET /{resource} with pagination, sort, filter and
// search encoded as query parameters. The response envelope is trusted
// to already match the result shape; only the envelope keys are mapped.
func (p *Provider) GetList(ctx context.Context, resource string, params query.ListParams) (*query.ListResult[json.RawMessage], error) {
	u := p.resourceURL(resource)
	if qs := p.buildQuery(params); qs != "" {
		u += "?" + qs
	}

	body, err := p.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	return p.parseListBody(body), nil
}

// GetOne issues GET /{resource}/{id}.
func (p *Provider) GetOne(ctx context.Context, resource string, id any, _ provider.GetOneParams) (json.RawMessage, error) {
	return p.do(ctx, http.MethodGet, p.recordURL(resource, id), nil)
}

// Create issues POST /{resource} with the record as the JSON body.
func (p *Provider) Create(ctx context.Context, resource string, params provider.CreateParams) (json.RawMessage, error) {
	return p.do(ctx, http.MethodPost, p.resourceURL(resource), params.Data)
}

// Update issues PUT /{resource}/{id} with the record as the JSON body.
func (p *Provider) Update(ctx context.Context, resource string, params provider.UpdateParams) (json.RawMessage, error) {
	return p.do(ctx, http.MethodPut, p.recordURL(resource, params.ID), params.Data)
}

// Delete issues DELETE /{resource}/{id}. A 204 response resolves
// cleanly without touching the (absent) body.
func (p *Provider) Delete(ctx context.Context, resource string, params provider.DeleteParams) error {
	_, err := p.do(ctx, http.MethodDelete, p.recordURL(resource, params.ID), nil)
	return err
}

// DeleteMany issues a single DELETE /{resource}/batch with body {ids},
// not N individual deletes.
func (p *Provider) DeleteMany(ctx context.Context, resource string, params provider.DeleteManyParams) error {
	_, err := p.do(ctx, http.MethodDelete, p.resourceURL(resource)+"/batch", map[string]any{"ids": params.IDs})
	return err
}

// UpdateMany issues a single PUT /{resource}/batch with body {ids, data}
// and returns the updated records.
func (p *Provider) UpdateMany(ctx context.Context, resource string, params provider.UpdateManyParams) ([]json.RawMessage, error) {
	body, err := p.do(ctx, http.MethodPut, p.resourceURL(resource)+"/batch", map[string]any{
		"ids":  params.IDs,
		"data": params.Data,
	})
	if err != nil {
		return nil, err
	}

	items := gjson.ParseBytes(body).Array()
	records := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		records = append(records, json.RawMessage(item.Raw))
	}
	return records, nil
}

// Custom issues POST /{resource}/{method} with the payload as the JSON
// body — the escape hatch for backend-specific actions.
func (p *Provider) Custom(ctx context.Context, resource, method string, payload any) (json.RawMessage, error) {
	return p.do(ctx, http.MethodPost, p.resourceURL(resource)+"/"+url.PathEscape(method), payload)
}

func (p *Provider) resourceURL(resource string) string {
	return p.cfg.baseURL + "/" + url.PathEscape(resource)
}

func (p *Provider) recordURL(resource string, id any) string {
	return p.resourceURL(resource) + "/" + url.PathEscape(fmt.Sprint(id))
}

// buildQuery encodes ListParams as URL query parameters. Cursor
// pagination short-circuits page/perPage when both are present.
func (p *Provider) buildQuery(params query.ListParams) string {
	values := url.Values{}

	if pg := params.Pagination; pg != nil {
		if pg.IsCursor() {
			values.Set(p.cfg.pagination.CursorParam, pg.Cursor)
		} else {
			if pg.Page > 0 {
				values.Set(p.cfg.pagination.PageParam, strconv.Itoa(pg.Page))
			}
			if pg.PerPage > 0 {
				values.Set(p.cfg.pagination.PerPageParam, strconv.Itoa(pg.PerPage))
			}
		}
	}

	if len(params.Sort) > 0 {
		fields := make([]string, len(params.Sort))
		orders := make([]string, len(params.Sort))
		for i, s := range params.Sort {
			fields[i] = s.Field
			orders[i] = string(s.Order)
		}
		values.Set(p.cfg.sort.FieldParam, strings.Join(fields, p.cfg.sort.Separator))
		values.Set(p.cfg.sort.OrderParam, strings.Join(orders, p.cfg.sort.Separator))
	}

	if len(params.Filter) > 0 {
		if p.cfg.serializer != nil {
			p.cfg.serializer(params.Filter, values)
		} else {
			// Add, not Set: two filters may share field and operator.
			for _, f := range params.Filter {
				key := p.cfg.filterPrefix + f.Field + "." + string(f.Operator)
				values.Add(key, filterValue(f.Value))
			}
		}
	}

	if params.Search != "" {
		values.Set(p.cfg.searchParam, params.Search)
	}

	return values.Encode()
}

// filterValue stringifies a filter value for a query parameter. List
// values (in/nin/between) join with commas; everything else prints as-is.
func filterValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []string:
		return strings.Join(val, ",")
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = fmt.Sprint(item)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(val)
	}
}

// parseListBody maps the response envelope onto ListResult using the
// configured field names. Total defaults to the observed page length
// when the envelope omits it.
func (p *Provider) parseListBody(body []byte) *query.ListResult[json.RawMessage] {
	doc := gjson.ParseBytes(body)
	result := &query.ListResult[json.RawMessage]{}

	for _, item := range doc.Get(p.cfg.fields.Data).Array() {
		result.Data = append(result.Data, json.RawMessage(item.Raw))
	}

	if total := doc.Get(p.cfg.fields.Total); total.Exists() {
		result.Total = int(total.Int())
	} else {
		result.Total = len(result.Data)
	}

	result.Page = int(doc.Get(p.cfg.fields.Page).Int())
	result.PerPage = int(doc.Get(p.cfg.fields.PerPage).Int())
	result.PageCount = int(doc.Get(p.cfg.fields.PageCount).Int())
	result.Cursor = doc.Get(p.cfg.fields.Cursor).String()
	result.NextCursor = doc.Get(p.cfg.fields.NextCursor).String()
	result.PrevCursor = doc.Get(p.cfg.fields.PrevCursor).String()
	return result
}

// do sends one request and returns the raw response body. Non-2xx
// statuses become *provider.Error with the status code attached; any
// other failure is wrapped with no status code. There are no retries.
func (p *Provider) do(ctx context.Context, method, rawURL string, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, provider.WrapError(err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, provider.WrapError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range p.cfg.headers {
		req.Header.Set(k, v)
	}
	if p.cfg.transformRequest != nil {
		if err := p.cfg.transformRequest(req); err != nil {
			return nil, provider.WrapError(err)
		}
	}

	resp, err := p.cfg.httpClient.Do(req)
	if err != nil {
		return nil, provider.WrapError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, provider.WrapError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, provider.NewHTTPError(resp.StatusCode, http.StatusText(resp.StatusCode), string(respBody))
	}

	// 204 and other empty bodies resolve without a decode attempt.
	if resp.StatusCode == http.StatusNoContent || len(respBody) == 0 {
		return nil, nil
	}

	if p.cfg.transformResponse != nil {
		respBody, err = p.cfg.transformResponse(respBody)
		if err != nil {
			return nil, provider.WrapError(err)
		}
	}
	return respBody, nil
}
