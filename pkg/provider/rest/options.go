package rest

import (
	"net/http"
	"net/url"

	"github.com/sonalan/filact-sub001/pkg/query"
)

// FilterSerializer writes a set of filters into URL query values.
type FilterSerializer func(filters []query.Filter, values url.Values)

// TransformRequest can mutate every outgoing request (auth headers,
// tracing ids) before it is sent.
type TransformRequest func(req *http.Request) error

// TransformResponse can rewrite every response body before decoding.
type TransformResponse func(body []byte) ([]byte, error)

// PaginationParams names the query parameters used for pagination.
type PaginationParams struct {
	PageParam    string
	PerPageParam string
	CursorParam  string
}

// SortParams names the query parameters used for sorting. Multiple
// sorts are joined into parallel Separator-delimited lists, field list
// and order list at corresponding positions.
type SortParams struct {
	FieldParam string
	OrderParam string
	Separator  string
}

// FieldMapping names the keys of the list-response envelope. Responses
// with a non-standard envelope are handled by remapping keys here, not
// by reshaping the body.
type FieldMapping struct {
	Data       string
	Total      string
	Page       string
	PerPage    string
	PageCount  string
	Cursor     string
	NextCursor string
	PrevCursor string
}

type config struct {
	baseURL           string
	headers           map[string]string
	httpClient        *http.Client
	transformRequest  TransformRequest
	transformResponse TransformResponse

	pagination   PaginationParams
	sort         SortParams
	filterPrefix string
	serializer   FilterSerializer
	searchParam  string
	fields       FieldMapping
}

// Option customizes a REST provider at construction time. The resulting
// configuration is read-only afterwards, so concurrent calls on one
// provider instance are safe.
type Option func(*config)

func defaultConfig(baseURL string) config {
	return config{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		pagination: PaginationParams{
			PageParam:    "page",
			PerPageParam: "perPage",
			CursorParam:  "cursor",
		},
		sort: SortParams{
			FieldParam: "sortBy",
			OrderParam: "order",
			Separator:  ",",
		},
		filterPrefix: "filter.",
		searchParam:  "q",
		fields: FieldMapping{
			Data:       "data",
			Total:      "total",
			Page:       "page",
			PerPage:    "perPage",
			PageCount:  "pageCount",
			Cursor:     "cursor",
			NextCursor: "nextCursor",
			PrevCursor: "prevCursor",
		},
	}
}

// WithHeaders sets headers sent with every request.
func WithHeaders(headers map[string]string) Option {
	return func(c *config) { c.headers = headers }
}

// WithHTTPClient swaps the transport.
func WithHTTPClient(client *http.Client) Option {
	return func(c *config) { c.httpClient = client }
}

// WithTransformRequest installs a hook run on every outgoing request.
func WithTransformRequest(fn TransformRequest) Option {
	return func(c *config) { c.transformRequest = fn }
}

// WithTransformResponse installs a hook run on every response body.
func WithTransformResponse(fn TransformResponse) Option {
	return func(c *config) { c.transformResponse = fn }
}

// WithPaginationParams renames the pagination query parameters.
func WithPaginationParams(p PaginationParams) Option {
	return func(c *config) {
		if p.PageParam != "" {
			c.pagination.PageParam = p.PageParam
		}
		if p.PerPageParam != "" {
			c.pagination.PerPageParam = p.PerPageParam
		}
		if p.CursorParam != "" {
			c.pagination.CursorParam = p.CursorParam
		}
	}
}

// WithSortParams renames the sort query parameters.
func WithSortParams(s SortParams) Option {
	return func(c *config) {
		if s.FieldParam != "" {
			c.sort.FieldParam = s.FieldParam
		}
		if s.OrderParam != "" {
			c.sort.OrderParam = s.OrderParam
		}
		if s.Separator != "" {
			c.sort.Separator = s.Separator
		}
	}
}

// WithFilterPrefix renames the prefix of default filter parameters.
func WithFilterPrefix(prefix string) Option {
	return func(c *config) { c.filterPrefix = prefix }
}

// WithFilterSerializer replaces the default filter serialization.
func WithFilterSerializer(fn FilterSerializer) Option {
	return func(c *config) { c.serializer = fn }
}

// WithSearchParam renames the free-text search query parameter.
func WithSearchParam(name string) Option {
	return func(c *config) { c.searchParam = name }
}

// WithFieldMapping remaps the list-response envelope keys. Empty fields
// keep their defaults.
func WithFieldMapping(m FieldMapping) Option {
	return func(c *config) {
		if m.Data != "" {
			c.fields.Data = m.Data
		}
		if m.Total != "" {
			c.fields.Total = m.Total
		}
		if m.Page != "" {
			c.fields.Page = m.Page
		}
		if m.PerPage != "" {
			c.fields.PerPage = m.PerPage
		}
		if m.PageCount != "" {
			c.fields.PageCount = m.PageCount
		}
		if m.Cursor != "" {
			c.fields.Cursor = m.Cursor
		}
		if m.NextCursor != "" {
			c.fields.NextCursor = m.NextCursor
		}
		if m.PrevCursor != "" {
			c.fields.PrevCursor = m.PrevCursor
		}
	}
}
