// Package query defines the provider-agnostic descriptors passed into
// list operations: pagination, sorting, filtering and free-text search.
// Values here are plain data; translating them onto a concrete transport
// is the job of a provider adapter.
package query

// Order is a sort direction.
type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// Sort orders results by a single field. When several sorts apply, slice
// order is priority order (primary first) and adapters must preserve it.
type Sort struct {
	Field string `json:"field" yaml:"field"`
	Order Order  `json:"order" yaml:"order"`
}

// Operator is the closed set of filter comparison operators.
type Operator string

const (
	OpEq         Operator = "eq"
	OpNe         Operator = "ne"
	OpLt         Operator = "lt"
	OpLte        Operator = "lte"
	OpGt         Operator = "gt"
	OpGte        Operator = "gte"
	OpIn         Operator = "in"
	OpNin        Operator = "nin"
	OpContains   Operator = "contains"
	OpStartsWith Operator = "startsWith"
	OpEndsWith   Operator = "endsWith"
	OpBetween    Operator = "between"
	OpNull       Operator = "null"
	OpNotNull    Operator = "notNull"
)

// Valid reports whether op is one of the known operators.
func (op Operator) Valid() bool {
	switch op {
	case OpEq, OpNe, OpLt, OpLte, OpGt, OpGte, OpIn, OpNin,
		OpContains, OpStartsWith, OpEndsWith, OpBetween, OpNull, OpNotNull:
		return true
	}
	return false
}

// Filter constrains a single field. Multiple filters are AND-combined;
// the model has no OR or grouping composition.
type Filter struct {
	Field    string   `json:"field" yaml:"field"`
	Operator Operator `json:"operator" yaml:"operator"`
	Value    any      `json:"value" yaml:"value"`
}

// Pagination selects a page window. Offset mode uses Page/PerPage,
// cursor mode uses Cursor. The modes are mutually exclusive per request;
// adapters check Cursor first and it short-circuits Page/PerPage.
type Pagination struct {
	Page    int    `json:"page,omitempty" yaml:"page,omitempty"`
	PerPage int    `json:"perPage,omitempty" yaml:"perPage,omitempty"`
	Cursor  string `json:"cursor,omitempty" yaml:"cursor,omitempty"`
}

// IsCursor reports whether cursor mode is in effect.
func (p *Pagination) IsCursor() bool {
	return p != nil && p.Cursor != ""
}

// ListParams aggregates every constraint a list operation accepts.
// The zero value means "no constraint", not "empty page".
type ListParams struct {
	Pagination *Pagination
	Sort       []Sort
	Filter     []Filter
	Search     string
	Meta       map[string]any
}

// ListResult is the uniform shape every adapter returns from a list
// operation. Total is always set; when the transport cannot supply one
// the adapter falls back to the observed page length.
type ListResult[T any] struct {
	Data       []T    `json:"data"`
	Total      int    `json:"total"`
	Page       int    `json:"page,omitempty"`
	PerPage    int    `json:"perPage,omitempty"`
	PageCount  int    `json:"pageCount,omitempty"`
	Cursor     string `json:"cursor,omitempty"`
	NextCursor string `json:"nextCursor,omitempty"`
	PrevCursor string `json:"prevCursor,omitempty"`
}
