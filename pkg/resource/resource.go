// Package resource holds the declarative configuration for CRUD
// resources: the unit a panel, CLI command or page binds to a data
// provider. Configuration is immutable; the With* options return
// adjusted copies instead of mutating shared builder state.
package resource

import (
	"github.com/sonalan/filact-sub001/pkg/provider"
)

// DefaultPrimaryKey is the identity field used when none is configured.
const DefaultPrimaryKey = "id"

// Field describes one displayable attribute of a resource.
type Field struct {
	Name     string `json:"name" yaml:"name"`
	Label    string `json:"label,omitempty" yaml:"label,omitempty"`
	Sortable bool   `json:"sortable,omitempty" yaml:"sortable,omitempty"`
}

// Resource binds a name to a provider endpoint and a primary key.
// Every identity-bearing operation keys off PrimaryKey, never a
// hardcoded "id" literal.
type Resource struct {
	Name       string
	Label      string
	PrimaryKey string
	Fields     []Field
	Searchable bool

	provider provider.DataProvider
}

// Option adjusts a Resource during construction.
type Option func(*Resource)

// New creates a resource configuration. The zero-option resource has
// PrimaryKey "id", a label equal to its name, and no provider bound.
func New(name string, opts ...Option) Resource {
	r := Resource{
		Name:       name,
		Label:      name,
		PrimaryKey: DefaultPrimaryKey,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// WithLabel sets the human-readable label.
func WithLabel(label string) Option {
	return func(r *Resource) { r.Label = label }
}

// WithPrimaryKey overrides the identity field.
func WithPrimaryKey(key string) Option {
	return func(r *Resource) {
		if key != "" {
			r.PrimaryKey = key
		}
	}
}

// WithFields declares the displayable fields.
func WithFields(fields ...Field) Option {
	return func(r *Resource) { r.Fields = fields }
}

// WithSearch marks the resource as free-text searchable.
func WithSearch() Option {
	return func(r *Resource) { r.Searchable = true }
}

// WithProvider binds the data provider used for this resource.
func WithProvider(p provider.DataProvider) Option {
	return func(r *Resource) { r.provider = p }
}

// Provider returns the bound data provider, or nil when none is bound.
func (r Resource) Provider() provider.DataProvider {
	return r.provider
}

// FieldNames returns the declared field names in order.
func (r Resource) FieldNames() []string {
	names := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		names[i] = f.Name
	}
	return names
}
