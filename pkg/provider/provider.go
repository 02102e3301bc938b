// Package provider defines the data-provider contract: the seam between
// generic CRUD callers (CLI commands, panel code, caches) and a concrete
// backend transport. Adapters for REST and GraphQL live in subpackages;
// any future adapter implements the same interface.
package provider

import (
	"context"
	"encoding/json"

	"github.com/sonalan/filact-sub001/pkg/query"
)

// GetOneParams carries optional per-call metadata for single-record reads.
type GetOneParams struct {
	Meta map[string]any
}

// CreateParams carries the record body for a create operation.
type CreateParams struct {
	Data any
	Meta map[string]any
}

// UpdateParams carries the target id and new record body for an update.
// PreviousData is advisory only; adapters never send it over the wire
// but optimistic callers may stash the pre-update record here.
type UpdateParams struct {
	ID           any
	Data         any
	PreviousData any
	Meta         map[string]any
}

// DeleteParams identifies the record to delete.
type DeleteParams struct {
	ID           any
	PreviousData any
	Meta         map[string]any
}

// DeleteManyParams identifies a batch of records to delete.
type DeleteManyParams struct {
	IDs  []any
	Meta map[string]any
}

// UpdateManyParams applies the same body to a batch of records.
type UpdateManyParams struct {
	IDs  []any
	Data any
	Meta map[string]any
}

// DataProvider is the uniform CRUD contract implemented by every
// adapter. Records cross the boundary as raw JSON; callers decode into
// their own types. Adapters never retry and never swallow errors —
// every failure surfaces as *Error.
type DataProvider interface {
	GetList(ctx context.Context, resource string, params query.ListParams) (*query.ListResult[json.RawMessage], error)
	GetOne(ctx context.Context, resource string, id any, params GetOneParams) (json.RawMessage, error)
	Create(ctx context.Context, resource string, params CreateParams) (json.RawMessage, error)
	Update(ctx context.Context, resource string, params UpdateParams) (json.RawMessage, error)
	Delete(ctx context.Context, resource string, params DeleteParams) error
	DeleteMany(ctx context.Context, resource string, params DeleteManyParams) error
	UpdateMany(ctx context.Context, resource string, params UpdateManyParams) ([]json.RawMessage, error)
}

// CustomExecutor is the optional escape hatch for provider-specific
// actions that do not fit the CRUD surface. The payload and result are
// opaque passthrough values.
type CustomExecutor interface {
	Custom(ctx context.Context, resource, method string, payload any) (json.RawMessage, error)
}
