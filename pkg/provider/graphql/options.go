package graphql

import "net/http"

// Operation identifies which provider method a document is built for.
type Operation string

const (
	OpGetList    Operation = "getList"
	OpGetOne     Operation = "getOne"
	OpCreate     Operation = "create"
	OpUpdate     Operation = "update"
	OpDelete     Operation = "delete"
	OpDeleteMany Operation = "deleteMany"
	OpUpdateMany Operation = "updateMany"
)

// DocumentBuilder produces a GraphQL document for one operation on one
// resource. Default builders are supplied for everything except
// deleteMany/updateMany; callers substitute their own per operation.
type DocumentBuilder func(ctx DocumentContext) string

// DocumentContext is what a builder gets to work with.
type DocumentContext struct {
	Resource  string
	Operation Operation
	// Fields is the selection set for the resource's records.
	Fields []string
	// Variables holds the variable names that will be sent, so builders
	// can declare only what is present.
	Variables map[string]bool
}

// TransformError can replace the error returned from any failed call.
type TransformError func(err error) error

// FieldMapping names the keys of the getList result object.
type FieldMapping struct {
	Data     string
	Total    string
	PageInfo string
}

type config struct {
	endpoint   string
	headers    map[string]string
	httpClient *http.Client

	fields          FieldMapping
	resourceFields  map[string][]string
	documents       map[Operation]DocumentBuilder
	operationPrefix string
	includeTypename bool
	transformError  TransformError
}

// Option customizes a GraphQL provider at construction time; the
// configuration is read-only afterwards.
type Option func(*config)

func defaultConfig(endpoint string) config {
	return config{
		endpoint:       endpoint,
		httpClient:     http.DefaultClient,
		resourceFields: map[string][]string{},
		documents:      map[Operation]DocumentBuilder{},
		fields: FieldMapping{
			Data:     "data",
			Total:    "total",
			PageInfo: "pageInfo",
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

// WithFieldMapping remaps the getList result envelope keys.
func WithFieldMapping(m FieldMapping) Option {
	return func(c *config) {
		if m.Data != "" {
			c.fields.Data = m.Data
		}
		if m.Total != "" {
			c.fields.Total = m.Total
		}
		if m.PageInfo != "" {
			c.fields.PageInfo = m.PageInfo
		}
	}
}

// WithResourceFields sets the selection set requested for a resource's
// records. Resources without one fall back to just the id field.
func WithResourceFields(resource string, fields ...string) Option {
	return func(c *config) { c.resourceFields[resource] = fields }
}

// WithDocument overrides the document builder for one operation.
// deleteMany/updateMany have no default; overriding them switches those
// operations from per-id fan-out to a single batch request.
func WithDocument(op Operation, builder DocumentBuilder) Option {
	return func(c *config) { c.documents[op] = builder }
}

// WithOperationPrefix prefixes generated query and mutation field names.
func WithOperationPrefix(prefix string) Option {
	return func(c *config) { c.operationPrefix = prefix }
}

// WithTypename adds __typename to generated selection sets.
func WithTypename() Option {
	return func(c *config) { c.includeTypename = true }
}

// WithTransformError installs a hook run on every error before it is
// returned to the caller.
func WithTransformError(fn TransformError) Option {
	return func(c *config) { c.transformError = fn }
}
