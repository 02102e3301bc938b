package cli

import (
	"fmt"
	"strings"

	"github.com/sonalan/filact-sub001/config"
	"github.com/sonalan/filact-sub001/pkg/provider"
	"github.com/sonalan/filact-sub001/pkg/provider/graphql"
	"github.com/sonalan/filact-sub001/pkg/provider/rest"
	"github.com/sonalan/filact-sub001/pkg/query"
)

// buildProvider constructs the data provider selected by configuration.
func buildProvider() (provider.DataProvider, error) {
	headers := config.GetHeaders()

	switch config.GetProviderType() {
	case "rest":
		return rest.New(config.GetAPIURL(), rest.WithHeaders(headers))
	case "graphql":
		return graphql.New(config.GetGraphQLEndpoint(), graphql.WithHeaders(headers))
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", config.GetProviderType())
	}
}

// parseSorts decodes "name:asc,email:desc" into ordered sorts. A bare
// field name sorts ascending.
func parseSorts(spec string) ([]query.Sort, error) {
	if spec == "" {
		return nil, nil
	}

	var sorts []query.Sort
	for _, part := range strings.Split(spec, ",") {
		field, order, found := strings.Cut(part, ":")
		if field == "" {
			return nil, fmt.Errorf("invalid sort %q: empty field", part)
		}
		s := query.Sort{Field: field, Order: query.Asc}
		if found {
			switch query.Order(order) {
			case query.Asc, query.Desc:
				s.Order = query.Order(order)
			default:
				return nil, fmt.Errorf("invalid sort order %q: must be asc or desc", order)
			}
		}
		sorts = append(sorts, s)
	}
	return sorts, nil
}

// parseFilters decodes repeatable "field.op=value" flags, e.g.
// "status.eq=active" or "age.gte=21".
func parseFilters(specs []string) ([]query.Filter, error) {
	var filters []query.Filter
	for _, spec := range specs {
		key, value, found := strings.Cut(spec, "=")
		if !found {
			return nil, fmt.Errorf("invalid filter %q: use field.operator=value", spec)
		}
		dot := strings.LastIndex(key, ".")
		if dot <= 0 {
			return nil, fmt.Errorf("invalid filter %q: use field.operator=value", spec)
		}
		field, op := key[:dot], query.Operator(key[dot+1:])
		if !op.Valid() {
			return nil, fmt.Errorf("invalid filter operator %q in %q", op, spec)
		}
		filters = append(filters, query.Filter{Field: field, Operator: op, Value: value})
	}
	return filters, nil
}
