package graphql

import (
	"github.com/sonalan/filact-sub001/pkg/logger"
	"github.com/sonalan/filact-sub001/pkg/query"
)

// buildWhere translates filters into the conventional suffix-style
// where-input arguments. Filters AND-combine by virtue of sharing one
// object. The between operator has no mapping here and is dropped.
func buildWhere(filters []query.Filter) map[string]any {
	where := make(map[string]any, len(filters))
	for _, f := range filters {
		switch f.Operator {
		case query.OpEq:
			where[f.Field] = f.Value
		case query.OpNe:
			where[f.Field+"_not"] = f.Value
		case query.OpLt:
			where[f.Field+"_lt"] = f.Value
		case query.OpLte:
			where[f.Field+"_lte"] = f.Value
		case query.OpGt:
			where[f.Field+"_gt"] = f.Value
		case query.OpGte:
			where[f.Field+"_gte"] = f.Value
		case query.OpIn:
			where[f.Field+"_in"] = f.Value
		case query.OpNin:
			where[f.Field+"_not_in"] = f.Value
		case query.OpContains:
			where[f.Field+"_contains"] = f.Value
		case query.OpStartsWith:
			where[f.Field+"_starts_with"] = f.Value
		case query.OpEndsWith:
			where[f.Field+"_ends_with"] = f.Value
		case query.OpNull:
			where[f.Field] = nil
		case query.OpNotNull:
			where[f.Field+"_not"] = nil
		default:
			logger.New().Debug("graphql: dropping filter on %q: operator %q has no where mapping", f.Field, f.Operator)
		}
	}
	return where
}

// buildOrderBy translates sorts into [{field: "ASC"|"DESC"}, ...] in
// input order.
func buildOrderBy(sorts []query.Sort) []map[string]string {
	orderBy := make([]map[string]string, len(sorts))
	for i, s := range sorts {
		dir := "ASC"
		if s.Order == query.Desc {
			dir = "DESC"
		}
		orderBy[i] = map[string]string{s.Field: dir}
	}
	return orderBy
}
