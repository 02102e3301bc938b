package graphql

import (
	"fmt"
	"sort"
	"strings"
)

// pluralize derives the list field name from a resource name. Naive by
// design: no inflection table, real deployments override the document.
func pluralize(resource string) string {
	switch {
	case strings.HasSuffix(resource, "y"):
		return resource[:len(resource)-1] + "ies"
	case strings.HasSuffix(resource, "s"),
		strings.HasSuffix(resource, "x"),
		strings.HasSuffix(resource, "ch"),
		strings.HasSuffix(resource, "sh"):
		return resource + "es"
	default:
		return resource + "s"
	}
}

// pascalCase upper-cases the first letter, e.g. user -> User.
func pascalCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (c *config) prefixed(field string) string {
	if c.operationPrefix == "" {
		return field
	}
	return c.operationPrefix + pascalCase(field)
}

func (c *config) selection(resource string) string {
	fields := c.resourceFields[resource]
	if len(fields) == 0 {
		fields = []string{"id"}
	}
	if c.includeTypename {
		fields = append(fields[:len(fields):len(fields)], "__typename")
	}
	return strings.Join(fields, " ")
}

// variable declaration types, in a stable declaration order.
var varTypes = map[string]string{
	"page":    "Int",
	"perPage": "Int",
	"cursor":  "String",
	"orderBy": "[OrderByInput!]",
	"where":   "WhereInput",
	"search":  "String",
	"id":      "ID!",
	"input":   "Input!", // placeholder, replaced per resource
	"ids":     "[ID!]!",
}

var varOrder = []string{"id", "ids", "input", "page", "perPage", "cursor", "orderBy", "where", "search"}

// declareVars renders the operation's variable declarations and the
// matching field arguments. Only variables that are actually present
// get declared.
func declareVars(ctx DocumentContext, inputType string) (decls, args string) {
	var names []string
	for name := range ctx.Variables {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return indexOf(varOrder, names[i]) < indexOf(varOrder, names[j])
	})

	var ds, as []string
	for _, name := range names {
		typ := varTypes[name]
		if name == "input" {
			typ = inputType
		}
		ds = append(ds, fmt.Sprintf("$%s: %s", name, typ))
		as = append(as, fmt.Sprintf("%s: $%s", name, name))
	}
	if len(ds) == 0 {
		return "", ""
	}
	return "(" + strings.Join(ds, ", ") + ")", "(" + strings.Join(as, ", ") + ")"
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return len(list)
}

// document resolves the builder for an operation, preferring a
// caller-supplied override. Returns "" when there is no default (the
// deleteMany/updateMany case).
func (c *config) document(ctx DocumentContext) string {
	if builder, ok := c.documents[ctx.Operation]; ok {
		return builder(ctx)
	}
	switch ctx.Operation {
	case OpGetList:
		return c.defaultGetList(ctx)
	case OpGetOne:
		return c.defaultGetOne(ctx)
	case OpCreate:
		return c.defaultCreate(ctx)
	case OpUpdate:
		return c.defaultUpdate(ctx)
	case OpDelete:
		return c.defaultDelete(ctx)
	}
	return ""
}

func (c *config) defaultGetList(ctx DocumentContext) string {
	decls, args := declareVars(ctx, "")
	field := c.prefixed(pluralize(ctx.Resource))
	return fmt.Sprintf(
		"query%s { %s%s { %s { %s } %s %s { page perPage pageCount } } }",
		decls, field, args,
		c.fields.Data, c.selection(ctx.Resource),
		c.fields.Total, c.fields.PageInfo,
	)
}

func (c *config) defaultGetOne(ctx DocumentContext) string {
	field := c.prefixed(ctx.Resource)
	return fmt.Sprintf(
		"query($id: ID!) { %s(id: $id) { %s } }",
		field, c.selection(ctx.Resource),
	)
}

func (c *config) defaultCreate(ctx DocumentContext) string {
	field := c.prefixed("create" + pascalCase(ctx.Resource))
	return fmt.Sprintf(
		"mutation($input: %sInput!) { %s(input: $input) { %s } }",
		pascalCase(ctx.Resource), field, c.selection(ctx.Resource),
	)
}

func (c *config) defaultUpdate(ctx DocumentContext) string {
	field := c.prefixed("update" + pascalCase(ctx.Resource))
	return fmt.Sprintf(
		"mutation($id: ID!, $input: %sInput!) { %s(id: $id, input: $input) { %s } }",
		pascalCase(ctx.Resource), field, c.selection(ctx.Resource),
	)
}

func (c *config) defaultDelete(ctx DocumentContext) string {
	field := c.prefixed("delete" + pascalCase(ctx.Resource))
	return fmt.Sprintf("mutation($id: ID!) { %s(id: $id) }", field)
}
