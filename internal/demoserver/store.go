package demoserver

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/sonalan/filact-sub001/pkg/query"
)

// record is a schemaless row as decoded from JSON.
type record = map[string]any

// store keeps per-resource record collections in memory. It exists so
// the wire contract can be exercised end to end without a database.
type store struct {
	mu     sync.RWMutex
	tables map[string][]record
	nextID map[string]int
}

func newStore(seed map[string][]record) *store {
	s := &store{
		tables: make(map[string][]record),
		nextID: make(map[string]int),
	}
	for name, rows := range seed {
		maxID := 0
		for _, row := range rows {
			s.tables[name] = append(s.tables[name], row)
			if id, ok := row["id"].(int); ok && id > maxID {
				maxID = id
			}
			if id, ok := row["id"].(float64); ok && int(id) > maxID {
				maxID = int(id)
			}
		}
		s.nextID[name] = maxID + 1
	}
	return s
}

type listQuery struct {
	page    int
	perPage int
	cursor  string
	sorts   []query.Sort
	filters []query.Filter
	search  string
}

type listPage struct {
	Data       []record `json:"data"`
	Total      int      `json:"total"`
	Page       int      `json:"page,omitempty"`
	PerPage    int      `json:"perPage,omitempty"`
	PageCount  int      `json:"pageCount,omitempty"`
	NextCursor string   `json:"nextCursor,omitempty"`
}

// list applies filter, search, sort and pagination in that order.
// Cursors are opaque offsets into the filtered, sorted set.
func (s *store) list(resource string, q listQuery) listPage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rows []record
	for _, row := range s.tables[resource] {
		if matchesFilters(row, q.filters) && matchesSearch(row, q.search) {
			rows = append(rows, row)
		}
	}

	sortRows(rows, q.sorts)

	page := listPage{Total: len(rows)}
	switch {
	case q.cursor != "":
		offset, _ := strconv.Atoi(q.cursor)
		size := q.perPage
		if size <= 0 {
			size = 10
		}
		if offset > len(rows) {
			offset = len(rows)
		}
		end := offset + size
		if end > len(rows) {
			end = len(rows)
		} else if end < len(rows) {
			page.NextCursor = strconv.Itoa(end)
		}
		page.Data = rows[offset:end]
	case q.page > 0 && q.perPage > 0:
		start := (q.page - 1) * q.perPage
		if start > len(rows) {
			start = len(rows)
		}
		end := start + q.perPage
		if end > len(rows) {
			end = len(rows)
		}
		page.Data = rows[start:end]
		page.Page = q.page
		page.PerPage = q.perPage
		page.PageCount = (len(rows) + q.perPage - 1) / q.perPage
	default:
		page.Data = rows
	}

	if page.Data == nil {
		page.Data = []record{}
	}
	return page
}

func (s *store) get(resource, id string) (record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, row := range s.tables[resource] {
		if idMatches(row, id) {
			return row, true
		}
	}
	return nil, false
}

func (s *store) create(resource string, row record) record {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := row["id"]; !ok {
		if s.nextID[resource] == 0 {
			s.nextID[resource] = 1
		}
		row["id"] = s.nextID[resource]
	}
	s.nextID[resource]++
	s.tables[resource] = append(s.tables[resource], row)
	return row
}

func (s *store) update(resource, id string, data record) (record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, row := range s.tables[resource] {
		if idMatches(row, id) {
			for k, v := range data {
				if k != "id" {
					row[k] = v
				}
			}
			s.tables[resource][i] = row
			return row, true
		}
	}
	return nil, false
}

func (s *store) delete(resource, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, row := range s.tables[resource] {
		if idMatches(row, id) {
			s.tables[resource] = append(s.tables[resource][:i], s.tables[resource][i+1:]...)
			return true
		}
	}
	return false
}

func (s *store) deleteMany(resource string, ids []any) int {
	deleted := 0
	for _, id := range ids {
		if s.delete(resource, fmt.Sprint(id)) {
			deleted++
		}
	}
	return deleted
}

func (s *store) updateMany(resource string, ids []any, data record) []record {
	updated := make([]record, 0, len(ids))
	for _, id := range ids {
		if row, ok := s.update(resource, fmt.Sprint(id), data); ok {
			updated = append(updated, row)
		}
	}
	return updated
}

func idMatches(row record, id string) bool {
	v, ok := row["id"]
	return ok && fmt.Sprint(v) == id
}

func matchesSearch(row record, search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	for _, v := range row {
		if s, ok := v.(string); ok && strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}

func matchesFilters(row record, filters []query.Filter) bool {
	for _, f := range filters {
		if !matchesFilter(row, f) {
			return false
		}
	}
	return true
}

func matchesFilter(row record, f query.Filter) bool {
	value, present := row[f.Field]
	want := fmt.Sprint(f.Value)

	switch f.Operator {
	case query.OpEq:
		return present && fmt.Sprint(value) == want
	case query.OpNe:
		return !present || fmt.Sprint(value) != want
	case query.OpLt, query.OpLte, query.OpGt, query.OpGte:
		return present && compareNumeric(value, want, f.Operator)
	case query.OpIn, query.OpNin:
		found := false
		for _, candidate := range strings.Split(want, ",") {
			if present && fmt.Sprint(value) == candidate {
				found = true
				break
			}
		}
		if f.Operator == query.OpIn {
			return found
		}
		return !found
	case query.OpContains:
		s, ok := value.(string)
		return ok && strings.Contains(s, want)
	case query.OpStartsWith:
		s, ok := value.(string)
		return ok && strings.HasPrefix(s, want)
	case query.OpEndsWith:
		s, ok := value.(string)
		return ok && strings.HasSuffix(s, want)
	case query.OpBetween:
		bounds := strings.SplitN(want, ",", 2)
		if len(bounds) != 2 || !present {
			return false
		}
		return compareNumeric(value, bounds[0], query.OpGte) && compareNumeric(value, bounds[1], query.OpLte)
	case query.OpNull:
		return !present || value == nil
	case query.OpNotNull:
		return present && value != nil
	default:
		return true
	}
}

func compareNumeric(value any, want string, op query.Operator) bool {
	var have float64
	switch v := value.(type) {
	case float64:
		have = v
	case int:
		have = float64(v)
	default:
		return false
	}
	target, err := strconv.ParseFloat(want, 64)
	if err != nil {
		return false
	}

	switch op {
	case query.OpLt:
		return have < target
	case query.OpLte:
		return have <= target
	case query.OpGt:
		return have > target
	case query.OpGte:
		return have >= target
	}
	return false
}

// sortRows orders rows by the given sorts, primary first. Mixed types
// fall back to string comparison.
func sortRows(rows []record, sorts []query.Sort) {
	if len(sorts) == 0 {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		for _, s := range sorts {
			a, b := rows[i][s.Field], rows[j][s.Field]
			cmp := compareValues(a, b)
			if cmp == 0 {
				continue
			}
			if s.Order == query.Desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
}

func compareValues(a, b any) int {
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}
