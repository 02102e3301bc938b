// Package demoserver is an in-memory CRUD backend speaking the exact
// wire contract the REST provider expects: list query parameters,
// standard verbs, batch endpoints, custom actions and a websocket live
// feed. It backs local development and end-to-end tests.
package demoserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	restful "github.com/emicklei/go-restful/v3"

	"github.com/sonalan/filact-sub001/pkg/live"
	"github.com/sonalan/filact-sub001/pkg/logger"
	"github.com/sonalan/filact-sub001/pkg/query"
)

// ActionFunc handles one custom action (POST /{resource}/{action}).
type ActionFunc func(resource string, payload map[string]any) (any, error)

// Server wires the in-memory store, the live hub and the routes.
type Server struct {
	store     *store
	hub       *hub
	log       *logger.Logger
	container *restful.Container
	actions   map[string]ActionFunc
}

// New creates a demo server pre-seeded with the given records.
func New(seed map[string][]map[string]any) *Server {
	s := &Server{
		store:   newStore(seed),
		hub:     newHub(),
		log:     logger.New(),
		actions: map[string]ActionFunc{},
	}

	ws := new(restful.WebService)
	ws.Consumes(restful.MIME_JSON).Produces(restful.MIME_JSON)

	ws.Route(ws.GET("/live").To(s.handleLive).
		Doc("websocket feed of record-change events"))

	ws.Route(ws.GET("/{resource}").To(s.handleList).
		Doc("list records with pagination, sort, filter and search"))
	ws.Route(ws.POST("/{resource}").To(s.handleCreate).
		Doc("create a record"))

	// The batch routes must stay literal so the curly router prefers
	// them over the {id} routes.
	ws.Route(ws.DELETE("/{resource}/batch").To(s.handleDeleteMany).
		Doc("delete a batch of records by id"))
	ws.Route(ws.PUT("/{resource}/batch").To(s.handleUpdateMany).
		Doc("apply the same update to a batch of records"))

	ws.Route(ws.GET("/{resource}/{id}").To(s.handleGet).
		Doc("fetch one record"))
	ws.Route(ws.PUT("/{resource}/{id}").To(s.handleUpdate).
		Doc("replace one record"))
	ws.Route(ws.DELETE("/{resource}/{id}").To(s.handleDelete).
		Doc("delete one record"))
	ws.Route(ws.POST("/{resource}/{action}").To(s.handleCustom).
		Doc("invoke a registered custom action"))

	s.container = restful.NewContainer()
	s.container.Add(ws)

	cors := restful.CrossOriginResourceSharing{
		AllowedHeaders: []string{"Content-Type", "Accept", "Authorization"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE"},
		AllowedDomains: []string{"*"},
	}
	s.container.Filter(cors.Filter)

	s.container.Filter(func(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
		url := req.Request.URL.Path
		if req.Request.URL.RawQuery != "" {
			url += "?" + req.Request.URL.RawQuery
		}
		s.log.Debug("%s %s", req.Request.Method, url)
		chain.ProcessFilter(req, resp)
		s.log.Debug("Response status: %d", resp.StatusCode())
	})
	return s
}

// RegisterAction installs a custom action reachable at
// POST /{resource}/{name}.
func (s *Server) RegisterAction(resource, name string, fn ActionFunc) {
	s.actions[resource+"/"+name] = fn
}

// Handler exposes the server as a plain http.Handler.
func (s *Server) Handler() http.Handler {
	return s.container
}

func (s *Server) handleList(req *restful.Request, resp *restful.Response) {
	resource := req.PathParameter("resource")
	page := s.store.list(resource, parseListQuery(req.Request.URL.Query()))
	resp.WriteHeaderAndJson(http.StatusOK, page, restful.MIME_JSON)
}

func (s *Server) handleGet(req *restful.Request, resp *restful.Response) {
	resource := req.PathParameter("resource")
	row, ok := s.store.get(resource, req.PathParameter("id"))
	if !ok {
		writeError(resp, http.StatusNotFound, "record not found")
		return
	}
	resp.WriteHeaderAndJson(http.StatusOK, row, restful.MIME_JSON)
}

func (s *Server) handleCreate(req *restful.Request, resp *restful.Response) {
	resource := req.PathParameter("resource")
	var body record
	if err := req.ReadEntity(&body); err != nil {
		writeError(resp, http.StatusBadRequest, "invalid JSON body")
		return
	}

	row := s.store.create(resource, body)
	s.publish(live.EventCreated, resource, row)
	resp.WriteHeaderAndJson(http.StatusCreated, row, restful.MIME_JSON)
}

func (s *Server) handleUpdate(req *restful.Request, resp *restful.Response) {
	resource := req.PathParameter("resource")
	var body record
	if err := req.ReadEntity(&body); err != nil {
		writeError(resp, http.StatusBadRequest, "invalid JSON body")
		return
	}

	row, ok := s.store.update(resource, req.PathParameter("id"), body)
	if !ok {
		writeError(resp, http.StatusNotFound, "record not found")
		return
	}
	s.publish(live.EventUpdated, resource, row)
	resp.WriteHeaderAndJson(http.StatusOK, row, restful.MIME_JSON)
}

func (s *Server) handleDelete(req *restful.Request, resp *restful.Response) {
	resource := req.PathParameter("resource")
	id := req.PathParameter("id")
	if !s.store.delete(resource, id) {
		writeError(resp, http.StatusNotFound, "record not found")
		return
	}
	s.hub.broadcast(live.Event{Type: live.EventDeleted, Resource: resource, ID: id})
	resp.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteMany(req *restful.Request, resp *restful.Response) {
	resource := req.PathParameter("resource")
	var body struct {
		IDs []any `json:"ids"`
	}
	if err := req.ReadEntity(&body); err != nil {
		writeError(resp, http.StatusBadRequest, "invalid JSON body")
		return
	}

	s.store.deleteMany(resource, body.IDs)
	for _, id := range body.IDs {
		s.hub.broadcast(live.Event{Type: live.EventDeleted, Resource: resource, ID: id})
	}
	resp.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpdateMany(req *restful.Request, resp *restful.Response) {
	resource := req.PathParameter("resource")
	var body struct {
		IDs  []any  `json:"ids"`
		Data record `json:"data"`
	}
	if err := req.ReadEntity(&body); err != nil {
		writeError(resp, http.StatusBadRequest, "invalid JSON body")
		return
	}

	rows := s.store.updateMany(resource, body.IDs, body.Data)
	for _, row := range rows {
		s.publish(live.EventUpdated, resource, row)
	}
	resp.WriteHeaderAndJson(http.StatusOK, rows, restful.MIME_JSON)
}

func (s *Server) handleCustom(req *restful.Request, resp *restful.Response) {
	resource := req.PathParameter("resource")
	action := req.PathParameter("action")

	fn, ok := s.actions[resource+"/"+action]
	if !ok {
		writeError(resp, http.StatusNotFound, "unknown action "+action)
		return
	}

	var payload map[string]any
	if err := req.ReadEntity(&payload); err != nil && !errors.Is(err, io.EOF) {
		writeError(resp, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result, err := fn(resource, payload)
	if err != nil {
		writeError(resp, http.StatusUnprocessableEntity, err.Error())
		return
	}
	resp.WriteHeaderAndJson(http.StatusOK, result, restful.MIME_JSON)
}

func (s *Server) handleLive(req *restful.Request, resp *restful.Response) {
	conn, err := upgrader.Upgrade(resp.ResponseWriter, req.Request, nil)
	if err != nil {
		s.log.Error("live: upgrade failed: %v", err)
		return
	}
	s.hub.add(conn)

	// Drain control frames until the peer goes away.
	go func() {
		defer s.hub.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *Server) publish(eventType live.EventType, resource string, row record) {
	payload, err := json.Marshal(row)
	if err != nil {
		s.log.Error("live: marshal event payload: %v", err)
		return
	}
	s.hub.broadcast(live.Event{
		Type:     eventType,
		Resource: resource,
		ID:       row["id"],
		Payload:  payload,
	})
}

func writeError(resp *restful.Response, status int, message string) {
	resp.WriteHeaderAndJson(status, map[string]string{"message": message}, restful.MIME_JSON)
}

// parseListQuery decodes the REST provider's default parameter names
// back into a structured query.
func parseListQuery(values map[string][]string) listQuery {
	get := func(name string) string {
		if vs := values[name]; len(vs) > 0 {
			return vs[0]
		}
		return ""
	}

	q := listQuery{
		cursor: get("cursor"),
		search: get("q"),
	}
	q.page, _ = strconv.Atoi(get("page"))
	q.perPage, _ = strconv.Atoi(get("perPage"))

	if fields := get("sortBy"); fields != "" {
		orders := strings.Split(get("order"), ",")
		for i, field := range strings.Split(fields, ",") {
			s := query.Sort{Field: field, Order: query.Asc}
			if i < len(orders) && query.Order(orders[i]) == query.Desc {
				s.Order = query.Desc
			}
			q.sorts = append(q.sorts, s)
		}
	}

	for key, vs := range values {
		if !strings.HasPrefix(key, "filter.") || len(vs) == 0 {
			continue
		}
		parts := strings.Split(strings.TrimPrefix(key, "filter."), ".")
		if len(parts) < 2 {
			continue
		}
		op := query.Operator(parts[len(parts)-1])
		field := strings.Join(parts[:len(parts)-1], ".")
		if !op.Valid() {
			continue
		}
		q.filters = append(q.filters, query.Filter{Field: field, Operator: op, Value: vs[0]})
	}
	return q
}
