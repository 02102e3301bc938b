package demoserver

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/sonalan/filact-sub001/pkg/live"
	"github.com/sonalan/filact-sub001/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// hub broadcasts record-change events to every connected websocket.
type hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]bool
	log   *logger.Logger
}

func newHub() *hub {
	return &hub{
		conns: make(map[*websocket.Conn]bool),
		log:   logger.New(),
	}
}

func (h *hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	h.conns[conn] = true
	h.mu.Unlock()
}

func (h *hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	if h.conns[conn] {
		delete(h.conns, conn)
		conn.Close()
	}
	h.mu.Unlock()
}

func (h *hub) broadcast(event live.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns {
		if err := conn.WriteJSON(event); err != nil {
			h.log.Debug("live: dropping client: %v", err)
			delete(h.conns, conn)
			conn.Close()
		}
	}
}
