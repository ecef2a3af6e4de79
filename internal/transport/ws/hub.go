package ws

import (
	"sync"
)

type Conn interface {
	Send(msg Message) error
	Close() error
	ID() string
	UserID() string
	SessionID() string
}

type Hub struct {
	mu       sync.RWMutex
	sessions map[string]map[Conn]struct{} // sessionID -> set of connections
}

func NewHub() *Hub {
	return &Hub{sessions: make(map[string]map[Conn]struct{})}
}

func (h *Hub) Add(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ss, ok := h.sessions[c.SessionID()]
	if !ok {
		ss = make(map[Conn]struct{})
		h.sessions[c.SessionID()] = ss
	}
	ss[c] = struct{}{}
}

// Remove возвращает true, если соединение состояло в группе.
// Повторный Remove — no-op: закрытие транспорта идемпотентно.
func (h *Hub) Remove(c Conn) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	ss, ok := h.sessions[c.SessionID()]
	if !ok {
		return false
	}
	if _, member := ss[c]; !member {
		return false
	}
	delete(ss, c)
	if len(ss) == 0 {
		delete(h.sessions, c.SessionID())
	}
	return true
}

// Broadcast рассылает msg всем участникам сессии кроме except.
func (h *Hub) Broadcast(sessionID string, msg Message, except Conn) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if ss, ok := h.sessions[sessionID]; ok {
		for c := range ss {
			if c == except {
				continue
			}
			_ = c.Send(msg) // best-effort
		}
	}
}
