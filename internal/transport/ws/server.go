package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/healthcareplus/consult-service/internal/domain"
	httpmw "github.com/healthcareplus/consult-service/internal/transport/http/middleware"
)

type SessionSvc interface {
	JoinSession(ctx context.Context, sessionID, userID string) error
	LeaveSession(ctx context.Context, sessionID, userID string) error
}

type Server struct {
	upgrader   websocket.Upgrader
	hub        *Hub
	sessionSvc SessionSvc
	jwtSecret  string

	pingEvery time.Duration
}

func NewServer(hub *Hub, session SessionSvc, jwtSecret string) *Server {
	return &Server{
		hub:        hub,
		sessionSvc: session,
		jwtSecret:  jwtSecret,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		pingEvery: 15 * time.Second,
	}
}

// WS endpoint: GET /ws?access_token=...
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	accessToken := strings.TrimSpace(r.URL.Query().Get("access_token"))
	if accessToken == "" {
		http.Error(w, "missing access_token", http.StatusUnauthorized)
		return
	}
	if _, err := httpmw.VerifyToken(s.jwtSecret, accessToken); err != nil {
		http.Error(w, "invalid access_token", http.StatusUnauthorized)
		return
	}

	// при ошибке Upgrade сам отвечает клиенту
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("ws upgrade failed", "err", err)
		return
	}

	c := newWsConn(conn)
	slog.Debug("ws connected", "conn", c.ID())

	go s.writeLoop(r.Context(), c)
	s.readLoop(r.Context(), c)

	// транспорт закрыт: одно peer-left на соединение
	if c.SessionID() != "" {
		removed := s.hub.Remove(c)
		if err := s.sessionSvc.LeaveSession(r.Context(), c.sessionID, c.userID); err != nil &&
			!errors.Is(err, domain.ErrNotInSession) && !errors.Is(err, domain.ErrSessionNotFound) {
			slog.Debug("ws leave session failed", "session", c.sessionID, "user", c.userID, "err", err)
		}
		if removed {
			s.hub.Broadcast(c.sessionID, Message{
				Type:   TypePeerLeft,
				UserID: c.userID,
			}, c)
		}
	}

	if err := c.Close(); err != nil {
		slog.Debug("ws close failed", "conn", c.ID(), "err", err)
	}
}

func (s *Server) readLoop(ctx context.Context, c *wsConn) {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(1 << 20)
	c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}

		switch msg.Type {
		case TypeJoin:
			s.handleJoin(ctx, c, msg)
		case TypeOffer, TypeAnswer, TypeICECandidate:
			s.relay(c, msg, msg.Type)
		case TypeEndCall:
			// end-call не убирает отправителя из группы
			s.relay(c, msg, TypeCallEnded)
		default:
			// ignore
		}
	}
}

func (s *Server) handleJoin(ctx context.Context, c *wsConn, msg Message) {
	if c.SessionID() != "" {
		return // соединение уже в сессии
	}
	if msg.SessionID == "" || msg.UserID == "" {
		return
	}

	err := s.sessionSvc.JoinSession(ctx, msg.SessionID, msg.UserID)
	if err != nil && !errors.Is(err, domain.ErrAlreadyJoined) {
		slog.Warn("ws join failed", "session", msg.SessionID, "user", msg.UserID, "err", err)
		return
	}

	c.setJoined(msg.SessionID, msg.UserID)
	s.hub.Add(c)

	s.hub.Broadcast(msg.SessionID, Message{
		Type:   TypePeerJoined,
		UserID: msg.UserID,
	}, c)
}

// relay ретранслирует handshake-сообщение остальным участникам сессии.
// Сообщения от не-joined соединений молча отбрасываются.
func (s *Server) relay(c *wsConn, msg Message, outType string) {
	sid := c.SessionID()
	if sid == "" || sid != msg.SessionID {
		slog.Debug("ws drop message from non-joined peer", "type", msg.Type, "conn", c.ID())
		return
	}

	s.hub.Broadcast(sid, Message{
		Type:    outType,
		Payload: msg.Payload,
	}, c)
}

func (s *Server) writeLoop(ctx context.Context, c *wsConn) {
	ticker := time.NewTicker(s.pingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
		case <-ctx.Done():
			return
		case <-c.closed:
			return
		}
	}
}

type wsConn struct {
	conn   *websocket.Conn
	connID string

	// заполняются один раз при join, до hub.Add
	sessionID string
	userID    string

	sendMu chan struct{}
	closed chan struct{}
}

func newWsConn(c *websocket.Conn) *wsConn {
	return &wsConn{
		conn:   c,
		connID: uuid.NewString(),
		sendMu: make(chan struct{}, 1),
		closed: make(chan struct{}),
	}
}

func (c *wsConn) setJoined(sessionID, userID string) {
	c.sessionID = sessionID
	c.userID = userID
}

func (c *wsConn) Send(msg Message) error {
	c.sendMu <- struct{}{}
	defer func() { <-c.sendMu }()
	c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))

	return c.conn.WriteJSON(msg)
}

func (c *wsConn) Close() error {
	select {
	case <-c.closed:
	default:
		close(c.closed)
	}

	return c.conn.Close()
}

func (c *wsConn) ID() string        { return c.connID }
func (c *wsConn) UserID() string    { return c.userID }
func (c *wsConn) SessionID() string { return c.sessionID }
