package ws

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	sendBufferSize = 32
)

// Conn is the subset of *websocket.Conn the hub needs. Tests substitute a
// fake.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	SetReadDeadline(t time.Time) error
	SetPongHandler(h func(appData string) error)
	Close() error
}

// Session is one dashboard connection scoped to a company
type Session struct {
	ID        string
	CompanyID string

	conn Conn
	send chan []byte

	mu     sync.Mutex
	closed bool

	// alive is cleared by the heartbeat sweep and set again by any sign of
	// life from the client. Two sweeps without a sign of life kill the
	// session.
	alive atomic.Bool
}

// NewSession wraps a connection for the hub
func NewSession(id, companyID string, conn Conn) *Session {
	s := &Session{
		ID:        id,
		CompanyID: companyID,
		conn:      conn,
		send:      make(chan []byte, sendBufferSize),
	}
	s.alive.Store(true)
	return s
}

// MarkAlive records a sign of life from the client
func (s *Session) MarkAlive() {
	s.alive.Store(true)
}

// Send queues a frame without blocking. Frames to a closed session or a
// slow consumer are dropped, delivery is best effort.
func (s *Session) Send(payload []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	select {
	case s.send <- payload:
		return true
	default:
		return false
	}
}

// SendMessage encodes and queues a message
func (s *Session) SendMessage(msg Message) bool {
	payload, err := msg.Encode()
	if err != nil {
		return false
	}
	return s.Send(payload)
}

// Close shuts the underlying connection down exactly once
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.send)
	s.mu.Unlock()

	s.conn.Close()
}

// CloseWithCode sends a close frame with an application close code before
// tearing the connection down
func (s *Session) CloseWithCode(code int, reason string) {
	deadline := time.Now().Add(writeWait)
	_ = s.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), deadline)
	s.Close()
}

// WritePump drains the send queue onto the wire. It exits when the send
// channel closes or a write fails.
func (s *Session) WritePump() {
	for payload := range s.send {
		if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}

// ReadPump consumes client frames until the connection dies. Pings are
// answered with a pong message, everything readable counts as a sign of
// life. unregister is called exactly once on exit.
func (s *Session) ReadPump(unregister func(*Session)) {
	defer unregister(s)

	s.conn.SetPongHandler(func(string) error {
		s.MarkAlive()
		return nil
	})

	for {
		_, payload, err := s.conn.ReadMessage()
		if err != nil {
			return
		}
		s.MarkAlive()

		var msg clientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			continue
		}
		if msg.Type == "ping" {
			s.SendMessage(Message{Type: MessageTypePong})
		}
	}
}
