package ws

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/xperienceoutdoors/Resav2/pkg/logger"
)

type fakeConn struct {
	mu       sync.Mutex
	reads    [][]byte
	readDone chan struct{}
	written  [][]byte
	pings    int
	closed   bool

	pongHandler func(string) error
}

func newFakeConn(reads ...[]byte) *fakeConn {
	return &fakeConn{reads: reads, readDone: make(chan struct{})}
}

func (c *fakeConn) ReadMessage() (int, []byte, error) {
	c.mu.Lock()
	if len(c.reads) > 0 {
		payload := c.reads[0]
		c.reads = c.reads[1:]
		c.mu.Unlock()
		return 1, payload, nil
	}
	c.mu.Unlock()
	// Block until the connection is torn down, like a real socket would
	<-c.readDone
	return 0, nil, errConnClosed
}

func (c *fakeConn) WriteMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.written = append(c.written, data)
	return nil
}

func (c *fakeConn) WriteControl(messageType int, data []byte, deadline time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if messageType == 9 { // ping frame
		c.pings++
	}
	return nil
}

func (c *fakeConn) SetReadDeadline(t time.Time) error { return nil }

func (c *fakeConn) SetPongHandler(h func(string) error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pongHandler = h
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.readDone)
	}
	return nil
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *fakeConn) pingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pings
}

type connError struct{}

func (connError) Error() string { return "connection closed" }

var errConnClosed = connError{}

func testHub(t *testing.T) *Hub {
	t.Helper()
	if err := logger.Init(&logger.Config{Level: "error", ServiceName: "test"}); err != nil {
		t.Fatalf("Failed to init logger: %v", err)
	}
	return NewHub(logger.Get(), time.Minute)
}

func receiveMessage(t *testing.T, s *Session) Message {
	t.Helper()
	select {
	case payload := <-s.send:
		var msg Message
		if err := json.Unmarshal(payload, &msg); err != nil {
			t.Fatalf("Failed to decode frame: %v", err)
		}
		return msg
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for a frame")
		return Message{}
	}
}

func TestHubBucketLifecycle(t *testing.T) {
	hub := testHub(t)

	first := NewSession("s1", "company-a", newFakeConn())
	second := NewSession("s2", "company-a", newFakeConn())

	hub.Register(first)
	hub.Register(second)

	if got := hub.ConnectionCount("company-a"); got != 2 {
		t.Fatalf("Expected 2 sessions, got %d", got)
	}
	if got := hub.BucketCount(); got != 1 {
		t.Fatalf("Expected 1 bucket, got %d", got)
	}

	hub.Unregister(first)
	if got := hub.ConnectionCount("company-a"); got != 1 {
		t.Fatalf("Expected 1 session after unregister, got %d", got)
	}
	if got := hub.BucketCount(); got != 1 {
		t.Fatalf("Bucket should survive while sessions remain, got %d buckets", got)
	}

	hub.Unregister(second)
	if got := hub.BucketCount(); got != 0 {
		t.Fatalf("Empty bucket must be deleted, got %d buckets", got)
	}

	// Unregistering twice must be harmless
	hub.Unregister(second)
	if got := hub.BucketCount(); got != 0 {
		t.Fatalf("Expected 0 buckets, got %d", got)
	}
}

func TestHubBroadcastIsolation(t *testing.T) {
	hub := testHub(t)

	alpha := NewSession("s1", "company-a", newFakeConn())
	beta := NewSession("s2", "company-b", newFakeConn())
	hub.Register(alpha)
	hub.Register(beta)

	hub.Broadcast("company-a", Message{Type: MessageTypeNewBooking, Data: map[string]string{"id": "b-1"}})

	msg := receiveMessage(t, alpha)
	if msg.Type != MessageTypeNewBooking {
		t.Errorf("Expected new_booking, got %s", msg.Type)
	}
	data, ok := msg.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("Expected a data object on the wire, got %T", msg.Data)
	}
	if data["id"] != "b-1" {
		t.Errorf("Frame data should survive encoding, got %v", data)
	}

	select {
	case payload := <-beta.send:
		t.Fatalf("Other company received frame: %s", payload)
	default:
	}
}

func TestHubBroadcastSurvivesSlowConsumer(t *testing.T) {
	hub := testHub(t)

	slow := NewSession("s1", "company-a", newFakeConn())
	healthy := NewSession("s2", "company-a", newFakeConn())
	hub.Register(slow)
	hub.Register(healthy)

	// Fill the slow session's buffer so the next frame has nowhere to go
	for i := 0; i < sendBufferSize; i++ {
		if !slow.Send([]byte("{}")) {
			t.Fatal("Buffer filled too early")
		}
	}

	hub.Broadcast("company-a", Message{Type: MessageTypeBookingUpdate})

	msg := receiveMessage(t, healthy)
	if msg.Type != MessageTypeBookingUpdate {
		t.Errorf("Expected booking_update, got %s", msg.Type)
	}
	if got := hub.ConnectionCount("company-a"); got != 2 {
		t.Errorf("Slow consumer should not be evicted by broadcast, got %d sessions", got)
	}
}

func TestHubBroadcastToClosedSessionIsDropped(t *testing.T) {
	hub := testHub(t)

	s := NewSession("s1", "company-a", newFakeConn())
	hub.Register(s)
	s.Close()

	// Must not panic even though the session's channel is closed
	hub.Broadcast("company-a", Message{Type: MessageTypeNewBooking})
}

func TestHubSweepTwoStrike(t *testing.T) {
	hub := testHub(t)

	quietConn := newFakeConn()
	quiet := NewSession("s1", "company-a", quietConn)
	chattyConn := newFakeConn()
	chatty := NewSession("s2", "company-a", chattyConn)
	hub.Register(quiet)
	hub.Register(chatty)

	// First sweep challenges both sessions
	hub.Sweep()
	if got := hub.ConnectionCount("company-a"); got != 2 {
		t.Fatalf("No session should drop on the first sweep, got %d", got)
	}
	if quietConn.pingCount() != 1 || chattyConn.pingCount() != 1 {
		t.Fatalf("Both sessions should have been pinged")
	}

	// Only one client answers
	chatty.MarkAlive()

	hub.Sweep()
	if got := hub.ConnectionCount("company-a"); got != 1 {
		t.Fatalf("Unresponsive session should drop on the second sweep, got %d", got)
	}
	if !quietConn.isClosed() {
		t.Error("Unresponsive connection should be closed")
	}
	if chattyConn.isClosed() {
		t.Error("Responsive connection should stay open")
	}
}

func TestSessionReadPumpAnswersPing(t *testing.T) {
	hub := testHub(t)

	conn := newFakeConn([]byte(`{"type":"ping"}`))
	s := NewSession("s1", "company-a", conn)
	hub.Register(s)

	done := make(chan struct{})
	go func() {
		s.ReadPump(hub.Unregister)
		close(done)
	}()

	msg := receiveMessage(t, s)
	if msg.Type != MessageTypePong {
		t.Errorf("Expected pong, got %s", msg.Type)
	}

	conn.Close()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("ReadPump did not exit after close")
	}
	if got := hub.BucketCount(); got != 0 {
		t.Errorf("Expected session cleanup after read pump exit, got %d buckets", got)
	}
}
