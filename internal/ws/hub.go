package ws

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/xperienceoutdoors/Resav2/pkg/logger"
	"go.uber.org/zap"
)

const defaultHeartbeatInterval = 30 * time.Second

// Hub fans booking events out to dashboard connections. Sessions are
// grouped in per-company buckets so a broadcast never crosses tenants.
type Hub struct {
	log               *logger.Logger
	heartbeatInterval time.Duration

	mu      sync.RWMutex
	buckets map[string]map[*Session]struct{}
}

// NewHub creates a hub. A non-positive heartbeat interval falls back to 30
// seconds.
func NewHub(log *logger.Logger, heartbeatInterval time.Duration) *Hub {
	if heartbeatInterval <= 0 {
		heartbeatInterval = defaultHeartbeatInterval
	}
	return &Hub{
		log:               log,
		heartbeatInterval: heartbeatInterval,
		buckets:           make(map[string]map[*Session]struct{}),
	}
}

// Register adds a session to its company bucket
func (h *Hub) Register(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	bucket, ok := h.buckets[s.CompanyID]
	if !ok {
		bucket = make(map[*Session]struct{})
		h.buckets[s.CompanyID] = bucket
	}
	bucket[s] = struct{}{}

	h.log.Debug("websocket session registered",
		zap.String("session_id", s.ID),
		zap.String("company_id", s.CompanyID),
		zap.Int("bucket_size", len(bucket)),
	)
}

// Unregister removes a session and closes it. The last session of a company
// removes the bucket itself, so an idle hub holds no empty map entries.
func (h *Hub) Unregister(s *Session) {
	h.mu.Lock()
	bucket, ok := h.buckets[s.CompanyID]
	if ok {
		delete(bucket, s)
		if len(bucket) == 0 {
			delete(h.buckets, s.CompanyID)
		}
	}
	h.mu.Unlock()

	s.Close()

	if ok {
		h.log.Debug("websocket session unregistered",
			zap.String("session_id", s.ID),
			zap.String("company_id", s.CompanyID),
		)
	}
}

// Broadcast sends a message to every session of one company. Delivery is
// best effort, a failed or slow session never blocks the others.
func (h *Hub) Broadcast(companyID string, msg Message) {
	payload, err := msg.Encode()
	if err != nil {
		h.log.Error("failed to encode broadcast message", zap.Error(err))
		return
	}

	h.mu.RLock()
	sessions := make([]*Session, 0, len(h.buckets[companyID]))
	for s := range h.buckets[companyID] {
		sessions = append(sessions, s)
	}
	h.mu.RUnlock()

	dropped := 0
	for _, s := range sessions {
		if !s.Send(payload) {
			dropped++
		}
	}
	if dropped > 0 {
		h.log.Warn("dropped broadcast frames",
			zap.String("company_id", companyID),
			zap.String("type", string(msg.Type)),
			zap.Int("dropped", dropped),
		)
	}
}

// ConnectionCount returns the number of sessions in a company bucket
func (h *Hub) ConnectionCount(companyID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.buckets[companyID])
}

// BucketCount returns the number of non-empty company buckets
func (h *Hub) BucketCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.buckets)
}

// Run sweeps sessions on the heartbeat interval until ctx is cancelled.
// Each sweep terminates sessions that showed no sign of life since the
// previous sweep, then challenges the survivors with a protocol ping.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case <-ticker.C:
			h.Sweep()
		}
	}
}

// Sweep runs one heartbeat pass over every session
func (h *Hub) Sweep() {
	h.mu.RLock()
	sessions := make([]*Session, 0)
	for _, bucket := range h.buckets {
		for s := range bucket {
			sessions = append(sessions, s)
		}
	}
	h.mu.RUnlock()

	for _, s := range sessions {
		if !s.alive.Load() {
			h.log.Info("terminating unresponsive websocket session",
				zap.String("session_id", s.ID),
				zap.String("company_id", s.CompanyID),
			)
			h.Unregister(s)
			continue
		}
		s.alive.Store(false)
		_ = s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	sessions := make([]*Session, 0)
	for _, bucket := range h.buckets {
		for s := range bucket {
			sessions = append(sessions, s)
		}
	}
	h.buckets = make(map[string]map[*Session]struct{})
	h.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}
