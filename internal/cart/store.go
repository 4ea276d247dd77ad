package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrSessionNotFound = errors.New("cart session not found")
	ErrStoreFull       = errors.New("too many active cart sessions")
)

const minSweepInterval = time.Second

type session struct {
	cart     *Cart
	lastSeen time.Time
}

// Store holds the transient carts of active menu sessions. Every cart
// operation runs under the store lock, so operations on one session are
// applied one at a time in arrival order.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	max      int
	now      func() time.Time
	logger   *zap.Logger
}

// NewStore creates a store whose sessions expire after ttl without
// activity and which holds at most maxSessions at once. A non-positive ttl
// disables expiry; a non-positive maxSessions disables the cap.
func NewStore(ttl time.Duration, maxSessions int, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		sessions: make(map[string]*session),
		ttl:      ttl,
		max:      maxSessions,
		now:      time.Now,
		logger:   logger,
	}
}

// Create opens a session with an empty cart and returns its id. When the
// store is full it first drops expired sessions and returns ErrStoreFull if
// none were.
func (s *Store) Create() (string, error) {
	id := uuid.New().String()

	s.mu.Lock()
	if s.max > 0 && len(s.sessions) >= s.max && s.sweepLocked() == 0 {
		s.mu.Unlock()
		s.logger.Warn("cart session rejected, store full", zap.Int("max_sessions", s.max))
		return "", ErrStoreFull
	}
	s.sessions[id] = &session{cart: New(), lastSeen: s.now()}
	s.mu.Unlock()

	s.logger.Debug("cart session created", zap.String("session_id", id))
	return id, nil
}

// Do runs fn against the cart of session id. fn must not retain the cart.
func (s *Store) Do(id string, fn func(c *Cart)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}

	sess.lastSeen = s.now()
	fn(sess.cart)
	return nil
}

// End discards the session and its cart. It reports whether the session
// existed.
func (s *Store) End(id string) bool {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if ok {
		s.logger.Debug("cart session ended", zap.String("session_id", id))
	}
	return ok
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops sessions idle for longer than the ttl and returns how many
// were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked()
}

func (s *Store) sweepLocked() int {
	if s.ttl <= 0 {
		return 0
	}

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps expired sessions until ctx is done.
func (s *Store) Run(ctx context.Context) {
	if s.ttl <= 0 {
		<-ctx.Done()
		return
	}

	interval := s.ttl / 4
	if interval < minSweepInterval {
		interval = minSweepInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.logger.Info("expired cart sessions", zap.Int("count", n))
			}
		}
	}
}
