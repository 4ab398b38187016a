package calculator

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"

	"wordcalc/internal/words"
)

// Session is one client's calculator. Access goes through Do, which
// serialises commands from concurrent requests.
type Session struct {
	ID      string
	Created time.Time

	mu   sync.Mutex
	calc *Calculator
}

// Do runs fn with exclusive access to the session's calculator.
func (s *Session) Do(fn func(c *Calculator) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.calc)
}

// SessionStore keeps at most a fixed number of sessions in memory, evicting
// the least recently used one when full. Nothing outlives the process.
type SessionStore struct {
	speller  words.Speller
	sessions *lru.Cache[string, *Session]

	active  prometheus.Gauge
	evicted prometheus.Counter
}

// NewSessionStore creates a store for up to size sessions and registers its
// metrics with reg.
func NewSessionStore(size int, speller words.Speller, reg prometheus.Registerer) (*SessionStore, error) {
	sessions, err := lru.New[string, *Session](size)
	if err != nil {
		return nil, fmt.Errorf("creating session cache: %w", err)
	}

	s := &SessionStore{
		speller:  speller,
		sessions: sessions,
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "calculator",
			Name:      "sessions_active",
			Help:      "Number of calculator sessions held in memory.",
		}),
		evicted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "calculator",
			Name:      "sessions_evicted_total",
			Help:      "Sessions dropped to make room for new ones.",
		}),
	}

	for _, c := range []prometheus.Collector{s.active, s.evicted} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("registering session metrics: %w", err)
		}
	}

	return s, nil
}

// Create starts a new empty session.
func (s *SessionStore) Create() *Session {
	sess := &Session{
		ID:      uuid.NewString(),
		Created: time.Now(),
		calc:    New(s.speller),
	}

	if evicted := s.sessions.Add(sess.ID, sess); evicted {
		s.evicted.Inc()
	}
	s.active.Set(float64(s.sessions.Len()))

	return sess
}

// Get looks a session up and marks it recently used.
func (s *SessionStore) Get(id string) (*Session, bool) {
	return s.sessions.Get(id)
}

// Delete drops a session. It reports whether the session existed.
func (s *SessionStore) Delete(id string) bool {
	ok := s.sessions.Remove(id)
	s.active.Set(float64(s.sessions.Len()))
	return ok
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	return s.sessions.Len()
}
