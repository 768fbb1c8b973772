package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"pinehollow/internal/domain/availability"
)

// Manager tracks one BookingSession per active visitor and fans refreshed
// blocked sets out to all of them. New sessions start from the most
// recently applied set so they never begin with an empty calendar.
type Manager struct {
	mu            sync.RWMutex
	sessions      map[string]*BookingSession
	lastSet       availability.BlockedDateSet
	lastSeq       uint64
	minStayNights int
	logger        *slog.Logger
	clock         func() time.Time
}

func NewManager(minStayNights int, logger *slog.Logger) *Manager {
	return &Manager{
		sessions:      make(map[string]*BookingSession),
		minStayNights: minStayNights,
		logger:        logger,
		clock:         time.Now,
	}
}

// WithClock overrides the clock handed to new sessions, used by tests.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.clock = now
	return m
}

// Create registers a fresh session seeded with the current blocked set.
func (m *Manager) Create() (string, *BookingSession) {
	sess := New(m.minStayNights, m.logger).WithClock(m.clock)
	id := uuid.NewString()

	m.mu.Lock()
	defer m.mu.Unlock()
	sess.ApplyBlockedSet(m.lastSet, m.lastSeq)
	m.sessions[id] = sess
	return id, sess
}

func (m *Manager) Get(id string) (*BookingSession, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[id]
	return sess, ok
}

// Close drops a session; unknown ids are ignored.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// ApplyBlockedSet fans a rebuilt set out to every live session and records
// it as the seed for sessions created later.
func (m *Manager) ApplyBlockedSet(set availability.BlockedDateSet, seq uint64) bool {
	m.mu.Lock()
	if seq != 0 && seq <= m.lastSeq {
		m.mu.Unlock()
		return false
	}
	m.lastSet = set
	m.lastSeq = seq
	targets := make([]*BookingSession, 0, len(m.sessions))
	for _, sess := range m.sessions {
		targets = append(targets, sess)
	}
	m.mu.Unlock()

	for _, sess := range targets {
		sess.ApplyBlockedSet(set, seq)
	}
	return true
}

// Notify forwards a notice to every live session.
func (m *Manager) Notify(message string) {
	m.mu.RLock()
	targets := make([]*BookingSession, 0, len(m.sessions))
	for _, sess := range m.sessions {
		targets = append(targets, sess)
	}
	m.mu.RUnlock()

	for _, sess := range targets {
		sess.Notify(message)
	}
}

var _ Sink = (*Manager)(nil)
