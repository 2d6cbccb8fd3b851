package session

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/bizsim/internal/config"
	"github.com/vovakirdan/bizsim/internal/game"
)

// Manager creates, tracks and retires sessions.
type Manager struct {
	config  Config
	catalog config.Catalog
	saver   ResultSaver // Optional, can be nil
	logger  *log.Logger

	mu       sync.RWMutex
	sessions map[ID]*Session

	done     chan struct{}
	stopOnce sync.Once
}

// NewManager creates a new session manager. A nil logger discards output.
func NewManager(cat config.Catalog, cfg Config, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.EventBuffer <= 0 {
		cfg.EventBuffer = DefaultConfig().EventBuffer
	}
	return &Manager{
		config:   cfg,
		catalog:  cat,
		logger:   logger,
		sessions: make(map[ID]*Session),
		done:     make(chan struct{}),
	}
}

// SetResultSaver sets the optional result saver.
func (m *Manager) SetResultSaver(saver ResultSaver) {
	m.saver = saver
}

// Catalog returns the catalog sessions are built from.
func (m *Manager) Catalog() config.Catalog {
	return m.catalog
}

// Start begins the idle-session cleanup loop.
func (m *Manager) Start() {
	if m.config.IdleTimeout > 0 && m.config.CleanupPeriod > 0 {
		go m.cleanupLoop()
	}
}

// Stop shuts down the manager and closes every session.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		close(m.done)
	})
	for _, id := range m.IDs() {
		_ = m.Close(id)
	}
}

// Create starts a new game for player.
func (m *Manager) Create(player, businessID, profileID string, seed int64) (*Session, error) {
	g, err := game.FromCatalog(m.catalog, businessID, profileID, seed)
	if err != nil {
		return nil, err
	}
	return m.Attach(player, g), nil
}

// Attach wraps an existing game (for example a loaded save) in a session.
func (m *Manager) Attach(player string, g *game.Game) *Session {
	s := newSession(ID(uuid.NewString()), player, g, m.config.EventBuffer)
	s.onFinish = m.finish

	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()

	m.logger.Info("session started",
		"session", s.id,
		"player", player,
		"business", g.Business().ID,
		"profile", g.Profile().ID,
	)
	return s
}

// Get retrieves a session by ID.
func (m *Manager) Get(id ID) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// IDs returns the ids of every live session.
func (m *Manager) IDs() []ID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]ID, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	return ids
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close records the run, when one was played, and retires the session.
func (m *Manager) Close(id ID) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return ErrNotFound
	}

	m.finish(s, OutcomeQuit)
	s.close()
	m.logger.Info("session closed", "session", id)
	return nil
}

// finish records the run result at most once per session.
func (m *Manager) finish(s *Session, outcome Outcome) {
	result, ok := s.result(outcome)
	if !ok {
		return
	}

	m.logger.Info("run finished",
		"session", s.id,
		"outcome", result.Outcome,
		"score", result.Score,
		"periods", result.Periods,
	)
	if m.saver == nil {
		return
	}
	if err := m.saver.SaveRunResult(result); err != nil {
		m.logger.Error("could not save run result", "session", s.id, "error", err)
	}
}

func (m *Manager) cleanupLoop() {
	ticker := time.NewTicker(m.config.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.cleanupIdle(time.Now())
		case <-m.done:
			return
		}
	}
}

func (m *Manager) cleanupIdle(now time.Time) {
	var idle []ID
	m.mu.RLock()
	for id, s := range m.sessions {
		if now.Sub(s.IdleSince()) > m.config.IdleTimeout {
			idle = append(idle, id)
		}
	}
	m.mu.RUnlock()

	for _, id := range idle {
		m.logger.Warn("closing idle session", "session", id)
		_ = m.Close(id)
	}
}
