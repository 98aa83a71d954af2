// File path: internal/session/session.go
package session

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/sgci-marketing/persona-studio/internal/catalog"
	"github.com/sgci-marketing/persona-studio/internal/common"
	"github.com/sgci-marketing/persona-studio/internal/llm"
	"github.com/sgci-marketing/persona-studio/internal/segment"
)

// ErrNotConfigured is returned when an operation needs the LLM client and
// the session has no credential configured. No network call is attempted.
var ErrNotConfigured = errors.New("llm client not configured for session")

// ErrNotFound is returned by Manager lookups for unknown session ids.
var ErrNotFound = errors.New("session not found")

// Supported completion models. The selection surface is fixed; anything
// else is rejected at configuration time.
var SupportedModels = []string{"gpt-4o-mini", "gpt-4o", "gpt-3.5-turbo"}

// DefaultModel is applied to new sessions until configured otherwise.
const DefaultModel = "gpt-4o-mini"

// ValidModel reports whether name is one of the supported models.
func ValidModel(name string) bool {
	for _, m := range SupportedModels {
		if m == name {
			return true
		}
	}
	return false
}

// Session owns all state for one user: the current segment set, generated
// personas keyed by segment id, the optional catalog, the chat transcript,
// and the provider configuration. There is exactly one logical actor per
// session; handlers hold the interaction lock for a whole user action, so
// the fields themselves need no finer guarding.
type Session struct {
	sync.Mutex

	ID         string
	Segments   []segment.Segment
	Personas   map[int]string
	Catalog    *catalog.Catalog
	Transcript []llm.Message
	Model      string
	Provider   llm.Provider
}

// Reset restores the default segment set and clears personas, transcript
// and catalog. The credential and model selection survive a reset.
func (s *Session) Reset() {
	s.Segments = segment.Defaults()
	s.Personas = make(map[int]string)
	s.Catalog = nil
	s.Transcript = nil
}

// Manager tracks live sessions. Sessions are in-memory only and die with
// the process.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	// defaultProvider, when set, preconfigures every new session (server
	// started with a shared credential or in offline mode).
	defaultProvider llm.Provider
}

func NewManager(defaultProvider llm.Provider) *Manager {
	return &Manager{
		sessions:        make(map[string]*Session),
		defaultProvider: defaultProvider,
	}
}

// Create registers a new session seeded with the default segments.
func (m *Manager) Create() *Session {
	logger := common.Logger()
	sess := &Session{
		ID:       uuid.NewString(),
		Segments: segment.Defaults(),
		Personas: make(map[int]string),
		Model:    DefaultModel,
		Provider: m.defaultProvider,
	}
	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()
	logger.Info("session: created", "session", sess.ID, "segments", len(sess.Segments))
	return sess
}

// Get returns the session with the given id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return sess, nil
}

// Delete removes the session. Unknown ids are a no-op.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	common.Logger().Info("session: deleted", "session", id)
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
