package session

import (
	"sync"

	catalogdomain "storefront/internal/features/catalog/domain"
	"storefront/internal/features/checkout/ports"

	"github.com/google/uuid"
)

// Manager is the registry of live shopping sessions. Every session is
// seeded with the catalog loaded at startup and shares one order submitter.
type Manager struct {
	mu        sync.RWMutex
	sessions  map[string]*Session
	catalog   catalogdomain.ProductList
	submitter ports.OrderSubmitter
}

// NewManager creates an empty registry.
func NewManager(catalog catalogdomain.ProductList, submitter ports.OrderSubmitter) *Manager {
	return &Manager{
		sessions:  make(map[string]*Session),
		catalog:   catalog,
		submitter: submitter,
	}
}

// Create starts a new session with a generated id.
func (m *Manager) Create() *Session {
	s := New(uuid.NewString(), m.catalog, m.submitter)

	m.mu.Lock()
	m.sessions[s.ID()] = s
	m.mu.Unlock()

	return s
}

// Get returns the session with the given id, if it exists.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Delete removes the session with the given id. Unknown ids are ignored.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}
