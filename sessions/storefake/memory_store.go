package storefake

import (
	"sync"
	"time"

	"github.com/jrsteele09/recipe-box/sessions"
)

var _ sessions.Store = (*MemoryStore)(nil)

// MemoryStore is an in-memory sessions.Store that records how it was written to.
type MemoryStore struct {
	lock        sync.RWMutex
	token       string
	maxAge      time.Duration
	oauthStates map[string]string
	Writes      int
	Clears      int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		oauthStates: make(map[string]string),
	}
}

// WithToken seeds the store as though the client had sent raw.
func (m *MemoryStore) WithToken(raw string) *MemoryStore {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.token = raw
	return m
}

func (m *MemoryStore) Read() (string, bool) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.token, m.token != ""
}

func (m *MemoryStore) Set(raw string, maxAge time.Duration) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.token = raw
	m.maxAge = maxAge
	m.Writes++
}

func (m *MemoryStore) Clear() {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.token = ""
	m.maxAge = 0
	m.Clears++
}

// MaxAge returns the max age of the last Set.
func (m *MemoryStore) MaxAge() time.Duration {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.maxAge
}

func (m *MemoryStore) SetOAuthState(provider, state string) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.oauthStates[provider] = state
}

func (m *MemoryStore) ReadOAuthState(provider string) (string, bool) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	state, ok := m.oauthStates[provider]
	return state, ok
}

func (m *MemoryStore) ClearOAuthState(provider string) {
	m.lock.Lock()
	defer m.lock.Unlock()
	delete(m.oauthStates, provider)
}
