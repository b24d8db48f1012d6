package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Upload is one parsed upload held in memory for the lifetime of the session.
// Sheets carries the parsed raw sheets; the reports service owns their concrete
// type. Nothing here survives a process restart.
type Upload struct {
	ID        string
	Filename  string
	Sheets    interface{}
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Manager is the in-memory upload store shared by the reports service, the
// retention sweeper and the resource heartbeat.
type Manager struct {
	uploads map[string]*Upload
	mu      sync.Mutex
}

func NewManager() *Manager {
	return &Manager{
		uploads: make(map[string]*Upload),
	}
}

func (m *Manager) Create(filename string, sheets interface{}, ttl time.Duration) *Upload {
	m.mu.Lock()
	defer m.mu.Unlock()

	upload := &Upload{
		ID:        uuid.New().String(),
		Filename:  filename,
		Sheets:    sheets,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(ttl),
	}
	m.uploads[upload.ID] = upload
	return upload
}

func (m *Manager) Get(id string) (*Upload, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	upload, exists := m.uploads[id]
	if !exists {
		return nil, false
	}
	if time.Now().After(upload.ExpiresAt) {
		delete(m.uploads, id)
		return nil, false
	}
	return upload, true
}

func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.uploads, id)
}

// CleanupExpired drops uploads past their TTL and reports how many were removed.
func (m *Manager) CleanupExpired() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	now := time.Now()
	for id, upload := range m.uploads {
		if now.After(upload.ExpiresAt) {
			delete(m.uploads, id)
			removed++
		}
	}
	return removed
}

func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.uploads)
}
