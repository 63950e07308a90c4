package repository

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/noah-isme/revitalisasi-dashboard/internal/models"
	appErrors "github.com/noah-isme/revitalisasi-dashboard/pkg/errors"
)

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// MemorySessionRepository keeps sessions in process. Values are stored serialised so callers
// never share a *models.Session.
type MemorySessionRepository struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemorySessionRepository constructs an empty in-memory store.
func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{entries: make(map[string]memoryEntry), now: time.Now}
}

// Get returns the session or ErrNotFound when it is absent or expired.
func (r *MemorySessionRepository) Get(ctx context.Context, id string) (*models.Session, error) {
	r.mu.RLock()
	entry, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok || !entry.expiresAt.After(r.now()) {
		return nil, appErrors.ErrNotFound
	}
	var session models.Session
	if err := json.Unmarshal(entry.payload, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Save stores the session until ttl elapses.
func (r *MemorySessionRepository) Save(ctx context.Context, session *models.Session, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.entries[session.ID] = memoryEntry{payload: payload, expiresAt: r.now().Add(ttl)}
	r.mu.Unlock()
	return nil
}

// Delete removes the session.
func (r *MemorySessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	delete(r.entries, id)
	r.mu.Unlock()
	return nil
}

// PurgeExpired drops expired sessions and returns how many were removed.
func (r *MemorySessionRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed int64
	for id, entry := range r.entries {
		if !entry.expiresAt.After(now) {
			delete(r.entries, id)
			removed++
		}
	}
	return removed, nil
}
