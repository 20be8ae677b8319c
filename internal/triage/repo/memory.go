package repo

import (
	"context"
	"sync"

	"github.com/ticket-triage/server/internal/triage/model"
)

// MemoryTranscriptRepository is a process-local transcript store, used when
// no Redis is configured and as a test double.
type MemoryTranscriptRepository struct {
	mu       sync.RWMutex
	sessions map[string][]model.TranscriptEntry
}

func NewMemoryTranscriptRepository() *MemoryTranscriptRepository {
	return &MemoryTranscriptRepository{sessions: make(map[string][]model.TranscriptEntry)}
}

func (r *MemoryTranscriptRepository) AddEntry(ctx context.Context, sessionID string, entry model.TranscriptEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sessionID] = append(r.sessions[sessionID], entry)
	return nil
}

func (r *MemoryTranscriptRepository) LoadTranscript(ctx context.Context, sessionID string) ([]model.TranscriptEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := r.sessions[sessionID]
	out := make([]model.TranscriptEntry, len(entries))
	copy(out, entries)
	return out, nil
}

func (r *MemoryTranscriptRepository) ClearTranscript(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
	return nil
}

func (r *MemoryTranscriptRepository) EntryCount(ctx context.Context, sessionID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions[sessionID]), nil
}

var _ model.TranscriptRepository = (*MemoryTranscriptRepository)(nil)
