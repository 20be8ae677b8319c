// Package chat holds the interactive surface helpers: the session transcript
// manager and the result renderer. The triage pipeline itself knows nothing
// about either.
package chat

import (
	"context"

	"github.com/ticket-triage/server/internal/triage/model"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// TranscriptManager records chat turns for a session and serves the recent
// window back for display.
type TranscriptManager struct {
	transcripts model.TranscriptRepository
	maxEntries  int
}

func NewTranscriptManager(transcripts model.TranscriptRepository, cfg model.SessionConfig) *TranscriptManager {
	return &TranscriptManager{
		transcripts: transcripts,
		maxEntries:  cfg.MaxEntries,
	}
}

// RecordTicket stores the customer's ticket text as a user turn.
func (m *TranscriptManager) RecordTicket(ctx context.Context, sessionID, ticketText string) error {
	return m.transcripts.AddEntry(ctx, sessionID, model.TranscriptEntry{
		Role:    RoleUser,
		Content: ticketText,
	})
}

// RecordReply stores the drafted reply as an assistant turn.
func (m *TranscriptManager) RecordReply(ctx context.Context, sessionID, replyText string) error {
	return m.transcripts.AddEntry(ctx, sessionID, model.TranscriptEntry{
		Role:    RoleAssistant,
		Content: replyText,
	})
}

// Recent returns the newest entries of the session transcript, bounded by the
// configured window.
func (m *TranscriptManager) Recent(ctx context.Context, sessionID string) ([]model.TranscriptEntry, error) {
	entries, err := m.transcripts.LoadTranscript(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return trimTail(entries, m.maxEntries), nil
}

// Reset clears the session transcript.
func (m *TranscriptManager) Reset(ctx context.Context, sessionID string) error {
	return m.transcripts.ClearTranscript(ctx, sessionID)
}

// ====================== Helper function ======================
func trimTail(entries []model.TranscriptEntry, max int) []model.TranscriptEntry {
	if max <= 0 || len(entries) <= max {
		result := make([]model.TranscriptEntry, len(entries))
		copy(result, entries)
		return result
	}
	source := entries[len(entries)-max:]
	result := make([]model.TranscriptEntry, len(source))
	copy(result, source)
	return result
}
