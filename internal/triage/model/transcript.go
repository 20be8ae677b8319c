package model

import "context"

// TranscriptEntry is one chat turn in a session transcript.
type TranscriptEntry struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// TranscriptRepository stores per-session chat transcripts for the interactive
// surface. This is UI session state only; the triage pipeline never reads or
// writes it.
type TranscriptRepository interface {
	// AddEntry appends an entry to the session transcript.
	AddEntry(ctx context.Context, sessionID string, entry TranscriptEntry) error

	// LoadTranscript retrieves the full transcript for a session.
	LoadTranscript(ctx context.Context, sessionID string) ([]TranscriptEntry, error)

	// ClearTranscript removes the transcript for a session.
	ClearTranscript(ctx context.Context, sessionID string) error

	// EntryCount returns the number of entries in the session transcript.
	EntryCount(ctx context.Context, sessionID string) (int, error)
}
