package models

import (
	"encoding/json"
	"time"
)

// Snapshot is the unit of persistence: the entire ordered note sequence,
// written and read wholesale. SavedAt records when the writer flushed.
type Snapshot struct {
	Notes   []Note    `json:"notes"`
	SavedAt time.Time `json:"saved_at"`
}

// EncodeSnapshot serializes the full note sequence for the shared blob store.
func EncodeSnapshot(notes []Note, savedAt time.Time) ([]byte, error) {
	return json.Marshal(Snapshot{Notes: notes, SavedAt: savedAt})
}

// DecodeSnapshot parses a blob previously produced by EncodeSnapshot.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
