package models

import (
	"time"

	"github.com/google/uuid"
)

// Document represents an archived uploaded document. Only the original bytes
// and their metadata are retained; analysis output is never stored.
type Document struct {
	ID          uuid.UUID `json:"id"`
	Filename    string    `json:"filename"`
	MimeType    string    `json:"mime_type"`
	Size        int64     `json:"size"`
	StoragePath string    `json:"storage_path"`
	TextLength  int       `json:"text_length"`
	ClauseCount int       `json:"clause_count"`
	CreatedAt   time.Time `json:"created_at"`
}
