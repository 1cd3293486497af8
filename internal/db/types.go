package db

import (
	"time"

	"github.com/google/uuid"
)

// Run represents a validation run record
type Run struct {
	ID           uuid.UUID  `json:"id"`
	DataPath     string     `json:"data_path"`
	CodebookPath string     `json:"codebook_path"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// Run status constants
const (
	StatusRunning = "running"
	StatusPassed  = "passed"
	StatusFailed  = "failed"
	StatusError   = "error"
)
