package domain

import "time"

type LogStatus string

const (
	LogSuccess LogStatus = "success"
	LogError   LogStatus = "error"
)

// LogEntry is one audit record. Entries are append-only and immutable once
// recorded.
type LogEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Status    LogStatus `json:"status"`
	Details   string    `json:"details,omitempty"`
}
