package models

import (
	"time"
)

// WarningRecord is a single moderation warning issued to a user
type WarningRecord struct {
	// ID is the unique identifier for the warning
	ID string `json:"id"`

	// UserID is the warned user
	UserID string `json:"user_id"`

	// IssuerID is the moderator who issued the warning
	IssuerID string `json:"issuer_id"`

	// Reason is the human-readable reason for the warning
	Reason string `json:"reason"`

	// IssuedAt is when the warning was issued
	IssuedAt time.Time `json:"issued_at"`
}
