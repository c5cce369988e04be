package shiftlog

import (
	"github.com/staffhq/warden/internal/models"
)

// AppendInput contains parameters for recording a completed shift
type AppendInput struct {
	// Summary is the completed shift to record
	Summary *models.ShiftSummary
}

// ListRecentInput contains parameters for listing an owner's recent shifts
type ListRecentInput struct {
	// OwnerID is the shift owner
	OwnerID string

	// Limit caps how many summaries are returned. Zero or negative means
	// the default.
	Limit int
}
