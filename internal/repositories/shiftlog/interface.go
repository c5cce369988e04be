package shiftlog

import (
	"context"

	"github.com/staffhq/warden/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/staffhq/warden/internal/repositories/shiftlog Repository

// Repository persists completed shift summaries per owner
type Repository interface {
	// Append records a completed shift
	Append(ctx context.Context, input *AppendInput) error

	// ListRecent returns an owner's most recent shifts, newest first
	ListRecent(ctx context.Context, input *ListRecentInput) ([]*models.ShiftSummary, error)
}
