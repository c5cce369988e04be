package warning

import (
	"context"

	"github.com/staffhq/warden/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/staffhq/warden/internal/repositories/warning Repository

// Repository persists moderation warnings per user
type Repository interface {
	// Append adds a warning to the end of a user's record
	Append(ctx context.Context, input *AppendInput) error

	// List returns a user's warnings in issue order
	List(ctx context.Context, input *ListInput) ([]*models.WarningRecord, error)

	// Count returns how many warnings a user has
	Count(ctx context.Context, input *CountInput) (int64, error)

	// Clear removes all warnings for a user
	Clear(ctx context.Context, input *ClearInput) error
}
