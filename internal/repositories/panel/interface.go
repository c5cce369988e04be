package panel

import (
	"context"

	"github.com/staffhq/warden/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/staffhq/warden/internal/repositories/panel Repository

// Repository persists the interactive panels posted by admin commands, so
// the set of live panels survives restarts.
type Repository interface {
	// Save records a posted panel, replacing any previous panel with the
	// same kind and key
	Save(ctx context.Context, input *SaveInput) error

	// Get returns the panel for a kind and key, or ErrPanelNotFound
	Get(ctx context.Context, input *GetInput) (*models.Panel, error)

	// List returns all recorded panels of a kind
	List(ctx context.Context, input *ListInput) ([]*models.Panel, error)

	// Delete removes a recorded panel
	Delete(ctx context.Context, input *DeleteInput) error
}
