package panel

import (
	"github.com/staffhq/warden/internal/models"
)

// SaveInput contains parameters for recording a panel
type SaveInput struct {
	// Panel is the panel to record
	Panel *models.Panel
}

// GetInput contains parameters for looking up a panel
type GetInput struct {
	// Kind is the panel type
	Kind models.PanelKind

	// Key scopes the panel within its kind, may be empty
	Key string
}

// ListInput contains parameters for listing panels
type ListInput struct {
	// Kind is the panel type
	Kind models.PanelKind
}

// DeleteInput contains parameters for removing a recorded panel
type DeleteInput struct {
	// Kind is the panel type
	Kind models.PanelKind

	// Key scopes the panel within its kind, may be empty
	Key string
}
