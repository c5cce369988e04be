package warning

import (
	"github.com/staffhq/warden/internal/models"
)

// AppendInput contains parameters for recording a warning
type AppendInput struct {
	// Record is the warning to append
	Record *models.WarningRecord
}

// ListInput contains parameters for listing a user's warnings
type ListInput struct {
	// UserID is the warned user
	UserID string
}

// CountInput contains parameters for counting a user's warnings
type CountInput struct {
	// UserID is the warned user
	UserID string
}

// ClearInput contains parameters for clearing a user's warnings
type ClearInput struct {
	// UserID is the warned user
	UserID string
}
