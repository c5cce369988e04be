package ticket

import (
	"go.uber.org/zap"

	"github.com/staffhq/warden/internal/common/clock"
	"github.com/staffhq/warden/internal/common/uuid"
	"github.com/staffhq/warden/internal/models"
	"github.com/staffhq/warden/internal/services/audit"
	"github.com/staffhq/warden/internal/services/messaging"
)

// Config holds configuration for the ticket service
type Config struct {
	// Categories maps category key to its routing data
	Categories map[string]*models.TicketCategory

	// Service dependencies
	Messenger     messaging.Service
	Auditor       audit.Service
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
	Logger        *zap.Logger
}

// OpenInput contains parameters for opening a ticket
type OpenInput struct {
	// RequesterID is the Discord user ID of the ticket opener
	RequesterID string

	// RequesterName is the display name of the ticket opener, used in the
	// channel name
	RequesterName string

	// CategoryKey identifies the support category
	CategoryKey string
}

// OpenOutput contains the result of opening a ticket
type OpenOutput struct {
	// Ticket is the opened ticket, with its channel provisioned
	Ticket *models.Ticket

	// Category is the resolved category
	Category *models.TicketCategory
}

// CloseInput contains parameters for closing a ticket
type CloseInput struct {
	// ChannelID is the ticket channel being closed
	ChannelID string

	// ActorID is the user closing the ticket
	ActorID string
}

// CloseOutput contains the result of closing a ticket
type CloseOutput struct {
	// Closed indicates an open ticket was actually retired; false means
	// the channel had no open ticket and the call was a no-op
	Closed bool

	// Ticket is the retired ticket when Closed is true
	Ticket *models.Ticket
}

// GetOpenInput contains parameters for looking up an open ticket
type GetOpenInput struct {
	// RequesterID is the ticket owner
	RequesterID string

	// CategoryKey identifies the support category
	CategoryKey string
}

// GetOpenOutput contains the result of looking up an open ticket
type GetOpenOutput struct {
	// Ticket is the open ticket
	Ticket *models.Ticket
}
