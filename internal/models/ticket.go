package models

import (
	"time"
)

// TicketCategory maps a support category to the channel parent and the staff
// roles that handle it. Static guild configuration.
type TicketCategory struct {
	// Key is the short identifier used in the ticket dropdown
	Key string `yaml:"key"`

	// Label is the human-readable category name
	Label string `yaml:"label"`

	// ParentChannelID is the Discord category the ticket channel is created under
	ParentChannelID string `yaml:"parent_channel_id"`

	// HolderRoleIDs are the staff roles granted access to tickets in this category
	HolderRoleIDs []string `yaml:"holder_role_ids"`
}

// Ticket is a private support channel scoped to one requester and one category
type Ticket struct {
	// ID is the unique identifier for the ticket
	ID string

	// RequesterID is the Discord user ID of the ticket opener
	RequesterID string

	// RequesterName is the display name of the ticket opener
	RequesterName string

	// CategoryKey identifies the support category
	CategoryKey string

	// ChannelID is the provisioned private channel
	ChannelID string

	// OpenedAt is when the ticket was opened
	OpenedAt time.Time
}
