package models

import (
	"time"
)

// PanelKind distinguishes the interactive panels the bot can post
type PanelKind string

const (
	// PanelKindApplication is a division application panel with an apply button
	PanelKindApplication PanelKind = "application"

	// PanelKindTicket is the ticket panel with the category dropdown
	PanelKindTicket PanelKind = "ticket"
)

// Panel records an interactive panel posted by an admin command, so posted
// panels survive restarts and can be audited.
type Panel struct {
	// Kind is the panel type
	Kind PanelKind `json:"kind"`

	// Key scopes the panel within its kind, e.g. the division key.
	// Empty for kinds with a single panel.
	Key string `json:"key"`

	// ChannelID is where the panel message lives
	ChannelID string `json:"channel_id"`

	// MessageID is the posted panel message
	MessageID string `json:"message_id"`

	// PostedBy is the admin who posted the panel
	PostedBy string `json:"posted_by"`

	// PostedAt is when the panel was posted
	PostedAt time.Time `json:"posted_at"`
}
