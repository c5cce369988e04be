package ticket

import "context"

// Service defines the interface for the support ticket workflow
type Service interface {
	// Open provisions a private support channel for a requester and
	// category. At most one ticket per (requester, category) may be open.
	Open(ctx context.Context, input *OpenInput) (*OpenOutput, error)

	// Close retires the ticket backing a channel. Closing a channel with
	// no ticket is a safe no-op.
	Close(ctx context.Context, input *CloseInput) (*CloseOutput, error)

	// GetOpen returns the requester's open ticket for a category
	GetOpen(ctx context.Context, input *GetOpenInput) (*GetOpenOutput, error)
}
