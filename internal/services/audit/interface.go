package audit

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/staffhq/warden/internal/services/audit Service

// Service is a best-effort sink for moderation and workflow events.
// Emit never fails the caller: unresolved categories and delivery errors
// are logged locally and swallowed.
type Service interface {
	Emit(ctx context.Context, input *EmitInput)
}
