package ticket

// TicketError is a custom error type for ticket workflow errors
type TicketError string

// Error implements the error interface
func (e TicketError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrUnknownCategory  TicketError = "unknown ticket category"
	ErrTicketExists     TicketError = "an open ticket already exists for this category"
	ErrTicketNotFound   TicketError = "ticket not found"
	ErrNilConfig        TicketError = "config cannot be nil"
	ErrNoCategories     TicketError = "at least one ticket category is required"
	ErrNilMessenger     TicketError = "messenger cannot be nil"
	ErrNilAuditor       TicketError = "audit service cannot be nil"
	ErrNilClock         TicketError = "clock cannot be nil"
	ErrNilUUIDGenerator TicketError = "UUID generator cannot be nil"
)
