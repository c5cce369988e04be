package shift

// ShiftError is a custom error type for shift tracking errors
type ShiftError string

// Error implements the error interface
func (e ShiftError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrInvalidShiftState ShiftError = "invalid shift state for this transition"
	ErrNoActiveShift     ShiftError = "no shift in progress"
	ErrNotShiftOwner     ShiftError = "only the shift owner may do this"
	ErrNilConfig         ShiftError = "config cannot be nil"
	ErrNilHistory        ShiftError = "shift log repository cannot be nil"
	ErrNilAuditor        ShiftError = "audit service cannot be nil"
	ErrNilClock          ShiftError = "clock cannot be nil"
	ErrNilUUIDGenerator  ShiftError = "UUID generator cannot be nil"
)
