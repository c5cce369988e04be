package application

// ApplicationError is a custom error type for application workflow errors
type ApplicationError string

// Error implements the error interface
func (e ApplicationError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrUnknownDivision  ApplicationError = "unknown division"
	ErrIneligible       ApplicationError = "applicant does not hold a required role"
	ErrSessionActive    ApplicationError = "an application is already in progress"
	ErrNoSession        ApplicationError = "no application in progress"
	ErrDMUnavailable    ApplicationError = "unable to DM the applicant"
	ErrReviewNotFound   ApplicationError = "application review not found"
	ErrAlreadyDecided   ApplicationError = "application has already been decided"
	ErrSelfReview       ApplicationError = "applicants cannot review their own application"
	ErrNilConfig        ApplicationError = "config cannot be nil"
	ErrNoDivisions      ApplicationError = "at least one division is required"
	ErrNilMessenger     ApplicationError = "messenger cannot be nil"
	ErrNilAuditor       ApplicationError = "audit service cannot be nil"
	ErrNilClock         ApplicationError = "clock cannot be nil"
	ErrNilUUIDGenerator ApplicationError = "UUID generator cannot be nil"
)
