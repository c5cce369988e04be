package audit

// Category routes an event to its configured log channel
type Category string

const (
	// CategoryApplication covers questionnaire and review events
	CategoryApplication Category = "application"

	// CategoryTicket covers ticket open/close events
	CategoryTicket Category = "ticket"

	// CategoryShift covers shift start/end events
	CategoryShift Category = "shift"

	// CategoryModeration covers warnings and other moderation actions
	CategoryModeration Category = "moderation"
)

// Field is one structured key/value on an audit event
type Field struct {
	Name  string
	Value string
}

// EmitInput describes a single audit event
type EmitInput struct {
	// Category selects the destination channel
	Category Category

	// Title is the event headline
	Title string

	// Description is the optional event body
	Description string

	// ActorID is the user who triggered the event, optional
	ActorID string

	// Fields are additional structured details
	Fields []Field
}
