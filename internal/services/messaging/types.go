package messaging

// EmbedField is one titled field inside an embed
type EmbedField struct {
	Name   string
	Value  string
	Inline bool
}

// Embed is a platform-neutral rich message body
type Embed struct {
	Title       string
	Description string
	Color       int
	Fields      []EmbedField
}

// SendChannelMessageInput contains parameters for posting to a channel
type SendChannelMessageInput struct {
	// ChannelID is the destination channel
	ChannelID string

	// Content is the plain-text body, may be empty when an embed is set
	Content string

	// Embed is an optional rich body
	Embed *Embed
}

// SendChannelMessageOutput contains the result of posting to a channel
type SendChannelMessageOutput struct {
	// MessageID is the posted message
	MessageID string
}

// SendDirectMessageInput contains parameters for DMing a user
type SendDirectMessageInput struct {
	// UserID is the recipient
	UserID string

	// Content is the plain-text body
	Content string

	// Embed is an optional rich body
	Embed *Embed
}

// SendDirectMessageOutput contains the result of DMing a user
type SendDirectMessageOutput struct {
	// ChannelID is the DM channel the message went to. Questionnaire
	// sessions record this as the designated reply channel.
	ChannelID string

	// MessageID is the sent message
	MessageID string
}

// CreatePrivateChannelInput contains parameters for provisioning a private channel
type CreatePrivateChannelInput struct {
	// Name is the channel name
	Name string

	// ParentID is the Discord category to create the channel under, optional
	ParentID string

	// MemberIDs are users granted read/write on the channel
	MemberIDs []string

	// RoleIDs are roles granted read/write on the channel
	RoleIDs []string

	// Topic is the optional channel topic
	Topic string
}

// CreatePrivateChannelOutput contains the result of provisioning a channel
type CreatePrivateChannelOutput struct {
	// ChannelID is the created channel
	ChannelID string
}

// GrantRoleInput contains parameters for assigning a role
type GrantRoleInput struct {
	// UserID is the member receiving the role
	UserID string

	// RoleID is the role to assign
	RoleID string
}

// GrantRoleOutput contains the result of assigning a role
type GrantRoleOutput struct{}

// RevokeRoleInput contains parameters for removing a role
type RevokeRoleInput struct {
	// UserID is the member losing the role
	UserID string

	// RoleID is the role to remove
	RoleID string
}

// RevokeRoleOutput contains the result of removing a role
type RevokeRoleOutput struct{}
