package models

// Division is a named application track with its own question set and role
// effects. Divisions are static guild configuration, loaded once at startup.
type Division struct {
	// Key is the short identifier used in component IDs and commands
	Key string `yaml:"key"`

	// DisplayName is the human-readable division name
	DisplayName string `yaml:"display_name"`

	// LogChannelID is where submitted applications and decisions are posted
	LogChannelID string `yaml:"log_channel_id"`

	// RequiredRoleIDs gates eligibility; empty means anyone may apply
	RequiredRoleIDs []string `yaml:"required_role_ids"`

	// PingRoleIDs are notified when an application is submitted
	PingRoleIDs []string `yaml:"ping_role_ids"`

	// GrantRoleIDs are granted to the applicant on acceptance
	GrantRoleIDs []string `yaml:"grant_role_ids"`

	// Questions is the ordered list of prompts for this division
	Questions []string `yaml:"questions"`
}

// Eligible reports whether a member holding memberRoles may apply to the
// division. An empty required set means the division is open to everyone.
func (d *Division) Eligible(memberRoles []string) bool {
	if len(d.RequiredRoleIDs) == 0 {
		return true
	}

	for _, required := range d.RequiredRoleIDs {
		for _, held := range memberRoles {
			if required == held {
				return true
			}
		}
	}

	return false
}
