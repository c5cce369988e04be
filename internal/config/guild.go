package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/staffhq/warden/internal/models"
)

// GuildConfig is the static per-guild data: application divisions, ticket
// categories, audit destinations and the channels panels are posted to.
// Loaded once at startup and read-only afterwards.
type GuildConfig struct {
	// Divisions maps division key to its application track
	Divisions map[string]*models.Division `yaml:"divisions"`

	// TicketCategories maps category key to its routing data
	TicketCategories map[string]*models.TicketCategory `yaml:"ticket_categories"`

	// AuditChannels maps audit event category to a log channel ID
	AuditChannels map[string]string `yaml:"audit_channels"`

	// ApplicationPanelChannelID is the default channel for application panels
	ApplicationPanelChannelID string `yaml:"application_panel_channel_id"`

	// TicketPanelChannelID is the default channel for the ticket panel
	TicketPanelChannelID string `yaml:"ticket_panel_channel_id"`
}

// LoadGuildConfig reads and validates the guild configuration file.
// Validation failures here are startup-fatal; a bot running against a
// half-formed division table would reject every applicant.
func LoadGuildConfig(path string) (*GuildConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read guild config %s: %w", path, err)
	}

	var cfg GuildConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse guild config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid guild config %s: %w", path, err)
	}

	return &cfg, nil
}

func (c *GuildConfig) validate() error {
	if len(c.Divisions) == 0 {
		return fmt.Errorf("at least one division is required")
	}

	for key, div := range c.Divisions {
		if div == nil {
			return fmt.Errorf("division %q is empty", key)
		}

		// The map key is authoritative; fill the struct key so callers can
		// pass divisions around without the map
		if div.Key == "" {
			div.Key = key
		} else if div.Key != key {
			return fmt.Errorf("division %q declares mismatched key %q", key, div.Key)
		}

		if div.DisplayName == "" {
			return fmt.Errorf("division %q is missing display_name", key)
		}
		if div.LogChannelID == "" {
			return fmt.Errorf("division %q is missing log_channel_id", key)
		}
		if len(div.Questions) == 0 {
			return fmt.Errorf("division %q has no questions", key)
		}
	}

	for key, cat := range c.TicketCategories {
		if cat == nil {
			return fmt.Errorf("ticket category %q is empty", key)
		}

		if cat.Key == "" {
			cat.Key = key
		} else if cat.Key != key {
			return fmt.Errorf("ticket category %q declares mismatched key %q", key, cat.Key)
		}

		if cat.Label == "" {
			return fmt.Errorf("ticket category %q is missing label", key)
		}
		if len(cat.HolderRoleIDs) == 0 {
			return fmt.Errorf("ticket category %q has no holder roles", key)
		}
	}

	return nil
}
