package panel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/staffhq/warden/internal/models"
)

const (
	// One hash per panel kind, field per key
	panelKeyPrefix = "panel:"
)

// ErrPanelNotFound is returned when no panel is recorded for a kind and key
var ErrPanelNotFound = errors.New("panel not found")

// Config holds configuration for the Redis panel repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed panel repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// Save records a posted panel
func (r *redisRepository) Save(ctx context.Context, input *SaveInput) error {
	if input == nil || input.Panel == nil {
		return errors.New("input and panel cannot be nil")
	}
	if input.Panel.Kind == "" {
		return errors.New("panel kind cannot be empty")
	}

	panelJSON, err := json.Marshal(input.Panel)
	if err != nil {
		return fmt.Errorf("failed to marshal panel: %w", err)
	}

	key := panelKey(input.Panel.Kind)
	if err := r.client.HSet(ctx, key, input.Panel.Key, panelJSON).Err(); err != nil {
		return fmt.Errorf("failed to save panel: %w", err)
	}

	return nil
}

// Get returns the panel for a kind and key
func (r *redisRepository) Get(ctx context.Context, input *GetInput) (*models.Panel, error) {
	if input == nil || input.Kind == "" {
		return nil, errors.New("input and panel kind cannot be empty")
	}

	panelJSON, err := r.client.HGet(ctx, panelKey(input.Kind), input.Key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrPanelNotFound
		}
		return nil, fmt.Errorf("failed to get panel: %w", err)
	}

	var p models.Panel
	if err := json.Unmarshal([]byte(panelJSON), &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal panel: %w", err)
	}

	return &p, nil
}

// List returns all recorded panels of a kind
func (r *redisRepository) List(ctx context.Context, input *ListInput) ([]*models.Panel, error) {
	if input == nil || input.Kind == "" {
		return nil, errors.New("input and panel kind cannot be empty")
	}

	entries, err := r.client.HGetAll(ctx, panelKey(input.Kind)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list panels: %w", err)
	}

	panels := make([]*models.Panel, 0, len(entries))
	for _, entry := range entries {
		var p models.Panel
		if err := json.Unmarshal([]byte(entry), &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal panel: %w", err)
		}
		panels = append(panels, &p)
	}

	return panels, nil
}

// Delete removes a recorded panel
func (r *redisRepository) Delete(ctx context.Context, input *DeleteInput) error {
	if input == nil || input.Kind == "" {
		return errors.New("input and panel kind cannot be empty")
	}

	if err := r.client.HDel(ctx, panelKey(input.Kind), input.Key).Err(); err != nil {
		return fmt.Errorf("failed to delete panel: %w", err)
	}

	return nil
}

func panelKey(kind models.PanelKind) string {
	return fmt.Sprintf("%s%s", panelKeyPrefix, kind)
}
