package warning

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/staffhq/warden/internal/models"
)

const (
	// Key prefix for per-user warning lists
	warningKeyPrefix = "warning:"
)

// Config holds configuration for the Redis warning repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed warning repository
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

// Append adds a warning to the end of a user's record
func (r *redisRepository) Append(ctx context.Context, input *AppendInput) error {
	if input == nil || input.Record == nil {
		return errors.New("input and record cannot be nil")
	}
	if input.Record.UserID == "" {
		return errors.New("record user ID cannot be empty")
	}

	recordJSON, err := json.Marshal(input.Record)
	if err != nil {
		return fmt.Errorf("failed to marshal warning record: %w", err)
	}

	key := warningKey(input.Record.UserID)
	if err := r.client.RPush(ctx, key, recordJSON).Err(); err != nil {
		return fmt.Errorf("failed to append warning: %w", err)
	}

	return nil
}

// List returns a user's warnings in issue order
func (r *redisRepository) List(ctx context.Context, input *ListInput) ([]*models.WarningRecord, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	key := warningKey(input.UserID)
	entries, err := r.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list warnings: %w", err)
	}

	records := make([]*models.WarningRecord, 0, len(entries))
	for _, entry := range entries {
		var record models.WarningRecord
		if err := json.Unmarshal([]byte(entry), &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal warning record: %w", err)
		}
		records = append(records, &record)
	}

	return records, nil
}

// Count returns how many warnings a user has
func (r *redisRepository) Count(ctx context.Context, input *CountInput) (int64, error) {
	if input == nil || input.UserID == "" {
		return 0, errors.New("input and user ID cannot be empty")
	}

	count, err := r.client.LLen(ctx, warningKey(input.UserID)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count warnings: %w", err)
	}

	return count, nil
}

// Clear removes all warnings for a user
func (r *redisRepository) Clear(ctx context.Context, input *ClearInput) error {
	if input == nil || input.UserID == "" {
		return errors.New("input and user ID cannot be empty")
	}

	if err := r.client.Del(ctx, warningKey(input.UserID)).Err(); err != nil {
		return fmt.Errorf("failed to clear warnings: %w", err)
	}

	return nil
}

func warningKey(userID string) string {
	return fmt.Sprintf("%s%s", warningKeyPrefix, userID)
}
