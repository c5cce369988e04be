package shiftlog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/staffhq/warden/internal/models"
)

const (
	// Key prefix for per-owner shift history lists
	shiftKeyPrefix = "shiftlog:"

	// DefaultListLimit caps ListRecent when the caller does not say
	DefaultListLimit = 10
)

// Config holds configuration for the Redis shift log repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed shift log repository
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

// Append records a completed shift. Newest entries sit at the head of the
// list so ListRecent is a bounded range read.
func (r *redisRepository) Append(ctx context.Context, input *AppendInput) error {
	if input == nil || input.Summary == nil {
		return errors.New("input and summary cannot be nil")
	}
	if input.Summary.OwnerID == "" {
		return errors.New("summary owner ID cannot be empty")
	}

	summaryJSON, err := json.Marshal(input.Summary)
	if err != nil {
		return fmt.Errorf("failed to marshal shift summary: %w", err)
	}

	key := shiftKey(input.Summary.OwnerID)
	if err := r.client.LPush(ctx, key, summaryJSON).Err(); err != nil {
		return fmt.Errorf("failed to append shift summary: %w", err)
	}

	return nil
}

// ListRecent returns an owner's most recent shifts, newest first
func (r *redisRepository) ListRecent(ctx context.Context, input *ListRecentInput) ([]*models.ShiftSummary, error) {
	if input == nil || input.OwnerID == "" {
		return nil, errors.New("input and owner ID cannot be empty")
	}

	limit := input.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	key := shiftKey(input.OwnerID)
	entries, err := r.client.LRange(ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list shift summaries: %w", err)
	}

	summaries := make([]*models.ShiftSummary, 0, len(entries))
	for _, entry := range entries {
		var summary models.ShiftSummary
		if err := json.Unmarshal([]byte(entry), &summary); err != nil {
			return nil, fmt.Errorf("failed to unmarshal shift summary: %w", err)
		}
		summaries = append(summaries, &summary)
	}

	return summaries, nil
}

func shiftKey(ownerID string) string {
	return fmt.Sprintf("%s%s", shiftKeyPrefix, ownerID)
}
