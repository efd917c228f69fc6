package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"videofeed/ingest/internal/domain"

	"github.com/redis/go-redis/v9"
)

// ErrNoRun is returned when no ingestion has been recorded yet.
var ErrNoRun = errors.New("no ingestion run recorded")

type StateManager interface {
	GetLastRun(ctx context.Context) (*domain.RunSummary, error)
	SetLastRun(ctx context.Context, summary *domain.RunSummary) error
}

type redisStateManager struct {
	redisClient *redis.Client
	key         string
}

func NewRedisStateManager(redisClient *redis.Client) StateManager {
	return &redisStateManager{
		redisClient: redisClient,
		key:         "catalog:state:last_run",
	}
}

func (s *redisStateManager) GetLastRun(ctx context.Context) (*domain.RunSummary, error) {
	val, err := s.redisClient.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoRun
		}
		return nil, fmt.Errorf("failed to get last run: %w", err)
	}

	var summary domain.RunSummary
	if err := json.Unmarshal(val, &summary); err != nil {
		return nil, fmt.Errorf("failed to decode last run: %w", err)
	}

	return &summary, nil
}

func (s *redisStateManager) SetLastRun(ctx context.Context, summary *domain.RunSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode run summary: %w", err)
	}

	if err := s.redisClient.Set(ctx, s.key, data, 0).Err(); err != nil { // No expiration
		return fmt.Errorf("failed to set last run: %w", err)
	}
	return nil
}
