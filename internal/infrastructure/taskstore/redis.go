package taskstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/G381N/bug-besty/internal/config"
	"github.com/G381N/bug-besty/internal/core/ports"
	"github.com/G381N/bug-besty/internal/core/services"
	"github.com/G381N/bug-besty/internal/domain"
	"github.com/G381N/bug-besty/internal/infrastructure/logger"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	taskKeyPrefix = "task:"
	lockKeyPrefix = "task_lock:"
	queueKey      = "task_queue"
)

// RedisTaskStore keeps each task as one JSON record under "task:<id>" and
// the pending-task FIFO under the "task_queue" list key. Every mutation is
// a full record replace of the previous state plus the requested changes,
// never a field-level patch.
type RedisTaskStore struct {
	client *redis.Client
	log    *logger.Logger
}

func NewClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func NewRedisTaskStore(client *redis.Client, log *logger.Logger) *RedisTaskStore {
	return &RedisTaskStore{client: client, log: log}
}

func (s *RedisTaskStore) Create(ctx context.Context, taskType string, data domain.TaskData) (*domain.Task, error) {
	now := time.Now().UTC()
	task := &domain.Task{
		ID:        uuid.New().String(),
		Type:      taskType,
		Status:    domain.TaskStatusPending,
		Data:      data,
		Progress:  0,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.put(ctx, task); err != nil {
		return nil, err
	}
	if err := s.client.LPush(ctx, queueKey, task.ID).Err(); err != nil {
		return nil, fmt.Errorf("enqueue task %s: %w", task.ID, err)
	}

	s.log.Infow("task_store_created", "task_id", task.ID, "type", taskType)
	return task, nil
}

func (s *RedisTaskStore) Get(ctx context.Context, id string) (*domain.Task, error) {
	raw, err := s.client.Get(ctx, taskKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, services.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load task %s: %w", id, err)
	}

	var task domain.Task
	if err := json.Unmarshal(raw, &task); err != nil {
		return nil, fmt.Errorf("decode task %s: %w", id, err)
	}
	return &task, nil
}

func (s *RedisTaskStore) Update(ctx context.Context, id string, update ports.TaskUpdate) (*domain.Task, error) {
	task, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Status != "" {
		task.Status = update.Status
	}
	if update.Progress != nil {
		task.Progress = *update.Progress
	}
	if update.Result != nil {
		task.Result = update.Result
	}
	if update.Error != nil {
		task.Error = *update.Error
	}
	task.UpdatedAt = time.Now().UTC()

	if err := s.put(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *RedisTaskStore) UpdateProgress(ctx context.Context, id string, progress int, result *domain.EnumerationResult) (*domain.Task, error) {
	return s.Update(ctx, id, ports.TaskUpdate{
		Status:   domain.TaskStatusProcessing,
		Progress: &progress,
		Result:   result,
	})
}

func (s *RedisTaskStore) AcquireLease(ctx context.Context, id string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, lockKeyPrefix+id, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire lease for %s: %w", id, err)
	}
	return ok, nil
}

func (s *RedisTaskStore) ReleaseLease(ctx context.Context, id string) error {
	return s.client.Del(ctx, lockKeyPrefix+id).Err()
}

func (s *RedisTaskStore) put(ctx context.Context, task *domain.Task) error {
	raw, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("encode task %s: %w", task.ID, err)
	}
	if err := s.client.Set(ctx, taskKeyPrefix+task.ID, raw, 0).Err(); err != nil {
		return fmt.Errorf("store task %s: %w", task.ID, err)
	}
	return nil
}
