// Package taskqueue keeps a short-lived Redis record of every asynchronous
// moderation job, so the review staff can audit what ran, when, and with what
// outcome. Jobs execute in-process; this is a ledger, not a dispatcher.
package taskqueue

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	redisc "github.com/safespace/core/internal/pkg/redis"
)

// TaskStatus is the lifecycle state of a recorded job.
type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskRunning   TaskStatus = "running"
	TaskCompleted TaskStatus = "completed"
	TaskFailed    TaskStatus = "failed"
	TaskCancelled TaskStatus = "cancelled"
)

func (s TaskStatus) terminal() bool {
	return s == TaskCompleted || s == TaskFailed || s == TaskCancelled
}

var (
	ErrTaskNotFound   = errors.New("task not found")
	ErrTaskNotPending = errors.New("only pending tasks can be cancelled")
)

// Task is one recorded background job.
type Task struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Status    TaskStatus      `json:"status"`
	Result    json.RawMessage `json:"result,omitempty"`
	Error     string          `json:"error,omitempty"`
	DedupKey  string          `json:"dedup_key,omitempty"`
	GroupKey  string          `json:"group_key,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

const (
	keyPrefix   = "ss:task:"
	keyIndex    = "ss:tasks:index"   // sorted set: score=created_at ms, member=task id
	keyDedupSet = "ss:tasks:dedup:"  // hash per task type: dedup_key -> task id
	taskTTL     = 7 * 24 * time.Hour // records expire after a week
)

// Service reads and writes task records in Redis.
type Service struct {
	rc *redisc.Client
}

func NewService(rc *redisc.Client) *Service {
	return &Service{rc: rc}
}

func taskKey(id string) string { return keyPrefix + id }

func (s *Service) load(ctx context.Context, id string) (*Task, error) {
	data, err := s.rc.Raw().Get(ctx, taskKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	var task Task
	if err := json.Unmarshal(data, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *Service) write(ctx context.Context, task *Task) error {
	data, err := json.Marshal(task)
	if err != nil {
		return err
	}
	return s.rc.Raw().Set(ctx, taskKey(task.ID), data, taskTTL).Err()
}

// Enqueue records a new job. While a job with the same type and dedup key is
// still live the existing record is returned instead of creating another.
func (s *Service) Enqueue(ctx context.Context, taskType string, payload interface{}, dedupKey, groupKey string) (*Task, error) {
	if dedupKey != "" {
		existing, err := s.rc.Raw().HGet(ctx, keyDedupSet+taskType, dedupKey).Result()
		if err == nil && existing != "" {
			if task, err := s.load(ctx, existing); err == nil {
				return task, nil
			}
			// Stale dedup entry, the record expired; fall through and create.
		}
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	task := &Task{
		ID:        uuid.New().String(),
		Type:      taskType,
		Payload:   payloadBytes,
		Status:    TaskPending,
		DedupKey:  dedupKey,
		GroupKey:  groupKey,
		CreatedAt: now,
		UpdatedAt: now,
	}

	data, err := json.Marshal(task)
	if err != nil {
		return nil, err
	}

	pipe := s.rc.Raw().TxPipeline()
	pipe.Set(ctx, taskKey(task.ID), data, taskTTL)
	pipe.ZAdd(ctx, keyIndex, redis.Z{
		Score:  float64(now.UnixMilli()),
		Member: task.ID,
	})
	if dedupKey != "" {
		pipe.HSet(ctx, keyDedupSet+taskType, dedupKey, task.ID)
		pipe.Expire(ctx, keyDedupSet+taskType, taskTTL)
	}
	_, err = pipe.Exec(ctx)
	return task, err
}

// GetByID returns one task record, or ErrTaskNotFound.
func (s *Service) GetByID(ctx context.Context, id string) (*Task, error) {
	return s.load(ctx, id)
}

// UpdateStatus advances a task's lifecycle and stores the optional result or
// error. Terminal states release the dedup slot so the next trigger enqueues
// a fresh record.
func (s *Service) UpdateStatus(ctx context.Context, id string, status TaskStatus, result interface{}, errMsg string) error {
	task, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	task.Status = status
	task.UpdatedAt = time.Now()
	task.Error = errMsg
	if result != nil {
		task.Result, _ = json.Marshal(result)
	}

	if status.terminal() && task.DedupKey != "" {
		s.rc.Raw().HDel(ctx, keyDedupSet+task.Type, task.DedupKey)
	}
	return s.write(ctx, task)
}

// List pages through the recorded jobs, newest first. Nil filters mean no
// constraint; records already expired from Redis are skipped.
func (s *Service) List(ctx context.Context, page, size int, taskType *string, status *TaskStatus) ([]*Task, int64, error) {
	ids, err := s.rc.Raw().ZRevRange(ctx, keyIndex, 0, -1).Result()
	if err != nil {
		return nil, 0, err
	}

	var tasks []*Task
	for _, id := range ids {
		task, err := s.load(ctx, id)
		if err != nil {
			continue
		}
		if taskType != nil && task.Type != *taskType {
			continue
		}
		if status != nil && task.Status != *status {
			continue
		}
		tasks = append(tasks, task)
	}

	total := int64(len(tasks))
	start := (page - 1) * size
	if start >= len(tasks) {
		return []*Task{}, total, nil
	}
	end := start + size
	if end > len(tasks) {
		end = len(tasks)
	}
	return tasks[start:end], total, nil
}

// Cancel marks a still-pending task as cancelled.
func (s *Service) Cancel(ctx context.Context, id string) error {
	task, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if task.Status != TaskPending {
		return ErrTaskNotPending
	}
	return s.UpdateStatus(ctx, id, TaskCancelled, nil, "cancelled by moderator")
}

// DeleteByID removes a single task record and its index and dedup entries.
func (s *Service) DeleteByID(ctx context.Context, id string) error {
	task, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	pipe := s.rc.Raw().TxPipeline()
	pipe.Del(ctx, taskKey(id))
	pipe.ZRem(ctx, keyIndex, id)
	if task.DedupKey != "" {
		pipe.HDel(ctx, keyDedupSet+task.Type, task.DedupKey)
	}
	_, err = pipe.Exec(ctx)
	return err
}

// DeleteFinished removes completed, failed and cancelled records, optionally
// only those created before beforeMS (unix milliseconds). Returns how many
// records were removed.
func (s *Service) DeleteFinished(ctx context.Context, beforeMS int64) (int, error) {
	ids, err := s.rc.Raw().ZRange(ctx, keyIndex, 0, -1).Result()
	if err != nil {
		return 0, err
	}

	removed := 0
	pipe := s.rc.Raw().TxPipeline()
	for _, id := range ids {
		task, err := s.load(ctx, id)
		if err != nil {
			continue
		}
		if !task.Status.terminal() {
			continue
		}
		if beforeMS > 0 && task.CreatedAt.UnixMilli() >= beforeMS {
			continue
		}
		pipe.Del(ctx, taskKey(id))
		pipe.ZRem(ctx, keyIndex, id)
		if task.DedupKey != "" {
			pipe.HDel(ctx, keyDedupSet+task.Type, task.DedupKey)
		}
		removed++
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return removed, nil
}
