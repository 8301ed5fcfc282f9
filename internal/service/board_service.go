package service

import (
	"context"
	"errors"
	"time"

	"kanban_board/internal/board"
	"kanban_board/internal/domain"
	"kanban_board/internal/logger"
)

var ErrEmptyUpdate = errors.New("update had no fields")

// TaskStore is the persistence surface the board service mutates tasks
// through. All position changes go through ApplyMove, never field writes.
type TaskStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	ListByBucket(ctx context.Context, bucketID int64) ([]domain.Task, error)
	Create(ctx context.Context, t *domain.Task) error
	UpdateFields(ctx context.Context, id int64, f domain.TaskFields) (*domain.Task, error)
	Delete(ctx context.Context, id int64) error
	ApplyMove(ctx context.Context, taskID int64, steps []board.Step) (*domain.Task, error)
}

// BucketStore reads the fixed bucket set.
type BucketStore interface {
	List(ctx context.Context) ([]*domain.Bucket, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// Deduper remembers processed move ids so a retried drag-end request does not
// shift positions twice.
type Deduper interface {
	Add(ctx context.Context, key string) (bool, error)
	Remove(ctx context.Context, key string) error
}

// EventSink receives committed board mutations (e.g. a websocket hub).
type EventSink interface {
	Publish(ev domain.BoardEvent)
}

// BoardService is the move applier plus the task lifecycle around it.
type BoardService struct {
	tasks   TaskStore
	buckets BucketStore
	dedup   Deduper
	events  EventSink
}

// NewBoardService wires the service. dedup and events may be nil; the service
// then skips idempotency tracking and event publishing.
func NewBoardService(tasks TaskStore, buckets BucketStore, dedup Deduper, events EventSink) *BoardService {
	return &BoardService{tasks: tasks, buckets: buckets, dedup: dedup, events: events}
}

// Buckets returns the board: every bucket with its position-ordered tasks.
func (s *BoardService) Buckets(ctx context.Context) ([]*domain.Bucket, error) {
	return s.buckets.List(ctx)
}

// Task returns a single task.
func (s *BoardService) Task(ctx context.Context, id int64) (*domain.Task, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrTaskNotFound
	}
	return t, nil
}

// Move relocates a task to (targetBucketId, targetPosition), shifting
// displaced siblings so both affected buckets stay dense. The whole shift set
// commits atomically or not at all.
func (s *BoardService) Move(ctx context.Context, taskID int64, req domain.MoveRequest) (*domain.Task, error) {
	start := time.Now()

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		moveFailures.WithLabelValues("persistence").Inc()
		return nil, err
	}
	if task == nil {
		moveFailures.WithLabelValues("not_found").Inc()
		return nil, domain.ErrTaskNotFound
	}
	known, err := s.buckets.Exists(ctx, req.TargetBucketID)
	if err != nil {
		moveFailures.WithLabelValues("persistence").Inc()
		return nil, err
	}
	if !known {
		moveFailures.WithLabelValues("not_found").Inc()
		return nil, domain.ErrBucketNotFound
	}

	// Idempotency: a replayed moveId returns current state, no second shift.
	tracked := false
	if req.MoveID != "" && s.dedup != nil {
		fresh, err := s.dedup.Add(ctx, req.MoveID)
		if err != nil {
			// Fail open: a dead deduper must not block moves.
			logger.Warn("move dedup unavailable", "error", err)
		} else if !fresh {
			movesTotal.WithLabelValues("duplicate").Inc()
			return task, nil
		} else {
			tracked = true
		}
	}
	release := func() {
		if tracked {
			if err := s.dedup.Remove(ctx, req.MoveID); err != nil {
				logger.Warn("move dedup release failed", "moveId", req.MoveID, "error", err)
			}
		}
	}

	source, err := s.tasks.ListByBucket(ctx, task.BucketID)
	if err != nil {
		release()
		moveFailures.WithLabelValues("persistence").Inc()
		return nil, err
	}
	target := source
	if req.TargetBucketID != task.BucketID {
		target, err = s.tasks.ListByBucket(ctx, req.TargetBucketID)
		if err != nil {
			release()
			moveFailures.WithLabelValues("persistence").Inc()
			return nil, err
		}
	}

	steps, err := board.PlanMove(source, target, taskID, req.TargetBucketID, req.TargetPosition)
	if err != nil {
		release()
		moveFailures.WithLabelValues("out_of_range").Inc()
		return nil, err
	}
	if len(steps) == 0 {
		movesTotal.WithLabelValues("noop").Inc()
		return task, nil
	}

	moved, err := s.tasks.ApplyMove(ctx, taskID, steps)
	if err != nil {
		release()
		moveFailures.WithLabelValues("persistence").Inc()
		return nil, err
	}

	movesTotal.WithLabelValues("applied").Inc()
	moveDuration.Observe(time.Since(start).Seconds())
	s.publish(domain.BoardEvent{Type: domain.EventTaskMoved, TaskID: moved.ID, BucketID: moved.BucketID, Task: moved})
	logger.Info("task moved",
		"task", moved.ID, "from", task.BucketID, "to", moved.BucketID, "position", moved.Position)
	return moved, nil
}

// CreateTask appends a task at the tail of the requested bucket.
func (s *BoardService) CreateTask(ctx context.Context, req domain.CreateTaskRequest) (*domain.Task, error) {
	t := &domain.Task{
		BucketID:    req.BucketID,
		Title:       req.Title,
		Description: req.Description,
		Assignee:    req.Assignee,
		Priority:    req.Priority,
		StartDate:   req.StartDate,
		DueDate:     req.DueDate,
		EndDate:     req.EndDate,
	}
	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	s.publish(domain.BoardEvent{Type: domain.EventTaskCreated, TaskID: t.ID, BucketID: t.BucketID, Task: t})
	return t, nil
}

// UpdateTask patches non-position fields.
func (s *BoardService) UpdateTask(ctx context.Context, id int64, f domain.TaskFields) (*domain.Task, error) {
	if f.Empty() {
		return nil, ErrEmptyUpdate
	}
	t, err := s.tasks.UpdateFields(ctx, id, f)
	if err != nil {
		return nil, err
	}
	s.publish(domain.BoardEvent{Type: domain.EventTaskUpdated, TaskID: t.ID, BucketID: t.BucketID, Task: t})
	return t, nil
}

// DeleteTask removes the task and lets the store close the position gap.
func (s *BoardService) DeleteTask(ctx context.Context, id int64) error {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t == nil {
		return domain.ErrTaskNotFound
	}
	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(domain.BoardEvent{Type: domain.EventTaskDeleted, TaskID: id, BucketID: t.BucketID})
	return nil
}

func (s *BoardService) publish(ev domain.BoardEvent) {
	if s.events != nil {
		s.events.Publish(ev)
	}
}
