package handlers

import (
	"context"

	"kanban_board/internal/domain"
)

// BoardAPI is what the handlers need from the board service. Tests swap in a
// fake.
type BoardAPI interface {
	Buckets(ctx context.Context) ([]*domain.Bucket, error)
	Task(ctx context.Context, id int64) (*domain.Task, error)
	Move(ctx context.Context, taskID int64, req domain.MoveRequest) (*domain.Task, error)
	CreateTask(ctx context.Context, req domain.CreateTaskRequest) (*domain.Task, error)
	UpdateTask(ctx context.Context, id int64, f domain.TaskFields) (*domain.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

type Handler struct {
	Board BoardAPI
}

func NewHandler(board BoardAPI) *Handler {
	return &Handler{Board: board}
}
