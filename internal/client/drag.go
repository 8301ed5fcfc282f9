package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"kanban_board/internal/domain"
)

// DragState is the drag lifecycle: Idle -> Dragging -> Reconciling -> Idle.
// Cancel short-circuits Dragging back to Idle with no request.
type DragState int

const (
	StateIdle DragState = iota
	StateDragging
	StateReconciling
)

func (s DragState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateReconciling:
		return "reconciling"
	default:
		return "unknown"
	}
}

var ErrBadTransition = errors.New("invalid drag transition")

// MoveAPI is the server surface the reconciler needs.
type MoveAPI interface {
	Buckets(ctx context.Context) ([]domain.Bucket, error)
	MoveTask(ctx context.Context, taskID int64, req domain.MoveRequest) (*domain.Task, error)
}

// Reconciler owns the projection and drives a drag through its lifecycle.
// The snapshot taken at BeginDrag backs Cancel; a failed Drop prefers a full
// resync over the snapshot because the server may have moved on meanwhile.
type Reconciler struct {
	api   MoveAPI
	board *Board

	state    DragState
	taskID   int64
	moveID   string
	snapshot []domain.Bucket
}

func NewReconciler(api MoveAPI, board *Board) *Reconciler {
	return &Reconciler{api: api, board: board}
}

func (r *Reconciler) State() DragState { return r.state }
func (r *Reconciler) Board() *Board    { return r.board }

// BeginDrag starts dragging taskID. The current projection is snapshotted so
// a cancelled drag reverts without a round-trip.
func (r *Reconciler) BeginDrag(taskID int64) error {
	if r.state != StateIdle {
		return fmt.Errorf("%w: begin drag while %s", ErrBadTransition, r.state)
	}
	if _, ok := r.board.Task(taskID); !ok {
		return fmt.Errorf("task %d not on board", taskID)
	}
	r.taskID = taskID
	r.moveID = uuid.NewString()
	r.snapshot = r.board.Snapshot()
	r.state = StateDragging
	return nil
}

// DragOver speculatively splices the dragged task under the pointer so the
// UI reflects the pending move before any network traffic.
func (r *Reconciler) DragOver(bucketID int64, position int) error {
	if r.state != StateDragging {
		return fmt.Errorf("%w: drag over while %s", ErrBadTransition, r.state)
	}
	return r.board.MoveTask(r.taskID, bucketID, position)
}

// Cancel aborts the drag (pointer left every droppable target): the
// projection reverts to the snapshot and no request is sent.
func (r *Reconciler) Cancel() error {
	if r.state != StateDragging {
		return fmt.Errorf("%w: cancel while %s", ErrBadTransition, r.state)
	}
	r.board.Restore(r.snapshot)
	r.reset()
	return nil
}

// Drop commits the drag: one move request with the drag's idempotency key.
// On success the server's task state is folded into the projection. On any
// failure the optimistic mutation is discarded and the projection is rebuilt
// from a fresh GET /buckets; if even the resync fails, the snapshot is
// restored so the UI never shows a half-applied move.
func (r *Reconciler) Drop(ctx context.Context, bucketID int64, position int) (*domain.Task, error) {
	if r.state != StateDragging {
		return nil, fmt.Errorf("%w: drop while %s", ErrBadTransition, r.state)
	}
	if err := r.board.MoveTask(r.taskID, bucketID, position); err != nil {
		r.board.Restore(r.snapshot)
		r.reset()
		return nil, err
	}
	r.state = StateReconciling

	task, err := r.api.MoveTask(ctx, r.taskID, domain.MoveRequest{
		TargetBucketID: bucketID,
		TargetPosition: position,
		MoveID:         r.moveID,
	})
	if err != nil {
		if fresh, rerr := r.api.Buckets(ctx); rerr == nil {
			r.board.Replace(fresh)
		} else {
			r.board.Restore(r.snapshot)
		}
		r.reset()
		return nil, err
	}

	r.board.ApplyAuthoritative(*task)
	r.reset()
	return task, nil
}

func (r *Reconciler) reset() {
	r.state = StateIdle
	r.taskID = 0
	r.moveID = ""
	r.snapshot = nil
}
