package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kanban_board/internal/board"
	"kanban_board/internal/domain"
)

func assertDense(t *testing.T, store *fakeStore, bucketID int64, wantLen int) {
	t.Helper()
	tasks := store.bucketTasks(bucketID)
	require.Len(t, tasks, wantLen, "bucket %d size", bucketID)
	for i, task := range tasks {
		assert.Equal(t, i, task.Position, "bucket %d task %d", bucketID, task.ID)
	}
}

func TestMoveCrossBucket(t *testing.T) {
	store := newFakeStore(1, 2)
	var ids []int64
	for i := 0; i < 5; i++ {
		ids = append(ids, store.seed(1, "a"))
	}
	for i := 0; i < 3; i++ {
		store.seed(2, "b")
	}
	sink := &fakeSink{}
	svc := NewBoardService(store, store, nil, sink)

	moved, err := svc.Move(context.Background(), ids[2], domain.MoveRequest{TargetBucketID: 2, TargetPosition: 1})
	require.NoError(t, err)

	assert.Equal(t, int64(2), moved.BucketID)
	assert.Equal(t, 1, moved.Position)
	assertDense(t, store, 1, 4)
	assertDense(t, store, 2, 4)

	require.Len(t, sink.events, 1)
	assert.Equal(t, domain.EventTaskMoved, sink.events[0].Type)
	assert.Equal(t, moved.ID, sink.events[0].TaskID)
}

func TestMoveSameBucketForwardAndBack(t *testing.T) {
	store := newFakeStore(1)
	var ids []int64
	for i := 0; i < 5; i++ {
		ids = append(ids, store.seed(1, "t"))
	}
	svc := NewBoardService(store, store, nil, nil)
	ctx := context.Background()

	moved, err := svc.Move(ctx, ids[0], domain.MoveRequest{TargetBucketID: 1, TargetPosition: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, moved.Position)
	assertDense(t, store, 1, 5)

	_, err = svc.Move(ctx, ids[0], domain.MoveRequest{TargetBucketID: 1, TargetPosition: 0})
	require.NoError(t, err)
	assertDense(t, store, 1, 5)
	for i, task := range store.bucketTasks(1) {
		assert.Equal(t, ids[i], task.ID, "original order restored at %d", i)
	}
}

func TestMoveNoOpTouchesNothing(t *testing.T) {
	store := newFakeStore(1)
	id := store.seed(1, "only")
	store.seed(1, "other")
	sink := &fakeSink{}
	svc := NewBoardService(store, store, nil, sink)

	task, err := svc.Move(context.Background(), id, domain.MoveRequest{TargetBucketID: 1, TargetPosition: 0})
	require.NoError(t, err)
	assert.Equal(t, 0, task.Position)
	assert.Zero(t, store.applyCalls, "no-op must not hit the store")
	assert.Empty(t, sink.events)
}

func TestMoveUnknownTask(t *testing.T) {
	store := newFakeStore(1)
	svc := NewBoardService(store, store, nil, nil)

	_, err := svc.Move(context.Background(), 42, domain.MoveRequest{TargetBucketID: 1, TargetPosition: 0})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestMoveUnknownTargetBucket(t *testing.T) {
	store := newFakeStore(1)
	id := store.seed(1, "t")
	svc := NewBoardService(store, store, nil, nil)

	_, err := svc.Move(context.Background(), id, domain.MoveRequest{TargetBucketID: 9, TargetPosition: 0})
	assert.ErrorIs(t, err, domain.ErrBucketNotFound)
}

func TestMoveOutOfRangeLeavesPositionsUnchanged(t *testing.T) {
	store := newFakeStore(1)
	var ids []int64
	for i := 0; i < 3; i++ {
		ids = append(ids, store.seed(1, "t"))
	}
	svc := NewBoardService(store, store, nil, nil)

	_, err := svc.Move(context.Background(), ids[0], domain.MoveRequest{TargetBucketID: 1, TargetPosition: 10})
	assert.ErrorIs(t, err, board.ErrOutOfRange)
	assert.Zero(t, store.applyCalls)
	assertDense(t, store, 1, 3)
	for i, task := range store.bucketTasks(1) {
		assert.Equal(t, ids[i], task.ID)
	}
}

func TestMoveDuplicateMoveIDReturnsCurrentState(t *testing.T) {
	store := newFakeStore(1, 2)
	id := store.seed(1, "t")
	store.seed(2, "b")
	dedup := newMemDeduper()
	svc := NewBoardService(store, store, dedup, nil)
	ctx := context.Background()

	req := domain.MoveRequest{TargetBucketID: 2, TargetPosition: 0, MoveID: "m-1"}
	first, err := svc.Move(ctx, id, req)
	require.NoError(t, err)
	assert.Equal(t, int64(2), first.BucketID)

	// Replay: same moveId, different target. Nothing shifts again.
	replay, err := svc.Move(ctx, id, domain.MoveRequest{TargetBucketID: 1, TargetPosition: 0, MoveID: "m-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), replay.BucketID)
	assert.Equal(t, 1, store.applyCalls)
	assertDense(t, store, 1, 0)
	assertDense(t, store, 2, 2)
}

func TestMoveFailureReleasesMoveID(t *testing.T) {
	store := newFakeStore(1, 2)
	id := store.seed(1, "t")
	dedup := newMemDeduper()
	svc := NewBoardService(store, store, dedup, nil)
	ctx := context.Background()

	store.failApply = errors.New("connection reset")
	req := domain.MoveRequest{TargetBucketID: 2, TargetPosition: 0, MoveID: "m-2"}
	_, err := svc.Move(ctx, id, req)
	require.Error(t, err)
	assertDense(t, store, 1, 1)

	// The retry with the same moveId must go through once the store recovers.
	store.failApply = nil
	moved, err := svc.Move(ctx, id, req)
	require.NoError(t, err)
	assert.Equal(t, int64(2), moved.BucketID)
}

func TestSequentialMovesKeepDensity(t *testing.T) {
	store := newFakeStore(1, 2, 3)
	var ids []int64
	for i := 0; i < 4; i++ {
		ids = append(ids, store.seed(1, "t"))
	}
	for i := 0; i < 2; i++ {
		ids = append(ids, store.seed(2, "t"))
	}
	svc := NewBoardService(store, store, nil, nil)
	ctx := context.Background()

	moves := []struct {
		task   int64
		bucket int64
		pos    int
	}{
		{ids[0], 2, 1},
		{ids[5], 1, 0},
		{ids[3], 3, 0},
		{ids[1], 1, 2},
		{ids[0], 2, 0},
		{ids[4], 3, 1},
	}
	for _, m := range moves {
		_, err := svc.Move(ctx, m.task, domain.MoveRequest{TargetBucketID: m.bucket, TargetPosition: m.pos})
		require.NoError(t, err, "move task=%d bucket=%d pos=%d", m.task, m.bucket, m.pos)

		total := 0
		for _, bucketID := range []int64{1, 2, 3} {
			tasks := store.bucketTasks(bucketID)
			for i, task := range tasks {
				require.Equal(t, i, task.Position, "bucket %d dense after each move", bucketID)
			}
			total += len(tasks)
		}
		require.Equal(t, 6, total, "no task duplicated or lost")
	}
}

func TestCreateTaskAppendsAtTail(t *testing.T) {
	store := newFakeStore(1)
	store.seed(1, "first")
	sink := &fakeSink{}
	svc := NewBoardService(store, store, nil, sink)

	task, err := svc.CreateTask(context.Background(), domain.CreateTaskRequest{BucketID: 1, Title: "second"})
	require.NoError(t, err)
	assert.Equal(t, 1, task.Position)
	require.Len(t, sink.events, 1)
	assert.Equal(t, domain.EventTaskCreated, sink.events[0].Type)
}

func TestCreateTaskUnknownBucket(t *testing.T) {
	store := newFakeStore(1)
	svc := NewBoardService(store, store, nil, nil)

	_, err := svc.CreateTask(context.Background(), domain.CreateTaskRequest{BucketID: 7, Title: "x"})
	assert.ErrorIs(t, err, domain.ErrBucketNotFound)
}

func TestDeleteTaskClosesGap(t *testing.T) {
	store := newFakeStore(1)
	var ids []int64
	for i := 0; i < 3; i++ {
		ids = append(ids, store.seed(1, "t"))
	}
	sink := &fakeSink{}
	svc := NewBoardService(store, store, nil, sink)

	require.NoError(t, svc.DeleteTask(context.Background(), ids[1]))
	assertDense(t, store, 1, 2)
	require.Len(t, sink.events, 1)
	assert.Equal(t, domain.EventTaskDeleted, sink.events[0].Type)
	assert.Equal(t, ids[1], sink.events[0].TaskID)
}

func TestUpdateTaskEmptyPatch(t *testing.T) {
	store := newFakeStore(1)
	id := store.seed(1, "t")
	svc := NewBoardService(store, store, nil, nil)

	_, err := svc.UpdateTask(context.Background(), id, domain.TaskFields{})
	assert.ErrorIs(t, err, ErrEmptyUpdate)
}
