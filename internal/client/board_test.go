package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kanban_board/internal/domain"
)

func twoBuckets() []domain.Bucket {
	return []domain.Bucket{
		{ID: 1, Tasks: []domain.Task{
			{ID: 1, BucketID: 1, Position: 0},
			{ID: 2, BucketID: 1, Position: 1},
		}},
		{ID: 2, Tasks: []domain.Task{
			{ID: 3, BucketID: 2, Position: 0},
		}},
	}
}

func TestBoardReplaceIsACopy(t *testing.T) {
	src := twoBuckets()
	b := NewBoard(src)

	src[0].Tasks[0].Title = "mutated after handoff"
	got, ok := b.Task(1)
	require.True(t, ok)
	assert.Empty(t, got.Title, "projection must own its memory")
}

func TestBoardSnapshotRestore(t *testing.T) {
	b := NewBoard(twoBuckets())
	snap := b.Snapshot()

	require.NoError(t, b.MoveTask(1, 2, 0))
	b.Restore(snap)

	got, ok := b.Task(1)
	require.True(t, ok)
	assert.Equal(t, int64(1), got.BucketID)
	assert.Equal(t, 0, got.Position)
}

func TestBoardApplyAuthoritativeCorrectsDrift(t *testing.T) {
	b := NewBoard(twoBuckets())

	// Optimistic splice put the task at the head of bucket 2.
	require.NoError(t, b.MoveTask(1, 2, 0))

	// The server committed it at the tail instead.
	b.ApplyAuthoritative(domain.Task{ID: 1, BucketID: 2, Position: 1})

	bucket := b.Buckets()[1]
	require.Len(t, bucket.Tasks, 2)
	assert.Equal(t, int64(3), bucket.Tasks[0].ID)
	assert.Equal(t, int64(1), bucket.Tasks[1].ID)
	for i, task := range bucket.Tasks {
		assert.Equal(t, i, task.Position)
	}
}

func TestBoardMoveUnknownTargets(t *testing.T) {
	b := NewBoard(twoBuckets())

	assert.Error(t, b.MoveTask(99, 1, 0))
	assert.Error(t, b.MoveTask(1, 99, 0))
}
