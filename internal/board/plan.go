// Package board holds the pure position arithmetic for moving tasks between
// buckets. It computes shifts; persistence is the repository's job.
package board

import (
	"errors"
	"fmt"

	"kanban_board/internal/domain"
)

// ErrOutOfRange is returned when the requested target position does not fit
// the target bucket. The server surfaces it instead of clamping so client and
// server numbering never drift apart.
var ErrOutOfRange = errors.New("target position out of range")

// Step is one position/bucket update for a single task.
type Step struct {
	TaskID   int64
	BucketID int64
	Position int
}

// PlanMove computes the minimal set of updates that lands the task with
// taskID at targetPosition inside targetBucketID while keeping both affected
// buckets dense (positions exactly 0..n-1).
//
// source holds the tasks of the bucket currently owning the task, ordered by
// position. target holds the target bucket's tasks, also ordered; for a
// same-bucket move the caller passes the same slice (or an equal one).
//
// An empty plan with a nil error means the move is a no-op.
func PlanMove(source, target []domain.Task, taskID, targetBucketID int64, targetPosition int) ([]Step, error) {
	var moved *domain.Task
	for i := range source {
		if source[i].ID == taskID {
			moved = &source[i]
			break
		}
	}
	if moved == nil {
		return nil, fmt.Errorf("task %d not in source bucket", taskID)
	}

	if moved.BucketID == targetBucketID {
		return planWithinBucket(source, moved, targetPosition)
	}
	return planAcrossBuckets(source, target, moved, targetBucketID, targetPosition)
}

func planWithinBucket(tasks []domain.Task, moved *domain.Task, targetPosition int) ([]Step, error) {
	if targetPosition < 0 || targetPosition > len(tasks)-1 {
		return nil, ErrOutOfRange
	}
	src := moved.Position
	if targetPosition == src {
		return nil, nil
	}

	var steps []Step
	if targetPosition > src {
		// Forward: everything between the old and new slot closes the gap.
		for i := range tasks {
			if p := tasks[i].Position; p > src && p <= targetPosition {
				steps = append(steps, Step{TaskID: tasks[i].ID, BucketID: moved.BucketID, Position: p - 1})
			}
		}
	} else {
		// Backward: everything between the new and old slot makes room.
		for i := range tasks {
			if p := tasks[i].Position; p >= targetPosition && p < src {
				steps = append(steps, Step{TaskID: tasks[i].ID, BucketID: moved.BucketID, Position: p + 1})
			}
		}
	}
	steps = append(steps, Step{TaskID: moved.ID, BucketID: moved.BucketID, Position: targetPosition})
	return steps, nil
}

func planAcrossBuckets(source, target []domain.Task, moved *domain.Task, targetBucketID int64, targetPosition int) ([]Step, error) {
	// Insertion at the tail of the target bucket is valid, hence len(target)
	// rather than len(target)-1.
	if targetPosition < 0 || targetPosition > len(target) {
		return nil, ErrOutOfRange
	}

	var steps []Step
	// Close the gap the task leaves behind.
	for i := range source {
		if p := source[i].Position; p > moved.Position {
			steps = append(steps, Step{TaskID: source[i].ID, BucketID: moved.BucketID, Position: p - 1})
		}
	}
	// Open a slot in the target bucket.
	for i := range target {
		if p := target[i].Position; p >= targetPosition {
			steps = append(steps, Step{TaskID: target[i].ID, BucketID: targetBucketID, Position: p + 1})
		}
	}
	steps = append(steps, Step{TaskID: moved.ID, BucketID: targetBucketID, Position: targetPosition})
	return steps, nil
}
