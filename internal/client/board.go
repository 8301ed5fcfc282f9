// Package client implements the board-viewer side of a move: an owned
// in-memory projection of buckets, an optimistic splice during drag, and
// reconciliation against the server's answer. The projection is only ever a
// rendering copy; the server stays the source of truth for positions.
//
// Everything here runs on a single event loop (drag events, then one response
// callback), so no locking is needed; the hazard is staleness, not races.
package client

import (
	"fmt"

	"kanban_board/internal/domain"
)

// Board is the client's transient copy of buckets-with-tasks.
type Board struct {
	buckets []domain.Bucket
}

func NewBoard(buckets []domain.Bucket) *Board {
	b := &Board{}
	b.Replace(buckets)
	return b
}

// Replace swaps in a fresh authoritative bucket set (resync path).
func (b *Board) Replace(buckets []domain.Bucket) {
	b.buckets = cloneBuckets(buckets)
}

// Snapshot returns a deep copy suitable for later restore.
func (b *Board) Snapshot() []domain.Bucket {
	return cloneBuckets(b.buckets)
}

// Restore rolls the projection back to a snapshot.
func (b *Board) Restore(snapshot []domain.Bucket) {
	b.buckets = cloneBuckets(snapshot)
}

// Buckets exposes the current projection for rendering.
func (b *Board) Buckets() []domain.Bucket {
	return b.buckets
}

// Task finds a task by id.
func (b *Board) Task(id int64) (domain.Task, bool) {
	for i := range b.buckets {
		for j := range b.buckets[i].Tasks {
			if b.buckets[i].Tasks[j].ID == id {
				return b.buckets[i].Tasks[j], true
			}
		}
	}
	return domain.Task{}, false
}

// MoveTask splices the task into (bucketID, position) and renumbers both
// affected buckets. Unlike the server, an out-of-range position clamps to the
// tail: mid-drag hover coordinates are approximate and only feed rendering.
func (b *Board) MoveTask(taskID, bucketID int64, position int) error {
	srcBucket, srcIdx := b.locate(taskID)
	if srcBucket == nil {
		return fmt.Errorf("task %d not on board", taskID)
	}
	dst := b.bucket(bucketID)
	if dst == nil {
		return fmt.Errorf("bucket %d not on board", bucketID)
	}

	task := srcBucket.Tasks[srcIdx]
	srcBucket.Tasks = append(srcBucket.Tasks[:srcIdx], srcBucket.Tasks[srcIdx+1:]...)

	if position < 0 {
		position = 0
	}
	if position > len(dst.Tasks) {
		position = len(dst.Tasks)
	}
	task.BucketID = bucketID
	dst.Tasks = append(dst.Tasks, domain.Task{})
	copy(dst.Tasks[position+1:], dst.Tasks[position:])
	dst.Tasks[position] = task

	renumber(srcBucket)
	if dst != srcBucket {
		renumber(dst)
	}
	return nil
}

// ApplyAuthoritative folds the server's post-move task state into the
// projection, correcting any drift between the optimistic splice and what
// actually committed.
func (b *Board) ApplyAuthoritative(task domain.Task) {
	if srcBucket, srcIdx := b.locate(task.ID); srcBucket != nil {
		srcBucket.Tasks = append(srcBucket.Tasks[:srcIdx], srcBucket.Tasks[srcIdx+1:]...)
		renumber(srcBucket)
	}
	dst := b.bucket(task.BucketID)
	if dst == nil {
		return
	}
	pos := task.Position
	if pos > len(dst.Tasks) {
		pos = len(dst.Tasks)
	}
	dst.Tasks = append(dst.Tasks, domain.Task{})
	copy(dst.Tasks[pos+1:], dst.Tasks[pos:])
	dst.Tasks[pos] = task
	renumber(dst)
}

func (b *Board) bucket(id int64) *domain.Bucket {
	for i := range b.buckets {
		if b.buckets[i].ID == id {
			return &b.buckets[i]
		}
	}
	return nil
}

func (b *Board) locate(taskID int64) (*domain.Bucket, int) {
	for i := range b.buckets {
		for j := range b.buckets[i].Tasks {
			if b.buckets[i].Tasks[j].ID == taskID {
				return &b.buckets[i], j
			}
		}
	}
	return nil, 0
}

func renumber(b *domain.Bucket) {
	for i := range b.Tasks {
		b.Tasks[i].Position = i
	}
}

func cloneBuckets(buckets []domain.Bucket) []domain.Bucket {
	out := make([]domain.Bucket, len(buckets))
	for i, b := range buckets {
		out[i] = b
		out[i].Tasks = append([]domain.Task(nil), b.Tasks...)
	}
	return out
}
