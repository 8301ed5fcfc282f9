package domain

import "time"

// MoveRequest asks for a task to land at TargetPosition inside TargetBucketID.
// MoveID is an optional client-generated idempotency key; a replay with the
// same key returns the task's current state without shifting anything again.
type MoveRequest struct {
	TargetBucketID int64  `json:"targetBucketId"`
	TargetPosition int    `json:"targetPosition"`
	MoveID         string `json:"moveId,omitempty"`
}

// CreateTaskRequest creates a task at the tail of a bucket.
type CreateTaskRequest struct {
	BucketID    int64      `json:"bucketId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Assignee    string     `json:"assignee,omitempty"`
	Priority    *Priority  `json:"priority,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
}
