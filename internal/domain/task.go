package domain

import "time"

// Task priority values accepted by the API.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Task is a single board card. Position is a dense zero-based ordering key
// within its bucket: after every committed mutation the positions of a
// bucket's tasks are exactly 0..n-1.
type Task struct {
	ID          int64      `db:"id" json:"id"`
	BucketID    int64      `db:"bucket_id" json:"bucketId"`
	Position    int        `db:"position" json:"position"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description,omitempty"`
	Assignee    string     `db:"assignee" json:"assignee,omitempty"`
	Priority    *Priority  `db:"priority" json:"priority,omitempty"`
	StartDate   *time.Time `db:"start_date" json:"startDate,omitempty"`
	DueDate     *time.Time `db:"due_date" json:"dueDate,omitempty"`
	EndDate     *time.Time `db:"end_date" json:"endDate,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`
}

// TaskFields carries an optional-field patch for a task. Nil means "leave
// unchanged". Bucket and position are deliberately absent: they only change
// through a move.
type TaskFields struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Assignee    *string    `json:"assignee,omitempty"`
	Priority    *Priority  `json:"priority,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (f TaskFields) Empty() bool {
	return f.Title == nil && f.Description == nil && f.Assignee == nil &&
		f.Priority == nil && f.StartDate == nil && f.DueDate == nil && f.EndDate == nil
}
