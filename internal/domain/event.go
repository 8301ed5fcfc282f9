package domain

// BoardEventType identifies a committed board mutation.
type BoardEventType string

const (
	EventTaskCreated BoardEventType = "task_created"
	EventTaskUpdated BoardEventType = "task_updated"
	EventTaskMoved   BoardEventType = "task_moved"
	EventTaskDeleted BoardEventType = "task_deleted"
)

// BoardEvent is broadcast to board viewers after a mutation commits.
// For task_deleted only TaskID and BucketID are set.
type BoardEvent struct {
	Type     BoardEventType `json:"type"`
	TaskID   int64          `json:"taskId"`
	BucketID int64          `json:"bucketId"`
	Task     *Task          `json:"task,omitempty"`
}
