package service

import (
	"context"
	"sort"
	"time"

	"kanban_board/internal/board"
	"kanban_board/internal/domain"
)

// fakeStore is an in-memory TaskStore + BucketStore used to drive the board
// service without postgres. ApplyMove honors the all-or-nothing contract:
// when failApply is set, nothing mutates.
type fakeStore struct {
	bucketNames map[int64]string
	tasks       map[int64]*domain.Task
	nextID      int64

	failApply  error
	applyCalls int
}

func newFakeStore(bucketIDs ...int64) *fakeStore {
	f := &fakeStore{bucketNames: map[int64]string{}, tasks: map[int64]*domain.Task{}, nextID: 1}
	for _, id := range bucketIDs {
		f.bucketNames[id] = "bucket"
	}
	return f
}

// seed appends a task at the tail of bucketID and returns its id.
func (f *fakeStore) seed(bucketID int64, title string) int64 {
	id := f.nextID
	f.nextID++
	f.tasks[id] = &domain.Task{
		ID:       id,
		BucketID: bucketID,
		Position: len(f.bucketTasks(bucketID)),
		Title:    title,
	}
	return id
}

func (f *fakeStore) bucketTasks(bucketID int64) []domain.Task {
	var out []domain.Task
	for _, t := range f.tasks {
		if t.BucketID == bucketID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

func (f *fakeStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (f *fakeStore) ListByBucket(ctx context.Context, bucketID int64) ([]domain.Task, error) {
	return f.bucketTasks(bucketID), nil
}

func (f *fakeStore) Create(ctx context.Context, t *domain.Task) error {
	if _, ok := f.bucketNames[t.BucketID]; !ok {
		return domain.ErrBucketNotFound
	}
	t.ID = f.nextID
	f.nextID++
	t.Position = len(f.bucketTasks(t.BucketID))
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	cp := *t
	f.tasks[t.ID] = &cp
	return nil
}

func (f *fakeStore) UpdateFields(ctx context.Context, id int64, fields domain.TaskFields) (*domain.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	if fields.Title != nil {
		t.Title = *fields.Title
	}
	if fields.Description != nil {
		t.Description = *fields.Description
	}
	if fields.Assignee != nil {
		t.Assignee = *fields.Assignee
	}
	if fields.Priority != nil {
		t.Priority = fields.Priority
	}
	if fields.StartDate != nil {
		t.StartDate = fields.StartDate
	}
	if fields.DueDate != nil {
		t.DueDate = fields.DueDate
	}
	if fields.EndDate != nil {
		t.EndDate = fields.EndDate
	}
	t.UpdatedAt = time.Now()
	cp := *t
	return &cp, nil
}

func (f *fakeStore) Delete(ctx context.Context, id int64) error {
	t, ok := f.tasks[id]
	if !ok {
		return domain.ErrTaskNotFound
	}
	bucketID, pos := t.BucketID, t.Position
	delete(f.tasks, id)
	for _, other := range f.tasks {
		if other.BucketID == bucketID && other.Position > pos {
			other.Position--
		}
	}
	return nil
}

func (f *fakeStore) ApplyMove(ctx context.Context, taskID int64, steps []board.Step) (*domain.Task, error) {
	f.applyCalls++
	if f.failApply != nil {
		return nil, f.failApply
	}
	for _, s := range steps {
		t, ok := f.tasks[s.TaskID]
		if !ok {
			return nil, domain.ErrTaskNotFound
		}
		t.BucketID = s.BucketID
		t.Position = s.Position
		t.UpdatedAt = time.Now()
	}
	moved := *f.tasks[taskID]
	return &moved, nil
}

func (f *fakeStore) List(ctx context.Context) ([]*domain.Bucket, error) {
	ids := make([]int64, 0, len(f.bucketNames))
	for id := range f.bucketNames {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []*domain.Bucket
	for i, id := range ids {
		out = append(out, &domain.Bucket{ID: id, Name: f.bucketNames[id], Position: i, Tasks: f.bucketTasks(id)})
	}
	return out, nil
}

func (f *fakeStore) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok := f.bucketNames[id]
	return ok, nil
}

// fakeSink records published board events.
type fakeSink struct {
	events []domain.BoardEvent
}

func (s *fakeSink) Publish(ev domain.BoardEvent) { s.events = append(s.events, ev) }

// memDeduper is an in-memory Deduper.
type memDeduper struct {
	seen map[string]bool
}

func newMemDeduper() *memDeduper { return &memDeduper{seen: map[string]bool{}} }

func (d *memDeduper) Add(ctx context.Context, key string) (bool, error) {
	if d.seen[key] {
		return false, nil
	}
	d.seen[key] = true
	return true, nil
}

func (d *memDeduper) Remove(ctx context.Context, key string) error {
	delete(d.seen, key)
	return nil
}
