package repository

import (
	"context"
	"errors"
	"fmt"

	"kanban_board/internal/board"
	"kanban_board/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const taskColumns = `id, bucket_id, position, title, description, assignee, priority,
	start_date, due_date, end_date, created_at, updated_at`

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	var prio *string
	if err := row.Scan(
		&t.ID, &t.BucketID, &t.Position, &t.Title, &t.Description, &t.Assignee, &prio,
		&t.StartDate, &t.DueDate, &t.EndDate, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if prio != nil {
		p := domain.Priority(*prio)
		t.Priority = &p
	}
	return &t, nil
}

// GetByID returns the task or nil when it does not exist.
func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	row := r.db.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}

// ListByBucket returns a bucket's tasks ordered by position.
func (r *TaskRepository) ListByBucket(ctx context.Context, bucketID int64) ([]domain.Task, error) {
	rows, err := r.db.Query(ctx, `SELECT `+taskColumns+` FROM tasks WHERE bucket_id = $1 ORDER BY position`, bucketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// Create inserts the task at the tail of its bucket. The bucket row is locked
// so two concurrent creates cannot claim the same tail position.
func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var bucketID int64
	err = tx.QueryRow(ctx, `SELECT id FROM buckets WHERE id = $1 FOR UPDATE`, t.BucketID).Scan(&bucketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrBucketNotFound
		}
		return err
	}

	var count int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM tasks WHERE bucket_id = $1`, t.BucketID).Scan(&count); err != nil {
		return err
	}

	var prio *string
	if t.Priority != nil {
		s := string(*t.Priority)
		prio = &s
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO tasks (bucket_id, position, title, description, assignee, priority, start_date, due_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, t.BucketID, count, t.Title, t.Description, t.Assignee, prio, t.StartDate, t.DueDate, t.EndDate).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return err
	}
	t.Position = count

	return tx.Commit(ctx)
}

// UpdateFields patches non-position fields. Nil fields are left unchanged.
func (r *TaskRepository) UpdateFields(ctx context.Context, id int64, f domain.TaskFields) (*domain.Task, error) {
	var prio *string
	if f.Priority != nil {
		s := string(*f.Priority)
		prio = &s
	}
	row := r.db.QueryRow(ctx, `
		UPDATE tasks SET
			title       = COALESCE($2, title),
			description = COALESCE($3, description),
			assignee    = COALESCE($4, assignee),
			priority    = COALESCE($5, priority),
			start_date  = COALESCE($6, start_date),
			due_date    = COALESCE($7, due_date),
			end_date    = COALESCE($8, end_date),
			updated_at  = now()
		WHERE id = $1
		RETURNING `+taskColumns+`
	`, id, f.Title, f.Description, f.Assignee, prio, f.StartDate, f.DueDate, f.EndDate)

	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return t, nil
}

// Delete removes the task and closes the position gap it leaves behind, in
// one transaction so the bucket never observes a hole.
func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var bucketID int64
	var position int
	err = tx.QueryRow(ctx, `SELECT bucket_id, position FROM tasks WHERE id = $1 FOR UPDATE`, id).
		Scan(&bucketID, &position)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrTaskNotFound
		}
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `
		UPDATE tasks SET position = position - 1, updated_at = now()
		WHERE bucket_id = $1 AND position > $2
	`, bucketID, position); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// ApplyMove persists a computed move plan as one all-or-nothing unit and
// returns the moved task's fresh state. The unique (bucket_id, position)
// constraint is deferred, so intermediate collisions inside the batch are
// fine as long as the final state is dense.
func (r *TaskRepository) ApplyMove(ctx context.Context, taskID int64, steps []board.Step) (*domain.Task, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for _, s := range steps {
		batch.Queue(`UPDATE tasks SET bucket_id = $2, position = $3, updated_at = now() WHERE id = $1`,
			s.TaskID, s.BucketID, s.Position)
	}
	br := tx.SendBatch(ctx, batch)
	for _, s := range steps {
		ct, err := br.Exec()
		if err != nil {
			_ = br.Close()
			return nil, err
		}
		if ct.RowsAffected() == 0 {
			_ = br.Close()
			return nil, fmt.Errorf("move step lost task %d: %w", s.TaskID, domain.ErrTaskNotFound)
		}
	}
	if err := br.Close(); err != nil {
		return nil, err
	}

	row := tx.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, taskID)
	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return t, nil
}
