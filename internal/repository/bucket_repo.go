package repository

import (
	"context"

	"kanban_board/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type BucketRepository struct {
	db *pgxpool.Pool
}

func NewBucketRepository(db *pgxpool.Pool) *BucketRepository {
	return &BucketRepository{db: db}
}

// List returns every bucket with its tasks ordered by position.
func (r *BucketRepository) List(ctx context.Context) ([]*domain.Bucket, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, position FROM buckets ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buckets []*domain.Bucket
	byID := map[int64]*domain.Bucket{}
	for rows.Next() {
		var b domain.Bucket
		if err := rows.Scan(&b.ID, &b.Name, &b.Position); err != nil {
			return nil, err
		}
		b.Tasks = []domain.Task{}
		buckets = append(buckets, &b)
		byID[b.ID] = &b
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	taskRows, err := r.db.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		ORDER BY bucket_id, position
	`)
	if err != nil {
		return nil, err
	}
	defer taskRows.Close()

	for taskRows.Next() {
		t, err := scanTask(taskRows)
		if err != nil {
			return nil, err
		}
		if b, ok := byID[t.BucketID]; ok {
			b.Tasks = append(b.Tasks, *t)
		}
	}
	if err := taskRows.Err(); err != nil {
		return nil, err
	}
	return buckets, nil
}

// Exists reports whether the bucket id is known.
func (r *BucketRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var found bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM buckets WHERE id = $1)`, id).Scan(&found)
	if err != nil {
		return false, err
	}
	return found, nil
}
