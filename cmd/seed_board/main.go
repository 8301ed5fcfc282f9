package main

import (
	"context"
	"log"
	"os"

	"kanban_board/internal/db"
	"kanban_board/internal/domain"
	"kanban_board/internal/repository"
)

// Seeds a handful of demo tasks so the board is not empty on first run.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	ctx := context.Background()
	buckets := repository.NewBucketRepository(pool)
	tasks := repository.NewTaskRepository(pool)

	existing, err := buckets.List(ctx)
	if err != nil {
		log.Fatalf("list buckets: %v", err)
	}
	if len(existing) == 0 {
		log.Fatal("no buckets found, run migrations first")
	}
	for _, b := range existing {
		if len(b.Tasks) > 0 {
			log.Printf("bucket %q already has tasks, skipping seed", b.Name)
			return
		}
	}

	high := domain.PriorityHigh
	medium := domain.PriorityMedium
	seed := []domain.Task{
		{BucketID: existing[0].ID, Title: "Sketch the board layout", Assignee: "ana", Priority: &high},
		{BucketID: existing[0].ID, Title: "Write the move endpoint", Priority: &medium},
		{BucketID: existing[0].ID, Title: "Hook up the drag handlers"},
		{BucketID: existing[1].ID, Title: "Seed demo data", Assignee: "ben"},
	}
	for i := range seed {
		if err := tasks.Create(ctx, &seed[i]); err != nil {
			log.Fatalf("create task %q: %v", seed[i].Title, err)
		}
		log.Printf("created task id=%d bucket=%d position=%d", seed[i].ID, seed[i].BucketID, seed[i].Position)
	}
}
