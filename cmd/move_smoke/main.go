package main

import (
	"context"
	"log"
	"os"
	"time"

	"kanban_board/internal/client"
)

// Drives a full optimistic drag against a running server: fetch the board,
// drag the first task into the next bucket, drop, and verify the projection
// matches a fresh fetch.
func main() {
	base := os.Getenv("API_BASE_URL")
	if base == "" {
		base = "http://localhost:8080"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	api := client.New(base)
	buckets, err := api.Buckets(ctx)
	if err != nil {
		log.Fatalf("fetch buckets: %v", err)
	}
	if len(buckets) < 2 {
		log.Fatal("need at least two buckets")
	}

	var taskID, sourceBucket int64
	for _, b := range buckets {
		if len(b.Tasks) > 0 {
			taskID = b.Tasks[0].ID
			sourceBucket = b.ID
			break
		}
	}
	if taskID == 0 {
		log.Fatal("board has no tasks, run seed_board first")
	}
	var target int64
	for _, b := range buckets {
		if b.ID != sourceBucket {
			target = b.ID
			break
		}
	}

	rec := client.NewReconciler(api, client.NewBoard(buckets))
	if err := rec.BeginDrag(taskID); err != nil {
		log.Fatalf("begin drag: %v", err)
	}
	if err := rec.DragOver(target, 0); err != nil {
		log.Fatalf("drag over: %v", err)
	}
	task, err := rec.Drop(ctx, target, 0)
	if err != nil {
		log.Fatalf("drop: %v", err)
	}
	log.Printf("moved task %d to bucket %d position %d", task.ID, task.BucketID, task.Position)

	fresh, err := api.Buckets(ctx)
	if err != nil {
		log.Fatalf("refetch buckets: %v", err)
	}
	for _, b := range fresh {
		for i, t := range b.Tasks {
			if t.Position != i {
				log.Fatalf("bucket %d not dense: task %d at position %d, index %d", b.ID, t.ID, t.Position, i)
			}
		}
	}
	log.Print("board dense after move, smoke ok")
}
