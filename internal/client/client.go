package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"kanban_board/internal/domain"
)

// APIError is a non-2xx response from the board service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("board api: %d %s", e.StatusCode, e.Message)
}

// API is an HTTP client for the board service.
type API struct {
	base string
	http *http.Client
}

func New(baseURL string) *API {
	return &API{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// Buckets fetches the authoritative board.
func (a *API) Buckets(ctx context.Context) ([]domain.Bucket, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.base+"/api/v1/buckets", nil)
	if err != nil {
		return nil, err
	}
	var buckets []domain.Bucket
	if err := a.do(req, &buckets); err != nil {
		return nil, err
	}
	return buckets, nil
}

// MoveTask issues the move and returns the task's committed state.
func (a *API) MoveTask(ctx context.Context, taskID int64, mv domain.MoveRequest) (*domain.Task, error) {
	body, err := json.Marshal(mv)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/v1/tasks/%d/move", a.base, taskID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var task domain.Task
	if err := a.do(req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (a *API) do(req *http.Request, out any) error {
	res, err := a.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var payload struct {
			Error string `json:"error"`
		}
		raw, _ := io.ReadAll(res.Body)
		_ = json.Unmarshal(raw, &payload)
		return &APIError{StatusCode: res.StatusCode, Message: payload.Error}
	}
	return json.NewDecoder(res.Body).Decode(out)
}
