package domain

import "errors"

var (
	ErrTaskNotFound   = errors.New("task not found")
	ErrBucketNotFound = errors.New("bucket not found")
)
