package queue

import "errors"

// ErrQueueFull is reported by callers when a job could not be enqueued.
var ErrQueueFull = errors.New("settlement queue full")
