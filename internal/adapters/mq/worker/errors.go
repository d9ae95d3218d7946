package worker

import "errors"

// ErrShutdownTimeout is returned when workers do not drain the queue in time.
var ErrShutdownTimeout = errors.New("worker pool shutdown timed out")
