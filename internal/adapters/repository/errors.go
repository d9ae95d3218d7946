package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrSnapshotLoad = errors.New("snapshot load failed")
	ErrEmptyPath    = errors.New("snapshot path is empty")
)
