package service

import "errors"

var (
	// ErrNilSnapshot is returned when an operation is given no snapshot.
	ErrNilSnapshot = errors.New("snapshot is nil")

	// ErrUnknownEvent is returned when an event id is not in the snapshot.
	ErrUnknownEvent = errors.New("unknown event")

	// ErrInvalidPredictionType is returned for prediction types other than
	// winner, top3 and finalist.
	ErrInvalidPredictionType = errors.New("invalid prediction type")

	// ErrNoSelection is returned when a quote or evaluation names no performer.
	ErrNoSelection = errors.New("no performer selected")

	// ErrSettlementCancelled is returned for a job whose context ended after
	// it was claimed. The claim is released.
	ErrSettlementCancelled = errors.New("settlement cancelled")

	// ErrStopped is returned by Settle after Stop.
	ErrStopped = errors.New("service stopped")
)
