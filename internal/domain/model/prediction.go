package model

import "time"

// PredictionType selects the win condition of a prediction.
type PredictionType string

// Supported prediction types.
const (
	PredictionWinner   PredictionType = "winner"
	PredictionTop3     PredictionType = "top3"
	PredictionFinalist PredictionType = "finalist"
)

// PredictionTypes lists the supported prediction types.
func PredictionTypes() []PredictionType {
	return []PredictionType{PredictionWinner, PredictionTop3, PredictionFinalist}
}

// Valid reports whether t is a supported prediction type.
func (t PredictionType) Valid() bool {
	switch t {
	case PredictionWinner, PredictionTop3, PredictionFinalist:
		return true
	}
	return false
}

// MaxSelections is how many performers a prediction of type t may name.
// Enforcing it is the caller's job.
func (t PredictionType) MaxSelections() int {
	switch t {
	case PredictionWinner:
		return 1
	case PredictionTop3:
		return 3
	case PredictionFinalist:
		return 5
	}
	return 0
}

// PredictionEntry is one bet inside a stored prediction. Odds are the value
// quoted at placement time and are never recomputed.
type PredictionEntry struct {
	PredictionType PredictionType `json:"predictionType" validate:"required,prediction_type"`
	PredictedIDs   []string       `json:"predictedComedianIds" validate:"required,min=1,dive,required"`
	BetPoints      int            `json:"betPoints"`
	Odds           float64        `json:"odds,omitempty" validate:"gte=0"`
}

// StoredPrediction is a user's prediction record for one event. Predictions
// holds the payload exactly as stored; it is decoded on use.
type StoredPrediction struct {
	ID          string    `koanf:"id" json:"id"`
	UserID      string    `koanf:"user_id" json:"user_id"`
	EventID     string    `koanf:"event_id" json:"event_id"`
	Predictions any       `koanf:"predictions" json:"predictions"`
	PaidOut     bool      `koanf:"paid_out" json:"paid_out"`
	CreatedAt   time.Time `koanf:"created_at" json:"created_at"`
}
