package prediction

import "github.com/okian/owarai/internal/domain/model"

// DefaultBrands are the competitions open for predictions.
func DefaultBrands() []string {
	return []string{"M-1", "R-1", "THE SECOND", "キングオブコント"}
}

// Eligibility decides whether an event accepts predictions.
type Eligibility struct {
	brands map[string]struct{}
}

// NewEligibility builds a rule over brands. An empty list uses DefaultBrands.
func NewEligibility(brands ...string) *Eligibility {
	if len(brands) == 0 {
		brands = DefaultBrands()
	}
	e := &Eligibility{brands: make(map[string]struct{}, len(brands))}
	for _, b := range brands {
		if b != "" {
			e.brands[b] = struct{}{}
		}
	}
	return e
}

// IsPredictable reports whether ev belongs to one of the open brands.
func (e *Eligibility) IsPredictable(ev model.Event) bool {
	if ev.Brand == "" {
		return false
	}
	_, ok := e.brands[ev.Brand]
	return ok
}
