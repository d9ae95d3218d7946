package prediction

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithDefaultOdds sets the odds used for entries stored without a quote.
func WithDefaultOdds(v float64) Option {
	return func(e *Evaluator) {
		if v > 0 {
			e.defaultOdds = v
		}
	}
}
