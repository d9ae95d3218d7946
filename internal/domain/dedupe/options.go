package dedupe

// Option configures a ledger.
type Option func(*memoryLedger)

// WithMaxSize caps the number of remembered ids. Zero or negative means
// unbounded.
func WithMaxSize(maxSize int) Option {
	return func(l *memoryLedger) {
		l.maxSize = maxSize
	}
}
