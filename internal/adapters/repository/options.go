package repository

// Option applies a configuration option to the FileStore.
type Option func(*FileStore)

// WithIDGenerator sets how ids are assigned to snapshots that lack one.
func WithIDGenerator(fn func() string) Option {
	return func(s *FileStore) {
		if fn != nil {
			s.newID = fn
		}
	}
}
