package store

import (
	"prospector/internal/platform/logger"
)

// Option adjusts a Store during Open
type Option func(*Store) error

// WithLogger routes subclient logging through log
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}
