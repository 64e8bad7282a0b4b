// Package logger provides structured logging functionality using the Uber
// zap logging library.
package logger

import (
	"errors"
	"os"

	"go.uber.org/zap"
)

// Init builds a SugaredLogger with the given level. The sugared API is
// sufficient here; the service logs little and never on the hot path.
func Init(level string) (*zap.SugaredLogger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = lvl
	zl, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return zl.Sugar(), nil
}

// Sync flushes any buffered log entries. It should be called on shutdown.
func Sync(log *zap.SugaredLogger) error {
	if err := log.Sync(); err != nil && !errors.Is(err, os.ErrInvalid) {
		return err
	}
	return nil
}
