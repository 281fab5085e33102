package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// New creates a zap logger suited to the given environment.
// "production" yields JSON output at info level; anything else a development logger.
func New(appEnv string) (*zap.Logger, error) {
	var (
		log *zap.Logger
		err error
	)
	if appEnv == "production" {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return log, nil
}

// NewNamed creates a logger for appEnv named after the service.
func NewNamed(appEnv, name string) (*zap.Logger, error) {
	log, err := New(appEnv)
	if err != nil {
		return nil, err
	}
	return log.Named(name), nil
}
