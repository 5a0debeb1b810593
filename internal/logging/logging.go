// Package logging is a thin wrapper around a zap sugared logger, giving the
// rest of vtd a single place to construct and configure it.
package logging

import "go.uber.org/zap"

// New builds a sugared logger. debug enables zap's development config
// (human-readable, debug level); otherwise it builds the production config
// (JSON, info level).
func New(debug bool) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

// Noop returns a logger that discards everything, for tests and for any
// caller that doesn't want operational logging.
func Noop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
