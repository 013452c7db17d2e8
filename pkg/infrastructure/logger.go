package infrastructure

import "go.uber.org/zap"

// NewLogger returns a JSON production logger for env "production" and a
// console development logger otherwise.
func NewLogger(env string) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
