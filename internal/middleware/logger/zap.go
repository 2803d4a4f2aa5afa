package logger

import (
	"go.uber.org/zap"
)

// NewLogger builds the process-wide zap.Logger. Development config keeps
// console output readable; swap for zap.NewProduction() when shipping JSON
// to a collector.
func NewLogger() (*zap.Logger, error) {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return logger.With(zap.String("service", "trend-fetch")), nil
}
