package usecase

import (
	"liveaboard-service/pkg/logger"
	"liveaboard-service/pkg/metrics"
)

// nopLogger keeps test output quiet.
type nopLogger struct{}

func (nopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Error(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Fatal(msg string, keysAndValues ...interface{}) {}
func (l nopLogger) With(keysAndValues ...interface{}) logger.Logger {
	return l
}

// Prometheus collectors register globally, so the package shares one set.
var testMetrics = metrics.NewMetrics("usecase_test")
