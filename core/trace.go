package core

import (
	"os"

	"github.com/charmbracelet/log"
)

// tracer emits debug events for pipeline construction, spawn, reap,
// capture and sweep. Silent unless PISH_TRACE is set in the environment
// at startup.
type tracer struct {
	logger *log.Logger
}

func newTracer() *tracer {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "pish"})
	if os.Getenv(EnvTrace) != "" {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.ErrorLevel)
	}
	return &tracer{logger: logger}
}

func (t *tracer) log(event string, keyvals ...interface{}) {
	t.logger.Debug(event, keyvals...)
}
