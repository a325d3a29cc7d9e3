package bootstrap

import (
	"time"

	"github.com/kbukum/localai-stt/logger"
)

// Option customizes NewApp.
type Option func(*appOptions)

// appOptions holds only what callers set; zero values keep NewApp's
// defaults.
type appOptions struct {
	logger          *logger.Logger
	gracefulTimeout *time.Duration
}

func resolveOptions(opts []Option) *appOptions {
	o := new(appOptions)
	for _, apply := range opts {
		apply(o)
	}
	return o
}

// WithLogger makes l the App's logger. The global logger is then left as
// it is instead of being rebuilt from the config's logging section.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) { o.logger = l }
}

// WithGracefulTimeout bounds how long RunTask waits for components to stop
// once the task has returned.
func WithGracefulTimeout(d time.Duration) Option {
	return func(o *appOptions) { o.gracefulTimeout = &d }
}
