// Package simlog provides structured logging for the simulation core using
// zerolog, adapted from the request-scoped logger pattern used elsewhere in
// this ecosystem for service code, trimmed down to what a deterministic,
// in-process kernel needs: run/tick/failure events, no request IDs.
package simlog

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const milliTimeFormat = "2006-01-02T15:04:05.000Z07:00"

var (
	initOnce sync.Once
	logger   zerolog.Logger
)

// Init configures the package-global logger based on the LOG_LEVEL
// environment variable (default "info"). Safe to call multiple times; only
// the first call takes effect.
func Init() {
	initOnce.Do(func() {
		zerolog.TimeFieldFormat = milliTimeFormat
		zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }

		level := zerolog.InfoLevel
		if raw := os.Getenv("LOG_LEVEL"); raw != "" {
			if parsed, err := zerolog.ParseLevel(raw); err == nil {
				level = parsed
			}
		}

		var out io.Writer = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: milliTimeFormat,
			NoColor:    os.Getenv("DEV") == "",
		}

		logger = zerolog.New(out).Level(level).With().Timestamp().Logger()
	})
}

// Get returns the package logger, initializing it with defaults if Init has
// not yet been called.
func Get() zerolog.Logger {
	Init()
	return logger
}

// ForRun returns a logger enriched with the run's fixed parameters, so every
// event emitted during one call to sim.Run can be correlated.
func ForRun(n, ticks int, seed int64, chunk int, topology string) zerolog.Logger {
	return Get().With().
		Int("n", n).
		Int("ticks", ticks).
		Int64("seed", seed).
		Int("chunk", chunk).
		Str("topology", topology).
		Logger()
}
