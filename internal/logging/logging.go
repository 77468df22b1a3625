// Package logging wraps a zap.SugaredLogger behind a small interface so
// the CLI in main.go can log input anomalies with page/bbox context
// without importing zap directly.
package logging

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mcudoc/refdoc/internal/geom"
)

// Logger is the logging surface exposed to the reconstruction pipeline.
// Warning reports a recoverable input anomaly (logged and swallowed);
// Error reports a structural violation that aborts processing of the
// current document but not the batch.
type Logger interface {
	Warning(doc string, page int, bbox geom.Rectangle, msg string, args ...any)
	Error(doc string, component string, invariant string, err error)
	Sync() error
}

type zapLogger struct {
	sugar *zap.SugaredLogger
}

// New builds a console logger at the given level ("debug", "info", or any
// other value for warn-and-above).
func New(level string) (Logger, error) {
	var cfg zap.Config
	switch level {
	case "debug":
		cfg = zap.NewDevelopmentConfig()
	default:
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "console"
		cfg.EncoderConfig.TimeKey = ""
		if level != "info" {
			cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		}
	}
	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return &zapLogger{sugar: l.Sugar()}, nil
}

func (z *zapLogger) Warning(doc string, page int, bbox geom.Rectangle, msg string, args ...any) {
	z.sugar.Warnw(fmt.Sprintf(msg, args...),
		"doc", doc, "page", page,
		"bbox", fmt.Sprintf("[%.1f,%.1f,%.1f,%.1f]", bbox.Left, bbox.Bottom, bbox.Right, bbox.Top),
	)
}

func (z *zapLogger) Error(doc string, component string, invariant string, err error) {
	z.sugar.Errorw(invariant, "doc", doc, "component", component, "err", err)
}

func (z *zapLogger) Sync() error {
	return z.sugar.Sync()
}

// Nop is a Logger that discards everything, used by callers (and tests)
// that have no console to report to.
type Nop struct{}

func (Nop) Warning(string, int, geom.Rectangle, string, ...any) {}
func (Nop) Error(string, string, string, error) {}
func (Nop) Sync() error { return nil }
