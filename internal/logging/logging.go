package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger bundles a logger with the level that controls it, so the verbosity can be
// changed after construction.
type Logger struct {
	*zap.Logger
	Level zap.AtomicLevel
}

// New builds a production logger writing JSON to stderr; verbose enables Debug.
func New(verbose bool) (*Logger, error) {
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{"stderr"}
	config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		config.Level.SetLevel(zapcore.DebugLevel)
	}
	l, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: failed to initialize logger: %w", err)
	}
	return &Logger{Logger: l, Level: config.Level}, nil
}

// Sync flushes buffered entries, ignoring the error stderr gives on some platforms.
func (l *Logger) Sync() {
	_ = l.Logger.Sync()
}
