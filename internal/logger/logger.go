// Package logger wraps zap with a small key/value API. The TUI owns the
// terminal, so logs go to a file or nowhere.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects the level and destination of diagnostic logs.
type Config struct {
	Level string `yaml:"level" env:"LINGUA_LOG_LEVEL" env-default:"info"`
	// File is the log destination. "" uses the default state path;
	// "off" discards all logs.
	File string `yaml:"file" env:"LINGUA_LOG_FILE"`
}

type Logger struct {
	SugaredLogger *zap.SugaredLogger
}

// New builds a JSON file logger from cfg.
func New(cfg Config) (*Logger, error) {
	if strings.EqualFold(cfg.File, "off") {
		return Nop(), nil
	}

	path := cfg.File
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(parseLevel(cfg.Level))
	zcfg.OutputPaths = []string{path}
	zcfg.ErrorOutputPaths = []string{path}
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	zl, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return &Logger{SugaredLogger: zl.Sugar()}, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// FromZap wraps an existing zap logger, e.g. zaptest's in tests.
func FromZap(zl *zap.Logger) *Logger {
	return &Logger{SugaredLogger: zl.Sugar()}
}

// DefaultPath resolves $XDG_STATE_HOME/lingua/lingua.log, falling back to
// ~/.local/state.
func DefaultPath() (string, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "lingua", "lingua.log"), nil
}

func parseLevel(s string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func (l *Logger) Sync() {
	_ = l.SugaredLogger.Sync()
}

func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Debugw(msg, keysAndValues...)
}
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Infow(msg, keysAndValues...)
}
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Warnw(msg, keysAndValues...)
}
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Errorw(msg, keysAndValues...)
}
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.With(keysAndValues...)}
}
