// pattern: Imperative Shell

package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds configuration for the log Manager.
type Config struct {
	FilePath   string // Path to log file
	MaxSizeMB  int    // Max size in MB before rotation
	MaxBackups int    // Max number of old log files to keep
	MaxAgeDays int    // Max days to keep old log files
	Level      string // Minimum log level (debug, info, warn, error)
}

// Provider is an interface for obtaining scoped loggers.
// Both Manager and TestManager implement this interface.
type Provider interface {
	For(scope string) *ScopedLogger
}

// ScopedLogger provides a logger with scope context and structured fields.
// This is the public type returned by Manager.For().
type ScopedLogger struct {
	slog  *slog.Logger
	zap   *zap.Logger
	scope string
}

// Info logs at INFO level.
func (l *ScopedLogger) Info(msg string, args ...any) {
	if l.slog != nil {
		l.slog.Info(msg, args...)
	}
}

// Debug logs at DEBUG level.
func (l *ScopedLogger) Debug(msg string, args ...any) {
	if l.slog != nil {
		l.slog.Debug(msg, args...)
	}
}

// Warn logs at WARN level.
func (l *ScopedLogger) Warn(msg string, args ...any) {
	if l.slog != nil {
		l.slog.Warn(msg, args...)
	}
}

// Error logs at ERROR level.
func (l *ScopedLogger) Error(msg string, args ...any) {
	if l.slog != nil {
		l.slog.Error(msg, args...)
	}
}

// With returns a new ScopedLogger with the given key-value pairs added to all entries.
func (l *ScopedLogger) With(args ...any) *ScopedLogger {
	if l.slog == nil {
		return l
	}
	return &ScopedLogger{
		slog:  l.slog.With(args...),
		zap:   l.zap,
		scope: l.scope,
	}
}

// Scope returns the logger's hierarchical scope.
func (l *ScopedLogger) Scope() string {
	return l.scope
}

// Manager manages scoped loggers writing to a rotated JSON log file.
type Manager struct {
	baseZap    *zap.Logger
	fileWriter *lumberjack.Logger
	loggers    map[string]*ScopedLogger
	mu         sync.RWMutex
	level      zapcore.Level
}

// NewManager creates a new log manager with the given configuration.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.FilePath == "" {
		return nil, fmt.Errorf("FilePath is required")
	}

	if cfg.MaxSizeMB == 0 {
		cfg.MaxSizeMB = 10
	}
	if cfg.MaxBackups == 0 {
		cfg.MaxBackups = 5
	}
	if cfg.MaxAgeDays == 0 {
		cfg.MaxAgeDays = 7
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
		return nil, err
	}

	fileWriter := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.EpochTimeEncoder
	encoderCfg.EncodeLevel = zapcore.LowercaseLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(fileWriter),
		level,
	)

	return &Manager{
		baseZap:    zap.New(core),
		fileWriter: fileWriter,
		loggers:    make(map[string]*ScopedLogger),
		level:      level,
	}, nil
}

// For returns a logger for the given scope.
// Scopes are hierarchical (e.g., "worktree", "ecosystem.install").
// Loggers are cached and reused for the same scope.
func (m *Manager) For(scope string) *ScopedLogger {
	m.mu.RLock()
	if logger, ok := m.loggers[scope]; ok {
		m.mu.RUnlock()
		return logger
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if logger, ok := m.loggers[scope]; ok {
		return logger
	}

	zapLogger := m.baseZap.Named(scope)

	slogHandler := &zapSlogHandler{
		zap:   zapLogger,
		level: m.level,
	}

	logger := &ScopedLogger{
		slog:  slog.New(slogHandler),
		zap:   zapLogger,
		scope: scope,
	}

	m.loggers[scope] = logger
	return logger
}

// Sync flushes all buffered logs.
func (m *Manager) Sync() error {
	return m.baseZap.Sync()
}

// Close syncs and closes the log file.
func (m *Manager) Close() error {
	_ = m.Sync()
	return m.fileWriter.Close()
}

// zapSlogHandler adapts zap.Logger to the slog.Handler interface.
type zapSlogHandler struct {
	zap    *zap.Logger
	level  zapcore.Level
	attrs  []slog.Attr
	groups []string
}

func (h *zapSlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.slogToZapLevel(level) >= h.level
}

func (h *zapSlogHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]zap.Field, 0, r.NumAttrs()+len(h.attrs))

	for _, attr := range h.attrs {
		fields = append(fields, zap.Any(attr.Key, attr.Value.Any()))
	}

	r.Attrs(func(attr slog.Attr) bool {
		fields = append(fields, zap.Any(attr.Key, attr.Value.Any()))
		return true
	})

	switch r.Level {
	case slog.LevelDebug:
		h.zap.Debug(r.Message, fields...)
	case slog.LevelInfo:
		h.zap.Info(r.Message, fields...)
	case slog.LevelWarn:
		h.zap.Warn(r.Message, fields...)
	case slog.LevelError:
		h.zap.Error(r.Message, fields...)
	default:
		h.zap.Info(r.Message, fields...)
	}

	return nil
}

func (h *zapSlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	copy(newAttrs[len(h.attrs):], attrs)
	return &zapSlogHandler{
		zap:    h.zap,
		level:  h.level,
		attrs:  newAttrs,
		groups: h.groups,
	}
}

func (h *zapSlogHandler) WithGroup(name string) slog.Handler {
	newGroups := make([]string, len(h.groups)+1)
	copy(newGroups, h.groups)
	newGroups[len(h.groups)] = name
	return &zapSlogHandler{
		zap:    h.zap.Named(name),
		level:  h.level,
		attrs:  h.attrs,
		groups: newGroups,
	}
}

func (h *zapSlogHandler) slogToZapLevel(level slog.Level) zapcore.Level {
	switch {
	case level >= slog.LevelError:
		return zapcore.ErrorLevel
	case level >= slog.LevelWarn:
		return zapcore.WarnLevel
	case level >= slog.LevelInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}
