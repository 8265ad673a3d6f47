// pattern: Imperative Shell

package logging

import (
	"bytes"
	"log/slog"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NopLogger returns a logger that discards all output.
// Use in tests or when logging is not configured.
func NopLogger() *ScopedLogger {
	return &ScopedLogger{
		slog:  nil, // nil slog means all logging is no-op
		zap:   nil,
		scope: "",
	}
}

// TestManager provides a log manager suitable for tests.
// It writes JSON entries to an in-memory buffer for verification.
type TestManager struct {
	buf     *lockedBuffer
	baseZap *zap.Logger
	loggers map[string]*ScopedLogger
	mu      sync.RWMutex
}

// NewTestManager creates a log manager for testing that writes to memory only.
func NewTestManager() *TestManager {
	buf := &lockedBuffer{}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.EpochTimeEncoder
	encoderCfg.EncodeLevel = zapcore.LowercaseLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(buf),
		zapcore.DebugLevel,
	)

	return &TestManager{
		buf:     buf,
		baseZap: zap.New(core),
		loggers: make(map[string]*ScopedLogger),
	}
}

// For returns a scoped logger for the given scope name.
// Named For() to match the production Manager API.
func (m *TestManager) For(scope string) *ScopedLogger {
	m.mu.RLock()
	if logger, ok := m.loggers[scope]; ok {
		m.mu.RUnlock()
		return logger
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	if logger, ok := m.loggers[scope]; ok {
		return logger
	}

	zapLogger := m.baseZap.Named(scope)
	slogHandler := &zapSlogHandler{
		zap:   zapLogger,
		level: zapcore.DebugLevel,
	}

	logger := &ScopedLogger{
		slog:  slog.New(slogHandler),
		zap:   zapLogger,
		scope: scope,
	}

	m.loggers[scope] = logger
	return logger
}

// Output returns everything logged so far as a single string.
func (m *TestManager) Output() string {
	return m.buf.String()
}

// lockedBuffer is a bytes.Buffer safe for concurrent writes.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
