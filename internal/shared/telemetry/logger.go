package telemetry

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	logger = mustDefault()
)

func mustDefault() *zap.Logger {
	l, err := New("production")
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// New builds a JSON logger writing to stdout with ts/level/msg keys.
// Non-production modes also log at debug level.
func New(mode string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	cfg.EncoderConfig.StacktraceKey = ""
	cfg.Sampling = nil
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "prod", "production":
	default:
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

// SetLogger replaces the process logger and returns the previous one.
func SetLogger(l *zap.Logger) *zap.Logger {
	if l == nil {
		l = zap.NewNop()
	}
	mu.Lock()
	defer mu.Unlock()
	prev := logger
	logger = l
	return prev
}

// Logger returns the process logger.
func Logger() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Sync flushes buffered entries.
func Sync() {
	_ = Logger().Sync()
}

// Debug writes a debug-level log line with the given fields.
func Debug(msg string, fields map[string]any) {
	Logger().Debug(msg, toZap(fields)...)
}

// Info writes an info-level log line with the given fields.
func Info(msg string, fields map[string]any) {
	Logger().Info(msg, toZap(fields)...)
}

// Warn writes a warn-level log line with the given fields.
func Warn(msg string, fields map[string]any) {
	Logger().Warn(msg, toZap(fields)...)
}

// Error writes an error-level log line with the given fields.
func Error(msg string, fields map[string]any) {
	Logger().Error(msg, toZap(fields)...)
}

func toZap(fields map[string]any) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		v := sanitize(k, fields[k])
		if err, ok := v.(error); ok {
			out = append(out, zap.String(k, err.Error()))
			continue
		}
		out = append(out, zap.Any(k, v))
	}
	return out
}

var (
	redactKeys = map[string]bool{"api_key": true, "authorization": true, "token": true, "password": true}
	hashKeys   = map[string]bool{"email": true}
)

// sanitize keeps secrets and contact details out of log output.
func sanitize(key string, v any) any {
	k := strings.ToLower(strings.TrimSpace(key))
	switch {
	case redactKeys[k]:
		return "[REDACTED]"
	case hashKeys[k]:
		s := strings.TrimSpace(fmt.Sprint(v))
		if s == "" {
			return ""
		}
		sum := sha256.Sum256([]byte(strings.ToLower(s)))
		return "sha256:" + hex.EncodeToString(sum[:])[:12]
	}
	return v
}
