// Package logger provides the gateway's structured logging: a rotated,
// JSON-encoded application log and a dedicated, always-on audit log for
// security decisions (validator blocks, subprocess spawns, timeouts and
// kills).
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config configures both the application logger and the audit logger.
type Config struct {
	Level      string // debug, info, warning, error
	AppLogPath string // empty disables file output; stderr is always written
	AuditLogPath string
	MaxSizeMB    int
	MaxBackups   int
	MaxAgeDays   int
	Compress     bool
}

// DefaultConfig returns sane defaults for local/dev use.
func DefaultConfig() Config {
	return Config{
		Level:        "info",
		AuditLogPath: "logs/audit.log",
		MaxSizeMB:    100,
		MaxBackups:   10,
		MaxAgeDays:   30,
		Compress:     true,
	}
}

// Logger bundles the general-purpose application logger with a
// security-audit sink. Audit records are always written at INFO level
// regardless of the configured application level, since they are a
// compliance trail, not a debugging aid.
type Logger struct {
	app   *zap.Logger
	audit *zap.Logger
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// New builds a Logger from cfg. A file sink is added alongside stderr
// whenever the corresponding path is non-empty.
func New(cfg Config) (*Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	enc := zapcore.NewJSONEncoder(encoderConfig())

	appSinks := []zapcore.WriteSyncer{zapcore.AddSync(os.Stderr)}
	if cfg.AppLogPath != "" {
		appSinks = append(appSinks, zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.AppLogPath,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}))
	}
	appCore := zapcore.NewCore(enc, zapcore.NewMultiWriteSyncer(appSinks...), level)
	appLogger := zap.New(appCore, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))

	var auditCore zapcore.Core
	if cfg.AuditLogPath != "" {
		auditRotator := &lumberjack.Logger{
			Filename:   cfg.AuditLogPath,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		auditCore = zapcore.NewCore(enc, zapcore.AddSync(auditRotator), zapcore.InfoLevel)
	} else {
		auditCore = zapcore.NewCore(enc, zapcore.AddSync(os.Stderr), zapcore.InfoLevel)
	}
	auditLogger := zap.New(auditCore)

	return &Logger{app: appLogger, audit: auditLogger}, nil
}

// Named returns a sub-logger of the application logger with the given
// name attached, used for per-component loggers such as
// Named("session") or Named("registry").
func (l *Logger) Named(name string) *zap.Logger {
	return l.app.Named(name)
}

// Audit returns the logger dedicated to security-relevant events:
// validator block decisions, subprocess spawns, timeouts and kills.
func (l *Logger) Audit() *zap.Logger {
	return l.audit
}

// Sync flushes any buffered log entries on both sinks. Errors from
// syncing an already-closed stderr are expected and ignored by callers.
func (l *Logger) Sync() error {
	_ = l.app.Sync()
	_ = l.audit.Sync()
	return nil
}

// Nop returns a Logger that discards everything, used in tests.
func Nop() *Logger {
	return &Logger{app: zap.NewNop(), audit: zap.NewNop()}
}
