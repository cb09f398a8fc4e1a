package logger

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"studymanager/pkg/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Log *zap.Logger
var sugar *zap.SugaredLogger

const (
	defaultTraceID = "0"
)

type traceKey struct{}

func init() {
	// Create default development environment configuration
	defaultConfig := zap.NewDevelopmentConfig()
	defaultConfig.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	defaultConfig.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")

	defaultLogger, _ := defaultConfig.Build(zap.AddCallerSkip(1))
	Set(defaultLogger)
}

// Set replaces the global logger.
func Set(l *zap.Logger) {
	Log = l
	sugar = l.Sugar()
}

// Init initializes logger from config.GlobalConfig
func Init() error {
	var cfg config.LoggerConfig
	if config.GlobalConfig != nil {
		cfg = config.GlobalConfig.Logger
	}

	atomicLevel := zap.NewAtomicLevel()
	switch cfg.Level {
	case "debug":
		atomicLevel.SetLevel(zapcore.DebugLevel)
	case "warn":
		atomicLevel.SetLevel(zapcore.WarnLevel)
	case "error":
		atomicLevel.SetLevel(zapcore.ErrorLevel)
	default:
		atomicLevel.SetLevel(zapcore.InfoLevel)
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000"),
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var syncer zapcore.WriteSyncer
	switch cfg.Output {
	case "file", "both":
		file, err := openLogFile(cfg.File.Path)
		if err != nil {
			return err
		}
		if cfg.Output == "file" {
			syncer = zapcore.AddSync(file)
		} else {
			syncer = zapcore.NewMultiWriteSyncer(zapcore.AddSync(os.Stdout), zapcore.AddSync(file))
		}
	default: // console
		syncer = zapcore.AddSync(os.Stdout)
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		syncer,
		atomicLevel,
	)

	Set(zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)))
	return nil
}

func openLogFile(path string) (*os.File, error) {
	if path == "" {
		return nil, fmt.Errorf("logger file path is required for file output")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %v", err)
	}
	return file, nil
}

// WithTraceID returns a context carrying the trace id printed by the *Ctx helpers.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceKey{}, traceID)
}

// TraceID returns the trace id stored in ctx, or "0".
func TraceID(ctx context.Context) string {
	if ctx == nil {
		return defaultTraceID
	}
	if id, ok := ctx.Value(traceKey{}).(string); ok && id != "" {
		return id
	}
	return defaultTraceID
}

func defaultPrefix() string {
	return fmt.Sprintf("%s\t", defaultTraceID)
}

// Infof formats Info log
func Infof(format string, args ...interface{}) {
	sugar.Infof(defaultPrefix()+format, args...)
}

// Warnf formats Warn log
func Warnf(format string, args ...interface{}) {
	sugar.Warnf(defaultPrefix()+format, args...)
}

// Errorf formats Error log
func Errorf(format string, args ...interface{}) {
	sugar.Errorf(defaultPrefix()+format, args...)
}

func ctxPrefix(ctx context.Context) string {
	return fmt.Sprintf("%s\t", TraceID(ctx))
}

func DebugCtx(ctx context.Context, format string, args ...interface{}) {
	sugar.Debugf(ctxPrefix(ctx)+format, args...)
}

func InfoCtx(ctx context.Context, format string, args ...interface{}) {
	sugar.Infof(ctxPrefix(ctx)+format, args...)
}

func WarnCtx(ctx context.Context, format string, args ...interface{}) {
	sugar.Warnf(ctxPrefix(ctx)+format, args...)
}

func ErrorCtx(ctx context.Context, format string, args ...interface{}) {
	sugar.Errorf(ctxPrefix(ctx)+format, args...)
}

func FatalCtx(ctx context.Context, format string, args ...interface{}) {
	sugar.Fatalf(ctxPrefix(ctx)+format, args...)
}

// Sync flushes any buffered log entries
func Sync() error {
	return Log.Sync()
}
