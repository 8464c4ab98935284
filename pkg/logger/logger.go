package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu    sync.RWMutex
	sugar *zap.SugaredLogger
	debug bool
)

func init() {
	Init(os.Getenv("ENVIRONMENT"))
}

// Init rebuilds the package logger. Development gets a console encoder and
// debug output; everything else gets JSON at info level.
func Init(environment string) {
	var (
		base *zap.Logger
		err  error
	)

	if environment == "" || environment == "development" {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		base, err = cfg.Build(zap.AddCallerSkip(1))
	} else {
		base, err = zap.NewProduction(zap.AddCallerSkip(1))
	}
	if err != nil {
		base = zap.NewNop()
	}

	mu.Lock()
	sugar = base.Sugar()
	debug = environment == "" || environment == "development"
	mu.Unlock()
}

// Replace swaps the underlying logger; tests use it with zaptest/observer.
func Replace(l *zap.Logger) {
	mu.Lock()
	sugar = l.WithOptions(zap.AddCallerSkip(1)).Sugar()
	mu.Unlock()
}

func get() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

func Info(format string, v ...interface{}) {
	get().Infof(format, v...)
}

func Error(format string, v ...interface{}) {
	get().Errorf(format, v...)
}

func Warn(format string, v ...interface{}) {
	get().Warnf(format, v...)
}

// Fatal logs and exits the process.
func Fatal(format string, v ...interface{}) {
	get().Fatalf(format, v...)
}

func Debug(format string, v ...interface{}) {
	mu.RLock()
	enabled := debug
	mu.RUnlock()
	if enabled {
		get().Debugf(format, v...)
	}
}

// With returns a structured logger carrying the given key/value pairs.
func With(keysAndValues ...interface{}) *zap.SugaredLogger {
	return get().Desugar().WithOptions(zap.AddCallerSkip(-1)).Sugar().With(keysAndValues...)
}

func Sync() {
	_ = get().Sync()
}
