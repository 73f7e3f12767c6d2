package cli

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logMaxSizeMB  = 5
	logMaxBackups = 3
)

// newLogger builds the command logger. Without --verbose, interactive
// commands get a no-op logger. Commands without a usable stderr (hook,
// sidebar) pass toFile and log to the rotated cove.log instead, at info
// level or debug with --verbose.
func newLogger(globals *Globals, toFile bool) *zap.Logger {
	verbose := globals != nil && globals.Verbose
	if toFile {
		if logger := newFileLogger(globals, verbose); logger != nil {
			return logger
		}
	}
	if !verbose {
		return zap.NewNop()
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	cfg.Encoding = "json"
	cfg.OutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func newFileLogger(globals *Globals, verbose bool) *zap.Logger {
	if globals == nil || globals.Config == nil || globals.Config.LogFile == "" {
		return nil
	}
	path := globals.Config.LogFile
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil
	}

	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	sink := zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    logMaxSizeMB,
		MaxBackups: logMaxBackups,
	})
	core := zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), sink, level)
	return zap.New(core).With(zap.Int("pid", os.Getpid()))
}
