package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures New.
type Options struct {
	// Debug lowers the level from Info to Debug.
	Debug bool
	// File, when set, also writes to a rotating log file.
	File string
	// Quiet drops the stderr sink.
	Quiet bool
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:       "ts",
		LevelKey:      "level",
		NameKey:       "logger",
		CallerKey:     "caller",
		MessageKey:    "msg",
		StacktraceKey: "stack",
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel:   zapcore.CapitalLevelEncoder,
		EncodeTime:    zapcore.ISO8601TimeEncoder,
		EncodeCaller:  zapcore.ShortCallerEncoder,
		EncodeName:    zapcore.FullNameEncoder,
	}
}

// Rotator returns the rolling file writer used for File: 10MB per file,
// 3 backups, 7 days.
func Rotator(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     7,
	}
}

// New builds the process logger. The returned close func syncs and closes
// the file sink.
func New(opts Options) (*zap.Logger, func()) {
	level := zapcore.InfoLevel
	if opts.Debug {
		level = zapcore.DebugLevel
	}
	return NewWithSinks(level, opts)
}

func NewWithSinks(level zapcore.Level, opts Options) (*zap.Logger, func()) {
	encoder := zapcore.NewConsoleEncoder(encoderConfig())

	var cores []zapcore.Core
	if !opts.Quiet {
		cores = append(cores, zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), level))
	}

	var rot *lumberjack.Logger
	if opts.File != "" {
		rot = Rotator(opts.File)
		cores = append(cores, zapcore.NewCore(encoder.Clone(), zapcore.AddSync(rot), level))
	}

	if len(cores) == 0 {
		return zap.NewNop(), func() {}
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	return logger, func() {
		_ = logger.Sync()
		if rot != nil {
			_ = rot.Close()
		}
	}
}
