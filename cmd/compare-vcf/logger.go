package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func parseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	default:
		return zapcore.InfoLevel, usagef("invalid --loglevel %q: want debug, info or warn", s)
	}
}

// newLogger builds the console logger for one invocation. With a log file the
// records are appended there, next to the engine output, instead of stderr.
func newLogger(level, logFile string, stderr io.Writer) (*zap.Logger, func() error, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, nil, err
	}

	sink := zapcore.AddSync(stderr)
	closeFn := func() error { return nil }
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		sink = zapcore.AddSync(f)
		closeFn = f.Close
	}

	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), sink, lvl)

	logger := zap.New(core).Named("compare-vcf")
	return logger, func() error {
		_ = logger.Sync()
		return closeFn()
	}, nil
}
