package gks

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Logger is the structured logger the workstation reports through.
// *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// LogMask selects which message channels are emitted.
type LogMask int

const (
	LogInfo  LogMask = 1
	LogWarn  LogMask = 2
	LogError LogMask = 4

	// DefaultLogMask reports errors only.
	DefaultLogMask = LogError

	// LogEnv is the environment variable holding the mask.
	LogEnv = "XGKS_LOG"
)

const logPrefix = "XGKS(CAIRO): "

// ParseLogMask parses a decimal mask.
func ParseLogMask(s string) (LogMask, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return DefaultLogMask, fmt.Errorf("invalid log mask %q: %w", s, err)
	}
	if n < 0 || n > int(LogInfo|LogWarn|LogError) {
		return DefaultLogMask, fmt.Errorf("log mask %d out of range", n)
	}
	return LogMask(n), nil
}

// LogMaskFromEnv reads the mask from XGKS_LOG. An unset or invalid value
// gives DefaultLogMask.
func LogMaskFromEnv() LogMask {
	v, ok := os.LookupEnv(LogEnv)
	if !ok {
		return DefaultLogMask
	}
	m, err := ParseLogMask(v)
	if err != nil {
		return DefaultLogMask
	}
	return m
}

func defaultLogger() Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

// msgLog applies the mask and channel prefixes in front of a Logger.
type msgLog struct {
	logger Logger
	mask   LogMask
}

func (l msgLog) info(format string, args ...any) {
	if l.mask&LogInfo != 0 {
		l.logger.Info(logPrefix + "Info: " + fmt.Sprintf(format, args...))
	}
}

func (l msgLog) warn(format string, args ...any) {
	if l.mask&LogWarn != 0 {
		l.logger.Warn(logPrefix + "Warning: " + fmt.Sprintf(format, args...))
	}
}

func (l msgLog) err(format string, args ...any) {
	if l.mask&LogError != 0 {
		l.logger.Error(logPrefix + "Error: " + fmt.Sprintf(format, args...))
	}
}

// unsupported reports an entry point the driver accepts but ignores.
func (l msgLog) unsupported(entry string) {
	l.warn("CAIRO%s: Don't support this feature", entry)
}
