package logger

import (
	"log"
	"strings"
	"sync/atomic"
)

type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var threshold atomic.Int32

func init() {
	threshold.Store(int32(LevelInfo))
}

// Init sets logging flags and the minimum level (called once from main).
func Init(level string) {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	SetLevel(ParseLevel(level))
}

// ParseLevel maps "debug", "info", "warn"/"warning" and "error" to a Level.
// Anything else is treated as info.
func ParseLevel(level string) Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func SetLevel(level Level) {
	threshold.Store(int32(level))
}

func Enabled(level Level) bool {
	return int32(level) >= threshold.Load()
}

func Debugf(format string, v ...any) {
	logf(LevelDebug, "[DEBUG] ", format, v...)
}

func Infof(format string, v ...any) {
	logf(LevelInfo, "[INFO] ", format, v...)
}

func Warnf(format string, v ...any) {
	logf(LevelWarn, "[WARN] ", format, v...)
}

func Errorf(format string, v ...any) {
	logf(LevelError, "[ERROR] ", format, v...)
}

func Fatalf(format string, v ...any) {
	log.Fatalf("[FATAL] "+format, v...)
}

func logf(level Level, prefix, format string, v ...any) {
	if !Enabled(level) {
		return
	}
	log.Printf(prefix+format, v...)
}
