package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/decred/slog"
	"github.com/jrick/logrotate/rotator"
)

// LogLevel selects which messages are printed.  A level also prints every
// level with a lower value.
type LogLevel int

const (
	LogLevelError   LogLevel = 0
	LogLevelWarning LogLevel = 1
	LogLevelInfo    LogLevel = 2
	LogLevelDebug   LogLevel = 3
)

// Subsystem is the tag printed on every line.
const Subsystem = "LYRA"

// logWriter copies every line to the console and, when set, to the log file
// and the rotator.
type logWriter struct{}

func (logWriter) Write(p []byte) (int, error) {
	outMtx.Lock()
	defer outMtx.Unlock()

	console.Write(p)
	if logFile != nil {
		logFile.Write(p)
	}
	if logRotator != nil {
		logRotator.Write(p)
	}
	return len(p), nil
}

var (
	outMtx     sync.Mutex
	console    io.Writer = os.Stderr
	logFile    io.Writer
	logRotator *rotator.Rotator

	backend = slog.NewBackend(logWriter{})
	log     = backend.Logger(Subsystem)

	logLevel = LogLevelError
)

func init() {
	log.SetLevel(slogLevel(logLevel))
}

// slogLevel maps a LogLevel onto the backend level.
func slogLevel(l LogLevel) slog.Level {
	switch {
	case l <= LogLevelError:
		return slog.LevelError
	case l == LogLevelWarning:
		return slog.LevelWarn
	case l == LogLevelInfo:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

// SetLogLevel sets the level from one of the LogLevel values.  Anything
// above LogLevelDebug also means debug.
func SetLogLevel(newLevel int) {
	logLevel = LogLevel(newLevel)
	log.SetLevel(slogLevel(logLevel))
}

// SetLogFile adds w as a second destination next to the console.
func SetLogFile(w io.Writer) {
	outMtx.Lock()
	logFile = w
	outMtx.Unlock()
}

// SetConsole replaces the console destination.  A nil writer discards
// console output.
func SetConsole(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	outMtx.Lock()
	console = w
	outMtx.Unlock()
}

// InitLogRotator starts writing to a size-rotated file at path, keeping three
// old rolls of roughly 10 MB each.
func InitLogRotator(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	r, err := rotator.New(path, 10*1024, false, 3)
	if err != nil {
		return fmt.Errorf("failed to create file rotator: %w", err)
	}

	outMtx.Lock()
	old := logRotator
	logRotator = r
	outMtx.Unlock()
	if old != nil {
		old.Close()
	}
	return nil
}

// CloseLogRotator flushes and closes the rotated log file, if any.
func CloseLogRotator() {
	outMtx.Lock()
	r := logRotator
	logRotator = nil
	outMtx.Unlock()
	if r != nil {
		r.Close()
	}
}

// Fatalln, Fatalf and Fatal log at critical level, close the rotated log
// and exit with status 1.
func Fatalln(args ...interface{}) {
	log.Critical(args...)
	CloseLogRotator()
	os.Exit(1)
}

func Fatalf(format string, args ...interface{}) {
	log.Criticalf(format, args...)
	CloseLogRotator()
	os.Exit(1)
}

func Fatal(args ...interface{}) {
	log.Critical(args...)
	CloseLogRotator()
	os.Exit(1)
}

// Debugf, Infof, Warnf and Errorf log a formatted line at their level.
func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

func Infof(format string, args ...interface{}) {
	log.Infof(format, args...)
}

func Warnf(format string, args ...interface{}) {
	log.Warnf(format, args...)
}

func Errorf(format string, args ...interface{}) {
	log.Errorf(format, args...)
}

// The backend already separates operands with spaces and ends each line, so
// the ln and plain variants print the same way.

func Debugln(args ...interface{}) { log.Debug(args...) }

func Infoln(args ...interface{}) { log.Info(args...) }

func Warnln(args ...interface{}) { log.Warn(args...) }

func Errorln(args ...interface{}) { log.Error(args...) }

func Debug(args ...interface{}) { log.Debug(args...) }

func Info(args ...interface{}) { log.Info(args...) }

func Warn(args ...interface{}) { log.Warn(args...) }

func Error(args ...interface{}) { log.Error(args...) }

// DebugEnabled reports whether debug lines are printed, so callers can skip
// building expensive arguments.
func DebugEnabled() bool {
	return log.Level() <= slog.LevelDebug
}

// SetupTestLogs prints everything, for use from tests.
func SetupTestLogs() {
	SetLogLevel(int(LogLevelDebug))
}
