// Package logger provides centralized logging for the control board app.
//
// It is a process-wide facility: call InitWith once at startup
// before the tray or any poller starts. Until then every call is a no-op,
// so packages may log unconditionally.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	logFileName = "controlboard.log"
	timeLayout  = "2006-01-02 15:04:05"
)

var (
	logMutex  sync.RWMutex
	base      = zap.NewNop()
	sugar     = base.Sugar()
	logFile   *os.File
	logPath   string
	level     = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	listeners []func(string)
	listMutex sync.RWMutex
)

// Options controls where and how much is logged.
type Options struct {
	Dir            string // defaults to the platform log directory
	Level          string // debug, info, warn, error
	Console        bool   // also write to stderr
	RedirectStderr bool   // send stderr (and panics) into the log file
}

// InitWith initializes the logger. An empty Dir selects the platform log
// directory. Calling it again replaces the previous configuration.
func InitWith(opts Options) error {
	if opts.Level != "" {
		if err := SetLevel(opts.Level); err != nil {
			return err
		}
	}

	dir := opts.Dir
	if dir == "" {
		dir = getLogDir()
	}
	path := filepath.Join(dir, logFileName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout(timeLayout)
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(f), level),
	}
	if opts.Console {
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stderr), level))
	}

	l := zap.New(zapcore.NewTee(cores...), zap.Hooks(notifyListeners))

	logMutex.Lock()
	old := logFile
	logFile = f
	logPath = path
	base = l
	sugar = l.Sugar()
	logMutex.Unlock()

	if old != nil {
		old.Close()
	}

	if opts.RedirectStderr && !opts.Console {
		if err := redirectStderr(f); err != nil {
			Warning("stderr not redirected: %v", err)
		}
	}
	return nil
}

// Close flushes and closes the log file. Logging afterwards is a no-op.
func Close() {
	logMutex.Lock()
	defer logMutex.Unlock()
	_ = base.Sync()
	base = zap.NewNop()
	sugar = base.Sugar()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// SetLevel changes the minimum level at runtime.
func SetLevel(name string) error {
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return nil
}

// L returns the structured logger for callers that want typed fields.
func L() *zap.Logger {
	logMutex.RLock()
	defer logMutex.RUnlock()
	return base
}

// Named returns a child logger tagged with a component name.
func Named(name string) *zap.Logger {
	return L().Named(name)
}

// AddListener adds a callback that receives every formatted log line.
func AddListener(fn func(string)) {
	listMutex.Lock()
	defer listMutex.Unlock()
	listeners = append(listeners, fn)
}

func notifyListeners(e zapcore.Entry) error {
	line := fmt.Sprintf("[%s] %s: %s", e.Time.Format(timeLayout), e.Level.CapitalString(), e.Message)
	listMutex.RLock()
	for _, fn := range listeners {
		go fn(line)
	}
	listMutex.RUnlock()
	return nil
}

func s() *zap.SugaredLogger {
	logMutex.RLock()
	defer logMutex.RUnlock()
	return sugar
}

// Info logs an info message
func Info(format string, args ...interface{}) {
	s().Infof(format, args...)
}

// Error logs an error message
func Error(format string, args ...interface{}) {
	s().Errorf(format, args...)
}

// Debug logs a debug message
func Debug(format string, args ...interface{}) {
	s().Debugf(format, args...)
}

// Warning logs a warning message
func Warning(format string, args ...interface{}) {
	s().Warnf(format, args...)
}

// Status logs a health transition of the board or network-table link.
func Status(format string, args ...interface{}) {
	s().With("event", "status").Infof(format, args...)
}

// GetLogPath returns the path to the log file
func GetLogPath() string {
	logMutex.RLock()
	defer logMutex.RUnlock()
	return logPath
}

// Recover should be deferred at the top of every goroutine to catch panics.
// Usage: go func() { defer logger.Recover("myGoroutine"); ... }()
func Recover(name string) {
	if r := recover(); r != nil {
		stack := string(debug.Stack())
		Error("PANIC in %s: %v\n%s", name, r, stack)
		_ = L().Sync()
	}
}

// SafeGo launches a goroutine with panic recovery.
func SafeGo(name string, fn func()) {
	go func() {
		defer Recover(name)
		fn()
	}()
}

// ReadLogs reads the log file contents
func ReadLogs() (string, error) {
	path := GetLogPath()
	if path == "" {
		path = filepath.Join(getLogDir(), logFileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ClearLogs truncates the log file
func ClearLogs() error {
	logMutex.Lock()
	defer logMutex.Unlock()

	if logFile == nil {
		return nil
	}
	_ = base.Sync()
	return logFile.Truncate(0)
}

// Timestamp formats t the way log lines do.
func Timestamp(t time.Time) string {
	return t.Format(timeLayout)
}
