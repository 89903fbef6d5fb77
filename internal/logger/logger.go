// Package logger provides the levelled console logger used by the CLI and
// the optional diagnostics sink accepted by the search engines.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Logger is the diagnostics sink engines accept. A nil Logger means silent.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

const (
	levelDebug = iota
	levelInfo
	levelWarn
	levelError
)

// ConsoleLogger writes timestamped lines to a writer. Safe for concurrent use.
type ConsoleLogger struct {
	mu       sync.Mutex
	w        io.Writer
	level    int
	useColor bool
	now      func() time.Time
}

// NewConsoleLogger creates a logger writing messages at or above level
// ("debug", "info", "warn", "error"; anything else means info).
func NewConsoleLogger(w io.Writer, level string) *ConsoleLogger {
	return &ConsoleLogger{
		w:        w,
		level:    parseLevel(level),
		useColor: isTerminal(w),
		now:      time.Now,
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return !color.NoColor && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

func parseLevel(level string) int {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return levelDebug
	case "warn", "warning":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

var levelColors = map[int]*color.Color{
	levelDebug: color.New(color.FgHiBlack),
	levelInfo:  color.New(color.FgCyan),
	levelWarn:  color.New(color.FgYellow),
	levelError: color.New(color.FgRed),
}

var levelNames = map[int]string{
	levelDebug: "DEBUG",
	levelInfo:  "INFO",
	levelWarn:  "WARN",
	levelError: "ERROR",
}

func (l *ConsoleLogger) logf(level int, format string, args ...any) {
	if l == nil || l.w == nil || level < l.level {
		return
	}
	name := levelNames[level]
	if l.useColor {
		name = levelColors[level].Sprint(name)
	}
	msg := fmt.Sprintf(format, args...)

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, "[%s] %s %s\n", l.now().Format("15:04:05"), name, msg)
}

func (l *ConsoleLogger) Debugf(format string, args ...any) { l.logf(levelDebug, format, args...) }
func (l *ConsoleLogger) Infof(format string, args ...any)  { l.logf(levelInfo, format, args...) }
func (l *ConsoleLogger) Warnf(format string, args ...any)  { l.logf(levelWarn, format, args...) }
func (l *ConsoleLogger) Errorf(format string, args ...any) { l.logf(levelError, format, args...) }

// Nop discards everything.
type Nop struct{}

func (Nop) Debugf(string, ...any) {}
func (Nop) Infof(string, ...any)  {}
func (Nop) Warnf(string, ...any)  {}
func (Nop) Errorf(string, ...any) {}

// OrNop returns l, or a Nop logger when l is nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return Nop{}
	}
	return l
}
