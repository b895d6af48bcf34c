// Package logger prints leveled, colour-prefixed log lines for one application component.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/maeln/r-astar/config"
)

// Logger writes lines like "[MAZE] 2025/01/02 15:04:05 [INFO] message".
type Logger struct {
	out *log.Logger
}

// New creates a logger whose prefix is printed in color.
func New(prefix string, color string, w io.Writer) (*Logger, error) {
	if w == nil {
		return nil, errors.New("logger: nil writer")
	}
	if prefix == "" {
		return nil, errors.New("logger: empty prefix")
	}

	return &Logger{
		out: log.New(w, fmt.Sprintf("%s[%s]%s ", color, prefix, config.ColorReset), log.LstdFlags),
	}, nil
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.out.Printf("%s[INFO]%s %s", config.LogInfoColor, config.LogColorReset, msg)
}

// Warning logs a recoverable problem.
func (l *Logger) Warning(msg string) {
	l.out.Printf("%s[WARNING]%s %s", config.LogWarningColor, config.LogColorReset, msg)
}

// Error logs a failure.
func (l *Logger) Error(msg string) {
	l.out.Printf("%s[ERROR]%s %s", config.LogErrorColor, config.LogColorReset, msg)
}
