// Package logx wires ermine's runtime logging: a slog.Logger that
// writes structured entries to a lumberjack-rotated file while also
// echoing human-readable lines to the terminal, colorized with
// lipgloss/termenv when the console supports it. This mirrors the
// daemonLogger wrapper the teacher codebase builds around slog for
// its own background processes.
package logx

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is a thin wrapper around slog.Logger that also mirrors
// warnings and errors to stderr in color, independent of the
// configured slog level. Mining runs are short-lived CLI invocations,
// not daemons, so the console mirror is how a user normally sees
// progress; the file is for later inspection with --log-file.
type Logger struct {
	slog    *slog.Logger
	console io.Writer
	color   bool

	warnStyle lipgloss.Style
	errStyle  lipgloss.Style
	okStyle   lipgloss.Style
}

// New builds a Logger that writes to both logFile (rotated via
// lumberjack) and the console. colorMode is one of "auto", "always",
// "never" (spec.md §6.2 --color).
func New(logFile string, verbose bool, colorMode string) (*Logger, error) {
	var fileWriter io.Writer
	if logFile != "" {
		if err := os.MkdirAll(dirOf(logFile), 0o755); err != nil {
			return nil, fmt.Errorf("logx: creating log directory: %w", err)
		}
		fileWriter = &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
	} else {
		fileWriter = io.Discard
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(fileWriter, &slog.HandlerOptions{Level: level})

	color := resolveColor(colorMode)
	return &Logger{
		slog:      slog.New(handler),
		console:   os.Stderr,
		color:     color,
		warnStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		errStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		okStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	}, nil
}

func resolveColor(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return termenv.NewOutput(os.Stderr).ColorProfile() != termenv.Ascii
	}
}

func (l *Logger) style(s lipgloss.Style, msg string) string {
	if !l.color {
		return msg
	}
	return s.Render(msg)
}

// Info logs a structured info-level entry and echoes it plainly.
func (l *Logger) Info(msg string, args ...any) {
	l.slog.Info(msg, args...)
	fmt.Fprintln(l.console, msg)
}

// Debug logs only when verbose; never echoed to the console.
func (l *Logger) Debug(msg string, args ...any) {
	l.slog.Debug(msg, args...)
}

// Warn logs a warning and echoes it to the console in yellow.
func (l *Logger) Warn(msg string, args ...any) {
	l.slog.Warn(msg, args...)
	fmt.Fprintln(l.console, l.style(l.warnStyle, "warning: "+msg))
}

// Error logs an error and echoes it to the console in bold red.
func (l *Logger) Error(msg string, err error, args ...any) {
	args = append(args, "error", err)
	l.slog.Error(msg, args...)
	fmt.Fprintln(l.console, l.style(l.errStyle, fmt.Sprintf("error: %s: %v", msg, err)))
}

// Success echoes a green confirmation line; not logged to the file,
// since it carries no diagnostic value beyond the session.
func (l *Logger) Success(msg string) {
	fmt.Fprintln(l.console, l.style(l.okStyle, msg))
}

func dirOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i]
		}
	}
	return "."
}
