package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelError
)

const (
	red    = "\033[0;31m"
	green  = "\033[0;32m"
	yellow = "\033[1;33m"
	blue   = "\033[0;34m"
	reset  = "\033[0m"
)

// ColorMode selects when output is colored: "auto", "always" or "never".
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode accepts auto, always or never (case-insensitive). An empty
// string means auto.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(strings.ToLower(s)); m {
	case "":
		return ColorAuto, nil
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	}
	return "", fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
}

// Enabled reports whether output written to w should be colored.
func (m ColorMode) Enabled(w io.Writer) bool {
	switch m {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Logger writes operator-facing status lines with a [LEVEL] prefix. Errors go
// to the error writer, everything else to the output writer.
type Logger struct {
	out, errOut io.Writer
	level       Level
	color       ColorMode
}

// New returns a Logger at LevelInfo.
func New(out, errOut io.Writer, color ColorMode) *Logger {
	return &Logger{out: out, errOut: errOut, level: LevelInfo, color: color}
}

// SetLevel changes the minimum level that is printed.
func (l *Logger) SetLevel(level Level) {
	l.level = level
}

func (l *Logger) print(w io.Writer, c, tag, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if l.color.Enabled(w) {
		fmt.Fprintf(w, "%s[%s]%s %s\n", c, tag, reset, msg)
		return
	}
	fmt.Fprintf(w, "[%s] %s\n", tag, msg)
}

func (l *Logger) Debugf(format string, args ...any) {
	if l.level <= LevelDebug {
		l.print(l.out, blue, "DEBUG", format, args...)
	}
}

func (l *Logger) Infof(format string, args ...any) {
	if l.level <= LevelInfo {
		l.print(l.out, blue, "INFO", format, args...)
	}
}

func (l *Logger) Successf(format string, args ...any) {
	if l.level <= LevelInfo {
		l.print(l.out, green, "SUCCESS", format, args...)
	}
}

func (l *Logger) Warnf(format string, args ...any) {
	if l.level <= LevelInfo {
		l.print(l.out, yellow, "WARNING", format, args...)
	}
}

func (l *Logger) Errorf(format string, args ...any) {
	l.print(l.errOut, red, "ERROR", format, args...)
}

// Printf writes a plain line to the output writer, without a prefix.
func (l *Logger) Printf(format string, args ...any) {
	if l.level <= LevelInfo {
		fmt.Fprintf(l.out, format, args...)
	}
}
