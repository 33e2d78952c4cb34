// Package logging configures the logrus logger shared by the CLI, server and persistence layers.
// The state engine itself never logs.
package logging

import (
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

const DefaultLevel = "warn"

// New returns a text logger writing to w (stderr when nil). Unknown levels fall back to warn.
func New(level string, w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	l := log.New()
	l.SetOutput(w)
	l.SetFormatter(&log.TextFormatter{
		DisableTimestamp: false,
		FullTimestamp:    true,
		DisableColors:    os.Getenv("NO_COLOR") != "",
	})
	l.SetLevel(ParseLevel(level))
	return l
}

func ParseLevel(level string) log.Level {
	level = strings.TrimSpace(level)
	if level == "" {
		level = DefaultLevel
	}
	lv, err := log.ParseLevel(level)
	if err != nil {
		return log.WarnLevel
	}
	return lv
}

// Discard is a logger that drops everything; handy in tests and for the TUI, which owns the terminal.
func Discard() *log.Logger {
	l := log.New()
	l.SetOutput(io.Discard)
	return l
}
