package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

type level int

const (
	levelDebug level = iota
	levelInfo
	levelWarn
	levelError
)

func parseLevel(s string) level {
	switch strings.ToLower(s) {
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

type implLogger struct {
	logger    *log.Logger
	level     level
	json      bool
	component string
}

// New creates a Logger writing text lines to stdout at the given level.
func New(lvl string) Logger {
	return NewWithFormat(lvl, "text")
}

// NewWithFormat creates a Logger at the given level. Format "json"
// emits one JSON object per line; anything else logs plain text.
func NewWithFormat(lvl, format string) Logger {
	asJSON := strings.EqualFold(format, "json")
	flags := log.LstdFlags
	if asJSON {
		flags = 0
	}
	return &implLogger{
		logger: log.New(os.Stdout, "", flags),
		level:  parseLevel(lvl),
		json:   asJSON,
	}
}

func (l *implLogger) Named(component string) Logger {
	return &implLogger{
		logger:    l.logger,
		level:     l.level,
		json:      l.json,
		component: component,
	}
}

type jsonEntry struct {
	Time      string `json:"time"`
	Level     string `json:"level"`
	Component string `json:"component,omitempty"`
	Message   string `json:"message"`
}

func (l *implLogger) print(lvl level, tag, msg string, args ...interface{}) {
	if lvl < l.level {
		return
	}

	if l.json {
		line, err := json.Marshal(jsonEntry{
			Time:      time.Now().Format(time.RFC3339),
			Level:     strings.Trim(tag, "[]"),
			Component: l.component,
			Message:   fmt.Sprintf(msg, args...),
		})
		if err != nil {
			return
		}
		l.logger.Print(string(line))
		return
	}

	if l.component != "" {
		tag = tag + " [" + l.component + "]"
	}
	l.logger.Printf(tag+" "+msg, args...)
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.print(levelDebug, "[DEBUG]", msg, args...)
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.print(levelInfo, "[INFO]", msg, args...)
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.print(levelWarn, "[WARN]", msg, args...)
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.print(levelError, "[ERROR]", msg, args...)
}
