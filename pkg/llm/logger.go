package llm

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"
)

// Fields carries structured key/value pairs attached to a log line.
type Fields map[string]interface{}

// Logger is the logging surface the client depends on.
type Logger interface {
	Debug(ctx context.Context, msg string, fields Fields)
	Info(ctx context.Context, msg string, fields Fields)
	Warn(ctx context.Context, msg string, fields Fields)
	Error(ctx context.Context, err error, fields Fields)
}

// NewLogger returns a Logger backed by go-zero's logx at the given level.
func NewLogger(level string) Logger {
	logx.SetLevel(parseLevel(level))
	return zeroLogger{}
}

type zeroLogger struct{}

func (zeroLogger) Debug(ctx context.Context, msg string, fields Fields) {
	logx.WithContext(ctx).Debug(renderLine(msg, fields))
}

func (zeroLogger) Info(ctx context.Context, msg string, fields Fields) {
	logx.WithContext(ctx).Info(renderLine(msg, fields))
}

func (zeroLogger) Warn(ctx context.Context, msg string, fields Fields) {
	logx.WithContext(ctx).Slow(renderLine(msg, fields))
}

func (zeroLogger) Error(ctx context.Context, err error, fields Fields) {
	logx.WithContext(ctx).Error(renderLine(err.Error(), fields))
}

func parseLevel(level string) uint32 {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logx.DebugLevel
	case "error":
		return logx.ErrorLevel
	case "severe", "fatal":
		return logx.SevereLevel
	default:
		return logx.InfoLevel
	}
}

// renderLine appends key=value pairs in sorted key order so the output
// is stable across runs.
func renderLine(msg string, fields Fields) string {
	if len(fields) == 0 {
		return msg
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(msg)
	b.WriteString(" |")
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, fields[k])
	}
	return b.String()
}
