package logtail

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap/zapcore"
)

// Entry is one decoded JSON log line.
type Entry struct {
	Time    time.Time
	Level   zapcore.Level
	Message string
	Fields  map[string]any
	Raw     string // the original line, kept when it was not JSON
}

var reservedKeys = map[string]bool{
	"ts": true, "level": true, "msg": true, "caller": true, "stacktrace": true,
}

// Parse decodes a zap JSON line. Lines that are not JSON objects come back as
// info entries carrying the raw text.
func Parse(line string) Entry {
	trimmed := strings.TrimSpace(line)
	var doc map[string]any
	if err := sonic.ConfigStd.UnmarshalFromString(trimmed, &doc); err != nil || doc == nil {
		return Entry{Level: zapcore.InfoLevel, Message: trimmed, Raw: line}
	}

	entry := Entry{Level: zapcore.InfoLevel, Fields: make(map[string]any)}
	if msg, ok := doc["msg"].(string); ok {
		entry.Message = msg
	}
	if lvl, ok := doc["level"].(string); ok {
		if parsed, err := zapcore.ParseLevel(lvl); err == nil {
			entry.Level = parsed
		}
	}
	if ts, ok := doc["ts"].(string); ok {
		if parsed, err := time.Parse("2006-01-02T15:04:05.000Z0700", ts); err == nil {
			entry.Time = parsed
		} else if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			entry.Time = parsed
		}
	}
	for k, v := range doc {
		if !reservedKeys[k] {
			entry.Fields[k] = v
		}
	}
	return entry
}

// ParseLines decodes every line, skipping blanks.
func ParseLines(lines []string) []Entry {
	out := make([]Entry, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, Parse(line))
	}
	return out
}

// Filter keeps entries at or above min.
func Filter(entries []Entry, min zapcore.Level) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Level >= min {
			out = append(out, e)
		}
	}
	return out
}

// FieldString renders the structured fields as sorted key=value pairs.
func (e Entry) FieldString() string {
	if len(e.Fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, e.Fields[k]))
	}
	return strings.Join(parts, " ")
}
