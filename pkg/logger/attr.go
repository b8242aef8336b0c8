package logger

import (
	"log/slog"
	"time"
)

// Error records err under "error". A nil err gives an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

func Component(name string) slog.Attr { return slog.String("component", name) }

// Key records a cache or storage key.
func Key(key string) slog.Attr { return slog.String("key", key) }

func Path(path string) slog.Attr { return slog.String("path", path) }

func Event(name string) slog.Attr { return slog.String("event", name) }

// Field records a validated field path.
func Field(field string) slog.Attr { return slog.String("field", field) }

func Rule(rule string) slog.Attr { return slog.String("rule", rule) }

func Count(n int) slog.Attr { return slog.Int("count", n) }

func Duration(d time.Duration) slog.Attr { return slog.Duration("duration", d) }
