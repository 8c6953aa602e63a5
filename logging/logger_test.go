package logging

import (
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {

	cases := map[string]slog.Level{
		"DEBUG": slog.LevelDebug,
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"ERROR": slog.LevelError,
		"":      slog.LevelInfo,
		"bogus": slog.LevelInfo,
	}

	for in, expect := range cases {
		if got := ParseLevel(in); got != expect {
			t.Errorf("%q: expected %v got %v", in, expect, got)
		}
	}
}
