package models

import "testing"

func TestParseLogLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"ERROR":   LevelError,
		"WARN":    LevelWarn,
		"INFO":    LevelInfo,
		"DEBUG":   LevelDebug,
		"":        LevelInfo,
		"verbose": LevelInfo,
		"error":   LevelInfo, // levels are case-sensitive by schema
	}
	for in, want := range cases {
		if got := ParseLogLevel(in); got != want {
			t.Errorf("ParseLogLevel(%q): got %q, want %q", in, got, want)
		}
	}
}

func TestHasEmbeddedPhoto(t *testing.T) {
	s := Soldier{PhotoData: "JD"}
	if s.HasEmbeddedPhoto() {
		t.Error("initials fallback is not an embedded photo")
	}
	s.PhotoData = "data:image/png;base64,aGVsbG8="
	if !s.HasEmbeddedPhoto() {
		t.Error("data URI should count as embedded photo")
	}
}
