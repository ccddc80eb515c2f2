package logging

import "testing"

func TestNewBuildsConsoleAndJSON(t *testing.T) {
	t.Parallel()

	for _, format := range []Format{FormatConsole, FormatJSON, ""} {
		logger, err := New(Config{Format: format, Level: "debug"}, "roster")
		if err != nil {
			t.Fatalf("new %q logger: %v", format, err)
		}
		if !logger.Core().Enabled(-1) {
			t.Fatalf("%q logger should enable debug level", format)
		}
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	t.Parallel()

	if _, err := New(Config{Format: FormatJSON, Level: "loud"}, "roster"); err == nil {
		t.Fatal("expected invalid level error")
	}
	if _, err := New(Config{Format: "xml", Level: "info"}, "roster"); err == nil {
		t.Fatal("expected invalid format error")
	}
}
