package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/federicogaviriaz/PGM-XIII-AMS76/internal/logging"
	"github.com/federicogaviriaz/PGM-XIII-AMS76/internal/presets"
)

func TestApplyOverrides(t *testing.T) {
	meta := presets.ForEdition(presets.EditionDiplomatic)
	originalPublisher := meta.Publisher

	applyOverrides(&meta, MetadataFlags{
		Title:    "Override title",
		PageSide: "verso",
		IdnoNew:  "XYZ1",
	})

	if meta.Title != "Override title" {
		t.Errorf("title not overridden: %q", meta.Title)
	}
	if meta.PageSide != "verso" || meta.IdnoNew != "XYZ1" {
		t.Errorf("overrides not applied: side=%q idno=%q", meta.PageSide, meta.IdnoNew)
	}
	// Empty flags leave preset values alone.
	if meta.Publisher != originalPublisher {
		t.Errorf("empty flag clobbered a preset field: %q", meta.Publisher)
	}
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logging.Level
	}{
		{"debug", logging.LevelDebug},
		{"info", logging.LevelInfo},
		{"warn", logging.LevelWarn},
		{"error", logging.LevelError},
		{"", logging.LevelInfo},
	}
	for _, tt := range tests {
		if got := logLevel(tt.in); got != tt.want {
			t.Errorf("logLevel(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestLogFormat(t *testing.T) {
	if logFormat("json") != logging.FormatJSON {
		t.Error("json format not recognized")
	}
	if logFormat("text") != logging.FormatText {
		t.Error("text format not recognized")
	}
}

func TestOpenInputStdin(t *testing.T) {
	in, name, err := openInput("-")
	if err != nil {
		t.Fatal(err)
	}
	defer in.Close()
	if name != "stdin" {
		t.Errorf("name = %q, want stdin", name)
	}
}

func TestOpenInputMissingFile(t *testing.T) {
	if _, _, err := openInput(filepath.Join(t.TempDir(), "nope.xml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteOutputPlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xml")
	if err := writeOutput(path, []byte("<TEI/>")); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "<TEI/>" {
		t.Errorf("file content wrong: %q", data)
	}
}

func TestXZRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xml.xz")
	payload := "<TEI><text>compressed edition output</text></TEI>"
	if err := writeOutput(path, []byte(payload)); err != nil {
		t.Fatal(err)
	}

	// The compressed file must not contain the payload verbatim.
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) == payload {
		t.Error("output was not compressed")
	}

	in, name, err := openInput(path)
	if err != nil {
		t.Fatal(err)
	}
	defer in.Close()
	if name != path {
		t.Errorf("name = %q, want %q", name, path)
	}
	got, err := io.ReadAll(in)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != payload {
		t.Errorf("roundtrip lost data: %q", got)
	}
}
