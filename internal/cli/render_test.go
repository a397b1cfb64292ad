package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/spanviz/pkg/pipeline"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"pdf only", "pdf", []string{"pdf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if len(got) != len(tt.want) {
				t.Errorf("parseFormats(%q) length = %d, want %d", tt.input, len(got), len(tt.want))
				return
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
				}
			}
		})
	}
}

func TestParsePalette(t *testing.T) {
	if got := parsePalette(""); got != nil {
		t.Errorf("parsePalette(\"\") = %v, want nil", got)
	}

	got := parsePalette("#111,#222")
	if len(got) != 2 || got[0] != "#111" || got[1] != "#222" {
		t.Errorf("parsePalette() = %v, want [#111 #222]", got)
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"no output strips input ext", "", "trace.json", "trace"},
		{"output without format ext kept", "out/result", "trace.json", "out/result"},
		{"output with format ext stripped", "result.svg", "trace.json", "result"},
		{"output with png ext stripped", "result.png", "trace.json", "result"},
		{"output with unknown ext kept", "result.data", "trace.json", "result.data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestDefaultBase(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"local file", "runs/trace.json", "runs/trace"},
		{"local without ext", "trace", "trace"},
		{"url", "https://example.com/runs/mergesort.json", "mergesort"},
		{"url with query", "https://example.com/runs/mergesort.json?raw=1", "mergesort"},
		{"url bare host", "https://example.com/", "trace"},
		{"url no path", "https://example.com", "trace"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := defaultBase(tt.input); got != tt.want {
				t.Errorf("defaultBase(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestWriteArtifacts(t *testing.T) {
	base := filepath.Join(t.TempDir(), "result")

	err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{
			"svg":  []byte("<svg/>"),
			"json": []byte("{}"),
		},
		formats: []string{"svg", "json"},
		input:   "trace.json",
		output:  base,
		spans:   3,
		leaves:  5,
	})
	if err != nil {
		t.Fatalf("writeArtifacts() error: %v", err)
	}

	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatalf("read svg artifact: %v", err)
	}
	if string(svg) != "<svg/>" {
		t.Errorf("svg artifact = %q, want %q", svg, "<svg/>")
	}
	if _, err := os.Stat(base + ".json"); err != nil {
		t.Errorf("json artifact not written: %v", err)
	}
}

func TestWriteArtifactsSkipsMissingFormats(t *testing.T) {
	base := filepath.Join(t.TempDir(), "result")

	err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{"svg": []byte("<svg/>")},
		formats:   []string{"svg", "png"},
		input:     "trace.json",
		output:    base,
	})
	if err != nil {
		t.Fatalf("writeArtifacts() error: %v", err)
	}

	if _, err := os.Stat(base + ".png"); !os.IsNotExist(err) {
		t.Error("png artifact should not be written when absent from the map")
	}
}

func TestFilterTreeFormats(t *testing.T) {
	opts := pipeline.Options{View: pipeline.ViewTree, Formats: []string{"svg", "json"}}
	if err := filterTreeFormats(&opts); err != nil {
		t.Fatalf("filterTreeFormats() error: %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != "svg" {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
}

func TestFilterTreeFormatsOnlyJSON(t *testing.T) {
	opts := pipeline.Options{View: pipeline.ViewTree, Formats: []string{"json"}}
	if err := filterTreeFormats(&opts); err == nil {
		t.Error("filterTreeFormats() with only json should error")
	}
}

func TestFilterTreeFormatsDiagramUntouched(t *testing.T) {
	opts := pipeline.Options{View: pipeline.ViewDiagram, Formats: []string{"svg", "json"}}
	if err := filterTreeFormats(&opts); err != nil {
		t.Fatalf("filterTreeFormats() error: %v", err)
	}
	if len(opts.Formats) != 2 {
		t.Errorf("Formats = %v, want unchanged", opts.Formats)
	}
}
