package cli

import (
	"io"
	"testing"
)

func TestNew(t *testing.T) {
	c := New(io.Discard, LogInfo)
	if c == nil {
		t.Fatal("New() returned nil")
	}
	if c.Logger == nil {
		t.Error("New() should set a logger")
	}
}

func TestRootCommand(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	if root.Use != appName {
		t.Errorf("root.Use = %q, want %q", root.Use, appName)
	}
	if !root.SilenceUsage {
		t.Error("root command should silence usage on errors")
	}

	want := []string{"template", "guide", "kit", "presets", "serve", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{"svg"}},
		{"svg", []string{"svg"}},
		{"svg,png,json", []string{"svg", "png", "json"}},
	}

	for _, tt := range tests {
		got := parseFormats(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
			}
		}
	}
}

func TestParseGuideFormats(t *testing.T) {
	if got := parseGuideFormats(""); len(got) != 1 || got[0] != "md" {
		t.Errorf("parseGuideFormats(\"\") = %v, want [md]", got)
	}
	if got := parseGuideFormats("md,txt,print"); len(got) != 3 {
		t.Errorf("parseGuideFormats() = %v, want 3 formats", got)
	}
}
