package links

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoaderLoadBuiltin(t *testing.T) {
	loader := NewLoader("")
	if loader.Path() != BuiltinName {
		t.Errorf("Path() = %q, want %q", loader.Path(), BuiltinName)
	}

	config, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if config.Native == nil {
		t.Fatal("Load() builtin directory should be in native format")
	}
	if len(config.Native.Links) != 13 {
		t.Errorf("builtin directory has %d links, want 13", len(config.Native.Links))
	}
	if got := config.Native.Links[0].Title; got != "GST Portal" {
		t.Errorf("first builtin link = %q, want GST Portal", got)
	}
}

func TestLoaderLoadNative(t *testing.T) {
	tmpDir := t.TempDir()
	yamlPath := filepath.Join(tmpDir, "links.yaml")

	yamlContent := `links:
  - id: "1"
    title: GST Portal
    url: https://www.gst.gov.in
    category: Tax & Business
    keywords: [gst verify]
`

	if err := os.WriteFile(yamlPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}

	config, err := NewLoader(yamlPath).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if config.Native == nil || len(config.Native.Links) != 1 {
		t.Fatalf("Load() = %+v, want one native link", config)
	}
	if config.Native.Links[0].Keywords[0] != "gst verify" {
		t.Errorf("keywords = %v", config.Native.Links[0].Keywords)
	}
}

func TestLoaderLoadHomepageWithTemplateVariables(t *testing.T) {
	tmpDir := t.TempDir()
	yamlPath := filepath.Join(tmpDir, "services.yaml")

	yamlContent := `---
- Identity:
    - Passport Seva:
        icon: passport.svg
        href: https://www.passportindia.gov.in
        description: {{HOMEPAGE_VAR_PASSPORT_DESC}}
`

	if err := os.WriteFile(yamlPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}

	config, err := NewLoader(yamlPath).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(config.Homepage) == 0 {
		t.Fatal("Load() returned empty homepage config")
	}
}

func TestParseNativeKeepsBraces(t *testing.T) {
	input := `links:
  - id: "1"
    title: Plain {{x}} Portal
    url: https://www.gst.gov.in
    category: Tax & Business
    description: "Use {{gstin}} to verify"
`

	config, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if config.Native == nil || len(config.Native.Links) != 1 {
		t.Fatalf("Parse() = %+v, want one native link", config)
	}

	link := config.Native.Links[0]
	if link.Title != "Plain {{x}} Portal" {
		t.Errorf("title = %q, want %q", link.Title, "Plain {{x}} Portal")
	}
	if link.Description != "Use {{gstin}} to verify" {
		t.Errorf("description = %q, want %q", link.Description, "Use {{gstin}} to verify")
	}
}

func TestLoaderLoadFileNotFound(t *testing.T) {
	loader := NewLoader("/nonexistent/path/links.yaml")
	_, err := loader.Load()
	if err == nil {
		t.Error("Load() with non-existent file should return error")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty document", input: ""},
		{name: "scalar document", input: "just text"},
		{name: "unknown field", input: "links:\n  - title: x\n    href: https://x.gov.in\n"},
		{name: "broken yaml", input: "links: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.input)); err == nil {
				t.Errorf("Parse(%q) should return error", tt.input)
			}
		})
	}
}

func TestStripTemplateVariablesFunc(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{
			name:     "single template variable",
			input:    []byte("url: {{HOMEPAGE_VAR_URL}}"),
			expected: "url: \"\"",
		},
		{
			name:     "no template variables",
			input:    []byte("plain text"),
			expected: "plain text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := stripTemplateVariables(tt.input)
			if string(result) != tt.expected {
				t.Errorf("stripTemplateVariables() = %q, want %q", string(result), tt.expected)
			}
		})
	}
}
