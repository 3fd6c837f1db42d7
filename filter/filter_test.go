package filter

import (
	"errors"
	"strings"
	"testing"

	"github.com/s0up4200/gyazo/gyazo"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name        string
		expression  string
		wantErr     bool
		errContains string
	}{
		{
			name:       "valid expression",
			expression: `Type == "png"`,
			wantErr:    false,
		},
		{
			name:        "empty expression",
			expression:  "",
			wantErr:     true,
			errContains: "empty expression",
		},
		{
			name:       "invalid syntax",
			expression: `includes(App, "unclosed`,
			wantErr:    true,
		},
		{
			name:       "unknown variable",
			expression: `Year > 2020`,
			wantErr:    true,
		},
		{
			name:       "non boolean result",
			expression: `ID`,
			wantErr:    true,
		},
		{
			name:       "complex expression",
			expression: `(isVideo() or Type == "gif") and HasMeta and hasPrefix(CreatedAt, "2024")`,
			wantErr:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := Compile(tt.expression)

			if tt.wantErr {
				var compErr *CompilationError
				if err == nil {
					t.Errorf("expected error but got none")
				} else if !errors.As(err, &compErr) {
					t.Errorf("expected CompilationError, got %T", err)
				} else if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errContains)
				}
			} else {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				if filter == nil {
					t.Errorf("expected filter but got nil")
				}
			}
		})
	}
}

func TestMatch(t *testing.T) {
	video := gyazo.File{
		ID:        "abc123",
		Type:      "mp4",
		CreatedAt: "2024-03-01T10:00:00.000Z",
		Download:  "https://i.gyazo.com/download/abc123.mp4",
		Meta:      &gyazo.Metadata{App: "Google Chrome", Title: "Demo"},
	}
	image := gyazo.File{
		ID:        "def456",
		Type:      "png",
		CreatedAt: "2019-01-01T00:00:00.000Z",
		Download:  "https://i.gyazo.com/def456.png",
	}

	tests := []struct {
		name       string
		expression string
		file       gyazo.File
		expected   bool
	}{
		{"type match", `Type == "png"`, image, true},
		{"type mismatch", `Type == "png"`, video, false},
		{"video helper", `isVideo()`, video, true},
		{"case insensitive includes", `includes(App, "chrome")`, video, true},
		{"exact contains operator", `App contains "chrome"`, video, false},
		{"missing metadata", `HasMeta`, image, false},
		{"empty app without metadata", `App == ""`, image, true},
		{"date prefix", `CreatedAt startsWith "2024-"`, video, true},
		{"extension", `hasSuffix(Download, ".MP4")`, video, true},
		{"combined", `not isVideo() and upper(Type) == "PNG"`, image, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := Compile(tt.expression)
			if err != nil {
				t.Fatalf("failed to compile filter: %v", err)
			}

			matched, err := filter.Match(tt.file)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if matched != tt.expected {
				t.Errorf("Match() = %v, want %v", matched, tt.expected)
			}
		})
	}
}

func TestString(t *testing.T) {
	filter, err := Compile(`Type == "gif"`)
	if err != nil {
		t.Fatalf("failed to compile filter: %v", err)
	}
	if filter.String() != `Type == "gif"` {
		t.Errorf("String() = %q", filter.String())
	}
}
