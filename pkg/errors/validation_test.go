package errors

import (
	"strings"
	"testing"
)

func TestValidateRootPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty", "", false},
		{"absolute", "/repo", false},
		{"relative", "repo/src", false},
		{"windows", `C:\repo`, false},

		{"too long", strings.Repeat("a", 5000), true},
		{"null byte", "/repo\x00", true},
		{"control char", "/repo\x01", true},
		{"newline", "/repo\nsrc", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRootPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRootPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidateRootPath(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateExcludePattern(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"substring", "node_modules", false},
		{"glob", "**/*.spec.ts", false},
		{"with slash", "/dist/", false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"null byte", "dist\x00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateExcludePattern(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateExcludePattern(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateMarkerFilename(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"package.json", "package.json", false},
		{"go.mod", "go.mod", false},
		{"dotfile", ".modgraph", false},

		{"empty", "", true},
		{"with path /", "pkg/package.json", true},
		{"with path \\", `pkg\package.json`, true},
		{"dot", ".", true},
		{"dotdot", "..", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMarkerFilename(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMarkerFilename(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
