package errors

import (
	"strings"
	"testing"
)

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple png", "output.png", false},
		{"nested jpg", "out/art.jpg", false},
		{"absolute", "/tmp/art.tiff", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 5000) + ".png", true},
		{"no extension", "output", true},
		{"directory", "out/", true},
		{"control char", "out\x01.png", true},
		{"newline", "out\n.png", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidateOutputPath(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"https://example.com/cat.png", false},
		{"http://localhost:8080/a.jpg", false},
		{"", true},
		{"ftp://example.com/a.png", true},
		{"cat.png", true},
		{"HTTPS://example.com/a.png", false},
		{"https:///no-host.png", true},
		{"file:///etc/passwd", true},
		{"http://[::1", true},
	}

	for _, tt := range tests {
		err := ValidateURL(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got := IsURL(tt.input); got == tt.wantErr {
			t.Errorf("IsURL(%q) = %v, want %v", tt.input, got, !tt.wantErr)
		}
	}
}
