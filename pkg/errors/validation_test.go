package errors

import (
	"strings"
	"testing"
)

func TestValidateExpressionText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"digit", "7", false},
		{"orig", "0'", false},
		{"binary", "(3 * 4) ^ 0", false},
		{"multiline", "1 +\n\t2", false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"too long", strings.Repeat("1", MaxExpressionLength+1), true},
		{"null byte", "1\x00", true},
		{"control char", "1\x01+2", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateExpressionText(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateExpressionText(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidExpression) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidExpression)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "out.svg", false},
		{"absolute", "/tmp/out.png", false},
		{"empty", "", true},
		{"null byte", "out\x00.svg", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
