package errors

import (
	"strings"
	"testing"
)

func TestValidateLabel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "Morena", false},
		{"valid with accent", "Morena Crítico", false},
		{"valid compound", "Deportistas / Fitness", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", MaxLabelLength+1), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
		{"carriage return", "foo\rbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLabel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLabel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateLabelRuneLength(t *testing.T) {
	// multi-byte runes count once each
	label := strings.Repeat("é", MaxLabelLength)
	if err := ValidateLabel(label); err != nil {
		t.Errorf("ValidateLabel() error = %v, want nil", err)
	}
}

func TestValidateColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"short", "#888", false},
		{"long", "#8D241A", false},
		{"lowercase", "#d1a8a6", false},
		{"with alpha", "#8D241A80", false},

		{"empty", "", true},
		{"missing hash", "8D241A", true},
		{"bad digit", "#8D241G", true},
		{"wrong length", "#8D24", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidColor) {
				t.Errorf("ValidateColor(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidColor)
			}
		})
	}
}
