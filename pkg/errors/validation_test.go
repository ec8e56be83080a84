package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"latin", "Alice", false},
		{"han", "张三", false},
		{"with digits", "R2D2", false},
		{"max length", strings.Repeat("a", MaxNameLength), false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", MaxNameLength+1), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
		{"tab", "foo\tbar", true},
		{"invalid utf8", "\xff\xfe", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidName) {
				t.Errorf("ValidateName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidName)
			}
		})
	}
}

func TestValidateDimensions(t *testing.T) {
	tests := []struct {
		name    string
		w, h    float64
		wantErr bool
	}{
		{"typical", 1280, 800, false},
		{"fractional", 0.5, 0.5, false},

		{"zero width", 0, 800, true},
		{"zero height", 1280, 0, true},
		{"negative", -1, 10, true},
		{"nan", math.NaN(), 10, true},
		{"inf", 10, math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDimensions(tt.w, tt.h)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDimensions(%v, %v) error = %v, wantErr %v", tt.w, tt.h, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "out/board.svg", false},
		{"absolute", "/tmp/board.json", false},
		{"dash for stdin", "-", false},

		{"empty", "", true},
		{"null byte", "board\x00.svg", true},
		{"control char", "board\x01.svg", true},
		{"too long", strings.Repeat("a", 5000), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	allowed := []string{"svg", "png", "pdf"}
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"svg", false},
		{"PNG", false},
		{" pdf ", false},
		{"gif", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateFormat(tt.input, allowed...)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidFormat) {
				t.Errorf("ValidateFormat(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidFormat)
			}
		})
	}
}
