package errors

import (
	"strings"
	"testing"
)

func TestValidateDataKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{"valid", "cover.revenue", false},
		{"valid with underscores", "daily_performance.chart_rows", false},
		{"empty", "", true},
		{"no namespace", "revenue", true},
		{"leading dot", ".revenue", true},
		{"trailing dot", "cover.", true},
		{"whitespace", "cover. revenue", true},
		{"control character", "cover.rev\x00enue", true},
		{"too long", "a." + strings.Repeat("b", 300), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDataKey(tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDataKey(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidDataKey) {
				t.Errorf("error code = %q, want %q", GetCode(err), ErrCodeInvalidDataKey)
			}
		})
	}
}

func TestValidateSlotName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "revenue_kpi", false},
		{"single letter", "x", false},
		{"empty", "", true},
		{"uppercase", "Revenue", true},
		{"leading digit", "1revenue", true},
		{"leading underscore", "_revenue", true},
		{"hyphen", "revenue-kpi", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSlotName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSlotName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateHexColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid upper", "#1F4E79", false},
		{"valid lower", "#c00000", false},
		{"empty means default", "", false},
		{"missing hash", "1F4E79", true},
		{"short", "#FFF", true},
		{"non-hex", "#GGGGGG", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHexColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateHexColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	if err := ValidateOutputPath("out/deck.zip"); err != nil {
		t.Errorf("ValidateOutputPath() error = %v", err)
	}
	if err := ValidateOutputPath(""); err == nil {
		t.Error("empty path accepted")
	}
	if err := ValidateOutputPath("a\x00b"); err == nil {
		t.Error("null byte accepted")
	}
	if err := ValidateOutputPath(strings.Repeat("a", 501)); err == nil {
		t.Error("oversized path accepted")
	}
}
