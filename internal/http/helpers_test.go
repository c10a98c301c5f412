package http

import (
	"strings"
	"testing"

	"cassa/internal/core"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		want    core.Date
	}{
		{name: "valid date", input: "2025-03-14", want: core.NewDate(2025, 3, 14)},
		{name: "leap day", input: "2024-02-29", want: core.NewDate(2024, 2, 29)},
		{name: "invalid format", input: "14/03/2025", wantErr: true},
		{name: "nonexistent day", input: "2025-02-30", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseDate(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseDate(%q): %v", tt.input, err)
			}
			if !got.Equal(tt.want.Time) {
				t.Errorf("parseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{input: "1", want: 1},
		{input: " 42 ", want: 42},
		{input: "0", wantErr: true},
		{input: "-3", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := parseID(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseID(%q) expected error, got %d", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseID(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseID(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestParsePercent(t *testing.T) {
	tests := []struct {
		input   string
		want    uint
		wantErr bool
	}{
		{input: "0", want: 0},
		{input: "50", want: 50},
		{input: "100", want: 100},
		{input: "101", wantErr: true},
		{input: "-1", wantErr: true},
		{input: "fifty", wantErr: true},
	}

	for _, tt := range tests {
		got, err := parsePercent(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parsePercent(%q) expected error, got %d", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("parsePercent(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parsePercent(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{cents: 1234, want: "€12.34"},
		{cents: 0, want: "€0.00"},
		{cents: -550, want: "-€5.50"},
		{cents: 100000, want: "€1000.00"},
	}

	for _, tt := range tests {
		got := formatAmount(core.MoneyFromCents(tt.cents))
		if got != tt.want {
			t.Errorf("formatAmount(%d cents) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "trims whitespace", input: "  groceries  ", want: "groceries"},
		{name: "strips control characters", input: "rent\x00\x01payment", want: "rentpayment"},
		{name: "keeps tabs and newlines", input: "a\tb\nc", want: "a\tb\nc"},
		{name: "plain text untouched", input: "monthly salary", want: "monthly salary"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeInput(tt.input); got != tt.want {
				t.Errorf("sanitizeInput(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestGenerateRequestID(t *testing.T) {
	a := generateRequestID()
	b := generateRequestID()
	if !strings.HasPrefix(a, "req_") {
		t.Errorf("request ID %q missing req_ prefix", a)
	}
	if a == b {
		t.Error("consecutive request IDs should differ")
	}
}

func TestRateLimiter(t *testing.T) {
	rl := newRateLimiter()
	defer rl.stop()

	for i := 0; i < 60; i++ {
		if !rl.allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.allow("10.0.0.1") {
		t.Error("request 61 within a minute should be rejected")
	}
	if !rl.allow("10.0.0.2") {
		t.Error("a different client should not be affected")
	}
}
