package utils

import (
	"testing"
	"time"
)

func TestParseNewsTime(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2020-06-05 10:30:54-04:00", time.Date(2020, 6, 5, 14, 30, 54, 0, time.UTC)},
		{"2020-06-05 10:30:54", time.Date(2020, 6, 5, 10, 30, 54, 0, time.UTC)},
		{"2020-06-05", time.Date(2020, 6, 5, 0, 0, 0, 0, time.UTC)},
		{"2020-06-05T10:30:54Z", time.Date(2020, 6, 5, 10, 30, 54, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := ParseNewsTime(tt.input)
		if err != nil {
			t.Errorf("ParseNewsTime(%q) error: %v", tt.input, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseNewsTime(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if got.Location() != time.UTC {
			t.Errorf("ParseNewsTime(%q) not normalized to UTC", tt.input)
		}
	}
}

func TestParseNewsTimeInvalid(t *testing.T) {
	for _, input := range []string{"", "not-a-date", "2020-13-45"} {
		if _, err := ParseNewsTime(input); err == nil {
			t.Errorf("ParseNewsTime(%q) should fail", input)
		}
	}
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2020, 6, 5, 23, 59, 1, 0, time.FixedZone("EST", -5*3600))
	got := DateOnly(in)
	// 23:59 EST is already June 6 in UTC.
	want := time.Date(2020, 6, 6, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DateOnly = %v, want %v", got, want)
	}
}

func TestExtractEmailDomain(t *testing.T) {
	tests := []struct {
		publisher string
		want      string
	}{
		{"john.doe@reuters.com", "reuters.com"},
		{"Tips <tips@Benzinga.com>", "benzinga.com"},
		{"Benzinga Newsdesk", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ExtractEmailDomain(tt.publisher); got != tt.want {
			t.Errorf("ExtractEmailDomain(%q) = %q, want %q", tt.publisher, got, tt.want)
		}
	}
}

func TestCountWords(t *testing.T) {
	if got := CountWords("Stocks That Hit 52-Week Highs"); got != 5 {
		t.Errorf("CountWords = %d, want 5", got)
	}
	if got := CountWords("  "); got != 0 {
		t.Errorf("CountWords(blank) = %d, want 0", got)
	}
}

func TestNormalizeTicker(t *testing.T) {
	if got := NormalizeTicker("  aapl "); got != "AAPL" {
		t.Errorf("NormalizeTicker = %q, want AAPL", got)
	}
}
