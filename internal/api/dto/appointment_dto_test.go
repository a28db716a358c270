package dto

import (
	"testing"
	"time"
)

func TestParseAppointmentTime(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  time.Time
		fails bool
	}{
		{"iso without zone", "2025-11-20T14:30:00", time.Date(2025, 11, 20, 14, 30, 0, 0, time.UTC), false},
		{"rfc3339", "2025-11-20T14:30:00Z", time.Date(2025, 11, 20, 14, 30, 0, 0, time.UTC), false},
		{"rfc3339 with offset", "2025-11-20T14:30:00+02:00", time.Date(2025, 11, 20, 12, 30, 0, 0, time.UTC), false},
		{"date only", "2025-11-20", time.Time{}, true},
		{"garbage", "next tuesday", time.Time{}, true},
		{"empty", "", time.Time{}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseAppointmentTime(tc.input)
			if tc.fails {
				if err == nil {
					t.Fatalf("expected error for %q", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse %q: %v", tc.input, err)
			}
			if !got.Equal(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestFormatAppointmentTimeRoundTrip(t *testing.T) {
	slot := time.Date(2025, 11, 20, 14, 30, 0, 0, time.UTC)
	formatted := FormatAppointmentTime(slot)
	if formatted != "2025-11-20T14:30:00" {
		t.Fatalf("expected 2025-11-20T14:30:00, got %q", formatted)
	}
	parsed, err := ParseAppointmentTime(formatted)
	if err != nil {
		t.Fatalf("parse formatted: %v", err)
	}
	if !parsed.Equal(slot) {
		t.Fatalf("round trip drift: %v vs %v", parsed, slot)
	}
}
