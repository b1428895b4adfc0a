package domain

import (
	"regexp"
	"strings"
	"testing"
	"time"
)

var codePattern = regexp.MustCompile(`^SOL-\d{6}-[A-Z0-9]{6}$`)

func TestNewConsultationCodeFormat(t *testing.T) {
	tests := []struct {
		name       string
		now        time.Time
		wantPrefix string
	}{
		{
			name:       "mid-year month is zero padded",
			now:        time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC),
			wantPrefix: "SOL-202603-",
		},
		{
			name:       "december",
			now:        time.Date(2025, time.December, 31, 23, 59, 59, 0, time.UTC),
			wantPrefix: "SOL-202512-",
		},
		{
			name:       "january",
			now:        time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
			wantPrefix: "SOL-202601-",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := NewConsultationCode(tt.now)

			if !codePattern.MatchString(code) {
				t.Errorf("NewConsultationCode() = %q, does not match %v", code, codePattern)
			}
			if !strings.HasPrefix(code, tt.wantPrefix) {
				t.Errorf("NewConsultationCode() = %q, want prefix %q", code, tt.wantPrefix)
			}
		})
	}
}

func TestNewConsultationCodeSuffixAlphabet(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 200; i++ {
		code := NewConsultationCode(now)
		suffix := code[len("SOL-202606-"):]
		if len(suffix) != 6 {
			t.Fatalf("suffix %q has length %d, want 6", suffix, len(suffix))
		}
		for _, r := range suffix {
			if !strings.ContainsRune(codeAlphabet, r) {
				t.Fatalf("suffix %q contains %q, not in alphabet", suffix, r)
			}
		}
	}
}
