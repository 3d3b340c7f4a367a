package date

import (
	"testing"
	"time"
)

func TestNewRange(t *testing.T) {
	testCases := []struct {
		name     string
		in       Date
		p        Period
		from, to Date
		id       string
	}{
		{"day", New(2025, time.September, 8), Daily, New(2025, time.September, 8), New(2025, time.September, 8), "2025-09-08"},
		{"mid week", New(2025, time.September, 10), Weekly, New(2025, time.September, 8), New(2025, time.September, 14), "2025-W37"},
		{"week across years", New(2025, time.January, 1), Weekly, New(2024, time.December, 30), New(2025, time.January, 5), "2025-W01"},
		{"leap february", New(2024, time.February, 15), Monthly, New(2024, time.February, 1), New(2024, time.February, 29), "2024-02"},
		{"salary day", New(2025, time.September, 30), Monthly, New(2025, time.September, 1), New(2025, time.September, 30), "2025-09"},
		{"second quarter", New(2025, time.May, 20), Quarterly, New(2025, time.April, 1), New(2025, time.June, 30), "2025-Q2"},
		{"last quarter", New(2025, time.December, 31), Quarterly, New(2025, time.October, 1), New(2025, time.December, 31), "2025-Q4"},
		{"year", New(2025, time.September, 8), Yearly, New(2025, time.January, 1), New(2025, time.December, 31), "2025"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRange(tc.in, tc.p)
			if r.From != tc.from || r.To != tc.to || r.Period != tc.p {
				t.Errorf("NewRange(%v, %v) = %v, want %v to %v", tc.in, tc.p, r, tc.from, tc.to)
			}
			if got := r.Identifier(); got != tc.id {
				t.Errorf("Identifier() = %q, want %q", got, tc.id)
			}
		})
	}
}

func TestParsePeriod(t *testing.T) {
	for _, p := range Periods {
		for _, s := range periodNames[p] {
			if got, err := ParsePeriod(s); err != nil || got != p {
				t.Errorf("ParsePeriod(%q) = %v, %v, want %v", s, got, err, p)
			}
		}
	}
	if got, err := ParsePeriod(" Monthly "); err != nil || got != Monthly {
		t.Errorf("ParsePeriod(Monthly) = %v, %v, want monthly", got, err)
	}
	if _, err := ParsePeriod("fortnight"); err == nil {
		t.Error("ParsePeriod(fortnight) succeeded, want an error")
	}
}

func TestPeriod_String(t *testing.T) {
	if got := Period(42).String(); got != "period(42)" {
		t.Errorf("String() = %q, want period(42)", got)
	}
}
