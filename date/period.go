package date

import (
	"fmt"
	"strings"
)

// Period is a calendar period transactions are grouped by.
type Period int

const (
	Daily Period = iota
	Weekly
	Monthly
	Quarterly
	Yearly
)

// Periods lists the known periods, shortest first.
var Periods = []Period{Daily, Weekly, Monthly, Quarterly, Yearly}

// periodNames holds the adjective and the unit of each period.
var periodNames = [...][2]string{
	Daily:     {"daily", "day"},
	Weekly:    {"weekly", "week"},
	Monthly:   {"monthly", "month"},
	Quarterly: {"quarterly", "quarter"},
	Yearly:    {"yearly", "year"},
}

func (p Period) String() string {
	if p < 0 || int(p) >= len(periodNames) {
		return fmt.Sprintf("period(%d)", int(p))
	}
	return periodNames[p][0]
}

// ParsePeriod reads a period from its name ("monthly") or its unit ("month"),
// in any case.
func ParsePeriod(s string) (Period, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, p := range Periods {
		if s == periodNames[p][0] || s == periodNames[p][1] {
			return p, nil
		}
	}
	return Daily, fmt.Errorf("unknown period %q", s)
}
