package date

import "fmt"

// Range is the span of days of one period, bounds included.
type Range struct {
	From, To Date
	Period   Period
}

// NewRange returns the range of period p that contains d.
func NewRange(d Date, p Period) Range {
	return Range{From: d.StartOf(p), To: d.EndOf(p), Period: p}
}

// Identifier is a short sortable name of the range: "2025-09-08", "2025-W37",
// "2025-09", "2025-Q3" or "2025".
func (r Range) Identifier() string {
	switch r.Period {
	case Weekly:
		year, week := r.From.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case Monthly:
		return r.From.Format("2006-01")
	case Quarterly:
		return fmt.Sprintf("%d-Q%d", r.From.Year(), (r.From.Month()-1)/3+1)
	case Yearly:
		return r.From.Format("2006")
	default:
		return r.From.String()
	}
}
