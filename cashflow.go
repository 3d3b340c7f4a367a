package wealth

import (
	"sort"

	"github.com/etnz/wealth/date"
)

// Flow is the cash movement of one period.
type Flow struct {
	Period  string    `json:"period"` // range identifier, e.g. "2025-09"
	From    date.Date `json:"from"`
	To      date.Date `json:"to"`
	Inflow  Amount    `json:"inflow"`
	Outflow Amount    `json:"outflow"` // positive
	Net     Amount    `json:"net"`
	Count   int       `json:"count"`
}

// CashFlow groups the record transactions by period, oldest first.
// Transactions with an unreadable date are skipped and counted in skipped.
func CashFlow(r *Record, p date.Period) (flows []Flow, skipped int) {
	if r == nil {
		return nil, 0
	}
	byID := make(map[string]*Flow)
	for _, tx := range r.Transactions {
		on, err := date.Parse(tx.Date)
		if err != nil {
			skipped++
			continue
		}
		rg := date.NewRange(on, p)
		id := rg.Identifier()
		f, ok := byID[id]
		if !ok {
			f = &Flow{Period: id, From: rg.From, To: rg.To}
			byID[id] = f
		}
		if tx.Amount.IsNegative() {
			f.Outflow = f.Outflow.Add(tx.Amount.Neg())
		} else {
			f.Inflow = f.Inflow.Add(tx.Amount)
		}
		f.Net = f.Net.Add(tx.Amount)
		f.Count++
	}
	flows = make([]Flow, 0, len(byID))
	for _, f := range byID {
		flows = append(flows, *f)
	}
	sort.Slice(flows, func(i, j int) bool { return flows[i].From.Before(flows[j].From) })
	return flows, skipped
}
