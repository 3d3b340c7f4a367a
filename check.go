package wealth

import "fmt"

// Credit score bounds.
const (
	MinCreditScore = 300
	MaxCreditScore = 850
)

// Issue is a non fatal problem found in a record.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (i Issue) String() string { return i.Field + ": " + i.Message }

// Check lists the suspicious values of r. It never modifies r, and a record
// with issues is still a valid record.
func Check(r *Record) []Issue {
	if r == nil {
		return nil
	}
	var issues []Issue
	add := func(field, format string, args ...any) {
		issues = append(issues, Issue{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if !r.IsUsable() {
		add("user_id", "%q is not a user identifier", r.UserID)
	}
	if r.Age < 0 {
		add("profile_age", "negative age %d", r.Age)
	}
	if r.MonthlyIncome.IsNegative() {
		add("monthly_income", "negative income %s", r.MonthlyIncome)
	}
	if cs := r.CreditScore; cs != nil && (*cs < MinCreditScore || *cs > MaxCreditScore) {
		add("credit_score", "%d is outside %d-%d", *cs, MinCreditScore, MaxCreditScore)
	}
	for i, b := range r.Assets.BankAccounts {
		if b.Balance.IsNegative() {
			add(fmt.Sprintf("assets.bank_accounts[%d]", i), "negative balance %s", b.Balance)
		}
	}
	for i, s := range r.Assets.Stocks {
		if s.Shares.IsNegative() {
			add(fmt.Sprintf("assets.stocks[%d]", i), "negative share count %s", s.Shares)
		}
		if s.Price.IsNegative() {
			add(fmt.Sprintf("assets.stocks[%d]", i), "negative price %s", s.Price)
		}
	}
	for i, l := range r.Liabilities.Loans {
		if l.Amount.IsNegative() {
			add(fmt.Sprintf("liabilities.loans[%d]", i), "negative amount %s", l.Amount)
		}
	}
	for i, c := range r.Liabilities.CreditCards {
		if c.Balance.IsNegative() {
			add(fmt.Sprintf("liabilities.credit_cards[%d]", i), "negative balance %s", c.Balance)
		}
	}
	if r.NetWorth != nil && !r.NetWorth.Equal(NetWorth(r)) {
		add("net_worth", "supplied %s differs from computed %s", r.NetWorth, NetWorth(r))
	}
	return issues
}
