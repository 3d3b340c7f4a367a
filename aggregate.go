package wealth

// TotalAssets returns the sum of bank balances, mutual fund values, stock
// values (shares × price), real estate values and the retirement fund
// balance. A nil record totals zero.
func TotalAssets(r *Record) Amount {
	if r == nil {
		return Amount{}
	}
	a := r.Assets
	return sum(a.BankAccounts, func(b BankAccount) Amount { return b.Balance }).
		Add(sum(a.MutualFunds, func(m MutualFund) Amount { return m.Value })).
		Add(sum(a.Stocks, Stock.Value)).
		Add(sum(a.RealEstate, func(p Property) Amount { return p.Value })).
		Add(a.RetirementFund)
}

// TotalLiabilities returns the sum of outstanding loans and credit card
// balances. A nil record totals zero.
func TotalLiabilities(r *Record) Amount {
	if r == nil {
		return Amount{}
	}
	l := r.Liabilities
	return sum(l.Loans, func(l Loan) Amount { return l.Amount }).
		Add(sum(l.CreditCards, func(c CreditCard) Amount { return c.Balance }))
}

// NetWorth returns TotalAssets - TotalLiabilities. It always recomputes from
// the line items and ignores r.NetWorth.
func NetWorth(r *Record) Amount {
	return TotalAssets(r).Sub(TotalLiabilities(r))
}

// AssetClass names a family of assets in the allocation.
type AssetClass string

const (
	Cash           AssetClass = "bank"
	MutualFunds    AssetClass = "mutual_funds"
	Stocks         AssetClass = "stocks"
	RealEstate     AssetClass = "real_estate"
	RetirementFund AssetClass = "retirement"
)

// Allocation is the weight of an asset class in the total assets.
type Allocation struct {
	Class AssetClass `json:"class"`
	Value Amount     `json:"value"`
	Share Percent    `json:"share"`
}

// Allocate splits TotalAssets by asset class, always in the same class order.
func Allocate(r *Record) []Allocation {
	if r == nil {
		r = &Record{}
	}
	a := r.Assets
	values := []struct {
		class AssetClass
		value Amount
	}{
		{Cash, sum(a.BankAccounts, func(b BankAccount) Amount { return b.Balance })},
		{MutualFunds, sum(a.MutualFunds, func(m MutualFund) Amount { return m.Value })},
		{Stocks, sum(a.Stocks, Stock.Value)},
		{RealEstate, sum(a.RealEstate, func(p Property) Amount { return p.Value })},
		{RetirementFund, a.RetirementFund},
	}
	total := TotalAssets(r)
	out := make([]Allocation, 0, len(values))
	for _, v := range values {
		out = append(out, Allocation{Class: v.class, Value: v.value, Share: v.value.Share(total)})
	}
	return out
}

// Summary gathers the computed figures of a record for presentation.
type Summary struct {
	UserID           string       `json:"user_id"`
	Name             string       `json:"profile_name"`
	Currency         string       `json:"profile_currency"`
	MonthlyIncome    Amount       `json:"monthly_income"`
	TotalAssets      Amount       `json:"total_assets"`
	TotalLiabilities Amount       `json:"total_liabilities"`
	NetWorth         Amount       `json:"net_worth"`
	Allocation       []Allocation `json:"allocation"`
	MonthlySIP       Amount       `json:"monthly_sip"`
	CreditScore      *int         `json:"credit_score,omitempty"`
	Issues           []Issue      `json:"issues,omitempty"`
}

// Summarize computes the Summary of r.
func Summarize(r *Record) *Summary {
	if r == nil {
		r = &Record{}
	}
	return &Summary{
		UserID:           r.UserID,
		Name:             r.Name,
		Currency:         r.Currency,
		MonthlyIncome:    r.MonthlyIncome,
		TotalAssets:      TotalAssets(r),
		TotalLiabilities: TotalLiabilities(r),
		NetWorth:         NetWorth(r),
		Allocation:       Allocate(r),
		MonthlySIP:       sum(r.SIPs, func(c Contribution) Amount { return c.MonthlyAmount }),
		CreditScore:      r.CreditScore,
		Issues:           Check(r),
	}
}
