package wealth

import (
	"slices"
	"strings"
)

// PlaceholderUserID marks the default, uninitialized record. A record with
// this identifier is never genuine user data.
const PlaceholderUserID = "default_user"

// Record is the canonical representation of a user's finances.
type Record struct {
	UserID           string         `json:"user_id"`
	Name             string         `json:"profile_name"`
	Age              int            `json:"profile_age"`
	EmploymentStatus string         `json:"employment_status"`
	MonthlyIncome    Amount         `json:"monthly_income"`
	Currency         string         `json:"profile_currency"`
	Assets           Assets         `json:"assets"`
	Liabilities      Liabilities    `json:"liabilities"`
	SIPs             []Contribution `json:"sip_investments"`
	NetWorth         *Amount        `json:"net_worth,omitempty"`
	CreditScore      *int           `json:"credit_score,omitempty"`
	Transactions     []Transaction  `json:"transactions"`
}

type Assets struct {
	BankAccounts   []BankAccount `json:"bank_accounts"`
	MutualFunds    []MutualFund  `json:"mutual_funds"`
	Stocks         []Stock       `json:"stocks"`
	RealEstate     []Property    `json:"real_estate"`
	RetirementFund Amount        `json:"epf_balance"`
}

type Liabilities struct {
	Loans       []Loan       `json:"loans"`
	CreditCards []CreditCard `json:"credit_cards"`
}

type BankAccount struct {
	Bank    string `json:"bank"`
	Balance Amount `json:"balance"`
}

type MutualFund struct {
	Name  string `json:"name"`
	Value Amount `json:"current_value"`
}

// Stock is a holding of Shares units valued at Price each.
type Stock struct {
	Ticker string   `json:"ticker"`
	Shares Quantity `json:"shares"`
	Price  Amount   `json:"current_price"`
}

// Value returns shares × price.
func (s Stock) Value() Amount { return s.Price.Mul(s.Shares) }

// Property is real estate or any other physical asset.
type Property struct {
	Type  string `json:"type"`
	Value Amount `json:"value"`
}

type Loan struct {
	Type   string `json:"type"`
	Amount Amount `json:"amount"`
}

type CreditCard struct {
	Issuer  string `json:"issuer"`
	Balance Amount `json:"balance"`
}

// Contribution is a recurring monthly investment (SIP). Informational only.
type Contribution struct {
	Name          string `json:"name"`
	MonthlyAmount Amount `json:"monthly_amount"`
}

// Transaction is a signed cash movement. Date is kept as received; see CashFlow.
type Transaction struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Amount      Amount `json:"amount"`
	Date        string `json:"date"`
	Category    string `json:"category"`
}

// IsUsable reports whether r can be the active record: it must carry a non
// empty, non placeholder user identifier.
func (r *Record) IsUsable() bool {
	return r != nil && usableID(r.UserID)
}

func usableID(id string) bool {
	id = strings.TrimSpace(id)
	return id != "" && id != PlaceholderUserID
}

// Clone returns a deep copy of r.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	c := *r
	c.Assets.BankAccounts = slices.Clone(r.Assets.BankAccounts)
	c.Assets.MutualFunds = slices.Clone(r.Assets.MutualFunds)
	c.Assets.Stocks = slices.Clone(r.Assets.Stocks)
	c.Assets.RealEstate = slices.Clone(r.Assets.RealEstate)
	c.Liabilities.Loans = slices.Clone(r.Liabilities.Loans)
	c.Liabilities.CreditCards = slices.Clone(r.Liabilities.CreditCards)
	c.SIPs = slices.Clone(r.SIPs)
	c.Transactions = slices.Clone(r.Transactions)
	if r.NetWorth != nil {
		nw := *r.NetWorth
		c.NetWorth = &nw
	}
	if r.CreditScore != nil {
		cs := *r.CreditScore
		c.CreditScore = &cs
	}
	return &c
}

// UnmarshalJSON decodes a record leniently: only a syntax error fails.
// Fields of the wrong type decode as zero or empty.
func (r *Record) UnmarshalJSON(data []byte) error {
	n, err := ParseNode(data)
	if err != nil {
		return err
	}
	*r = *decodeRecord(n)
	return nil
}

// decodeRecord reads a record out of a document, field by field. It is total.
func decodeRecord(n Node) *Record {
	assets, liabilities := n.Get("assets"), n.Get("liabilities")
	r := &Record{
		UserID:           n.Get("user_id").Text(),
		Name:             n.Get("profile_name").Text(),
		Age:              n.Get("profile_age").Int(),
		EmploymentStatus: n.Get("employment_status").Text(),
		MonthlyIncome:    amountOf(n.Get("monthly_income")),
		Currency:         n.Get("profile_currency").Text(),
		Assets: Assets{
			BankAccounts: listOf(assets.Get("bank_accounts"), func(e Node) BankAccount {
				return BankAccount{Bank: e.Get("bank").Text(), Balance: amountOf(e.Get("balance"))}
			}),
			MutualFunds: listOf(assets.Get("mutual_funds"), func(e Node) MutualFund {
				return MutualFund{Name: e.Get("name").Text(), Value: amountOf(e.Get("current_value"))}
			}),
			Stocks: listOf(assets.Get("stocks"), func(e Node) Stock {
				return Stock{
					Ticker: e.Get("ticker").Text(),
					Shares: Quantity{value: e.Get("shares").Decimal()},
					Price:  amountOf(e.Get("current_price")),
				}
			}),
			RealEstate: listOf(assets.Get("real_estate"), func(e Node) Property {
				return Property{Type: e.Get("type").Text(), Value: amountOf(e.Get("value"))}
			}),
			RetirementFund: amountOf(assets.Get("epf_balance")),
		},
		Liabilities: Liabilities{
			Loans: listOf(liabilities.Get("loans"), func(e Node) Loan {
				return Loan{Type: e.Get("type").Text(), Amount: amountOf(e.Get("amount"))}
			}),
			CreditCards: listOf(liabilities.Get("credit_cards"), func(e Node) CreditCard {
				return CreditCard{Issuer: e.Get("issuer").Text(), Balance: amountOf(e.Get("balance"))}
			}),
		},
		SIPs: listOf(n.Get("sip_investments"), func(e Node) Contribution {
			return Contribution{Name: e.Get("name").Text(), MonthlyAmount: amountOf(e.Get("monthly_amount"))}
		}),
		Transactions: listOf(n.Get("transactions"), func(e Node) Transaction {
			return Transaction{
				ID:          e.Get("id").Text(),
				Description: e.Get("description").Text(),
				Amount:      amountOf(e.Get("amount")),
				Date:        e.Get("date").Text(),
				Category:    e.Get("category").Text(),
			}
		}),
	}
	if v, ok := n.Get("credit_score").integer(); ok {
		r.CreditScore = &v
	}
	if nw := n.Get("net_worth"); nw.IsNumber() {
		v := amountOf(nw)
		r.NetWorth = &v
	} else {
		v := NetWorth(r)
		r.NetWorth = &v
	}
	return r
}

func amountOf(n Node) Amount { return Amount{value: n.Decimal()} }

// listOf decodes the composite elements of a list. Other elements are skipped.
func listOf[T any](n Node, f func(Node) T) []T {
	out := []T{}
	for _, e := range n.Items() {
		if e.kind != Composite {
			continue
		}
		out = append(out, f(e))
	}
	return out
}
