package wealth

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// recordOpts compares amounts and quantities by value.
var recordOpts = cmp.Options{
	cmp.Comparer(func(a, b Amount) bool { return a.Equal(b) }),
	cmp.Comparer(func(a, b Quantity) bool { return a.Equal(b) }),
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// node parses a JSON literal, failing the test on syntax errors.
func node(t *testing.T, doc string) Node {
	t.Helper()
	n, err := ParseNode([]byte(doc))
	if err != nil {
		t.Fatalf("ParseNode(%s) error = %v", doc, err)
	}
	return n
}

// scenario is the record of the worked example: assets 2082500, liabilities 500000.
func scenario() *Record {
	return &Record{
		UserID:   "u1",
		Currency: "INR",
		Assets: Assets{
			BankAccounts:   []BankAccount{{Bank: "A", Balance: A(550000)}, {Bank: "B", Balance: A(275000)}},
			MutualFunds:    []MutualFund{{Value: A(320000)}, {Value: A(150000)}},
			Stocks:         []Stock{{Shares: Q(50), Price: A(3800)}, {Shares: Q(25), Price: A(2900)}},
			RealEstate:     []Property{{Value: A(75000)}},
			RetirementFund: A(450000),
		},
		Liabilities: Liabilities{
			Loans:       []Loan{{Amount: A(450000)}},
			CreditCards: []CreditCard{{Balance: A(35000)}, {Balance: A(15000)}},
		},
	}
}
