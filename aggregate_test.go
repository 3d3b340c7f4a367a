package wealth

import "testing"

func TestAggregates_Scenario(t *testing.T) {
	r := scenario()

	if got, want := TotalAssets(r), A(2082500); !got.Equal(want) {
		t.Errorf("TotalAssets() = %v, want %v", got, want)
	}
	if got, want := TotalLiabilities(r), A(500000); !got.Equal(want) {
		t.Errorf("TotalLiabilities() = %v, want %v", got, want)
	}
	if got, want := NetWorth(r), A(1582500); !got.Equal(want) {
		t.Errorf("NetWorth() = %v, want %v", got, want)
	}
}

func TestAggregates_Empty(t *testing.T) {
	testCases := []struct {
		name string
		r    *Record
	}{
		{"nil record", nil},
		{"zero record", &Record{}},
		{"default record", DefaultBundle().Default},
		{"empty lists", &Record{Assets: Assets{BankAccounts: []BankAccount{}}, Liabilities: Liabilities{Loans: []Loan{}}}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TotalAssets(tc.r); !got.IsZero() {
				t.Errorf("TotalAssets() = %v, want 0", got)
			}
			if got := TotalLiabilities(tc.r); !got.IsZero() {
				t.Errorf("TotalLiabilities() = %v, want 0", got)
			}
			if got := NetWorth(tc.r); !got.IsZero() {
				t.Errorf("NetWorth() = %v, want 0", got)
			}
		})
	}
}

func TestNetWorth_IsAssetsMinusLiabilities(t *testing.T) {
	b := DefaultBundle()
	records := []*Record{scenario(), b.Sample, b.Default}
	for _, id := range b.ProfileIDs() {
		p, _ := b.Profile(id)
		records = append(records, p)
	}
	for _, r := range records {
		want := TotalAssets(r).Sub(TotalLiabilities(r))
		if got := NetWorth(r); !got.Equal(want) {
			t.Errorf("NetWorth(%s) = %v, want %v", r.UserID, got, want)
		}
	}
}

func TestNetWorth_IgnoresCachedValue(t *testing.T) {
	r := scenario()
	stale := A(1)
	r.NetWorth = &stale
	if got, want := NetWorth(r), A(1582500); !got.Equal(want) {
		t.Errorf("NetWorth() = %v, want %v", got, want)
	}
}

func TestStockValue(t *testing.T) {
	testCases := []struct {
		name  string
		stock Stock
		want  Amount
	}{
		{"shares times price", Stock{Shares: Q(50), Price: A(3800)}, A(190000)},
		{"fractional shares", Stock{Shares: Q(2.5), Price: A(228.5)}, A(571.25)},
		{"no shares", Stock{Shares: Q(0), Price: A(99999)}, A(0)},
		{"no price", Stock{Shares: Q(10)}, A(0)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.stock.Value(); !got.Equal(tc.want) {
				t.Errorf("Value() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAllocate(t *testing.T) {
	got := Allocate(scenario())
	want := []Allocation{
		{Class: Cash, Value: A(825000), Share: 39.6158},
		{Class: MutualFunds, Value: A(470000), Share: 22.5690},
		{Class: Stocks, Value: A(262500), Share: 12.6050},
		{Class: RealEstate, Value: A(75000), Share: 3.6014},
		{Class: RetirementFund, Value: A(450000), Share: 21.6086},
	}
	if len(got) != len(want) {
		t.Fatalf("len(Allocate()) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Class != want[i].Class || !got[i].Value.Equal(want[i].Value) {
			t.Errorf("Allocate()[%d] = %v %v, want %v %v", i, got[i].Class, got[i].Value, want[i].Class, want[i].Value)
		}
		if diff := float64(got[i].Share - want[i].Share); diff > 0.001 || diff < -0.001 {
			t.Errorf("Allocate()[%d].Share = %v, want %v", i, got[i].Share, want[i].Share)
		}
	}

	for _, a := range Allocate(nil) {
		if a.Share != 0 || !a.Value.IsZero() {
			t.Errorf("Allocate(nil) = %v, want zero allocation", a)
		}
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(DefaultBundle().Sample)
	if s.UserID != "sample_user_001" || s.Currency != "INR" {
		t.Errorf("Summarize() identity = %q %q", s.UserID, s.Currency)
	}
	if !s.NetWorth.Equal(A(1582500)) {
		t.Errorf("Summarize().NetWorth = %v, want 1582500", s.NetWorth)
	}
	if !s.MonthlySIP.Equal(A(15000)) {
		t.Errorf("Summarize().MonthlySIP = %v, want 15000", s.MonthlySIP)
	}
	if len(s.Issues) != 0 {
		t.Errorf("Summarize().Issues = %v, want none", s.Issues)
	}
}

func TestAmountFormat(t *testing.T) {
	testCases := []struct {
		amount   Amount
		currency string
		want     string
	}{
		{A(550000), "INR", "₹550,000.00"},
		{A(1234.5), "USD", "$1,234.50"},
		{A(-35000), "INR", "-₹35,000.00"},
		{A(12.345), "", "12.35"},
	}
	for _, tc := range testCases {
		if got := tc.amount.Format(tc.currency); got != tc.want {
			t.Errorf("Format(%v, %q) = %q, want %q", tc.amount, tc.currency, got, tc.want)
		}
	}
}
