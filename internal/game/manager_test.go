package game

import (
	"errors"
	"strings"
	"testing"

	"github.com/Escribaup/jogo-empresarial/internal/ledger"
)

func newTestManager(seed int64) *Manager {
	return NewManager("Acme", 10000, NewSeededEconomy(seed))
}

func TestNewManagerDefaults(t *testing.T) {
	m := NewManager("", 0, nil)
	if m.Company().Name != "Player Company" {
		t.Fatalf("name = %q", m.Company().Name)
	}
	if m.Company().Balance != 10000 {
		t.Fatalf("balance = %f, want 10000", m.Company().Balance)
	}
	if m.CurrentQuarter() != 1 {
		t.Fatalf("quarter = %d, want 1", m.CurrentQuarter())
	}
	if m.MarketShare() != 50 {
		t.Fatalf("market share = %f, want 50", m.MarketShare())
	}
	if m.Ledger().BeginningCash() != 10000 {
		t.Fatalf("beginning cash = %f, want 10000", m.Ledger().BeginningCash())
	}
}

func TestPlayQuarterRejectsInvalidDecisionsWithoutMutation(t *testing.T) {
	m := newTestManager(1)
	before := m.Snapshot()
	ledgerLen := m.Ledger().Len()

	_, err := m.PlayQuarter(Decisions{Price: -1, Production: 100})
	if !errors.Is(err, ErrInvalidDecisions) {
		t.Fatalf("err = %v, want ErrInvalidDecisions", err)
	}

	after := m.Snapshot()
	if after != before {
		t.Fatalf("state changed on rejected decisions: %+v vs %+v", after, before)
	}
	if m.Ledger().Len() != ledgerLen {
		t.Fatalf("ledger grew on rejected decisions")
	}
	if len(m.History()) != 0 {
		t.Fatalf("history grew on rejected decisions")
	}
}

func TestPlayQuarterAccounting(t *testing.T) {
	m := newTestManager(7)
	d := Decisions{Price: 35, Production: 1000, Marketing: 5000, Research: 1000}

	res, err := m.PlayQuarter(d)
	if err != nil {
		t.Fatalf("PlayQuarter: %v", err)
	}

	wantCosts := 1000*UnitProductionCost + 5000 + 1000
	if res.TotalCosts != wantCosts {
		t.Fatalf("total costs = %f, want %f", res.TotalCosts, float64(wantCosts))
	}
	if res.ProductionCost != 1000*UnitProductionCost {
		t.Fatalf("production cost = %f", res.ProductionCost)
	}
	if res.Revenue != float64(res.PlayerDemand)*35 {
		t.Fatalf("revenue = %f, demand = %d", res.Revenue, res.PlayerDemand)
	}
	if res.Profit != res.Revenue-res.TotalCosts {
		t.Fatalf("profit = %f, want revenue - costs", res.Profit)
	}
	if res.Balance != 10000+res.Profit {
		t.Fatalf("balance = %f, want %f", res.Balance, 10000+res.Profit)
	}
	if res.PlayerDemand > 1000 {
		t.Fatalf("demand %d exceeds production", res.PlayerDemand)
	}
	if res.Quarter != 1 {
		t.Fatalf("result quarter = %d, want 1", res.Quarter)
	}
	if m.CurrentQuarter() != 2 {
		t.Fatalf("current quarter = %d, want 2", m.CurrentQuarter())
	}
}

func TestBalanceCarriesAcrossQuarters(t *testing.T) {
	m := newTestManager(21)
	d := Decisions{Price: 40, Production: 800, Marketing: 2000}

	first, err := m.PlayQuarter(d)
	if err != nil {
		t.Fatalf("quarter 1: %v", err)
	}
	second, err := m.PlayQuarter(d)
	if err != nil {
		t.Fatalf("quarter 2: %v", err)
	}
	if second.Balance != first.Balance+second.Profit {
		t.Fatalf("balance %f, want %f + %f", second.Balance, first.Balance, second.Profit)
	}
	if got := len(m.History()); got != 2 {
		t.Fatalf("history length = %d, want 2", got)
	}
}

func TestCapacityOnlyGrows(t *testing.T) {
	m := newTestManager(2)
	if m.Company().Capacity != StartingCapacity {
		t.Fatalf("starting capacity = %f", m.Company().Capacity)
	}
	decisions := []Decisions{
		{Price: 30, Production: 500, CapacityInvestment: 2000},
		{Price: 30, Production: 500},
		{Price: 30, Production: 500, CapacityInvestment: 500},
	}
	prev := m.Company().Capacity
	for i, d := range decisions {
		if _, err := m.PlayQuarter(d); err != nil {
			t.Fatalf("quarter %d: %v", i+1, err)
		}
		if m.Company().Capacity < prev {
			t.Fatalf("quarter %d: capacity shrank from %f to %f", i+1, prev, m.Company().Capacity)
		}
		prev = m.Company().Capacity
	}
	if prev != StartingCapacity+2500 {
		t.Fatalf("final capacity = %f, want %f", prev, float64(StartingCapacity+2500))
	}
}

func TestMarketShareClamped(t *testing.T) {
	m := newTestManager(5)
	// Enormous marketing spend pushes the share influence far past 100.
	if _, err := m.PlayQuarter(Decisions{Price: 10, Production: 1000, Marketing: 10_000_000}); err != nil {
		t.Fatalf("PlayQuarter: %v", err)
	}
	if m.MarketShare() != 100 {
		t.Fatalf("market share = %f, want clamp at 100", m.MarketShare())
	}

	m = newTestManager(5)
	// A punishing price with no marketing drags the share toward zero.
	for i := 0; i < 200; i++ {
		if _, err := m.PlayQuarter(Decisions{Price: 99, Production: 10}); err != nil {
			t.Fatalf("quarter %d: %v", i+1, err)
		}
	}
	if m.MarketShare() != 0 {
		t.Fatalf("market share = %f, want clamp at 0", m.MarketShare())
	}
}

func TestSeededManagersReplay(t *testing.T) {
	a := newTestManager(314)
	b := newTestManager(314)
	d := Decisions{Price: 45, Production: 900, Marketing: 3000, Research: 500}
	for i := 0; i < 10; i++ {
		ra, err := a.PlayQuarter(d)
		if err != nil {
			t.Fatalf("a quarter %d: %v", i+1, err)
		}
		rb, err := b.PlayQuarter(d)
		if err != nil {
			t.Fatalf("b quarter %d: %v", i+1, err)
		}
		if ra != rb {
			t.Fatalf("quarter %d diverged:\n%+v\n%+v", i+1, ra, rb)
		}
	}
}

func TestPlayQuarterLedgerPostings(t *testing.T) {
	m := newTestManager(9)
	d := Decisions{
		Price:              35,
		Production:         1000,
		Marketing:          5000,
		CapacityInvestment: 2000,
		Research:           1000,
		Donations:          250,
	}
	res, err := m.PlayQuarter(d)
	if err != nil {
		t.Fatalf("PlayQuarter: %v", err)
	}

	l := m.Ledger()
	checks := []struct {
		account string
		want    float64
	}{
		{ledger.AccountSales, -res.Revenue},
		{ledger.AccountCOGS, res.ProductionCost},
		{ledger.AccountMarketing, 5000},
		{ledger.AccountRD, 1000},
		{ledger.AccountCapitalInvestment, 2000},
		{ledger.AccountDonations, 250},
	}
	for _, c := range checks {
		if got := l.AccountBalance(c.account); got != c.want {
			t.Fatalf("%s balance = %f, want %f", c.account, got, c.want)
		}
	}

	wantCash := 10000 + res.Revenue - res.ProductionCost - 5000 - 1000 - 2000 - 250
	if got := l.AccountBalance(ledger.AccountCash); got != wantCash {
		t.Fatalf("cash balance = %f, want %f", got, wantCash)
	}

	for _, tr := range l.Transactions()[2:] {
		if tr.Period != "Q1" {
			t.Fatalf("transaction period = %q, want Q1", tr.Period)
		}
	}
}

func TestPlayQuarterSkipsZeroOptionalPostings(t *testing.T) {
	m := newTestManager(13)
	if _, err := m.PlayQuarter(Decisions{Price: 40, Production: 500}); err != nil {
		t.Fatalf("PlayQuarter: %v", err)
	}
	for _, tr := range m.Ledger().Transactions() {
		if tr.Account == ledger.AccountCapitalInvestment || tr.Account == ledger.AccountDonations {
			t.Fatalf("unexpected %s posting with zero decision", tr.Account)
		}
	}
}

func TestReportsRequireHistory(t *testing.T) {
	m := newTestManager(1)
	if _, err := m.FinancialReport(); !errors.Is(err, ErrNoQuartersPlayed) {
		t.Fatalf("FinancialReport err = %v", err)
	}
	if _, err := m.MarketReport(); !errors.Is(err, ErrNoQuartersPlayed) {
		t.Fatalf("MarketReport err = %v", err)
	}
}

func TestFinancialReportChanges(t *testing.T) {
	m := newTestManager(17)
	d := Decisions{Price: 35, Production: 1000, Marketing: 5000}

	if _, err := m.PlayQuarter(d); err != nil {
		t.Fatalf("quarter 1: %v", err)
	}
	first, err := m.FinancialReport()
	if err != nil {
		t.Fatalf("FinancialReport: %v", err)
	}
	if first.RevenueChange != "" || first.ProfitChange != "" {
		t.Fatalf("first quarter should have no change fields: %+v", first)
	}

	if _, err := m.PlayQuarter(d); err != nil {
		t.Fatalf("quarter 2: %v", err)
	}
	second, err := m.FinancialReport()
	if err != nil {
		t.Fatalf("FinancialReport: %v", err)
	}
	if second.RevenueChange == "" || second.ProfitChange == "" || second.MarketShareChange == "" {
		t.Fatalf("second quarter missing change fields: %+v", second)
	}
}

func TestPercentChange(t *testing.T) {
	tests := []struct {
		name             string
		latest, previous float64
		want             string
	}{
		{"growth", 150, 100, "50.00%"},
		{"decline", 50, 100, "-50.00%"},
		{"zero to zero", 0, 0, "N/A"},
		{"zero to something", 10, 0, "∞"},
		{"something to zero", 0, 10, "-100.00%"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := percentChange(tc.latest, tc.previous); got != tc.want {
				t.Fatalf("percentChange(%f, %f) = %q, want %q", tc.latest, tc.previous, got, tc.want)
			}
		})
	}
}

func TestMarketReport(t *testing.T) {
	m := newTestManager(23)
	if _, err := m.PlayQuarter(Decisions{Price: 42, Production: 700, Marketing: 1000}); err != nil {
		t.Fatalf("PlayQuarter: %v", err)
	}
	r, err := m.MarketReport()
	if err != nil {
		t.Fatalf("MarketReport: %v", err)
	}
	if r.PlayerPrice != 42 {
		t.Fatalf("player price = %f", r.PlayerPrice)
	}
	if r.TotalMarketDemand <= 0 {
		t.Fatalf("total market demand = %d", r.TotalMarketDemand)
	}
	if !strings.HasSuffix(r.MarketShare, "%") {
		t.Fatalf("market share = %q, want percentage string", r.MarketShare)
	}
}

func TestSerializeStateIncludesLedgerAndStanding(t *testing.T) {
	m := newTestManager(29)
	if _, err := m.PlayQuarter(Decisions{Price: 35, Production: 1000, Marketing: 5000}); err != nil {
		t.Fatalf("PlayQuarter: %v", err)
	}
	s := m.SerializeState()
	for _, want := range []string{"Company: Acme", "Current quarter: 2", "Q1", ledger.AccountSales, "Market share:"} {
		if !strings.Contains(s, want) {
			t.Fatalf("serialized state missing %q:\n%s", want, s)
		}
	}
}

func TestHistoryReturnsCopy(t *testing.T) {
	m := newTestManager(31)
	if _, err := m.PlayQuarter(Decisions{Price: 30, Production: 500}); err != nil {
		t.Fatalf("PlayQuarter: %v", err)
	}
	h := m.History()
	h[0].Balance = -1
	if m.History()[0].Balance == -1 {
		t.Fatalf("History exposed internal slice")
	}
}
