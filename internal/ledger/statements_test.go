package ledger

import (
	"math"
	"testing"
)

func postQuarter(l *Ledger, revenue, cogs, marketing, rd, donations float64) {
	l.Record("Q1", AccountSales, 0, revenue, "revenue from sales")
	l.Record("Q1", AccountCash, revenue, 0, "cash from sales")
	l.Record("Q1", AccountCOGS, cogs, 0, "cost of goods sold")
	l.Record("Q1", AccountCash, 0, cogs, "payment for production")
	l.Record("Q1", AccountMarketing, marketing, 0, "marketing expenses")
	l.Record("Q1", AccountCash, 0, marketing, "payment for marketing")
	l.Record("Q1", AccountRD, rd, 0, "r&d expenses")
	l.Record("Q1", AccountCash, 0, rd, "payment for r&d")
	l.Record("Q1", AccountDonations, donations, 0, "charitable donations")
	l.Record("Q1", AccountCash, 0, donations, "payment for donations")
}

func TestIncomeStatementIdentity(t *testing.T) {
	cases := []struct {
		name                               string
		revenue, cogs, marketing, rd, dons float64
	}{
		{"typical", 35000, 50000, 5000, 1000, 0},
		{"profitable", 90000, 30000, 2000, 500, 100},
		{"zeroes", 0, 0, 0, 0, 0},
	}
	for _, tc := range cases {
		l := Open(10000)
		postQuarter(l, tc.revenue, tc.cogs, tc.marketing, tc.rd, tc.dons)
		is := l.IncomeStatement()
		if is.GrossMargin != is.Sales-is.CostOfGoodsSold {
			t.Fatalf("%s: gross margin = %v, want %v", tc.name, is.GrossMargin, is.Sales-is.CostOfGoodsSold)
		}
		want := is.GrossMargin - is.Marketing - is.RD - is.CharitableGiving
		if is.NetProfit != want {
			t.Fatalf("%s: net profit = %v, want %v", tc.name, is.NetProfit, want)
		}
		if is.Sales != tc.revenue || is.CostOfGoodsSold != tc.cogs {
			t.Fatalf("%s: sales/cogs = %v/%v, want %v/%v", tc.name, is.Sales, is.CostOfGoodsSold, tc.revenue, tc.cogs)
		}
	}
}

func TestIncomeStatementAbsoluteValues(t *testing.T) {
	l := New()
	// Sales carries a credit balance; expenses carry debit balances.
	l.Record("Q1", AccountSales, 0, 1234, "revenue")
	l.Record("Q1", AccountMarketing, 777, 0, "marketing")
	is := l.IncomeStatement()
	if is.Sales != 1234 {
		t.Fatalf("sales = %v, want 1234", is.Sales)
	}
	if is.Marketing != 777 {
		t.Fatalf("marketing = %v, want 777", is.Marketing)
	}
}

func TestBalanceSheetTotals(t *testing.T) {
	l := Open(100000)
	l.Record("Q1", AccountInventory, 4000, 0, "stocked units")
	l.Record("Q1", AccountCapitalInvestment, 2500, 0, "capacity investment")
	l.Record("Q1", AccountLoans, 0, 3000, "new loans")

	bs := l.BalanceSheet()
	if bs.Capital != 100000 {
		t.Fatalf("capital = %v, want absolute 100000", bs.Capital)
	}
	wantAssets := bs.Cash + bs.Inventory + bs.CapitalInvestment
	if bs.TotalAssets != wantAssets {
		t.Fatalf("total assets = %v, want %v", bs.TotalAssets, wantAssets)
	}
	wantLE := bs.Loans + bs.RetainedEarnings + bs.Capital
	if bs.TotalLiabilitiesEquity != wantLE {
		t.Fatalf("total liabilities+equity = %v, want %v", bs.TotalLiabilitiesEquity, wantLE)
	}
}

func TestCashFlow(t *testing.T) {
	l := Open(10000)
	postQuarter(l, 35000, 5000, 2000, 1000, 0)
	l.Record("Q1", AccountCapitalInvestment, 1500, 0, "capacity")
	l.Record("Q1", AccountCash, 0, 1500, "payment for capacity")

	cf := l.CashFlow()
	if cf.BeginningCash != 10000 {
		t.Fatalf("beginning cash = %v, want 10000", cf.BeginningCash)
	}
	if cf.Depreciation != 0 {
		t.Fatalf("depreciation = %v, want 0 (not modeled)", cf.Depreciation)
	}
	wantEnding := cf.BeginningCash + cf.NetProfit + cf.Depreciation - cf.CapitalInvestment - cf.InventoryChange + cf.LoanChanges
	if cf.AvailableCash != wantEnding {
		t.Fatalf("available cash = %v, want %v", cf.AvailableCash, wantEnding)
	}
	if cf.AvailableCredit != AvailableCreditLine {
		t.Fatalf("available credit = %v, want fixed %v", cf.AvailableCredit, AvailableCreditLine)
	}
	if cf.FundsAvailable != cf.AvailableCash+cf.AvailableCredit {
		t.Fatalf("funds available = %v, want %v", cf.FundsAvailable, cf.AvailableCash+cf.AvailableCredit)
	}
}

func TestProductionMarketingStub(t *testing.T) {
	l := New()
	l.Record("Q1", AccountSales, 0, 50000, "revenue")
	pm := l.ProductionMarketing()
	if pm.Production.Production != FactoryCapacityDisplay {
		t.Fatalf("production = %v, want capped at %v", pm.Production.Production, FactoryCapacityDisplay)
	}
	if pm.Production.CapacityUtilization != 100 {
		t.Fatalf("capacity utilization = %v, want 100", pm.Production.CapacityUtilization)
	}
	if pm.Marketing.MarginPerUnit != DisplayPricePerUnit-DisplayCostPerUnit {
		t.Fatalf("margin/unit = %v, want %v", pm.Marketing.MarginPerUnit, DisplayPricePerUnit-DisplayCostPerUnit)
	}
	if pm.Production.Employees != DisplayEmployees {
		t.Fatalf("employees = %v, want fixed %v", pm.Production.Employees, DisplayEmployees)
	}

	small := New()
	small.Record("Q1", AccountSales, 0, 120, "revenue")
	if got := small.ProductionMarketing().Production.Production; got != 120 {
		t.Fatalf("production = %v, want sales balance 120", got)
	}
}

func TestStatementsBundle(t *testing.T) {
	l := Open(10000)
	postQuarter(l, 1000, 200, 50, 25, 5)
	st := l.Statements()
	if math.Abs(st.Income.NetProfit-(1000-200-50-25-5)) > 1e-9 {
		t.Fatalf("bundle net profit = %v", st.Income.NetProfit)
	}
	if st.CashFlow.BeginningCash != 10000 {
		t.Fatalf("bundle beginning cash = %v", st.CashFlow.BeginningCash)
	}
}
