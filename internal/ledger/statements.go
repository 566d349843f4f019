package ledger

import "math"

// Display constants carried by the production/marketing report and the cash
// flow statement. These are fixed figures, not derived from game state.
const (
	FactoryCapacityDisplay = 3000.0
	DisplayPricePerUnit    = 100.0
	DisplayCostPerUnit     = 10.0
	DisplayEmployees       = 10
	AvailableCreditLine    = 100000.0
)

type IncomeStatement struct {
	Sales            float64 `json:"sales"`
	CostOfGoodsSold  float64 `json:"cost_of_goods_sold"`
	GrossMargin      float64 `json:"gross_margin"`
	Marketing        float64 `json:"marketing"`
	RD               float64 `json:"rd"`
	CharitableGiving float64 `json:"charitable_giving"`
	NetProfit        float64 `json:"net_profit"`
}

type BalanceSheet struct {
	Cash                   float64 `json:"cash"`
	Inventory              float64 `json:"inventory"`
	CapitalInvestment      float64 `json:"capital_investment"`
	Loans                  float64 `json:"loans"`
	RetainedEarnings       float64 `json:"retained_earnings"`
	Capital                float64 `json:"capital"`
	TotalAssets            float64 `json:"total_assets"`
	TotalLiabilitiesEquity float64 `json:"total_liabilities_equity"`
}

type CashFlow struct {
	BeginningCash     float64 `json:"beginning_cash"`
	NetProfit         float64 `json:"net_profit"`
	Depreciation      float64 `json:"depreciation"`
	CapitalInvestment float64 `json:"capital_investment"`
	InventoryChange   float64 `json:"inventory_change"`
	LoanChanges       float64 `json:"loan_changes"`
	AvailableCash     float64 `json:"available_cash"`
	AvailableCredit   float64 `json:"available_credit"`
	FundsAvailable    float64 `json:"funds_available"`
}

type ProductionReport struct {
	Production          float64 `json:"production"`
	FactoryCapacity     float64 `json:"factory_capacity"`
	CapacityUtilization float64 `json:"capacity_utilization"`
	ProductionCostUnit  float64 `json:"production_cost_per_unit"`
	Inventory           float64 `json:"inventory"`
	Employees           int     `json:"employees"`
}

type MarketingReport struct {
	OrdersReceived float64 `json:"orders_received"`
	SalesMade      float64 `json:"sales_made"`
	UnfilledOrders float64 `json:"unfilled_orders"`
	PricePerUnit   float64 `json:"price_per_unit"`
	CostPerUnit    float64 `json:"cost_per_unit"`
	MarginPerUnit  float64 `json:"margin_per_unit"`
}

type ProductionMarketingReport struct {
	Production ProductionReport `json:"production"`
	Marketing  MarketingReport  `json:"marketing"`
}

type Statements struct {
	Income              IncomeStatement           `json:"income_statement"`
	Balance             BalanceSheet              `json:"balance_sheet"`
	CashFlow            CashFlow                  `json:"cash_flow"`
	ProductionMarketing ProductionMarketingReport `json:"production_marketing"`
}

// IncomeStatement reads expense and revenue accounts as absolute balances.
// Sales is credited and expenses are debited, so raw balances carry opposite
// signs; absolute value normalizes both for display.
func (l *Ledger) IncomeStatement() IncomeStatement {
	sales := math.Abs(l.AccountBalance(AccountSales))
	cogs := math.Abs(l.AccountBalance(AccountCOGS))
	marketing := math.Abs(l.AccountBalance(AccountMarketing))
	rd := math.Abs(l.AccountBalance(AccountRD))
	donations := math.Abs(l.AccountBalance(AccountDonations))
	gross := sales - cogs
	return IncomeStatement{
		Sales:            sales,
		CostOfGoodsSold:  cogs,
		GrossMargin:      gross,
		Marketing:        marketing,
		RD:               rd,
		CharitableGiving: donations,
		NetProfit:        gross - marketing - rd - donations,
	}
}

func (l *Ledger) BalanceSheet() BalanceSheet {
	cash := l.AccountBalance(AccountCash)
	inventory := l.AccountBalance(AccountInventory)
	capitalInvestment := l.AccountBalance(AccountCapitalInvestment)
	loans := l.AccountBalance(AccountLoans)
	retained := l.AccountBalance(AccountRetainedEarnings)
	capital := math.Abs(l.AccountBalance(AccountCapital))
	return BalanceSheet{
		Cash:                   cash,
		Inventory:              inventory,
		CapitalInvestment:      capitalInvestment,
		Loans:                  loans,
		RetainedEarnings:       retained,
		Capital:                capital,
		TotalAssets:            cash + inventory + capitalInvestment,
		TotalLiabilitiesEquity: loans + retained + capital,
	}
}

func (l *Ledger) CashFlow() CashFlow {
	beginning := l.BeginningCash()
	netProfit := l.IncomeStatement().NetProfit
	depreciation := 0.0 // not modeled
	capitalInvestment := math.Abs(l.AccountBalance(AccountCapitalInvestment))
	inventoryChange := l.AccountBalance(AccountInventory)
	loanChanges := -l.AccountBalance(AccountLoans) // credits increase loans

	ending := beginning + netProfit + depreciation - capitalInvestment - inventoryChange + loanChanges
	return CashFlow{
		BeginningCash:     beginning,
		NetProfit:         netProfit,
		Depreciation:      depreciation,
		CapitalInvestment: capitalInvestment,
		InventoryChange:   inventoryChange,
		LoanChanges:       loanChanges,
		AvailableCash:     ending,
		AvailableCredit:   AvailableCreditLine,
		FundsAvailable:    ending + AvailableCreditLine,
	}
}

// ProductionMarketing is a display stub: it fabricates unit economics from
// fixed constants and a production figure capped by the display capacity.
// Callers must not treat it as an authoritative derivation from game state.
func (l *Ledger) ProductionMarketing() ProductionMarketingReport {
	sales := math.Abs(l.AccountBalance(AccountSales))
	production := math.Min(sales, FactoryCapacityDisplay)
	return ProductionMarketingReport{
		Production: ProductionReport{
			Production:          production,
			FactoryCapacity:     FactoryCapacityDisplay,
			CapacityUtilization: (production / FactoryCapacityDisplay) * 100,
			ProductionCostUnit:  DisplayCostPerUnit,
			Inventory:           l.AccountBalance(AccountInventory),
			Employees:           DisplayEmployees,
		},
		Marketing: MarketingReport{
			OrdersReceived: sales,
			SalesMade:      sales,
			UnfilledOrders: 0,
			PricePerUnit:   DisplayPricePerUnit,
			CostPerUnit:    DisplayCostPerUnit,
			MarginPerUnit:  DisplayPricePerUnit - DisplayCostPerUnit,
		},
	}
}

func (l *Ledger) Statements() Statements {
	return Statements{
		Income:              l.IncomeStatement(),
		Balance:             l.BalanceSheet(),
		CashFlow:            l.CashFlow(),
		ProductionMarketing: l.ProductionMarketing(),
	}
}
