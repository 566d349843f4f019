package game

import (
	"fmt"
	"strings"

	"github.com/Escribaup/jogo-empresarial/internal/ledger"
)

const (
	// UnitProductionCost is the canonical cost of producing one unit.
	UnitProductionCost = 50.0

	startingMarketShare = 50.0
	defaultBalance      = 10000.0
)

// Manager owns one game: the company, the economy, the ledger, and the
// quarter history. It is not safe for concurrent use; the session store
// serializes access so one quarter advance completes before the next.
type Manager struct {
	company *Company
	economy *Economy
	ledger  *ledger.Ledger

	quarter     int
	marketShare float64
	history     []QuarterResult
}

// NewManager starts a fresh game. A zero initialBalance falls back to the
// default opener. The economy decides the randomness; pass a seeded one for
// reproducible games.
func NewManager(companyName string, initialBalance float64, economy *Economy) *Manager {
	if strings.TrimSpace(companyName) == "" {
		companyName = "Player Company"
	}
	if initialBalance <= 0 {
		initialBalance = defaultBalance
	}
	if economy == nil {
		economy = NewEconomy(nil)
	}
	return &Manager{
		company:     NewCompany(companyName, initialBalance),
		economy:     economy,
		ledger:      ledger.Open(initialBalance),
		quarter:     1,
		marketShare: startingMarketShare,
	}
}

func (m *Manager) Company() *Company      { return m.company }
func (m *Manager) Ledger() *ledger.Ledger { return m.ledger }
func (m *Manager) MarketShare() float64   { return m.marketShare }
func (m *Manager) CurrentQuarter() int    { return m.quarter }
func (m *Manager) History() []QuarterResult {
	out := make([]QuarterResult, len(m.history))
	copy(out, m.history)
	return out
}

func (m *Manager) Snapshot() Snapshot {
	return Snapshot{
		CompanyName:     m.company.Name,
		Quarter:         m.quarter,
		Balance:         m.company.Balance,
		Capacity:        m.company.Capacity,
		MarketShare:     m.marketShare,
		MarketCondition: m.economy.Condition(),
		BaseDemand:      m.economy.BaseDemand(),
		QuartersPlayed:  len(m.history),
	}
}

// PlayQuarter advances the simulation by one quarter. Invalid decisions are
// rejected before any state changes; after a successful run the result is
// appended to history and the quarter counter moves forward. A quarter is
// atomic from the caller's perspective.
func (m *Manager) PlayQuarter(d Decisions) (QuarterResult, error) {
	if err := d.Validate(); err != nil {
		return QuarterResult{}, err
	}

	m.company.SetDecisions(d)
	m.economy.SimulateMarket()

	totalMarketDemand := int(float64(m.economy.BaseDemand()) * m.economy.MarketMultiplier())

	playerDemand := m.economy.CalculateDemand(d.Price, d.Marketing)
	playerDemand = int(float64(playerDemand) * (m.marketShare / 100))
	if playerDemand > m.company.Production {
		playerDemand = m.company.Production // lost sales are implicit
	}

	revenue := float64(playerDemand) * d.Price
	productionCost := float64(m.company.Production) * UnitProductionCost
	totalCosts := productionCost + d.Marketing + d.Research + d.Donations
	profit := revenue - totalCosts

	m.company.Balance += profit

	influence := d.Marketing/10000 - d.Price/100 + d.Research/5000
	m.marketShare = clampShare(m.marketShare + influence)

	m.postQuarter(d, revenue, productionCost)

	result := QuarterResult{
		Quarter:            m.quarter,
		MarketCondition:    m.economy.Condition(),
		TotalMarketDemand:  totalMarketDemand,
		PlayerDemand:       playerDemand,
		Revenue:            revenue,
		ProductionCost:     productionCost,
		TotalCosts:         totalCosts,
		Profit:             profit,
		Balance:            m.company.Balance,
		MarketShare:        m.marketShare,
		Price:              d.Price,
		Production:         d.Production,
		Marketing:          d.Marketing,
		CapacityInvestment: d.CapacityInvestment,
		Capacity:           m.company.Capacity,
		Research:           d.Research,
		Donations:          d.Donations,
	}
	m.history = append(m.history, result)
	m.quarter++
	return result, nil
}

// postQuarter writes the quarter's financial effects to the ledger: revenue
// credited to Sales and debited to Cash, each cost debited to its expense
// account and credited to Cash.
func (m *Manager) postQuarter(d Decisions, revenue, productionCost float64) {
	period := fmt.Sprintf("Q%d", m.quarter)

	m.ledger.Record(period, ledger.AccountSales, 0, revenue, "Revenue from sales")
	m.ledger.Record(period, ledger.AccountCash, revenue, 0, "Cash from sales")

	m.ledger.Record(period, ledger.AccountCOGS, productionCost, 0, "Cost of goods sold")
	m.ledger.Record(period, ledger.AccountCash, 0, productionCost, "Payment for production costs")

	m.ledger.Record(period, ledger.AccountMarketing, d.Marketing, 0, "Marketing expenses")
	m.ledger.Record(period, ledger.AccountCash, 0, d.Marketing, "Payment for marketing")

	m.ledger.Record(period, ledger.AccountRD, d.Research, 0, "R&D expenses")
	m.ledger.Record(period, ledger.AccountCash, 0, d.Research, "Payment for R&D")

	if d.CapacityInvestment > 0 {
		m.ledger.Record(period, ledger.AccountCapitalInvestment, d.CapacityInvestment, 0, "Investment in capacity")
		m.ledger.Record(period, ledger.AccountCash, 0, d.CapacityInvestment, "Payment for capacity investment")
	}
	if d.Donations > 0 {
		m.ledger.Record(period, ledger.AccountDonations, d.Donations, 0, "Charitable donations")
		m.ledger.Record(period, ledger.AccountCash, 0, d.Donations, "Payment for donations")
	}
}

// FinancialReport reads the latest quarter and, when a prior quarter
// exists, the period-over-period changes.
func (m *Manager) FinancialReport() (FinancialReport, error) {
	if len(m.history) == 0 {
		return FinancialReport{}, ErrNoQuartersPlayed
	}
	latest := m.history[len(m.history)-1]
	report := FinancialReport{
		Revenue:     latest.Revenue,
		Costs:       latest.TotalCosts,
		Profit:      latest.Profit,
		Balance:     latest.Balance,
		MarketShare: fmt.Sprintf("%.2f%%", latest.MarketShare),
		Capacity:    latest.Capacity,
		Demand:      latest.PlayerDemand,
		Production:  latest.Production,
		Sales:       min(latest.PlayerDemand, latest.Production),
	}
	if len(m.history) > 1 {
		previous := m.history[len(m.history)-2]
		report.RevenueChange = percentChange(latest.Revenue, previous.Revenue)
		report.ProfitChange = percentChange(latest.Profit, previous.Profit)
		report.MarketShareChange = fmt.Sprintf("%.2f%%", latest.MarketShare-previous.MarketShare)
	}
	return report, nil
}

func (m *Manager) MarketReport() (MarketReport, error) {
	if len(m.history) == 0 {
		return MarketReport{}, ErrNoQuartersPlayed
	}
	latest := m.history[len(m.history)-1]
	return MarketReport{
		MarketCondition:   latest.MarketCondition,
		TotalMarketDemand: latest.TotalMarketDemand,
		PlayerDemand:      latest.PlayerDemand,
		PlayerPrice:       latest.Price,
		MarketShare:       fmt.Sprintf("%.2f%%", latest.MarketShare),
	}, nil
}

// Statements delegates to the ledger.
func (m *Manager) Statements() ledger.Statements {
	return m.ledger.Statements()
}

// SerializeState renders the ledger and the latest game state as plain text
// for the advisory service. The output is prose for a language model, not a
// machine format.
func (m *Manager) SerializeState() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Company: %s\n", m.company.Name)
	fmt.Fprintf(&b, "Current quarter: %d\n", m.quarter)
	fmt.Fprintf(&b, "Balance: %.2f\n", m.company.Balance)
	fmt.Fprintf(&b, "Capacity: %.0f\n", m.company.Capacity)
	fmt.Fprintf(&b, "Market share: %.2f%%\n", m.marketShare)
	fmt.Fprintf(&b, "Market condition: %s (base demand %d)\n\n", m.economy.Condition(), m.economy.BaseDemand())

	if len(m.history) > 0 {
		latest := m.history[len(m.history)-1]
		fmt.Fprintf(&b, "Latest quarter %d: demand=%d revenue=%.2f costs=%.2f profit=%.2f\n\n",
			latest.Quarter, latest.PlayerDemand, latest.Revenue, latest.TotalCosts, latest.Profit)
	}

	b.WriteString("Ledger (period, account, debit, credit, description):\n")
	for _, t := range m.ledger.Transactions() {
		fmt.Fprintf(&b, "%s | %s | %.2f | %.2f | %s\n", t.Period, t.Account, t.Debit, t.Credit, t.Description)
	}
	return b.String()
}

// percentChange formats the relative change between two values. A zero base
// has no percentage: zero-to-zero is reported as N/A, zero-to-anything as
// infinite.
func percentChange(latest, previous float64) string {
	if previous == 0 {
		if latest == 0 {
			return "N/A"
		}
		return "∞"
	}
	return fmt.Sprintf("%.2f%%", (latest-previous)/previous*100)
}

func clampShare(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
