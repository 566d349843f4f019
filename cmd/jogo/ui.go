package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/Escribaup/jogo-empresarial/internal/game"
	"github.com/Escribaup/jogo-empresarial/internal/ledger"
)

var (
	stdinReader = bufio.NewReader(os.Stdin)
	accent      = color.New(color.FgCyan, color.Bold)
	success     = color.New(color.FgGreen, color.Bold)
	warn        = color.New(color.FgYellow, color.Bold)
	danger      = color.New(color.FgRed, color.Bold)
	neutral     = color.New(color.FgHiWhite)
)

func printSuccess(msg string) {
	success.Println(msg)
}

func printWarn(msg string) {
	warn.Println(msg)
}

func printInfo(msg string) {
	neutral.Println(msg)
}

func promptRequired(label string) (string, error) {
	for {
		fmt.Printf("%s: ", label)
		text, err := stdinReader.ReadString('\n')
		if err != nil {
			return "", err
		}
		text = strings.TrimSpace(text)
		if text != "" {
			return text, nil
		}
		printWarn(label + " is required.")
	}
}

func promptFloat(label string, min float64) (float64, error) {
	for {
		text, err := promptRequired(label)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			printWarn("Enter a valid number.")
			continue
		}
		if v < min {
			printWarn(fmt.Sprintf("Value must be >= %.2f", min))
			continue
		}
		return v, nil
	}
}

func promptInt(label string, min int) (int, error) {
	for {
		text, err := promptRequired(label)
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(text)
		if err != nil {
			printWarn("Enter a whole number.")
			continue
		}
		if v < min {
			printWarn(fmt.Sprintf("Value must be >= %d", min))
			continue
		}
		return v, nil
	}
}

func promptConfirm(label string) (bool, error) {
	for {
		fmt.Printf("%s (y/n): ", label)
		text, err := stdinReader.ReadString('\n')
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(text)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		printWarn("Answer y or n.")
	}
}

// promptDecisions collects the quarter's decisions over plain line prompts.
// Used with --plain, and as the fallback where the interactive form cannot
// run.
func promptDecisions(snap game.Snapshot) (game.Decisions, bool, error) {
	accent.Printf("\n== QUARTER %d DECISIONS ==\n", snap.Quarter)
	printInfo(fmt.Sprintf("Balance %.2f | Capacity %.0f | Market share %.2f%%", snap.Balance, snap.Capacity, snap.MarketShare))

	price, err := promptFloat("Unit price", 0)
	if err != nil {
		return game.Decisions{}, false, err
	}
	production, err := promptInt("Production volume", 0)
	if err != nil {
		return game.Decisions{}, false, err
	}
	marketing, err := promptFloat("Marketing spend", 0)
	if err != nil {
		return game.Decisions{}, false, err
	}
	investment, err := promptFloat("Capacity investment", 0)
	if err != nil {
		return game.Decisions{}, false, err
	}
	research, err := promptFloat("R&D spend", 0)
	if err != nil {
		return game.Decisions{}, false, err
	}
	donations, err := promptFloat("Donations", 0)
	if err != nil {
		return game.Decisions{}, false, err
	}

	confirmed, err := promptConfirm("Run the quarter with these decisions?")
	if err != nil {
		return game.Decisions{}, false, err
	}
	return game.Decisions{
		Price:              price,
		Production:         production,
		Marketing:          marketing,
		CapacityInvestment: investment,
		Research:           research,
		Donations:          donations,
	}, confirmed, nil
}

func renderSnapshot(snap game.Snapshot) {
	accent.Printf("\n== %s ==\n", strings.ToUpper(snap.CompanyName))
	fmt.Printf("Quarter:          %d\n", snap.Quarter)
	fmt.Printf("Balance:          %s\n", colorizeMoney(snap.Balance))
	fmt.Printf("Capacity:         %.0f\n", snap.Capacity)
	fmt.Printf("Market share:     %.2f%%\n", snap.MarketShare)
	fmt.Printf("Market condition: %s (base demand %d)\n", snap.MarketCondition, snap.BaseDemand)
	fmt.Printf("Quarters played:  %d\n\n", snap.QuartersPlayed)
}

func renderQuarterResult(r game.QuarterResult) {
	accent.Printf("\n== QUARTER %d RESULTS ==\n", r.Quarter)
	fmt.Printf("Market condition:  %s\n", r.MarketCondition)
	fmt.Printf("Market demand:     %d units\n", r.TotalMarketDemand)
	fmt.Printf("Units sold:        %d of %d produced\n", r.PlayerDemand, r.Production)
	fmt.Printf("Revenue:           %.2f\n", r.Revenue)
	fmt.Printf("Total costs:       %.2f\n", r.TotalCosts)
	fmt.Printf("Profit:            %s\n", colorizeMoney(r.Profit))
	fmt.Printf("Balance:           %s\n", colorizeMoney(r.Balance))
	fmt.Printf("Market share:      %.2f%%\n\n", r.MarketShare)
}

func renderHistory(quarters []game.QuarterResult) {
	accent.Println("\n== QUARTER HISTORY ==")
	if len(quarters) == 0 {
		printInfo("No quarters played yet.")
		return
	}
	fmt.Printf("%-4s %-8s %10s %12s %12s %12s %12s %8s\n",
		"Q", "MARKET", "SOLD", "REVENUE", "COSTS", "PROFIT", "BALANCE", "SHARE")
	for _, q := range quarters {
		fmt.Printf("%-4d %-8s %10d %12.2f %12.2f %12s %12.2f %7.2f%%\n",
			q.Quarter,
			q.MarketCondition,
			q.PlayerDemand,
			q.Revenue,
			q.TotalCosts,
			colorizeMoney(q.Profit),
			q.Balance,
			q.MarketShare,
		)
	}
	fmt.Println()
}

func renderLedger(transactions []ledger.Transaction) {
	accent.Println("\n== LEDGER ==")
	if len(transactions) == 0 {
		printInfo("No transactions yet.")
		return
	}
	fmt.Printf("%-8s %-20s %12s %12s  %s\n", "PERIOD", "ACCOUNT", "DEBIT", "CREDIT", "DESCRIPTION")
	for _, t := range transactions {
		fmt.Printf("%-8s %-20s %12.2f %12.2f  %s\n", t.Period, t.Account, t.Debit, t.Credit, t.Description)
	}
	fmt.Println()
}

func renderStatements(s ledger.Statements) {
	accent.Println("\n== INCOME STATEMENT ==")
	fmt.Printf("Sales:               %12.2f\n", s.Income.Sales)
	fmt.Printf("Cost of goods sold:  %12.2f\n", s.Income.CostOfGoodsSold)
	fmt.Printf("Gross margin:        %12.2f\n", s.Income.GrossMargin)
	fmt.Printf("Marketing:           %12.2f\n", s.Income.Marketing)
	fmt.Printf("R&D:                 %12.2f\n", s.Income.RD)
	fmt.Printf("Charitable giving:   %12.2f\n", s.Income.CharitableGiving)
	fmt.Printf("Net profit:          %12s\n", colorizeMoney(s.Income.NetProfit))

	accent.Println("\n== BALANCE SHEET ==")
	fmt.Printf("Cash:                %12.2f\n", s.Balance.Cash)
	fmt.Printf("Inventory:           %12.2f\n", s.Balance.Inventory)
	fmt.Printf("Capital investment:  %12.2f\n", s.Balance.CapitalInvestment)
	fmt.Printf("Total assets:        %12.2f\n", s.Balance.TotalAssets)
	fmt.Printf("Loans:               %12.2f\n", s.Balance.Loans)
	fmt.Printf("Retained earnings:   %12.2f\n", s.Balance.RetainedEarnings)
	fmt.Printf("Capital:             %12.2f\n", s.Balance.Capital)
	fmt.Printf("Liabilities+equity:  %12.2f\n", s.Balance.TotalLiabilitiesEquity)

	accent.Println("\n== CASH FLOW ==")
	fmt.Printf("Beginning cash:      %12.2f\n", s.CashFlow.BeginningCash)
	fmt.Printf("Net profit:          %12.2f\n", s.CashFlow.NetProfit)
	fmt.Printf("Depreciation:        %12.2f\n", s.CashFlow.Depreciation)
	fmt.Printf("Capital investment:  %12.2f\n", s.CashFlow.CapitalInvestment)
	fmt.Printf("Inventory change:    %12.2f\n", s.CashFlow.InventoryChange)
	fmt.Printf("Loan changes:        %12.2f\n", s.CashFlow.LoanChanges)
	fmt.Printf("Available cash:      %12.2f\n", s.CashFlow.AvailableCash)
	fmt.Printf("Available credit:    %12.2f\n", s.CashFlow.AvailableCredit)
	fmt.Printf("Funds available:     %12.2f\n", s.CashFlow.FundsAvailable)

	accent.Println("\n== PRODUCTION & MARKETING ==")
	p := s.ProductionMarketing.Production
	m := s.ProductionMarketing.Marketing
	fmt.Printf("Production:          %12.2f\n", p.Production)
	fmt.Printf("Factory capacity:    %12.2f\n", p.FactoryCapacity)
	fmt.Printf("Utilization:         %11.2f%%\n", p.CapacityUtilization)
	fmt.Printf("Cost per unit:       %12.2f\n", p.ProductionCostUnit)
	fmt.Printf("Employees:           %12d\n", p.Employees)
	fmt.Printf("Orders received:     %12.2f\n", m.OrdersReceived)
	fmt.Printf("Sales made:          %12.2f\n", m.SalesMade)
	fmt.Printf("Price per unit:      %12.2f\n", m.PricePerUnit)
	fmt.Printf("Margin per unit:     %12.2f\n\n", m.MarginPerUnit)
}

func renderFinancialReport(r game.FinancialReport) {
	accent.Println("\n== FINANCIAL REPORT ==")
	fmt.Printf("Revenue:       %12.2f   %s\n", r.Revenue, changeSuffix(r.RevenueChange))
	fmt.Printf("Costs:         %12.2f\n", r.Costs)
	fmt.Printf("Profit:        %12s   %s\n", colorizeMoney(r.Profit), changeSuffix(r.ProfitChange))
	fmt.Printf("Balance:       %12.2f\n", r.Balance)
	fmt.Printf("Market share:  %12s   %s\n", r.MarketShare, changeSuffix(r.MarketShareChange))
	fmt.Printf("Capacity:      %12.0f\n", r.Capacity)
	fmt.Printf("Demand:        %12d\n", r.Demand)
	fmt.Printf("Production:    %12d\n", r.Production)
	fmt.Printf("Sales:         %12d\n\n", r.Sales)
}

func renderMarketReport(r game.MarketReport) {
	accent.Println("\n== MARKET REPORT ==")
	fmt.Printf("Condition:      %s\n", r.MarketCondition)
	fmt.Printf("Market demand:  %d units\n", r.TotalMarketDemand)
	fmt.Printf("Your demand:    %d units\n", r.PlayerDemand)
	fmt.Printf("Your price:     %.2f\n", r.PlayerPrice)
	fmt.Printf("Market share:   %s\n\n", r.MarketShare)
}

func changeSuffix(change string) string {
	if change == "" {
		return ""
	}
	return "(" + change + " vs last quarter)"
}

func colorizeMoney(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	if v < 0 {
		return danger.Sprint(s)
	}
	return success.Sprint(s)
}
