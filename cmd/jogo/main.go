package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	cl "github.com/Escribaup/jogo-empresarial/internal/cli"
	"github.com/Escribaup/jogo-empresarial/internal/config"
	"github.com/Escribaup/jogo-empresarial/internal/game"
)

func main() {
	cfg := config.LoadCLIFromEnv()
	apiBase := cfg.APIBaseURL

	root := &cobra.Command{
		Use:          "jogo",
		Short:        "Business simulation game client",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&apiBase, "api", apiBase, "API base URL")

	root.AddCommand(
		newNewCmd(&apiBase),
		newDashCmd(&apiBase),
		newPlayCmd(&apiBase),
		newHistoryCmd(&apiBase),
		newLedgerCmd(&apiBase),
		newStatementsCmd(&apiBase),
		newReportCmd(&apiBase),
		newAdviceCmd(&apiBase),
		newEndCmd(&apiBase),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newClient(apiBase *string) *cl.Client {
	return cl.NewClient(strings.TrimRight(strings.TrimSpace(*apiBase), "/"))
}

func cmdContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), 60*time.Second)
}

func newNewCmd(apiBase *string) *cobra.Command {
	var seed int64
	var balance float64
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a new game",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := promptRequired("Company name")
			if err != nil {
				return err
			}

			ctx, cancel := cmdContext(cmd)
			defer cancel()
			client := newClient(apiBase)
			snap, err := client.CreateGame(ctx, name, balance, seed)
			if err != nil {
				return err
			}
			if err := cl.SaveSession(cl.Session{
				GameID:      snap.GameID,
				CompanyName: snap.CompanyName,
				APIBaseURL:  *apiBase,
			}); err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Game started for %s. Session saved.", snap.CompanyName))
			renderSnapshot(snap)
			return nil
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 0, "deterministic market seed (0 = random)")
	cmd.Flags().Float64Var(&balance, "balance", 0, "starting balance (0 = server default)")
	return cmd
}

func newDashCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "dash",
		Short: "Show the current company standing",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := cl.LoadSession()
			if err != nil {
				return err
			}
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			snap, err := newClient(apiBase).GameState(ctx, session.GameID)
			if err != nil {
				return err
			}
			renderSnapshot(snap)
			return nil
		},
	}
}

func newPlayCmd(apiBase *string) *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Decide and simulate the next quarter",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := cl.LoadSession()
			if err != nil {
				return err
			}
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			client := newClient(apiBase)

			snap, err := client.GameState(ctx, session.GameID)
			if err != nil {
				return err
			}

			var decisions game.Decisions
			var confirmed bool
			if plain {
				decisions, confirmed, err = promptDecisions(snap)
			} else {
				decisions, confirmed, err = decisionForm(snap)
			}
			if err != nil {
				return err
			}
			if !confirmed {
				printWarn("Quarter cancelled.")
				return nil
			}

			result, err := client.PlayQuarter(ctx, session.GameID, decisions, uuid.NewString())
			if err != nil {
				return err
			}
			renderQuarterResult(result)
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "use line prompts instead of the interactive form")
	return cmd
}

func newHistoryCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List every played quarter",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := cl.LoadSession()
			if err != nil {
				return err
			}
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			quarters, err := newClient(apiBase).QuarterHistory(ctx, session.GameID)
			if err != nil {
				return err
			}
			renderHistory(quarters)
			return nil
		},
	}
}

func newLedgerCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "ledger",
		Short: "Show the accounting ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := cl.LoadSession()
			if err != nil {
				return err
			}
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			transactions, err := newClient(apiBase).Ledger(ctx, session.GameID)
			if err != nil {
				return err
			}
			renderLedger(transactions)
			return nil
		},
	}
}

func newStatementsCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "statements",
		Short: "Show the financial statements",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := cl.LoadSession()
			if err != nil {
				return err
			}
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			statements, err := newClient(apiBase).Statements(ctx, session.GameID)
			if err != nil {
				return err
			}
			renderStatements(statements)
			return nil
		},
	}
}

func newReportCmd(apiBase *string) *cobra.Command {
	report := &cobra.Command{
		Use:   "report",
		Short: "Quarterly reports",
	}
	report.AddCommand(
		&cobra.Command{
			Use:   "financial",
			Short: "Financial report for the latest quarter",
			RunE: func(cmd *cobra.Command, args []string) error {
				session, err := cl.LoadSession()
				if err != nil {
					return err
				}
				ctx, cancel := cmdContext(cmd)
				defer cancel()
				r, err := newClient(apiBase).FinancialReport(ctx, session.GameID)
				if err != nil {
					return err
				}
				renderFinancialReport(r)
				return nil
			},
		},
		&cobra.Command{
			Use:   "market",
			Short: "Market report for the latest quarter",
			RunE: func(cmd *cobra.Command, args []string) error {
				session, err := cl.LoadSession()
				if err != nil {
					return err
				}
				ctx, cancel := cmdContext(cmd)
				defer cancel()
				r, err := newClient(apiBase).MarketReport(ctx, session.GameID)
				if err != nil {
					return err
				}
				renderMarketReport(r)
				return nil
			},
		},
	)
	return report
}

func newAdviceCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "advice [question]",
		Short: "Ask the business consultant",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := cl.LoadSession()
			if err != nil {
				return err
			}
			question := ""
			if len(args) == 1 {
				question = args[0]
			}
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			advice, err := newClient(apiBase).Advice(ctx, session.GameID, question)
			if err != nil {
				return err
			}
			accent.Println("\n== CONSULTANT ==")
			fmt.Println(advice)
			fmt.Println()
			return nil
		},
	}
}

func newEndCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "end",
		Short: "End the current game and clear the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := cl.LoadSession()
			if err != nil {
				return err
			}
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			if err := newClient(apiBase).DeleteGame(ctx, session.GameID); err != nil {
				printWarn(fmt.Sprintf("server delete failed: %v", err))
			}
			if err := cl.ClearSession(); err != nil {
				return err
			}
			printSuccess("Game over. Session cleared.")
			return nil
		},
	}
}
