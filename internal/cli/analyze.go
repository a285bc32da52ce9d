// Package cli provides the command-line interface for the trading journal.
package cli

import (
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tradejournal/internal/analytics"
	"tradejournal/internal/models"
	"tradejournal/internal/store"
)

// addAnalyticsCommands adds performance analysis commands.
func addAnalyticsCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Performance analytics",
		Long:  "Analyze journal performance: equity, drawdown, win rates, ratios.",
	}

	cmd.AddCommand(newAnalyzeSummaryCmd(app))
	cmd.AddCommand(newAnalyzeEquityCmd(app))
	cmd.AddCommand(newAnalyzeDistributionCmd(app))
	cmd.AddCommand(newAnalyzeWinRateCmd(app))
	cmd.AddCommand(newAnalyzeStreakCmd(app))
	cmd.AddCommand(newAnalyzeHoldingCmd(app))
	cmd.AddCommand(newAnalyzeEmotionsCmd(app))

	rootCmd.AddCommand(cmd)
}

// loadTrades fetches trades for analysis, optionally scoped to one account.
func loadTrades(app *App, accountID string) ([]models.Trade, error) {
	ctx, cancel := storeContext()
	defer cancel()
	return app.Store.GetTrades(ctx, store.TradeFilter{AccountID: accountID})
}

func summaryOptions(app *App) analytics.SummaryOptions {
	return analytics.SummaryOptions{
		StartingBalance: app.Config.Journal.StartingBalance,
		RiskFreeRate:    app.Config.Analytics.RiskFreeRate,
		SortinoTarget:   app.Config.Analytics.SortinoTarget,
		StartDate:       app.Config.AnalyticsStartDate(),
	}
}

func newAnalyzeSummaryCmd(app *App) *cobra.Command {
	var accountID string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Headline performance statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := requireStore(app); err != nil {
				return err
			}
			trades, err := loadTrades(app, accountID)
			if err != nil {
				return err
			}

			summary := analytics.Summarize(trades, summaryOptions(app))
			if output.IsJSON() {
				return output.JSON(summary)
			}

			output.Bold("Performance Summary")
			output.Printf("  Balance:       %s\n", FormatCurrency(summary.CurrentBalance))
			output.Printf("  Total P&L:     %s\n", output.FormatPnL(summary.TotalPnL))
			output.Printf("  Win Rate:      %s (%dW / %dL / %dBE of %d)\n",
				FormatPercent(summary.WinRateStats.WinRate),
				summary.WinRateStats.Wins, summary.WinRateStats.Losses,
				summary.WinRateStats.Breakeven, summary.WinRateStats.Total)
			output.Printf("  Avg R:R:       %s (wins %s, losses %s)\n",
				FormatRiskReward(summary.RRStats.AvgRR),
				FormatRiskReward(summary.RRStats.AvgWinRR),
				FormatRiskReward(summary.RRStats.AvgLossRR))
			output.Printf("  Max Drawdown:  %s (%s)\n",
				FormatCurrency(summary.MaxDrawdown), FormatPercent(summary.MaxDrawdownPct))
			output.Printf("  Profit Factor: %.2f\n", summary.ProfitFactor)
			output.Printf("  Expectancy:    %s\n", FormatRiskReward(summary.Expectancy))
			output.Printf("  Sharpe:        %.2f\n", summary.Sharpe)
			output.Printf("  Sortino:       %.2f\n", summary.Sortino)
			output.Printf("  SQN:           %.2f\n", summary.SQN)
			output.Printf("  CAGR:          %s\n", FormatPercent(summary.CAGR))
			output.Printf("  Streak:        %d %s\n", summary.Streak.Count, summary.Streak.Type)
			if summary.InvalidCount > 0 || summary.IncompleteCount > 0 {
				output.Println()
				output.Warning("  %d invalid, %d incomplete trades excluded from analytics",
					summary.InvalidCount, summary.IncompleteCount)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "restrict to one account")
	return cmd
}

func newAnalyzeEquityCmd(app *App) *cobra.Command {
	var accountID string

	cmd := &cobra.Command{
		Use:   "equity",
		Short: "Equity curve and drawdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := requireStore(app); err != nil {
				return err
			}
			trades, err := loadTrades(app, accountID)
			if err != nil {
				return err
			}

			curve := analytics.EquityCurve(trades, app.Config.Journal.StartingBalance)
			dd := analytics.Drawdown(curve)

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"curve":    curve,
					"drawdown": dd,
				})
			}

			output.Bold("Equity Curve")
			table := NewTable(output, "Date", "Trade", "Balance")
			for _, p := range curve {
				date := "start"
				if p.Date != nil {
					date = FormatDate(*p.Date)
				}
				table.AddRow(date, p.TradeID, FormatCurrency(p.Balance))
			}
			table.Render()
			output.Println()
			output.Printf("  Max Drawdown:     %s (%s)\n",
				FormatCurrency(dd.MaxDrawdown), FormatPercent(dd.MaxDrawdownPct))
			output.Printf("  Current Drawdown: %s\n", FormatCurrency(dd.CurrentDrawdown))
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "restrict to one account")
	return cmd
}

func newAnalyzeDistributionCmd(app *App) *cobra.Command {
	var accountID string

	cmd := &cobra.Command{
		Use:   "distribution",
		Short: "Histogram of realized R-multiples",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := requireStore(app); err != nil {
				return err
			}
			trades, err := loadTrades(app, accountID)
			if err != nil {
				return err
			}

			buckets := analytics.RRDistribution(trades)
			if output.IsJSON() {
				return output.JSON(buckets)
			}

			max := 0
			for _, b := range buckets {
				if b.Count > max {
					max = b.Count
				}
			}

			output.Bold("R-Multiple Distribution")
			for _, b := range buckets {
				bar := ""
				if max > 0 {
					bar = strings.Repeat("█", b.Count*40/max)
				}
				color := ColorGreen
				if strings.HasPrefix(b.Label, "<") || strings.HasPrefix(b.Label, "-") {
					color = ColorRed
				}
				output.Printf("  %s %s %d\n",
					PadRight(b.Label, 12), output.ColoredString(color, bar), b.Count)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "restrict to one account")
	return cmd
}

func newAnalyzeWinRateCmd(app *App) *cobra.Command {
	var (
		accountID string
		by        string
	)

	cmd := &cobra.Command{
		Use:   "winrate",
		Short: "Win rate, overall or grouped by a trade field",
		Long: `Win rate over closed trades. With --by, breaks the rate down per
value of a trade field: setup_id, session, market_type, instrument,
direction, pre_trade_emotion, or exit_type.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := requireStore(app); err != nil {
				return err
			}
			trades, err := loadTrades(app, accountID)
			if err != nil {
				return err
			}

			if by == "" {
				stats := analytics.WinRate(trades)
				if output.IsJSON() {
					return output.JSON(stats)
				}
				output.Bold("Win Rate")
				output.Printf("  %s over %d closed trades (%dW / %dL / %dBE)\n",
					FormatPercent(stats.WinRate), stats.Total,
					stats.Wins, stats.Losses, stats.Breakeven)
				return nil
			}

			grouped := analytics.WinRateBy(trades, analytics.GroupBy(by))
			if output.IsJSON() {
				return output.JSON(grouped)
			}

			keys := make([]string, 0, len(grouped))
			for k := range grouped {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			output.Bold("Win Rate by %s", by)
			table := NewTable(output, strings.ToUpper(strings.ReplaceAll(by, "_", " ")), "Win Rate", "W", "L", "BE", "Total")
			for _, k := range keys {
				s := grouped[k]
				table.AddRow(k, FormatPercent(s.WinRate),
					PadLeft(itoa(s.Wins), 2), PadLeft(itoa(s.Losses), 2),
					PadLeft(itoa(s.Breakeven), 2), PadLeft(itoa(s.Total), 3))
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "restrict to one account")
	cmd.Flags().StringVar(&by, "by", "", "group by field")
	return cmd
}

func newAnalyzeStreakCmd(app *App) *cobra.Command {
	var accountID string

	cmd := &cobra.Command{
		Use:   "streak",
		Short: "Current run of identical outcomes",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := requireStore(app); err != nil {
				return err
			}
			trades, err := loadTrades(app, accountID)
			if err != nil {
				return err
			}

			streak := analytics.CurrentStreak(trades)
			if output.IsJSON() {
				return output.JSON(streak)
			}
			switch streak.Type {
			case "WIN":
				output.Success("%d consecutive wins", streak.Count)
			case "LOSS":
				output.Error("%d consecutive losses", streak.Count)
			case "NONE":
				output.Info("No closed trades yet.")
			default:
				output.Info("%d consecutive %s trades", streak.Count, streak.Type)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "restrict to one account")
	return cmd
}

func newAnalyzeHoldingCmd(app *App) *cobra.Command {
	var accountID string

	cmd := &cobra.Command{
		Use:   "holding",
		Short: "Holding-time statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := requireStore(app); err != nil {
				return err
			}
			trades, err := loadTrades(app, accountID)
			if err != nil {
				return err
			}

			stats := analytics.HoldingTimeStats(trades)
			if output.IsJSON() {
				return output.JSON(stats)
			}
			if stats == nil {
				output.Info("No closed trades with timestamps yet.")
				return nil
			}

			output.Bold("Holding Time")
			output.Printf("  Average:       %s\n", FormatHours(stats.AvgHoldHours))
			output.Printf("  Average (win): %s\n", FormatHours(stats.AvgWinHoldHours))
			output.Printf("  Average (loss): %s\n", FormatHours(stats.AvgLossHoldHours))
			output.Printf("  P&L per hour:  %s\n", output.FormatPnL(stats.PnLPerHour))
			output.Println()
			for _, b := range stats.Buckets {
				output.Printf("  %s %d\n", PadRight(b.Label, 10), b.Count)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "restrict to one account")
	return cmd
}

func newAnalyzeEmotionsCmd(app *App) *cobra.Command {
	var accountID string

	cmd := &cobra.Command{
		Use:   "emotions",
		Short: "Win rate by recorded pre-trade emotion",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := requireStore(app); err != nil {
				return err
			}
			trades, err := loadTrades(app, accountID)
			if err != nil {
				return err
			}

			stats := analytics.Psychometrics(trades)
			if output.IsJSON() {
				return output.JSON(stats)
			}

			output.Bold("Psychometrics")
			table := NewTable(output, "Emotion", "Win Rate", "Wins", "Total", "Avg P&L")
			for _, e := range models.Emotions {
				s := stats[e]
				if s.Total == 0 {
					continue
				}
				table.AddRow(string(e), FormatPercent(s.WinRate),
					itoa(s.Wins), itoa(s.Total), output.FormatPnL(s.AvgPnL))
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "restrict to one account")
	return cmd
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
