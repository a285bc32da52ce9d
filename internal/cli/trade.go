// Package cli provides the command-line interface for the trading journal.
package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	apperrors "tradejournal/internal/errors"
	"tradejournal/internal/journal"
	"tradejournal/internal/logging"
	"tradejournal/internal/market"
	"tradejournal/internal/models"
	"tradejournal/internal/store"
)

const storeTimeout = 30 * time.Second

// addTradeCommands adds trade lifecycle commands.
func addTradeCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "trade",
		Short: "Trade lifecycle management",
		Long:  "Create, list, transition, and validate journal trades.",
	}

	cmd.AddCommand(newTradeAddCmd(app))
	cmd.AddCommand(newTradeListCmd(app))
	cmd.AddCommand(newTradeShowCmd(app))
	cmd.AddCommand(newTradeTransitionCmd(app))
	cmd.AddCommand(newTradeOpenCmd(app))
	cmd.AddCommand(newTradeCloseCmd(app))
	cmd.AddCommand(newTradeValidateCmd(app))
	cmd.AddCommand(newTradeDeleteCmd(app))

	rootCmd.AddCommand(cmd)
}

func requireStore(app *App) error {
	if app.Store == nil {
		return fmt.Errorf("store not initialized")
	}
	return nil
}

func storeContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), storeTimeout)
}

func newTradeAddCmd(app *App) *cobra.Command {
	var (
		accountID  string
		setupID    string
		marketType string
		instrument string
		direction  string
		entry      float64
		stop       float64
		target     float64
		riskPct    float64
		size       float64
		emotion    string
		notes      string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new trade in DRAFT state",
		Long: `Create a new trade. The trade starts in DRAFT and is validated
immediately; validation may promote it or leave it in DRAFT with warnings.

Position size is derived from --risk when --size is not given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := requireStore(app); err != nil {
				return err
			}
			ctx, cancel := storeContext()
			defer cancel()

			snap, err := app.Store.Snapshot(ctx)
			if err != nil {
				return err
			}

			if accountID == "" {
				accountID = app.Config.Journal.DefaultAccount
			}
			if marketType == "" {
				marketType = app.Config.Journal.DefaultMarketType
			}

			t := &models.Trade{
				TradeID:    journal.NextTradeID(snap.TradeIDs()),
				AccountID:  accountID,
				SetupID:    setupID,
				State:      models.StateDraft,
				MarketType: models.MarketType(strings.ToUpper(marketType)),
				Instrument: market.NormalizeSymbol(instrument),
				Direction:  models.Direction(strings.ToUpper(direction)),
				Notes:      notes,
			}
			if cmd.Flags().Changed("entry") {
				t.PlannedEntryPrice = &entry
			}
			if cmd.Flags().Changed("stop") {
				t.StopLoss = &stop
			}
			if cmd.Flags().Changed("target") {
				t.TakeProfit = &target
			}
			if cmd.Flags().Changed("risk") {
				t.RiskPct = &riskPct
			}
			if cmd.Flags().Changed("emotion") {
				t.PreTradeEmotion = models.Emotion(strings.ToUpper(emotion))
			}
			if cmd.Flags().Changed("size") {
				t.SetPositionSize(size)
			} else if t.RiskPct != nil {
				account := snap.Account(t.AccountID)
				if account != nil {
					balance := account.CurrentBalance
					computed := journal.PositionSizeFromRisk(
						&balance, t.RiskPct, t.PlannedEntryPrice, t.StopLoss,
						t.PipPointValue(), t.MarketType)
					if computed != nil {
						t.SetPositionSize(*computed)
					}
				}
			}
			now := time.Now().UTC()
			t.Session = market.SessionAt(now)

			result := journal.ApplyValidation(t, snap.Setups, snap.Rules, snap.Account(t.AccountID))
			if err := app.Store.SaveTrade(ctx, t); err != nil {
				return err
			}
			logging.LogTradeSaved(app.Logger, t.TradeID, string(t.State),
				len(result.Errors), len(result.Warnings))

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"trade":      t,
					"validation": result,
				})
			}

			output.Success("Trade %s created (%s)", t.TradeID, t.State)
			printValidation(output, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "account ID (default from config)")
	cmd.Flags().StringVar(&setupID, "setup", "", "setup ID from the playbook")
	cmd.Flags().StringVar(&marketType, "market", "", "market type: FOREX, INDICES, CRYPTO, FUTURES, STOCKS")
	cmd.Flags().StringVar(&instrument, "instrument", "", "instrument symbol, e.g. EURUSD")
	cmd.Flags().StringVar(&direction, "direction", "", "LONG or SHORT")
	cmd.Flags().Float64Var(&entry, "entry", 0, "planned entry price")
	cmd.Flags().Float64Var(&stop, "stop", 0, "stop loss price")
	cmd.Flags().Float64Var(&target, "target", 0, "take profit price")
	cmd.Flags().Float64Var(&riskPct, "risk", 0, "risk as percent of account balance")
	cmd.Flags().Float64Var(&size, "size", 0, "position size (lots/contracts/shares/quantity)")
	cmd.Flags().StringVar(&emotion, "emotion", "", "pre-trade emotion")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	cmd.MarkFlagRequired("instrument")
	cmd.MarkFlagRequired("direction")

	return cmd
}

func newTradeListCmd(app *App) *cobra.Command {
	var (
		accountID  string
		state      string
		instrument string
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List trades",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := requireStore(app); err != nil {
				return err
			}
			ctx, cancel := storeContext()
			defer cancel()

			trades, err := app.Store.GetTrades(ctx, store.TradeFilter{
				AccountID:  accountID,
				State:      models.TradeState(strings.ToUpper(state)),
				Instrument: market.NormalizeSymbol(instrument),
				Limit:      limit,
			})
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(trades)
			}
			if len(trades) == 0 {
				output.Info("No trades found.")
				return nil
			}

			table := NewTable(output, "ID", "State", "Market", "Instrument", "Dir", "Entry", "Stop", "Target", "R:R", "P&L", "Status")
			for _, t := range trades {
				pl := "-"
				if t.NetPL != nil {
					pl = output.FormatPnL(*t.NetPL)
				}
				table.AddRow(
					t.TradeID,
					string(t.State),
					string(t.MarketType),
					t.Instrument,
					string(t.Direction),
					FormatOptionalFloat(t.PlannedEntryPrice, "%.5g"),
					FormatOptionalFloat(t.StopLoss, "%.5g"),
					FormatOptionalFloat(t.TakeProfit, "%.5g"),
					FormatOptionalFloat(t.PlannedRR, "%.2f"),
					pl,
					output.StatusTag(string(t.Status)),
				)
			}
			table.Render()
			output.Println()
			output.Dim("%d trade(s)", len(trades))
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "filter by account")
	cmd.Flags().StringVar(&state, "state", "", "filter by state")
	cmd.Flags().StringVar(&instrument, "instrument", "", "filter by instrument")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum trades to show")

	return cmd
}

func newTradeShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <trade-id>",
		Short: "Show a single trade in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := requireStore(app); err != nil {
				return err
			}
			ctx, cancel := storeContext()
			defer cancel()

			t, err := app.Store.GetTrade(ctx, args[0])
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(t)
			}

			output.Bold("%s  %s %s %s", t.TradeID, t.MarketType, t.Instrument, t.Direction)
			output.Printf("  State:     %s\n", t.State)
			if t.Status != "" {
				output.Printf("  Status:    %s\n", output.StatusTag(string(t.Status)))
			}
			output.Printf("  Account:   %s\n", t.AccountID)
			if t.SetupID != "" {
				output.Printf("  Setup:     %s\n", t.SetupID)
			}
			if t.Session != "" {
				output.Printf("  Session:   %s\n", t.Session)
			}
			output.Println()
			output.Printf("  Entry:     %s (planned)  %s (actual)\n",
				FormatOptionalFloat(t.PlannedEntryPrice, "%.5g"),
				FormatOptionalFloat(t.ActualEntryPrice, "%.5g"))
			output.Printf("  Stop:      %s\n", FormatOptionalFloat(t.StopLoss, "%.5g"))
			output.Printf("  Target:    %s\n", FormatOptionalFloat(t.TakeProfit, "%.5g"))
			output.Printf("  Exit:      %s\n", FormatOptionalFloat(t.ExitPrice, "%.5g"))
			if size := t.PositionSize(); size != nil {
				output.Printf("  Size:      %.2f\n", *size)
			}
			output.Println()
			output.Printf("  Planned R:R: %s\n", FormatOptionalFloat(t.PlannedRR, "%.2f"))
			output.Printf("  Actual R:R:  %s\n", FormatOptionalFloat(t.ActualRR, "%.2f"))
			if t.NetPL != nil {
				output.Printf("  Net P&L:     %s\n", output.FormatPnL(*t.NetPL))
			}
			if t.HoldingHours != nil {
				output.Printf("  Held:        %s\n", FormatHours(*t.HoldingHours))
			}
			if t.EntryTime() != nil {
				output.Printf("  Entered:     %s\n", FormatDateTime(*t.EntryTime()))
			}
			if t.ExitTimeUTC != nil {
				output.Printf("  Exited:      %s\n", FormatDateTime(*t.ExitTimeUTC))
			}
			if t.PreTradeEmotion != "" {
				output.Printf("  Emotion:     %s\n", t.PreTradeEmotion)
			}
			if t.Notes != "" {
				output.Println()
				output.Dim("  %s", t.Notes)
			}
			return nil
		},
	}
}

func newTradeTransitionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "transition <trade-id> <new-state>",
		Short: "Move a trade to a new lifecycle state",
		Long: `Move a trade to a new state. Allowed transitions depend on the
current state; OPEN requires actual entry and stop prices, CLOSED
requires an exit price. Use --help on 'trade show' to inspect a trade.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := requireStore(app); err != nil {
				return err
			}
			ctx, cancel := storeContext()
			defer cancel()

			t, err := app.Store.GetTrade(ctx, args[0])
			if err != nil {
				return err
			}
			next := models.TradeState(strings.ToUpper(args[1]))

			result := journal.ValidateTransition(t.State, next, t)
			if !result.Valid {
				output.Error("Cannot transition %s: %s", t.TradeID, result.Error)
				allowed := journal.AllowedTransitions(t.State)
				if len(allowed) > 0 {
					names := make([]string, len(allowed))
					for i, s := range allowed {
						names[i] = string(s)
					}
					output.Dim("Allowed from %s: %s", t.State, strings.Join(names, ", "))
				}
				return apperrors.NewTransitionError(t.TradeID, string(t.State), string(next), result.Error)
			}

			from := t.State
			t.State = next
			journal.Recompute(t)
			if err := app.Store.SaveTrade(ctx, t); err != nil {
				return err
			}
			logging.LogTransition(app.Logger, t.TradeID, string(from), string(next))

			if output.IsJSON() {
				return output.JSON(t)
			}
			output.Success("Trade %s: %s → %s", t.TradeID, from, next)
			return nil
		},
	}
}

func newTradeOpenCmd(app *App) *cobra.Command {
	var (
		entry float64
		stop  float64
	)

	cmd := &cobra.Command{
		Use:   "open <trade-id>",
		Short: "Open a planned trade with its actual fill",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := requireStore(app); err != nil {
				return err
			}
			ctx, cancel := storeContext()
			defer cancel()

			t, err := app.Store.GetTrade(ctx, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("entry") {
				t.ActualEntryPrice = &entry
			} else if t.ActualEntryPrice == nil {
				t.ActualEntryPrice = t.PlannedEntryPrice
			}
			if cmd.Flags().Changed("stop") {
				t.StopLoss = &stop
			}
			now := time.Now().UTC()
			t.EntryTimeUTC = &now
			t.Session = market.SessionAt(now)

			result := journal.ValidateTransition(t.State, models.StateOpen, t)
			if !result.Valid {
				output.Error("Cannot open %s: %s", t.TradeID, result.Error)
				return apperrors.NewTransitionError(t.TradeID, string(t.State), string(models.StateOpen), result.Error)
			}

			from := t.State
			t.State = models.StateOpen
			journal.Recompute(t)
			if err := app.Store.SaveTrade(ctx, t); err != nil {
				return err
			}
			logging.LogTransition(app.Logger, t.TradeID, string(from), string(t.State))

			if output.IsJSON() {
				return output.JSON(t)
			}
			output.Success("Trade %s opened at %s", t.TradeID,
				FormatOptionalFloat(t.ActualEntryPrice, "%.5g"))
			return nil
		},
	}

	cmd.Flags().Float64Var(&entry, "entry", 0, "actual entry price (default: planned entry)")
	cmd.Flags().Float64Var(&stop, "stop", 0, "adjusted stop loss price")

	return cmd
}

func newTradeCloseCmd(app *App) *cobra.Command {
	var (
		exit     float64
		exitType string
	)

	cmd := &cobra.Command{
		Use:   "close <trade-id>",
		Short: "Close an open trade with its exit price",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := requireStore(app); err != nil {
				return err
			}
			ctx, cancel := storeContext()
			defer cancel()

			t, err := app.Store.GetTrade(ctx, args[0])
			if err != nil {
				return err
			}

			t.ExitPrice = &exit
			if exitType != "" {
				t.ExitType = models.ExitType(strings.ToUpper(exitType))
			}
			now := time.Now().UTC()
			t.ExitTimeUTC = &now

			result := journal.ValidateTransition(t.State, models.StateClosed, t)
			if !result.Valid {
				output.Error("Cannot close %s: %s", t.TradeID, result.Error)
				return apperrors.NewTransitionError(t.TradeID, string(t.State), string(models.StateClosed), result.Error)
			}

			from := t.State
			t.State = models.StateClosed
			journal.Recompute(t)
			if err := app.Store.SaveTrade(ctx, t); err != nil {
				return err
			}
			logging.LogTransition(app.Logger, t.TradeID, string(from), string(t.State))

			if output.IsJSON() {
				return output.JSON(t)
			}
			output.Success("Trade %s closed (%s)", t.TradeID, t.Status)
			if t.NetPL != nil {
				output.Printf("  Net P&L:    %s\n", output.FormatPnL(*t.NetPL))
			}
			if t.ActualRR != nil {
				output.Printf("  Actual R:R: %s\n", FormatRiskReward(*t.ActualRR))
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&exit, "exit", 0, "exit price")
	cmd.Flags().StringVar(&exitType, "exit-type", "", "exit type: TP, SL, MANUAL, TIME, BREAKEVEN")
	cmd.MarkFlagRequired("exit")

	return cmd
}

func newTradeValidateCmd(app *App) *cobra.Command {
	var apply bool

	cmd := &cobra.Command{
		Use:   "validate <trade-id>",
		Short: "Validate a trade against account rules and playbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := requireStore(app); err != nil {
				return err
			}
			if len(args) != 1 {
				return fmt.Errorf("expected one trade ID")
			}
			ctx, cancel := storeContext()
			defer cancel()

			t, err := app.Store.GetTrade(ctx, args[0])
			if err != nil {
				return err
			}
			snap, err := app.Store.Snapshot(ctx)
			if err != nil {
				return err
			}

			var result journal.ValidationResult
			if apply {
				result = journal.ApplyValidation(t, snap.Setups, snap.Rules, snap.Account(t.AccountID))
				if err := app.Store.SaveTrade(ctx, t); err != nil {
					return err
				}
			} else {
				journal.Recompute(t)
				result = journal.ValidateTrade(t, snap.Setups, snap.Rules, snap.Account(t.AccountID))
			}

			if output.IsJSON() {
				return output.JSON(result)
			}
			if result.IsValid && len(result.Warnings) == 0 {
				output.Success("✓ Trade %s is valid", t.TradeID)
			}
			printValidation(output, result)
			output.Dim("Derived state: %s", result.State)
			return nil
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "apply the derived state to the trade")

	return cmd
}

func newTradeDeleteCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <trade-id>",
		Short: "Delete a trade from the journal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := requireStore(app); err != nil {
				return err
			}
			ctx, cancel := storeContext()
			defer cancel()

			t, err := app.Store.GetTrade(ctx, args[0])
			if err != nil {
				return err
			}
			if t.Closed() && !force {
				output.Warning("Trade %s is CLOSED; use --force to delete anyway.", t.TradeID)
				return apperrors.ErrTradeClosed
			}

			if err := app.Store.DeleteTrade(ctx, t.TradeID); err != nil {
				return err
			}
			output.Success("Trade %s deleted", t.TradeID)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "delete even if the trade is closed")

	return cmd
}

func printValidation(output *Output, result journal.ValidationResult) {
	for _, e := range result.Errors {
		output.Error("  ✗ %s", e)
	}
	for _, w := range result.Warnings {
		output.Warning("  ⚠ %s", w)
	}
}
