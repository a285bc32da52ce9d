// Package cli provides the command-line interface for the trading journal.
package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"tradejournal/internal/journal"
	"tradejournal/internal/models"
)

// addAccountCommands adds account, rule, and setup management commands.
func addAccountCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newAccountCmd(app))
	rootCmd.AddCommand(newSetupCmd(app))
	rootCmd.AddCommand(newRuleCmd(app))
}

func newAccountCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Trading account management",
	}

	var (
		name    string
		balance float64
	)
	addCmd := &cobra.Command{
		Use:   "add <account-id>",
		Short: "Add a trading account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := requireStore(app); err != nil {
				return err
			}
			ctx, cancel := storeContext()
			defer cancel()

			a := &models.Account{
				AccountID:      args[0],
				Name:           name,
				InitialBalance: balance,
				CurrentBalance: balance,
			}
			if err := app.Store.SaveAccount(ctx, a); err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(a)
			}
			output.Success("Account %s saved (%s)", a.AccountID, FormatCurrency(a.CurrentBalance))
			return nil
		},
	}
	addCmd.Flags().StringVar(&name, "name", "", "display name")
	addCmd.Flags().Float64Var(&balance, "balance", 0, "starting balance")
	cmd.AddCommand(addCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List trading accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := requireStore(app); err != nil {
				return err
			}
			ctx, cancel := storeContext()
			defer cancel()

			accounts, err := app.Store.GetAccounts(ctx)
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(accounts)
			}
			if len(accounts) == 0 {
				output.Info("No accounts yet. Add one with 'tradejournal account add'.")
				return nil
			}
			table := NewTable(output, "ID", "Name", "Initial", "Current")
			for _, a := range accounts {
				table.AddRow(a.AccountID, a.Name,
					FormatCurrency(a.InitialBalance),
					FormatCurrency(a.CurrentBalance))
			}
			table.Render()
			return nil
		},
	})

	return cmd
}

func newSetupCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Playbook setup management",
		Long:  "Setups are your playbook entries; trades reference them by ID.",
	}

	var status string
	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a setup to the playbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := requireStore(app); err != nil {
				return err
			}
			ctx, cancel := storeContext()
			defer cancel()

			setups, err := app.Store.GetSetups(ctx)
			if err != nil {
				return err
			}
			ids := make([]string, len(setups))
			for i, s := range setups {
				ids[i] = s.SetupID
			}
			s := &models.Setup{
				SetupID: journal.NextID("S-", ids),
				Name:    args[0],
				Status:  models.SetupStatus(strings.ToUpper(status)),
			}
			if err := app.Store.SaveSetup(ctx, s); err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(s)
			}
			output.Success("Setup %s (%s) saved", s.SetupID, s.Name)
			return nil
		},
	}
	addCmd.Flags().StringVar(&status, "status", "ACTIVE", "setup status: ACTIVE, PAUSED, RETIRED")
	cmd.AddCommand(addCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List playbook setups",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := requireStore(app); err != nil {
				return err
			}
			ctx, cancel := storeContext()
			defer cancel()

			setups, err := app.Store.GetSetups(ctx)
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(setups)
			}
			if len(setups) == 0 {
				output.Info("No setups yet.")
				return nil
			}
			table := NewTable(output, "ID", "Name", "Status")
			for _, s := range setups {
				table.AddRow(s.SetupID, s.Name, string(s.Status))
			}
			table.Render()
			return nil
		},
	})

	return cmd
}

func newRuleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rule",
		Short: "Risk rule management",
		Long:  "Rules bind risk limits to an account; validation enforces them.",
	}

	var (
		maxRisk     float64
		maxDaily    float64
		minRR       float64
		enforcement string
	)
	addCmd := &cobra.Command{
		Use:   "add <account-id>",
		Short: "Add a risk rule for an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := requireStore(app); err != nil {
				return err
			}
			ctx, cancel := storeContext()
			defer cancel()

			rules, err := app.Store.GetRules(ctx)
			if err != nil {
				return err
			}
			ids := make([]string, len(rules))
			for i, r := range rules {
				ids[i] = r.RuleID
			}
			r := &models.Rule{
				RuleID:             journal.NextID("R-", ids),
				AccountID:          args[0],
				MaxRiskPerTradePct: maxRisk,
				MaxDailyLossPct:    maxDaily,
				MinimumRR:          minRR,
				EnforcementLevel:   models.EnforcementLevel(strings.ToUpper(enforcement)),
			}
			if err := app.Store.SaveRule(ctx, r); err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(r)
			}
			output.Success("Rule %s saved for account %s", r.RuleID, r.AccountID)
			return nil
		},
	}
	addCmd.Flags().Float64Var(&maxRisk, "max-risk", 0, "max risk per trade, percent of balance")
	addCmd.Flags().Float64Var(&maxDaily, "max-daily-loss", 0, "max daily loss, percent of balance")
	addCmd.Flags().Float64Var(&minRR, "min-rr", 0, "minimum planned risk/reward")
	addCmd.Flags().StringVar(&enforcement, "enforcement", "WARNING", "WARNING or STRICT")
	cmd.AddCommand(addCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List risk rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := requireStore(app); err != nil {
				return err
			}
			ctx, cancel := storeContext()
			defer cancel()

			rules, err := app.Store.GetRules(ctx)
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(rules)
			}
			if len(rules) == 0 {
				output.Info("No rules yet.")
				return nil
			}
			table := NewTable(output, "ID", "Account", "Max Risk %", "Max Daily %", "Min R:R", "Enforcement")
			for _, r := range rules {
				table.AddRow(r.RuleID, r.AccountID,
					FormatPercent(r.MaxRiskPerTradePct),
					FormatPercent(r.MaxDailyLossPct),
					FormatRiskReward(r.MinimumRR),
					string(r.EnforcementLevel))
			}
			table.Render()
			return nil
		},
	})

	return cmd
}
