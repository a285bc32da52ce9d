// Package cli provides the command-line interface for the trading journal.
package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	apperrors "tradejournal/internal/errors"
	"tradejournal/internal/journal"
	"tradejournal/internal/store"
)

// addDataCommands adds import/export commands.
func addDataCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Import and export journal data",
	}

	cmd.AddCommand(newDataExportCmd(app))
	cmd.AddCommand(newDataImportCmd(app))

	rootCmd.AddCommand(cmd)
}

func newDataExportCmd(app *App) *cobra.Command {
	var (
		accountID string
		path      string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export trades to CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := requireStore(app); err != nil {
				return err
			}
			ctx, cancel := storeContext()
			defer cancel()

			trades, err := app.Store.GetTrades(ctx, store.TradeFilter{AccountID: accountID})
			if err != nil {
				return err
			}

			f, err := os.Create(path)
			if err != nil {
				return err
			}
			defer f.Close()

			if err := store.ExportTradesCSV(f, trades); err != nil {
				return err
			}
			output.Success("Exported %d trade(s) to %s", len(trades), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "restrict to one account")
	cmd.Flags().StringVar(&path, "out", "trades.csv", "output file path")

	return cmd
}

func newDataImportCmd(app *App) *cobra.Command {
	var (
		path   string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import trades from CSV",
		Long: `Import trades from CSV. Trades without an ID are assigned fresh
sequential IDs; derived fields are recomputed and each trade is
validated before saving. Invalid rows are reported and skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := requireStore(app); err != nil {
				return err
			}
			ctx, cancel := storeContext()
			defer cancel()

			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			trades, err := store.ImportTradesCSV(f)
			if err != nil {
				return err
			}

			snap, err := app.Store.Snapshot(ctx)
			if err != nil {
				return err
			}
			ids := snap.TradeIDs()

			var saved, skipped int
			for i := range trades {
				t := &trades[i]
				if t.TradeID == "" {
					t.TradeID = journal.NextTradeID(ids)
					ids = append(ids, t.TradeID)
				}
				result := journal.ApplyValidation(t, snap.Setups, snap.Rules, snap.Account(t.AccountID))
				if !result.IsValid {
					skipped++
					rowErr := apperrors.NewImportError(i+1, strings.Join(result.Errors, "; "))
					output.Warning("Skipping %s: %v", t.TradeID, rowErr)
					continue
				}
				if dryRun {
					saved++
					continue
				}
				if err := app.Store.SaveTrade(ctx, t); err != nil {
					return err
				}
				saved++
			}

			if dryRun {
				output.Info("Dry run: %d trade(s) would be imported, %d skipped", saved, skipped)
			} else {
				output.Success("Imported %d trade(s), skipped %d", saved, skipped)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "in", "trades.csv", "input file path")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate without saving")

	return cmd
}
