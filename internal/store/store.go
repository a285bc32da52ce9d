// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"time"

	"tradejournal/internal/models"
)

// DataStore defines the interface for journal persistence. The
// computation engines never touch it; the CLI loads snapshots here and
// feeds them through as plain slices.
type DataStore interface {
	// Trades
	SaveTrade(ctx context.Context, trade *models.Trade) error
	GetTrade(ctx context.Context, tradeID string) (*models.Trade, error)
	GetTrades(ctx context.Context, filter TradeFilter) ([]models.Trade, error)
	DeleteTrade(ctx context.Context, tradeID string) error

	// Accounts
	SaveAccount(ctx context.Context, account *models.Account) error
	GetAccounts(ctx context.Context) ([]models.Account, error)

	// Rules
	SaveRule(ctx context.Context, rule *models.Rule) error
	GetRules(ctx context.Context) ([]models.Rule, error)

	// Setups
	SaveSetup(ctx context.Context, setup *models.Setup) error
	GetSetups(ctx context.Context) ([]models.Setup, error)

	// Snapshot loads every collection at once for the engines.
	Snapshot(ctx context.Context) (*Snapshot, error)

	// Lifecycle
	Close() error
}

// TradeFilter represents filters for querying trades.
type TradeFilter struct {
	AccountID  string
	Instrument string
	MarketType models.MarketType
	State      models.TradeState
	StartDate  time.Time
	EndDate    time.Time
	Limit      int
}

// Snapshot is a consistent in-memory copy of every collection.
type Snapshot struct {
	Trades   []models.Trade
	Accounts []models.Account
	Rules    []models.Rule
	Setups   []models.Setup
}

// Account returns the snapshot's account by ID, or nil.
func (s *Snapshot) Account(accountID string) *models.Account {
	for i := range s.Accounts {
		if s.Accounts[i].AccountID == accountID {
			return &s.Accounts[i]
		}
	}
	return nil
}

// TradeIDs returns every trade ID in the snapshot, for ID minting.
func (s *Snapshot) TradeIDs() []string {
	ids := make([]string, len(s.Trades))
	for i, t := range s.Trades {
		ids[i] = t.TradeID
	}
	return ids
}
