package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"tradejournal/internal/errors"
	"tradejournal/internal/models"
)

// SQLiteStore implements DataStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based data store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

// initSchema creates all required tables and indexes.
func (s *SQLiteStore) initSchema() error {
	schema := `
	-- Trades table: one row per journal entry. Derived columns
	-- (planned_rr, actual_rr, net_pl, holding_hours) are cached
	-- projections, recomputed on save.
	CREATE TABLE IF NOT EXISTS trades (
		trade_id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL,
		setup_id TEXT,
		trade_state TEXT NOT NULL,
		trade_status TEXT NOT NULL,
		market_type TEXT NOT NULL,
		instrument TEXT NOT NULL,
		direction TEXT NOT NULL,
		session TEXT,
		entry_type TEXT,
		exit_type TEXT,
		planned_entry_price REAL,
		stop_loss REAL,
		take_profit REAL,
		risk_pct REAL,
		usd_risk REAL,
		lots REAL,
		contracts REAL,
		shares REAL,
		quantity REAL,
		pip_value REAL,
		point_value REAL,
		actual_entry_price REAL,
		exit_price REAL,
		entry_date DATETIME,
		entry_time_utc DATETIME,
		exit_time_utc DATETIME,
		pre_trade_emotion TEXT,
		notes TEXT,
		planned_rr REAL,
		actual_rr REAL,
		net_pl REAL,
		holding_hours REAL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS accounts (
		account_id TEXT PRIMARY KEY,
		account_name TEXT,
		currency TEXT,
		initial_balance REAL NOT NULL,
		current_balance REAL NOT NULL,
		daily_loss_pct REAL,
		max_drawdown_pct REAL,
		profit_target_pct REAL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS rules (
		rule_id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL,
		max_risk_per_trade_pct REAL,
		max_daily_loss_pct REAL,
		minimum_rr REAL,
		enforcement_level TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS setups (
		setup_id TEXT PRIMARY KEY,
		setup_name TEXT NOT NULL,
		setup_status TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_trades_account ON trades(account_id);
	CREATE INDEX IF NOT EXISTS idx_trades_state ON trades(trade_state);
	CREATE INDEX IF NOT EXISTS idx_trades_instrument ON trades(instrument);
	CREATE INDEX IF NOT EXISTS idx_trades_exit_time ON trades(exit_time_utc);
	CREATE INDEX IF NOT EXISTS idx_rules_account ON rules(account_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ============================================================================
// Trades
// ============================================================================

const tradeColumns = `trade_id, account_id, setup_id, trade_state, trade_status,
	market_type, instrument, direction, session, entry_type, exit_type,
	planned_entry_price, stop_loss, take_profit, risk_pct, usd_risk,
	lots, contracts, shares, quantity, pip_value, point_value,
	actual_entry_price, exit_price, entry_date, entry_time_utc, exit_time_utc,
	pre_trade_emotion, notes, planned_rr, actual_rr, net_pl, holding_hours`

// SaveTrade inserts or replaces a trade row.
func (s *SQLiteStore) SaveTrade(ctx context.Context, t *models.Trade) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO trades (`+tradeColumns+`, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`,
		t.TradeID, t.AccountID, nullStr(t.SetupID), string(t.State), string(t.Status),
		string(t.MarketType), t.Instrument, string(t.Direction), nullStr(string(t.Session)),
		nullStr(string(t.EntryType)), nullStr(string(t.ExitType)),
		t.PlannedEntryPrice, t.StopLoss, t.TakeProfit, t.RiskPct, t.USDRisk,
		t.Lots, t.Contracts, t.Shares, t.Quantity, t.PipValue, t.PointValue,
		t.ActualEntryPrice, t.ExitPrice, t.EntryDate, t.EntryTimeUTC, t.ExitTimeUTC,
		nullStr(string(t.PreTradeEmotion)), nullStr(t.Notes),
		t.PlannedRR, t.ActualRR, t.NetPL, t.HoldingHours,
	)
	if err != nil {
		return errors.NewStoreError("trade", "save", t.TradeID, err)
	}
	return nil
}

// GetTrade fetches a single trade by ID.
func (s *SQLiteStore) GetTrade(ctx context.Context, tradeID string) (*models.Trade, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tradeColumns+` FROM trades WHERE trade_id = ?`, tradeID)
	t, err := scanTrade(row)
	if err == sql.ErrNoRows {
		return nil, errors.ErrTradeNotFound
	}
	if err != nil {
		return nil, errors.NewStoreError("trade", "get", tradeID, err)
	}
	return t, nil
}

// GetTrades queries trades matching the filter, oldest first.
func (s *SQLiteStore) GetTrades(ctx context.Context, filter TradeFilter) ([]models.Trade, error) {
	query := `SELECT ` + tradeColumns + ` FROM trades WHERE 1=1`
	var args []interface{}

	if filter.AccountID != "" {
		query += " AND account_id = ?"
		args = append(args, filter.AccountID)
	}
	if filter.Instrument != "" {
		query += " AND instrument = ?"
		args = append(args, filter.Instrument)
	}
	if filter.MarketType != "" {
		query += " AND market_type = ?"
		args = append(args, string(filter.MarketType))
	}
	if filter.State != "" {
		query += " AND trade_state = ?"
		args = append(args, string(filter.State))
	}
	if !filter.StartDate.IsZero() {
		query += " AND entry_time_utc >= ?"
		args = append(args, filter.StartDate)
	}
	if !filter.EndDate.IsZero() {
		query += " AND entry_time_utc < ?"
		args = append(args, filter.EndDate)
	}
	query += " ORDER BY trade_id ASC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.NewStoreError("trade", "query", "", err)
	}
	defer rows.Close()

	var trades []models.Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, errors.NewStoreError("trade", "scan", "", err)
		}
		trades = append(trades, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStoreError("trade", "iterate", "", err)
	}
	return trades, nil
}

// DeleteTrade removes a trade row.
func (s *SQLiteStore) DeleteTrade(ctx context.Context, tradeID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM trades WHERE trade_id = ?`, tradeID)
	if err != nil {
		return errors.NewStoreError("trade", "delete", tradeID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.ErrTradeNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTrade(row rowScanner) (*models.Trade, error) {
	var t models.Trade
	var setupID, session, entryType, exitType, emotion, notes sql.NullString
	var entryDate, entryTime, exitTime sql.NullTime

	err := row.Scan(
		&t.TradeID, &t.AccountID, &setupID, &t.State, &t.Status,
		&t.MarketType, &t.Instrument, &t.Direction, &session, &entryType, &exitType,
		&t.PlannedEntryPrice, &t.StopLoss, &t.TakeProfit, &t.RiskPct, &t.USDRisk,
		&t.Lots, &t.Contracts, &t.Shares, &t.Quantity, &t.PipValue, &t.PointValue,
		&t.ActualEntryPrice, &t.ExitPrice, &entryDate, &entryTime, &exitTime,
		&emotion, &notes, &t.PlannedRR, &t.ActualRR, &t.NetPL, &t.HoldingHours,
	)
	if err != nil {
		return nil, err
	}

	t.SetupID = setupID.String
	t.Session = models.Session(session.String)
	t.EntryType = models.EntryType(entryType.String)
	t.ExitType = models.ExitType(exitType.String)
	t.PreTradeEmotion = models.Emotion(emotion.String)
	t.Notes = notes.String
	t.EntryDate = timePtr(entryDate)
	t.EntryTimeUTC = timePtr(entryTime)
	t.ExitTimeUTC = timePtr(exitTime)
	return &t, nil
}

// ============================================================================
// Accounts, Rules, Setups
// ============================================================================

// SaveAccount inserts or replaces an account row.
func (s *SQLiteStore) SaveAccount(ctx context.Context, a *models.Account) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO accounts
		(account_id, account_name, currency, initial_balance, current_balance,
		 daily_loss_pct, max_drawdown_pct, profit_target_pct)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, a.AccountID, nullStr(a.Name), nullStr(a.Currency), a.InitialBalance, a.CurrentBalance,
		a.Limits.DailyLossPct, a.Limits.MaxDrawdownPct, a.Limits.ProfitTargetPct)
	if err != nil {
		return errors.NewStoreError("account", "save", a.AccountID, err)
	}
	return nil
}

// GetAccounts returns every account.
func (s *SQLiteStore) GetAccounts(ctx context.Context) ([]models.Account, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT account_id, account_name, currency, initial_balance, current_balance,
		       daily_loss_pct, max_drawdown_pct, profit_target_pct
		FROM accounts ORDER BY account_id
	`)
	if err != nil {
		return nil, errors.NewStoreError("account", "query", "", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var a models.Account
		var name, currency sql.NullString
		if err := rows.Scan(&a.AccountID, &name, &currency, &a.InitialBalance, &a.CurrentBalance,
			&a.Limits.DailyLossPct, &a.Limits.MaxDrawdownPct, &a.Limits.ProfitTargetPct); err != nil {
			return nil, errors.NewStoreError("account", "scan", "", err)
		}
		a.Name = name.String
		a.Currency = currency.String
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// SaveRule inserts or replaces a rule row.
func (s *SQLiteStore) SaveRule(ctx context.Context, r *models.Rule) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO rules
		(rule_id, account_id, max_risk_per_trade_pct, max_daily_loss_pct, minimum_rr, enforcement_level)
		VALUES (?, ?, ?, ?, ?, ?)
	`, r.RuleID, r.AccountID, r.MaxRiskPerTradePct, r.MaxDailyLossPct, r.MinimumRR, string(r.EnforcementLevel))
	if err != nil {
		return errors.NewStoreError("rule", "save", r.RuleID, err)
	}
	return nil
}

// GetRules returns every rule.
func (s *SQLiteStore) GetRules(ctx context.Context) ([]models.Rule, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT rule_id, account_id, max_risk_per_trade_pct, max_daily_loss_pct, minimum_rr, enforcement_level
		FROM rules ORDER BY rule_id
	`)
	if err != nil {
		return nil, errors.NewStoreError("rule", "query", "", err)
	}
	defer rows.Close()

	var rules []models.Rule
	for rows.Next() {
		var r models.Rule
		if err := rows.Scan(&r.RuleID, &r.AccountID, &r.MaxRiskPerTradePct,
			&r.MaxDailyLossPct, &r.MinimumRR, &r.EnforcementLevel); err != nil {
			return nil, errors.NewStoreError("rule", "scan", "", err)
		}
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

// SaveSetup inserts or replaces a setup row.
func (s *SQLiteStore) SaveSetup(ctx context.Context, setup *models.Setup) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO setups (setup_id, setup_name, setup_status)
		VALUES (?, ?, ?)
	`, setup.SetupID, setup.Name, string(setup.Status))
	if err != nil {
		return errors.NewStoreError("setup", "save", setup.SetupID, err)
	}
	return nil
}

// GetSetups returns every setup.
func (s *SQLiteStore) GetSetups(ctx context.Context) ([]models.Setup, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT setup_id, setup_name, setup_status FROM setups ORDER BY setup_id
	`)
	if err != nil {
		return nil, errors.NewStoreError("setup", "query", "", err)
	}
	defer rows.Close()

	var setups []models.Setup
	for rows.Next() {
		var s2 models.Setup
		if err := rows.Scan(&s2.SetupID, &s2.Name, &s2.Status); err != nil {
			return nil, errors.NewStoreError("setup", "scan", "", err)
		}
		setups = append(setups, s2)
	}
	return setups, rows.Err()
}

// Snapshot loads every collection in one shot.
func (s *SQLiteStore) Snapshot(ctx context.Context) (*Snapshot, error) {
	trades, err := s.GetTrades(ctx, TradeFilter{})
	if err != nil {
		return nil, err
	}
	accounts, err := s.GetAccounts(ctx)
	if err != nil {
		return nil, err
	}
	rules, err := s.GetRules(ctx)
	if err != nil {
		return nil, err
	}
	setups, err := s.GetSetups(ctx)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Trades: trades, Accounts: accounts, Rules: rules, Setups: setups}, nil
}

func nullStr(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
