// Package market provides market-type-aware unit conversions: pip and
// point arithmetic, monetary pip values, and position sizing. Every
// function is total; unknown instruments degrade to per-market defaults
// and invalid numeric inputs degrade to zero.
package market

import (
	"strings"

	"tradejournal/internal/models"
)

// Config holds per-instrument conversion constants. Not every field is
// meaningful for every market type: FOREX uses PipSize/PipValuePerLot,
// INDICES and FUTURES use TickSize/TickValuePerContract, STOCKS and
// CRYPTO use ValuePerPoint.
type Config struct {
	PipSize              float64
	PipDecimals          int
	ContractSize         float64
	MinLot               float64
	PipValuePerLot       float64
	TickSize             float64
	TickValuePerContract float64
	ValuePerPoint        float64
}

const defaultKey = "DEFAULT"

var configs = map[models.MarketType]map[string]Config{
	models.MarketForex: {
		"EURUSD":   {PipSize: 0.0001, PipDecimals: 4, ContractSize: 100000, MinLot: 0.01, PipValuePerLot: 10},
		"GBPUSD":   {PipSize: 0.0001, PipDecimals: 4, ContractSize: 100000, MinLot: 0.01, PipValuePerLot: 10},
		"USDJPY":   {PipSize: 0.01, PipDecimals: 2, ContractSize: 100000, MinLot: 0.01, PipValuePerLot: 9.1},
		"GBPJPY":   {PipSize: 0.01, PipDecimals: 2, ContractSize: 100000, MinLot: 0.01, PipValuePerLot: 9.1},
		"XAUUSD":   {PipSize: 0.01, PipDecimals: 2, ContractSize: 100, MinLot: 0.01, PipValuePerLot: 1},
		defaultKey: {PipSize: 0.0001, PipDecimals: 4, ContractSize: 100000, MinLot: 0.01, PipValuePerLot: 10},
	},
	models.MarketIndices: {
		"NQ":       {TickSize: 0.25, PipDecimals: 2, ContractSize: 1, TickValuePerContract: 5},
		"ES":       {TickSize: 0.25, PipDecimals: 2, ContractSize: 1, TickValuePerContract: 12.5},
		"YM":       {TickSize: 1, PipDecimals: 0, ContractSize: 1, TickValuePerContract: 5},
		"DAX":      {TickSize: 0.5, PipDecimals: 1, ContractSize: 1, TickValuePerContract: 12.5},
		"US30":     {TickSize: 1, PipDecimals: 0, ContractSize: 1, TickValuePerContract: 1},
		"NAS100":   {TickSize: 0.25, PipDecimals: 2, ContractSize: 1, TickValuePerContract: 0.25},
		defaultKey: {TickSize: 1, PipDecimals: 2, ContractSize: 1, TickValuePerContract: 1},
	},
	models.MarketCrypto: {
		"BTCUSD":   {TickSize: 0.5, PipDecimals: 2, ContractSize: 1, ValuePerPoint: 1},
		"ETHUSD":   {TickSize: 0.01, PipDecimals: 2, ContractSize: 1, ValuePerPoint: 1},
		defaultKey: {TickSize: 0.01, PipDecimals: 2, ContractSize: 1, ValuePerPoint: 1},
	},
	models.MarketFutures: {
		"CL":       {TickSize: 0.01, PipDecimals: 2, ContractSize: 1000, TickValuePerContract: 10},
		"GC":       {TickSize: 0.1, PipDecimals: 2, ContractSize: 100, TickValuePerContract: 10},
		defaultKey: {TickSize: 0.01, PipDecimals: 2, ContractSize: 1, TickValuePerContract: 1},
	},
	models.MarketStocks: {
		defaultKey: {TickSize: 0.01, PipDecimals: 2, ContractSize: 1, ValuePerPoint: 1},
	},
}

// NormalizeSymbol uppercases a symbol and strips everything that is not
// a letter or digit, so EUR/USD, eur_usd and EURUSD all match.
func NormalizeSymbol(instrument string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(instrument) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// GetConfig looks up the conversion config for an instrument within its
// market type. Unknown market types fall back to the FOREX table and
// unknown instruments fall back to the market's DEFAULT entry, so a
// config is always returned.
func GetConfig(marketType models.MarketType, instrument string) Config {
	table, ok := configs[marketType]
	if !ok {
		table = configs[models.MarketForex]
	}
	key := NormalizeSymbol(instrument)
	if key == "" {
		key = defaultKey
	}
	if cfg, ok := table[key]; ok {
		return cfg
	}
	return table[defaultKey]
}
