package market

import (
	"math"
	"strconv"

	"tradejournal/internal/models"
)

// Pips returns the distance between two prices in pips for FOREX, or
// the raw price difference for every other market type (points there
// are already the working unit).
func Pips(entry, exit float64, instrument string, marketType models.MarketType) float64 {
	cfg := GetConfig(marketType, instrument)
	diff := math.Abs(exit - entry)
	if marketType == models.MarketForex {
		if cfg.PipSize <= 0 {
			return 0
		}
		return math.Round(diff / cfg.PipSize)
	}
	return diff
}

// PipValue returns the monetary value of one pip (FOREX) or one
// point/tick (other markets) for the given position size.
func PipValue(instrument string, marketType models.MarketType, lotSize float64) float64 {
	cfg := GetConfig(marketType, instrument)
	switch marketType {
	case models.MarketForex:
		return cfg.PipValuePerLot * lotSize
	case models.MarketIndices, models.MarketFutures:
		return cfg.TickValuePerContract * lotSize
	}
	if cfg.ValuePerPoint > 0 {
		return cfg.ValuePerPoint
	}
	return 1
}

// PositionSizeFromRisk converts a monetary risk budget and a stop
// distance (in pips/points) into a position size, floored to the
// market's minimum tradable increment. Returns 0 rather than an error
// when any input is non-positive; callers must treat a zero result as
// "no valid size".
func PositionSizeFromRisk(riskAmount, stopLossPips float64, instrument string, marketType models.MarketType) float64 {
	pipValue := PipValue(instrument, marketType, 1)
	if riskAmount <= 0 || stopLossPips <= 0 || pipValue <= 0 {
		return 0
	}
	raw := riskAmount / (stopLossPips * pipValue)
	cfg := GetConfig(marketType, instrument)
	minLot := cfg.MinLot
	if minLot <= 0 {
		minLot = 0.01
	}
	return math.Floor(raw/minLot) * minLot
}

// RiskFromPosition is the algebraic inverse of PositionSizeFromRisk:
// the monetary amount at risk for a chosen position size and stop
// distance.
func RiskFromPosition(positionSize, stopLossPips float64, instrument string, marketType models.MarketType) float64 {
	return stopLossPips * PipValue(instrument, marketType, positionSize)
}

// FormatPrice renders a price with the instrument's native number of
// decimal places.
func FormatPrice(price float64, instrument string, marketType models.MarketType) string {
	cfg := GetConfig(marketType, instrument)
	return strconv.FormatFloat(price, 'f', cfg.PipDecimals, 64)
}

// PriceIncrement returns the smallest meaningful price step for the
// instrument.
func PriceIncrement(instrument string, marketType models.MarketType) float64 {
	cfg := GetConfig(marketType, instrument)
	if cfg.PipSize > 0 {
		return cfg.PipSize
	}
	if cfg.TickSize > 0 {
		return cfg.TickSize
	}
	return 0.01
}
