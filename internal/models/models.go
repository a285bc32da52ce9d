// Package models provides domain models for the trading journal.
package models

// MarketType classifies the market an instrument trades in.
type MarketType string

const (
	MarketForex   MarketType = "FOREX"
	MarketIndices MarketType = "INDICES"
	MarketFutures MarketType = "FUTURES"
	MarketCrypto  MarketType = "CRYPTO"
	MarketStocks  MarketType = "STOCKS"
)

// MarketTypes lists every known market type.
var MarketTypes = []MarketType{MarketForex, MarketIndices, MarketFutures, MarketCrypto, MarketStocks}

// Valid reports whether the market type is one of the known values.
func (m MarketType) Valid() bool {
	for _, t := range MarketTypes {
		if m == t {
			return true
		}
	}
	return false
}

// Direction is the side of a trade.
type Direction string

const (
	Long  Direction = "LONG"
	Short Direction = "SHORT"
)

// Valid reports whether the direction is LONG or SHORT.
func (d Direction) Valid() bool {
	return d == Long || d == Short
}

// TradeState is the lifecycle state of a trade.
type TradeState string

const (
	StateDraft      TradeState = "DRAFT"
	StatePlanned    TradeState = "PLANNED"
	StateOpen       TradeState = "OPEN"
	StateMissed     TradeState = "MISSED"
	StateClosed     TradeState = "CLOSED"
	StateInvalid    TradeState = "INVALID"
	StateIncomplete TradeState = "INCOMPLETE"
)

// TradeStates lists every lifecycle state.
var TradeStates = []TradeState{
	StateDraft, StatePlanned, StateOpen, StateMissed,
	StateClosed, StateInvalid, StateIncomplete,
}

// TradeStatus is the outcome of a trade, independent of its state.
// Only meaningful once an actual R-multiple exists.
type TradeStatus string

const (
	StatusWin       TradeStatus = "WIN"
	StatusLoss      TradeStatus = "LOSS"
	StatusBreakeven TradeStatus = "BREAKEVEN"
	StatusPending   TradeStatus = "PENDING"
)

// EntryType is how the entry order was placed.
type EntryType string

const (
	EntryMarket EntryType = "MARKET"
	EntryLimit  EntryType = "LIMIT"
	EntryStop   EntryType = "STOP"
)

// ExitType records why a trade was closed.
type ExitType string

const (
	ExitTakeProfit ExitType = "TP"
	ExitStopLoss   ExitType = "SL"
	ExitManual     ExitType = "MANUAL"
	ExitTime       ExitType = "TIME"
	ExitBreakeven  ExitType = "BREAKEVEN"
)

// Session is a trading session label.
type Session string

const (
	SessionAsia     Session = "ASIA"
	SessionLondon   Session = "LONDON"
	SessionNewYork  Session = "NEW_YORK"
	SessionOverlap  Session = "OVERLAP_LONDON_NY"
	SessionOffHours Session = "OFF_HOURS"
)

// Emotion is the trader's recorded emotional state at entry.
type Emotion string

const (
	EmotionCalm       Emotion = "CALM"
	EmotionConfident  Emotion = "CONFIDENT"
	EmotionAnxious    Emotion = "ANXIOUS"
	EmotionFearful    Emotion = "FEARFUL"
	EmotionGreedy     Emotion = "GREEDY"
	EmotionFrustrated Emotion = "FRUSTRATED"
	EmotionEuphoric   Emotion = "EUPHORIC"
	EmotionNeutral    Emotion = "NEUTRAL"
)

// Emotions lists the recognized emotional-state tags. Unrecognized tags
// are ignored by analytics rather than creating new buckets.
var Emotions = []Emotion{
	EmotionCalm, EmotionConfident, EmotionAnxious, EmotionFearful,
	EmotionGreedy, EmotionFrustrated, EmotionEuphoric, EmotionNeutral,
}

// SetupStatus is the lifecycle status of a playbook setup.
type SetupStatus string

const (
	SetupActive  SetupStatus = "ACTIVE"
	SetupPaused  SetupStatus = "PAUSED"
	SetupRetired SetupStatus = "RETIRED"
)

// EnforcementLevel controls how rule breaches are surfaced.
type EnforcementLevel string

const (
	EnforceStrict  EnforcementLevel = "STRICT"
	EnforceWarning EnforcementLevel = "WARNING"
	EnforceLogOnly EnforcementLevel = "LOG_ONLY"
)

// FieldConfig describes which trade fields carry the position size and
// pip/point value for a market type, since the journal names them
// differently per market (lots, contracts, shares, quantity).
type FieldConfig struct {
	PositionSizeField string
	PipPointField     string
	DefaultPipValue   *float64
}

var forexDefaultPipValue = 10.0

// FieldConfigs maps each market type to its field configuration.
var FieldConfigs = map[MarketType]FieldConfig{
	MarketForex: {
		PositionSizeField: "lots",
		PipPointField:     "pip_value",
		DefaultPipValue:   &forexDefaultPipValue,
	},
	MarketFutures: {
		PositionSizeField: "contracts",
		PipPointField:     "point_value",
	},
	MarketIndices: {
		PositionSizeField: "contracts",
		PipPointField:     "point_value",
	},
	MarketStocks: {
		PositionSizeField: "shares",
	},
	MarketCrypto: {
		PositionSizeField: "quantity",
	},
}
