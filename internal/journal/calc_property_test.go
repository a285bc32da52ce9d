package journal

import (
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"tradejournal/internal/models"
)

// Property: the realized R-multiple of a trade stopped exactly at its
// stop loss is -1R (within rounding), for both directions.
func TestProperty_StopOutIsMinusOneR(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("long stopped at stop loss realizes -1R", prop.ForAll(
		func(entry, riskDist float64) bool {
			stop := entry - riskDist
			rr := ActualRR(&entry, &stop, &stop, models.Long)
			return rr != nil && math.Abs(*rr-(-1)) < 0.01
		},
		gen.Float64Range(1, 10000),
		gen.Float64Range(0.5, 100),
	))

	properties.Property("short stopped at stop loss realizes -1R", prop.ForAll(
		func(entry, riskDist float64) bool {
			stop := entry + riskDist
			rr := ActualRR(&entry, &stop, &stop, models.Short)
			return rr != nil && math.Abs(*rr-(-1)) < 0.01
		},
		gen.Float64Range(1, 10000),
		gen.Float64Range(0.5, 100),
	))

	properties.TestingRun(t)
}

// Property: flipping the direction of a trade negates its realized
// R-multiple (within rounding).
func TestProperty_DirectionFlipNegatesRR(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("long RR equals negated short RR", prop.ForAll(
		func(entry, stopDist, exitDist float64) bool {
			stop := entry - stopDist
			exit := entry + exitDist
			long := ActualRR(&entry, &stop, &exit, models.Long)
			short := ActualRR(&entry, &stop, &exit, models.Short)
			if long == nil || short == nil {
				return false
			}
			return math.Abs(*long+*short) < 0.011
		},
		gen.Float64Range(10, 10000),
		gen.Float64Range(0.5, 100),
		gen.Float64Range(-100, 100),
	))

	properties.TestingRun(t)
}

// Property: planned RR is invariant under translation and positive
// scaling of the price axis.
func TestProperty_PlannedRRScaleInvariant(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("scaling prices preserves planned RR", prop.ForAll(
		func(entry, stopDist, tpDist, scale float64) bool {
			stop := entry - stopDist
			tp := entry + tpDist
			base := PlannedRR(&entry, &stop, &tp)

			se, ss, st := entry*scale, stop*scale, tp*scale
			scaled := PlannedRR(&se, &ss, &st)

			if base == nil || scaled == nil {
				return false
			}
			// Rounding happens at two decimals on both sides.
			return math.Abs(*base-*scaled) < 0.011
		},
		gen.Float64Range(100, 1000),
		gen.Float64Range(1, 50),
		gen.Float64Range(1, 150),
		gen.Float64Range(2, 10),
	))

	properties.TestingRun(t)
}

// Property: the outcome classification partitions every realized
// R-multiple into exactly one of WIN, LOSS, BREAKEVEN.
func TestProperty_StatusPartition(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("every RR maps to exactly one outcome", prop.ForAll(
		func(rr float64) bool {
			status := Status(&rr)
			switch status {
			case models.StatusWin:
				return rr > 0.1
			case models.StatusLoss:
				return rr < -0.1
			case models.StatusBreakeven:
				return rr >= -0.1 && rr <= 0.1
			}
			return false
		},
		gen.Float64Range(-10, 10),
	))

	properties.TestingRun(t)
}
