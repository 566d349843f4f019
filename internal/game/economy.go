package game

import (
	mathrand "math/rand"
	"time"
)

type MarketCondition string

const (
	MarketWeak   MarketCondition = "weak"
	MarketStable MarketCondition = "stable"
	MarketStrong MarketCondition = "strong"
)

const (
	baseDemandStart = 1000
	baseDemandFloor = 800
	baseDemandCeil  = 1200
)

// Economy is a stateful market simulator. Base demand follows a bounded
// random walk, so the demand available in one quarter depends on the
// conditions rolled in every quarter before it.
type Economy struct {
	condition  MarketCondition
	baseDemand int
	rand       *mathrand.Rand
}

// NewEconomy builds an economy over the given random source. Pass a seeded
// source for reproducible simulations; NewSeededEconomy covers the common
// case.
func NewEconomy(r *mathrand.Rand) *Economy {
	if r == nil {
		r = mathrand.New(mathrand.NewSource(time.Now().UnixNano()))
	}
	return &Economy{
		condition:  MarketStable,
		baseDemand: baseDemandStart,
		rand:       r,
	}
}

func NewSeededEconomy(seed int64) *Economy {
	return NewEconomy(mathrand.New(mathrand.NewSource(seed)))
}

func (e *Economy) Condition() MarketCondition { return e.condition }
func (e *Economy) BaseDemand() int            { return e.baseDemand }

// SimulateMarket rolls the quarter's market condition and advances the base
// demand walk. Weak markets shed 50-200 units of demand (floor 800), strong
// markets add 50-200 (cap 1200), stable markets drift by at most 50 either
// way within the same bounds.
func (e *Economy) SimulateMarket() {
	conditions := []MarketCondition{MarketWeak, MarketStable, MarketStrong}
	e.condition = conditions[e.rand.Intn(len(conditions))]

	switch e.condition {
	case MarketWeak:
		e.baseDemand = max(baseDemandFloor, e.baseDemand-e.randRange(50, 200))
	case MarketStrong:
		e.baseDemand = min(baseDemandCeil, e.baseDemand+e.randRange(50, 200))
	default:
		e.baseDemand = max(baseDemandFloor, min(baseDemandCeil, e.baseDemand+e.randRange(-50, 50)))
	}
}

// MarketMultiplier draws a fresh multiplier for the current condition. The
// draw happens on every call, which is part of the engine's random draw
// order: one SimulateMarket per quarter, one multiplier per demand figure.
func (e *Economy) MarketMultiplier() float64 {
	switch e.condition {
	case MarketWeak:
		return e.uniform(0.8, 1.0)
	case MarketStrong:
		return e.uniform(1.0, 1.2)
	default:
		return e.uniform(0.9, 1.1)
	}
}

// CalculateDemand converts price and marketing decisions into unit demand.
// Demand falls linearly with price and reaches zero at price 100; marketing
// lifts demand with a hard 2x cap.
func (e *Economy) CalculateDemand(price, marketing float64) int {
	priceEffect := 1 - price/100
	if priceEffect < 0 {
		priceEffect = 0
	}
	marketingEffect := 1 + marketing/10000
	if marketingEffect > 2 {
		marketingEffect = 2
	}
	return int(float64(e.baseDemand) * priceEffect * marketingEffect * e.MarketMultiplier())
}

// randRange draws an integer in [lo, hi] inclusive.
func (e *Economy) randRange(lo, hi int) int {
	return lo + e.rand.Intn(hi-lo+1)
}

func (e *Economy) uniform(lo, hi float64) float64 {
	return lo + e.rand.Float64()*(hi-lo)
}
