// Package valuation prices employee stock options for expense reporting.
package valuation

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultRiskFreeRate = 0.0358
	DefaultVolatility   = 0.70

	daysPerYear = 365.25
)

type Engine struct {
	RiskFreeRate float64
	Volatility   float64
	Now          func() time.Time
}

type Option func(*Engine)

func WithRiskFreeRate(r float64) Option {
	return func(e *Engine) { e.RiskFreeRate = r }
}

func WithVolatility(v float64) Option {
	return func(e *Engine) { e.Volatility = v }
}

// WithClock overrides the source of "today".
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.Now = now }
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		RiskFreeRate: DefaultRiskFreeRate,
		Volatility:   DefaultVolatility,
		Now:          time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CalculateOptionValue prices a call option with the default rate and
// volatility as of today.
func CalculateOptionValue(currentPrice, exercisePrice decimal.Decimal, expiresAt time.Time) decimal.Decimal {
	return NewEngine().OptionValue(currentPrice, exercisePrice, expiresAt)
}

// OptionValue returns the Black-Scholes value of a European call. Options
// expiring today or earlier are worth zero in this model. The result is
// never negative. Both prices must be positive.
func (e *Engine) OptionValue(currentPrice, exercisePrice decimal.Decimal, expiresAt time.Time) decimal.Decimal {
	if !currentPrice.IsPositive() || !exercisePrice.IsPositive() {
		panic(fmt.Sprintf("valuation: prices must be positive, got current=%s exercise=%s", currentPrice, exercisePrice))
	}

	t := YearsUntil(e.Now(), expiresAt)
	if t <= 0 {
		return decimal.Zero
	}

	s := currentPrice.InexactFloat64()
	k := exercisePrice.InexactFloat64()
	r := e.RiskFreeRate
	sigma := e.Volatility

	volSqrtT := sigma * math.Sqrt(t)
	d1 := (math.Log(s/k) + (r+0.5*sigma*sigma)*t) / volSqrtT
	d2 := d1 - volSqrtT

	call := s*normCDF(d1) - k*math.Exp(-r*t)*normCDF(d2)
	if call <= 0 || math.IsNaN(call) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(call)
}

// YearsUntil counts whole calendar days from now to expiresAt and divides
// by 365.25.
func YearsUntil(now, expiresAt time.Time) float64 {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	expiry := time.Date(expiresAt.Year(), expiresAt.Month(), expiresAt.Day(), 0, 0, 0, 0, time.UTC)
	days := math.Round(expiry.Sub(today).Hours() / 24)
	return days / daysPerYear
}

func normCDF(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}
