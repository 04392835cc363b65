// Package interest implements the day-count interest rules used to settle
// installments. Everything here is pure: the only clock is the one injected
// into Calendar.
package interest

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/prestamos-api/internal/models"
)

const (
	// MinDays is the upper bound of the short tier.
	MinDays = 15
	// MaxDays is the lower bound of the long tier and the floor applied to full payoffs.
	MaxDays = 30
)

// ErrInvalidRange is returned when a day count has no start date or ends before it starts
var ErrInvalidRange = errors.New("rango de fechas inválido")

// Tier identifies which interest rule applied
type Tier string

const (
	TierShort Tier = "15_dias"
	TierMid   Tier = "30_dias"
	TierLong  Tier = "dias_transcurridos"
)

var hundred = decimal.NewFromInt(100)

// Result is the outcome of ComputeInterest
type Result struct {
	Days            int             `json:"days"`
	EffectiveDays   int             `json:"effective_days"`
	DailyRate       decimal.Decimal `json:"daily_rate"`
	RateDecimal     decimal.Decimal `json:"rate_decimal"`
	InterestFactor  decimal.Decimal `json:"interest_factor"`
	InterestAmount  decimal.Decimal `json:"interest_amount"`
	Tier            Tier            `json:"tier"`
	TierShort       bool            `json:"tier_short"`
	TierMid         bool            `json:"tier_mid"`
	InterestReduced bool            `json:"interest_reduced"`
}

// Split is the principal/interest breakdown of a payment
type Split struct {
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	InterestAmount   decimal.Decimal `json:"interest_amount"`
	TotalDue         decimal.Decimal `json:"total_due"`
	Status           string          `json:"status"`
	InterestReduced  bool            `json:"interest_reduced"`
	Tier             Tier            `json:"tier"`
}

// TierExplanation describes a tier for display
type TierExplanation struct {
	Days        int    `json:"days"`
	Tier        Tier   `json:"tier"`
	Description string `json:"description"`
	Formula     string `json:"formula"`
}

// EffectiveDaysForInterest maps actual elapsed days to the days interest is charged for.
func EffectiveDaysForInterest(days int, isFullPayoff bool) int {
	if isFullPayoff {
		return max(days, MaxDays)
	}

	switch {
	case days >= 1 && days <= MinDays:
		return MinDays
	case days > MinDays && days < MaxDays:
		return MaxDays
	default:
		return days
	}
}

// TierFor classifies actual elapsed days.
func TierFor(days int) Tier {
	switch {
	case days <= MinDays:
		return TierShort
	case days < MaxDays:
		return TierMid
	default:
		return TierLong
	}
}

// ComputeInterest applies the tier rules to an installment.
//
// dailyRate is a percentage. amountPaid, when given, is the part of the
// payment going to principal; in the short tier interest is charged on that
// amount instead of the whole principal. The amount is always rounded up to a
// whole currency unit.
func ComputeInterest(principal, dailyRate decimal.Decimal, days int, applyRules, isFullPayoff bool, amountPaid *decimal.Decimal) Result {
	effectiveDays := days
	if applyRules {
		effectiveDays = EffectiveDaysForInterest(days, isFullPayoff)
	}

	rateDecimal := dailyRate.Div(hundred)
	factor := decimal.NewFromInt(int64(effectiveDays)).Mul(rateDecimal)

	tier := TierFor(days)

	base := principal
	if tier == TierShort && amountPaid != nil {
		base = *amountPaid
	}

	amount := factor.Div(hundred).Mul(base).Ceil()
	if amount.IsNegative() {
		amount = decimal.Zero
	}

	return Result{
		Days:            days,
		EffectiveDays:   effectiveDays,
		DailyRate:       dailyRate,
		RateDecimal:     rateDecimal,
		InterestFactor:  factor,
		InterestAmount:  amount,
		Tier:            tier,
		TierShort:       tier == TierShort,
		TierMid:         tier == TierMid,
		InterestReduced: tier == TierShort && amountPaid != nil && amountPaid.LessThan(principal),
	}
}

// ComputePaymentSplit splits amountPaid against principal and the interest
// already computed for the period.
func ComputePaymentSplit(principal, amountPaid decimal.Decimal, result Result) Split {
	remaining := principal.Sub(amountPaid)

	status := models.InstallmentStatusPaid
	if remaining.IsPositive() {
		status = models.InstallmentStatusPartial
	}

	return Split{
		RemainingBalance: remaining,
		InterestAmount:   result.InterestAmount,
		TotalDue:         result.InterestAmount.Add(amountPaid).Round(2),
		Status:           status,
		InterestReduced:  result.InterestReduced,
		Tier:             result.Tier,
	}
}

// ClassifyState returns the display state of an installment. Past MaxDays
// the installment shows as overdue; the stored state is left alone.
func ClassifyState(current string, days int) string {
	if days > MaxDays {
		return models.InstallmentStatusOverdue
	}
	return current
}

// ExplainTier describes the rule that applies to the given elapsed days.
func ExplainTier(days int) TierExplanation {
	tier := TierFor(days)
	exp := TierExplanation{Days: days, Tier: tier, Formula: "(interes/100) * capital"}

	switch tier {
	case TierShort:
		exp.Description = "Regla 15 días: se cobra interés sobre el monto pagado"
		exp.Formula = "(interes/100) * monto_capital_pagar"
	case TierMid:
		exp.Description = "Regla 30 días: se cobra interés sobre el capital total"
	default:
		exp.Description = "Días transcurridos: se cobra interés sobre el capital total por días reales"
	}
	return exp
}

// Calendar turns instants into civil dates in the business time zone.
//
// Civil dates are carried as midnight UTC of the calendar day so they
// round-trip through SQL date columns unchanged.
type Calendar struct {
	loc *time.Location
	now func() time.Time
}

// NewCalendar creates a calendar for loc using the wall clock
func NewCalendar(loc *time.Location) *Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return &Calendar{loc: loc, now: time.Now}
}

// WithClock returns a copy of the calendar reading "now" from clock
func (c *Calendar) WithClock(clock func() time.Time) *Calendar {
	return &Calendar{loc: c.loc, now: clock}
}

// Today is the current civil date in the business time zone.
func (c *Calendar) Today() time.Time {
	y, m, d := c.now().In(c.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Date truncates t to its civil date as seen in t's own location.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysElapsed counts calendar days from start through end inclusive.
// A nil end means today.
func (c *Calendar) DaysElapsed(start, end *time.Time) (int, error) {
	if start == nil {
		return 0, ErrInvalidRange
	}

	to := c.Today()
	if end != nil {
		to = Date(*end)
	}
	from := Date(*start)

	if to.Before(from) {
		return 0, ErrInvalidRange
	}

	return int(to.Sub(from).Hours()/24) + 1, nil
}
