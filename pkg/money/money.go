// Package money implements an immutable amount+currency value object backed
// by integer minor units, so repeated arithmetic stays drift-free.
package money

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/judgefinder/platform/pkg/result"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// maxCents caps a single amount at one billion dollars. Anything beyond that
// is treated as corrupt input rather than a price.
const maxCents = int64(100_000_000_000)

const DefaultCurrency = "USD"

// Money is an amount in minor units of a single currency. The zero value is
// not valid; construct through FromDollars or FromCents.
type Money struct {
	cents    int64
	currency string
}

// FromDollars validates and converts a dollar amount to minor units,
// rounding half-up.
func FromDollars(amount float64) result.Result[Money] {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return result.Err[Money](result.NewValidationError(
			"money_not_finite", "amount must be a finite number", map[string]any{"amount": amount}))
	}
	if amount < 0 {
		return result.Err[Money](result.NewValidationError(
			"money_negative", "amount must not be negative", map[string]any{"amount": amount}))
	}
	cents := roundHalfUp(amount * 100)
	if cents > maxCents {
		return result.Err[Money](result.NewValidationError(
			"money_too_large", "amount exceeds the supported maximum", map[string]any{"amount": amount}))
	}
	return result.Ok(Money{cents: cents, currency: DefaultCurrency})
}

// FromCents builds a Money from minor units. Negative values are allowed
// here because subtraction may produce them; a negative final price is a
// caller bug, not a discount.
func FromCents(cents int64, cur string) result.Result[Money] {
	if cur == "" {
		cur = DefaultCurrency
	}
	if cents > maxCents || cents < -maxCents {
		return result.Err[Money](result.NewValidationError(
			"money_too_large", "amount exceeds the supported maximum", map[string]any{"cents": cents}))
	}
	return result.Ok(Money{cents: cents, currency: cur})
}

// Zero returns a zero amount in the default currency.
func Zero() Money {
	return Money{cents: 0, currency: DefaultCurrency}
}

func (m Money) Cents() int64     { return m.cents }
func (m Money) Currency() string { return m.currency }

// Dollars returns the amount in major units. Display and ratio math only;
// arithmetic stays in cents.
func (m Money) Dollars() float64 { return float64(m.cents) / 100 }

func (m Money) IsNegative() bool { return m.cents < 0 }
func (m Money) IsZero() bool     { return m.cents == 0 }

// Equal compares amount and currency structurally.
func (m Money) Equal(other Money) bool {
	return m.cents == other.cents && m.currency == other.currency
}

// Add returns m + other, failing on currency mismatch or overflow.
func (m Money) Add(other Money) result.Result[Money] {
	if err := m.sameCurrency(other); err != nil {
		return result.Err[Money](err)
	}
	return checked(m.cents+other.cents, m.currency)
}

// Subtract returns m - other. The difference may be negative; callers doing
// pricing must treat a negative final price as a bug.
func (m Money) Subtract(other Money) result.Result[Money] {
	if err := m.sameCurrency(other); err != nil {
		return result.Err[Money](err)
	}
	return checked(m.cents-other.cents, m.currency)
}

// Multiply scales the amount by factor, rounding half-up.
func (m Money) Multiply(factor float64) result.Result[Money] {
	if math.IsNaN(factor) || math.IsInf(factor, 0) {
		return result.Err[Money](result.NewValidationError(
			"money_factor_not_finite", "multiplier must be a finite number", map[string]any{"factor": factor}))
	}
	if factor < 0 {
		return result.Err[Money](result.NewValidationError(
			"money_factor_negative", "multiplier must not be negative", map[string]any{"factor": factor}))
	}
	return checked(roundHalfUp(float64(m.cents)*factor), m.currency)
}

// Divide splits the amount by divisor, failing on divisor <= 0.
func (m Money) Divide(divisor float64) result.Result[Money] {
	if math.IsNaN(divisor) || math.IsInf(divisor, 0) || divisor <= 0 {
		return result.Err[Money](result.NewValidationError(
			"money_divisor_invalid", "divisor must be a positive finite number", map[string]any{"divisor": divisor}))
	}
	return checked(roundHalfUp(float64(m.cents)/divisor), m.currency)
}

// ApplyDiscount reduces the amount by percentage in [0,100], rounding
// half-up so repeated calls reproduce the same totals.
func (m Money) ApplyDiscount(percentage float64) result.Result[Money] {
	if math.IsNaN(percentage) || percentage < 0 || percentage > 100 {
		return result.Err[Money](result.NewValidationError(
			"money_discount_out_of_range", "discount percentage must be between 0 and 100",
			map[string]any{"percentage": percentage}))
	}
	return checked(roundHalfUp(float64(m.cents)*(1-percentage/100)), m.currency)
}

// Format renders a locale-aware currency string, e.g. "$20,500.00".
func (m Money) Format() string {
	unit, err := currency.ParseISO(m.currency)
	if err != nil {
		return fmt.Sprintf("%s %.2f", m.currency, m.Dollars())
	}
	p := message.NewPrinter(language.AmericanEnglish)
	return p.Sprintf("%v", currency.NarrowSymbol(unit.Amount(m.Dollars())))
}

func (m Money) String() string { return m.Format() }

// MarshalJSON emits cents, currency and the formatted rendering.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Cents     int64  `json:"cents"`
		Currency  string `json:"currency"`
		Formatted string `json:"formatted"`
	}{m.cents, m.currency, m.Format()})
}

func (m Money) sameCurrency(other Money) error {
	if m.currency != other.currency {
		return result.NewValidationError("money_currency_mismatch",
			"operands must share a currency",
			map[string]any{"left": m.currency, "right": other.currency})
	}
	return nil
}

func checked(cents int64, cur string) result.Result[Money] {
	if cents > maxCents || cents < -maxCents {
		return result.Err[Money](result.NewValidationError(
			"money_overflow", "amount exceeds the supported maximum", map[string]any{"cents": cents}))
	}
	return result.Ok(Money{cents: cents, currency: cur})
}

// roundHalfUp is the single rounding rule for all Money arithmetic.
func roundHalfUp(value float64) int64 {
	return int64(math.Floor(value + 0.5))
}
