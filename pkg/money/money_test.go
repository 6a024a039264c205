package money

import (
	"encoding/json"
	"testing"

	"github.com/judgefinder/platform/pkg/result"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDollars(t *testing.T, amount float64) Money {
	t.Helper()
	m, err := FromDollars(amount).Value()
	require.NoError(t, err)
	return m
}

func TestFromDollarsRoundsHalfUp(t *testing.T) {
	cases := []struct {
		amount float64
		cents  int64
	}{
		{0, 0},
		{500, 50000},
		{10.005, 1001},
		{10.004, 1000},
		{0.01, 1},
	}
	for _, tc := range cases {
		m := mustDollars(t, tc.amount)
		assert.Equal(t, tc.cents, m.Cents(), "amount %v", tc.amount)
		assert.Equal(t, DefaultCurrency, m.Currency())
	}
}

func TestFromDollarsRejectsInvalidInput(t *testing.T) {
	assert.True(t, result.IsKind(FromDollars(-1).Error(), result.KindValidation))

	nan := 0.0
	nan = nan / nan
	assert.True(t, result.IsKind(FromDollars(nan).Error(), result.KindValidation))

	// One billion dollars is the ceiling; one cent past it is rejected.
	assert.True(t, FromDollars(1_000_000_000).IsOk())
	assert.True(t, FromDollars(1_000_000_000.01).IsErr())
}

func TestFromCentsAllowsNegative(t *testing.T) {
	m, err := FromCents(-250, "USD").Value()
	require.NoError(t, err)
	assert.True(t, m.IsNegative())
	assert.Equal(t, int64(-250), m.Cents())
}

func TestAddIsAssociative(t *testing.T) {
	a := mustDollars(t, 10.01)
	b := mustDollars(t, 20.02)
	c := mustDollars(t, 30.03)

	left := a.Add(b).FlatMapSame(func(m Money) result.Result[Money] { return m.Add(c) }).Unwrap()
	right := b.Add(c).FlatMapSame(func(m Money) result.Result[Money] { return a.Add(m) }).Unwrap()
	assert.True(t, left.Equal(right))
	assert.Equal(t, int64(6006), left.Cents())
}

func TestAddRejectsCurrencyMismatch(t *testing.T) {
	usd := mustDollars(t, 10)
	eur, err := FromCents(1000, "EUR").Value()
	require.NoError(t, err)

	r := usd.Add(eur)
	assert.True(t, result.IsKind(r.Error(), result.KindValidation))
}

func TestSubtractMayGoNegative(t *testing.T) {
	small := mustDollars(t, 5)
	big := mustDollars(t, 7.50)

	diff, err := small.Subtract(big).Value()
	require.NoError(t, err)
	assert.Equal(t, int64(-250), diff.Cents())
	assert.True(t, diff.IsNegative())
}

func TestMultiplyRoundsHalfUp(t *testing.T) {
	m := mustDollars(t, 500)

	exclusive, err := m.Multiply(1.5).Value()
	require.NoError(t, err)
	assert.Equal(t, int64(75000), exclusive.Cents())

	odd, err := mustDollars(t, 0.03).Multiply(0.5).Value()
	require.NoError(t, err)
	assert.Equal(t, int64(2), odd.Cents())

	assert.True(t, m.Multiply(-1).IsErr())
}

func TestDivide(t *testing.T) {
	m := mustDollars(t, 100)

	third, err := m.Divide(3).Value()
	require.NoError(t, err)
	assert.Equal(t, int64(3333), third.Cents())

	assert.True(t, m.Divide(0).IsErr())
	assert.True(t, m.Divide(-2).IsErr())
}

func TestApplyDiscountBoundsAndIdempotentEdges(t *testing.T) {
	m := mustDollars(t, 200)

	full, err := m.ApplyDiscount(0).Value()
	require.NoError(t, err)
	assert.True(t, full.Equal(m))

	free, err := m.ApplyDiscount(100).Value()
	require.NoError(t, err)
	assert.True(t, free.IsZero())

	discounted, err := m.ApplyDiscount(35).Value()
	require.NoError(t, err)
	assert.Equal(t, int64(13000), discounted.Cents())

	assert.True(t, m.ApplyDiscount(-1).IsErr())
	assert.True(t, m.ApplyDiscount(100.5).IsErr())
}

func TestFormat(t *testing.T) {
	m := mustDollars(t, 20500)
	assert.Equal(t, "$20,500.00", m.Format())
	assert.Equal(t, "$0.00", Zero().Format())
}

func TestMarshalJSON(t *testing.T) {
	raw, err := json.Marshal(mustDollars(t, 12.34))
	require.NoError(t, err)

	var decoded struct {
		Cents     int64  `json:"cents"`
		Currency  string `json:"currency"`
		Formatted string `json:"formatted"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, int64(1234), decoded.Cents)
	assert.Equal(t, "USD", decoded.Currency)
	assert.Equal(t, "$12.34", decoded.Formatted)
}
