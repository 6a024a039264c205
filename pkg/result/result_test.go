package result

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOkAndErrAreDisjoint(t *testing.T) {
	ok := Ok(42)
	assert.True(t, ok.IsOk())
	assert.False(t, ok.IsErr())
	assert.NoError(t, ok.Error())

	boom := errors.New("boom")
	bad := Err[int](boom)
	assert.False(t, bad.IsOk())
	assert.True(t, bad.IsErr())
	assert.ErrorIs(t, bad.Error(), boom)
}

func TestErrWithNilErrorStaysErr(t *testing.T) {
	r := Err[string](nil)
	assert.True(t, r.IsErr())
	assert.Error(t, r.Error())
}

func TestValueBridgesToConventionalReturn(t *testing.T) {
	v, err := Ok("hello").Value()
	require.NoError(t, err)
	assert.Equal(t, "hello", v)

	_, err = Err[string](errors.New("boom")).Value()
	assert.Error(t, err)
}

func TestFrom(t *testing.T) {
	assert.True(t, From(1, nil).IsOk())
	assert.True(t, From(0, errors.New("boom")).IsErr())
}

func TestUnwrapPanicsOnErr(t *testing.T) {
	assert.Panics(t, func() {
		Err[int](errors.New("boom")).Unwrap()
	})
	assert.Equal(t, 7, Ok(7).Unwrap())
}

func TestUnwrapOr(t *testing.T) {
	assert.Equal(t, 7, Ok(7).UnwrapOr(0))
	assert.Equal(t, 0, Err[int](errors.New("boom")).UnwrapOr(0))
}

func TestMapTransformsOkOnly(t *testing.T) {
	r := Map(Ok(21), func(v int) string { return strconv.Itoa(v * 2) })
	require.True(t, r.IsOk())
	assert.Equal(t, "42", r.Unwrap())

	boom := errors.New("boom")
	bad := Map(Err[int](boom), func(v int) string { return "never" })
	assert.ErrorIs(t, bad.Error(), boom)
}

func TestFlatMapShortCircuitsOnFirstErr(t *testing.T) {
	boom := errors.New("boom")
	calls := 0

	r := FlatMap(Err[int](boom), func(v int) Result[int] {
		calls++
		return Ok(v + 1)
	})
	assert.ErrorIs(t, r.Error(), boom)
	assert.Zero(t, calls)

	r = FlatMap(Ok(1), func(v int) Result[int] { return Ok(v + 1) })
	assert.Equal(t, 2, r.Unwrap())
}

func TestFold(t *testing.T) {
	onOk := func(v int) string { return "ok:" + strconv.Itoa(v) }
	onErr := func(err error) string { return "err:" + err.Error() }

	assert.Equal(t, "ok:5", Fold(Ok(5), onOk, onErr))
	assert.Equal(t, "err:boom", Fold(Err[int](errors.New("boom")), onOk, onErr))
}

func TestCombineFailsFast(t *testing.T) {
	all := Combine([]Result[int]{Ok(1), Ok(2), Ok(3)})
	require.True(t, all.IsOk())
	assert.Equal(t, []int{1, 2, 3}, all.Unwrap())

	first := errors.New("first")
	mixed := Combine([]Result[int]{Ok(1), Err[int](first), Err[int](errors.New("second"))})
	assert.ErrorIs(t, mixed.Error(), first)
}

func TestTryRecoversPanics(t *testing.T) {
	r := Try(func() int { panic(errors.New("boom")) })
	assert.True(t, r.IsErr())
	assert.EqualError(t, r.Error(), "boom")

	r = Try(func() int { panic("raw message") })
	assert.True(t, r.IsErr())
	assert.EqualError(t, r.Error(), "raw message")

	assert.Equal(t, 3, Try(func() int { return 3 }).Unwrap())
}

func TestMatchForcesBothBranches(t *testing.T) {
	var got int
	Ok(9).Match(func(v int) { got = v }, func(error) { t.Fatal("unexpected err branch") })
	assert.Equal(t, 9, got)

	var gotErr error
	Err[int](errors.New("boom")).Match(func(int) { t.Fatal("unexpected ok branch") }, func(err error) { gotErr = err })
	assert.EqualError(t, gotErr, "boom")
}

func TestMapErrAndTaps(t *testing.T) {
	wrapped := Err[int](errors.New("boom")).MapErr(func(err error) error {
		return errors.New("wrapped: " + err.Error())
	})
	assert.EqualError(t, wrapped.Error(), "wrapped: boom")

	var seen int
	var seenErr error
	Ok(4).Tap(func(v int) { seen = v }).TapErr(func(err error) { seenErr = err })
	assert.Equal(t, 4, seen)
	assert.NoError(t, seenErr)
}
