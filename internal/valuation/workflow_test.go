package valuation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/autoprestige/autoprestige/internal/api"
	"github.com/autoprestige/autoprestige/internal/refdata"
)

func TestManufacturerChangeResetsModel(t *testing.T) {
	w := New()
	for _, m := range refdata.Manufacturers() {
		require.True(t, w.SetManufacturer(m))
		in := w.Input()
		require.Equal(t, refdata.FirstModel(m), in.Model)
		require.True(t, refdata.HasModel(m, in.Model))
	}
}

func TestSameManufacturerKeepsModel(t *testing.T) {
	w := New()
	require.True(t, w.SetModel("Kuga"))
	require.True(t, w.SetManufacturer("Ford"))
	require.Equal(t, "Kuga", w.Input().Model)

	ok, err := w.SetField(FieldManufacturer, " ford ")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Kuga", w.Input().Model)

	require.True(t, w.SetManufacturer("Audi"))
	require.Equal(t, refdata.FirstModel("Audi"), w.Input().Model)
}

func TestSetModelRejectsForeignModel(t *testing.T) {
	w := New()
	require.False(t, w.SetModel("Golf"))
	require.Equal(t, "Fiesta", w.Input().Model)
	require.True(t, w.SetModel("Kuga"))
	require.Equal(t, "Kuga", w.Input().Model)
}

func TestSetField(t *testing.T) {
	w := New()
	ok, err := w.SetField(FieldManufacturer, "bmw")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "BMW", w.Input().Manufacturer)
	require.Equal(t, "1 Series", w.Input().Model)

	ok, err = w.SetField(FieldModel, "x5")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "X5", w.FieldValue(FieldModel))

	_, err = w.SetField(FieldMileage, "lots")
	require.Error(t, err)
	require.Equal(t, "40000", w.FieldValue(FieldMileage))

	ok, err = w.SetField(FieldEngineSize, "3.0")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "3", w.FieldValue(FieldEngineSize))

	_, err = w.SetField("colour", "red")
	require.Error(t, err)
}

func TestHappyPathLocksAndResetKeepsFields(t *testing.T) {
	w := New()
	require.Equal(t, Idle, w.State())
	w.SetMileage(55000)

	in, err := w.Begin()
	require.NoError(t, err)
	require.Equal(t, 55000, in.Mileage)
	require.Equal(t, Loading, w.State())

	_, err = w.Begin()
	require.ErrorIs(t, err, ErrBusy)

	w.Resolve(12000)
	require.Equal(t, Result, w.State())
	require.True(t, w.Locked())
	require.Equal(t, 12000.0, w.Price())

	before := w.Input()
	require.False(t, w.SetManufacturer("BMW"))
	require.False(t, w.SetMileage(1))
	require.False(t, w.SetTax(0))
	ok, err := w.SetField(FieldYear, "2001")
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, before, w.Input())

	_, err = w.Begin()
	require.ErrorIs(t, err, ErrLocked)

	w.Reset()
	require.Equal(t, Idle, w.State())
	require.False(t, w.Locked())
	require.Zero(t, w.Price())
	require.Equal(t, before, w.Input())
	require.True(t, w.SetMileage(1))
}

func TestFailureKeepsFormEditable(t *testing.T) {
	w := New()
	_, err := w.Begin()
	require.NoError(t, err)
	w.Fail("Connection Error")
	require.Equal(t, Failed, w.State())
	require.False(t, w.Locked())
	require.Equal(t, "Connection Error", w.ErrMessage())
	require.True(t, w.SetYear(2020))

	// resubmission clears the error
	_, err = w.Begin()
	require.NoError(t, err)
	require.Empty(t, w.ErrMessage())
}

func TestTransitionsOutsideLoadingAreIgnored(t *testing.T) {
	w := New()
	w.Resolve(1)
	require.Equal(t, Idle, w.State())
	w.Fail("x")
	require.Equal(t, Idle, w.State())
	w.Reset()
	require.Equal(t, Idle, w.State())
}

type fakePredictor struct {
	price float64
	err   error
	calls int
}

func (f *fakePredictor) Predict(ctx context.Context, in api.ValuationInput) (float64, error) {
	f.calls++
	return f.price, f.err
}

func TestSubmitterDelaysThenPredicts(t *testing.T) {
	fp := &fakePredictor{price: 12000}
	s := Submitter{Backend: fp, Delay: 10 * time.Millisecond}
	start := time.Now()
	price, err := s.Submit(context.Background(), DefaultInput())
	require.NoError(t, err)
	require.Equal(t, 12000.0, price)
	require.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
	require.Equal(t, 1, fp.calls)
}

func TestSubmitterCancelledDuringDelaySkipsRequest(t *testing.T) {
	fp := &fakePredictor{}
	s := Submitter{Backend: fp, Delay: time.Hour}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Submit(ctx, DefaultInput())
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, fp.calls)
}

func TestSubmitterPropagatesBackendError(t *testing.T) {
	boom := errors.New("boom")
	s := Submitter{Backend: &fakePredictor{err: boom}}
	_, err := s.Submit(context.Background(), DefaultInput())
	require.ErrorIs(t, err, boom)
}
