package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autoprestige/autoprestige/internal/api"
)

type recordingPricer struct {
	last api.ValuationInput
}

func (p *recordingPricer) Estimate(in api.ValuationInput) float64 {
	p.last = in
	return 12000
}

func newTest(lang string) (*Heuristic, *recordingPricer) {
	p := &recordingPricer{}
	h := NewHeuristic(p, lang)
	h.now = func() time.Time { return time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC) }
	return h, p
}

func TestReplyEstimatesMentionedVehicle(t *testing.T) {
	h, p := newTest("en")
	out, err := h.Reply(context.Background(), "How much is a 2019 Ford Fiesta diesel automatic?")
	require.NoError(t, err)
	assert.Contains(t, out, "Ford Fiesta from 2019")
	assert.Contains(t, out, "$12,000")
	assert.Contains(t, out, "30,000 miles")
	assert.Equal(t, "Diesel", p.last.FuelType)
	assert.Equal(t, "Automatic", p.last.Transmission)
	assert.Equal(t, 2019, p.last.Year)
}

func TestReplyMatchesTwoWordModels(t *testing.T) {
	h, p := newTest("vi")
	out, err := h.Reply(context.Background(), "giá xe bmw 3 series bao nhiêu")
	require.NoError(t, err)
	assert.Equal(t, "BMW", p.last.Manufacturer)
	assert.Equal(t, "3 Series", p.last.Model)
	assert.Equal(t, 2023, p.last.Year)
	assert.Contains(t, out, "Ước tính")
}

func TestReplyBrandWithoutModel(t *testing.T) {
	h, p := newTest("en")
	out, err := h.Reply(context.Background(), "What does a 2020 Mercedes C200 sell for?")
	require.NoError(t, err)
	assert.Equal(t, "Mercedes-Benz", p.last.Manufacturer)
	assert.Equal(t, "A Class", p.last.Model)
	assert.Contains(t, out, "not sure which Mercedes-Benz model")
}

func TestReplyFallbacks(t *testing.T) {
	h, _ := newTest("en")
	out, err := h.Reply(context.Background(), "hello there")
	require.NoError(t, err)
	assert.Contains(t, out, "Tell me the manufacturer")

	out, err = h.Reply(context.Background(), "what is the weather like")
	require.NoError(t, err)
	assert.Contains(t, out, "could not spot a vehicle")

	unknownLang, _ := newTest("fr")
	out, err = unknownLang.Reply(context.Background(), "xin chào")
	require.NoError(t, err)
	assert.Contains(t, out, "Chào bạn")
}

func TestReplyHonoursCancelledContext(t *testing.T) {
	h, _ := newTest("en")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := h.Reply(ctx, "Ford Fiesta")
	require.ErrorIs(t, err, context.Canceled)
}
