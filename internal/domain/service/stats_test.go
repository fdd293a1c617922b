package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/fraud-dashboard-go/internal/domain/entity"
)

func TestSummarize(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		s := Summarize(nil, "EUR")
		assert.Equal(t, entity.Summary{Currency: "EUR"}, s)
	})

	t.Run("mixed", func(t *testing.T) {
		rows := []entity.Transaction{
			tx(true, withConverted(10)),
			tx(false, withConverted(20)),
			tx(false, withConverted(30)),
			tx(true, withConverted(nan)),
		}
		s := Summarize(rows, "USD")
		assert.Equal(t, 4, s.TotalTransactions)
		assert.Equal(t, 2, s.FraudTransactions)
		assert.Equal(t, 2, s.LegitTransactions)
		assert.Equal(t, 10.0, s.TotalFraudAmount)
		assert.Equal(t, 50.0, s.FraudPercentage)
		assert.Equal(t, 20.0, s.AvgAmount)
		assert.True(t, s.AvgAmountAvailable)
	})

	t.Run("all amounts undefined", func(t *testing.T) {
		s := Summarize([]entity.Transaction{tx(true, withConverted(nan))}, "GBP")
		assert.Equal(t, 1, s.TotalTransactions)
		assert.Equal(t, 0.0, s.AvgAmount)
		assert.False(t, s.AvgAmountAvailable)
		assert.Equal(t, 0.0, s.TotalFraudAmount)
	})
}

func activity(n, total, merchants float64) entity.LastHourActivity {
	return entity.LastHourActivity{
		NumTransactions: n,
		TotalAmount:     total,
		UniqueMerchants: merchants,
		UniqueCountries: 1,
		MaxSingleAmount: total,
	}
}

func TestCorrelate(t *testing.T) {
	rows := []entity.Transaction{
		tx(false, withActivity(activity(1, 10, 1))),
		tx(false, withActivity(activity(2, 20, 1))),
		tx(true, withActivity(activity(3, 30, 1))),
		tx(true, withActivity(activity(4, 40, 1))),
		tx(true, withActivity(activity(nan, 40, 1))),
		tx(true),
	}
	c := Correlate(rows)

	require.True(t, c.Available)
	assert.Equal(t, 4, c.Rows)
	fields := map[string]float64{}
	for _, fc := range c.Coefficients {
		fields[fc.Field] = fc.Coefficient
	}
	assert.InDelta(t, 2/math.Sqrt(5), fields["num_transactions"], 1e-9)
	assert.InDelta(t, 2/math.Sqrt(5), fields["total_amount"], 1e-9)
	assert.NotContains(t, fields, "unique_merchants", "constant columns have no coefficient")
	assert.NotContains(t, fields, "unique_countries")
}

func TestCorrelate_NotEnoughData(t *testing.T) {
	assert.False(t, Correlate(nil).Available)
	assert.False(t, Correlate([]entity.Transaction{tx(true, withActivity(activity(1, 1, 1)))}).Available)

	sameClass := []entity.Transaction{
		tx(true, withActivity(activity(1, 1, 1))),
		tx(true, withActivity(activity(2, 2, 2))),
	}
	c := Correlate(sameClass)
	assert.False(t, c.Available, "fraud column without variance")
	assert.Empty(t, c.Coefficients)
}

func TestAmountHistogram(t *testing.T) {
	rows := []entity.Transaction{
		tx(false, withConverted(0)),
		tx(false, withConverted(5)),
		tx(true, withConverted(10)),
		tx(true, withConverted(nan)),
	}
	h := AmountHistogram(rows, "EUR", 10)
	require.Len(t, h.Bins, 10)
	assert.Equal(t, "EUR", h.Currency)
	assert.Equal(t, 1, h.Bins[0].Count)
	assert.Equal(t, 1, h.Bins[5].Count)
	assert.Equal(t, 1, h.Bins[9].Count, "the maximum falls in the last bin")
	assert.Equal(t, 10.0, h.Bins[9].Upper)

	total := 0
	for _, b := range h.Bins {
		total += b.Count
	}
	assert.Equal(t, 3, total)
}

func TestAmountHistogram_EdgeCases(t *testing.T) {
	empty := AmountHistogram([]entity.Transaction{tx(false, withConverted(nan))}, "USD", 0)
	assert.NotNil(t, empty.Bins)
	assert.Empty(t, empty.Bins)

	single := AmountHistogram(repeat(3, tx(false, withConverted(7))), "USD", 0)
	require.Len(t, single.Bins, 1)
	assert.Equal(t, entity.HistogramBin{Lower: 7, Upper: 7, Count: 3}, single.Bins[0])

	var rows []entity.Transaction
	for i := 0; i < 250; i++ {
		rows = append(rows, tx(false, withConverted(float64(i))))
	}
	assert.Len(t, AmountHistogram(rows, "USD", 0).Bins, HistogramBins)
}

func TestCoarsen(t *testing.T) {
	var rows []entity.Transaction
	for i := 0; i <= 100; i++ {
		rows = append(rows, tx(false, withConverted(float64(i))))
	}
	h := AmountHistogram(rows, "USD", HistogramBins)
	c := Coarsen(h, 20)

	require.Len(t, c.Bins, 20)
	assert.Equal(t, h.Bins[0].Lower, c.Bins[0].Lower)
	assert.Equal(t, h.Bins[99].Upper, c.Bins[19].Upper)
	total := 0
	for _, b := range c.Bins {
		total += b.Count
	}
	assert.Equal(t, 101, total)

	assert.Equal(t, h, Coarsen(h, 0))
	assert.Equal(t, h, Coarsen(h, 200))
}
