package service

import (
	"math"

	"github.com/diillson/fraud-dashboard-go/internal/domain/entity"
)

// HistogramBins é o número de intervalos da distribuição de valores.
const HistogramBins = 100

// AmountHistogram distribui amount_converted em bins de largura igual entre o mínimo e o máximo.
// Valores indefinidos são ignorados; sem valores definidos o histograma é vazio.
func AmountHistogram(rows []entity.Transaction, currency string, bins int) entity.Histogram {
	h := entity.Histogram{Currency: currency, Bins: []entity.HistogramBin{}}
	if bins <= 0 {
		bins = HistogramBins
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	defined := 0
	for i := range rows {
		v := rows[i].AmountConverted
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		defined++
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if defined == 0 {
		return h
	}
	if lo == hi {
		h.Bins = append(h.Bins, entity.HistogramBin{Lower: lo, Upper: hi, Count: defined})
		return h
	}

	width := (hi - lo) / float64(bins)
	h.Bins = make([]entity.HistogramBin, bins)
	for b := range h.Bins {
		h.Bins[b].Lower = lo + float64(b)*width
		h.Bins[b].Upper = lo + float64(b+1)*width
	}
	h.Bins[bins-1].Upper = hi

	for i := range rows {
		v := rows[i].AmountConverted
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		b := int((v - lo) / width)
		// o máximo entra no último bin
		if b >= bins {
			b = bins - 1
		}
		h.Bins[b].Count++
	}
	return h
}

// Coarsen junta bins consecutivos para que o histograma tenha no máximo n bins.
func Coarsen(h entity.Histogram, n int) entity.Histogram {
	if n <= 0 || len(h.Bins) <= n {
		return h
	}
	size := (len(h.Bins) + n - 1) / n
	out := entity.Histogram{Currency: h.Currency, Bins: make([]entity.HistogramBin, 0, n)}
	for start := 0; start < len(h.Bins); start += size {
		end := min(start+size, len(h.Bins))
		merged := entity.HistogramBin{Lower: h.Bins[start].Lower, Upper: h.Bins[end-1].Upper}
		for _, b := range h.Bins[start:end] {
			merged.Count += b.Count
		}
		out.Bins = append(out.Bins, merged)
	}
	return out
}
