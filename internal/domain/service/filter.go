package service

import (
	"math"

	"github.com/diillson/fraud-dashboard-go/internal/domain/entity"
)

// ApplyFilter aplica os predicados do filtro (AND entre os ativos) e calcula amount_converted
// na moeda alvo. Retorna sempre um slice novo; rows não é alterado.
func ApplyFilter(rows []entity.Transaction, rates *entity.RateTable, f entity.Filter) []entity.Transaction {
	vendorCategories := setOf(f.VendorCategories)
	channels := setOf(f.Channels)
	countries := setOf(f.Countries)
	cities := setOf(f.Cities)
	weekend := setOf(f.IsWeekend)
	fraud := setOf(f.IsFraud)
	target := f.Currency()

	out := make([]entity.Transaction, 0, len(rows))
	for i := range rows {
		t := rows[i]
		if !vendorCategories.allows(t.VendorCategory) ||
			!channels.allows(t.Channel) ||
			!countries.allows(t.Country) ||
			!cities.allows(t.City) ||
			!weekend.allows(t.IsWeekend) ||
			!fraud.allows(t.IsFraud) {
			continue
		}
		t.AmountConverted = Convert(t, target, rates)
		out = append(out, t)
	}
	return out
}

// Convert expressa amount_usd na moeda alvo usando a taxa da data da transação.
func Convert(t entity.Transaction, target string, rates *entity.RateTable) float64 {
	if target == entity.BaseCurrency {
		return t.AmountUSD
	}
	rate, ok := rates.Rate(target, t.Date)
	if !ok || math.IsNaN(rate) {
		return math.NaN()
	}
	return t.AmountUSD * rate
}

// membership é um predicado de pertinência; um conjunto vazio aceita qualquer valor.
type membership[T comparable] map[T]struct{}

func (m membership[T]) allows(v T) bool {
	if len(m) == 0 {
		return true
	}
	_, ok := m[v]
	return ok
}

func setOf[T comparable](values []T) membership[T] {
	m := make(membership[T], len(values))
	for _, v := range values {
		m[v] = struct{}{}
	}
	return m
}
