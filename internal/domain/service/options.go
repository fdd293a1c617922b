package service

import (
	"sort"

	"github.com/diillson/fraud-dashboard-go/internal/domain/entity"
)

// Options lista os valores disponíveis para os filtros a partir do snapshot.
func Options(s *entity.Snapshot) entity.FilterOptions {
	opts := entity.FilterOptions{
		Weekend: []entity.BoolOption{
			{Label: "Weekday", Value: false},
			{Label: "Weekend", Value: true},
		},
		Fraud: []entity.BoolOption{
			{Label: "Legitimate", Value: false},
			{Label: "Fraudulent", Value: true},
		},
		Currencies: []string{entity.BaseCurrency},
	}
	if s == nil {
		return opts
	}

	opts.VendorCategories = distinct(s.Transactions, DimVendorCategory)
	opts.Channels = distinct(s.Transactions, DimChannel)
	opts.Countries = distinct(s.Transactions, DimCountry)
	opts.Cities = distinct(s.Transactions, DimCity)

	for _, c := range s.Rates.Currencies() {
		if c != entity.BaseCurrency {
			opts.Currencies = append(opts.Currencies, c)
		}
	}
	return opts
}

// distinct retorna os valores não vazios e ordenados de uma dimensão.
func distinct(rows []entity.Transaction, dim Dimension) []string {
	seen := make(map[string]struct{})
	for i := range rows {
		if v := dim.Of(&rows[i]); v != "" {
			seen[v] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
