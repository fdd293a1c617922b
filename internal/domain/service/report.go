package service

import (
	"time"

	"github.com/diillson/fraud-dashboard-go/internal/domain/entity"
)

// BuildReport executa um ciclo completo: filtro, conversão de moeda e todas as agregações.
// O snapshot não é alterado. Um snapshot nil é tratado como um conjunto vazio.
func BuildReport(s *entity.Snapshot, f entity.Filter, views []GroupSpec) *entity.DashboardReport {
	var rows []entity.Transaction
	var rates *entity.RateTable
	if s != nil {
		rows, rates = s.Transactions, s.Rates
	}
	if views == nil {
		views = DefaultViews
	}

	f.TargetCurrency = f.Currency()
	filtered := ApplyFilter(rows, rates, f)

	report := &entity.DashboardReport{
		GeneratedAt: time.Now(),
		Dataset:     s.Info(),
		Filter:      f,
		Summary:     Summarize(filtered, f.TargetCurrency),
		Views:       make([]entity.ViewResult, 0, len(views)),
		Correlation: Correlate(filtered),
		Histogram:   AmountHistogram(filtered, f.TargetCurrency, HistogramBins),
	}
	for _, spec := range views {
		report.Views = append(report.Views, entity.ViewResult{
			Name:  spec.Name,
			Title: spec.Title,
			Unit:  spec.Unit,
			Items: Aggregate(filtered, spec),
		})
	}
	return report
}
