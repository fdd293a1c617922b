package usecase

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/diillson/fraud-dashboard-go/internal/domain/entity"
	"github.com/diillson/fraud-dashboard-go/internal/domain/service"
	"github.com/diillson/fraud-dashboard-go/internal/shared/types"
)

const trendView = "transactions_counts"

func (uc *DashboardUseCase) displayReport(report *entity.DashboardReport, snap *entity.Snapshot) {
	uc.console.Print(datasetTable(uc.console.CreateTable(), report, snap).Render())
	uc.console.Print(summaryTable(uc.console.CreateTable(), report.Summary).Render())

	for _, view := range report.Views {
		switch {
		case view.Name == trendView:
			uc.console.DisplayTrendBars(view.Title, trendPoints(view))
		case hasSeries(view):
			if view.Empty() {
				uc.console.LogWarning("No data for %s with the selected filters", view.Title)
				continue
			}
			uc.console.Println("\n" + view.Title)
			uc.console.Print(seriesTable(uc.console.CreateTable(), view, report.Summary.Currency).Render())
		default:
			uc.console.DisplayBars(view.Title, viewBars(view, report.Summary.Currency))
		}
	}

	uc.console.DisplayBars("Last-hour activity correlation with fraud", correlationBars(report.Correlation))
	uc.console.DisplayBars(
		fmt.Sprintf("Amount distribution (%s)", report.Histogram.Currency),
		histogramBars(service.Coarsen(report.Histogram, consoleHistogramBins)),
	)
}

func datasetTable(table types.TableInterface, report *entity.DashboardReport, snap *entity.Snapshot) types.TableInterface {
	table.AddColumn("Dataset")
	table.AddColumn("Rows")
	table.AddColumn("Row groups")
	table.AddColumn("Filtered rows")
	table.AddColumn("Currency")

	groups := "-"
	if snap != nil && len(snap.RowGroups) > 0 {
		parts := make([]string, len(snap.RowGroups))
		for i, g := range snap.RowGroups {
			parts[i] = strconv.Itoa(g)
		}
		groups = strings.Join(parts, ", ")
	}

	table.AddRow(
		string(report.Dataset.Source),
		report.Dataset.Rows,
		groups,
		report.Summary.TotalTransactions,
		report.Summary.Currency,
	)
	return table
}

func summaryTable(table types.TableInterface, s entity.Summary) types.TableInterface {
	table.AddColumn("Total Transactions")
	table.AddColumn("Legitimate")
	table.AddColumn("Fraudulent")
	table.AddColumn("Fraud %")
	table.AddColumn("Total Fraud Amount")
	table.AddColumn("Average Amount")

	avg := "N/A"
	if s.AvgAmountAvailable {
		avg = entity.UnitAmount.Format(s.AvgAmount, s.Currency)
	}
	table.AddRow(
		s.TotalTransactions,
		s.LegitTransactions,
		s.FraudTransactions,
		fmt.Sprintf("%.2f%%", s.FraudPercentage),
		entity.UnitAmount.Format(s.TotalFraudAmount, s.Currency),
		avg,
	)
	return table
}

func hasSeries(view entity.ViewResult) bool {
	for _, item := range view.Items {
		if item.Series != "" {
			return true
		}
	}
	return false
}

func seriesTable(table types.TableInterface, view entity.ViewResult, currency string) types.TableInterface {
	table.AddColumn("Group")
	table.AddColumn("Fraud")
	table.AddColumn("Value")
	table.AddColumn("Rows")
	for _, item := range view.Items {
		table.AddRow(item.Label, item.Series, view.Unit.Format(item.Value, currency), item.Count)
	}
	return table
}

func viewBars(view entity.ViewResult, currency string) []types.Bar {
	bars := make([]types.Bar, 0, len(view.Items))
	for _, item := range view.Items {
		bars = append(bars, types.Bar{
			Label:   item.Label,
			Value:   item.Value,
			Display: fmt.Sprintf("%s (%d)", view.Unit.Format(item.Value, currency), item.Count),
		})
	}
	return bars
}

func trendPoints(view entity.ViewResult) []types.TrendPoint {
	points := make([]types.TrendPoint, 0, len(view.Items))
	for _, item := range view.Items {
		points = append(points, types.TrendPoint{Period: item.Label, Value: item.Value})
	}
	return points
}

func correlationBars(c entity.Correlation) []types.Bar {
	if !c.Available {
		return nil
	}
	bars := make([]types.Bar, 0, len(c.Coefficients))
	for _, fc := range c.Coefficients {
		bars = append(bars, types.Bar{
			Label:   fc.Field,
			Value:   fc.Coefficient,
			Display: fmt.Sprintf("%+.4f", fc.Coefficient),
		})
	}
	return bars
}

func histogramBars(h entity.Histogram) []types.Bar {
	bars := make([]types.Bar, 0, len(h.Bins))
	for _, b := range h.Bins {
		bars = append(bars, types.Bar{
			Label:   fmt.Sprintf("%.2f - %.2f", b.Lower, b.Upper),
			Value:   float64(b.Count),
			Display: strconv.Itoa(b.Count),
		})
	}
	return bars
}
