package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/diillson/fraud-dashboard-go/internal/domain/entity"
	"github.com/diillson/fraud-dashboard-go/internal/domain/repository"
	"github.com/diillson/fraud-dashboard-go/internal/domain/service"
	"github.com/diillson/fraud-dashboard-go/internal/shared/types"
)

// consoleHistogramBins é o número de bins exibidos no console.
const consoleHistogramBins = 20

// DashboardUseCase handles the main dashboard functionality.
type DashboardUseCase struct {
	txRepo     repository.TransactionRepository
	rateRepo   repository.RateRepository
	exportRepo repository.ExportRepository
	console    types.ConsoleInterface
	sampler    *service.Sampler
}

// NewDashboardUseCase creates a new dashboard use case.
func NewDashboardUseCase(
	txRepo repository.TransactionRepository,
	rateRepo repository.RateRepository,
	exportRepo repository.ExportRepository,
	console types.ConsoleInterface,
) *DashboardUseCase {
	return &DashboardUseCase{
		txRepo:     txRepo,
		rateRepo:   rateRepo,
		exportRepo: exportRepo,
		console:    console,
		sampler:    service.NewSampler(nil),
	}
}

// NewDatasetContext cria o contexto de dados para as entradas da linha de comando.
func (uc *DashboardUseCase) NewDatasetContext(args *types.CLIArgs, log types.LogInterface) *DatasetContext {
	if log == nil {
		log = uc.console
	}
	return NewDatasetContext(uc.txRepo, uc.rateRepo, uc.sampler, DatasetOptions{
		TransactionsURI: args.TransactionsPath,
		RatesURI:        args.RatesPath,
		SampleGroups:    args.SampleGroups,
	}, log)
}

// FilterFromArgs monta o filtro a partir dos argumentos.
func FilterFromArgs(args *types.CLIArgs) entity.Filter {
	f := entity.Filter{
		VendorCategories: args.VendorCategories,
		Channels:         args.Channels,
		Countries:        args.Countries,
		Cities:           args.Cities,
		IsWeekend:        args.IsWeekend,
		IsFraud:          args.IsFraud,
		TargetCurrency:   args.Currency,
	}
	f.TargetCurrency = f.Currency()
	return f
}

// RunDashboard carrega os dados, exibe o dashboard no console e exporta os relatórios pedidos.
// Falhas de carga não interrompem o dashboard: ele é exibido sobre um conjunto vazio.
func (uc *DashboardUseCase) RunDashboard(
	ctx context.Context,
	args *types.CLIArgs,
) error {
	if args.TransactionsPath == "" {
		return types.ErrNoTransactionsSource
	}

	views, unknown := service.SelectViews(args.Views)
	for _, name := range unknown {
		uc.console.LogWarning("Unknown view '%s'. Available views: %s", name, strings.Join(service.ViewNames(), ", "))
	}
	if len(views) == 0 {
		return fmt.Errorf("%w: %s", types.ErrUnknownView, strings.Join(unknown, ", "))
	}

	dc := uc.NewDatasetContext(args, uc.console)

	status := uc.console.Status("Loading transaction sample...")
	snap, err := dc.LoadSample(ctx)
	if err == nil && args.Full {
		status.Update("Loading full dataset...")
		snap, _ = dc.LoadFull(ctx)
	}
	status.Stop()

	f := FilterFromArgs(args)
	if f.TargetCurrency != entity.BaseCurrency && !snap.Rates.HasCurrency(f.TargetCurrency) {
		uc.console.LogWarning("No exchange rates for %s: converted amounts will be unavailable", f.TargetCurrency)
	}

	report := dc.Report(f, views)
	uc.displayReport(report, snap)

	if report.Summary.TotalTransactions == 0 {
		uc.console.LogWarning("No transactions match the selected filters")
	}

	uc.exportReports(report, args)
	return nil
}

func (uc *DashboardUseCase) exportReports(report *entity.DashboardReport, args *types.CLIArgs) {
	if args.ReportName == "" || len(args.ReportType) == 0 {
		return
	}
	for _, reportType := range args.ReportType {
		switch reportType {
		case "csv":
			csvPath, err := uc.exportRepo.ExportToCSV(report, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to CSV: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to CSV: %s", csvPath)
			}
		case "json":
			jsonPath, err := uc.exportRepo.ExportToJSON(report, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to JSON: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to JSON: %s", jsonPath)
			}
		case "pdf":
			pdfPath, err := uc.exportRepo.ExportToPDF(report, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to PDF: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to PDF: %s", pdfPath)
			}
		default:
			uc.console.LogWarning("Unsupported report type '%s'", reportType)
		}
	}
}
