package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/diillson/fraud-dashboard-go/internal/adapter/driving/httpapi"
	"github.com/diillson/fraud-dashboard-go/internal/application/usecase"
	"github.com/diillson/fraud-dashboard-go/internal/domain/entity"
	"github.com/diillson/fraud-dashboard-go/internal/domain/repository"
	"github.com/diillson/fraud-dashboard-go/internal/domain/service"
	"github.com/diillson/fraud-dashboard-go/internal/logger"
	"github.com/diillson/fraud-dashboard-go/internal/shared/types"
	"github.com/diillson/fraud-dashboard-go/pkg/version"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd          *cobra.Command
	dashboardUseCase *usecase.DashboardUseCase
	configRepo       repository.ConfigRepository
	serverConfig     types.ServerConfig
	version          string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:          "fraud-dashboard",
		Short:        "Fraud transactions dashboard CLI",
		Version:      formattedVersion,
		RunE:         app.runCommand,
		SilenceUsage: true,
	}

	rootCmd.SetVersionTemplate(`{{printf "Fraud Dashboard version: %s\n" .Version}}`)

	flags := rootCmd.PersistentFlags()
	flags.StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	flags.StringP("transactions", "f", "", "Transactions parquet file (local path, s3://bucket/key or gs://bucket/object)")
	flags.StringP("rates", "x", "", "Exchange rates parquet file (local path, s3:// or gs://)")
	flags.IntP("sample-groups", "k", service.DefaultSampleGroups, "Number of random row groups loaded at startup (0 loads every group)")
	flags.Bool("full", false, "Load the full dataset after the sample")
	flags.StringSlice("vendor-category", nil, "Vendor categories to include (comma-separated)")
	flags.StringSlice("channel", nil, "Channels to include (comma-separated)")
	flags.StringSlice("country", nil, "Countries to include (comma-separated)")
	flags.StringSlice("city", nil, "Cities to include (comma-separated)")
	flags.StringSlice("weekend", nil, "Day types to include: weekday, weekend")
	flags.StringSlice("fraud", nil, "Transaction classes to include: legit, fraud")
	flags.StringP("currency", "u", entity.BaseCurrency, "Target currency for amounts")
	flags.StringSlice("views", nil, "Views to display (default: all). Available: "+strings.Join(service.ViewNames(), ", "))
	flags.StringP("report-name", "n", "", "Specify the base name for the report file (without extension)")
	flags.StringSliceP("report-type", "y", []string{"csv"}, "Specify report types: csv, json, pdf")
	flags.StringP("dir", "d", "", "Directory to save the report files (default: current directory)")

	serveCmd := &cobra.Command{
		Use:          "serve",
		Short:        "Start the dashboard HTTP API",
		RunE:         app.serveCommand,
		SilenceUsage: true,
	}
	serveCmd.Flags().String("addr", "", "Listen address (default: FRAUD_DASHBOARD_ADDR or :8080)")
	rootCmd.AddCommand(serveCmd)

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// parseArgs parses command-line arguments into a CLIArgs struct.
// Valores do arquivo de configuração preenchem as flags não informadas.
func (app *CLIApp) parseArgs(cmd *cobra.Command) (*types.CLIArgs, error) {
	flags := cmd.Flags()

	configFile, _ := flags.GetString("config-file")
	transactions, _ := flags.GetString("transactions")
	rates, _ := flags.GetString("rates")
	sampleGroups, _ := flags.GetInt("sample-groups")
	full, _ := flags.GetBool("full")
	vendorCategories, _ := flags.GetStringSlice("vendor-category")
	channels, _ := flags.GetStringSlice("channel")
	countries, _ := flags.GetStringSlice("country")
	cities, _ := flags.GetStringSlice("city")
	weekend, _ := flags.GetStringSlice("weekend")
	fraud, _ := flags.GetStringSlice("fraud")
	currency, _ := flags.GetString("currency")
	views, _ := flags.GetStringSlice("views")
	reportName, _ := flags.GetString("report-name")
	reportType, _ := flags.GetStringSlice("report-type")
	dir, _ := flags.GetString("dir")
	var addr string
	if flags.Lookup("addr") != nil {
		addr, _ = flags.GetString("addr")
	}

	if configFile != "" {
		if app.configRepo == nil {
			return nil, fmt.Errorf("config file %s given but no config loader is set", configFile)
		}
		cfg, err := app.configRepo.LoadConfigFile(configFile)
		if err != nil {
			return nil, err
		}
		changed := flags.Changed
		mergeString(&transactions, cfg.Transactions, changed("transactions"))
		mergeString(&rates, cfg.Rates, changed("rates"))
		if !changed("sample-groups") && cfg.SampleGroups > 0 {
			sampleGroups = cfg.SampleGroups
		}
		if !changed("full") && cfg.Full {
			full = true
		}
		mergeSlice(&vendorCategories, cfg.VendorCategories, changed("vendor-category"))
		mergeSlice(&channels, cfg.Channels, changed("channel"))
		mergeSlice(&countries, cfg.Countries, changed("country"))
		mergeSlice(&cities, cfg.Cities, changed("city"))
		mergeSlice(&weekend, cfg.Weekend, changed("weekend"))
		mergeSlice(&fraud, cfg.Fraud, changed("fraud"))
		mergeString(&currency, cfg.Currency, changed("currency"))
		mergeSlice(&views, cfg.Views, changed("views"))
		mergeString(&reportName, cfg.ReportName, changed("report-name"))
		mergeSlice(&reportType, cfg.ReportType, changed("report-type"))
		mergeString(&dir, cfg.Dir, changed("dir"))
		mergeString(&addr, cfg.Addr, flags.Lookup("addr") != nil && changed("addr"))
	}

	if sampleGroups < 0 {
		return nil, fmt.Errorf("%w: --sample-groups must not be negative", types.ErrInvalidChoice)
	}

	isWeekend, err := parseChoices(weekend, "weekend", "weekday")
	if err != nil {
		return nil, fmt.Errorf("%w: --weekend: %v", types.ErrInvalidChoice, err)
	}
	isFraud, err := parseChoices(fraud, "fraud", "legit")
	if err != nil {
		return nil, fmt.Errorf("%w: --fraud: %v", types.ErrInvalidChoice, err)
	}

	for i, t := range reportType {
		reportType[i] = strings.ToLower(strings.TrimSpace(t))
	}

	// Set default directory to current working directory if not specified
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = cwd
	} else {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		dir = absDir
	}

	args := &types.CLIArgs{
		ConfigFile:       configFile,
		TransactionsPath: transactions,
		RatesPath:        rates,
		SampleGroups:     sampleGroups,
		Full:             full,
		VendorCategories: vendorCategories,
		Channels:         channels,
		Countries:        countries,
		Cities:           cities,
		IsWeekend:        isWeekend,
		IsFraud:          isFraud,
		Currency:         strings.ToUpper(strings.TrimSpace(currency)),
		Views:            views,
		ReportName:       reportName,
		ReportType:       reportType,
		Dir:              dir,
		Addr:             addr,
	}

	return args, nil
}

func mergeString(dst *string, value string, changed bool) {
	if !changed && value != "" {
		*dst = value
	}
}

func mergeSlice(dst *[]string, values []string, changed bool) {
	if !changed && len(values) > 0 {
		*dst = values
	}
}

func parseChoices(values []string, trueLabel, falseLabel string) ([]bool, error) {
	if len(values) == 0 {
		return nil, nil
	}
	out := make([]bool, 0, len(values))
	for _, v := range values {
		b, err := entity.ParseFlag(v, trueLabel, falseLabel)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// runCommand é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runCommand(cmd *cobra.Command, _ []string) error {
	displayWelcomeBanner(app.version)

	go version.CheckLatestVersion(app.version)

	cliArgs, err := app.parseArgs(cmd)
	if err != nil {
		return err
	}

	return app.dashboardUseCase.RunDashboard(cmd.Context(), cliArgs)
}

// serveCommand carrega a amostra e atende a API HTTP até receber SIGINT ou SIGTERM.
// Com --full a carga completa começa em segundo plano logo após a amostra.
func (app *CLIApp) serveCommand(cmd *cobra.Command, _ []string) error {
	cliArgs, err := app.parseArgs(cmd)
	if err != nil {
		return err
	}
	if cliArgs.TransactionsPath == "" {
		return types.ErrNoTransactionsSource
	}

	cfg := app.serverConfig
	if cliArgs.Addr != "" {
		cfg.Addr = cliArgs.Addr
	}

	log := logger.New(cfg.LogLevel)
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithContext(ctx, log)

	dc := app.dashboardUseCase.NewDatasetContext(cliArgs, logger.Events{Log: log})
	if _, err := dc.LoadSample(ctx); err != nil {
		log.Warn().Err(err).Msg("Serving an empty dataset")
	}
	if cliArgs.Full {
		dc.StartFullLoad(ctx)
	}

	return httpapi.Serve(ctx, cfg.Addr, httpapi.NewRouter(cfg, dc, log), log)
}

// SetDashboardUseCase sets the dashboard use case for the CLI app.
func (app *CLIApp) SetDashboardUseCase(useCase *usecase.DashboardUseCase) {
	app.dashboardUseCase = useCase
}

// SetConfigRepository define o carregador de arquivos de configuração.
func (app *CLIApp) SetConfigRepository(repo repository.ConfigRepository) {
	app.configRepo = repo
}

// SetServerConfig define as configurações usadas pelo comando serve.
func (app *CLIApp) SetServerConfig(cfg types.ServerConfig) {
	app.serverConfig = cfg
}

// ExecuteContext runs the CLI application with the given context.
func (app *CLIApp) ExecuteContext(ctx context.Context) error {
	return app.rootCmd.ExecuteContext(ctx)
}
