package main

import (
	"fmt"
	"os"

	"github.com/diillson/fraud-dashboard-go/internal/adapter/driven/config"
	"github.com/diillson/fraud-dashboard-go/internal/adapter/driven/export"
	"github.com/diillson/fraud-dashboard-go/internal/adapter/driven/parquet"
	"github.com/diillson/fraud-dashboard-go/internal/adapter/driven/storage"
	"github.com/diillson/fraud-dashboard-go/internal/adapter/driving/cli"
	"github.com/diillson/fraud-dashboard-go/internal/application/usecase"
	"github.com/diillson/fraud-dashboard-go/pkg/console"
	"github.com/diillson/fraud-dashboard-go/pkg/version"
)

func main() {
	app := cli.NewCLIApp(version.Version)

	serverConfig := config.LoadServerConfig()

	// Inicializa os repositórios
	opener := storage.NewOpener(storage.Options{
		AWSProfile:         serverConfig.AWSProfile,
		AWSRegion:          serverConfig.AWSRegion,
		GCSCredentialsFile: serverConfig.GCSCredentialsFile,
	})
	parquetRepo := parquet.NewRepository(opener)
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()
	consoleImpl := console.NewConsole()

	dashboardUseCase := usecase.NewDashboardUseCase(
		parquetRepo,
		parquetRepo,
		exportRepo,
		consoleImpl,
	)

	app.SetDashboardUseCase(dashboardUseCase)
	app.SetConfigRepository(configRepo)
	app.SetServerConfig(serverConfig)

	err := app.Execute()
	if cerr := opener.Close(); cerr != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", cerr)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
