package repository

import (
	"github.com/diillson/fraud-dashboard-go/internal/domain/entity"
)

type ExportRepository interface {
	ExportToCSV(report *entity.DashboardReport, filename string, outputDir string) (string, error)
	ExportToJSON(report *entity.DashboardReport, filename string, outputDir string) (string, error)
	ExportToPDF(report *entity.DashboardReport, filename string, outputDir string) (string, error)
}
