package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/diillson/fraud-dashboard-go/internal/domain/entity"
	"github.com/diillson/fraud-dashboard-go/internal/domain/repository"
	"github.com/jung-kurt/gofpdf"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

var csvHeaders = []string{"Section", "Name", "Key", "Label", "Series", "Value", "Count"}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ExportToCSV grava uma linha por item: resumo, visões, correlações e histograma.
func (r *ExportRepositoryImpl) ExportToCSV(report *entity.DashboardReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	records := [][]string{csvHeaders}

	s := report.Summary
	summaryRows := []struct {
		key   string
		value string
	}{
		{"total_transactions", strconv.Itoa(s.TotalTransactions)},
		{"fraud_transactions", strconv.Itoa(s.FraudTransactions)},
		{"legit_transactions", strconv.Itoa(s.LegitTransactions)},
		{"total_fraud_amount", formatFloat(s.TotalFraudAmount)},
		{"fraud_percentage", formatFloat(s.FraudPercentage)},
	}
	if s.AvgAmountAvailable {
		summaryRows = append(summaryRows, struct {
			key   string
			value string
		}{"avg_amount", formatFloat(s.AvgAmount)})
	}
	for _, row := range summaryRows {
		records = append(records, []string{"summary", s.Currency, row.key, row.key, "", row.value, ""})
	}

	for _, view := range report.Views {
		for _, item := range view.Items {
			records = append(records, []string{
				"view", view.Name, item.Key, cleanRichTags(item.Label), item.Series,
				formatFloat(item.Value), strconv.Itoa(item.Count),
			})
		}
	}

	for _, c := range report.Correlation.Coefficients {
		records = append(records, []string{
			"correlation", "is_fraud", c.Field, c.Field, "",
			formatFloat(c.Coefficient), strconv.Itoa(report.Correlation.Rows),
		})
	}

	for _, bin := range report.Histogram.Bins {
		key := fmt.Sprintf("%s-%s", formatFloat(bin.Lower), formatFloat(bin.Upper))
		records = append(records, []string{
			"histogram", report.Histogram.Currency, key, key, "", "", strconv.Itoa(bin.Count),
		})
	}

	if err := writer.WriteAll(records); err != nil {
		return "", fmt.Errorf("error writing CSV data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToJSON(report *entity.DashboardReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

const maxPDFItems = 25

func (r *ExportRepositoryImpl) ExportToPDF(report *entity.DashboardReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	sectionTitleColor := [3]int{0, 0, 0}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		footerText := fmt.Sprintf("Generated by Fraud Dashboard (Go) | %s", report.GeneratedAt.Format("2006-01-02 15:04"))
		pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	sectionTitle := func(title string) {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
		pdf.Cell(0, 8, tr(title))
		pdf.Ln(7)

		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(4)
	}

	tableRow := func(cells []string, widths []float64, bold bool) {
		style := ""
		border := ""
		if bold {
			style = "B"
			border = "B"
		}
		pdf.SetFont("Arial", style, 9)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		for i, cell := range cells {
			ln := 0
			if i == len(cells)-1 {
				ln = 1
			}
			pdf.CellFormat(widths[i], 6, tr(cell), border, ln, "L", false, 0, "")
		}
	}

	pdf.AddPage()
	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, "  Fraud Dashboard Report", "", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	datasetLine := fmt.Sprintf("  Dataset: %s (%d rows, version %d)", report.Dataset.Source, report.Dataset.Rows, report.Dataset.Version)
	pdf.CellFormat(0, 8, tr(datasetLine), "", 1, "L", true, 0, "")
	pdf.Ln(8)

	s := report.Summary
	sectionTitle("Summary")
	avg := "N/A"
	if s.AvgAmountAvailable {
		avg = entity.UnitAmount.Format(s.AvgAmount, s.Currency)
	}
	summaryWidths := []float64{95, 95}
	for _, row := range [][]string{
		{"Total transactions", strconv.Itoa(s.TotalTransactions)},
		{"Fraudulent transactions", strconv.Itoa(s.FraudTransactions)},
		{"Legitimate transactions", strconv.Itoa(s.LegitTransactions)},
		{"Total fraud amount", entity.UnitAmount.Format(s.TotalFraudAmount, s.Currency)},
		{"Fraud percentage", fmt.Sprintf("%.2f%%", s.FraudPercentage)},
		{"Average amount", avg},
	} {
		tableRow(row, summaryWidths, false)
	}
	pdf.Ln(8)

	viewWidths := []float64{100, 50, 40}
	for _, view := range report.Views {
		sectionTitle(view.Title)
		if view.Empty() {
			pdf.SetFont("Arial", "I", 9)
			pdf.Cell(0, 6, "No data for the selected filters")
			pdf.Ln(10)
			continue
		}
		tableRow([]string{"Group", "Value", "Rows"}, viewWidths, true)
		for i, item := range view.Items {
			if i == maxPDFItems {
				tableRow([]string{fmt.Sprintf("... %d more", len(view.Items)-maxPDFItems), "", ""}, viewWidths, false)
				break
			}
			label := cleanRichTags(item.Label)
			if item.Series != "" {
				label = fmt.Sprintf("%s / %s", label, item.Series)
			}
			if len(label) > 60 {
				label = label[:57] + "..."
			}
			tableRow([]string{label, view.Unit.Format(item.Value, s.Currency), strconv.Itoa(item.Count)}, viewWidths, false)
		}
		pdf.Ln(8)
	}

	sectionTitle("Activity correlation with fraud")
	if !report.Correlation.Available {
		pdf.SetFont("Arial", "I", 9)
		pdf.Cell(0, 6, "No data for the selected filters")
		pdf.Ln(10)
	} else {
		for _, c := range report.Correlation.Coefficients {
			tableRow([]string{c.Field, fmt.Sprintf("%.4f", c.Coefficient)}, summaryWidths, false)
		}
	}

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// --- Funções Auxiliares ---

// generateFilename cria um nome de arquivo único com timestamp e garante que o diretório exista.
func generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}

// Regex para limpar formatação pterm (rich tags) e sequências ANSI de cor/estilo.
var richTagRegex = regexp.MustCompile(`\[/?([a-zA-Z]+|#[0-9a-fA-F]{6})\]`)
var ansiRegex = regexp.MustCompile(`\x1B\[[0-9;]*[A-Za-z]`)

// cleanRichTags remove tags de formatação do pterm e sequências ANSI.
func cleanRichTags(text string) string {
	text = richTagRegex.ReplaceAllString(text, "")
	text = ansiRegex.ReplaceAllString(text, "")
	return text
}
