package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/fraud-dashboard-go/internal/domain/entity"
	"github.com/diillson/fraud-dashboard-go/internal/domain/service"
	"github.com/diillson/fraud-dashboard-go/internal/shared/types"
)

type recordingConsole struct {
	mu       sync.Mutex
	warnings []string
	errors   []string
	success  []string
	bars     map[string][]types.Bar
	trends   map[string][]types.TrendPoint
	tables   int
}

func newRecordingConsole() *recordingConsole {
	return &recordingConsole{bars: map[string][]types.Bar{}, trends: map[string][]types.TrendPoint{}}
}

func (c *recordingConsole) record(dst *[]string, format string, a ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	*dst = append(*dst, fmt.Sprintf(format, a...))
}

func (c *recordingConsole) LogInfo(string, ...interface{}) {}
func (c *recordingConsole) LogWarning(format string, a ...interface{}) {
	c.record(&c.warnings, format, a...)
}
func (c *recordingConsole) LogError(format string, a ...interface{}) {
	c.record(&c.errors, format, a...)
}
func (c *recordingConsole) LogSuccess(format string, a ...interface{}) {
	c.record(&c.success, format, a...)
}
func (c *recordingConsole) Print(...interface{})          {}
func (c *recordingConsole) Printf(string, ...interface{}) {}
func (c *recordingConsole) Println(...interface{})        {}
func (c *recordingConsole) Status(string) types.StatusHandle {
	return noopStatus{}
}
func (c *recordingConsole) CreateTable() types.TableInterface {
	c.mu.Lock()
	c.tables++
	c.mu.Unlock()
	return &noopTable{}
}
func (c *recordingConsole) DisplayBars(title string, bars []types.Bar) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bars[title] = bars
}
func (c *recordingConsole) DisplayTrendBars(title string, points []types.TrendPoint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.trends[title] = points
}

func (c *recordingConsole) hasWarning(substr string) bool {
	for _, w := range c.warnings {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}

type noopStatus struct{}

func (noopStatus) Update(string) {}
func (noopStatus) Stop()         {}

type noopTable struct{}

func (*noopTable) AddColumn(string, ...interface{}) {}
func (*noopTable) AddRow(...interface{})            {}
func (*noopTable) Render() string                   { return "" }

type fakeExport struct {
	reports []*entity.DashboardReport
	calls   []string
	err     error
}

func (e *fakeExport) export(kind string, report *entity.DashboardReport, name string) (string, error) {
	e.calls = append(e.calls, kind)
	e.reports = append(e.reports, report)
	if e.err != nil {
		return "", e.err
	}
	return name + "." + kind, nil
}

func (e *fakeExport) ExportToCSV(r *entity.DashboardReport, name, _ string) (string, error) {
	return e.export("csv", r, name)
}

func (e *fakeExport) ExportToJSON(r *entity.DashboardReport, name, _ string) (string, error) {
	return e.export("json", r, name)
}

func (e *fakeExport) ExportToPDF(r *entity.DashboardReport, name, _ string) (string, error) {
	return e.export("pdf", r, name)
}

func newDashboard(tx *fakeTxRepo, exp *fakeExport) (*DashboardUseCase, *recordingConsole) {
	con := newRecordingConsole()
	return NewDashboardUseCase(tx, &fakeRateRepo{table: testRates()}, exp, con), con
}

func TestRunDashboard_RequiresTransactions(t *testing.T) {
	uc, _ := newDashboard(&fakeTxRepo{file: newFakeFile()}, &fakeExport{})
	err := uc.RunDashboard(context.Background(), &types.CLIArgs{})
	assert.ErrorIs(t, err, types.ErrNoTransactionsSource)
}

func TestRunDashboard_RendersAndExports(t *testing.T) {
	exp := &fakeExport{}
	uc, con := newDashboard(&fakeTxRepo{file: newFakeFile()}, exp)

	err := uc.RunDashboard(context.Background(), &types.CLIArgs{
		TransactionsPath: "transactions.parquet",
		RatesPath:        "rates.parquet",
		SampleGroups:     3,
		IsFraud:          []bool{true},
		Currency:         "eur",
		ReportName:       "weekly",
		ReportType:       []string{"csv", "json", "xlsx"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"csv", "json"}, exp.calls)
	require.Len(t, exp.reports, 2)
	report := exp.reports[0]
	assert.Equal(t, "EUR", report.Summary.Currency)
	assert.Equal(t, 2, report.Summary.TotalTransactions)
	assert.Len(t, report.Views, len(service.DefaultViews))

	assert.True(t, con.hasWarning("xlsx"))
	assert.Len(t, con.success, 2)
	assert.GreaterOrEqual(t, con.tables, 2)
	assert.Contains(t, con.trends, "Transactions per day")
}

func TestRunDashboard_SelectedViews(t *testing.T) {
	exp := &fakeExport{}
	uc, con := newDashboard(&fakeTxRepo{file: newFakeFile()}, exp)

	err := uc.RunDashboard(context.Background(), &types.CLIArgs{
		TransactionsPath: "transactions.parquet",
		Views:            []string{"fraud_by_card_type", "bogus"},
		ReportName:       "only",
		ReportType:       []string{"json"},
	})
	require.NoError(t, err)
	require.Len(t, exp.reports, 1)
	require.Len(t, exp.reports[0].Views, 1)
	assert.Equal(t, "fraud_by_card_type", exp.reports[0].Views[0].Name)
	assert.True(t, con.hasWarning("bogus"))
}

func TestRunDashboard_NoKnownViews(t *testing.T) {
	uc, _ := newDashboard(&fakeTxRepo{file: newFakeFile()}, &fakeExport{})
	err := uc.RunDashboard(context.Background(), &types.CLIArgs{
		TransactionsPath: "transactions.parquet",
		Views:            []string{"bogus"},
	})
	assert.ErrorIs(t, err, types.ErrUnknownView)
}

func TestRunDashboard_LoadFailureShowsEmptyDashboard(t *testing.T) {
	exp := &fakeExport{err: errBoom}
	uc, con := newDashboard(&fakeTxRepo{openErr: errBoom}, exp)

	err := uc.RunDashboard(context.Background(), &types.CLIArgs{
		TransactionsPath: "transactions.parquet",
		ReportName:       "empty",
		ReportType:       []string{"pdf"},
	})
	require.NoError(t, err)
	require.Len(t, exp.reports, 1)
	assert.Zero(t, exp.reports[0].Summary.TotalTransactions)
	assert.True(t, con.hasWarning("No transactions match"))
	assert.Len(t, con.errors, 1)
}

func TestRunDashboard_FullLoad(t *testing.T) {
	file := newFakeFile()
	exp := &fakeExport{}
	uc, _ := newDashboard(&fakeTxRepo{file: file}, exp)

	err := uc.RunDashboard(context.Background(), &types.CLIArgs{
		TransactionsPath: "transactions.parquet",
		SampleGroups:     1,
		Full:             true,
		ReportName:       "full",
		ReportType:       []string{"json"},
	})
	require.NoError(t, err)
	require.Len(t, exp.reports, 1)
	assert.Equal(t, entity.SourceFull, exp.reports[0].Dataset.Source)
	assert.Equal(t, 3, exp.reports[0].Dataset.Rows)
}

func TestRunDashboard_UnknownCurrencyWarns(t *testing.T) {
	uc, con := newDashboard(&fakeTxRepo{file: newFakeFile()}, &fakeExport{})
	err := uc.RunDashboard(context.Background(), &types.CLIArgs{
		TransactionsPath: "transactions.parquet",
		Currency:         "JPY",
	})
	require.NoError(t, err)
	assert.True(t, con.hasWarning("JPY"))
}

func TestFilterFromArgs(t *testing.T) {
	f := FilterFromArgs(&types.CLIArgs{Countries: []string{"Germany"}, Currency: " gbp "})
	assert.Equal(t, "GBP", f.TargetCurrency)
	assert.Equal(t, []string{"Germany"}, f.Countries)
	assert.Equal(t, entity.BaseCurrency, FilterFromArgs(&types.CLIArgs{}).TargetCurrency)
}

func TestHistogramBars(t *testing.T) {
	h := entity.Histogram{Bins: []entity.HistogramBin{{Lower: 0, Upper: 1, Count: 3}}}
	bars := histogramBars(h)
	require.Len(t, bars, 1)
	assert.Equal(t, "0.00 - 1.00", bars[0].Label)
	assert.Equal(t, "3", bars[0].Display)
}
