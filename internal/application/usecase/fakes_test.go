package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"cloud.google.com/go/civil"

	"github.com/diillson/fraud-dashboard-go/internal/domain/entity"
	"github.com/diillson/fraud-dashboard-go/internal/domain/repository"
)

var errBoom = errors.New("boom")

type fakeFile struct {
	mu      sync.Mutex
	groups  [][]entity.RawTransaction
	reads   map[int]int
	readErr error
}

func (f *fakeFile) NumRowGroups() int { return len(f.groups) }

func (f *fakeFile) NumRows() int64 {
	var n int64
	for _, g := range f.groups {
		n += int64(len(g))
	}
	return n
}

func (f *fakeFile) ReadRowGroups(_ context.Context, groups []int) ([]entity.RawTransaction, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.RawTransaction
	for _, g := range groups {
		f.reads[g]++
		out = append(out, f.groups[g]...)
	}
	return out, nil
}

func (f *fakeFile) ReadAll(ctx context.Context) ([]entity.RawTransaction, error) {
	all := make([]int, len(f.groups))
	for i := range all {
		all[i] = i
	}
	return f.ReadRowGroups(ctx, all)
}

func (f *fakeFile) Close() error { return nil }

type fakeTxRepo struct {
	file    *fakeFile
	openErr error
	delay   time.Duration

	mu    sync.Mutex
	opens int
}

func (r *fakeTxRepo) OpenTransactions(ctx context.Context, _ string) (repository.TransactionFile, error) {
	r.mu.Lock()
	r.opens++
	r.mu.Unlock()

	if r.delay > 0 {
		select {
		case <-time.After(r.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if r.openErr != nil {
		return nil, r.openErr
	}
	return r.file, nil
}

func (r *fakeTxRepo) setOpenErr(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.openErr = err
}

func (r *fakeTxRepo) openCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.opens
}

type fakeRateRepo struct {
	table *entity.RateTable
	err   error
}

func (r *fakeRateRepo) LoadRates(context.Context, string) (*entity.RateTable, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.table, nil
}

type quietLog struct{}

func (quietLog) LogInfo(string, ...interface{})    {}
func (quietLog) LogWarning(string, ...interface{}) {}
func (quietLog) LogError(string, ...interface{})   {}
func (quietLog) LogSuccess(string, ...interface{}) {}

var testDay = civil.Date{Year: 2024, Month: time.September, Day: 30}

func rawTx(currency string, amount float64, fraud bool) entity.RawTransaction {
	return entity.RawTransaction{
		Timestamp:      time.Date(2024, time.September, 30, 14, 5, 7, 900, time.UTC),
		Amount:         amount,
		Currency:       currency,
		Country:        "Germany",
		City:           "Berlin",
		VendorCategory: "Retail",
		VendorType:     "online",
		Channel:        "web",
		Device:         "Chrome",
		CardType:       "Basic Debit",
		CustomerID:     "CUST_1",
		IsFraud:        fraud,
	}
}

func newFakeFile() *fakeFile {
	return &fakeFile{
		groups: [][]entity.RawTransaction{
			{rawTx("EUR", 100, false), rawTx("EUR", 50, true)},
			{rawTx("GBP", 80, true)},
		},
		reads: map[int]int{},
	}
}

func testRates() *entity.RateTable {
	rates := entity.NewRateTable([]string{"EUR", "GBP"})
	rates.Set(testDay, "EUR", 0.9)
	rates.Set(testDay, "GBP", 0.8)
	return rates
}
