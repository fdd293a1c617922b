package service

import (
	"context"
	"math"
	"time"

	"cloud.google.com/go/civil"

	"github.com/diillson/fraud-dashboard-go/internal/domain/entity"
)

var (
	monday   = civil.Date{Year: 2024, Month: time.September, Day: 30}
	saturday = civil.Date{Year: 2024, Month: time.September, Day: 28}
)

type txOption func(*entity.Transaction)

func withCategory(c string) txOption { return func(t *entity.Transaction) { t.VendorCategory = c } }
func withCountry(c string) txOption  { return func(t *entity.Transaction) { t.Country = c } }
func withDevice(d string) txOption   { return func(t *entity.Transaction) { t.Device = d } }
func withCustomer(c string) txOption { return func(t *entity.Transaction) { t.CustomerID = c } }
func withDate(d civil.Date) txOption { return func(t *entity.Transaction) { t.Date = d } }
func withHour(h int) txOption        { return func(t *entity.Transaction) { t.Hour = h } }
func withUSD(v float64) txOption     { return func(t *entity.Transaction) { t.AmountUSD = v } }
func withConverted(v float64) txOption {
	return func(t *entity.Transaction) { t.AmountConverted = v }
}
func withActivity(a entity.LastHourActivity) txOption {
	return func(t *entity.Transaction) { t.LastHourActivity = a }
}
func weekend() txOption { return func(t *entity.Transaction) { t.IsWeekend = true } }

func tx(fraud bool, opts ...txOption) entity.Transaction {
	t := entity.Transaction{
		Date:             monday,
		Hour:             12,
		Weekday:          "Monday",
		Amount:           10,
		Currency:         "USD",
		Country:          "Germany",
		City:             "Berlin",
		Vendor:           "Shop",
		VendorCategory:   "Retail",
		Channel:          "web",
		Device:           "Chrome",
		CardType:         "Basic Debit",
		CustomerID:       "CUST_1",
		IsFraud:          fraud,
		LastHourActivity: entity.MissingActivity(),
		AmountUSD:        10,
		AmountConverted:  10,
	}
	for _, o := range opts {
		o(&t)
	}
	return t
}

func repeat(n int, t entity.Transaction) []entity.Transaction {
	out := make([]entity.Transaction, n)
	for i := range out {
		out[i] = t
	}
	return out
}

var nan = math.NaN()

type stubFile struct {
	groups [][]entity.RawTransaction
	reads  map[int]int
	err    error
}

func newStubFile(sizes ...int) *stubFile {
	f := &stubFile{reads: map[int]int{}}
	for g, n := range sizes {
		group := make([]entity.RawTransaction, n)
		for i := range group {
			group[i] = entity.RawTransaction{Amount: float64(g), Currency: "USD"}
		}
		f.groups = append(f.groups, group)
	}
	return f
}

func (f *stubFile) NumRowGroups() int { return len(f.groups) }

func (f *stubFile) NumRows() int64 {
	var n int64
	for _, g := range f.groups {
		n += int64(len(g))
	}
	return n
}

func (f *stubFile) ReadRowGroups(_ context.Context, groups []int) ([]entity.RawTransaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []entity.RawTransaction
	for _, g := range groups {
		f.reads[g]++
		out = append(out, f.groups[g]...)
	}
	return out, nil
}

func (f *stubFile) ReadAll(ctx context.Context) ([]entity.RawTransaction, error) {
	all := make([]int, len(f.groups))
	for i := range all {
		all[i] = i
	}
	return f.ReadRowGroups(ctx, all)
}

func (f *stubFile) Close() error { return nil }
