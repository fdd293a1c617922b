package service

import (
	"math"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/diillson/fraud-dashboard-go/internal/domain/entity"
)

// Preprocess normaliza os registros brutos e calcula amount_usd com base na tabela de taxas.
// É uma função pura: as mesmas entradas produzem sempre a mesma saída, e a entrada não é alterada.
func Preprocess(raw []entity.RawTransaction, rates *entity.RateTable) ([]entity.Transaction, *entity.RateTable) {
	out := make([]entity.Transaction, len(raw))
	for i := range raw {
		out[i] = enrich(&raw[i], rates)
	}
	return out, rates
}

func enrich(r *entity.RawTransaction, rates *entity.RateTable) entity.Transaction {
	// Timestamp em UTC truncado para segundos
	ts := r.Timestamp.UTC().Truncate(time.Second)
	date := civil.DateOf(ts)

	activity := entity.MissingActivity()
	if r.LastHourActivity != nil {
		activity = *r.LastHourActivity
	}

	currency := strings.ToUpper(strings.TrimSpace(r.Currency))

	isWeekend := ts.Weekday() == time.Saturday || ts.Weekday() == time.Sunday
	if r.IsWeekend != nil {
		isWeekend = *r.IsWeekend
	}

	return entity.Transaction{
		Timestamp:            ts,
		Date:                 date,
		Hour:                 ts.Hour(),
		Weekday:              ts.Weekday().String(),
		Amount:               r.Amount,
		Currency:             currency,
		Country:              r.Country,
		City:                 r.City,
		CitySize:             r.CitySize,
		Vendor:               r.Vendor,
		VendorCategory:       r.VendorCategory,
		VendorType:           r.VendorType,
		Channel:              r.Channel,
		Device:               r.Device,
		CardType:             r.CardType,
		CustomerID:           r.CustomerID,
		IsCardPresent:        r.IsCardPresent,
		IsOutsideHomeCountry: r.IsOutsideHomeCountry,
		IsHighRiskVendor:     r.IsHighRiskVendor,
		IsWeekend:            isWeekend,
		IsFraud:              r.IsFraud,
		LastHourActivity:     activity,
		AmountUSD:            ToUSD(r.Amount, currency, date, rates),
		AmountConverted:      math.NaN(),
	}
}

// ToUSD converte um valor para USD dividindo pela taxa da moeda na data.
// Retorna NaN se a moeda não tem taxa na data ou se a taxa é zero.
func ToUSD(amount float64, currency string, date civil.Date, rates *entity.RateTable) float64 {
	rate, ok := rates.Rate(currency, date)
	if !ok || math.IsNaN(rate) || rate == 0 {
		return math.NaN()
	}
	return amount / rate
}
