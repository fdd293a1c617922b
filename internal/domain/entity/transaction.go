package entity

import (
	"math"
	"time"

	"cloud.google.com/go/civil"
)

// LastHourActivity resume a atividade do cliente na hora anterior à transação.
// Valores ausentes são NaN, nunca zero.
type LastHourActivity struct {
	NumTransactions float64 `json:"num_transactions"`
	TotalAmount     float64 `json:"total_amount"`
	UniqueMerchants float64 `json:"unique_merchants"`
	UniqueCountries float64 `json:"unique_countries"`
	MaxSingleAmount float64 `json:"max_single_amount"`
}

// MissingActivity retorna o resumo usado quando o campo aninhado está ausente ou malformado.
func MissingActivity() LastHourActivity {
	nan := math.NaN()
	return LastHourActivity{
		NumTransactions: nan,
		TotalAmount:     nan,
		UniqueMerchants: nan,
		UniqueCountries: nan,
		MaxSingleAmount: nan,
	}
}

// ActivityFields lista os campos numéricos da atividade na ordem usada pela correlação.
var ActivityFields = []string{
	"num_transactions",
	"total_amount",
	"unique_merchants",
	"unique_countries",
	"max_single_amount",
}

// Values retorna os campos na mesma ordem de ActivityFields.
func (a LastHourActivity) Values() []float64 {
	return []float64{a.NumTransactions, a.TotalAmount, a.UniqueMerchants, a.UniqueCountries, a.MaxSingleAmount}
}

// RawTransaction é um registro como lido do arquivo de transações, antes do pré-processamento.
type RawTransaction struct {
	Timestamp            time.Time
	Amount               float64
	Currency             string
	Country              string
	City                 string
	CitySize             string
	Vendor               string
	VendorCategory       string
	VendorType           string
	Channel              string
	Device               string
	CardType             string
	CustomerID           string
	IsCardPresent        bool
	IsOutsideHomeCountry bool
	IsHighRiskVendor     bool
	IsFraud              bool

	// IsWeekend é nil quando a coluna não existe no arquivo.
	IsWeekend *bool

	// LastHourActivity é nil quando o valor está ausente ou não é uma estrutura.
	LastHourActivity *LastHourActivity
}

// Transaction é o registro enriquecido produzido pelo pré-processamento.
type Transaction struct {
	Timestamp            time.Time        `json:"timestamp"`
	Date                 civil.Date       `json:"date"`
	Hour                 int              `json:"hour"`
	Weekday              string           `json:"weekday"`
	Amount               float64          `json:"amount"`
	Currency             string           `json:"currency"`
	Country              string           `json:"country"`
	City                 string           `json:"city"`
	CitySize             string           `json:"city_size"`
	Vendor               string           `json:"vendor"`
	VendorCategory       string           `json:"vendor_category"`
	VendorType           string           `json:"vendor_type"`
	Channel              string           `json:"channel"`
	Device               string           `json:"device"`
	CardType             string           `json:"card_type"`
	CustomerID           string           `json:"customer_id"`
	IsCardPresent        bool             `json:"is_card_present"`
	IsOutsideHomeCountry bool             `json:"is_outside_home_country"`
	IsHighRiskVendor     bool             `json:"is_high_risk_vendor"`
	IsWeekend            bool             `json:"is_weekend"`
	IsFraud              bool             `json:"is_fraud"`
	LastHourActivity     LastHourActivity `json:"last_hour_activity"`

	// AmountUSD é NaN quando não há taxa para a moeda na data, ou a taxa é zero.
	AmountUSD float64 `json:"-"`
	// AmountConverted é preenchido pelo filtro na moeda alvo; NaN quando indefinido.
	AmountConverted float64 `json:"-"`
}
