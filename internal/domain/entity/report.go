package entity

import (
	"fmt"
	"time"
)

// Unit indica como o valor de uma visão deve ser apresentado.
type Unit string

const (
	UnitRatio  Unit = "ratio"
	UnitCount  Unit = "count"
	UnitAmount Unit = "amount"
)

// Format formata um valor para exibição. Razões são exibidas como percentual.
func (u Unit) Format(v float64, currency string) string {
	switch u {
	case UnitRatio:
		return fmt.Sprintf("%.2f%%", v*100)
	case UnitAmount:
		return fmt.Sprintf("%.2f %s", v, currency)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}

// GroupValue é um item de uma visão agregada.
type GroupValue struct {
	Key    string  `json:"key"`
	Label  string  `json:"label"`
	Series string  `json:"series,omitempty"`
	Value  float64 `json:"value"`
	Count  int     `json:"count"`
}

// ViewResult é o resultado de uma visão do dashboard.
type ViewResult struct {
	Name  string       `json:"name"`
	Title string       `json:"title"`
	Unit  Unit         `json:"unit"`
	Items []GroupValue `json:"items"`
}

// Empty indica que a visão não tem dados para exibir.
func (v ViewResult) Empty() bool {
	return len(v.Items) == 0
}

// Summary contém os widgets numéricos do topo do dashboard.
type Summary struct {
	TotalTransactions  int     `json:"total_transactions"`
	FraudTransactions  int     `json:"fraud_transactions"`
	LegitTransactions  int     `json:"legit_transactions"`
	TotalFraudAmount   float64 `json:"total_fraud_amount"`
	FraudPercentage    float64 `json:"fraud_percentage"`
	AvgAmount          float64 `json:"avg_amount"`
	AvgAmountAvailable bool    `json:"avg_amount_available"`
	Currency           string  `json:"currency"`
}

// FieldCorrelation é o coeficiente de Pearson de um campo com is_fraud.
type FieldCorrelation struct {
	Field       string  `json:"field"`
	Coefficient float64 `json:"coefficient"`
}

// Correlation agrupa as correlações da atividade da última hora com fraude.
// Available é false quando não há dados suficientes.
type Correlation struct {
	Available    bool               `json:"available"`
	Rows         int                `json:"rows"`
	Coefficients []FieldCorrelation `json:"coefficients"`
}

// HistogramBin é um intervalo [Lower, Upper) do histograma de valores.
type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// Histogram é a distribuição de amount_converted.
type Histogram struct {
	Currency string         `json:"currency"`
	Bins     []HistogramBin `json:"bins"`
}

// DatasetInfo descreve o snapshot usado para gerar um relatório.
type DatasetInfo struct {
	Source  DatasetSource `json:"source"`
	Version uint64        `json:"version"`
	Rows    int           `json:"rows"`
}

// DashboardReport é o resultado completo de um ciclo filtro + agregação.
type DashboardReport struct {
	GeneratedAt time.Time    `json:"generated_at"`
	Dataset     DatasetInfo  `json:"dataset"`
	Filter      Filter       `json:"filter"`
	Summary     Summary      `json:"summary"`
	Views       []ViewResult `json:"views"`
	Correlation Correlation  `json:"correlation"`
	Histogram   Histogram    `json:"histogram"`
}

// View procura uma visão pelo nome.
func (r *DashboardReport) View(name string) (ViewResult, bool) {
	for _, v := range r.Views {
		if v.Name == name {
			return v, true
		}
	}
	return ViewResult{}, false
}

// BoolOption é uma opção rotulada para filtros booleanos.
type BoolOption struct {
	Label string `json:"label"`
	Value bool   `json:"value"`
}

// FilterOptions lista os valores disponíveis para os controles de filtro.
type FilterOptions struct {
	VendorCategories []string     `json:"vendor_categories"`
	Channels         []string     `json:"channels"`
	Countries        []string     `json:"countries"`
	Cities           []string     `json:"cities"`
	Weekend          []BoolOption `json:"is_weekend"`
	Fraud            []BoolOption `json:"is_fraud"`
	Currencies       []string     `json:"currencies"`
}
