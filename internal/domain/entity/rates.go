package entity

import (
	"sort"
	"strings"

	"cloud.google.com/go/civil"
)

// BaseCurrency é a moeda de referência das taxas.
const BaseCurrency = "USD"

// RateTable guarda as taxas de câmbio por data: unidades da moeda por 1 USD.
// Só é escrita durante o carregamento; depois disso é somente leitura.
// Um *RateTable nil se comporta como uma tabela vazia.
type RateTable struct {
	currencies []string
	byDate     map[civil.Date]map[string]float64
}

// NewRateTable cria uma tabela vazia com as colunas de moeda informadas.
func NewRateTable(currencies []string) *RateTable {
	cols := make([]string, 0, len(currencies))
	seen := make(map[string]bool, len(currencies))
	for _, c := range currencies {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		cols = append(cols, c)
	}
	return &RateTable{
		currencies: cols,
		byDate:     make(map[civil.Date]map[string]float64),
	}
}

// Set registra a taxa de uma moeda em uma data. Usado apenas pelo carregador.
func (t *RateTable) Set(date civil.Date, currency string, rate float64) {
	row, ok := t.byDate[date]
	if !ok {
		row = make(map[string]float64, len(t.currencies))
		t.byDate[date] = row
	}
	row[strings.ToUpper(strings.TrimSpace(currency))] = rate
}

// Rate retorna a taxa de uma moeda na data, se existir. O código da moeda não diferencia maiúsculas.
func (t *RateTable) Rate(currency string, date civil.Date) (float64, bool) {
	if t == nil {
		return 0, false
	}
	row, ok := t.byDate[date]
	if !ok {
		return 0, false
	}
	rate, ok := row[strings.ToUpper(strings.TrimSpace(currency))]
	return rate, ok
}

// HasCurrency indica se a moeda é uma coluna da tabela.
func (t *RateTable) HasCurrency(currency string) bool {
	if t == nil {
		return false
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	for _, c := range t.currencies {
		if c == currency {
			return true
		}
	}
	return false
}

// Currencies retorna as colunas de moeda na ordem do arquivo.
func (t *RateTable) Currencies() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.currencies))
	copy(out, t.currencies)
	return out
}

// Dates retorna as datas presentes em ordem crescente.
func (t *RateTable) Dates() []civil.Date {
	if t == nil {
		return nil
	}
	dates := make([]civil.Date, 0, len(t.byDate))
	for d := range t.byDate {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// Len retorna o número de datas.
func (t *RateTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.byDate)
}

// Empty indica que não há nenhuma taxa disponível.
func (t *RateTable) Empty() bool {
	return t.Len() == 0
}
