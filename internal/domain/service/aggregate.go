package service

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/diillson/fraud-dashboard-go/internal/domain/entity"
)

// Dimension é uma coluna categórica usada como chave de agrupamento.
type Dimension string

const (
	DimNone                 Dimension = ""
	DimVendorCategory       Dimension = "vendor_category"
	DimVendorType           Dimension = "vendor_type"
	DimVendor               Dimension = "vendor"
	DimChannel              Dimension = "channel"
	DimDevice               Dimension = "device"
	DimCardType             Dimension = "card_type"
	DimCountry              Dimension = "country"
	DimCity                 Dimension = "city"
	DimCitySize             Dimension = "city_size"
	DimCurrency             Dimension = "currency"
	DimCustomer             Dimension = "customer_id"
	DimDate                 Dimension = "date"
	DimHour                 Dimension = "hour"
	DimWeekday              Dimension = "weekday"
	DimIsWeekend            Dimension = "is_weekend"
	DimIsFraud              Dimension = "is_fraud"
	DimIsCardPresent        Dimension = "is_card_present"
	DimIsOutsideHomeCountry Dimension = "is_outside_home_country"
	DimIsHighRiskVendor     Dimension = "is_high_risk_vendor"
)

// Of extrai o valor da dimensão de uma transação.
// Horas usam dois dígitos e datas o formato ISO, para que a ordem lexical seja a cronológica.
func (d Dimension) Of(t *entity.Transaction) string {
	switch d {
	case DimVendorCategory:
		return t.VendorCategory
	case DimVendorType:
		return t.VendorType
	case DimVendor:
		return t.Vendor
	case DimChannel:
		return t.Channel
	case DimDevice:
		return t.Device
	case DimCardType:
		return t.CardType
	case DimCountry:
		return t.Country
	case DimCity:
		return t.City
	case DimCitySize:
		return t.CitySize
	case DimCurrency:
		return t.Currency
	case DimCustomer:
		return t.CustomerID
	case DimDate:
		return t.Date.String()
	case DimHour:
		return fmt.Sprintf("%02d", t.Hour)
	case DimWeekday:
		return t.Weekday
	case DimIsWeekend:
		return strconv.FormatBool(t.IsWeekend)
	case DimIsFraud:
		return strconv.FormatBool(t.IsFraud)
	case DimIsCardPresent:
		return strconv.FormatBool(t.IsCardPresent)
	case DimIsOutsideHomeCountry:
		return strconv.FormatBool(t.IsOutsideHomeCountry)
	case DimIsHighRiskVendor:
		return strconv.FormatBool(t.IsHighRiskVendor)
	default:
		return ""
	}
}

// ValueColumn é a coluna numérica agregada.
type ValueColumn int

const (
	// ValueRows não usa coluna; só faz sentido com OpCount.
	ValueRows ValueColumn = iota
	// ValueFraud trata is_fraud como 0/1.
	ValueFraud
	// ValueAmount usa amount_converted; NaN é ignorado.
	ValueAmount
)

func (c ValueColumn) of(t *entity.Transaction) float64 {
	switch c {
	case ValueFraud:
		if t.IsFraud {
			return 1
		}
		return 0
	case ValueAmount:
		return t.AmountConverted
	default:
		return 1
	}
}

// Operator é a função de agregação.
type Operator int

const (
	OpCount Operator = iota
	OpSum
	OpMean
)

// Order define a ordenação do resultado.
type Order int

const (
	// OrderKeyAsc ordena por chave e depois por série.
	OrderKeyAsc Order = iota
	// OrderValueDesc ordena pelo valor agregado, maior primeiro.
	OrderValueDesc
)

// Predicate seleciona as linhas que entram em uma visão.
type Predicate func(t *entity.Transaction) bool

// OnlyFraud mantém apenas transações fraudulentas.
func OnlyFraud(t *entity.Transaction) bool { return t.IsFraud }

// GroupSpec descreve declarativamente uma visão agrupada.
type GroupSpec struct {
	Name  string
	Title string
	Unit  entity.Unit

	Key     Dimension
	SplitBy Dimension
	Value   ValueColumn
	Op      Operator
	Where   Predicate

	// RestrictTopKeys > 0 restringe as chaves às K mais frequentes antes de agregar.
	RestrictTopKeys int
	// MinCount descarta grupos com menos linhas.
	MinCount int
	Order    Order
	// TopN > 0 corta o resultado após a ordenação.
	TopN int

	Labels map[string]string
}

type groupKey struct {
	key    string
	series string
}

type accumulator struct {
	rows    int
	defined int
	sum     float64
}

// Aggregate executa uma GroupSpec sobre as linhas filtradas.
// Tabelas vazias produzem um resultado vazio. Grupos de média sem nenhum valor definido são omitidos.
func Aggregate(rows []entity.Transaction, spec GroupSpec) []entity.GroupValue {
	selected := make([]*entity.Transaction, 0, len(rows))
	for i := range rows {
		if spec.Where == nil || spec.Where(&rows[i]) {
			selected = append(selected, &rows[i])
		}
	}
	if len(selected) == 0 {
		return []entity.GroupValue{}
	}

	var allowed map[string]bool
	if spec.RestrictTopKeys > 0 {
		allowed = topKeysByCount(selected, spec.Key, spec.RestrictTopKeys)
	}

	groups := make(map[groupKey]*accumulator)
	for _, t := range selected {
		k := groupKey{key: spec.Key.Of(t), series: spec.SplitBy.Of(t)}
		if allowed != nil && !allowed[k.key] {
			continue
		}
		acc, ok := groups[k]
		if !ok {
			acc = &accumulator{}
			groups[k] = acc
		}
		acc.rows++
		if v := spec.Value.of(t); !math.IsNaN(v) {
			acc.defined++
			acc.sum += v
		}
	}

	out := make([]entity.GroupValue, 0, len(groups))
	for k, acc := range groups {
		if acc.rows < spec.MinCount {
			continue
		}
		var value float64
		switch spec.Op {
		case OpCount:
			value = float64(acc.rows)
		case OpSum:
			value = acc.sum
		case OpMean:
			if acc.defined == 0 {
				continue
			}
			value = acc.sum / float64(acc.defined)
		}
		out = append(out, entity.GroupValue{
			Key:    k.key,
			Label:  spec.label(k.key),
			Series: k.series,
			Value:  value,
			Count:  acc.rows,
		})
	}

	sortGroups(out, spec.Order)
	if spec.TopN > 0 && len(out) > spec.TopN {
		out = out[:spec.TopN]
	}
	return out
}

func (s GroupSpec) label(key string) string {
	if l, ok := s.Labels[key]; ok {
		return l
	}
	return key
}

// topKeysByCount retorna as n chaves mais frequentes; empates são resolvidos pela chave.
func topKeysByCount(rows []*entity.Transaction, dim Dimension, n int) map[string]bool {
	counts := make(map[string]int)
	for _, t := range rows {
		counts[dim.Of(t)]++
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	allowed := make(map[string]bool, len(keys))
	for _, k := range keys {
		allowed[k] = true
	}
	return allowed
}

func sortGroups(items []entity.GroupValue, order Order) {
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if order == OrderValueDesc && a.Value != b.Value {
			return a.Value > b.Value
		}
		if a.Key != b.Key {
			return a.Key < b.Key
		}
		return a.Series < b.Series
	})
}
