package service

import "github.com/diillson/fraud-dashboard-go/internal/domain/entity"

var (
	weekendLabels     = map[string]string{"false": "Weekday", "true": "Weekend"}
	cardPresentLabels = map[string]string{"false": "Card not present", "true": "Card present"}
	homeCountryLabels = map[string]string{"false": "Inside home country", "true": "Outside home country"}
	highRiskLabels    = map[string]string{"false": "Regular vendor", "true": "High-risk vendor"}
)

// minDeviceTransactions é o mínimo de transações para um dispositivo entrar no ranking.
const minDeviceTransactions = 5

// DefaultViews é a tabela de visões do dashboard, na ordem de exibição.
var DefaultViews = []GroupSpec{
	fraudRate("fraud_ratio_by_category", "Fraud ratio by vendor category", DimVendorCategory, OrderValueDesc, nil),
	fraudRate("fraud_vs_weekend", "Fraud ratio: weekend vs weekday", DimIsWeekend, OrderKeyAsc, weekendLabels),
	fraudRate("fraud_by_hour", "Fraud ratio by hour of day", DimHour, OrderKeyAsc, nil),
	{
		Name:     "fraud_by_device",
		Title:    "Fraud ratio by device (top 20)",
		Unit:     entity.UnitRatio,
		Key:      DimDevice,
		Value:    ValueFraud,
		Op:       OpMean,
		MinCount: minDeviceTransactions,
		Order:    OrderValueDesc,
		TopN:     20,
	},
	{
		Name:  "transactions_counts",
		Title: "Transactions per day",
		Unit:  entity.UnitCount,
		Key:   DimDate,
		Op:    OpCount,
		Order: OrderKeyAsc,
	},
	{
		Name:            "amount_by_country",
		Title:           "Average transaction amount by country (top 20)",
		Unit:            entity.UnitAmount,
		Key:             DimCountry,
		SplitBy:         DimIsFraud,
		Value:           ValueAmount,
		Op:              OpMean,
		RestrictTopKeys: 20,
		Order:           OrderKeyAsc,
	},
	{
		Name:    "currency_usage",
		Title:   "Currency usage",
		Unit:    entity.UnitCount,
		Key:     DimCurrency,
		SplitBy: DimIsFraud,
		Op:      OpCount,
		Order:   OrderKeyAsc,
	},
	fraudRate("fraud_by_vendor_type", "Fraud ratio by vendor type", DimVendorType, OrderValueDesc, nil),
	fraudRate("fraud_by_card_type", "Fraud ratio by card type", DimCardType, OrderValueDesc, nil),
	fraudRate("fraud_by_card_present", "Fraud ratio: card present vs not present", DimIsCardPresent, OrderKeyAsc, cardPresentLabels),
	fraudRate("fraud_outside_home_country", "Fraud ratio: inside vs outside home country", DimIsOutsideHomeCountry, OrderKeyAsc, homeCountryLabels),
	fraudRate("fraud_high_risk_vendor", "Fraud ratio: high-risk vs regular vendor", DimIsHighRiskVendor, OrderKeyAsc, highRiskLabels),
	fraudRate("fraud_by_city_size", "Fraud ratio by city size", DimCitySize, OrderValueDesc, nil),
	fraudCount("top_fraudulent_vendors", "Top 20 vendors by fraudulent transactions", DimVendor),
	fraudCount("top_fraudulent_cities", "Top 20 cities by fraudulent transactions", DimCity),
	{
		Name:  "top_fraudulent_customers",
		Title: "Top 10 customers by fraud amount",
		Unit:  entity.UnitAmount,
		Key:   DimCustomer,
		Value: ValueAmount,
		Op:    OpSum,
		Where: OnlyFraud,
		Order: OrderValueDesc,
		TopN:  10,
	},
}

func fraudRate(name, title string, key Dimension, order Order, labels map[string]string) GroupSpec {
	return GroupSpec{
		Name:   name,
		Title:  title,
		Unit:   entity.UnitRatio,
		Key:    key,
		Value:  ValueFraud,
		Op:     OpMean,
		Order:  order,
		Labels: labels,
	}
}

func fraudCount(name, title string, key Dimension) GroupSpec {
	return GroupSpec{
		Name:  name,
		Title: title,
		Unit:  entity.UnitCount,
		Key:   key,
		Op:    OpCount,
		Where: OnlyFraud,
		Order: OrderValueDesc,
		TopN:  20,
	}
}

// ViewNames retorna os nomes das visões padrão.
func ViewNames() []string {
	names := make([]string, len(DefaultViews))
	for i, v := range DefaultViews {
		names[i] = v.Name
	}
	return names
}

// SelectViews filtra DefaultViews pelos nomes informados; nenhum nome seleciona todas.
// Nomes desconhecidos são devolvidos em unknown.
func SelectViews(names []string) (selected []GroupSpec, unknown []string) {
	if len(names) == 0 {
		return DefaultViews, nil
	}
	wanted := setOf(names)
	for _, v := range DefaultViews {
		if _, ok := wanted[v.Name]; ok {
			selected = append(selected, v)
			delete(wanted, v.Name)
		}
	}
	for _, n := range names {
		if _, ok := wanted[n]; ok {
			unknown = append(unknown, n)
			delete(wanted, n)
		}
	}
	return selected, unknown
}
