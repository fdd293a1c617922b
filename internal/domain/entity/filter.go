package entity

import (
	"fmt"
	"sort"
	"strings"
)

// Filter representa os controles de filtro selecionados pelo usuário.
// Uma lista vazia significa "sem restrição".
type Filter struct {
	VendorCategories []string `json:"vendor_categories,omitempty" yaml:"vendor_categories" toml:"vendor_categories"`
	Channels         []string `json:"channels,omitempty" yaml:"channels" toml:"channels"`
	Countries        []string `json:"countries,omitempty" yaml:"countries" toml:"countries"`
	Cities           []string `json:"cities,omitempty" yaml:"cities" toml:"cities"`
	IsWeekend        []bool   `json:"is_weekend,omitempty" yaml:"is_weekend" toml:"is_weekend"`
	IsFraud          []bool   `json:"is_fraud,omitempty" yaml:"is_fraud" toml:"is_fraud"`
	TargetCurrency   string   `json:"target_currency" yaml:"target_currency" toml:"target_currency"`
}

// Currency retorna a moeda alvo normalizada, USD por padrão.
func (f Filter) Currency() string {
	c := strings.ToUpper(strings.TrimSpace(f.TargetCurrency))
	if c == "" {
		return BaseCurrency
	}
	return c
}

// Key gera uma chave canônica para cache: a ordem dos valores não altera a chave.
func (f Filter) Key() string {
	var b strings.Builder
	writeStrings := func(name string, values []string) {
		sorted := append([]string(nil), values...)
		sort.Strings(sorted)
		fmt.Fprintf(&b, "%s=%s;", name, strings.Join(sorted, ","))
	}
	writeBools := func(name string, values []bool) {
		hasTrue, hasFalse := false, false
		for _, v := range values {
			if v {
				hasTrue = true
			} else {
				hasFalse = true
			}
		}
		fmt.Fprintf(&b, "%s=%t/%t;", name, hasFalse, hasTrue)
	}
	writeStrings("vendor_category", f.VendorCategories)
	writeStrings("channel", f.Channels)
	writeStrings("country", f.Countries)
	writeStrings("city", f.Cities)
	writeBools("is_weekend", f.IsWeekend)
	writeBools("is_fraud", f.IsFraud)
	fmt.Fprintf(&b, "currency=%s", f.Currency())
	return b.String()
}

// ParseFlag interpreta o valor de um filtro booleano.
// Aceita true/false, 1/0 e os rótulos informados, sem diferenciar maiúsculas.
func ParseFlag(value, trueLabel, falseLabel string) (bool, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case "true", "1", strings.ToLower(trueLabel):
		return true, nil
	case "false", "0", strings.ToLower(falseLabel):
		return false, nil
	}
	return false, fmt.Errorf("expected %s or %s, got %q", trueLabel, falseLabel, value)
}
