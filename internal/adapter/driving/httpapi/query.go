package httpapi

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/diillson/fraud-dashboard-go/internal/domain/entity"
	"github.com/diillson/fraud-dashboard-go/internal/shared/types"
)

// listParam aceita parâmetros repetidos e separados por vírgula.
func listParam(q url.Values, name string) []string {
	var out []string
	for _, raw := range q[name] {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func flagParam(q url.Values, name, trueLabel, falseLabel string) ([]bool, error) {
	var out []bool
	for _, v := range listParam(q, name) {
		b, err := entity.ParseFlag(v, trueLabel, falseLabel)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", types.ErrInvalidChoice, name, err)
		}
		out = append(out, b)
	}
	return out, nil
}

// parseFilter converte a query string em um Filter.
func parseFilter(q url.Values) (entity.Filter, error) {
	weekend, err := flagParam(q, "is_weekend", "weekend", "weekday")
	if err != nil {
		return entity.Filter{}, err
	}
	fraud, err := flagParam(q, "is_fraud", "fraud", "legit")
	if err != nil {
		return entity.Filter{}, err
	}

	f := entity.Filter{
		VendorCategories: listParam(q, "vendor_category"),
		Channels:         listParam(q, "channel"),
		Countries:        listParam(q, "country"),
		Cities:           listParam(q, "city"),
		IsWeekend:        weekend,
		IsFraud:          fraud,
		TargetCurrency:   q.Get("currency"),
	}
	f.TargetCurrency = f.Currency()
	return f, nil
}
