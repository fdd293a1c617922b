package service

import (
	"math"

	"github.com/diillson/fraud-dashboard-go/internal/domain/entity"
)

// Correlate calcula o coeficiente de Pearson entre cada campo de atividade e is_fraud,
// usando apenas linhas com todos os campos definidos. Com menos de duas linhas,
// ou quando nenhum coeficiente é calculável, o resultado fica indisponível.
func Correlate(rows []entity.Transaction) entity.Correlation {
	fields := len(entity.ActivityFields)
	columns := make([][]float64, fields)
	var fraud []float64

	for i := range rows {
		values := rows[i].LastHourActivity.Values()
		complete := true
		for _, v := range values {
			if math.IsNaN(v) {
				complete = false
				break
			}
		}
		if !complete {
			continue
		}
		for j, v := range values {
			columns[j] = append(columns[j], v)
		}
		if rows[i].IsFraud {
			fraud = append(fraud, 1)
		} else {
			fraud = append(fraud, 0)
		}
	}

	result := entity.Correlation{Rows: len(fraud), Coefficients: []entity.FieldCorrelation{}}
	if len(fraud) < 2 {
		return result
	}

	for j, name := range entity.ActivityFields {
		r, ok := pearson(columns[j], fraud)
		if !ok {
			continue
		}
		result.Coefficients = append(result.Coefficients, entity.FieldCorrelation{Field: name, Coefficient: r})
	}
	result.Available = len(result.Coefficients) > 0
	return result
}

// pearson retorna false quando uma das séries tem variância zero.
func pearson(x, y []float64) (float64, bool) {
	n := float64(len(x))
	var sumX, sumY float64
	for i := range x {
		sumX += x[i]
		sumY += y[i]
	}
	meanX, meanY := sumX/n, sumY/n

	var cov, varX, varY float64
	for i := range x {
		dx, dy := x[i]-meanX, y[i]-meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0, false
	}
	r := cov / math.Sqrt(varX*varY)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, false
	}
	return r, true
}
