package service

import (
	"math"

	"github.com/diillson/fraud-dashboard-go/internal/domain/entity"
)

// Summarize calcula os widgets numéricos. Uma tabela vazia resulta em zeros.
func Summarize(rows []entity.Transaction, currency string) entity.Summary {
	s := entity.Summary{
		TotalTransactions: len(rows),
		Currency:          currency,
	}
	if len(rows) == 0 {
		return s
	}

	var amountSum float64
	var amountDefined int
	for i := range rows {
		t := &rows[i]
		amountOK := !math.IsNaN(t.AmountConverted)
		if amountOK {
			amountSum += t.AmountConverted
			amountDefined++
		}
		if t.IsFraud {
			s.FraudTransactions++
			if amountOK {
				s.TotalFraudAmount += t.AmountConverted
			}
		}
	}

	s.LegitTransactions = s.TotalTransactions - s.FraudTransactions
	s.FraudPercentage = float64(s.FraudTransactions) / float64(s.TotalTransactions) * 100
	if amountDefined > 0 {
		s.AvgAmount = amountSum / float64(amountDefined)
		s.AvgAmountAvailable = true
	}
	return s
}
