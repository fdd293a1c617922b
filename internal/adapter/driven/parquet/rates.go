package parquet

import (
	"fmt"
	"math"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/apache/arrow/go/v15/arrow"
	"github.com/apache/arrow/go/v15/arrow/array"

	"github.com/diillson/fraud-dashboard-go/internal/domain/entity"
)

var dateColumns = []string{"date", "Date", "__index_level_0__"}

// decodeRates converte a tabela em uma RateTable. Toda coluna numérica além da data é uma moeda.
func decodeRates(tbl arrow.Table) (*entity.RateTable, error) {
	schema := tbl.Schema()

	dateName := ""
	for _, name := range dateColumns {
		if len(schema.FieldIndices(name)) > 0 {
			dateName = name
			break
		}
	}
	if dateName == "" {
		return nil, fmt.Errorf("rates file has no date column")
	}

	var currencies []string
	for _, f := range schema.Fields() {
		if f.Name == dateName || strings.HasPrefix(f.Name, "__") || !isNumeric(f.Type) {
			continue
		}
		currencies = append(currencies, f.Name)
	}

	table := entity.NewRateTable(currencies)

	tr := array.NewTableReader(tbl, recordChunk)
	defer tr.Release()

	for tr.Next() {
		rec := tr.Record()
		dates := column(rec, dateName)
		for i := 0; i < int(rec.NumRows()); i++ {
			ts, ok := timeAt(dates, i)
			if !ok {
				continue
			}
			day := civil.DateOf(ts.UTC())
			for _, cur := range currencies {
				// valor ausente equivale a não ter taxa na data
				if v := floatAt(column(rec, cur), i); !math.IsNaN(v) {
					table.Set(day, cur, v)
				}
			}
		}
	}
	return table, nil
}
