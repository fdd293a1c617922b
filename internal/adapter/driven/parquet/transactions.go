package parquet

import (
	"context"
	"fmt"

	"github.com/apache/arrow/go/v15/arrow"
	"github.com/apache/arrow/go/v15/arrow/array"
	"github.com/apache/arrow/go/v15/parquet/file"
	"github.com/apache/arrow/go/v15/parquet/pqarrow"

	"github.com/diillson/fraud-dashboard-go/internal/adapter/driven/storage"
	"github.com/diillson/fraud-dashboard-go/internal/domain/entity"
)

const recordChunk = 64 * 1024

// transactionFile implementa repository.TransactionFile sobre um arquivo parquet.
type transactionFile struct {
	obj storage.Object
	rdr *file.Reader
	fr  *pqarrow.FileReader
}

func (f *transactionFile) NumRowGroups() int {
	return f.rdr.NumRowGroups()
}

func (f *transactionFile) NumRows() int64 {
	return f.rdr.NumRows()
}

// ReadRowGroups lê os row groups indicados; os registros seguem a ordem recebida.
func (f *transactionFile) ReadRowGroups(ctx context.Context, groups []int) ([]entity.RawTransaction, error) {
	n := f.rdr.NumRowGroups()
	for _, g := range groups {
		if g < 0 || g >= n {
			return nil, fmt.Errorf("row group %d out of range [0, %d)", g, n)
		}
	}

	tbl, err := f.fr.ReadRowGroups(ctx, f.columnIndices(), groups)
	if err != nil {
		return nil, fmt.Errorf("error reading row groups: %w", err)
	}
	defer tbl.Release()

	return decodeTransactions(tbl)
}

func (f *transactionFile) ReadAll(ctx context.Context) ([]entity.RawTransaction, error) {
	tbl, err := f.fr.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("error reading table: %w", err)
	}
	defer tbl.Release()

	return decodeTransactions(tbl)
}

func (f *transactionFile) Close() error {
	return f.obj.Close()
}

func (f *transactionFile) columnIndices() []int {
	idx := make([]int, f.rdr.MetaData().Schema.NumColumns())
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// transactionColumns guarda as colunas de um lote; colunas ausentes ficam nil.
type transactionColumns struct {
	timestamp, amount, currency                            arrow.Array
	country, city, citySize                                arrow.Array
	vendor, vendorCategory, vendorType                     arrow.Array
	channel, device, cardType, customerID                  arrow.Array
	cardPresent, outsideHome, highRisk, weekend, fraudFlag arrow.Array
	activity                                               arrow.Array
}

func columnsOf(rec arrow.Record) transactionColumns {
	return transactionColumns{
		timestamp:      column(rec, "timestamp"),
		amount:         column(rec, "amount"),
		currency:       column(rec, "currency"),
		country:        column(rec, "country"),
		city:           column(rec, "city"),
		citySize:       column(rec, "city_size"),
		vendor:         column(rec, "vendor"),
		vendorCategory: column(rec, "vendor_category"),
		vendorType:     column(rec, "vendor_type"),
		channel:        column(rec, "channel"),
		device:         column(rec, "device"),
		cardType:       column(rec, "card_type"),
		customerID:     column(rec, "customer_id"),
		cardPresent:    column(rec, "is_card_present"),
		outsideHome:    column(rec, "is_outside_home_country"),
		highRisk:       column(rec, "is_high_risk_vendor"),
		weekend:        column(rec, "is_weekend"),
		fraudFlag:      column(rec, "is_fraud"),
		activity:       column(rec, "last_hour_activity"),
	}
}

func decodeTransactions(tbl arrow.Table) ([]entity.RawTransaction, error) {
	if len(tbl.Schema().FieldIndices("timestamp")) == 0 {
		return nil, fmt.Errorf("transactions file has no timestamp column")
	}

	out := make([]entity.RawTransaction, 0, tbl.NumRows())

	tr := array.NewTableReader(tbl, recordChunk)
	defer tr.Release()

	for tr.Next() {
		rec := tr.Record()
		cols := columnsOf(rec)
		for i := 0; i < int(rec.NumRows()); i++ {
			ts, ok := timeAt(cols.timestamp, i)
			if !ok {
				return nil, fmt.Errorf("row %d: missing or malformed timestamp %q", len(out), stringAt(cols.timestamp, i))
			}
			out = append(out, entity.RawTransaction{
				Timestamp:            ts,
				Amount:               floatAt(cols.amount, i),
				Currency:             stringAt(cols.currency, i),
				Country:              stringAt(cols.country, i),
				City:                 stringAt(cols.city, i),
				CitySize:             stringAt(cols.citySize, i),
				Vendor:               stringAt(cols.vendor, i),
				VendorCategory:       stringAt(cols.vendorCategory, i),
				VendorType:           stringAt(cols.vendorType, i),
				Channel:              stringAt(cols.channel, i),
				Device:               stringAt(cols.device, i),
				CardType:             stringAt(cols.cardType, i),
				CustomerID:           stringAt(cols.customerID, i),
				IsCardPresent:        boolAt(cols.cardPresent, i),
				IsOutsideHomeCountry: boolAt(cols.outsideHome, i),
				IsHighRiskVendor:     boolAt(cols.highRisk, i),
				IsWeekend:            optionalBoolAt(cols.weekend, i),
				IsFraud:              boolAt(cols.fraudFlag, i),
				LastHourActivity:     activityAt(cols.activity, i),
			})
		}
	}
	return out, nil
}

// activityAt achata o struct last_hour_activity. Um valor nulo ou que não é struct retorna nil,
// e o pré-processamento aplica os valores ausentes.
func activityAt(arr arrow.Array, i int) *entity.LastHourActivity {
	if arr == nil || arr.IsNull(i) {
		return nil
	}
	st, ok := arr.(*array.Struct)
	if !ok {
		return nil
	}
	typ := st.DataType().(*arrow.StructType)

	field := func(name string) float64 {
		j, ok := typ.FieldIdx(name)
		if !ok {
			return floatAt(nil, i)
		}
		return floatAt(st.Field(j), i)
	}

	return &entity.LastHourActivity{
		NumTransactions: field("num_transactions"),
		TotalAmount:     field("total_amount"),
		UniqueMerchants: field("unique_merchants"),
		UniqueCountries: field("unique_countries"),
		MaxSingleAmount: field("max_single_amount"),
	}
}
