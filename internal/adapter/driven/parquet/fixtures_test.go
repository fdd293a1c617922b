package parquet

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/apache/arrow/go/v15/arrow"
	"github.com/apache/arrow/go/v15/arrow/array"
	"github.com/apache/arrow/go/v15/arrow/memory"
	"github.com/apache/arrow/go/v15/parquet"
	"github.com/apache/arrow/go/v15/parquet/pqarrow"
	"github.com/stretchr/testify/require"

	"github.com/diillson/fraud-dashboard-go/internal/domain/entity"
)

var activityType = arrow.StructOf(
	arrow.Field{Name: "num_transactions", Type: arrow.PrimitiveTypes.Float64, Nullable: true},
	arrow.Field{Name: "total_amount", Type: arrow.PrimitiveTypes.Float64, Nullable: true},
	arrow.Field{Name: "unique_merchants", Type: arrow.PrimitiveTypes.Float64, Nullable: true},
	arrow.Field{Name: "unique_countries", Type: arrow.PrimitiveTypes.Float64, Nullable: true},
	arrow.Field{Name: "max_single_amount", Type: arrow.PrimitiveTypes.Float64, Nullable: true},
)

var transactionSchema = arrow.NewSchema([]arrow.Field{
	{Name: "timestamp", Type: &arrow.TimestampType{Unit: arrow.Microsecond, TimeZone: "UTC"}},
	{Name: "amount", Type: arrow.PrimitiveTypes.Float64},
	{Name: "currency", Type: arrow.BinaryTypes.String},
	{Name: "country", Type: arrow.BinaryTypes.String},
	{Name: "city", Type: arrow.BinaryTypes.String},
	{Name: "vendor_category", Type: arrow.BinaryTypes.String},
	{Name: "channel", Type: arrow.BinaryTypes.String},
	{Name: "customer_id", Type: arrow.BinaryTypes.String},
	{Name: "is_weekend", Type: arrow.FixedWidthTypes.Boolean, Nullable: true},
	{Name: "is_fraud", Type: arrow.FixedWidthTypes.Boolean},
	{Name: "last_hour_activity", Type: activityType, Nullable: true},
}, nil)

type fixtureRow struct {
	ts       time.Time
	amount   float64
	currency string
	country  string
	weekend  *bool
	fraud    bool
	activity *entity.LastHourActivity
}

func boolPtr(v bool) *bool { return &v }

func fixtureRows(n int) []fixtureRow {
	base := time.Date(2024, time.September, 30, 10, 0, 0, 0, time.UTC)
	rows := make([]fixtureRow, n)
	for i := range rows {
		rows[i] = fixtureRow{
			ts:       base.Add(time.Duration(i)*time.Hour + 250*time.Millisecond),
			amount:   float64(100 + i),
			currency: "EUR",
			country:  "Germany",
			weekend:  boolPtr(i%2 == 0),
			fraud:    i%3 == 0,
			activity: &entity.LastHourActivity{
				NumTransactions: float64(i),
				TotalAmount:     float64(10 * i),
				UniqueMerchants: 1,
				UniqueCountries: 1,
				MaxSingleAmount: float64(i),
			},
		}
	}
	return rows
}

func writeTable(t *testing.T, path string, tbl arrow.Table, rowsPerGroup int64) {
	t.Helper()

	var buf bytes.Buffer
	err := pqarrow.WriteTable(tbl, &buf, rowsPerGroup, parquet.NewWriterProperties(), pqarrow.DefaultWriterProps())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func writeTransactions(t *testing.T, rows []fixtureRow, rowsPerGroup int64) string {
	t.Helper()

	b := array.NewRecordBuilder(memory.DefaultAllocator, transactionSchema)
	defer b.Release()

	for _, r := range rows {
		b.Field(0).(*array.TimestampBuilder).Append(arrow.Timestamp(r.ts.UnixMicro()))
		b.Field(1).(*array.Float64Builder).Append(r.amount)
		b.Field(2).(*array.StringBuilder).Append(r.currency)
		b.Field(3).(*array.StringBuilder).Append(r.country)
		b.Field(4).(*array.StringBuilder).Append("Berlin")
		b.Field(5).(*array.StringBuilder).Append("Retail")
		b.Field(6).(*array.StringBuilder).Append("web")
		b.Field(7).(*array.StringBuilder).Append("CUST_1")
		if r.weekend == nil {
			b.Field(8).AppendNull()
		} else {
			b.Field(8).(*array.BooleanBuilder).Append(*r.weekend)
		}
		b.Field(9).(*array.BooleanBuilder).Append(r.fraud)

		sb := b.Field(10).(*array.StructBuilder)
		if r.activity == nil {
			sb.AppendNull()
			continue
		}
		sb.Append(true)
		for j, v := range r.activity.Values() {
			sb.FieldBuilder(j).(*array.Float64Builder).Append(v)
		}
	}

	rec := b.NewRecord()
	defer rec.Release()
	tbl := array.NewTableFromRecords(transactionSchema, []arrow.Record{rec})
	defer tbl.Release()

	path := filepath.Join(t.TempDir(), "transactions.parquet")
	writeTable(t, path, tbl, rowsPerGroup)
	return path
}

type rateRow struct {
	day time.Time
	eur float64
	gbp *float64
}

func writeRates(t *testing.T, rows []rateRow) string {
	t.Helper()

	schema := arrow.NewSchema([]arrow.Field{
		{Name: "date", Type: arrow.FixedWidthTypes.Date32},
		{Name: "EUR", Type: arrow.PrimitiveTypes.Float64},
		{Name: "GBP", Type: arrow.PrimitiveTypes.Float64, Nullable: true},
		{Name: "source", Type: arrow.BinaryTypes.String},
	}, nil)

	b := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer b.Release()

	for _, r := range rows {
		b.Field(0).(*array.Date32Builder).Append(arrow.Date32FromTime(r.day))
		b.Field(1).(*array.Float64Builder).Append(r.eur)
		if r.gbp == nil {
			b.Field(2).AppendNull()
		} else {
			b.Field(2).(*array.Float64Builder).Append(*r.gbp)
		}
		b.Field(3).(*array.StringBuilder).Append("ecb")
	}

	rec := b.NewRecord()
	defer rec.Release()
	tbl := array.NewTableFromRecords(schema, []arrow.Record{rec})
	defer tbl.Release()

	path := filepath.Join(t.TempDir(), "rates.parquet")
	writeTable(t, path, tbl, 1024)
	return path
}
