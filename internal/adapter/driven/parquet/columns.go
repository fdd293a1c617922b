package parquet

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/apache/arrow/go/v15/arrow"
	"github.com/apache/arrow/go/v15/arrow/array"
)

// timeLayouts aceita ISO com e sem offset; sem offset o horário é UTC.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// column retorna a coluna do registro pelo nome, ou nil se ela não existir.
func column(rec arrow.Record, name string) arrow.Array {
	idx := rec.Schema().FieldIndices(name)
	if len(idx) == 0 {
		return nil
	}
	return rec.Column(idx[0])
}

func stringAt(arr arrow.Array, i int) string {
	if arr == nil || arr.IsNull(i) {
		return ""
	}
	switch a := arr.(type) {
	case *array.String:
		return a.Value(i)
	case *array.LargeString:
		return a.Value(i)
	case *array.Binary:
		return string(a.Value(i))
	case *array.Dictionary:
		return stringAt(a.Dictionary(), a.GetValueIndex(i))
	default:
		return arr.ValueStr(i)
	}
}

// floatAt lê um valor numérico. Nulos e tipos não numéricos viram NaN.
func floatAt(arr arrow.Array, i int) float64 {
	if arr == nil || arr.IsNull(i) {
		return math.NaN()
	}
	switch a := arr.(type) {
	case *array.Float64:
		return a.Value(i)
	case *array.Float32:
		return float64(a.Value(i))
	case *array.Int64:
		return float64(a.Value(i))
	case *array.Int32:
		return float64(a.Value(i))
	case *array.Int16:
		return float64(a.Value(i))
	case *array.Int8:
		return float64(a.Value(i))
	case *array.Uint64:
		return float64(a.Value(i))
	case *array.Uint32:
		return float64(a.Value(i))
	case *array.Uint16:
		return float64(a.Value(i))
	case *array.Uint8:
		return float64(a.Value(i))
	case *array.String:
		return parseFloat(a.Value(i))
	case *array.LargeString:
		return parseFloat(a.Value(i))
	default:
		return math.NaN()
	}
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func boolAt(arr arrow.Array, i int) bool {
	if arr == nil || arr.IsNull(i) {
		return false
	}
	switch a := arr.(type) {
	case *array.Boolean:
		return a.Value(i)
	case *array.String, *array.LargeString, *array.Dictionary:
		v, _ := strconv.ParseBool(strings.TrimSpace(stringAt(arr, i)))
		return v
	default:
		v := floatAt(arr, i)
		return !math.IsNaN(v) && v != 0
	}
}

// optionalBoolAt distingue um valor ausente de false.
func optionalBoolAt(arr arrow.Array, i int) *bool {
	if arr == nil || arr.IsNull(i) {
		return nil
	}
	v := boolAt(arr, i)
	return &v
}

// timeAt lê timestamps, datas ou strings ISO.
func timeAt(arr arrow.Array, i int) (time.Time, bool) {
	if arr == nil || arr.IsNull(i) {
		return time.Time{}, false
	}
	switch a := arr.(type) {
	case *array.Timestamp:
		unit := a.DataType().(*arrow.TimestampType).Unit
		return a.Value(i).ToTime(unit), true
	case *array.Date32:
		return a.Value(i).ToTime(), true
	case *array.Date64:
		return a.Value(i).ToTime(), true
	case *array.String, *array.LargeString, *array.Dictionary:
		s := strings.TrimSpace(stringAt(arr, i))
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

func isNumeric(dt arrow.DataType) bool {
	switch dt.ID() {
	case arrow.FLOAT64, arrow.FLOAT32,
		arrow.INT64, arrow.INT32, arrow.INT16, arrow.INT8,
		arrow.UINT64, arrow.UINT32, arrow.UINT16, arrow.UINT8:
		return true
	default:
		return false
	}
}
