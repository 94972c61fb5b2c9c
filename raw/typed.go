package raw

import (
	"fmt"
	"math"
	"strconv"

	"github.com/brimdata/rowbatch"
	"github.com/brimdata/rowbatch/pkg/nano"
	"github.com/goccy/go-json"
)

// Typed converts r into a typed relation and batches.  Each batch is
// validated against the relation.
func (r *Result) Typed() (*rowbatch.Relation, []*rowbatch.Batch, error) {
	rel := &rowbatch.Relation{Columns: make([]rowbatch.ColumnSchema, 0, len(r.Relation.Columns))}
	for _, c := range r.Relation.Columns {
		rel.Columns = append(rel.Columns, rowbatch.ColumnSchema{
			Name: c.ColumnName,
			Type: c.ColumnType.Type(),
		})
	}
	if err := rel.Validate(); err != nil {
		return nil, nil, err
	}
	batches := make([]*rowbatch.Batch, 0, len(r.RowBatches))
	for k, b := range r.RowBatches {
		if b == nil {
			continue
		}
		batch, err := b.typed(rel)
		if err != nil {
			return nil, nil, fmt.Errorf("batch %d: %w", k, err)
		}
		batches = append(batches, batch)
	}
	return rel, batches, nil
}

func (b *Batch) typed(rel *rowbatch.Relation) (*rowbatch.Batch, error) {
	batch := &rowbatch.Batch{
		NumRows: int(b.NumRows),
		Cols:    make([]rowbatch.Column, 0, len(b.Cols)),
	}
	for i, cell := range b.Cols {
		name := strconv.Itoa(i)
		if i < len(rel.Columns) {
			name = rel.Columns[i].Name
		}
		tag, data, err := cell.Field()
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		col, err := newColumn(tag.Type(), data)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		batch.Cols = append(batch.Cols, col)
	}
	if err := batch.Validate(rel); err != nil {
		return nil, err
	}
	return batch, nil
}

func newColumn(typ rowbatch.Type, data []any) (rowbatch.Column, error) {
	col, err := rowbatch.NewColumn(typ, len(data))
	if err != nil {
		return nil, err
	}
	for j, v := range data {
		if err := appendValue(col, v); err != nil {
			return nil, fmt.Errorf("%w: row %d: %s", ErrInvalidValue, j, err)
		}
	}
	return col, nil
}

func appendValue(col rowbatch.Column, v any) error {
	switch col := col.(type) {
	case *rowbatch.BoolColumn:
		b, err := toBool(v)
		if err != nil {
			return err
		}
		col.Data = append(col.Data, b)
	case *rowbatch.Int64Column:
		n, err := toInt64(v)
		if err != nil {
			return err
		}
		col.Data = append(col.Data, n)
	case *rowbatch.UInt128Column:
		u, err := ParseUInt128(v)
		if err != nil {
			return err
		}
		col.Data = append(col.Data, u)
	case *rowbatch.Float64Column:
		f, err := toFloat64(v)
		if err != nil {
			return err
		}
		col.Data = append(col.Data, f)
	case *rowbatch.StringColumn:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", v)
		}
		col.Data = append(col.Data, s)
	case *rowbatch.Time64NSColumn:
		n, err := toInt64(v)
		if err != nil {
			return err
		}
		col.Data = append(col.Data, nano.Ts(n))
	case *rowbatch.Duration64NSColumn:
		n, err := toInt64(v)
		if err != nil {
			return err
		}
		col.Data = append(col.Data, nano.Duration(n))
	default:
		return fmt.Errorf("unknown column %T", col)
	}
	return nil
}

func toBool(v any) (bool, error) {
	switch v := v.(type) {
	case bool:
		return v, nil
	case string:
		return strconv.ParseBool(v)
	}
	return false, fmt.Errorf("expected bool, got %T", v)
}

func toInt64(v any) (int64, error) {
	switch v := v.(type) {
	case json.Number:
		return strconv.ParseInt(v.String(), 10, 64)
	case string:
		return strconv.ParseInt(v, 10, 64)
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case uint64:
		if v > math.MaxInt64 {
			return 0, fmt.Errorf("%d overflows int64", v)
		}
		return int64(v), nil
	case float64:
		if v != math.Trunc(v) || v < math.MinInt64 || v >= math.MaxInt64 {
			return 0, fmt.Errorf("%v is not an int64", v)
		}
		return int64(v), nil
	}
	return 0, fmt.Errorf("expected integer, got %T", v)
}

func toUint64(v any) (uint64, error) {
	switch v := v.(type) {
	case nil:
		return 0, nil
	case json.Number:
		return strconv.ParseUint(v.String(), 10, 64)
	case string:
		return strconv.ParseUint(v, 10, 64)
	case int:
		if v < 0 {
			return 0, fmt.Errorf("%d is negative", v)
		}
		return uint64(v), nil
	case int64:
		if v < 0 {
			return 0, fmt.Errorf("%d is negative", v)
		}
		return uint64(v), nil
	case uint64:
		return v, nil
	case float64:
		if v != math.Trunc(v) || v < 0 || v >= math.MaxUint64 {
			return 0, fmt.Errorf("%v is not a uint64", v)
		}
		return uint64(v), nil
	}
	return 0, fmt.Errorf("expected unsigned integer, got %T", v)
}

// ParseUInt128 converts a decoded {"high": h, "low": l} object.  Either
// half may be missing, as zero-valued fields are omitted from the JSON
// mapping.
func ParseUInt128(v any) (rowbatch.UInt128, error) {
	switch v := v.(type) {
	case rowbatch.UInt128:
		return v, nil
	case map[string]any:
		for k := range v {
			if k != "high" && k != "low" {
				return rowbatch.UInt128{}, fmt.Errorf("unexpected field %q in uint128", k)
			}
		}
		high, err := toUint64(v["high"])
		if err != nil {
			return rowbatch.UInt128{}, fmt.Errorf("high: %w", err)
		}
		low, err := toUint64(v["low"])
		if err != nil {
			return rowbatch.UInt128{}, fmt.Errorf("low: %w", err)
		}
		return rowbatch.UInt128{High: high, Low: low}, nil
	}
	return rowbatch.UInt128{}, fmt.Errorf("expected {high, low} object, got %T", v)
}

func toFloat64(v any) (float64, error) {
	switch v := v.(type) {
	case json.Number:
		return v.Float64()
	case string:
		switch v {
		case "NaN":
			return math.NaN(), nil
		case "Infinity":
			return math.Inf(1), nil
		case "-Infinity":
			return math.Inf(-1), nil
		}
		return strconv.ParseFloat(v, 64)
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	}
	return 0, fmt.Errorf("expected number, got %T", v)
}

// FromTyped returns the raw form of a typed relation and batches.  Values
// are carried as native Go values (bool, int64, rowbatch.UInt128, float64,
// string) with times and durations left in nanoseconds.
func FromTyped(rel *rowbatch.Relation, batches []*rowbatch.Batch) (*Result, error) {
	res := &Result{}
	for _, c := range rel.Columns {
		res.Relation.Columns = append(res.Relation.Columns, ColumnInfo{
			ColumnName: c.Name,
			ColumnType: ColumnType(c.Type),
		})
	}
	for _, b := range batches {
		batch := &Batch{NumRows: Count(b.NumRows)}
		for _, col := range b.Cols {
			cell, err := newCell(col)
			if err != nil {
				return nil, err
			}
			batch.Cols = append(batch.Cols, cell)
		}
		res.RowBatches = append(res.RowBatches, batch)
	}
	return res, nil
}

func newCell(col rowbatch.Column) (*Cell, error) {
	if col == nil {
		return nil, fmt.Errorf("%w: unset", rowbatch.ErrUnsupportedColumnType)
	}
	tag, ok := TagOf(col.Type())
	if !ok {
		return nil, fmt.Errorf("%w: %s", rowbatch.ErrUnsupportedColumnType, col.Type())
	}
	data := make([]any, 0, col.Len())
	switch col := col.(type) {
	case *rowbatch.BoolColumn:
		for _, v := range col.Data {
			data = append(data, v)
		}
	case *rowbatch.Int64Column:
		for _, v := range col.Data {
			data = append(data, v)
		}
	case *rowbatch.UInt128Column:
		for _, v := range col.Data {
			data = append(data, v)
		}
	case *rowbatch.Float64Column:
		for _, v := range col.Data {
			data = append(data, v)
		}
	case *rowbatch.StringColumn:
		for _, v := range col.Data {
			data = append(data, v)
		}
	case *rowbatch.Time64NSColumn:
		for _, v := range col.Data {
			data = append(data, int64(v))
		}
	case *rowbatch.Duration64NSColumn:
		for _, v := range col.Data {
			data = append(data, int64(v))
		}
	}
	return NewCell(tag, data), nil
}

// Sources returns one column source per batch of r for use with
// rowbatch.Zip.  Values are passed through as decoded, with no type
// conversion.
func Sources(r *Result) []rowbatch.ColumnSource {
	sources := make([]rowbatch.ColumnSource, 0, len(r.RowBatches))
	for _, b := range r.RowBatches {
		if b != nil {
			sources = append(sources, &source{b})
		}
	}
	return sources
}

type source struct {
	batch *Batch
}

func (s *source) NumRows() int { return int(s.batch.NumRows) }
func (s *source) NumCols() int { return len(s.batch.Cols) }

func (s *source) Values(i int) ([]any, error) {
	_, data, err := s.batch.Cols[i].Field()
	return data, err
}
