package arrowio

import (
	"errors"
	"fmt"

	"github.com/apache/arrow/go/v11/arrow"
	"github.com/brimdata/rowbatch"
)

var (
	ErrMultipleTypes   = errors.New("arrowio: encountered multiple relations")
	ErrUnsupportedType = errors.New("arrowio: unsupported type")
)

// typeKey is the field metadata key holding the column type name.
const typeKey = "rowbatch.type"

// UINT128 columns are carried as a struct of two uint64 halves.
var uint128Fields = []arrow.Field{
	{Name: "high", Type: arrow.PrimitiveTypes.Uint64},
	{Name: "low", Type: arrow.PrimitiveTypes.Uint64},
}

func newDataType(t rowbatch.Type) (arrow.DataType, error) {
	switch t {
	case rowbatch.TypeBoolean:
		return arrow.FixedWidthTypes.Boolean, nil
	case rowbatch.TypeInt64:
		return arrow.PrimitiveTypes.Int64, nil
	case rowbatch.TypeUInt128:
		return arrow.StructOf(uint128Fields...), nil
	case rowbatch.TypeFloat64:
		return arrow.PrimitiveTypes.Float64, nil
	case rowbatch.TypeString:
		return arrow.BinaryTypes.String, nil
	case rowbatch.TypeTime64NS:
		return &arrow.TimestampType{Unit: arrow.Nanosecond, TimeZone: "UTC"}, nil
	case rowbatch.TypeDuration64NS:
		return arrow.FixedWidthTypes.Duration_ns, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, t)
}

// NewSchema returns the Arrow schema for rel.
func NewSchema(rel *rowbatch.Relation) (*arrow.Schema, error) {
	fields := make([]arrow.Field, 0, len(rel.Columns))
	for _, c := range rel.Columns {
		dt, err := newDataType(c.Type)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", c.Name, err)
		}
		fields = append(fields, arrow.Field{
			Name:     c.Name,
			Type:     dt,
			Metadata: arrow.NewMetadata([]string{typeKey}, []string{c.Type.String()}),
		})
	}
	return arrow.NewSchema(fields, nil), nil
}

func newRelation(schema *arrow.Schema) (*rowbatch.Relation, error) {
	rel := &rowbatch.Relation{}
	for _, f := range schema.Fields() {
		typ, err := columnType(f)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		rel.Columns = append(rel.Columns, rowbatch.ColumnSchema{Name: f.Name, Type: typ})
	}
	return rel, nil
}

func columnType(f arrow.Field) (rowbatch.Type, error) {
	switch dt := f.Type.(type) {
	case *arrow.BooleanType:
		return rowbatch.TypeBoolean, nil
	case *arrow.Int64Type:
		return rowbatch.TypeInt64, nil
	case *arrow.Float64Type:
		return rowbatch.TypeFloat64, nil
	case *arrow.StringType:
		return rowbatch.TypeString, nil
	case *arrow.TimestampType:
		if dt.Unit == arrow.Nanosecond {
			return rowbatch.TypeTime64NS, nil
		}
	case *arrow.DurationType:
		if dt.Unit == arrow.Nanosecond {
			return rowbatch.TypeDuration64NS, nil
		}
	case *arrow.StructType:
		if isUInt128(dt) {
			return rowbatch.TypeUInt128, nil
		}
	}
	return rowbatch.TypeUnknown, fmt.Errorf("%w: %s", ErrUnsupportedType, f.Type)
}

func isUInt128(dt *arrow.StructType) bool {
	fields := dt.Fields()
	if len(fields) != len(uint128Fields) {
		return false
	}
	for i, f := range fields {
		if f.Name != uint128Fields[i].Name || f.Type.ID() != arrow.UINT64 {
			return false
		}
	}
	return true
}
