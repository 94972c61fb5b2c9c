package parquetio

import (
	"errors"
	"fmt"

	"github.com/brimdata/rowbatch"
	"github.com/fraugster/parquet-go/parquet"
	"github.com/fraugster/parquet-go/parquetschema"
)

var ErrEmptyRelation = errors.New("empty relation unsupported")

var (
	repetitionRequired = parquet.FieldRepetitionTypePtr(parquet.FieldRepetitionType_REQUIRED)

	convertedUTF8            = parquet.ConvertedTypePtr(parquet.ConvertedType_UTF8)
	convertedInt64           = parquet.ConvertedTypePtr(parquet.ConvertedType_INT_64)
	convertedTimestampMillis = parquet.ConvertedTypePtr(parquet.ConvertedType_TIMESTAMP_MILLIS)

	logicalString          = &parquet.LogicalType{STRING: &parquet.StringType{}}
	logicalInt64           = &parquet.LogicalType{INTEGER: &parquet.IntType{BitWidth: 64, IsSigned: true}}
	logicalTimestampMillis = &parquet.LogicalType{TIMESTAMP: &parquet.TimestampType{
		IsAdjustedToUTC: true,
		Unit:            &parquet.TimeUnit{MILLIS: &parquet.MilliSeconds{}},
	}}
)

func newSchemaDefinition(rel *rowbatch.Relation) (*parquetschema.SchemaDefinition, error) {
	if len(rel.Columns) == 0 {
		return nil, ErrEmptyRelation
	}
	var children []*parquetschema.ColumnDefinition
	for _, c := range rel.Columns {
		def, err := newColumnDefinition(c.Name, c.Type)
		if err != nil {
			return nil, err
		}
		children = append(children, def)
	}
	s := &parquetschema.SchemaDefinition{
		RootColumn: &parquetschema.ColumnDefinition{
			Children: children,
			SchemaElement: &parquet.SchemaElement{
				Name: "rowbatch",
			},
		},
	}
	return s, s.ValidateStrict()
}

func newColumnDefinition(name string, typ rowbatch.Type) (*parquetschema.ColumnDefinition, error) {
	switch typ {
	case rowbatch.TypeBoolean:
		return newPrimitiveColumnDefinition(name, parquet.Type_BOOLEAN, nil, nil), nil
	case rowbatch.TypeInt64, rowbatch.TypeDuration64NS:
		return newPrimitiveColumnDefinition(name, parquet.Type_INT64, convertedInt64, logicalInt64), nil
	case rowbatch.TypeFloat64:
		return newPrimitiveColumnDefinition(name, parquet.Type_DOUBLE, nil, nil), nil
	case rowbatch.TypeString, rowbatch.TypeUInt128:
		return newPrimitiveColumnDefinition(name, parquet.Type_BYTE_ARRAY, convertedUTF8, logicalString), nil
	case rowbatch.TypeTime64NS:
		return newPrimitiveColumnDefinition(name, parquet.Type_INT64, convertedTimestampMillis, logicalTimestampMillis), nil
	}
	return nil, fmt.Errorf("column %q: %w: %s", name, rowbatch.ErrUnsupportedColumnType, typ)
}

func newPrimitiveColumnDefinition(name string, t parquet.Type, c *parquet.ConvertedType, l *parquet.LogicalType) *parquetschema.ColumnDefinition {
	return &parquetschema.ColumnDefinition{
		SchemaElement: &parquet.SchemaElement{
			Type:           parquet.TypePtr(t),
			RepetitionType: repetitionRequired,
			Name:           name,
			ConvertedType:  c,
			LogicalType:    l,
		},
	}
}
