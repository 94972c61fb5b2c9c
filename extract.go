package rowbatch

import "fmt"

// Extract returns the values of col in host form:
//
//	BOOLEAN       bool
//	INT64         int64
//	UINT128       string, the exact decimal value
//	FLOAT64       float64
//	STRING        string
//	TIME64NS      int64 milliseconds, floor(ns / 1e6)
//	DURATION64NS  int64 nanoseconds
//
// It fails with ErrUnsupportedColumnType if col is nil or if typ does not
// name the type of col.  No partial result is returned on error.
func Extract(typ Type, col Column) ([]any, error) {
	if col == nil {
		return nil, fmt.Errorf("%w: unset", ErrUnsupportedColumnType)
	}
	if col.Type() != typ {
		if !typ.Valid() {
			return nil, unsupported(typ)
		}
		return nil, fmt.Errorf("%w: %s column holds %s data", ErrUnsupportedColumnType, typ, col.Type())
	}
	vals := make([]any, 0, col.Len())
	switch col := col.(type) {
	case *BoolColumn:
		for _, v := range col.Data {
			vals = append(vals, v)
		}
	case *Int64Column:
		for _, v := range col.Data {
			vals = append(vals, v)
		}
	case *UInt128Column:
		for _, v := range col.Data {
			vals = append(vals, v.String())
		}
	case *Float64Column:
		for _, v := range col.Data {
			vals = append(vals, v)
		}
	case *StringColumn:
		for _, v := range col.Data {
			vals = append(vals, v)
		}
	case *Time64NSColumn:
		for _, v := range col.Data {
			vals = append(vals, v.Millis())
		}
	case *Duration64NSColumn:
		for _, v := range col.Data {
			vals = append(vals, int64(v))
		}
	default:
		return nil, unsupported(col.Type())
	}
	return vals, nil
}
