// Package rowbatch implements the typed model of a columnar query result:
// a Relation describing each column's name and type, and Batches holding
// the column data.  Extract converts one column to host values, and
// Assemble zips the columns of every batch into row objects.
package rowbatch

import (
	"fmt"
	"strconv"
	"strings"
)

// Type is the column type tag of the wire format.  The numeric values
// match the wire enum so that numeric tags decode directly.
type Type uint8

const (
	TypeUnknown Type = iota
	TypeBoolean
	TypeInt64
	TypeUInt128
	TypeFloat64
	TypeString
	TypeTime64NS
	TypeDuration64NS
)

var typeNames = [...]string{
	TypeUnknown:      "DATA_TYPE_UNKNOWN",
	TypeBoolean:      "BOOLEAN",
	TypeInt64:        "INT64",
	TypeUInt128:      "UINT128",
	TypeFloat64:      "FLOAT64",
	TypeString:       "STRING",
	TypeTime64NS:     "TIME64NS",
	TypeDuration64NS: "DURATION64NS",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "DATA_TYPE(" + strconv.Itoa(int(t)) + ")"
}

// Valid reports whether t is one of the seven known column types.
func (t Type) Valid() bool {
	return t > TypeUnknown && int(t) < len(typeNames)
}

// ParseType returns the Type named by s.  Names are matched without regard
// to case, and an underscore before the unit suffix is allowed, so
// "TIME64NS", "TIME64_NS", and "time64ns" are the same type.  A decimal
// string is taken as the numeric wire tag.
func ParseType(s string) (Type, error) {
	if n, err := strconv.ParseUint(s, 10, 8); err == nil {
		t := Type(n)
		if !t.Valid() {
			return TypeUnknown, fmt.Errorf("%w: %s", ErrUnsupportedColumnType, t)
		}
		return t, nil
	}
	name := strings.ToUpper(s)
	name = strings.Replace(name, "64_NS", "64NS", 1)
	for i, n := range typeNames {
		if i > 0 && n == name {
			return Type(i), nil
		}
	}
	return TypeUnknown, fmt.Errorf("%w: %q", ErrUnsupportedColumnType, s)
}
