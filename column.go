package rowbatch

import "github.com/brimdata/rowbatch/pkg/nano"

// Column is the data of one column of a batch.  The set of
// implementations is closed: it is exactly the seven *XColumn types below,
// one per Type.
type Column interface {
	Type() Type
	Len() int
	column()
}

type BoolColumn struct {
	Data []bool
}

type Int64Column struct {
	Data []int64
}

type UInt128Column struct {
	Data []UInt128
}

type Float64Column struct {
	Data []float64
}

type StringColumn struct {
	Data []string
}

type Time64NSColumn struct {
	Data []nano.Ts
}

type Duration64NSColumn struct {
	Data []nano.Duration
}

func (*BoolColumn) Type() Type         { return TypeBoolean }
func (*Int64Column) Type() Type        { return TypeInt64 }
func (*UInt128Column) Type() Type      { return TypeUInt128 }
func (*Float64Column) Type() Type      { return TypeFloat64 }
func (*StringColumn) Type() Type       { return TypeString }
func (*Time64NSColumn) Type() Type     { return TypeTime64NS }
func (*Duration64NSColumn) Type() Type { return TypeDuration64NS }

func (c *BoolColumn) Len() int         { return len(c.Data) }
func (c *Int64Column) Len() int        { return len(c.Data) }
func (c *UInt128Column) Len() int      { return len(c.Data) }
func (c *Float64Column) Len() int      { return len(c.Data) }
func (c *StringColumn) Len() int       { return len(c.Data) }
func (c *Time64NSColumn) Len() int     { return len(c.Data) }
func (c *Duration64NSColumn) Len() int { return len(c.Data) }

func (*BoolColumn) column()         {}
func (*Int64Column) column()        {}
func (*UInt128Column) column()      {}
func (*Float64Column) column()      {}
func (*StringColumn) column()       {}
func (*Time64NSColumn) column()     {}
func (*Duration64NSColumn) column() {}

// NewColumn returns an empty column of type t with room for n values.
func NewColumn(t Type, n int) (Column, error) {
	switch t {
	case TypeBoolean:
		return &BoolColumn{Data: make([]bool, 0, n)}, nil
	case TypeInt64:
		return &Int64Column{Data: make([]int64, 0, n)}, nil
	case TypeUInt128:
		return &UInt128Column{Data: make([]UInt128, 0, n)}, nil
	case TypeFloat64:
		return &Float64Column{Data: make([]float64, 0, n)}, nil
	case TypeString:
		return &StringColumn{Data: make([]string, 0, n)}, nil
	case TypeTime64NS:
		return &Time64NSColumn{Data: make([]nano.Ts, 0, n)}, nil
	case TypeDuration64NS:
		return &Duration64NSColumn{Data: make([]nano.Duration, 0, n)}, nil
	}
	return nil, unsupported(t)
}
