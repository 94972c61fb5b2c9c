// Package raw models a query result as it arrives from the JSON (or YAML)
// rendering of the wire format, before any typing is applied.  Integer
// counts may arrive as decimal strings, and each column of a batch is a
// Cell holding exactly one populated type field.
package raw

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/brimdata/rowbatch"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

var (
	// ErrMalformedCell is returned when a cell has zero or several type
	// fields populated, or a field that names no known type.
	ErrMalformedCell = errors.New("malformed cell")
	// ErrInvalidValue is returned when a cell value cannot be converted
	// to the type named by its field.
	ErrInvalidValue = errors.New("invalid value")
)

type Result struct {
	Relation   Relation `json:"relation" yaml:"relation"`
	RowBatches []*Batch `json:"rowBatches,omitempty" yaml:"rowBatches,omitempty"`
}

type Relation struct {
	Columns []ColumnInfo `json:"columns" yaml:"columns"`
}

type ColumnInfo struct {
	ColumnName string     `json:"columnName" yaml:"columnName"`
	ColumnType ColumnType `json:"columnType" yaml:"columnType"`
	ColumnDesc string     `json:"columnDesc,omitempty" yaml:"columnDesc,omitempty"`
}

type Batch struct {
	NumRows Count   `json:"numRows" yaml:"numRows"`
	Cols    []*Cell `json:"cols" yaml:"cols"`
	Eow     bool    `json:"eow,omitempty" yaml:"eow,omitempty"`
	Eos     bool    `json:"eos,omitempty" yaml:"eos,omitempty"`
}

func (r *Relation) Names() []string {
	names := make([]string, 0, len(r.Columns))
	for _, c := range r.Columns {
		names = append(names, c.ColumnName)
	}
	return names
}

// DecodeJSON reads one result from r.  Numbers are kept as json.Number so
// that 64-bit integers survive intact.
func DecodeJSON(r io.Reader) (*Result, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var res Result
	if err := dec.Decode(&res); err != nil {
		return nil, err
	}
	return &res, nil
}

func UnmarshalJSON(b []byte) (*Result, error) {
	return DecodeJSON(bytes.NewReader(b))
}

func DecodeYAML(r io.Reader) (*Result, error) {
	var res Result
	if err := yaml.NewDecoder(r).Decode(&res); err != nil {
		if err == io.EOF {
			err = errors.New("empty YAML input")
		}
		return nil, err
	}
	return &res, nil
}

// Count is a non-negative integer that may be written as a number or as
// a decimal string, as the JSON mapping of 64-bit integers does.
type Count int

func ParseCount(s string) (Count, error) {
	n, err := strconv.ParseInt(s, 10, 0)
	if err != nil {
		return 0, fmt.Errorf("invalid count %q", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative count %d", n)
	}
	return Count(n), nil
}

func (c *Count) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		*c = 0
		return nil
	}
	if len(s) > 0 && s[0] == '"' {
		var err error
		if s, err = strconv.Unquote(s); err != nil {
			return fmt.Errorf("invalid count %s", b)
		}
	}
	n, err := ParseCount(s)
	if err != nil {
		return err
	}
	*c = n
	return nil
}

func (c Count) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(strconv.Itoa(int(c)))), nil
}

func (c *Count) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: count must be a scalar", n.Line)
	}
	v, err := ParseCount(n.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	*c = v
	return nil
}

// ColumnType is a column type tag written either by name ("INT64") or by
// its numeric enum value.  Unrecognized tags decode to TypeUnknown so that
// paths that never consult the type still work; typing such a result
// fails with rowbatch.ErrUnsupportedColumnType.
type ColumnType rowbatch.Type

func (t ColumnType) Type() rowbatch.Type {
	return rowbatch.Type(t)
}

func (t *ColumnType) set(s string) {
	typ, err := rowbatch.ParseType(s)
	if err != nil {
		typ = rowbatch.TypeUnknown
	}
	*t = ColumnType(typ)
}

func (t *ColumnType) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) > 0 && s[0] == '"' {
		var err error
		if s, err = strconv.Unquote(s); err != nil {
			return fmt.Errorf("invalid column type %s", b)
		}
	}
	t.set(s)
	return nil
}

func (t ColumnType) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(rowbatch.Type(t).String())), nil
}

func (t *ColumnType) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: column type must be a scalar", n.Line)
	}
	t.set(n.Value)
	return nil
}

func (t ColumnType) MarshalYAML() (interface{}, error) {
	return rowbatch.Type(t).String(), nil
}
