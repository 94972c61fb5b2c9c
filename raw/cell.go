package raw

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/brimdata/rowbatch"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Tag is the name of a cell's type field.
type Tag string

const (
	TagBoolean      Tag = "booleanData"
	TagInt64        Tag = "int64Data"
	TagUInt128      Tag = "uint128Data"
	TagFloat64      Tag = "float64Data"
	TagString       Tag = "stringData"
	TagTime64NS     Tag = "time64nsData"
	TagDuration64NS Tag = "duration64nsData"
)

var tagTypes = map[Tag]rowbatch.Type{
	TagBoolean:      rowbatch.TypeBoolean,
	TagInt64:        rowbatch.TypeInt64,
	TagUInt128:      rowbatch.TypeUInt128,
	TagFloat64:      rowbatch.TypeFloat64,
	TagString:       rowbatch.TypeString,
	TagTime64NS:     rowbatch.TypeTime64NS,
	TagDuration64NS: rowbatch.TypeDuration64NS,
}

// Type returns the column type named by t, or TypeUnknown.
func (t Tag) Type() rowbatch.Type {
	return tagTypes[t]
}

// TagOf returns the field name that carries columns of type t.
func TagOf(t rowbatch.Type) (Tag, bool) {
	for tag, typ := range tagTypes {
		if typ == t {
			return tag, true
		}
	}
	return "", false
}

// Cell is one column of a raw batch.  A well-formed cell has exactly one
// populated field, named by a Tag, whose data list holds the column's
// values.  Cells decoded from input remember every field present so that
// Field can reject malformed ones.
type Cell struct {
	fields  map[Tag][]any
	unknown []string
}

func NewCell(tag Tag, data []any) *Cell {
	return &Cell{fields: map[Tag][]any{tag: data}}
}

// Field returns the tag and data of the single populated field of c.
func (c *Cell) Field() (Tag, []any, error) {
	if c == nil {
		return "", nil, fmt.Errorf("%w: null cell", ErrMalformedCell)
	}
	if len(c.unknown) > 0 {
		return "", nil, fmt.Errorf("%w: unknown field %q", ErrMalformedCell, c.unknown[0])
	}
	switch len(c.fields) {
	case 0:
		return "", nil, fmt.Errorf("%w: no type field", ErrMalformedCell)
	case 1:
		for tag, data := range c.fields {
			return tag, data, nil
		}
	}
	tags := make([]string, 0, len(c.fields))
	for tag := range c.fields {
		tags = append(tags, string(tag))
	}
	sort.Strings(tags)
	return "", nil, fmt.Errorf("%w: multiple type fields (%s)", ErrMalformedCell, strings.Join(tags, ", "))
}

// known records key as present and reports whether it names a type field.
func (c *Cell) known(key string) bool {
	tag := Tag(key)
	if _, ok := tagTypes[tag]; !ok {
		c.unknown = append(c.unknown, key)
		return false
	}
	c.fields[tag] = nil
	return true
}

func (c *Cell) reset() {
	c.fields = map[Tag][]any{}
	c.unknown = nil
}

func (c *Cell) UnmarshalJSON(b []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	c.reset()
	for key, v := range m {
		if !c.known(key) {
			continue
		}
		var list struct {
			Data []any `json:"data"`
		}
		dec := json.NewDecoder(bytes.NewReader(v))
		dec.UseNumber()
		if err := dec.Decode(&list); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		c.fields[Tag(key)] = list.Data
	}
	sort.Strings(c.unknown)
	return nil
}

func (c *Cell) MarshalJSON() ([]byte, error) {
	out := make(map[string]map[string][]any, len(c.fields))
	for tag, data := range c.fields {
		if data == nil {
			data = []any{}
		}
		out[string(tag)] = map[string][]any{"data": data}
	}
	return json.Marshal(out)
}

func (c *Cell) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: cell must be a mapping", n.Line)
	}
	c.reset()
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		if !c.known(key) {
			continue
		}
		var list struct {
			Data []any `yaml:"data"`
		}
		if err := n.Content[i+1].Decode(&list); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		c.fields[Tag(key)] = list.Data
	}
	sort.Strings(c.unknown)
	return nil
}
