package rowbatch

import (
	"errors"
	"fmt"
)

type ColumnSchema struct {
	Name string
	Type Type
}

// Relation is the ordered column schema of a result.  Column i of every
// batch holds the data for Columns[i].
type Relation struct {
	Columns []ColumnSchema
}

func NewRelation(cols ...ColumnSchema) *Relation {
	return &Relation{Columns: cols}
}

func (r *Relation) Names() []string {
	names := make([]string, 0, len(r.Columns))
	for _, c := range r.Columns {
		names = append(names, c.Name)
	}
	return names
}

func (r *Relation) Validate() error {
	for i, c := range r.Columns {
		if c.Name == "" {
			return fmt.Errorf("column %d: empty name", i)
		}
		if !c.Type.Valid() {
			return fmt.Errorf("column %q: %w", c.Name, unsupported(c.Type))
		}
	}
	return nil
}

// Batch is a chunk of rows stored column by column.
type Batch struct {
	NumRows int
	Cols    []Column
}

// Validate checks that b is shaped by rel: one column per relation column,
// each of the declared type and each holding exactly NumRows values.
func (b *Batch) Validate(rel *Relation) error {
	if b.NumRows < 0 {
		return errors.New("negative row count")
	}
	if len(b.Cols) != len(rel.Columns) {
		return fmt.Errorf("%w: relation has %d columns, batch has %d", ErrColumnCountMismatch, len(rel.Columns), len(b.Cols))
	}
	for i, col := range b.Cols {
		name := rel.Columns[i].Name
		if col == nil {
			return fmt.Errorf("column %q: %w: unset", name, ErrUnsupportedColumnType)
		}
		if typ := rel.Columns[i].Type; col.Type() != typ {
			return fmt.Errorf("column %q: %w: declared %s, data is %s", name, ErrUnsupportedColumnType, typ, col.Type())
		}
		if n := col.Len(); n != b.NumRows {
			return rowCountMismatch(name, n, b.NumRows)
		}
	}
	return nil
}

func unsupported(t Type) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedColumnType, t)
}

func rowCountMismatch(name string, n, numRows int) error {
	return fmt.Errorf("%w: column %q has %d values, batch has %d rows", ErrRowCountMismatch, name, n, numRows)
}
