package rowbatch

import "fmt"

// Row maps column name to value for one record.
type Row map[string]any

// ColumnSource provides the values of a batch one column at a time.
type ColumnSource interface {
	NumRows() int
	NumCols() int
	Values(col int) ([]any, error)
}

// Zip turns columnar sources into rows.  Column i of every source is
// stored in each row under names[i].  Rows keep source order and, within
// a source, row order.  Zip returns an empty, non-nil slice when there are
// no sources.
func Zip(names []string, sources ...ColumnSource) ([]Row, error) {
	rows := []Row{}
	for k, src := range sources {
		if src.NumCols() != len(names) {
			return nil, fmt.Errorf("batch %d: %w: relation has %d columns, batch has %d", k, ErrColumnCountMismatch, len(names), src.NumCols())
		}
		numRows := src.NumRows()
		if numRows < 0 {
			return nil, fmt.Errorf("batch %d: negative row count %d", k, numRows)
		}
		// Every column is checked against numRows before rows are allocated.
		cols := make([][]any, len(names))
		for i, name := range names {
			vals, err := src.Values(i)
			if err != nil {
				return nil, fmt.Errorf("batch %d: column %q: %w", k, name, err)
			}
			if len(vals) != numRows {
				return nil, fmt.Errorf("batch %d: %w", k, rowCountMismatch(name, len(vals), numRows))
			}
			cols[i] = vals
		}
		for j := 0; j < numRows; j++ {
			row := make(Row, len(names))
			for i, name := range names {
				row[name] = cols[i][j]
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// Assemble extracts every column of every batch and zips the values into
// rows keyed by the relation's column names.  The number of rows returned
// is the sum of the batches' row counts.
func Assemble(rel *Relation, batches []*Batch) ([]Row, error) {
	if len(batches) == 0 {
		return []Row{}, nil
	}
	sources := make([]ColumnSource, 0, len(batches))
	for _, b := range batches {
		sources = append(sources, &typedSource{rel, b})
	}
	return Zip(rel.Names(), sources...)
}

type typedSource struct {
	rel   *Relation
	batch *Batch
}

func (t *typedSource) NumRows() int { return t.batch.NumRows }
func (t *typedSource) NumCols() int { return len(t.batch.Cols) }

func (t *typedSource) Values(i int) ([]any, error) {
	return Extract(t.rel.Columns[i].Type, t.batch.Cols[i])
}
