package jsonio

import (
	"github.com/brimdata/rowbatch"
	"github.com/brimdata/rowbatch/raw"
)

// Rows returns the rows of res with values exactly as decoded: no type
// dispatch and no unit conversion is applied, so time columns stay in
// nanoseconds.  A result with no batches yields an empty slice.
func Rows(res *raw.Result) ([]rowbatch.Row, error) {
	if res == nil || len(res.RowBatches) == 0 {
		return []rowbatch.Row{}, nil
	}
	return rowbatch.Zip(res.Relation.Names(), raw.Sources(res)...)
}
