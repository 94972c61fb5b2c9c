package auto

import (
	"github.com/alecthomas/units"
)

// Bytes is a flag.Value holding a byte count written as "25MiB", "4GB",
// or a plain number of bytes.
type Bytes struct {
	Bytes int64
}

func NewBytes(n int64) Bytes {
	return Bytes{n}
}

func (b Bytes) String() string {
	return units.Base2Bytes(b.Bytes).String()
}

func (b *Bytes) Set(s string) error {
	n, err := units.ParseStrictBytes(s)
	if err != nil {
		return err
	}
	b.Bytes = n
	return nil
}
