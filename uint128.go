package rowbatch

import (
	"math/bits"
	"strconv"
	"strings"
)

// UInt128 is an unsigned 128-bit integer carried as two 64-bit halves.
// Its value is High*2^64 + Low.
type UInt128 struct {
	High uint64 `json:"high"`
	Low  uint64 `json:"low"`
}

// 10^19 is the largest power of ten that fits in a uint64.
const chunk = 10_000_000_000_000_000_000

// String returns the exact decimal representation of u.
func (u UInt128) String() string {
	if u.High == 0 {
		return strconv.FormatUint(u.Low, 10)
	}
	// Peel off base-10^19 digits, least significant first.
	var digits []uint64
	hi, lo := u.High, u.Low
	for hi != 0 {
		var r uint64
		hi, r = hi/chunk, hi%chunk
		lo, r = bits.Div64(r, lo, chunk)
		digits = append(digits, r)
	}
	var b strings.Builder
	b.WriteString(strconv.FormatUint(lo, 10))
	for i := len(digits) - 1; i >= 0; i-- {
		s := strconv.FormatUint(digits[i], 10)
		b.WriteString(strings.Repeat("0", 19-len(s)))
		b.WriteString(s)
	}
	return b.String()
}
