// Package nano holds nanosecond-resolution time and duration types used
// by the wire format.
package nano

import (
	"strconv"
	"time"
)

// Ts is a nanosecond timestamp since the Unix epoch.
type Ts int64

// Duration is a span of time in nanoseconds.
type Duration int64

const (
	Nanosecond  Duration = 1
	Microsecond          = 1000 * Nanosecond
	Millisecond          = 1000 * Microsecond
	Second               = 1000 * Millisecond
	Minute               = 60 * Second
	Hour                 = 60 * Minute
)

// Unix returns the Ts for the given seconds and nanoseconds since the epoch.
func Unix(sec, ns int64) Ts {
	return Ts(sec*int64(Second) + ns)
}

func TimeToTs(t time.Time) Ts {
	return Ts(t.UnixNano())
}

func (t Ts) Time() time.Time {
	return time.Unix(0, int64(t)).UTC()
}

// Millis returns t in milliseconds, rounding toward negative infinity.
// The sub-millisecond remainder is discarded.
func (t Ts) Millis() int64 {
	return FloorDiv(int64(t), int64(Millisecond))
}

func (t Ts) String() string {
	return strconv.FormatInt(int64(t), 10)
}

func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// FloorDiv returns floor(a/b) for b > 0.
func FloorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
