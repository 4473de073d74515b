package window

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidCount is reported when a storage count is negative or not a
// finite integer.
var ErrInvalidCount = errors.New("window: invalid storage count")

// Range is an inclusive window of logical rows.
type Range struct {
	Start int
	End   int
}

// Valid reports whether the range can be rendered.
func (r Range) Valid() bool {
	return r.Start >= 0 && r.End >= 0 && r.Start <= r.End
}

// Len returns the number of rows covered by the range, or 0 if it is invalid.
func (r Range) Len() int {
	if !r.Valid() {
		return 0
	}
	return r.End - r.Start + 1
}

// Contains reports whether row lies within the range.
func (r Range) Contains(row int) bool {
	return r.Valid() && row >= r.Start && row <= r.End
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d]", r.Start, r.End)
}

// StorageInfo describes the backing store.
type StorageInfo struct {
	// Total number of logical rows available.
	Count int
}

// Validate returns ErrInvalidCount if the count cannot be applied.
func (s StorageInfo) Validate() error {
	if s.Count < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCount, s.Count)
	}
	return nil
}

// StorageInfoFromFloat converts a count received from a loosely typed source
// (JSON, a scripting bridge) into a StorageInfo. NaN, infinities, negative and
// fractional values are rejected.
func StorageInfoFromFloat(count float64) (StorageInfo, error) {
	if math.IsNaN(count) || math.IsInf(count, 0) || count < 0 || count != math.Trunc(count) || count >= float64(math.MaxInt) {
		return StorageInfo{}, fmt.Errorf("%w: %v", ErrInvalidCount, count)
	}
	return StorageInfo{Count: int(count)}, nil
}

// Row is an opaque row payload supplied by the bridge.
type Row any

// RowsPacket is the answer to a range query.
type RowsPacket struct {
	Range Range
	Rows  []Row
}

// Slot is one entry of the rendered frame. Pending slots are placeholders for
// rows that have not been delivered yet; only their Index is meaningful.
type Slot struct {
	Index   int
	Row     Row
	Pending bool
}
