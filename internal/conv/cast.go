package conv

import (
	"fmt"
	"math"
)

// Int64ToInt converts int64 to int safely.
func Int64ToInt(v int64) (int, error) {
	if v < 0 {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to int (negative)", v)
	}
	// On 32-bit systems, int64 can exceed int max; on 64-bit, this is always false
	if v > int64(math.MaxInt) {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to int (too large)", v)
	}
	return int(v), nil
}

// Int64ToUintptr converts int64 to uintptr safely.
func Int64ToUintptr(v int64) (uintptr, error) {
	if v < 0 {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to uintptr (negative)", v)
	}
	if uint64(v) > uint64(^uintptr(0)) {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to uintptr (too large)", v)
	}
	return uintptr(v), nil
}
