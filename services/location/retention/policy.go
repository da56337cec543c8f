// Package retention decides how many of the oldest records a trim evicts.
package retention

// DefaultCap is the number of records kept when no cap is configured
const DefaultCap = 100

// ExcessCount returns how many of the oldest records must be evicted so that
// at most cap of total records remain. A negative cap is treated as zero.
func ExcessCount(total, cap int64) int64 {
	if cap < 0 {
		cap = 0
	}
	if total <= cap {
		return 0
	}
	return total - cap
}
