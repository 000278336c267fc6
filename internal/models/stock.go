package models

import (
	"math"
	"time"
)

// ExpiryWindowDays is how far ahead the expiring-soon check looks.
const ExpiryWindowDays = 7

// IsLowStock reports whether stock has fallen to or below the configured
// minimum. The boundary stock == minStock counts as low.
func IsLowStock(stock, minStock int) bool {
	return stock <= minStock
}

// IsExpiringSoon reports whether the expiry date falls within the next
// 7 days, inclusive on both ends. A date already in the past is not
// "expiring soon" - it is expired.
func IsExpiringSoon(expiry, now time.Time) bool {
	days := DaysUntil(expiry, now)
	return days >= 0 && days <= ExpiryWindowDays
}

// DaysUntil returns the number of days from now until t, rounded up.
// A time later today counts as 0 days away, tomorrow as 1.
func DaysUntil(t, now time.Time) int {
	return int(math.Ceil(t.Sub(now).Hours() / 24))
}
