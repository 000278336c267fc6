package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsLowStock(t *testing.T) {
	assert.True(t, IsLowStock(0, 5))
	assert.True(t, IsLowStock(4, 5))
	assert.True(t, IsLowStock(5, 5), "boundary stock == minStock counts as low")
	assert.False(t, IsLowStock(6, 5))
}

func TestIsExpiringSoon(t *testing.T) {
	now := time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC)

	assert.False(t, IsExpiringSoon(now.AddDate(0, 0, -1), now), "expired yesterday is not expiring soon")
	assert.True(t, IsExpiringSoon(now.Add(6*time.Hour), now), "later today counts")
	assert.True(t, IsExpiringSoon(now.AddDate(0, 0, 1), now))
	assert.True(t, IsExpiringSoon(now.AddDate(0, 0, 7), now), "exactly 7 days out counts")
	assert.False(t, IsExpiringSoon(now.AddDate(0, 0, 8), now))
	assert.False(t, IsExpiringSoon(now.AddDate(0, 0, -30), now))
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysUntil(now.Add(6*time.Hour), now))
	assert.Equal(t, 1, DaysUntil(now.Add(25*time.Hour), now))
	assert.Equal(t, -1, DaysUntil(now.AddDate(0, 0, -1), now))
	assert.Equal(t, 7, DaysUntil(now.AddDate(0, 0, 7), now))
}

func TestValidPaymentMethod(t *testing.T) {
	for _, m := range []string{PaymentCash, PaymentCard, PaymentMomo, PaymentAirtelMoney, PaymentDebt} {
		assert.True(t, ValidPaymentMethod(m), m)
	}
	assert.False(t, ValidPaymentMethod("bitcoin"))
	assert.False(t, ValidPaymentMethod(""))
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleAdmin))
	assert.True(t, ValidRole(RoleManager))
	assert.True(t, ValidRole(RoleCashier))
	assert.False(t, ValidRole("superuser"))
}
