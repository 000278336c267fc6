package auth

import (
	"testing"

	"go-supermart-pos/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCapabilityTable(t *testing.T) {
	// Admin can do everything.
	for op := range permissions {
		assert.True(t, Allowed(models.RoleAdmin, op), "admin should be allowed %s", op)
	}

	// Managers run the catalog but cannot delete products or manage users.
	assert.True(t, Allowed(models.RoleManager, OpProductCreate))
	assert.True(t, Allowed(models.RoleManager, OpProductUpdate))
	assert.False(t, Allowed(models.RoleManager, OpProductDelete))
	assert.False(t, Allowed(models.RoleManager, OpUserManage))
	assert.False(t, Allowed(models.RoleManager, OpAuditRead))

	// Cashiers sell and look things up, nothing more.
	assert.True(t, Allowed(models.RoleCashier, OpSaleCreate))
	assert.True(t, Allowed(models.RoleCashier, OpProductRead))
	assert.True(t, Allowed(models.RoleCashier, OpDashboardRead))
	assert.False(t, Allowed(models.RoleCashier, OpProductCreate))
	assert.False(t, Allowed(models.RoleCashier, OpProductDelete))
	assert.False(t, Allowed(models.RoleCashier, OpAuditRead))
	assert.False(t, Allowed(models.RoleCashier, OpAIAsk))
}

func TestUnknownRoleAndOperationDenied(t *testing.T) {
	assert.False(t, Allowed("superuser", OpProductRead))
	assert.False(t, Allowed("", OpSaleCreate))
	assert.False(t, Allowed(models.RoleAdmin, Operation("missile:launch")))
}
