package auth

import "go-supermart-pos/internal/models"

// Operation names every role-gated action in the system.
type Operation string

const (
	OpProductRead   Operation = "product:read"
	OpProductCreate Operation = "product:create"
	OpProductUpdate Operation = "product:update"
	OpProductDelete Operation = "product:delete"
	OpSaleCreate    Operation = "sale:create"
	OpSaleRead      Operation = "sale:read"
	OpDashboardRead Operation = "dashboard:read"
	OpAuditRead     Operation = "audit:read"
	OpUserManage    Operation = "user:manage"
	OpAIAsk         Operation = "ai:ask"
)

// permissions is the single place access rules live. One lookup per
// request replaces role-string conditionals scattered across handlers.
var permissions = map[Operation][]string{
	OpProductRead:   {models.RoleAdmin, models.RoleManager, models.RoleCashier},
	OpProductCreate: {models.RoleAdmin, models.RoleManager},
	OpProductUpdate: {models.RoleAdmin, models.RoleManager},
	OpProductDelete: {models.RoleAdmin},
	OpSaleCreate:    {models.RoleAdmin, models.RoleManager, models.RoleCashier},
	OpSaleRead:      {models.RoleAdmin, models.RoleManager, models.RoleCashier},
	OpDashboardRead: {models.RoleAdmin, models.RoleManager, models.RoleCashier},
	OpAuditRead:     {models.RoleAdmin},
	OpUserManage:    {models.RoleAdmin},
	OpAIAsk:         {models.RoleAdmin},
}

// Allowed reports whether role may perform op. Unknown operations and
// unknown roles are denied.
func Allowed(role string, op Operation) bool {
	for _, r := range permissions[op] {
		if r == role {
			return true
		}
	}
	return false
}
