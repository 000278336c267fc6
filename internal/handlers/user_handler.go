package handlers

import (
	"net/http"
	"strconv"

	"go-supermart-pos/internal/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetUsers(c *gin.Context) {
	users, err := h.Users.List()
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Users retrieved", users)
}

// DeactivateUser soft-disables an account. There is no delete: past
// sales and audit entries keep a valid actor reference.
func (h *Handler) DeactivateUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid user ID")
		return
	}

	if err := h.Users.Deactivate(uint(id)); err != nil {
		fail(c, err)
		return
	}

	_ = h.Audit.Append(&models.AuditLog{
		UserID:    c.GetUint("userID"),
		Action:    models.AuditUserDeactivated,
		TableName: "users",
		RecordID:  uint(id),
	})
	respond(c, http.StatusOK, "User deactivated", nil)
}
