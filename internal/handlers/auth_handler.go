package handlers

import (
	"log"
	"net/http"

	"go-supermart-pos/internal/auth"
	"go-supermart-pos/internal/models"

	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a user and hands back a session token so the new
// account is signed in immediately.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Validation failed: name, valid email, password and role are required")
		return
	}

	user, err := h.Users.Register(req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		fail(c, err)
		return
	}

	if err := h.Audit.Append(&models.AuditLog{
		UserID:    user.ID,
		Action:    models.AuditUserRegistered,
		TableName: "users",
		RecordID:  user.ID,
	}); err != nil {
		log.Println("audit append failed for registration:", err)
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusCreated, "User registered successfully", gin.H{
		"user":  user,
		"token": token,
	})
}

// Login verifies credentials, records the LOGIN audit entry, then
// issues a token. The audit write is part of the operation: if it
// cannot be persisted the login fails.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Validation failed: valid email and password are required")
		return
	}

	user, err := h.Users.Authenticate(req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	if err := h.Audit.Append(&models.AuditLog{
		UserID:    user.ID,
		Action:    models.AuditLogin,
		TableName: "users",
		RecordID:  user.ID,
	}); err != nil {
		fail(c, err)
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Login successful", gin.H{
		"user":  user,
		"token": token,
	})
}

// Logout only exists so the action lands in the audit trail; there is
// no server-side token to invalidate. The append is best-effort and
// never blocks the response.
func (h *Handler) Logout(c *gin.Context) {
	userID := c.GetUint("userID")
	if err := h.Audit.Append(&models.AuditLog{
		UserID: userID,
		Action: models.AuditLogout,
	}); err != nil {
		log.Println("audit append failed for logout:", err)
	}
	respond(c, http.StatusOK, "Logged out successfully", nil)
}
