package handlers

import (
	"net/http"
	"strconv"

	"go-supermart-pos/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetAuditLogs serves the audit trail newest first, filterable by
// actor, action and date range.
func (h *Handler) GetAuditLogs(c *gin.Context) {
	filter := repository.AuditFilter{
		Action: c.Query("action"),
		Limit:  queryInt(c, "limit", 100),
	}

	if s := c.Query("user_id"); s != "" {
		id, err := strconv.Atoi(s)
		if err != nil {
			badRequest(c, "user_id must be numeric")
			return
		}
		filter.UserID = uint(id)
	}
	if s := c.Query("start_date"); s != "" {
		start, err := parseDate(s)
		if err != nil {
			badRequest(c, "start_date must be YYYY-MM-DD")
			return
		}
		filter.Start = start
	}
	if s := c.Query("end_date"); s != "" {
		end, err := parseDate(s)
		if err != nil {
			badRequest(c, "end_date must be YYYY-MM-DD")
			return
		}
		filter.End = repository.EndOfDay(end)
	}

	entries, err := h.Audit.Query(filter)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Audit logs retrieved", entries)
}
