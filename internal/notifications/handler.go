package notifications

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/quizcomp/backend/pkg/response"
)

// Handler handles admin notification HTTP endpoints.
type Handler struct {
	repo *Repository
}

// NewHandler creates a notifications handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// List handles GET /admin/notifications. Newest first.
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context())
	if err != nil {
		response.Internal(c, "failed to load notifications")
		return
	}
	response.OK(c, list)
}

// MarkRead handles PATCH /admin/notifications/:id/read.
func (h *Handler) MarkRead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid notification id")
		return
	}
	if err := h.repo.MarkRead(c.Request.Context(), id); err != nil {
		response.Internal(c, "failed to mark notification read")
		return
	}
	response.OK(c, gin.H{"id": id, "is_read": true})
}

// UnreadCount handles GET /admin/notifications/unread-count.
func (h *Handler) UnreadCount(c *gin.Context) {
	count, err := h.repo.UnreadCount(c.Request.Context())
	if err != nil {
		response.Internal(c, "failed to count notifications")
		return
	}
	response.OK(c, gin.H{"unread": count})
}
