package registrations

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/quizcomp/backend/internal/apperr"
	"github.com/quizcomp/backend/internal/models"
	"github.com/quizcomp/backend/internal/notifications"
	"github.com/quizcomp/backend/pkg/response"
)

// RegisterRequest is the body for POST /register.
type RegisterRequest struct {
	FullName string `json:"full_name" binding:"required"`
}

// Handler handles participant registration HTTP endpoints.
type Handler struct {
	repo    *Repository
	emitter *notifications.Emitter
	logger  *zap.Logger
}

// NewHandler creates a registrations handler.
func NewHandler(repo *Repository, emitter *notifications.Emitter, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, emitter: emitter, logger: logger}
}

// Register handles POST /register. Issues a registration id the participant
// must keep for the quiz and for result lookup.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "full_name is required")
		return
	}
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		response.BadRequest(c, "full_name must not be empty")
		return
	}

	registrationID, err := NewRegistrationID()
	if err != nil {
		h.logger.Error("generate registration id failed", zap.Error(err))
		response.Internal(c, "failed to register")
		return
	}

	reg := &models.Registration{
		RegistrationID: registrationID,
		FullName:       fullName,
	}
	if err := h.repo.Create(c.Request.Context(), reg); err != nil {
		if apperr.IsCode(err, apperr.CodeAlreadyExists) {
			response.Conflict(c, "registration id collision, please retry")
			return
		}
		h.logger.Error("create registration failed", zap.Error(err))
		response.Unavailable(c, "failed to register")
		return
	}

	h.emitter.NewRegistration(c.Request.Context(), reg.FullName, reg.RegistrationID)

	response.Created(c, reg)
}
