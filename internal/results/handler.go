package results

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/quizcomp/backend/internal/apperr"
	"github.com/quizcomp/backend/internal/registrations"
	"github.com/quizcomp/backend/pkg/response"
)

// CheckRequest is the body for POST /results/check: the credential issued at
// registration, both fields matched exactly.
type CheckRequest struct {
	FullName       string `json:"full_name" binding:"required"`
	RegistrationID string `json:"registration_id" binding:"required"`
}

// ResultView is the disclosed result.
type ResultView struct {
	FullName       string    `json:"full_name"`
	RegistrationID string    `json:"registration_id"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	SubmittedAt    time.Time `json:"submitted_at"`
	Status         string    `json:"status"`
}

// PendingView tells the participant when to come back.
type PendingView struct {
	Status           string    `json:"status"`
	ResultsVisibleAt time.Time `json:"results_visible_at"`
}

// Handler handles result lookup HTTP endpoints.
type Handler struct {
	repo    *Repository
	regRepo *registrations.Repository
	logger  *zap.Logger
}

// NewHandler creates a results handler.
func NewHandler(repo *Repository, regRepo *registrations.Repository, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, regRepo: regRepo, logger: logger}
}

// Check handles POST /results/check.
//
// Verifies the credential, lazily flips any elapsed pending submissions to
// available (a side-effecting read, global across participants), then gates
// the most recent matching submission on its disclosure time.
func (h *Handler) Check(c *gin.Context) {
	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "full_name and registration_id are required")
		return
	}
	fullName := strings.TrimSpace(req.FullName)
	registrationID := strings.TrimSpace(req.RegistrationID)

	if _, err := h.regRepo.GetByCredential(c.Request.Context(), registrationID, fullName); err != nil {
		if apperr.IsCode(err, apperr.CodeNotFound) {
			response.NotFound(c, "invalid name or registration id")
			return
		}
		h.logger.Error("registration lookup failed", zap.Error(err))
		response.Unavailable(c, "failed to check results")
		return
	}

	if err := h.repo.RefreshStatuses(c.Request.Context()); err != nil {
		// Best-effort: the gate below decides from timestamps anyway.
		h.logger.Warn("refresh result statuses failed", zap.Error(err))
	}

	sub, err := h.repo.GetLatest(c.Request.Context(), registrationID, fullName)
	if err != nil {
		if apperr.IsCode(err, apperr.CodeNotFound) {
			response.NotFound(c, "no quiz submission found, please complete the quiz first")
			return
		}
		h.logger.Error("submission lookup failed", zap.Error(err))
		response.Unavailable(c, "failed to check results")
		return
	}

	if Disclose(sub, time.Now()) == OutcomePending {
		response.OK(c, PendingView{
			Status:           sub.Status,
			ResultsVisibleAt: sub.ResultsVisibleAt,
		})
		return
	}

	response.OK(c, ResultView{
		FullName:       sub.FullName,
		RegistrationID: sub.RegistrationID,
		Score:          sub.Score,
		TotalQuestions: sub.TotalQuestions,
		SubmittedAt:    sub.SubmittedAt,
		Status:         sub.Status,
	})
}
