package admin

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/quizcomp/backend/internal/apperr"
	"github.com/quizcomp/backend/internal/models"
	"github.com/quizcomp/backend/internal/quiz"
	"github.com/quizcomp/backend/internal/registrations"
	"github.com/quizcomp/backend/internal/results"
	"github.com/quizcomp/backend/pkg/response"
)

// Handler handles the admin dashboard HTTP endpoints: submissions review,
// participant listing and question authoring.
type Handler struct {
	subRepo  *results.Repository
	regRepo  *registrations.Repository
	quizRepo *quiz.Repository
	logger   *zap.Logger
}

// NewHandler creates an admin handler.
func NewHandler(subRepo *results.Repository, regRepo *registrations.Repository, quizRepo *quiz.Repository, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{subRepo: subRepo, regRepo: regRepo, quizRepo: quizRepo, logger: logger}
}

// ListSubmissions handles GET /admin/submissions. Newest first.
func (h *Handler) ListSubmissions(c *gin.Context) {
	list, err := h.subRepo.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list submissions failed", zap.Error(err))
		response.Internal(c, "failed to load submissions")
		return
	}
	response.OK(c, list)
}

// DeleteSubmission handles DELETE /admin/submissions/:id. Removes exactly one
// submission; the participant's registration and notifications stay.
func (h *Handler) DeleteSubmission(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid submission id")
		return
	}
	if err := h.subRepo.Delete(c.Request.Context(), id); err != nil {
		if apperr.IsCode(err, apperr.CodeNotFound) {
			response.NotFound(c, "submission not found")
			return
		}
		h.logger.Error("delete submission failed", zap.Error(err), zap.String("submission_id", id.String()))
		response.Internal(c, "failed to delete submission")
		return
	}
	response.NoContent(c)
}

// ListRegistrations handles GET /admin/registrations.
func (h *Handler) ListRegistrations(c *gin.Context) {
	list, err := h.regRepo.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list registrations failed", zap.Error(err))
		response.Internal(c, "failed to load registrations")
		return
	}
	response.OK(c, list)
}

// CreateQuestionRequest is the body for POST /admin/questions.
type CreateQuestionRequest struct {
	Prompt        string   `json:"prompt" binding:"required"`
	Options       []string `json:"options" binding:"required,min=2"`
	CorrectOption string   `json:"correct_option" binding:"required"`
	OrderIndex    int      `json:"order_index"`
}

// CreateQuestion handles POST /admin/questions. The correct option must be one
// of the listed options.
func (h *Handler) CreateQuestion(c *gin.Context) {
	var req CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	valid := false
	for _, o := range req.Options {
		if strings.TrimSpace(o) == "" {
			response.BadRequest(c, "options must not be empty")
			return
		}
		if o == req.CorrectOption {
			valid = true
		}
	}
	if !valid {
		response.BadRequest(c, "correct_option must be one of the options")
		return
	}

	q := &models.Question{
		Prompt:        req.Prompt,
		Options:       req.Options,
		CorrectOption: req.CorrectOption,
		OrderIndex:    req.OrderIndex,
	}
	if err := h.quizRepo.CreateQuestion(c.Request.Context(), q); err != nil {
		h.logger.Error("create question failed", zap.Error(err))
		response.Internal(c, "failed to create question")
		return
	}
	response.Created(c, q)
}

// ListQuestions handles GET /admin/questions. Includes the correct option for
// the authoring view.
func (h *Handler) ListQuestions(c *gin.Context) {
	list, err := h.quizRepo.ListQuestions(c.Request.Context())
	if err != nil {
		h.logger.Error("list questions failed", zap.Error(err))
		response.Internal(c, "failed to load questions")
		return
	}
	// The model hides correct_option from participants; the authoring view
	// needs it back.
	type adminQuestion struct {
		models.Question
		CorrectOption string `json:"correct_option"`
	}
	out := make([]adminQuestion, 0, len(list))
	for _, q := range list {
		out = append(out, adminQuestion{Question: q, CorrectOption: q.CorrectOption})
	}
	response.OK(c, out)
}
