package quiz

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/quizcomp/backend/internal/apperr"
	"github.com/quizcomp/backend/internal/notifications"
	"github.com/quizcomp/backend/internal/registrations"
	"github.com/quizcomp/backend/pkg/response"
)

// StartRequest is the body for POST /quiz/start: the credential issued at
// registration, re-presented by the client.
type StartRequest struct {
	FullName       string `json:"full_name" binding:"required"`
	RegistrationID string `json:"registration_id" binding:"required"`
}

// AnswerRequest is the body for POST /quiz/session/:rid/answer.
type AnswerRequest struct {
	QuestionID string `json:"question_id" binding:"required"`
	Option     string `json:"option" binding:"required"`
}

// questionView is the participant-facing question shape (no correct option).
type questionView struct {
	ID         string   `json:"id"`
	Prompt     string   `json:"prompt"`
	Options    []string `json:"options"`
	OrderIndex int      `json:"order_index"`
}

// stateView is the participant-facing session snapshot.
type stateView struct {
	RegistrationID string        `json:"registration_id"`
	CurrentIndex   int           `json:"current_index"`
	TotalQuestions int           `json:"total_questions"`
	AnsweredCount  int           `json:"answered_count"`
	Question       *questionView `json:"question,omitempty"`
}

// Handler handles quiz session HTTP endpoints.
type Handler struct {
	repo        *Repository
	regRepo     *registrations.Repository
	store       *Store
	emitter     *notifications.Emitter
	resultDelay time.Duration
	logger      *zap.Logger
}

// NewHandler creates a quiz handler.
func NewHandler(repo *Repository, regRepo *registrations.Repository, store *Store, emitter *notifications.Emitter, resultDelay time.Duration, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		repo:        repo,
		regRepo:     regRepo,
		store:       store,
		emitter:     emitter,
		resultDelay: resultDelay,
		logger:      logger,
	}
}

// Start handles POST /quiz/start. Verifies the registration credential, loads
// the question set and opens a session. Restarting replaces any previous
// in-progress session for the same registration.
func (h *Handler) Start(c *gin.Context) {
	var req StartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "full_name and registration_id are required")
		return
	}

	reg, err := h.regRepo.GetByCredential(c.Request.Context(),
		strings.TrimSpace(req.RegistrationID), strings.TrimSpace(req.FullName))
	if err != nil {
		if apperr.IsCode(err, apperr.CodeNotFound) {
			response.NotFound(c, "invalid name or registration id")
			return
		}
		h.logger.Error("registration lookup failed", zap.Error(err))
		response.Unavailable(c, "failed to start quiz")
		return
	}

	questions, err := h.repo.ListQuestions(c.Request.Context())
	if err != nil {
		h.logger.Error("load questions failed", zap.Error(err))
		response.Unavailable(c, "failed to load questions")
		return
	}

	s := NewSession(reg.RegistrationID, reg.FullName, questions)
	if err := h.store.Save(c.Request.Context(), s); err != nil {
		h.logger.Error("save session failed", zap.Error(err))
		response.Unavailable(c, "failed to start quiz")
		return
	}

	response.Created(c, viewOf(s))
}

// Get handles GET /quiz/session/:rid.
func (h *Handler) Get(c *gin.Context) {
	s, ok := h.loadSession(c)
	if !ok {
		return
	}
	response.OK(c, viewOf(s))
}

// Answer handles POST /quiz/session/:rid/answer. Records or overwrites the
// answer for a question in the session.
func (h *Handler) Answer(c *gin.Context) {
	s, ok := h.loadSession(c)
	if !ok {
		return
	}

	var req AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "question_id and option are required")
		return
	}

	if err := s.SelectAnswer(req.QuestionID, req.Option); err != nil {
		switch {
		case errors.Is(err, ErrUnknownQuestion):
			response.NotFound(c, err.Error())
		case errors.Is(err, ErrInvalidOption):
			response.BadRequest(c, err.Error())
		default:
			response.Internal(c, "failed to record answer")
		}
		return
	}

	if !h.saveSession(c, s) {
		return
	}
	response.OK(c, viewOf(s))
}

// Next handles POST /quiz/session/:rid/next.
func (h *Handler) Next(c *gin.Context) {
	s, ok := h.loadSession(c)
	if !ok {
		return
	}
	s.Advance()
	if !h.saveSession(c, s) {
		return
	}
	response.OK(c, viewOf(s))
}

// Previous handles POST /quiz/session/:rid/previous.
func (h *Handler) Previous(c *gin.Context) {
	s, ok := h.loadSession(c)
	if !ok {
		return
	}
	s.Retreat()
	if !h.saveSession(c, s) {
		return
	}
	response.OK(c, viewOf(s))
}

// Submit handles POST /quiz/session/:rid/submit. Scores the attempt, persists
// the submission and discards the session. The score stays hidden until the
// result delay elapses.
func (h *Handler) Submit(c *gin.Context) {
	s, ok := h.loadSession(c)
	if !ok {
		return
	}

	sub, err := s.Submit(time.Now(), h.resultDelay)
	if err != nil {
		var incomplete *IncompleteAnswersError
		if errors.As(err, &incomplete) {
			response.BadRequest(c, fmt.Sprintf("please answer all questions: %d question(s) remaining", incomplete.Missing))
			return
		}
		response.Internal(c, "failed to submit quiz")
		return
	}

	if err := h.repo.CreateSubmission(c.Request.Context(), sub); err != nil {
		// Session is kept so the participant can retry the submit.
		h.logger.Error("create submission failed", zap.Error(err), zap.String("registration_id", s.RegistrationID))
		response.Unavailable(c, "failed to submit quiz")
		return
	}

	if err := h.store.Delete(c.Request.Context(), s.RegistrationID); err != nil {
		h.logger.Warn("delete session failed", zap.Error(err), zap.String("registration_id", s.RegistrationID))
	}

	h.emitter.QuizSubmitted(c.Request.Context(), sub.FullName, sub.RegistrationID, sub.Score, sub.TotalQuestions)

	response.Created(c, gin.H{
		"registration_id":    sub.RegistrationID,
		"total_questions":    sub.TotalQuestions,
		"submitted_at":       sub.SubmittedAt,
		"results_visible_at": sub.ResultsVisibleAt,
		"status":             sub.Status,
	})
}

func (h *Handler) loadSession(c *gin.Context) (*Session, bool) {
	rid := c.Param("rid")
	s, err := h.store.Get(c.Request.Context(), rid)
	if err != nil {
		if apperr.IsCode(err, apperr.CodeNotFound) {
			response.NotFound(c, "no active quiz session, start the quiz first")
		} else {
			h.logger.Error("load session failed", zap.Error(err), zap.String("registration_id", rid))
			response.Unavailable(c, "failed to load quiz session")
		}
		return nil, false
	}
	return s, true
}

func (h *Handler) saveSession(c *gin.Context, s *Session) bool {
	if err := h.store.Save(c.Request.Context(), s); err != nil {
		h.logger.Error("save session failed", zap.Error(err), zap.String("registration_id", s.RegistrationID))
		response.Unavailable(c, "failed to save quiz session")
		return false
	}
	return true
}

func viewOf(s *Session) stateView {
	v := stateView{
		RegistrationID: s.RegistrationID,
		CurrentIndex:   s.CurrentIndex,
		TotalQuestions: len(s.Questions),
		AnsweredCount:  len(s.Answers),
	}
	if q, ok := s.Current(); ok {
		v.Question = &questionView{
			ID:         q.ID,
			Prompt:     q.Prompt,
			Options:    q.Options,
			OrderIndex: q.OrderIndex,
		}
	}
	return v
}
