package quiz

import (
	"fmt"
	"time"

	"github.com/quizcomp/backend/internal/models"
)

// SessionQuestion is the per-session copy of a question, including the correct
// option. It lives only in the session store and is never serialized to
// participants as-is.
type SessionQuestion struct {
	ID            string   `json:"id"`
	Prompt        string   `json:"prompt"`
	Options       []string `json:"options"`
	CorrectOption string   `json:"correct_option"`
	OrderIndex    int      `json:"order_index"`
}

// Session is one participant's in-progress quiz attempt: the ordered question
// set, the current position, and the draft answers. It is loaded, mutated and
// stored per request and discarded on submission.
type Session struct {
	RegistrationID string            `json:"registration_id"`
	FullName       string            `json:"full_name"`
	Questions      []SessionQuestion `json:"questions"`
	CurrentIndex   int               `json:"current_index"`
	Answers        map[string]string `json:"answers"`
	StartedAt      time.Time         `json:"started_at"`
}

// IncompleteAnswersError is returned by Submit when not every question has an
// answer.
type IncompleteAnswersError struct {
	Missing int
}

func (e *IncompleteAnswersError) Error() string {
	return fmt.Sprintf("please answer all questions: %d question(s) remaining", e.Missing)
}

// ErrUnknownQuestion is returned when an answer targets a question outside the
// session's question set.
var ErrUnknownQuestion = fmt.Errorf("question does not belong to this quiz")

// ErrInvalidOption is returned when the selected option is not one of the
// question's options.
var ErrInvalidOption = fmt.Errorf("selected option is not among the question's options")

// NewSession starts a session over the given questions, which must already be
// ordered by order_index. An empty question set is a valid terminal state.
func NewSession(registrationID, fullName string, questions []models.Question) *Session {
	qs := make([]SessionQuestion, 0, len(questions))
	for _, q := range questions {
		qs = append(qs, SessionQuestion{
			ID:            q.ID.String(),
			Prompt:        q.Prompt,
			Options:       q.Options,
			CorrectOption: q.CorrectOption,
			OrderIndex:    q.OrderIndex,
		})
	}
	return &Session{
		RegistrationID: registrationID,
		FullName:       fullName,
		Questions:      qs,
		CurrentIndex:   0,
		Answers:        make(map[string]string),
		StartedAt:      time.Now(),
	}
}

// Current returns the question at the current index, or false if the session
// has no questions.
func (s *Session) Current() (SessionQuestion, bool) {
	if len(s.Questions) == 0 {
		return SessionQuestion{}, false
	}
	return s.Questions[s.CurrentIndex], true
}

// SelectAnswer records or overwrites the answer for a question. The question
// must belong to the session and the option must be one of its options.
func (s *Session) SelectAnswer(questionID, option string) error {
	var q *SessionQuestion
	for i := range s.Questions {
		if s.Questions[i].ID == questionID {
			q = &s.Questions[i]
			break
		}
	}
	if q == nil {
		return ErrUnknownQuestion
	}
	valid := false
	for _, o := range q.Options {
		if o == option {
			valid = true
			break
		}
	}
	if !valid {
		return ErrInvalidOption
	}
	if s.Answers == nil {
		s.Answers = make(map[string]string)
	}
	s.Answers[questionID] = option
	return nil
}

// Advance moves to the next question, clamped at the last one. A no-op at the
// boundary, not an error.
func (s *Session) Advance() {
	if s.CurrentIndex < len(s.Questions)-1 {
		s.CurrentIndex++
	}
}

// Retreat moves to the previous question, clamped at the first one.
func (s *Session) Retreat() {
	if s.CurrentIndex > 0 {
		s.CurrentIndex--
	}
}

// Unanswered returns how many questions have no recorded answer.
func (s *Session) Unanswered() int {
	missing := 0
	for _, q := range s.Questions {
		if _, ok := s.Answers[q.ID]; !ok {
			missing++
		}
	}
	return missing
}

// Submit finalizes the attempt: every question must be answered. The score is
// the count of answers exactly equal to the question's correct option
// (case-sensitive, no partial credit), computed here once and never again.
// Results become visible after the given delay.
func (s *Session) Submit(now time.Time, resultDelay time.Duration) (*models.Submission, error) {
	if missing := s.Unanswered(); missing > 0 {
		return nil, &IncompleteAnswersError{Missing: missing}
	}

	score := 0
	for _, q := range s.Questions {
		if s.Answers[q.ID] == q.CorrectOption {
			score++
		}
	}

	answers := make(map[string]string, len(s.Answers))
	for k, v := range s.Answers {
		answers[k] = v
	}

	return &models.Submission{
		RegistrationID:   s.RegistrationID,
		FullName:         s.FullName,
		Answers:          answers,
		Score:            score,
		TotalQuestions:   len(s.Questions),
		SubmittedAt:      now,
		ResultsVisibleAt: now.Add(resultDelay),
		Status:           models.SubmissionPending,
	}, nil
}
