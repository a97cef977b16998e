package quiz_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/quizcomp/backend/internal/models"
	"github.com/quizcomp/backend/internal/quiz"
)

func makeQuestions(t *testing.T, n int) []models.Question {
	t.Helper()
	qs := make([]models.Question, 0, n)
	for i := 0; i < n; i++ {
		qs = append(qs, models.Question{
			ID:            uuid.New(),
			Prompt:        "prompt",
			Options:       []string{"Paris", "London", "Berlin"},
			CorrectOption: "Paris",
			OrderIndex:    i,
		})
	}
	return qs
}

func TestSession_Navigation(t *testing.T) {
	s := quiz.NewSession("QZ-X-1", "Asha Rao", makeQuestions(t, 3))

	require.Equal(t, 0, s.CurrentIndex)

	// Retreat at the first question is a no-op, not an error.
	s.Retreat()
	require.Equal(t, 0, s.CurrentIndex)

	s.Advance()
	s.Advance()
	require.Equal(t, 2, s.CurrentIndex)

	// Advance at the last question is clamped.
	s.Advance()
	require.Equal(t, 2, s.CurrentIndex)

	s.Retreat()
	require.Equal(t, 1, s.CurrentIndex)
}

func TestSession_EmptyQuestionSet(t *testing.T) {
	s := quiz.NewSession("QZ-X-1", "Asha Rao", nil)

	_, ok := s.Current()
	require.False(t, ok)

	// Navigation on an empty session must not panic or move.
	s.Advance()
	s.Retreat()
	require.Equal(t, 0, s.CurrentIndex)
}

func TestSession_SelectAnswer(t *testing.T) {
	questions := makeQuestions(t, 2)
	s := quiz.NewSession("QZ-X-1", "Asha Rao", questions)
	qid := questions[0].ID.String()

	require.NoError(t, s.SelectAnswer(qid, "London"))
	require.Equal(t, "London", s.Answers[qid])

	// Overwrite is allowed; the answer set never shrinks.
	require.NoError(t, s.SelectAnswer(qid, "Paris"))
	require.Equal(t, "Paris", s.Answers[qid])
	require.Len(t, s.Answers, 1)

	err := s.SelectAnswer(uuid.New().String(), "Paris")
	require.ErrorIs(t, err, quiz.ErrUnknownQuestion)

	err = s.SelectAnswer(qid, "Madrid")
	require.ErrorIs(t, err, quiz.ErrInvalidOption)

	// Options are matched case-sensitively.
	err = s.SelectAnswer(qid, "paris")
	require.ErrorIs(t, err, quiz.ErrInvalidOption)
}

func TestSession_SubmitIncomplete(t *testing.T) {
	questions := makeQuestions(t, 3)
	s := quiz.NewSession("QZ-X-1", "Asha Rao", questions)

	require.NoError(t, s.SelectAnswer(questions[0].ID.String(), "Paris"))

	_, err := s.Submit(time.Now(), 24*time.Hour)
	var incomplete *quiz.IncompleteAnswersError
	require.ErrorAs(t, err, &incomplete)
	require.Equal(t, 2, incomplete.Missing)
	require.Equal(t, 2, s.Unanswered())
}

func TestSession_SubmitScoring(t *testing.T) {
	tests := map[string]struct {
		answer    func(i int) string
		wantScore int
	}{
		"all correct": {
			answer:    func(int) string { return "Paris" },
			wantScore: 3,
		},
		"all wrong": {
			answer:    func(int) string { return "London" },
			wantScore: 0,
		},
		"partially correct": {
			answer: func(i int) string {
				if i == 0 {
					return "Paris"
				}
				return "Berlin"
			},
			wantScore: 1,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			questions := makeQuestions(t, 3)
			s := quiz.NewSession("QZ-ABC123-XYZ9", "Asha Rao", questions)
			for i, q := range questions {
				require.NoError(t, s.SelectAnswer(q.ID.String(), tt.answer(i)))
			}

			now := time.Now()
			sub, err := s.Submit(now, 24*time.Hour)
			require.NoError(t, err)

			require.Equal(t, tt.wantScore, sub.Score)
			require.Equal(t, 3, sub.TotalQuestions)
			require.GreaterOrEqual(t, sub.Score, 0)
			require.LessOrEqual(t, sub.Score, sub.TotalQuestions)
			require.Equal(t, models.SubmissionPending, sub.Status)
			require.Equal(t, now, sub.SubmittedAt)
			require.Equal(t, now.Add(24*time.Hour), sub.ResultsVisibleAt)
			require.Equal(t, "Asha Rao", sub.FullName)
			require.Equal(t, "QZ-ABC123-XYZ9", sub.RegistrationID)
		})
	}
}

func TestSession_SubmitCopiesAnswers(t *testing.T) {
	questions := makeQuestions(t, 1)
	s := quiz.NewSession("QZ-X-1", "Asha Rao", questions)
	qid := questions[0].ID.String()
	require.NoError(t, s.SelectAnswer(qid, "Paris"))

	sub, err := s.Submit(time.Now(), 24*time.Hour)
	require.NoError(t, err)

	// Mutating the session afterwards must not change the submission.
	s.Answers[qid] = "London"
	require.Equal(t, "Paris", sub.Answers[qid])
}

func TestSession_SubmitEmptySet(t *testing.T) {
	s := quiz.NewSession("QZ-X-1", "Asha Rao", nil)

	sub, err := s.Submit(time.Now(), 24*time.Hour)
	require.NoError(t, err)
	require.Equal(t, 0, sub.Score)
	require.Equal(t, 0, sub.TotalQuestions)
}
