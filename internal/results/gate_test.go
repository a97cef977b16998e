package results_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/quizcomp/backend/internal/models"
	"github.com/quizcomp/backend/internal/results"
)

func TestDisclose(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	tests := map[string]struct {
		status    string
		visibleAt time.Time
		want      results.Outcome
	}{
		"pending before disclosure time": {
			status:    models.SubmissionPending,
			visibleAt: now.Add(time.Hour),
			want:      results.OutcomePending,
		},
		"pending one second before disclosure": {
			status:    models.SubmissionPending,
			visibleAt: now.Add(time.Second),
			want:      results.OutcomePending,
		},
		"pending exactly at disclosure time": {
			status:    models.SubmissionPending,
			visibleAt: now,
			want:      results.OutcomeVisible,
		},
		"pending after disclosure time": {
			status:    models.SubmissionPending,
			visibleAt: now.Add(-time.Second),
			want:      results.OutcomeVisible,
		},
		"available is always visible": {
			status:    models.SubmissionAvailable,
			visibleAt: now.Add(time.Hour),
			want:      results.OutcomeVisible,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			sub := &models.Submission{
				Status:           tt.status,
				ResultsVisibleAt: tt.visibleAt,
			}
			require.Equal(t, tt.want, results.Disclose(sub, now))
		})
	}
}

func TestDisclose_Stable(t *testing.T) {
	// The decision depends only on the clock and the stored row, so asking
	// twice at the same instant gives the same answer.
	now := time.Now()
	sub := &models.Submission{
		Status:           models.SubmissionPending,
		ResultsVisibleAt: now.Add(24 * time.Hour),
	}
	first := results.Disclose(sub, now)
	second := results.Disclose(sub, now)
	require.Equal(t, first, second)
	require.Equal(t, results.OutcomePending, first)

	later := now.Add(24*time.Hour + time.Second)
	require.Equal(t, results.OutcomeVisible, results.Disclose(sub, later))
}
