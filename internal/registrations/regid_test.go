package registrations_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quizcomp/backend/internal/registrations"
)

func TestNewRegistrationID_Format(t *testing.T) {
	id, err := registrations.NewRegistrationID()
	require.NoError(t, err)
	require.Regexp(t, regexp.MustCompile(`^QZ-[0-9A-Z]+-[0-9A-Z]{5}$`), id)
}

func TestNewRegistrationID_NoDuplicates(t *testing.T) {
	const n = 10000

	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		id, err := registrations.NewRegistrationID()
		require.NoError(t, err)

		_, dup := seen[id]
		require.False(t, dup, "duplicate id after %d generations: %s", i, id)
		seen[id] = struct{}{}
	}
}
