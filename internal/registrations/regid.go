package registrations

import (
	"crypto/rand"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const randomDigits = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewRegistrationID generates a human-shareable registration identifier of the
// form QZ-<timestamp>-<random>, uppercased. The millisecond timestamp keeps ids
// roughly monotonic; the 5 random base36 characters make collisions negligible
// for a single-event population. Uniqueness is ultimately enforced by the
// store's unique constraint, not by this generator.
func NewRegistrationID() (string, error) {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)

	buf := make([]byte, 5)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	for i, b := range buf {
		buf[i] = randomDigits[int(b)%len(randomDigits)]
	}

	return strings.ToUpper(fmt.Sprintf("QZ-%s-%s", ts, buf)), nil
}
