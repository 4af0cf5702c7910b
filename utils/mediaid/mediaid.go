package mediaid

import (
	"crypto/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Prefix marks media asset identifiers.
const Prefix = "med_"

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// New returns a med_* ULID string. Ids created in the same millisecond sort
// in creation order.
func New() string {
	return NewAt(time.Now())
}

// NewAt returns a med_* ULID for the given time.
func NewAt(t time.Time) string {
	entropyMu.Lock()
	id := ulid.MustNew(ulid.Timestamp(t), entropy)
	entropyMu.Unlock()
	return Prefix + strings.ToLower(id.String())
}

// IsValid reports whether the string is a med_* ULID.
func IsValid(value string) bool {
	if !strings.HasPrefix(value, Prefix) {
		return false
	}
	_, err := Parse(value)
	return err == nil
}

// Parse strips the med_ prefix and returns the ULID.
func Parse(value string) (ulid.ULID, error) {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, Prefix)
	value = strings.TrimPrefix(value, strings.ToUpper(Prefix))
	return ulid.Parse(strings.ToUpper(value))
}
