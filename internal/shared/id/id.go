// Package id generates the prefixed ULIDs used for desktop sessions and
// request traces. ULIDs from one process sort in creation order, so a sorted
// list of desktop ids is also a list in creation order.
package id

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

const (
	DesktopPrefix = "desk"
	RequestPrefix = "req"
)

// ErrWrongPrefix is returned when a prefixed ID carries an unexpected prefix
var ErrWrongPrefix = errors.New("id has wrong prefix")

// DesktopID identifies a desktop session
type DesktopID string

// RequestID identifies a trace or span
type RequestID string

func (id DesktopID) String() string { return string(id) }
func (id RequestID) String() string { return string(id) }

// CreatedAt returns the creation time encoded in the id
func (id DesktopID) CreatedAt() (time.Time, error) {
	u, err := parse(string(id), DesktopPrefix)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(u.Time()), nil
}

// Generator hands out prefixed ULIDs. Ids from one generator are strictly
// increasing, even within the same millisecond.
type Generator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

// NewGenerator creates a generator reading randomness from entropy
func NewGenerator(entropy io.Reader) *Generator {
	return &Generator{
		entropy: ulid.Monotonic(entropy, 0),
		now:     time.Now,
	}
}

// Next returns "<prefix>_<ulid>"
func (g *Generator) Next(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	u := ulid.MustNew(ulid.Timestamp(g.now()), g.entropy)
	return prefix + "_" + u.String()
}

var defaultGenerator = NewGenerator(rand.Reader)

// NewDesktopID generates a new desktop session ID
func NewDesktopID() DesktopID {
	return DesktopID(defaultGenerator.Next(DesktopPrefix))
}

// NewRequestID generates a new trace or span ID
func NewRequestID() RequestID {
	return RequestID(defaultGenerator.Next(RequestPrefix))
}

// ParseDesktopID checks that s is a well-formed desktop id
func ParseDesktopID(s string) (DesktopID, error) {
	if _, err := parse(s, DesktopPrefix); err != nil {
		return "", err
	}
	return DesktopID(s), nil
}

func parse(s, prefix string) (ulid.ULID, error) {
	rest, ok := strings.CutPrefix(s, prefix+"_")
	if !ok {
		return ulid.ULID{}, fmt.Errorf("%w: want %q", ErrWrongPrefix, prefix)
	}
	return ulid.ParseStrict(rest)
}
