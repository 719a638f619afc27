// Package id issues time-sortable identifiers for refresh cycles and roll
// commands so their log lines can be correlated and ordered.
package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Source issues ULIDs that stay strictly increasing within a millisecond.
type Source struct {
	mu      sync.Mutex
	entropy io.Reader
	now     func() time.Time
}

// NewSource creates a Source drawing entropy from r.
func NewSource(r io.Reader) *Source {
	return &Source{
		entropy: ulid.Monotonic(r, 0),
		now:     time.Now,
	}
}

// Next returns a new ULID string.
func (s *Source) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(s.now().UTC()), s.entropy)
	if err != nil {
		// Only reachable if the monotonic entropy overflows within one
		// millisecond or the clock goes backwards.
		panic(err)
	}
	return id.String()
}

var defaultSource = NewSource(rand.New(rand.NewSource(seed())))

func seed() int64 {
	var s int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &s)
	if s == 0 {
		s = time.Now().UnixNano()
	}
	return s
}

// New returns a ULID from the package's default Source.
func New() string {
	return defaultSource.Next()
}
