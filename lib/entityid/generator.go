// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package entityid

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/bureau-foundation/plasma/lib/clock"
)

// errClockRegression is logged, never returned: a regression is
// absorbed by issuing the successor of the last ID.
var errClockRegression = errors.New("entityid: clock moved backward")

// Generator issues strictly increasing IDs. It is safe for concurrent
// use; issuance is serialized by an internal mutex, so no two callers
// ever receive the same ID.
type Generator struct {
	clock   clock.Clock
	entropy io.Reader
	logger  *slog.Logger

	mu          sync.Mutex
	last        ID
	regressions uint64
}

// Option configures a Generator.
type Option func(*Generator)

// WithEntropy replaces crypto/rand as the source of the random
// component. Tests use a deterministic reader.
func WithEntropy(entropy io.Reader) Option {
	return func(g *Generator) { g.entropy = entropy }
}

// WithLogger enables debug logging of clock regressions and entropy
// failures.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) { g.logger = logger }
}

// NewGenerator returns a Generator reading time from c.
func NewGenerator(c clock.Clock, options ...Option) *Generator {
	generator := &Generator{
		clock:   c,
		entropy: rand.Reader,
	}
	for _, option := range options {
		option(generator)
	}
	return generator
}

// New issues an ID greater than every ID this Generator has issued
// before.
//
// When the clock reads later than the last ID's timestamp, the new ID
// carries the current time and a fresh random component whose top bit
// is clear, leaving 2^79 increments of headroom within that
// millisecond. Otherwise (same millisecond, or the clock moved
// backward) the new ID is the last ID plus one.
func (g *Generator) New() ID {
	millis := clock.UnixMilli(g.clock)
	if millis > maxMillis {
		millis = maxMillis
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	lastMillis := g.last.Millis()
	if millis > lastMillis || g.last.IsZero() {
		if id, ok := g.fresh(millis); ok {
			g.last = id
			return id
		}
	} else if millis < lastMillis {
		g.regressions++
		if g.logger != nil {
			g.logger.Debug("issuing successor identifier",
				"error", errClockRegression,
				"clock_millis", millis,
				"last_millis", lastMillis,
			)
		}
	}

	g.last = g.last.next()
	return g.last
}

// fresh builds an ID for millis with a random component. It reports
// false if the entropy source fails.
func (g *Generator) fresh(millis uint64) (ID, bool) {
	var random [10]byte
	if _, err := io.ReadFull(g.entropy, random[:]); err != nil {
		if g.logger != nil {
			g.logger.Warn("entropy read failed, issuing successor identifier", "error", err)
		}
		return ID{}, false
	}
	random[0] &= 0x7f

	var id ID
	binary.BigEndian.PutUint64(id[:8], millis<<16)
	copy(id[6:], random[:])
	if id.IsZero() {
		id[Size-1] = 1
	}
	return id, true
}

// Regressions returns how many times the clock was observed moving
// backward. Exposed for diagnostics.
func (g *Generator) Regressions() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.regressions
}

// defaultGenerator backs the package-level New. It is initialized
// explicitly at package load with the real clock and crypto/rand.
var defaultGenerator = NewGenerator(clock.Real())

// New issues an ID from the process-wide generator.
func New() ID {
	return defaultGenerator.New()
}
