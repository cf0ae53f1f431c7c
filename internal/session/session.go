// Package session provides the run-scoped output directory shared by every
// artifact writer in one process invocation: one timestamp, captured once,
// one lazily-created directory.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// TimestampLayout names session directories and artifact files.
const TimestampLayout = "20060102_150405"

// Session is the explicit run context. Create one at the top-level invocation
// and pass it to every component that writes output; all artifacts (bio,
// tone, photo, feedback) from the same run land in the same directory.
type Session struct {
	base      string
	timestamp string
	runID     string

	once sync.Once
	dir  string
	err  error
}

// New captures the session timestamp now. The directory itself is created
// lazily by the first writer.
func New(baseDir string) *Session {
	return &Session{
		base:      baseDir,
		timestamp: time.Now().Format(TimestampLayout),
		runID:     uuid.NewString(),
	}
}

// Timestamp returns the run timestamp shared by all artifacts.
func (s *Session) Timestamp() string {
	return s.timestamp
}

// RunID returns the unique run identifier, used for log correlation.
func (s *Session) RunID() string {
	return s.runID
}

// Dir creates (at most once) and returns the session directory. Concurrent
// callers observe the same result; first-writer-wins.
func (s *Session) Dir() (string, error) {
	s.once.Do(func() {
		dir := filepath.Join(s.base, s.timestamp)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			s.err = fmt.Errorf("failed to create session directory: %w", err)
			return
		}
		s.dir = dir
		log.Info().
			Str("dir", dir).
			Str("run_id", s.runID).
			Msg("Session directory created")
	})
	return s.dir, s.err
}
