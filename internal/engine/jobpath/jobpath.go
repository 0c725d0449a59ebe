// Package jobpath computes the on-disk paths of a job's capture files.
//
// It is a pure, stateless mapping from a job id and a base directory to a
// pair of paths: paths for distinct ids never collide, and paths for the
// same id are byte-identical regardless of which goroutine computes them.
package jobpath

import (
	"path/filepath"
	"strconv"
)

// New returns the stdout/stderr capture file paths for job id under base.
func New(base string, id int) (stdoutPath, stderrPath string) {
	s := strconv.Itoa(id)
	return filepath.Join(base, "stdout", s), filepath.Join(base, "stderr", s)
}

// Cursor produces job paths while reusing a single scratch buffer for the
// decimal digits of the id and precomputed directory prefixes, instead of
// joining path components on every call; each call still returns newly built
// path strings. The receiver's hot loop recomputes the current job's paths often (initial
// dispatch, tailing mode, reorder-buffer rescans), so this matters more for
// it than for workers, which compute a path exactly once per job.
type Cursor struct {
	stdoutPrefix string
	stderrPrefix string
	scratch      []byte
}

// NewCursor builds a Cursor rooted at base.
func NewCursor(base string) *Cursor {
	return &Cursor{
		stdoutPrefix: filepath.Join(base, "stdout") + string(filepath.Separator),
		stderrPrefix: filepath.Join(base, "stderr") + string(filepath.Separator),
		scratch:      make([]byte, 0, 20),
	}
}

// Next returns the stdout/stderr paths for id, reusing the cursor's internal
// digit buffer across calls.
func (c *Cursor) Next(id int) (stdoutPath, stderrPath string) {
	c.scratch = strconv.AppendInt(c.scratch[:0], int64(id), 10)
	suffix := string(c.scratch)
	return c.stdoutPrefix + suffix, c.stderrPrefix + suffix
}
