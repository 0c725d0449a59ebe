package engine

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/mgrunder/goparallel/internal/engine/diskbuf"
	"github.com/mgrunder/goparallel/internal/engine/jobpath"
	"github.com/mgrunder/goparallel/internal/engine/metrics"
	"github.com/mgrunder/goparallel/internal/engine/pool"
)

// openRetryInterval is how long the receiver sleeps between attempts to
// open a job's capture files when the open races the writer's final close.
// The writer always has the file open before sending the completion
// message, so the retry always eventually succeeds (spec.md §4.5).
const openRetryInterval = time.Millisecond

// readBufferSize is the size of the scratch buffer used to splice capture
// files through to the aggregate stdout/stderr.
const readBufferSize = 8192

// receiver is the single consumer that reassembles job output strictly in
// input order, a direct port of the original receive_messages loop
// (original_source/src/execute/receive.rs) restructured into a run loop
// plus a map-based out-of-order buffer rather than the original's
// linear-scan SmallVec, which is behaviorally equivalent and is how
// ygrebnov/workers' own reorderer tracks pending completions.
type receiver struct {
	ninputs int
	events  <-chan Event

	stdout io.Writer
	stderr io.Writer
	diag   io.Writer // where best-effort diagnostics are reported

	processed *diskbuf.Writer
	errorLog  *diskbuf.Writer

	cursor *jobpath.Cursor
	bufs   pool.Pool

	metrics metrics.Provider

	// pending holds completion/error events whose id is ahead of counter.
	// Invariant: no entry has id < counter; such entries are consumed
	// immediately instead of being buffered (spec.md §3 "Reorder buffer").
	pending map[int]Event

	// diagErrs accumulates the best-effort I/O failures noted while
	// delivering output (capture-file read/delete, output-write and
	// log-write/flush failures; capture-file opens are retried rather than
	// reported). None of them abort the run; they are reported together
	// as a single summary once run finishes, instead of interleaving N
	// separate lines with the job output they raced against.
	diagErrs *multierror.Error
}

func newReceiver(
	ninputs int,
	baseDir string,
	events <-chan Event,
	stdout, stderr io.Writer,
	processed, errorLog *diskbuf.Writer,
	diag io.Writer,
	m metrics.Provider,
	bufs pool.Pool,
) *receiver {
	return &receiver{
		ninputs:   ninputs,
		events:    events,
		stdout:    stdout,
		stderr:    stderr,
		diag:      diag,
		processed: processed,
		errorLog:  errorLog,
		cursor:    jobpath.NewCursor(baseDir),
		bufs:      bufs,
		metrics:   m,
		pending:   make(map[int]Event),
	}
}

// run drives the receiver until every input has been delivered or recorded
// as an error (spec.md §4.5).
func (r *receiver) run(_ context.Context) {
	counter := 0

	for counter < r.ninputs {
		ev := <-r.events

		if ev.ID == counter {
			counter = r.deliver(ev)
		} else {
			r.pending[ev.ID] = ev
			if ev.Kind == EventCompleted {
				counter = r.tail(counter)
			}
		}

		counter = r.drainPending(counter)
	}

	if err := r.processed.Flush(); err != nil {
		r.noteDiag("flush processed log: %w", err)
	}
	if err := r.errorLog.Flush(); err != nil {
		r.noteDiag("flush error log: %w", err)
	}

	if r.diagErrs != nil {
		fmt.Fprintf(r.diag, "goparallel: I/O error: %v\n", r.diagErrs)
	}
}

// noteDiag records a best-effort I/O failure for the single end-of-run
// summary line, rather than interleaving it with job output as it happens.
func (r *receiver) noteDiag(format string, args ...any) {
	r.diagErrs = multierror.Append(r.diagErrs, fmt.Errorf(format, args...))
}

// deliver handles an event whose id equals the current counter and returns
// the advanced counter.
func (r *receiver) deliver(ev Event) int {
	switch ev.Kind {
	case EventCompleted:
		r.deliverCompleted(ev.ID, ev.Input)
	case EventError:
		r.deliverError(ev.ID, ev.Diagnostic)
	}
	r.metrics.Counter("jobs_delivered").Add(1)
	return ev.ID + 1
}

func (r *receiver) deliverCompleted(id int, input string) {
	stdoutPath, stderrPath := r.cursor.Next(id)

	stdoutFile := r.openRetrying(stdoutPath)
	stderrFile := r.openRetrying(stderrPath)

	r.appendProcessed(input)
	r.spliceAll(stdoutFile, r.stdout)
	r.spliceAll(stderrFile, r.stderr)

	stdoutFile.Close()
	stderrFile.Close()

	r.removeJobFiles(stdoutPath, stderrPath)
}

func (r *receiver) deliverError(_ int, diagnostic string) {
	if err := r.errorLog.WriteRaw(diagnostic); err != nil {
		r.noteDiag("append to error log: %w", err)
	}
	r.metrics.Counter("jobs_errored").Add(1)
}

// tail implements spec.md §4.5 step 3: a future job has already completed
// while the current one (counter) has not, so the receiver streams whatever
// bytes are already available from counter's capture files while it waits
// for counter's own completion message.
//
// counter's capture files are opened lazily and best-effort while tailing
// (a job whose files can never be created, spec.md §7 taxonomy case 3, must
// not wedge this loop), and only opened with the blocking openRetrying
// guarantee once the Completed event itself has arrived. The Error branch
// never opens files at all, matching deliverError: a spawn failure leaves
// at most empty capture files behind, which is diagnosed, not replayed.
func (r *receiver) tail(counter int) int {
	stdoutPath, stderrPath := r.cursor.Next(counter)

	var stdoutFile, stderrFile *os.File
	defer func() {
		if stdoutFile != nil {
			stdoutFile.Close()
		}
		if stderrFile != nil {
			stderrFile.Close()
		}
	}()

	for {
		select {
		case ev := <-r.events:
			if ev.ID == counter {
				switch ev.Kind {
				case EventCompleted:
					if stdoutFile == nil {
						stdoutFile = r.openRetrying(stdoutPath)
					}
					if stderrFile == nil {
						stderrFile = r.openRetrying(stderrPath)
					}
					r.appendProcessed(ev.Input)
					r.spliceAll(stdoutFile, r.stdout)
					r.spliceAll(stderrFile, r.stderr)
					stdoutFile.Close()
					stderrFile.Close()
					stdoutFile, stderrFile = nil, nil
					r.removeJobFiles(stdoutPath, stderrPath)
				case EventError:
					if err := r.errorLog.WriteRaw(ev.Diagnostic); err != nil {
						r.noteDiag("append to error log: %w", err)
					}
				}
				r.metrics.Counter("jobs_delivered").Add(1)
				return counter + 1
			}
			r.pending[ev.ID] = ev
		default:
			if stdoutFile == nil {
				stdoutFile, _ = os.Open(stdoutPath)
			}
			if stderrFile == nil {
				stderrFile, _ = os.Open(stderrPath)
			}
			// Short reads of zero bytes are expected and non-fatal while tailing.
			if stdoutFile != nil {
				r.splicePartial(stdoutFile, r.stdout)
			}
			if stderrFile != nil {
				r.splicePartial(stderrFile, r.stderr)
			}
			time.Sleep(openRetryInterval)
		}
	}
}

// drainPending repeatedly looks counter up in the reorder buffer and delivers
// the entry found there, since delivering one entry can unblock the next. It
// stops at the first counter value with no buffered entry (spec.md §4.5 step 4).
func (r *receiver) drainPending(counter int) int {
	for {
		ev, ok := r.pending[counter]
		if !ok {
			return counter
		}
		delete(r.pending, counter)
		counter = r.deliver(ev)
	}
}

func (r *receiver) appendProcessed(input string) {
	if err := r.processed.WriteLine(input); err != nil {
		r.noteDiag("append to processed log: %w", err)
	}
}

func (r *receiver) removeJobFiles(stdoutPath, stderrPath string) {
	if err := os.Remove(stdoutPath); err != nil {
		r.noteDiag("remove job files: %w", err)
	}
	if err := os.Remove(stderrPath); err != nil {
		r.noteDiag("remove job files: %w", err)
	}
}

// openRetrying opens path, retrying until the writer's close has landed. A
// nil, already-closed os.File standing for a permanently missing file is
// never returned: spec.md §4.5 guarantees the writer opens the file before
// sending the completion message, so the retry always terminates.
func (r *receiver) openRetrying(path string) *os.File {
	for {
		f, err := os.Open(path)
		if err == nil {
			return f
		}
		time.Sleep(openRetryInterval)
	}
}

// spliceAll reads f to EOF, writing every byte through to out.
func (r *receiver) spliceAll(f *os.File, out io.Writer) {
	buf := r.bufs.Get()
	defer r.bufs.Put(buf)

	for {
		n, err := f.Read(buf)
		if n > 0 {
			if _, werr := out.Write(buf[:n]); werr != nil {
				r.noteDiag("write output: %w", werr)
			}
		}
		if err != nil {
			if err != io.EOF {
				r.noteDiag("read capture file: %w", err)
			}
			return
		}
	}
}

// splicePartial reads and forwards whatever bytes are currently available
// without blocking for more; used while tailing an in-progress job.
func (r *receiver) splicePartial(f *os.File, out io.Writer) {
	buf := r.bufs.Get()
	defer r.bufs.Put(buf)

	n, err := f.Read(buf)
	if n > 0 {
		if _, werr := out.Write(buf[:n]); werr != nil {
			r.noteDiag("write output: %w", werr)
		}
	}
	_ = err // EOF / zero-byte reads are expected and non-fatal while tailing.
}
