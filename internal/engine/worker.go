package engine

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"

	"github.com/mgrunder/goparallel/internal/engine/jobpath"
)

// dispatcher owns the pool of ncores peer workers described in spec.md
// §4.4. Work distribution uses a single shared atomic cursor rather than a
// task channel: each worker claims the next unclaimed input index with one
// atomic fetch-and-add, which keeps the design work-stealing-fair without
// per-input channel overhead.
type dispatcher struct {
	inputs      []string
	materialize Materializer
	baseDir     string
	events      chan<- Event
	nextIndex   atomic.Int64
	inflight    sync.WaitGroup
}

func newDispatcher(inputs []string, materialize Materializer, baseDir string, events chan<- Event) *dispatcher {
	return &dispatcher{
		inputs:      inputs,
		materialize: materialize,
		baseDir:     baseDir,
		events:      events,
	}
}

// run starts n worker goroutines and blocks until all of them have exited
// (i.e. until every input index has been claimed and processed).
func (d *dispatcher) run(ctx context.Context, n int) {
	d.inflight.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer d.inflight.Done()
			d.workerLoop(ctx)
		}()
	}
	d.inflight.Wait()
}

// workerLoop implements steps 1-8 of spec.md §4.4.
func (d *dispatcher) workerLoop(ctx context.Context) {
	for {
		id := int(d.nextIndex.Add(1)) - 1
		if id >= len(d.inputs) {
			return
		}

		d.runJob(ctx, Job{ID: id, Input: d.inputs[id]})
	}
}

func (d *dispatcher) runJob(ctx context.Context, job Job) {
	name, argv := d.materialize(job.Input, job.ID)

	stdoutPath, stderrPath := jobpath.New(d.baseDir, job.ID)

	stdoutFile, err := os.OpenFile(stdoutPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		d.events <- Event{Kind: EventError, ID: job.ID, Diagnostic: fmt.Sprintf("unable to create stdout file for job %d: %v", job.ID, err)}
		return
	}

	stderrFile, err := os.OpenFile(stderrPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		stdoutFile.Close()
		d.events <- Event{Kind: EventError, ID: job.ID, Diagnostic: fmt.Sprintf("unable to create stderr file for job %d: %v", job.ID, err)}
		return
	}

	if len(argv) == 0 {
		stdoutFile.Close()
		stderrFile.Close()
		d.events <- Event{Kind: EventError, ID: job.ID, Diagnostic: fmt.Sprintf("job %d: empty command", job.ID)}
		return
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = stdoutFile
	cmd.Stderr = stderrFile

	if err := cmd.Start(); err != nil {
		stdoutFile.Close()
		stderrFile.Close()
		d.events <- Event{Kind: EventError, ID: job.ID, Diagnostic: fmt.Sprintf("unable to launch %q: %v", name, err)}
		return
	}

	// The exit status (including non-zero exit) does not affect ordering:
	// the job is Completed either way, per spec.md §4.4 and the decided
	// Open Question in SPEC_FULL.md §4.4. Only a failure to start the
	// child at all is an Error.
	_ = cmd.Wait()

	if err := stdoutFile.Close(); err != nil {
		d.events <- Event{Kind: EventError, ID: job.ID, Diagnostic: fmt.Sprintf("job %d: closing stdout capture: %v", job.ID, err)}
		return
	}
	if err := stderrFile.Close(); err != nil {
		d.events <- Event{Kind: EventError, ID: job.ID, Diagnostic: fmt.Sprintf("job %d: closing stderr capture: %v", job.ID, err)}
		return
	}

	d.events <- Event{Kind: EventCompleted, ID: job.ID, Input: job.Input}
}
