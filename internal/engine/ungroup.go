package engine

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
)

// runUngrouped implements spec.md §9 "Ungroup mode": grouping is disabled,
// so workers write directly to the tool's own stdout/stderr and the ordered
// receiver is never instantiated. Ordering across jobs is explicitly
// sacrificed in exchange for not paying the capture-file round trip.
func runUngrouped(ctx context.Context, inputs []string, materialize Materializer, cfg Config) (Result, error) {
	var (
		nextIndex atomic.Int64
		delivered atomic.Int64
		errored   atomic.Int64
		wg        sync.WaitGroup
	)

	wg.Add(cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		go func() {
			defer wg.Done()
			for {
				id := int(nextIndex.Add(1)) - 1
				if id >= len(inputs) {
					return
				}

				_, argv := materialize(inputs[id], id)
				if len(argv) == 0 {
					errored.Add(1)
					continue
				}

				cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
				cmd.Stdout = os.Stdout
				cmd.Stderr = os.Stderr
				err := cmd.Run()

				if err != nil {
					if _, ok := err.(*exec.ExitError); !ok {
						errored.Add(1)
						fmt.Fprintf(os.Stderr, "goparallel: unable to launch job %d: %v\n", id, err)
						continue
					}
				}
				delivered.Add(1)
			}
		}()
	}
	wg.Wait()

	return Result{Delivered: int(delivered.Load()), Errored: int(errored.Load())}, nil
}
