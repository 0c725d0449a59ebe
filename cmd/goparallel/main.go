// Command goparallel runs one command per input across a pool of worker
// processes and reassembles their output, strictly in input order, on its
// own stdout/stderr.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/mgrunder/goparallel/internal/args"
	"github.com/mgrunder/goparallel/internal/engine"
	"github.com/mgrunder/goparallel/internal/engine/metrics"
	"github.com/mgrunder/goparallel/internal/log"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run is the body of main, factored out so it can be exercised without
// calling os.Exit. It always returns 0 once a batch of jobs has been
// dispatched: per-job failures are reported via the error-log and never
// turn into a non-zero process exit (spec.md §6).
func run(argv []string, stdin *os.File, stdout, stderr *os.File) int {
	cmd := &cobra.Command{
		Use:                "goparallel COMMAND ::: INPUT [INPUT ...]",
		Short:              "Run a command across many inputs concurrently, in order",
		Long:               args.LongHelp,
		Version:            version,
		DisableFlagParsing: true, // the positional ":::"/"::::" grammar is parsed by internal/args
		SilenceUsage:       true,
		SilenceErrors:      true,
	}

	var exitCode int
	cmd.RunE = func(_ *cobra.Command, _ []string) error {
		exitCode = execute(argv, stdin, stdout, stderr)
		return nil
	}
	cmd.SetArgs(argv)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "goparallel: %v\n", err)
		return 1
	}
	return exitCode
}

func execute(argv []string, stdin *os.File, stdout, stderr *os.File) int {
	parsed, err := args.Parse(argv, stdin)
	switch {
	case err == args.ErrHelpRequested:
		fmt.Fprintln(stdout, args.LongHelp)
		return 0
	case err == args.ErrVersionRequested:
		fmt.Fprint(stdout, args.VersionBanner(version))
		return 0
	case err == args.ErrNumCPURequested:
		fmt.Fprint(stdout, args.NumCPUBanner(runtime.NumCPU()))
		return 0
	case err != nil:
		fmt.Fprintf(stderr, "goparallel: %v\n", err)
		fmt.Fprintln(stderr, "For help, try 'goparallel --help'.")
		return 1
	}

	logger := log.New(stderr, parsed.Flags.Quiet, parsed.Flags.Verbose)

	baseDir, err := newBaseDir()
	if err != nil {
		fmt.Fprintf(stderr, "goparallel: unable to create working directory: %v\n", err)
		return 1
	}
	defer func() {
		if rmErr := os.RemoveAll(baseDir); rmErr != nil {
			fmt.Fprintf(stderr, "goparallel: unable to remove working directory %s: %v\n", baseDir, rmErr)
		}
	}()

	logger.Debug().Str("base_dir", baseDir).Int("workers", parsed.Workers).Int("inputs", len(parsed.Inputs)).Msg("starting run")

	materialize := args.Materializer(parsed.Template, parsed.Flags.UseShell)

	// Each run gets its own registry rather than prometheus.DefaultRegisterer:
	// the default registerer is process-global, so a second in-process run
	// (e.g. two test cases in one `go test` binary) would reuse the first
	// run's "goparallel_jobs_delivered" collector and keep adding to it.
	registry := prometheus.NewRegistry()

	result, err := engine.Run(
		context.Background(),
		parsed.Inputs,
		materialize,
		stdout,
		stderr,
		engine.WithWorkers(parsed.Workers),
		engine.WithBaseDir(baseDir),
		engine.WithGrouped(parsed.Flags.Grouped),
		engine.WithMetrics(metrics.NewPrometheusProvider(registry, "goparallel")),
	)
	if err != nil {
		fmt.Fprintf(stderr, "goparallel: %v\n", err)
		return 1
	}

	logger.Info().Int("delivered", result.Delivered).Int("errored", result.Errored).Msg("run complete")

	return 0
}

// newBaseDir creates the process-scoped capture directory described in
// spec.md §6: <os.TempDir()>/goparallel-<pid>-<uuid>. The uuid suffix
// guards against collisions across rapid re-invocations that reuse a PID
// under a process supervisor.
func newBaseDir() (string, error) {
	name := fmt.Sprintf("goparallel-%d-%s", os.Getpid(), uuid.NewString())
	dir := filepath.Join(os.TempDir(), name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}
