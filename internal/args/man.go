package args

import "fmt"

// LongHelp is the man-page-style text printed for -h/--help: cmd/goparallel
// prints it when Parse returns ErrHelpRequested, and also sets it as the
// cobra command's Long text.
const LongHelp = `goparallel runs one command per input, distributing the inputs across a
pool of worker processes, and reassembles their stdout/stderr on this
process's own stdout/stderr strictly in input order — regardless of which
job actually finishes first.

USAGE:
    goparallel [OPTIONS] COMMAND ::: INPUT [INPUT ...]
    goparallel [OPTIONS] COMMAND :::: FILE [FILE ...]
    INPUT_SOURCE | goparallel [OPTIONS] COMMAND

COMMAND TEMPLATE PLACEHOLDERS:
    {}      the input verbatim
    {.}     the input with its extension removed
    {/}     the input's base name
    {//}    the input's directory
    {/.}    the input's base name with its extension removed
    {#}     the 1-based job number

INPUT LISTS:
    ::: a b c            a literal list of inputs
    :::: file1 file2     one input per line, read from the named files
    :::+ / ::::+         append to the list currently being built instead
                         of starting a new one (for multi-list products)

    Multiple lists are combined by Cartesian product, the last list
    varying fastest: "::: a b ::: 1 2" yields "a 1", "a 2", "b 1", "b 2".

When no list is given at all, inputs are read one per line from stdin.`

// VersionBanner is printed by --version: the tool's own version string
// followed by its direct module dependencies, the same "what is this
// binary actually made of" idiom the original tool used for its own
// dependency banner, reproduced here against this repo's own stack.
func VersionBanner(version string) string {
	return fmt.Sprintf(`goparallel %s

Module Dependencies:
  github.com/spf13/cobra
  github.com/rs/zerolog
  github.com/hashicorp/go-multierror
  github.com/pkg/errors
  github.com/google/uuid
  github.com/prometheus/client_golang
  github.com/stretchr/testify (test only)
`, version)
}

// NumCPUBanner is printed by --num-cpu-cores: the host's detected core
// count, the same value used as the default -j/--jobs worker count.
func NumCPUBanner(n int) string {
	return fmt.Sprintf("%d\n", n)
}
