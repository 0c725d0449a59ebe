package args

import (
	"bufio"
	"io"
	"os"
	"runtime"

	"github.com/pkg/errors"
)

// Sentinel errors Parse returns for the three "print something and exit 0"
// flags. They are not ParseErrors: the caller (cmd/goparallel) recognizes
// them by identity comparison and prints the requested text itself, keeping this
// package free of os.Exit calls.
var (
	ErrHelpRequested    = errors.New("help requested")
	ErrVersionRequested = errors.New("version requested")
	ErrNumCPURequested  = errors.New("num-cpu-cores requested")
)

// Flags are the boolean switches collected while parsing (spec.md §6).
type Flags struct {
	Grouped  bool // true unless -u/--ungroup was given
	UseShell bool // true unless -n/--no-shell was given
	Quiet    bool
	Verbose  bool
}

// Args is the parsed command line: the command template, the flattened
// input list, the worker count, and the flags. It is everything the engine
// core consumes through its own interfaces (engine.Materializer, the input
// slice, Config.Workers).
type Args struct {
	Flags        Flags
	Workers      int
	Template     []Token
	TemplateText string
	Inputs       []string
}

type parseMode int

const (
	modeArguments parseMode = iota
	modeCommand
	modeInputs
	modeFiles
)

// Parse interprets argv (normally os.Args[1:]) per spec.md §6's positional
// syntax, falling back to reading stdin line-by-line when no ":::"/"::::"
// list was supplied.
func Parse(argv []string, stdin io.Reader) (*Args, error) {
	a := &Args{
		Workers: runtime.NumCPU(),
		Flags:   Flags{Grouped: true, UseShell: true},
	}

	if len(argv) == 0 {
		return nil, &ParseError{Kind: KindNoArguments}
	}

	mode := modeArguments
	switch argv[0] {
	case ":::":
		mode = modeInputs
	case "::::":
		mode = modeFiles
	}

	var (
		command       []string
		lists         [][]string
		currentInputs []string
	)

	i := 0
	for i < len(argv) {
		arg := argv[i]
		i++

		switch mode {
		case modeArguments:
			if len(arg) > 0 && arg[0] == '-' && arg != ":::" && arg != "::::" {
				if err := a.parseFlag(arg, argv, &i); err != nil {
					return nil, err
				}
				continue
			}

			switch arg {
			case ":::":
				mode = modeInputs
			case "::::":
				mode = modeFiles
			default:
				command = append(command, arg)
				mode = modeCommand
			}

		case modeCommand:
			switch arg {
			case ":::", ":::+":
				mode = modeInputs
			case "::::", "::::+":
				mode = modeFiles
			default:
				command = append(command, arg)
			}

		default: // modeInputs, modeFiles
			switch arg {
			case ":::":
				mode = modeInputs
				if len(currentInputs) > 0 {
					lists = append(lists, currentInputs)
					currentInputs = nil
				}
			case ":::+":
				mode = modeInputs
			case "::::":
				mode = modeFiles
				if len(currentInputs) > 0 {
					lists = append(lists, currentInputs)
					currentInputs = nil
				}
			case "::::+":
				mode = modeFiles
			default:
				if mode == modeInputs {
					currentInputs = append(currentInputs, arg)
				} else {
					if err := readInputFile(&currentInputs, arg); err != nil {
						return nil, err
					}
				}
			}
		}
	}

	a.TemplateText = joinCommand(command)
	a.Template = Tokenize(a.TemplateText)

	if len(currentInputs) > 0 {
		lists = append(lists, currentInputs)
	}

	switch {
	case len(lists) > 1:
		a.Inputs = Permutate(lists)
	case len(lists) == 1:
		a.Inputs = lists[0]
	}

	if len(a.Inputs) == 0 {
		a.Inputs = readStdin(stdin)
	}

	return a, nil
}

// parseFlag handles one "-..." argument in modeArguments, including the
// GNU-style bundled short flags ("-nuqv") and the special-cased "-jN" form.
func (a *Args) parseFlag(arg string, argv []string, i *int) error {
	if arg == "-" {
		return &ParseError{Kind: KindInvalidArgument, Value: "-"}
	}

	if len(arg) >= 2 && arg[1] == '-' {
		return a.parseLongFlag(arg, argv, i)
	}

	if len(arg) >= 3 && arg[1] == 'j' {
		n, err := parseJobs(arg[2:])
		if err != nil {
			return err
		}
		a.Workers = n
		return nil
	}

	for _, ch := range arg[1:] {
		switch ch {
		case 'h':
			return ErrHelpRequested
		case 'j':
			if *i >= len(argv) {
				return &ParseError{Kind: KindJobsNoValue}
			}
			n, err := parseJobs(argv[*i])
			*i++
			if err != nil {
				return err
			}
			a.Workers = n
		case 'n':
			a.Flags.UseShell = false
		case 'u':
			a.Flags.Grouped = false
		case 'q':
			a.Flags.Quiet = true
		case 'v':
			a.Flags.Verbose = true
		default:
			return &ParseError{Kind: KindInvalidArgument, Value: arg}
		}
	}
	return nil
}

func (a *Args) parseLongFlag(arg string, argv []string, i *int) error {
	switch arg[2:] {
	case "help":
		return ErrHelpRequested
	case "version":
		return ErrVersionRequested
	case "num-cpu-cores":
		return ErrNumCPURequested
	case "jobs":
		if *i >= len(argv) {
			return &ParseError{Kind: KindJobsNoValue}
		}
		n, err := parseJobs(argv[*i])
		*i++
		if err != nil {
			return err
		}
		a.Workers = n
		return nil
	case "no-shell":
		a.Flags.UseShell = false
		return nil
	case "ungroup":
		a.Flags.Grouped = false
		return nil
	case "quiet":
		a.Flags.Quiet = true
		return nil
	case "verbose":
		a.Flags.Verbose = true
		return nil
	default:
		return &ParseError{Kind: KindInvalidArgument, Value: arg}
	}
}

func joinCommand(words []string) string {
	out := ""
	for i, w := range words {
		if i > 0 {
			out += " "
		}
		out += w
	}
	return out
}

// readInputFile opens path and appends each of its lines to inputs.
func readInputFile(inputs *[]string, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return &ParseError{Kind: KindInputFile, Value: path, Cause: err}
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		*inputs = append(*inputs, scanner.Text())
	}
	return nil
}

// readStdin reads stdin line-by-line, the fallback input source when no
// ":::"/"::::" list was supplied (spec.md §6).
func readStdin(r io.Reader) []string {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines
}
