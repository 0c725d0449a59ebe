package engine

// Job is the tuple (id, input): id is the position of input in the
// flattened input list, the sole ordering key for everything downstream.
type Job struct {
	ID    int
	Input string
}

// Materializer turns a job's input into a concrete argument vector (or a
// shell invocation, depending on how the caller built it). It is supplied
// by the caller (internal/args, in this tool) so that the engine stays
// decoupled from placeholder syntax.
type Materializer func(input string, id int) (name string, argv []string)

// EventKind distinguishes the two state-message cases from spec.md §3.
type EventKind int

const (
	// EventCompleted reports that a job's child ran to completion
	// (including non-zero exit) and its capture files are ready.
	EventCompleted EventKind = iota
	// EventError reports that a job's child could not be launched, or an
	// irrecoverable I/O error occurred handling its capture files.
	EventError
)

// Event is the tagged state message workers send to the receiver.
type Event struct {
	Kind       EventKind
	ID         int
	Input      string // set when Kind == EventCompleted
	Diagnostic string // set when Kind == EventError
}
