package engine

import "errors"

// Namespace tags errors originating from the engine package.
const Namespace = "engine"

var (
	// ErrNoInputs is returned by Run when the input list is empty.
	ErrNoInputs = errors.New(Namespace + ": no inputs to process")

	// ErrInvalidWorkerCount is returned when Config.Workers is zero or negative.
	ErrInvalidWorkerCount = errors.New(Namespace + ": worker count must be at least 1")
)
