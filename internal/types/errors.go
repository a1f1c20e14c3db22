package types

import "errors"

// Error kinds for the pipeline. Every failure surfaced to the CLI
// wraps exactly one of these; classify with errors.Is.
var (
	// ErrConfiguration marks invalid or missing configuration.
	ErrConfiguration = errors.New("configuration error")

	// ErrInput marks a problem with user-supplied input, such as a
	// missing PDF or an empty question.
	ErrInput = errors.New("input error")

	// ErrProvider marks a failure talking to the LLM provider.
	ErrProvider = errors.New("provider error")

	// ErrStore marks a database failure.
	ErrStore = errors.New("store error")
)
