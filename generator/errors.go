package generator

import "errors"

// Sentinel errors wrapped by the provider clients. Callers match with
// errors.Is to decide between "fix your environment" and "the upstream
// service failed".
var (
	// ErrConfiguration marks failures caused by missing or unusable local
	// setup: absent API keys, empty model lists, nil clients.
	ErrConfiguration = errors.New("generator: configuration error")

	// ErrProvider marks failures of the remote model service itself:
	// transport errors, non-2xx responses, error payloads, empty output.
	ErrProvider = errors.New("generator: provider error")
)
