package canbus

import "github.com/pkg/errors"

var (
	// ErrInitialization indicates the controller could not be wired to its
	// collaborators or configuration. Fatal to the controller instance;
	// never retried internally.
	ErrInitialization = errors.New("controller initialization failed")

	// ErrModeTransition indicates a mode enable was not acknowledged by
	// the vehicle. The controller downgrades to Emergency before this
	// surfaces to the caller.
	ErrModeTransition = errors.New("driving mode transition rejected by vehicle")
)
