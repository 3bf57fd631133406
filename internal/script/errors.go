package script

import "errors"

// Errors returned by script compilation and execution.
var (
	// ErrNotFunction indicates a script chunk that did not return a
	// Lua function.
	ErrNotFunction = errors.New("script must return a function")

	// ErrBadValue indicates a Lua value with no state representation,
	// such as a function, userdata, or a table with a cycle.
	ErrBadValue = errors.New("value not representable as state")

	// ErrClosed indicates use of an updater after its engine was closed.
	ErrClosed = errors.New("script engine is closed")
)
