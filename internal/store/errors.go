package store

import (
	"errors"

	"github.com/dshills/pathstore/internal/store/merge"
	"github.com/dshills/pathstore/internal/store/path"
)

// Errors returned by container and registry operations.
var (
	// ErrEmptyKey indicates container creation with an empty key.
	ErrEmptyKey = errors.New("container key is empty")

	// ErrDuplicateKey indicates container creation under a key the
	// registry already holds.
	ErrDuplicateKey = errors.New("duplicate container key")

	// ErrContainerNotFound indicates a registry lookup for an unknown key.
	ErrContainerNotFound = errors.New("container not found")

	// ErrInvalidSelector indicates a selector that is not a structure.
	ErrInvalidSelector = path.ErrInvalidSelector

	// ErrUnsupportedOperation indicates selective subscription against
	// a container whose state is a primitive; selective dispatch
	// requires an addressable shape.
	ErrUnsupportedOperation = errors.New("operation requires structured state")

	// ErrShapeMismatch indicates a partial update structurally
	// incompatible with the current state.
	ErrShapeMismatch = merge.ErrShapeMismatch
)
