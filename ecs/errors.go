package ecs

import (
	"errors"
	"fmt"
)

// ErrConfig is the kind shared by every scene setup violation. Use errors.Is
// to test for it regardless of the specific violation.
var ErrConfig = errors.New("scene configuration error")

// Scene setup violations
var (
	ErrDuplicateEntity            = fmt.Errorf("%w: entity already added", ErrConfig)
	ErrDuplicateComponentType     = fmt.Errorf("%w: component type already registered", ErrConfig)
	ErrComponentTypeNotRegistered = fmt.Errorf("%w: component type not registered", ErrConfig)
	ErrEntityNotAdded             = fmt.Errorf("%w: entity must be added before setting its components", ErrConfig)
	ErrInvalidComponent           = fmt.Errorf("%w: invalid component", ErrConfig)
)

// ErrNotImplemented is returned by scene serialization.
var ErrNotImplemented = errors.New("not implemented")
