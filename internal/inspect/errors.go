package inspect

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a name that matches nothing in the registry.
var ErrNotFound = errors.New("no such element or plugin")

// LoadError wraps a feature whose plugin could not be loaded into a usable
// factory.
type LoadError struct {
	Feature string
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("couldn't load feature '%s': %v", e.Feature, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ConstructError wraps a factory that loaded but failed to instantiate an
// element.
type ConstructError struct {
	Factory string
	Err     error
}

func (e *ConstructError) Error() string {
	return fmt.Sprintf("couldn't construct element '%s': %v", e.Factory, e.Err)
}

func (e *ConstructError) Unwrap() error { return e.Err }
