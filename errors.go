package hangar

import "fmt"

// UnknownComponentError is raised by the component registry when a caller
// asks for the id of a type key that was never registered.
type UnknownComponentError struct {
	TypeKey any
}

func (e UnknownComponentError) Error() string {
	return fmt.Sprintf("component not registered: %v", e.TypeKey)
}

// UnknownEntityError is raised when an operation references an entity that
// is not present in the registry's entity->archetype map.
type UnknownEntityError struct {
	Entity EntityID
}

func (e UnknownEntityError) Error() string {
	return fmt.Sprintf("unknown entity: %d", e.Entity)
}

// MissingComponentError is raised when a component is requested from an
// entity whose archetype does not carry it.
type MissingComponentError struct {
	Entity    EntityID
	Component ComponentID
}

func (e MissingComponentError) Error() string {
	return fmt.Sprintf("entity %d has no component %d", e.Entity, e.Component)
}

// OutOfRangeError is raised by a packed column when a row index is not
// within [0, len).
type OutOfRangeError struct {
	Row, Len int
}

func (e OutOfRangeError) Error() string {
	return fmt.Sprintf("row %d out of range (len %d)", e.Row, e.Len)
}

// IDExhaustedError is raised by an id generator whose counter has
// saturated its backing integer type.
type IDExhaustedError struct{}

func (e IDExhaustedError) Error() string {
	return "id generator exhausted"
}

// InvalidArgumentError is raised when a caller violates a precondition
// that does not fit any of the other error kinds, such as building a
// signature from an empty component list where one is required.
type InvalidArgumentError struct {
	Reason string
}

func (e InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument: %s", e.Reason)
}

// LockedRegistryError is raised when a structural mutation is attempted
// directly against a registry while a query holds it locked for iteration.
type LockedRegistryError struct{}

func (e LockedRegistryError) Error() string {
	return "registry is locked for iteration"
}

// UnknownSystemError is raised when GetSystem is called for a system
// type that was never added to the World.
type UnknownSystemError struct {
	TypeKey any
}

func (e UnknownSystemError) Error() string {
	return fmt.Sprintf("system not registered: %v", e.TypeKey)
}
