package hangar

import "reflect"

// ComponentType[T] is the handle-scoped accessor for one component type:
// it resolves T's stable ComponentID once via reflection and then offers
// direct pointer-level Get/Find plus Add/Remove/Deferred variants that
// route through a World's registry.
//
// Grounded on the teacher's componentaccessible.go/component_accessor.go
// (AccessibleComponent[T].GetFromEntity/Check): the same one-type-per-value
// generic wrapper, generalized so T's layout is discovered through
// reflection instead of a pre-built table.Accessor[T].
type ComponentType[T any] struct {
	id ComponentID
}

// ComponentTypeFor resolves the ComponentType for T against w, lazily
// registering T on first reference.
func ComponentTypeFor[T any](w *World) (ComponentType[T], error) {
	var zero T
	id, err := w.components.idOf(reflect.TypeOf(zero))
	if err != nil {
		return ComponentType[T]{}, err
	}
	return ComponentType[T]{id: id}, nil
}

// ID returns the resolved ComponentID. ComponentType[T] satisfies
// Component through this method.
func (c ComponentType[T]) ID() ComponentID { return c.id }

// Get returns a pointer to h's T value, failing with
// MissingComponentError if h's archetype does not carry T.
func (c ComponentType[T]) Get(h Handle) (*T, error) {
	set, err := h.w.registry.locate(h.id)
	if err != nil {
		return nil, err
	}
	row, err := set.rowOf(h.id)
	if err != nil {
		return nil, err
	}
	ptr, err := set.columnPtr(c.id, row)
	if err != nil {
		return nil, err
	}
	return (*T)(ptr), nil
}

// Find is the non-failing variant of Get.
func (c ComponentType[T]) Find(h Handle) (*T, bool) {
	v, err := c.Get(h)
	if err != nil {
		return nil, false
	}
	return v, true
}

// Has reports whether h's archetype carries T.
func (c ComponentType[T]) Has(h Handle) bool {
	set, err := h.w.registry.locate(h.id)
	if err != nil {
		return false
	}
	return set.signature.Contains(c.id)
}

// Add migrates h's entity to an archetype that also carries a
// zero-valued T, then returns a pointer into the new row. It fails with
// LockedRegistryError while a ForEach pass holds the registry locked;
// use DeferredAdd there instead.
func (c ComponentType[T]) Add(h Handle) (*T, error) {
	if err := h.w.registry.addComponent(h.id, c.id); err != nil {
		return nil, err
	}
	return c.Get(h)
}

// Remove migrates h's entity to an archetype without T.
func (c ComponentType[T]) Remove(h Handle) error {
	return h.w.registry.removeComponent(h.id, c.id)
}

// DeferredAdd enqueues the same effect as Add on h's own DeferredQueue,
// applied once the ForEach pass that yielded h finishes. It fails with
// InvalidArgumentError if h was not obtained from a ForEach pass.
func (c ComponentType[T]) DeferredAdd(h Handle) error {
	if h.queue == nil {
		return InvalidArgumentError{Reason: "DeferredAdd requires a handle from a ForEach pass"}
	}
	h.queue.AddComponent(h.id, c.id)
	return nil
}

// DeferredRemove enqueues the same effect as Remove on h's own
// DeferredQueue.
func (c ComponentType[T]) DeferredRemove(h Handle) error {
	if h.queue == nil {
		return InvalidArgumentError{Reason: "DeferredRemove requires a handle from a ForEach pass"}
	}
	h.queue.RemoveComponent(h.id, c.id)
	return nil
}
