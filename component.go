package hangar

import "reflect"

// maxComponents bounds how many distinct component types a single World
// can register. It mirrors the bit width this spec assumes for
// mask.Mask (see DESIGN.md's Open Question on the mask's exact width).
const maxComponents = 256

// Component is anything that can be passed where a component type is
// expected: a resolved, registry-backed handle carrying its own id.
// ComponentType[T] is the only implementation; it is produced by
// ComponentTypeFor, which registers T with the default column capacity.
// There is no exported way to register a type with another capacity hint.
type Component interface {
	ID() ComponentID
}

// descriptor is the per-component-type metadata the registry keeps: the
// stable type key, the element layout, and the column's initial capacity
// hint.
type descriptor struct {
	typeKey  reflect.Type
	size     uintptr
	align    uintptr
	initCap  int
	id       ComponentID
}

// ComponentRegistry assigns a dense ComponentID to every distinct
// component type on first reference and never rewrites that mapping.
type ComponentRegistry struct {
	byType []descriptor
	index  map[reflect.Type]ComponentID
}

func newComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		index: make(map[reflect.Type]ComponentID),
	}
}

const defaultColumnCapacity = 8

// idOf returns the stable id for typeKey, registering it with the default
// capacity hint on first reference. Idempotent.
func (r *ComponentRegistry) idOf(typeKey reflect.Type) (ComponentID, error) {
	if id, ok := r.index[typeKey]; ok {
		return id, nil
	}
	return r.register(typeKey, defaultColumnCapacity)
}

// idOfRegistered returns the id for typeKey, failing with
// UnknownComponentError if it was never registered.
func (r *ComponentRegistry) idOfRegistered(typeKey reflect.Type) (ComponentID, error) {
	id, ok := r.index[typeKey]
	if !ok {
		return 0, UnknownComponentError{TypeKey: typeKey}
	}
	return id, nil
}

// register assigns a fresh id to typeKey with the given initial column
// capacity hint. It is a no-op (returning the existing id) if typeKey is
// already registered, matching the lazy-registration contract: the serial
// id, once assigned, is never rewritten.
func (r *ComponentRegistry) register(typeKey reflect.Type, initialCapacity int) (ComponentID, error) {
	if id, ok := r.index[typeKey]; ok {
		return id, nil
	}
	if len(r.byType) >= maxComponents {
		return 0, InvalidArgumentError{Reason: "component registry at capacity"}
	}
	if initialCapacity <= 0 {
		initialCapacity = defaultColumnCapacity
	}
	id := ComponentID(len(r.byType))
	r.byType = append(r.byType, descriptor{
		typeKey: typeKey,
		size:    typeKey.Size(),
		align:   uintptr(typeKey.Align()),
		initCap: initialCapacity,
		id:      id,
	})
	r.index[typeKey] = id
	return id, nil
}

// descriptorOf returns the full descriptor for id, failing with
// UnknownComponentError if id was never assigned.
func (r *ComponentRegistry) descriptorOf(id ComponentID) (descriptor, error) {
	if int(id) >= len(r.byType) {
		return descriptor{}, UnknownComponentError{TypeKey: id}
	}
	return r.byType[id], nil
}

// reset clears all registered component types. Legal only when no
// archetype set still references these ids; the caller (World.Reset)
// is responsible for dropping archetypes first.
func (r *ComponentRegistry) reset() {
	r.byType = nil
	r.index = make(map[reflect.Type]ComponentID)
}
