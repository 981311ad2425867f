package hangar

import "reflect"

// System is a per-frame behavior registered against a World. Update is
// invoked once per World.Update(dt) call, in registration order.
type System interface {
	Update(w *World, dt float64) error
}

type systemRegistry struct {
	order  []reflect.Type
	byType map[reflect.Type]System
}

func newSystemRegistry() systemRegistry {
	return systemRegistry{byType: make(map[reflect.Type]System)}
}

// World owns one ComponentRegistry, one Registry of archetypes, the
// entity id generator, and a systemRegistry; it is the entry point for
// creating, destroying, and looking up entities and for driving systems.
//
// Grounded on the teacher's storage.go (the storage type: schema +
// archetypes + operation queue), renamed to match this module's
// handle-centric surface; the package-level entity table storage.go
// kept as a global is folded into a World-owned idGenerator instead.
type World struct {
	components *ComponentRegistry
	registry   *Registry
	ids        idGenerator
	systems    systemRegistry
}

// NewWorld creates an empty World.
func NewWorld() *World {
	components := newComponentRegistry()
	return &World{
		components: components,
		registry:   newRegistry(components),
		systems:    newSystemRegistry(),
	}
}

// CreateEntity creates a single entity carrying the given components,
// zero-valued, and returns a Handle to it.
func (w *World) CreateEntity(components ...Component) (Handle, error) {
	handles, err := w.CreateEntities(1, components...)
	if err != nil {
		return Handle{}, err
	}
	return handles[0], nil
}

// CreateEntities creates n entities sharing the same initial component
// set. The signature is built once, but each entity is inserted on its
// own, so the archetype lookup runs once per entity. Supplements the teacher's Storage.NewEntities(n, ...Component), which
// has no equivalent spelled out in spec.md's singular create_entity.
func (w *World) CreateEntities(n int, components ...Component) ([]Handle, error) {
	if n <= 0 {
		return nil, InvalidArgumentError{Reason: "entity count must be positive"}
	}
	ids := make([]ComponentID, len(components))
	for i, c := range components {
		ids[i] = c.ID()
	}
	sig := NewSignature(ids...)

	handles := make([]Handle, n)
	for i := 0; i < n; i++ {
		id, err := w.ids.generate()
		if err != nil {
			return nil, err
		}
		set, _, err := w.registry.insert(id, sig)
		if err != nil {
			return nil, err
		}
		handles[i] = Handle{id: id, archetypeID: set.id, w: w}
	}
	return handles, nil
}

// DestroyEntity removes h's entity immediately. Fails with
// LockedRegistryError while a ForEach pass holds the World locked; route
// through Handle.Destroy (which defers automatically) from inside one.
func (w *World) DestroyEntity(h Handle) error {
	return w.registry.destroy(h.id)
}

// DestroyEntities removes every handle in hs, stopping at the first
// error.
func (w *World) DestroyEntities(hs ...Handle) error {
	for _, h := range hs {
		if err := w.registry.destroy(h.id); err != nil {
			return err
		}
	}
	return nil
}

// Handle resolves id to a Handle bound to this World, failing with
// UnknownEntityError if id is not (or is no longer) live.
func (w *World) Handle(id EntityID) (Handle, error) {
	set, err := w.registry.locate(id)
	if err != nil {
		return Handle{}, err
	}
	return Handle{id: id, archetypeID: set.id, w: w}, nil
}

// ArchetypeCount reports how many distinct archetypes this World has
// created.
func (w *World) ArchetypeCount() int { return w.registry.ArchetypeCount() }

// EntityCount reports how many live entities this World tracks.
func (w *World) EntityCount() int { return w.registry.EntityCount() }

// AddSystem registers s, keyed by its concrete type. Adding a system of
// a type already present replaces it in place without changing its
// position in the update order.
func AddSystem[S System](w *World, s S) {
	t := reflect.TypeOf(s)
	if _, exists := w.systems.byType[t]; !exists {
		w.systems.order = append(w.systems.order, t)
	}
	w.systems.byType[t] = s
}

// GetSystem returns the registered system of type S, failing with
// UnknownSystemError if none was added.
func GetSystem[S System](w *World) (S, error) {
	var zero S
	t := reflect.TypeOf(zero)
	v, ok := w.systems.byType[t]
	if !ok {
		return zero, UnknownSystemError{TypeKey: t}
	}
	return v.(S), nil
}

// FindSystem is the non-failing variant of GetSystem.
func FindSystem[S System](w *World) (S, bool) {
	var zero S
	t := reflect.TypeOf(zero)
	v, ok := w.systems.byType[t]
	if !ok {
		return zero, false
	}
	return v.(S), true
}

// RemoveSystem unregisters the system of type S, if present.
func RemoveSystem[S System](w *World) {
	var zero S
	t := reflect.TypeOf(zero)
	if _, ok := w.systems.byType[t]; !ok {
		return
	}
	delete(w.systems.byType, t)
	for i, ot := range w.systems.order {
		if ot == t {
			w.systems.order = append(w.systems.order[:i], w.systems.order[i+1:]...)
			break
		}
	}
}

// Update invokes every registered system's Update(w, dt) in registration
// order, stopping at the first error.
func (w *World) Update(dt float64) error {
	for _, t := range w.systems.order {
		if err := w.systems.byType[t].Update(w, dt); err != nil {
			return err
		}
	}
	return nil
}

// Reset clears the component registry and archetype registry, restarts
// the entity id generator, and drops every registered system. Any
// previously issued Handle or ComponentType is invalid afterward.
func (w *World) Reset() {
	w.components.reset()
	w.registry = newRegistry(w.components)
	w.ids.reset()
	w.systems = newSystemRegistry()
}
