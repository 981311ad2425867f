package hangar

import (
	"sort"
	"strings"
)

// Handle is a lightweight reference to one entity inside a specific
// World. It carries no component data itself — every accessor call goes
// back through the World's registry to find the entity's current
// archetype and row, so a Handle stays valid across migrations.
//
// Grounded on the teacher's entity.go (the Entity interface/struct) and,
// for the bare-id-plus-store-pointer shape, on
// original_source/ecs-core/include/Core/Entity.h's EntityHandle.
type Handle struct {
	id EntityID
	// archetypeID is cached from the moment the handle was resolved; it
	// is informational only (e.g. for logging) and is never trusted for
	// correctness, since a migration can move the entity at any time.
	archetypeID ArchetypeID
	w           *World
	// queue is non-nil only for handles yielded from inside a ForEach
	// pass; it routes DeferredAdd/DeferredRemove/Destroy to the pass's
	// own DeferredQueue instead of mutating the locked registry directly.
	queue *DeferredQueue
}

// ID returns the entity id this handle refers to.
func (h Handle) ID() EntityID { return h.id }

// World returns the World that owns this handle's entity.
func (h Handle) World() *World { return h.w }

// Valid reports whether this handle still refers to a live entity.
func (h Handle) Valid() bool {
	if h.w == nil {
		return false
	}
	return h.w.registry.exists(h.id)
}

// Signature returns the component signature of h's current archetype.
func (h Handle) Signature() (Signature, error) {
	set, err := h.w.registry.locate(h.id)
	if err != nil {
		return Signature{}, err
	}
	return set.signature, nil
}

// DebugComponents returns a sorted, human-readable listing of h's
// current component type names, e.g. "[Position, Velocity]". Mirrors
// the teacher's entity.go ComponentsAsString, used the same way in
// tests and log lines.
func (h Handle) DebugComponents() string {
	set, err := h.w.registry.locate(h.id)
	if err != nil || len(set.signature.Components()) == 0 {
		return "[]"
	}
	members := set.signature.Components()
	names := make([]string, 0, len(members))
	for _, cid := range members {
		desc, err := h.w.components.descriptorOf(cid)
		if err != nil {
			continue
		}
		names = append(names, desc.typeKey.Name())
	}
	sort.Strings(names)
	return "[" + strings.Join(names, ", ") + "]"
}

// Destroy removes h's entity. If h was yielded from inside a ForEach
// pass, the destruction is deferred to the end of that pass; otherwise
// it happens immediately.
func (h Handle) Destroy() error {
	if h.queue != nil {
		h.queue.DestroyEntity(h.id)
		return nil
	}
	return h.w.registry.destroy(h.id)
}
