package hangar

import (
	"sort"
	"strconv"
	"strings"

	"github.com/TheBitDrifter/mask"
)

// Registry owns every archetype set for one World: it creates archetypes
// on demand, keeps the inverted component->archetype index the typed
// queries plan against, and performs the copy/swap-remove dance that
// migrates an entity from one archetype to another when its component
// set changes.
//
// Grounded on the teacher's storage.go (archetypes/idsGroupedByMask) for
// the lazy by-signature lookup, and on original_source/ecs-core's
// ArchetypesRegistry (m_componentToArchetypeSetMap, MoveEntity) for the
// inverted index and the migration ordering.
type Registry struct {
	components *ComponentRegistry

	nextArchetypeID ArchetypeID
	bySignature     map[mask.Mask]ArchetypeID
	archetypes      map[ArchetypeID]*archetypeSet

	// componentIndex maps each component id to the archetype ids whose
	// signature contains it, so a typed query intersects buckets instead
	// of scanning every archetype.
	componentIndex map[ComponentID]map[ArchetypeID]struct{}

	// locationOf tracks which archetype currently holds each live entity.
	locationOf map[EntityID]ArchetypeID

	planCache *Cache[[]ArchetypeID]
	lockDepth int
}

func newRegistry(components *ComponentRegistry) *Registry {
	return &Registry{
		components:     components,
		bySignature:    make(map[mask.Mask]ArchetypeID),
		archetypes:     make(map[ArchetypeID]*archetypeSet),
		componentIndex: make(map[ComponentID]map[ArchetypeID]struct{}),
		locationOf:     make(map[EntityID]ArchetypeID),
		planCache:      newCache[[]ArchetypeID](4096),
	}
}

// archetypeFor returns the archetype set for sig, creating it (and
// indexing it under every member component) on first reference.
func (r *Registry) archetypeFor(sig Signature) (*archetypeSet, error) {
	key := sig.key()
	if id, ok := r.bySignature[key]; ok {
		return r.archetypes[id], nil
	}

	r.nextArchetypeID++
	id := r.nextArchetypeID
	set, err := newArchetypeSet(id, sig, r.components)
	if err != nil {
		r.nextArchetypeID--
		return nil, err
	}

	r.archetypes[id] = set
	r.bySignature[key] = id
	for _, cid := range sig.Components() {
		bucket, ok := r.componentIndex[cid]
		if !ok {
			bucket = make(map[ArchetypeID]struct{})
			r.componentIndex[cid] = bucket
		}
		bucket[id] = struct{}{}
	}
	r.planCache.Clear()

	if Config.events.OnArchetypeCreated != nil {
		Config.events.OnArchetypeCreated(id, sig)
	}
	return set, nil
}

// insert adds a freshly generated entity to the archetype matching sig,
// recording its location, and returns the set and row it landed on.
func (r *Registry) insert(e EntityID, sig Signature) (*archetypeSet, int, error) {
	set, err := r.archetypeFor(sig)
	if err != nil {
		return nil, 0, err
	}
	row := set.addEntity(e)
	r.locationOf[e] = set.id
	return set, row, nil
}

// exists reports whether e is currently tracked by this registry.
func (r *Registry) exists(e EntityID) bool {
	_, ok := r.locationOf[e]
	return ok
}

// locate returns the archetype set currently holding e.
func (r *Registry) locate(e EntityID) (*archetypeSet, error) {
	id, ok := r.locationOf[e]
	if !ok {
		return nil, UnknownEntityError{Entity: e}
	}
	return r.archetypes[id], nil
}

// migrate moves e from its current archetype to the one matching newSig:
// find-or-create the destination, reserve e's row there, copy every
// shared component's bytes across, remove e from the origin (swap-remove
// reindexing whatever entity took its row), then repoint the location
// index. Structural mutation is refused while the registry is locked for
// iteration — callers route through a DeferredQueue in that case.
func (r *Registry) migrate(e EntityID, newSig Signature) error {
	if r.locked() {
		return LockedRegistryError{}
	}
	origin, err := r.locate(e)
	if err != nil {
		return err
	}
	if origin.signature.key() == newSig.key() {
		return nil
	}
	dest, err := r.archetypeFor(newSig)
	if err != nil {
		return err
	}

	dest.addEntity(e)
	if err := origin.copyRowTo(e, dest); err != nil {
		return err
	}
	if err := origin.removeEntity(e); err != nil {
		return err
	}
	r.locationOf[e] = dest.id

	if Config.events.OnEntityMigrated != nil {
		Config.events.OnEntityMigrated(e, origin.id, dest.id)
	}
	return nil
}

// addComponent migrates e to the archetype with cid added, a no-op if e
// already carries cid.
func (r *Registry) addComponent(e EntityID, cid ComponentID) error {
	origin, err := r.locate(e)
	if err != nil {
		return err
	}
	if origin.signature.Contains(cid) {
		return nil
	}
	return r.migrate(e, origin.signature.withAdded(cid))
}

// removeComponent migrates e to the archetype with cid removed, a no-op
// if e does not carry cid.
func (r *Registry) removeComponent(e EntityID, cid ComponentID) error {
	origin, err := r.locate(e)
	if err != nil {
		return err
	}
	if !origin.signature.Contains(cid) {
		return nil
	}
	return r.migrate(e, origin.signature.withRemoved(cid))
}

// destroy removes e from its archetype and drops its location entry.
func (r *Registry) destroy(e EntityID) error {
	if r.locked() {
		return LockedRegistryError{}
	}
	set, err := r.locate(e)
	if err != nil {
		return err
	}
	if err := set.removeEntity(e); err != nil {
		return err
	}
	delete(r.locationOf, e)

	if Config.events.OnEntityDestroyed != nil {
		Config.events.OnEntityDestroyed(e)
	}
	return nil
}

// lock marks the registry as mid-iteration: structural mutation must be
// routed through a DeferredQueue until unlock. Locks nest.
func (r *Registry) lock() { r.lockDepth++ }

// unlock releases one level of iteration lock.
func (r *Registry) unlock() {
	if r.lockDepth > 0 {
		r.lockDepth--
	}
}

func (r *Registry) locked() bool { return r.lockDepth > 0 }

// matchAll returns the ids of every archetype whose signature is a
// superset of ids, planned by intersecting the inverted component index
// starting from its smallest bucket, and memoized in planCache until the
// next archetype is registered. An empty ids matches every archetype.
func (r *Registry) matchAll(ids []ComponentID) []ArchetypeID {
	if len(ids) == 0 {
		return r.allArchetypeIDs()
	}

	sorted := append([]ComponentID(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	key := planKey(sorted)
	if cached, ok := r.planCache.Get(key); ok {
		return cached
	}

	var smallest map[ArchetypeID]struct{}
	for _, cid := range sorted {
		bucket := r.componentIndex[cid]
		if bucket == nil {
			r.planCache.Put(key, nil)
			return nil
		}
		if smallest == nil || len(bucket) < len(smallest) {
			smallest = bucket
		}
	}

	result := make([]ArchetypeID, 0, len(smallest))
	for id := range smallest {
		set := r.archetypes[id]
		matches := true
		for _, cid := range sorted {
			if !set.signature.Contains(cid) {
				matches = false
				break
			}
		}
		if matches {
			result = append(result, id)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })

	r.planCache.Put(key, result)
	return result
}

// allArchetypeIDs returns every registered archetype id, ascending.
func (r *Registry) allArchetypeIDs() []ArchetypeID {
	ids := make([]ArchetypeID, 0, len(r.archetypes))
	for id := range r.archetypes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// archetype returns the set for id, or nil if id is not registered.
func (r *Registry) archetype(id ArchetypeID) *archetypeSet { return r.archetypes[id] }

// ArchetypeCount reports how many distinct archetypes exist.
func (r *Registry) ArchetypeCount() int { return len(r.archetypes) }

// EntityCount reports how many live entities this registry tracks.
func (r *Registry) EntityCount() int { return len(r.locationOf) }

func planKey(sortedIDs []ComponentID) string {
	parts := make([]string, len(sortedIDs))
	for i, id := range sortedIDs {
		parts[i] = strconv.Itoa(int(id))
	}
	return strings.Join(parts, ",")
}
