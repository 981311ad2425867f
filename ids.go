package hangar

import "math"

// EntityID is an opaque, monotonically increasing identifier for a
// simulation object. The zero value, NoEntity, denotes "no entity" and is
// never handed out by an id generator.
type EntityID uint64

// NoEntity is the reserved sentinel entity id.
const NoEntity EntityID = 0

// ComponentID is the dense, registry-assigned serial for a component type.
// It doubles as the bit index into a Signature's backing mask.Mask, so the
// number of distinct component types a single World can register is bounded
// by that mask's width (see maxComponents).
type ComponentID uint16

// ArchetypeID is a dense, append-only archetype number. The registry issues
// them from 1 upward and keys its archetype sets by them in a map; an id is
// not a position in a slice. Ids are never reused, so one stays
// dereferenceable for the life of the registry that issued it.
type ArchetypeID uint32

// idGenerator hands out unique, never-reused ids, grounded on the
// original ecs::IDGenerator<IDType> (single counter, saturate-to-error).
type idGenerator struct {
	next EntityID
}

func (g *idGenerator) generate() (EntityID, error) {
	if g.next == math.MaxUint64 {
		return NoEntity, IDExhaustedError{}
	}
	g.next++
	return g.next, nil
}

func (g *idGenerator) reset() {
	g.next = 0
}
