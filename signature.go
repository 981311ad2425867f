package hangar

import "github.com/TheBitDrifter/mask"

// Signature is the ordered set of ComponentIDs that defines an archetype.
// Equality is set-equality and the hash is order-independent: both
// properties come for free from mask.Mask, a fixed-width bitset that is
// comparable (and so usable directly as a map key, exactly as the teacher
// keys its archetype-by-signature map on a bare mask.Mask).
//
// members caches the ascending component list for canonical iteration
// (column construction order, migration copies) since mask.Mask's own
// bit-enumeration surface isn't part of the observed API.
type Signature struct {
	bits    mask.Mask
	members []ComponentID
}

// NewSignature builds a Signature from an arbitrary (possibly empty) list
// of component ids; duplicates are ignored. An empty signature is legal —
// it is the signature of an entity with no components.
func NewSignature(ids ...ComponentID) Signature {
	var sig Signature
	for _, id := range ids {
		sig.insert(id)
	}
	return sig
}

// RequireSignature is like NewSignature but fails with
// InvalidArgumentError when ids is empty, for callers that need at least
// one component. Nothing inside this package calls it.
func RequireSignature(ids ...ComponentID) (Signature, error) {
	if len(ids) == 0 {
		return Signature{}, InvalidArgumentError{Reason: "signature requires at least one component id"}
	}
	return NewSignature(ids...), nil
}

func (s *Signature) insert(id ComponentID) {
	if s.Contains(id) {
		return
	}
	s.bits.Mark(uint32(id))
	// keep members sorted ascending
	i := 0
	for i < len(s.members) && s.members[i] < id {
		i++
	}
	s.members = append(s.members, 0)
	copy(s.members[i+1:], s.members[i:])
	s.members[i] = id
}

func (s *Signature) remove(id ComponentID) {
	if !s.Contains(id) {
		return
	}
	s.bits.Unmark(uint32(id))
	for i, m := range s.members {
		if m == id {
			s.members = append(s.members[:i], s.members[i+1:]...)
			break
		}
	}
}

// Contains reports whether id is a member of the signature.
func (s Signature) Contains(id ComponentID) bool {
	var probe mask.Mask
	probe.Mark(uint32(id))
	return s.bits.ContainsAll(probe)
}

// Len returns the number of member components.
func (s Signature) Len() int { return len(s.members) }

// Components returns the member ids in ascending (canonical) order. The
// returned slice must not be mutated by the caller.
func (s Signature) Components() []ComponentID { return s.members }

// ContainsAll reports whether every member of other is also a member of s.
func (s Signature) ContainsAll(other Signature) bool {
	return s.bits.ContainsAll(other.bits)
}

// ContainsAny reports whether at least one member of other is a member of s.
func (s Signature) ContainsAny(other Signature) bool {
	return s.bits.ContainsAny(other.bits)
}

// ContainsNone reports whether no member of other is a member of s.
func (s Signature) ContainsNone(other Signature) bool {
	return s.bits.ContainsNone(other.bits)
}

// withAdded returns a new signature equal to s plus id. s is left
// unmodified.
func (s Signature) withAdded(id ComponentID) Signature {
	next := s
	next.members = append([]ComponentID(nil), s.members...)
	next.insert(id)
	return next
}

// withRemoved returns a new signature equal to s minus id. s is left
// unmodified.
func (s Signature) withRemoved(id ComponentID) Signature {
	next := s
	next.members = append([]ComponentID(nil), s.members...)
	next.remove(id)
	return next
}

// key returns the comparable bitset used as the registry's
// signature->archetype-id map key.
func (s Signature) key() mask.Mask { return s.bits }
