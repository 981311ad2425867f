package hangar

import "iter"

// Cursor walks every entity across a fixed list of archetypes, archetype
// by archetype, exposing both a manual Next()-driven interface and an
// iter.Seq2 range form. It is the traversal engine behind DynamicQuery
// and can also be built directly from a pre-planned archetype id list.
//
// Grounded on the teacher's cursor.go: the same Next/advance/Initialize/
// Reset state machine, re-pointed at Registry-owned archetypeSets
// instead of table.Table.
type Cursor struct {
	registry     *Registry
	archetypeIDs []ArchetypeID

	archetypeIndex int
	entityIndex    int
	remaining      int
	initialized    bool
}

func newCursor(registry *Registry, archetypeIDs []ArchetypeID) *Cursor {
	return &Cursor{registry: registry, archetypeIDs: archetypeIDs}
}

// Initialize primes the cursor at its first archetype. Safe to call more
// than once.
func (c *Cursor) Initialize() {
	if c.initialized {
		return
	}
	if len(c.archetypeIDs) > 0 {
		c.remaining = c.registry.archetype(c.archetypeIDs[0]).Len()
	}
	c.initialized = true
}

// Next advances to the next entity, returning false once every matched
// archetype is exhausted.
func (c *Cursor) Next() bool {
	if !c.initialized {
		c.Initialize()
	}
	if c.entityIndex < c.remaining {
		c.entityIndex++
		return true
	}
	return c.advance()
}

func (c *Cursor) advance() bool {
	for c.archetypeIndex < len(c.archetypeIDs) {
		set := c.registry.archetype(c.archetypeIDs[c.archetypeIndex])
		c.remaining = set.Len()
		if c.entityIndex < c.remaining {
			c.entityIndex++
			return true
		}
		c.archetypeIndex++
		c.entityIndex = 0
	}
	c.Reset()
	return false
}

// Entities returns a row/entity iterator over every archetype this
// cursor was built from, independent of the Next()-driven position.
func (c *Cursor) Entities() iter.Seq2[int, EntityID] {
	return func(yield func(int, EntityID) bool) {
		for _, aid := range c.archetypeIDs {
			set := c.registry.archetype(aid)
			for row := 0; row < set.Len(); row++ {
				e, err := set.entityAt(row)
				if err != nil {
					return
				}
				if !yield(row, e) {
					return
				}
			}
		}
	}
}

// Reset clears the cursor's traversal position.
func (c *Cursor) Reset() {
	c.archetypeIndex = 0
	c.entityIndex = 0
	c.remaining = 0
	c.initialized = false
}

// CurrentEntity returns the entity at the cursor's current Next()
// position.
func (c *Cursor) CurrentEntity() (EntityID, error) {
	if c.archetypeIndex >= len(c.archetypeIDs) {
		return NoEntity, OutOfRangeError{Row: c.entityIndex - 1, Len: 0}
	}
	set := c.registry.archetype(c.archetypeIDs[c.archetypeIndex])
	return set.entityAt(c.entityIndex - 1)
}

// TotalMatched reports how many entities this cursor would visit in
// total, resetting its position afterward.
func (c *Cursor) TotalMatched() int {
	c.Initialize()
	total := 0
	for _, aid := range c.archetypeIDs {
		total += c.registry.archetype(aid).Len()
	}
	c.Reset()
	return total
}
