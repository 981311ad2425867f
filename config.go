package hangar

// Config holds the process-wide lifecycle hook table every World
// consults as entities and archetypes come and go. All hooks are
// optional; a nil hook is simply skipped.
//
// Adapted from the teacher's config.go (package-level Config value,
// Config.SetTableEvents) — same shape, re-pointed at archetype/entity
// lifecycle events since this module has no table.TableEvents to wrap.
var Config config = config{}

// Events is the set of structural-change callbacks a caller may install
// through Config.SetEvents.
type Events struct {
	// OnArchetypeCreated fires the first time a signature is seen.
	OnArchetypeCreated func(ArchetypeID, Signature)
	// OnEntityMigrated fires whenever an entity's component set changes
	// and it moves from one archetype to another.
	OnEntityMigrated func(entity EntityID, from, to ArchetypeID)
	// OnEntityDestroyed fires once an entity has been fully removed.
	OnEntityDestroyed func(EntityID)
}

type config struct {
	events Events
}

// SetEvents installs the hook table used by every World from this point
// forward. Passing a zero Events clears all hooks.
func (c *config) SetEvents(e Events) {
	c.events = e
}
