/*
Package hangar is an archetype-based Entity-Component-System storage engine.

Hangar keeps entities that share the same component set packed together in a
single archetype, one contiguous column per component, so that a query over a
component subset walks contiguous memory instead of chasing pointers.

Core Concepts:

  - Entity: an opaque, never-reused identifier for a simulation object.
  - Component: a plain-data type attached to entities.
  - Archetype: the storage class shared by every entity with an identical
    component set.
  - Query: a walk over every entity whose archetype contains a given
    component subset.

Basic Usage:

	world := hangar.NewWorld()

	position, _ := hangar.ComponentTypeFor[Position](world)
	velocity, _ := hangar.ComponentTypeFor[Velocity](world)

	entities, _ := world.CreateEntities(100, position, velocity)

	query, _ := hangar.NewQuery2[Position, Velocity](world)
	query.ForEach(world, func(h hangar.Handle, pos *Position, vel *Velocity) {
		pos.X += vel.X
		pos.Y += vel.Y
	})

Structural changes requested while a query is iterating (add/remove
component, destroy) must go through the deferred API
(ComponentType.DeferredAdd / ComponentType.DeferredRemove, and
Handle.Destroy on a handle yielded by the query) — they are queued and
applied once the walk completes, since an immediate mutation would
invalidate the very columns being scanned.

Hangar has no wire protocol, no persistence, and no rendering; those are
left to whatever owns the simulation loop.
*/
package hangar
