package hangar

import "github.com/TheBitDrifter/bark"

// forEachArchetype is the shared engine behind every QueryN.ForEach: it
// plans the matching archetype list once, locks the registry for the
// duration of the walk, and drains the pass's own DeferredQueue
// afterward so any Add/Remove/Destroy requested mid-walk lands safely.
func forEachArchetype(w *World, ids []ComponentID, visit func(h Handle, set *archetypeSet, row int)) {
	archetypeIDs := w.registry.matchAll(ids)
	w.registry.lock()
	queue := newDeferredQueue()
	defer func() {
		w.registry.unlock()
		if err := queue.drain(w.registry); err != nil {
			panic(bark.AddTrace(err))
		}
	}()

	for _, aid := range archetypeIDs {
		set := w.registry.archetype(aid)
		for row := 0; row < set.Len(); row++ {
			e, err := set.entityAt(row)
			if err != nil {
				continue
			}
			h := Handle{id: e, archetypeID: aid, w: w, queue: queue}
			visit(h, set, row)
		}
	}
}

// Query0 visits every entity regardless of component set, handing the
// caller only a Handle — useful for system-wide sweeps (e.g. destroying
// everything tagged Dead).
//
// Grounded on the teacher's FactoryNewComponent/AccessibleComponent[T]
// plus the arity-capped generic-function convention from
// delaneyj-arche/ecs/generic.go (Add2…Add5); QueryN.ForEach is the
// direct Go rendering of spec.md's abstract Query<C...>::for_each(fn).
type Query0 struct{}

// NewQuery0 creates a Query0 bound to w (w is accepted for symmetry with
// the other arities, though Query0 resolves no component types).
func NewQuery0(w *World) Query0 { return Query0{} }

// ForEach visits every live entity.
func (q Query0) ForEach(w *World, fn func(h Handle)) {
	forEachArchetype(w, nil, func(h Handle, set *archetypeSet, row int) {
		fn(h)
	})
}

// Query1 visits every entity carrying A.
type Query1[A any] struct {
	a ComponentType[A]
}

// NewQuery1 resolves A's ComponentType against w.
func NewQuery1[A any](w *World) (Query1[A], error) {
	a, err := ComponentTypeFor[A](w)
	if err != nil {
		return Query1[A]{}, err
	}
	return Query1[A]{a: a}, nil
}

// ForEach visits every entity carrying A.
func (q Query1[A]) ForEach(w *World, fn func(h Handle, a *A)) {
	forEachArchetype(w, []ComponentID{q.a.ID()}, func(h Handle, set *archetypeSet, row int) {
		aPtr, err := set.columnPtr(q.a.id, row)
		if err != nil {
			return
		}
		fn(h, (*A)(aPtr))
	})
}

// Query2 visits every entity carrying both A and B.
type Query2[A, B any] struct {
	a ComponentType[A]
	b ComponentType[B]
}

// NewQuery2 resolves A and B's ComponentTypes against w.
func NewQuery2[A, B any](w *World) (Query2[A, B], error) {
	a, err := ComponentTypeFor[A](w)
	if err != nil {
		return Query2[A, B]{}, err
	}
	b, err := ComponentTypeFor[B](w)
	if err != nil {
		return Query2[A, B]{}, err
	}
	return Query2[A, B]{a: a, b: b}, nil
}

// ForEach visits every entity carrying A and B.
func (q Query2[A, B]) ForEach(w *World, fn func(h Handle, a *A, b *B)) {
	forEachArchetype(w, []ComponentID{q.a.ID(), q.b.ID()}, func(h Handle, set *archetypeSet, row int) {
		aPtr, err := set.columnPtr(q.a.id, row)
		if err != nil {
			return
		}
		bPtr, err := set.columnPtr(q.b.id, row)
		if err != nil {
			return
		}
		fn(h, (*A)(aPtr), (*B)(bPtr))
	})
}

// Query3 visits every entity carrying A, B, and C.
type Query3[A, B, C any] struct {
	a ComponentType[A]
	b ComponentType[B]
	c ComponentType[C]
}

// NewQuery3 resolves A, B, and C's ComponentTypes against w.
func NewQuery3[A, B, C any](w *World) (Query3[A, B, C], error) {
	a, err := ComponentTypeFor[A](w)
	if err != nil {
		return Query3[A, B, C]{}, err
	}
	b, err := ComponentTypeFor[B](w)
	if err != nil {
		return Query3[A, B, C]{}, err
	}
	c, err := ComponentTypeFor[C](w)
	if err != nil {
		return Query3[A, B, C]{}, err
	}
	return Query3[A, B, C]{a: a, b: b, c: c}, nil
}

// ForEach visits every entity carrying A, B, and C.
func (q Query3[A, B, C]) ForEach(w *World, fn func(h Handle, a *A, b *B, c *C)) {
	forEachArchetype(w, []ComponentID{q.a.ID(), q.b.ID(), q.c.ID()}, func(h Handle, set *archetypeSet, row int) {
		aPtr, err := set.columnPtr(q.a.id, row)
		if err != nil {
			return
		}
		bPtr, err := set.columnPtr(q.b.id, row)
		if err != nil {
			return
		}
		cPtr, err := set.columnPtr(q.c.id, row)
		if err != nil {
			return
		}
		fn(h, (*A)(aPtr), (*B)(bPtr), (*C)(cPtr))
	})
}

// Query4 visits every entity carrying A, B, C, and D.
type Query4[A, B, C, D any] struct {
	a ComponentType[A]
	b ComponentType[B]
	c ComponentType[C]
	d ComponentType[D]
}

// NewQuery4 resolves A, B, C, and D's ComponentTypes against w.
func NewQuery4[A, B, C, D any](w *World) (Query4[A, B, C, D], error) {
	a, err := ComponentTypeFor[A](w)
	if err != nil {
		return Query4[A, B, C, D]{}, err
	}
	b, err := ComponentTypeFor[B](w)
	if err != nil {
		return Query4[A, B, C, D]{}, err
	}
	c, err := ComponentTypeFor[C](w)
	if err != nil {
		return Query4[A, B, C, D]{}, err
	}
	d, err := ComponentTypeFor[D](w)
	if err != nil {
		return Query4[A, B, C, D]{}, err
	}
	return Query4[A, B, C, D]{a: a, b: b, c: c, d: d}, nil
}

// ForEach visits every entity carrying A, B, C, and D.
func (q Query4[A, B, C, D]) ForEach(w *World, fn func(h Handle, a *A, b *B, c *C, d *D)) {
	forEachArchetype(w, []ComponentID{q.a.ID(), q.b.ID(), q.c.ID(), q.d.ID()}, func(h Handle, set *archetypeSet, row int) {
		aPtr, err := set.columnPtr(q.a.id, row)
		if err != nil {
			return
		}
		bPtr, err := set.columnPtr(q.b.id, row)
		if err != nil {
			return
		}
		cPtr, err := set.columnPtr(q.c.id, row)
		if err != nil {
			return
		}
		dPtr, err := set.columnPtr(q.d.id, row)
		if err != nil {
			return
		}
		fn(h, (*A)(aPtr), (*B)(bPtr), (*C)(cPtr), (*D)(dPtr))
	})
}
