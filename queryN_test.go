package hangar

import "testing"

// Scenario 3 (spec.md §8): deferred component adds requested while
// iterating a query must not be visited within the same pass, and must
// all have landed once the pass completes.
func TestDeferredAddComponentDuringIteration(t *testing.T) {
	w := NewWorld()
	pos := mustComponent[Pos](t, w)
	vel := mustComponent[Vel](t, w)

	const n = 5
	for i := 0; i < n; i++ {
		if _, err := w.CreateEntity(pos); err != nil {
			t.Fatal(err)
		}
	}

	q1, err := NewQuery1[Pos](w)
	if err != nil {
		t.Fatal(err)
	}

	visited := 0
	q1.ForEach(w, func(h Handle, p *Pos) {
		visited++
		if err := vel.DeferredAdd(h); err != nil {
			t.Errorf("DeferredAdd: %v", err)
		}
	})

	if visited != n {
		t.Errorf("visited %d entities in the pass, want %d (no entity visited twice, no re-entry into moved rows)", visited, n)
	}

	q2, err := NewQuery2[Pos, Vel](w)
	if err != nil {
		t.Fatal(err)
	}
	var withVel int
	q2.ForEach(w, func(h Handle, p *Pos, v *Vel) { withVel++ })
	if withVel != n {
		t.Errorf("after drain, %d entities carry Vel, want %d", withVel, n)
	}
}

func TestDeferredRemoveComponentDuringIteration(t *testing.T) {
	w := NewWorld()
	pos := mustComponent[Pos](t, w)
	vel := mustComponent[Vel](t, w)

	if _, err := w.CreateEntity(pos, vel); err != nil {
		t.Fatal(err)
	}
	if _, err := w.CreateEntity(pos, vel); err != nil {
		t.Fatal(err)
	}

	q2, err := NewQuery2[Pos, Vel](w)
	if err != nil {
		t.Fatal(err)
	}
	q2.ForEach(w, func(h Handle, p *Pos, v *Vel) {
		if err := vel.DeferredRemove(h); err != nil {
			t.Errorf("DeferredRemove: %v", err)
		}
	})

	q1, err := NewQuery1[Vel](w)
	if err != nil {
		t.Fatal(err)
	}
	var remaining int
	q1.ForEach(w, func(h Handle, v *Vel) { remaining++ })
	if remaining != 0 {
		t.Errorf("%d entities still carry Vel after deferred removal, want 0", remaining)
	}
}

func TestDeferredDestroyDuringIteration(t *testing.T) {
	w := NewWorld()
	pos := mustComponent[Pos](t, w)

	for i := 0; i < 3; i++ {
		if _, err := w.CreateEntity(pos); err != nil {
			t.Fatal(err)
		}
	}

	q1, err := NewQuery1[Pos](w)
	if err != nil {
		t.Fatal(err)
	}
	q1.ForEach(w, func(h Handle, p *Pos) {
		if err := h.Destroy(); err != nil {
			t.Errorf("Destroy: %v", err)
		}
	})

	if w.EntityCount() != 0 {
		t.Errorf("EntityCount after destroying every entity via deferred pass = %d, want 0", w.EntityCount())
	}
}

func TestQuery0VisitsEveryEntity(t *testing.T) {
	w := NewWorld()
	pos := mustComponent[Pos](t, w)
	vel := mustComponent[Vel](t, w)

	if _, err := w.CreateEntity(pos); err != nil {
		t.Fatal(err)
	}
	if _, err := w.CreateEntity(vel); err != nil {
		t.Fatal(err)
	}
	if _, err := w.CreateEntity(); err != nil {
		t.Fatal(err)
	}

	q0 := NewQuery0(w)
	var count int
	q0.ForEach(w, func(h Handle) { count++ })
	if count != 3 {
		t.Errorf("Query0 visited %d entities, want 3", count)
	}
}

func TestDynamicQueryAnd(t *testing.T) {
	w := NewWorld()
	pos := mustComponent[Pos](t, w)
	vel := mustComponent[Vel](t, w)
	rot := mustComponent[Rot](t, w)

	if _, err := w.CreateEntity(pos); err != nil {
		t.Fatal(err)
	}
	if _, err := w.CreateEntity(pos, vel); err != nil {
		t.Fatal(err)
	}
	if _, err := w.CreateEntity(pos, rot); err != nil {
		t.Fatal(err)
	}

	dq := NewDynamicQuery(w)
	dq.And(pos, vel)

	cursor := dq.Cursor()
	if got := cursor.TotalMatched(); got != 1 {
		t.Errorf("And(Pos, Vel) matched %d entities, want 1", got)
	}
}

func TestDynamicQueryOr(t *testing.T) {
	w := NewWorld()
	pos := mustComponent[Pos](t, w)
	vel := mustComponent[Vel](t, w)
	rot := mustComponent[Rot](t, w)

	if _, err := w.CreateEntity(pos); err != nil {
		t.Fatal(err)
	}
	if _, err := w.CreateEntity(vel); err != nil {
		t.Fatal(err)
	}
	if _, err := w.CreateEntity(rot); err != nil {
		t.Fatal(err)
	}

	dq := NewDynamicQuery(w)
	dq.Or(pos, vel)

	cursor := dq.Cursor()
	if got := cursor.TotalMatched(); got != 2 {
		t.Errorf("Or(Pos, Vel) matched %d entities, want 2", got)
	}
}

func TestDynamicQueryNot(t *testing.T) {
	w := NewWorld()
	pos := mustComponent[Pos](t, w)
	rot := mustComponent[Rot](t, w)

	if _, err := w.CreateEntity(pos); err != nil {
		t.Fatal(err)
	}
	if _, err := w.CreateEntity(pos, rot); err != nil {
		t.Fatal(err)
	}

	dq := NewDynamicQuery(w)
	dq.Not(rot)

	cursor := dq.Cursor()
	if got := cursor.TotalMatched(); got != 1 {
		t.Errorf("Not(Rot) matched %d entities, want 1", got)
	}
}
