package hangar

import "testing"

// Migration must preserve the bytes of every component common to both the
// origin and destination archetypes (spec.md §4.5 step 3).
func TestMigrationPreservesCommonComponentData(t *testing.T) {
	w := NewWorld()
	pos := mustComponent[Pos](t, w)
	vel := mustComponent[Vel](t, w)

	h, err := w.CreateEntity(pos)
	if err != nil {
		t.Fatal(err)
	}
	p, err := pos.Get(h)
	if err != nil {
		t.Fatal(err)
	}
	p.X, p.Y = 7, 9

	if _, err := vel.Add(h); err != nil {
		t.Fatalf("Add(Vel): %v", err)
	}

	p2, err := pos.Get(h)
	if err != nil {
		t.Fatal(err)
	}
	if p2.X != 7 || p2.Y != 9 {
		t.Errorf("Pos data lost across migration: got %+v, want {7 9}", p2)
	}
}

// Every archetype id, once issued, stays live and dereferenceable even
// after the archetype it names becomes empty (spec.md §3 Lifecycle).
func TestArchetypeIDsAreStableAndNotReclaimed(t *testing.T) {
	w := NewWorld()
	pos := mustComponent[Pos](t, w)
	vel := mustComponent[Vel](t, w)

	h, err := w.CreateEntity(pos)
	if err != nil {
		t.Fatal(err)
	}
	origin, err := w.registry.locate(h.id)
	if err != nil {
		t.Fatal(err)
	}
	originID := origin.id

	if _, err := vel.Add(h); err != nil {
		t.Fatal(err)
	}

	if got := w.registry.archetype(originID); got == nil {
		t.Fatal("origin archetype should still be addressable after becoming empty")
	} else if got.Len() != 0 {
		t.Errorf("origin archetype len = %d, want 0", got.Len())
	}
}

// The inverted component index must exactly match which archetypes carry
// each component (spec.md §8 invariant on index[c]).
func TestComponentIndexMatchesArchetypeMembership(t *testing.T) {
	w := NewWorld()
	pos := mustComponent[Pos](t, w)
	vel := mustComponent[Vel](t, w)

	if _, err := w.CreateEntity(pos); err != nil {
		t.Fatal(err)
	}
	if _, err := w.CreateEntity(pos, vel); err != nil {
		t.Fatal(err)
	}

	matched := w.registry.matchAll([]ComponentID{vel.ID()})
	for _, aid := range matched {
		set := w.registry.archetype(aid)
		if !set.signature.Contains(vel.ID()) {
			t.Errorf("matchAll(Vel) returned archetype %d whose signature %v lacks Vel", aid, set.signature.Components())
		}
	}
	for _, aid := range w.registry.allArchetypeIDs() {
		set := w.registry.archetype(aid)
		inMatched := false
		for _, m := range matched {
			if m == aid {
				inMatched = true
			}
		}
		if set.signature.Contains(vel.ID()) != inMatched {
			t.Errorf("archetype %d signature.Contains(Vel)=%v but membership in matchAll=%v", aid, set.signature.Contains(vel.ID()), inMatched)
		}
	}
}

func TestGetComponentUnknownEntity(t *testing.T) {
	w := NewWorld()
	pos := mustComponent[Pos](t, w)

	h, err := w.CreateEntity(pos)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.DestroyEntity(h); err != nil {
		t.Fatal(err)
	}

	if _, err := w.registry.locate(h.id); err == nil {
		t.Fatal("locate on a destroyed entity should fail")
	} else if _, ok := err.(UnknownEntityError); !ok {
		t.Errorf("error = %T, want UnknownEntityError", err)
	}
}

func TestIDGeneratorExhaustion(t *testing.T) {
	g := &idGenerator{next: ^EntityID(0)}
	if _, err := g.generate(); err == nil {
		t.Fatal("generate() at max uint64 should fail")
	} else if _, ok := err.(IDExhaustedError); !ok {
		t.Errorf("error = %T, want IDExhaustedError", err)
	}
}

func TestMigrationRefusedWhileLocked(t *testing.T) {
	w := NewWorld()
	pos := mustComponent[Pos](t, w)
	vel := mustComponent[Vel](t, w)

	if _, err := w.CreateEntity(pos); err != nil {
		t.Fatal(err)
	}

	q1, err := NewQuery1[Pos](w)
	if err != nil {
		t.Fatal(err)
	}
	q1.ForEach(w, func(h Handle, p *Pos) {
		if _, err := vel.Add(h); err == nil {
			t.Error("immediate Add during a ForEach pass should fail with LockedRegistryError")
		} else if _, ok := err.(LockedRegistryError); !ok {
			t.Errorf("error = %T, want LockedRegistryError", err)
		}
	})
}
