package hangar

import "testing"

func TestCacheGetPut(t *testing.T) {
	c := newCache[[]ArchetypeID](4)

	if _, ok := c.Get("missing"); ok {
		t.Fatal("Get on an empty cache should miss")
	}

	want := []ArchetypeID{1, 2, 3}
	if err := c.Put("key", want); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok := c.Get("key")
	if !ok {
		t.Fatal("Get should hit after Put")
	}
	if len(got) != len(want) {
		t.Fatalf("Get = %v, want %v", got, want)
	}
}

func TestCacheDuplicateKeyErrors(t *testing.T) {
	c := newCache[int](4)
	if err := c.Put("a", 1); err != nil {
		t.Fatalf("first Put: %v", err)
	}
	if err := c.Put("a", 2); err == nil {
		t.Fatal("second Put with the same key should fail")
	}
}

func TestCacheCapacity(t *testing.T) {
	c := newCache[int](2)
	if err := c.Put("a", 1); err != nil {
		t.Fatalf("Put a: %v", err)
	}
	if err := c.Put("b", 2); err != nil {
		t.Fatalf("Put b: %v", err)
	}
	if err := c.Put("c", 3); err == nil {
		t.Fatal("Put beyond capacity should fail")
	}
}

func TestCacheClear(t *testing.T) {
	c := newCache[int](2)
	if err := c.Put("a", 1); err != nil {
		t.Fatal(err)
	}
	c.Clear()
	if _, ok := c.Get("a"); ok {
		t.Fatal("Get should miss after Clear")
	}
	if err := c.Put("a", 2); err != nil {
		t.Fatalf("Put after Clear should succeed: %v", err)
	}
}

// The registry's plan cache is invalidated whenever a new archetype is
// registered, so a stale query plan never survives the archetype set it
// was computed over changing shape.
func TestRegistryPlanCacheInvalidatedOnNewArchetype(t *testing.T) {
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
	var before int
	q1.ForEach(w, func(h Handle, p *Pos) { before++ })
	if before != 1 {
		t.Fatalf("before = %d, want 1", before)
	}

	if _, err := w.CreateEntity(pos, vel); err != nil {
		t.Fatal(err)
	}

	var after int
	q1.ForEach(w, func(h Handle, p *Pos) { after++ })
	if after != 2 {
		t.Errorf("after = %d, want 2 (plan cache must not return a stale archetype list)", after)
	}
}
