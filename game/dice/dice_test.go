package dice

import "testing"

// fixedSource returns queued values in order, wrapping around
type fixedSource struct {
	values []int
	next   int
}

func (f *fixedSource) Intn(n int) int {
	v := f.values[f.next%len(f.values)] % n
	f.next++
	return v
}

func TestRollD6Range(t *testing.T) {
	roller := NewRoller(42)

	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		v := roller.RollD6()
		if v < 1 || v > Sides {
			t.Fatalf("Roll %d out of range: %d", i, v)
		}
		seen[v] = true
	}

	if len(seen) != Sides {
		t.Errorf("Expected all %d faces over 1000 rolls, saw %v", Sides, seen)
	}
}

func TestRollerIsDeterministic(t *testing.T) {
	a := NewRoller(7)
	b := NewRoller(7)

	for i := 0; i < 50; i++ {
		accA, dirA := a.RollShot()
		accB, dirB := b.RollShot()
		if accA != accB || dirA != dirB {
			t.Fatalf("Roll %d differs: (%d,%d) vs (%d,%d)", i, accA, dirA, accB, dirB)
		}
	}
}

func TestRollShotOrder(t *testing.T) {
	roller := NewRollerWithSource(&fixedSource{values: []int{3, 0, 5}})

	acc, dir := roller.RollShot()
	if acc != 4 || dir != 1 {
		t.Errorf("Expected (4,1), got (%d,%d)", acc, dir)
	}
	if v := roller.RollD6(); v != 6 {
		t.Errorf("Expected 6, got %d", v)
	}
}

func TestNewRandomRoller(t *testing.T) {
	roller, err := NewRandomRoller()
	if err != nil {
		t.Fatalf("Failed to create roller: %v", err)
	}
	if v := roller.RollD6(); v < 1 || v > Sides {
		t.Errorf("Roll out of range: %d", v)
	}
}

func TestNewSeed(t *testing.T) {
	a, err := NewSeed()
	if err != nil {
		t.Fatalf("NewSeed failed: %v", err)
	}
	b, err := NewSeed()
	if err != nil {
		t.Fatalf("NewSeed failed: %v", err)
	}
	if a == b {
		t.Error("Expected two seeds to differ")
	}
}
