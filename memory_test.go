package piecerng

import "testing"

func TestWalkScratch(t *testing.T) {
	w := getWalkScratch()
	w.push(0x10)
	w.push(0x20)
	w.push(0x30)

	if i, ok := w.position(0x20); !ok || i != 1 {
		t.Errorf("position(0x20) = %d, %v; want 1, true", i, ok)
	}
	if _, ok := w.position(0x40); ok {
		t.Error("position(0x40) should not be found")
	}
	putWalkScratch(w)

	w = getWalkScratch()
	if len(w.path) != 0 || len(w.pos) != 0 {
		t.Errorf("pooled scratch not reset: %d path, %d pos", len(w.path), len(w.pos))
	}
	putWalkScratch(w)
}

func TestPutWalkScratch_DropsLarge(t *testing.T) {
	w := getWalkScratch()
	for i := 0; i <= walkMaxPooled; i++ {
		w.push(CanonicalState(i))
	}
	putWalkScratch(w) // must not panic; large buffers are discarded
	putWalkScratch(nil)
}
