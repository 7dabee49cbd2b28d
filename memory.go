package piecerng

import "sync"

const (
	// Initial capacity of a walk's path buffers.
	walkInitialCap = 1024

	// Buffers that grew past this many states are dropped instead of pooled
	// so one long discovery walk does not pin a large map forever.
	walkMaxPooled = 1 << 14
)

// walkScratch is the per-walk ordered path: the states visited in order and
// each state's position in that order.
type walkScratch struct {
	path []CanonicalState
	pos  map[CanonicalState]int
}

var walkPool = sync.Pool{
	New: func() interface{} {
		return &walkScratch{
			path: make([]CanonicalState, 0, walkInitialCap),
			pos:  make(map[CanonicalState]int, walkInitialCap),
		}
	},
}

// getWalkScratch retrieves empty walk buffers from the pool.
func getWalkScratch() *walkScratch {
	w := walkPool.Get().(*walkScratch)
	w.reset()
	return w
}

// putWalkScratch returns walk buffers to the pool for reuse.
func putWalkScratch(w *walkScratch) {
	if w == nil || len(w.path) > walkMaxPooled {
		return
	}
	walkPool.Put(w)
}

func (w *walkScratch) reset() {
	w.path = w.path[:0]
	clear(w.pos)
}

// push appends s to the path.
func (w *walkScratch) push(s CanonicalState) {
	w.pos[s] = len(w.path)
	w.path = append(w.path, s)
}

// position returns where s first appeared on the path.
func (w *walkScratch) position(s CanonicalState) (int, bool) {
	i, ok := w.pos[s]
	return i, ok
}
