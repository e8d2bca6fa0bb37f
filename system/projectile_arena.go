package system

import (
	"github.com/lixenwraith/honly-helper/component"
)

// Handle is a stable reference to a projectile slot
// A released slot bumps its generation, so stale handles resolve to nothing
type Handle struct {
	Index      uint32
	Generation uint32
}

// Valid reports a handle that was issued by an arena
// The zero Handle is never issued
func (h Handle) Valid() bool { return h.Generation != 0 }

type projectileSlot struct {
	generation uint32
	live       bool
	comp       component.ProjectileComponent
}

// ProjectileArena is a fixed-capacity pool of projectile slots
// Acquire resets the slot explicitly; nothing carries over from a previous occupant
type ProjectileArena struct {
	slots []projectileSlot
	free  []uint32 // LIFO free list of slot indices
	live  int
}

// NewProjectileArena allocates capacity slots up front
func NewProjectileArena(capacity int) *ProjectileArena {
	a := &ProjectileArena{
		slots: make([]projectileSlot, capacity),
		free:  make([]uint32, 0, capacity),
	}
	for i := capacity - 1; i >= 0; i-- {
		a.slots[i].generation = 1
		a.free = append(a.free, uint32(i))
	}
	return a
}

// Acquire claims a slot, returning its handle and a zeroed component
// Returns ok=false when every slot is live
func (a *ProjectileArena) Acquire() (Handle, *component.ProjectileComponent, bool) {
	if len(a.free) == 0 {
		return Handle{}, nil, false
	}
	idx := a.free[len(a.free)-1]
	a.free = a.free[:len(a.free)-1]

	slot := &a.slots[idx]
	slot.live = true
	slot.comp = component.ProjectileComponent{}
	a.live++

	return Handle{Index: idx, Generation: slot.generation}, &slot.comp, true
}

// Release returns a slot to the pool
// Returns false for stale or foreign handles, making double release a no-op
func (a *ProjectileArena) Release(h Handle) bool {
	slot, ok := a.slot(h)
	if !ok {
		return false
	}
	slot.live = false
	slot.generation++
	if slot.generation == 0 {
		slot.generation = 1
	}
	a.free = append(a.free, h.Index)
	a.live--
	return true
}

// Get resolves a live handle to its component
func (a *ProjectileArena) Get(h Handle) (*component.ProjectileComponent, bool) {
	slot, ok := a.slot(h)
	if !ok {
		return nil, false
	}
	return &slot.comp, true
}

// Handles appends handles of all live slots to dst in index order
func (a *ProjectileArena) Handles(dst []Handle) []Handle {
	for i := range a.slots {
		if a.slots[i].live {
			dst = append(dst, Handle{Index: uint32(i), Generation: a.slots[i].generation})
		}
	}
	return dst
}

// Live returns the number of occupied slots
func (a *ProjectileArena) Live() int { return a.live }

// Capacity returns the total slot count
func (a *ProjectileArena) Capacity() int { return len(a.slots) }

func (a *ProjectileArena) slot(h Handle) (*projectileSlot, bool) {
	if !h.Valid() || int(h.Index) >= len(a.slots) {
		return nil, false
	}
	slot := &a.slots[h.Index]
	if !slot.live || slot.generation != h.Generation {
		return nil, false
	}
	return slot, true
}
