// Package registry tracks floors that still have an unserved stop somewhere in the fleet.
package registry

import (
	"slices"
	"sync"
)

// FloorRegistry is a set of floors, safe for concurrent use.
// Membership is fleet-wide: any elevator arriving at a floor clears it,
// even if another elevator is still routed there.
type FloorRegistry struct {
	mu     sync.RWMutex
	floors map[int]struct{}
}

func New() *FloorRegistry {
	return &FloorRegistry{floors: make(map[int]struct{})}
}

// Add registers floor. Returns false if it was already present.
func (r *FloorRegistry) Add(floor int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.floors[floor]; ok {
		return false
	}
	r.floors[floor] = struct{}{}
	return true
}

// Remove clears floor. Returns false if it was not present.
func (r *FloorRegistry) Remove(floor int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.floors[floor]; !ok {
		return false
	}
	delete(r.floors, floor)
	return true
}

func (r *FloorRegistry) Contains(floor int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.floors[floor]
	return ok
}

func (r *FloorRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.floors)
}

// Sorted returns the registered floors in ascending order.
func (r *FloorRegistry) Sorted() []int {
	r.mu.RLock()
	floors := make([]int, 0, len(r.floors))
	for f := range r.floors {
		floors = append(floors, f)
	}
	r.mu.RUnlock()
	slices.Sort(floors)
	return floors
}
