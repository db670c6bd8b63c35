package backend

import (
	"fmt"
	"sort"
	"sync"
)

// SlotConstructor opens a Slot rooted at dir (a data directory; backends
// decide which file inside it they own).
type SlotConstructor func(dir string) (Slot, error)

// slotRegistration holds a constructor with its priority
type slotRegistration struct {
	constructor SlotConstructor
	priority    int
}

// Global registry for slot backends
var (
	registryMu    sync.RWMutex
	registrations = make(map[string]slotRegistration)
)

// RegisterSlot registers a slot backend constructor.
// Backends should call this in their init() function.
func RegisterSlot(name string, constructor SlotConstructor) {
	RegisterSlotWithPriority(name, constructor, 100)
}

// RegisterSlotWithPriority registers a slot constructor with a priority.
// Lower priority numbers are listed first (file=10, sqlite=20).
func RegisterSlotWithPriority(name string, constructor SlotConstructor, priority int) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registrations[name] = slotRegistration{
		constructor: constructor,
		priority:    priority,
	}
}

// SlotNames returns registered backend names ordered by priority, then name.
func SlotNames() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registrations))
	for name := range registrations {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		pi, pj := registrations[names[i]].priority, registrations[names[j]].priority
		if pi != pj {
			return pi < pj
		}
		return names[i] < names[j]
	})
	return names
}

// IsRegistered reports whether a backend with the given name exists.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registrations[name]
	return ok
}

// OpenSlot opens the slot backend registered under name.
func OpenSlot(name, dir string) (Slot, error) {
	registryMu.RLock()
	reg, ok := registrations[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSlot, name)
	}
	return reg.constructor(dir)
}

// ClearSlots removes all registered constructors.
// This is primarily used for testing.
func ClearSlots() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registrations = make(map[string]slotRegistration)
}
