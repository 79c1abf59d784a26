// SPDX-License-Identifier: Apache-2.0

package datastore

import "sync"

// keyedMutex serializes operations per key (a username) within this process
// instance. The backend remains the only cross-process arbiter; this only
// prevents concurrent requests in the same process from racing their own
// check-then-act sequences.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLockEntry
}

type keyedLockEntry struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: map[string]*keyedLockEntry{}}
}

// Lock acquires the lock for the key and returns the matching unlock func.
// Entries are reference counted so transient keys do not accumulate.
func (km *keyedMutex) Lock(key string) func() {
	km.mu.Lock()
	entry, ok := km.locks[key]
	if !ok {
		entry = &keyedLockEntry{}
		km.locks[key] = entry
	}
	entry.refs++
	km.mu.Unlock()

	entry.Mutex.Lock()

	return func() {
		entry.Mutex.Unlock()

		km.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(km.locks, key)
		}
		km.mu.Unlock()
	}
}
