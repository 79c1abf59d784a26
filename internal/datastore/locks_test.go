// SPDX-License-Identifier: Apache-2.0

package datastore

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyedMutex_SerializesPerKey(t *testing.T) {
	req := require.New(t)
	km := newKeyedMutex()

	const workers = 16
	const iterations = 100

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				unlock := km.Lock("alice")
				counter++
				unlock()
			}
		}()
	}
	wg.Wait()

	req.Equal(workers*iterations, counter)
}

func TestKeyedMutex_IndependentKeys(t *testing.T) {
	req := require.New(t)
	km := newKeyedMutex()

	unlockA := km.Lock("alice")

	// a different key must not block
	done := make(chan struct{})
	go func() {
		unlockB := km.Lock("bob")
		unlockB()
		close(done)
	}()
	<-done

	unlockA()
	req.Empty(km.locks)
}

func TestKeyedMutex_EntriesAreReleased(t *testing.T) {
	req := require.New(t)
	km := newKeyedMutex()

	unlock := km.Lock("alice")
	req.Len(km.locks, 1)

	unlock()
	req.Empty(km.locks)
}
