// Property-based tests for per-user critical sections.
package lock

import (
	"sync"
	"testing"

	"pgregory.net/rapid"
)

// TestSerializedSectionsProperty checks that for any set of concurrent
// read-modify-write sections against the same user id, the result is
// consistent with some sequential execution of all of them.
func TestSerializedSectionsProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		numOps := rapid.IntRange(2, 30).Draw(rt, "numOps")

		deltas := make([]int64, numOps)
		var want int64
		for i := range deltas {
			deltas[i] = rapid.Int64Range(-100, 100).Draw(rt, "delta")
			want += deltas[i]
		}

		ul := NewUserLock()
		var counter int64

		var wg sync.WaitGroup
		wg.Add(numOps)
		for _, d := range deltas {
			go func(d int64) {
				defer wg.Done()
				ul.Lock("u1")
				defer ul.Unlock("u1")
				counter += d
			}(d)
		}
		wg.Wait()

		if counter != want {
			rt.Fatalf("counter %d, expected %d with %d sections", counter, want, numOps)
		}
	})
}

// TestIndependentUsersProperty checks that locks for distinct user ids
// never interfere: each user's counter is exactly the number of
// sections run against it.
func TestIndependentUsersProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		numUsers := rapid.IntRange(2, 6).Draw(rt, "numUsers")
		opsPerUser := rapid.IntRange(1, 20).Draw(rt, "opsPerUser")

		ul := NewUserLock()
		counters := make([]int64, numUsers)

		var wg sync.WaitGroup
		wg.Add(numUsers * opsPerUser)
		for u := 0; u < numUsers; u++ {
			id := string(rune('a' + u))
			for i := 0; i < opsPerUser; i++ {
				go func(u int, id string) {
					defer wg.Done()
					ul.Lock(id)
					defer ul.Unlock(id)
					counters[u]++
				}(u, id)
			}
		}
		wg.Wait()

		for u, got := range counters {
			if got != int64(opsPerUser) {
				rt.Fatalf("user %d: counter %d, expected %d", u, got, opsPerUser)
			}
		}
	})
}
