package watcher_test

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/watcher"
)

func TestDebouncer_SinglePath(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var mu sync.Mutex
		var batches [][]string

		d := watcher.NewDebouncer(100*time.Millisecond, func(paths []string) {
			mu.Lock()
			defer mu.Unlock()
			batches = append(batches, paths)
		})

		d.Add("/project/src/A.java")

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		mu.Lock()
		defer mu.Unlock()
		require.Len(t, batches, 1)
		assert.Equal(t, []string{"/project/src/A.java"}, batches[0])
	})
}

func TestDebouncer_BurstCoalescedAndSorted(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var mu sync.Mutex
		var batches [][]string

		d := watcher.NewDebouncer(100*time.Millisecond, func(paths []string) {
			mu.Lock()
			defer mu.Unlock()
			batches = append(batches, paths)
		})

		d.Add("/project/src/C.java")
		time.Sleep(50 * time.Millisecond)
		d.Add("/project/src/A.java")
		time.Sleep(50 * time.Millisecond)
		d.Add("/project/src/C.java")
		d.Add("/project/src/B.java")

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		mu.Lock()
		defer mu.Unlock()
		require.Len(t, batches, 1)
		assert.Equal(t, []string{
			"/project/src/A.java",
			"/project/src/B.java",
			"/project/src/C.java",
		}, batches[0])
	})
}

func TestDebouncer_SeparateBursts(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var mu sync.Mutex
		var batches [][]string

		d := watcher.NewDebouncer(100*time.Millisecond, func(paths []string) {
			mu.Lock()
			defer mu.Unlock()
			batches = append(batches, paths)
		})

		d.Add("/project/src/A.java")
		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		d.Add("/project/src/B.java")
		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		mu.Lock()
		defer mu.Unlock()
		require.Len(t, batches, 2)
		assert.Equal(t, []string{"/project/src/A.java"}, batches[0])
		assert.Equal(t, []string{"/project/src/B.java"}, batches[1])
	})
}

func TestDebouncer_Flush(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var calls int
		var received []string

		d := watcher.NewDebouncer(time.Second, func(paths []string) {
			calls++
			received = paths
		})

		d.Add("/project/src/A.java")
		d.Flush()

		require.Equal(t, 1, calls)
		assert.Equal(t, []string{"/project/src/A.java"}, received)

		// The stopped timer must not fire a second batch.
		time.Sleep(2 * time.Second)
		synctest.Wait()
		assert.Equal(t, 1, calls)
	})
}

func TestDebouncer_FlushEmpty(t *testing.T) {
	var calls int
	d := watcher.NewDebouncer(time.Second, func([]string) { calls++ })

	d.Flush()

	assert.Zero(t, calls)
}

func TestDebouncer_NilCallback(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		d := watcher.NewDebouncer(10*time.Millisecond, nil)

		d.Add("/project/src/A.java")
		time.Sleep(20 * time.Millisecond)
		synctest.Wait()

		assert.NotPanics(t, d.Flush)
	})
}
