package resilience

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGroup_CollapsesConcurrentLoads(t *testing.T) {
	var g Group[[]string]
	var calls atomic.Int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	var sharedCount atomic.Int32

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			got, shared, err := g.Do("feeds", func() ([]string, error) {
				calls.Add(1)
				time.Sleep(20 * time.Millisecond)
				return []string{"BBC Sport"}, nil
			})
			assert.NoError(t, err)
			assert.Equal(t, []string{"BBC Sport"}, got)
			if shared {
				sharedCount.Add(1)
			}
		}()
	}

	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, int32(workers)-calls.Load(), sharedCount.Load())
}

func TestGroup_ErrorsAreNotRetained(t *testing.T) {
	var g Group[int]
	boom := errors.New("boom")

	_, _, err := g.Do("k", func() (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)

	v, shared, err := g.Do("k", func() (int, error) { return 7, nil })
	assert.NoError(t, err)
	assert.False(t, shared)
	assert.Equal(t, 7, v)
}
