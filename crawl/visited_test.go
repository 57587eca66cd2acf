package crawl_test

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shensd/icecold/crawl"
	"github.com/stretchr/testify/assert"
)

func TestVisitedSet_Visit(t *testing.T) {
	t.Parallel()

	t.Run("reports first visit only", func(t *testing.T) {
		t.Parallel()

		s := crawl.NewVisitedSet()

		assert.True(t, s.Visit("https://example.com/a"))
		assert.False(t, s.Visit("https://example.com/a"))
		assert.True(t, s.Visit("https://example.com/b"))
		assert.Equal(t, 2, s.Len())
	})

	t.Run("distinguishes URLs that differ only by fragment", func(t *testing.T) {
		t.Parallel()

		s := crawl.NewVisitedSet()

		assert.True(t, s.Visit("https://example.com/a"))
		assert.True(t, s.Visit("https://example.com/a#top"))
	})

	t.Run("long URLs are told apart by digest", func(t *testing.T) {
		t.Parallel()

		s := crawl.NewVisitedSet()
		prefix := "https://example.com/" + strings.Repeat("segment/", 500)

		assert.True(t, s.Visit(prefix+"a"))
		assert.True(t, s.Visit(prefix+"b"))
		assert.False(t, s.Visit(prefix+"a"))
		assert.Equal(t, 2, s.Len())
	})

	t.Run("many URLs stay distinct", func(t *testing.T) {
		t.Parallel()

		s := crawl.NewVisitedSet()
		for i := range 10000 {
			assert.True(t, s.Visit(fmt.Sprintf("https://example.com/%d", i)))
		}
		for i := range 10000 {
			assert.False(t, s.Visit(fmt.Sprintf("https://example.com/%d", i)))
		}
		assert.Equal(t, 10000, s.Len())
	})

	t.Run("concurrent visits admit one caller", func(t *testing.T) {
		t.Parallel()

		s := crawl.NewVisitedSet()
		var wg sync.WaitGroup
		var admitted atomic.Int32
		for range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if s.Visit("https://example.com/shared") {
					admitted.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), admitted.Load())
	})
}
