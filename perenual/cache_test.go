package perenual_test

import (
	"testing"
	"time"

	"github.com/lemiae/PlantShelf/perenual"
	"github.com/lemiae/PlantShelf/testutil"
)

func TestMemoryCache(t *testing.T) {
	t.Parallel()

	t.Run("get returns what was set", func(t *testing.T) {
		t.Parallel()
		c := perenual.NewMemoryCache()

		c.Set("k", "v", time.Hour)
		got, ok := c.Get("k")
		if !ok || got.(string) != "v" {
			t.Fatalf("Get(k) = %v, %v; want v, true", got, ok)
		}
	})

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()
		c := perenual.NewMemoryCache()

		if _, ok := c.Get("nope"); ok {
			t.Fatal("Get on empty cache reported a hit")
		}
	})

	t.Run("entry expires after its ttl", func(t *testing.T) {
		t.Parallel()
		clock := testutil.FixedClock()
		c := perenual.NewMemoryCacheAt(clock.Now)

		c.Set("k", "v", time.Hour)

		clock.Advance(59 * time.Minute)
		if _, ok := c.Get("k"); !ok {
			t.Fatal("entry expired before its ttl")
		}

		clock.Advance(2 * time.Minute)
		if _, ok := c.Get("k"); ok {
			t.Fatal("entry survived past its ttl")
		}
	})

	t.Run("last write wins", func(t *testing.T) {
		t.Parallel()
		c := perenual.NewMemoryCache()

		c.Set("k", "first", time.Hour)
		c.Set("k", "second", time.Hour)

		got, _ := c.Get("k")
		if got.(string) != "second" {
			t.Fatalf("Get(k) = %v, want second", got)
		}
	})
}
