package cache

import (
	"context"
	"errors"
	"testing"

	"trend-fetch/internal/trend_fetch/model"
)

func TestNilCachePassesThrough(t *testing.T) {
	var c *TrendCache

	t.Run("fetch result is returned", func(t *testing.T) {
		want := []model.Video{{Title: "A", VideoID: "a"}}
		got, hit, err := c.GetOrFetch(context.Background(), "gaming", func() ([]model.Video, error) {
			return want, nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if hit {
			t.Error("nil cache can never report a hit")
		}
		if len(got) != 1 || got[0].VideoID != "a" {
			t.Errorf("got %v", got)
		}
	})

	t.Run("fetch error is propagated", func(t *testing.T) {
		boom := errors.New("boom")
		_, _, err := c.GetOrFetch(context.Background(), "gaming", func() ([]model.Video, error) {
			return nil, boom
		})
		if !errors.Is(err, boom) {
			t.Errorf("got %v, want fetch error", err)
		}
	})
}
