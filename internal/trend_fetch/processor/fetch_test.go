package processor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"trend-fetch/pkg/config"
)

func testFetcher(url string) *Fetcher {
	return &Fetcher{
		Log:        zap.NewNop(),
		HTTPClient: &http.Client{Timeout: 2 * time.Second},
		Search:     config.SearchAPIConfig{Key: "test-key", URL: url},
		Serp:       config.SerpAPIConfig{Key: "test-key", URL: url},
	}
}

func jsonServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchTrendingVideosEnvelopes(t *testing.T) {
	item := `{"title": "One", "id": "v1"}`
	for _, key := range []string{"video_results", "videos", "organic_results", "results"} {
		t.Run("key "+key, func(t *testing.T) {
			srv := jsonServer(t, fmt.Sprintf(`{%q: [%s]}`, key, item))
			videos, err := testFetcher(srv.URL).FetchTrendingVideos(context.Background(), "gaming")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(videos) != 1 || videos[0].VideoID != "v1" {
				t.Errorf("got %v", videos)
			}
		})
	}

	t.Run("body itself is a list", func(t *testing.T) {
		srv := jsonServer(t, `[`+item+`]`)
		videos, err := testFetcher(srv.URL).FetchTrendingVideos(context.Background(), "gaming")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(videos) != 1 {
			t.Errorf("got %d videos", len(videos))
		}
	})

	t.Run("priority order picks first non-empty", func(t *testing.T) {
		srv := jsonServer(t, `{"results": [{"title": "Low", "id": "low"}], "videos": [{"title": "High", "id": "high"}]}`)
		videos, err := testFetcher(srv.URL).FetchTrendingVideos(context.Background(), "gaming")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(videos) != 1 || videos[0].VideoID != "high" {
			t.Errorf("expected the videos key to win, got %v", videos)
		}
	})
}

func TestFetchTrendingVideosDropsBadItems(t *testing.T) {
	// 2 of 5 items are malformed; the accepted 3 keep upstream order.
	srv := jsonServer(t, `{"videos": [
		{"title": "A", "id": "a"},
		{"title": "", "id": "bad1"},
		{"title": "B", "id": "b"},
		{"no_title": true},
		{"title": "C", "id": "c"}
	]}`)
	videos, err := testFetcher(srv.URL).FetchTrendingVideos(context.Background(), "gaming")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(videos) != 3 {
		t.Fatalf("got %d videos, want 3", len(videos))
	}
	for i, want := range []string{"a", "b", "c"} {
		if videos[i].VideoID != want {
			t.Errorf("videos[%d].VideoID = %q, want %q", i, videos[i].VideoID, want)
		}
	}
}

func TestFetchTrendingVideosErrors(t *testing.T) {
	t.Run("empty response", func(t *testing.T) {
		srv := jsonServer(t, "   ")
		_, err := testFetcher(srv.URL).FetchTrendingVideos(context.Background(), "gaming")
		if !errors.Is(err, ErrEmptyResponse) {
			t.Errorf("got %v, want ErrEmptyResponse", err)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		srv := jsonServer(t, "<html>not json</html>")
		_, err := testFetcher(srv.URL).FetchTrendingVideos(context.Background(), "gaming")
		if !errors.Is(err, ErrInvalidResponse) {
			t.Errorf("got %v, want ErrInvalidResponse", err)
		}
	})

	t.Run("no known envelope key", func(t *testing.T) {
		srv := jsonServer(t, `{"search_metadata": {"status": "ok"}}`)
		_, err := testFetcher(srv.URL).FetchTrendingVideos(context.Background(), "gaming")
		if !errors.Is(err, ErrNoVideos) {
			t.Errorf("got %v, want ErrNoVideos", err)
		}
	})

	t.Run("all items invalid", func(t *testing.T) {
		srv := jsonServer(t, `{"videos": [{"title": ""}, {"id": "x"}]}`)
		_, err := testFetcher(srv.URL).FetchTrendingVideos(context.Background(), "gaming")
		if !errors.Is(err, ErrNoValidVideos) {
			t.Errorf("got %v, want ErrNoValidVideos", err)
		}
	})

	t.Run("http error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()
		_, err := testFetcher(srv.URL).FetchTrendingVideos(context.Background(), "gaming")
		if !errors.Is(err, ErrRequestFailed) {
			t.Errorf("got %v, want ErrRequestFailed", err)
		}
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()
		f := testFetcher(srv.URL)
		f.HTTPClient = &http.Client{Timeout: 20 * time.Millisecond}
		_, err := f.FetchTrendingVideos(context.Background(), "gaming")
		if !errors.Is(err, ErrRequestTimeout) {
			t.Errorf("got %v, want ErrRequestTimeout", err)
		}
	})

	t.Run("connection refused", func(t *testing.T) {
		_, err := testFetcher("http://127.0.0.1:1").FetchTrendingVideos(context.Background(), "gaming")
		if !errors.Is(err, ErrRequestFailed) {
			t.Errorf("got %v, want ErrRequestFailed", err)
		}
	})
}

func TestFetchSurvivesAbandonedCaller(t *testing.T) {
	// A canceled request context must not interrupt the in-flight upstream
	// call; only the HTTP client timeout bounds it.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		fmt.Fprint(w, `{"videos": [{"title": "A", "id": "a"}]}`)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	videos, err := testFetcher(srv.URL).FetchTrendingVideos(ctx, "gaming")
	if err != nil {
		t.Fatalf("abandoned caller interrupted the fetch: %v", err)
	}
	if len(videos) != 1 || videos[0].VideoID != "a" {
		t.Errorf("got %v", videos)
	}
}

func TestFetchInstagramData(t *testing.T) {
	t.Run("opaque payload comes back", func(t *testing.T) {
		srv := jsonServer(t, `{"search_metadata": {"status": "ok"}, "organic_results": []}`)
		data, err := testFetcher(srv.URL).FetchInstagramData(context.Background(), "instagram trending")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, exists := data["search_metadata"]; !exists {
			t.Errorf("payload lost: %v", data)
		}
	})

	t.Run("truthy error key fails", func(t *testing.T) {
		srv := jsonServer(t, `{"error": "rate limit exceeded"}`)
		_, err := testFetcher(srv.URL).FetchInstagramData(context.Background(), "instagram trending")
		if !errors.Is(err, ErrUpstreamError) {
			t.Errorf("got %v, want ErrUpstreamError", err)
		}
	})

	t.Run("falsy error key passes", func(t *testing.T) {
		srv := jsonServer(t, `{"error": "", "data": [1]}`)
		_, err := testFetcher(srv.URL).FetchInstagramData(context.Background(), "instagram trending")
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
