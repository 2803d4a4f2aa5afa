package processor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"trend-fetch/internal/trend_fetch/model"
	"trend-fetch/pkg/config"
)

// Typed upstream failures. Handlers discriminate with errors.Is.
var (
	ErrRequestTimeout  = errors.New("api request timed out")
	ErrRequestFailed   = errors.New("api request failed")
	ErrEmptyResponse   = errors.New("empty response from api")
	ErrInvalidResponse = errors.New("invalid json response")
	ErrNoVideos        = errors.New("no trending videos found")
	ErrNoValidVideos   = errors.New("no valid video data found in response")
	ErrUpstreamError   = errors.New("upstream api reported an error")
)

// videoEnvelopeKeys lists the known item-list locations in priority order.
// The first non-empty match wins; a body that is itself a list is checked
// last.
var videoEnvelopeKeys = []string{"video_results", "videos", "organic_results", "results"}

// Fetcher calls the upstream discovery APIs and runs every returned item
// through validation. Configuration is injected; nothing is read from
// ambient globals.
type Fetcher struct {
	Log        *zap.Logger
	HTTPClient *http.Client
	Search     config.SearchAPIConfig
	Serp       config.SerpAPIConfig
	Metrics    *Metrics
}

// FetchTrendingVideos fetches trending videos for a category and returns
// only the items that validate, in upstream order. Item-level defects are
// dropped silently; batch-level failures come back as typed errors.
func (f *Fetcher) FetchTrendingVideos(ctx context.Context, category string) ([]model.Video, error) {
	// A caller that abandons its request must not interrupt an in-flight
	// upstream fetch; the HTTP client timeout still bounds the call.
	ctx = context.WithoutCancel(ctx)

	params := map[string]string{
		"engine":  "youtube",
		"api_key": f.Search.Key,
		"type":    "video",
		"q":       "trending " + category,
		"sort_by": "date",
		"time":    "month",
	}

	start := time.Now()
	body, err := f.get(ctx, f.Search.URL, params)
	f.Metrics.ObserveFetch(time.Since(start))
	if err != nil {
		f.Metrics.IncUpstreamError("transport")
		f.Log.Error("trending videos request failed",
			zap.String("category", category),
			zap.Error(err),
		)
		return nil, err
	}

	if len(bytes.TrimSpace(body)) == 0 {
		f.Metrics.IncUpstreamError("empty")
		return nil, ErrEmptyResponse
	}

	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		f.Metrics.IncUpstreamError("invalid_json")
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	raw := extractVideoList(parsed)
	if len(raw) == 0 {
		f.Metrics.IncUpstreamError("no_videos")
		return nil, fmt.Errorf("%w for category %q", ErrNoVideos, category)
	}

	videos := make([]model.Video, 0, len(raw))
	dropped := 0
	for _, item := range raw {
		v, ok := ValidateVideo(item)
		if !ok {
			dropped++
			continue
		}
		videos = append(videos, *v)
	}
	f.Metrics.AddIngested(len(videos))
	f.Metrics.AddDropped(dropped)

	if len(videos) == 0 {
		f.Metrics.IncUpstreamError("no_valid_videos")
		return nil, ErrNoValidVideos
	}

	f.Log.Info("fetched trending videos",
		zap.String("category", category),
		zap.Int("accepted", len(videos)),
		zap.Int("dropped", dropped),
	)
	return videos, nil
}

// FetchInstagramData queries the hashtag discovery API and returns the
// opaque payload. A truthy "error" key in the body counts as failure.
func (f *Fetcher) FetchInstagramData(ctx context.Context, query string) (map[string]any, error) {
	// Not cancellable mid-flight, same as the video fetch.
	ctx = context.WithoutCancel(ctx)

	params := map[string]string{
		"q":       query,
		"engine":  "google",
		"hl":      "en",
		"gl":      "in",
		"api_key": f.Serp.Key,
	}

	start := time.Now()
	body, err := f.get(ctx, f.Serp.URL, params)
	f.Metrics.ObserveFetch(time.Since(start))
	if err != nil {
		f.Metrics.IncUpstreamError("transport")
		f.Log.Error("hashtag request failed", zap.String("query", query), zap.Error(err))
		return nil, err
	}

	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil {
		f.Metrics.IncUpstreamError("invalid_json")
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if len(data) == 0 {
		f.Metrics.IncUpstreamError("empty")
		return nil, ErrEmptyResponse
	}
	if v, exists := data["error"]; exists && Boolish(v) {
		f.Metrics.IncUpstreamError("upstream")
		return nil, fmt.Errorf("%w: %s", ErrUpstreamError, Stringify(v))
	}
	return data, nil
}

// get issues one GET with the given query parameters and reads the whole
// body. Transport failures are folded into the typed error set.
func (f *Fetcher) get(ctx context.Context, rawURL string, params map[string]string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	q := u.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, ErrRequestTimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			f.Log.Warn("failed to close response body", zap.Error(err))
		}
	}(resp.Body)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return nil, ErrRequestTimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("%w: status %d", ErrRequestFailed, resp.StatusCode)
	}
	return data, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// extractVideoList pulls the item list out of whichever envelope shape the
// upstream used this time.
func extractVideoList(parsed any) []any {
	switch data := parsed.(type) {
	case map[string]any:
		for _, key := range videoEnvelopeKeys {
			if arr, ok := data[key].([]any); ok && len(arr) > 0 {
				return arr
			}
		}
	case []any:
		return data
	}
	return nil
}
