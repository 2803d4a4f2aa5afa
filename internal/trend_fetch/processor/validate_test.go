package processor

import "testing"

func rawVideo() map[string]any {
	return map[string]any{
		"title":          "  Speedrun World Record  ",
		"id":             "abc123",
		"views":          "1.2M",
		"published_time": "2 days ago",
		"channel": map[string]any{
			"title":     "GamesDaily",
			"link":      "https://youtube.com/@gamesdaily",
			"thumbnail": "https://img.example.com/ch.jpg",
		},
		"length":    "12:34",
		"thumbnail": map[string]any{"static": "s.jpg", "rich": "r.jpg"},
		"link":      "https://youtube.com/watch?v=abc123",
		"is_short":  false,
	}
}

func TestValidateVideoAccepted(t *testing.T) {
	v, ok := ValidateVideo(rawVideo())
	if !ok {
		t.Fatal("expected item to validate")
	}
	if v.Title != "Speedrun World Record" {
		t.Errorf("title = %q, want trimmed title", v.Title)
	}
	if v.VideoID != "abc123" {
		t.Errorf("video id = %q", v.VideoID)
	}
	if v.Views != 1200000 {
		t.Errorf("views = %d, want 1200000", v.Views)
	}
	if v.Channel.Title != "GamesDaily" || v.Channel.Link == "" {
		t.Errorf("channel not populated: %+v", v.Channel)
	}
	if v.Channel.Thumbnail == nil || v.Thumbnail == nil {
		t.Error("thumbnails must always be maps")
	}
	if v.IsShort {
		t.Error("is_short should be false")
	}
}

func TestValidateVideoRejected(t *testing.T) {
	cases := []struct {
		name string
		raw  any
	}{
		{"not a map", "just a string"},
		{"nil", nil},
		{"list", []any{1, 2}},
		{"missing title", map[string]any{"id": "x"}},
		{"missing id", map[string]any{"title": "x"}},
		{"blank title", map[string]any{"title": "   ", "id": "x"}},
		{"empty id", map[string]any{"title": "x", "id": ""}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := ValidateVideo(tc.raw); ok {
				t.Errorf("expected rejection for %v", tc.raw)
			}
		})
	}
}

func TestValidateVideoDefaults(t *testing.T) {
	t.Run("malformed channel degrades, item survives", func(t *testing.T) {
		raw := map[string]any{
			"title":   "Title",
			"id":      "id1",
			"channel": "not-an-object",
		}
		v, ok := ValidateVideo(raw)
		if !ok {
			t.Fatal("malformed channel must not reject the item")
		}
		if v.Channel.Title != "Unknown" {
			t.Errorf("channel title = %q, want Unknown", v.Channel.Title)
		}
		if v.Channel.Thumbnail == nil {
			t.Error("channel thumbnail must be a map")
		}
	})

	t.Run("all fields defaulted when absent", func(t *testing.T) {
		v, ok := ValidateVideo(map[string]any{"title": "Title", "id": "id1"})
		if !ok {
			t.Fatal("minimal item must validate")
		}
		if v.Views != 0 {
			t.Errorf("views = %d, want 0", v.Views)
		}
		if v.PublishedTime != "" || v.Length != "" || v.Link != "" {
			t.Errorf("string fields not defaulted: %+v", v)
		}
		if v.IsShort {
			t.Error("is_short should default to false")
		}
		if v.Thumbnail == nil || v.Channel.Thumbnail == nil {
			t.Error("thumbnails must always be maps")
		}
	})

	t.Run("numeric id is stringified", func(t *testing.T) {
		v, ok := ValidateVideo(map[string]any{"title": "Title", "id": 12345.0})
		if !ok {
			t.Fatal("numeric id must validate")
		}
		if v.VideoID != "12345" {
			t.Errorf("video id = %q, want 12345", v.VideoID)
		}
	})
}
