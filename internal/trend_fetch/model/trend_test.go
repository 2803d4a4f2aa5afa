package model

import "testing"

func TestNormalizeHashtag(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"#Trending ", "trending"},
		{"trending", "trending"},
		{"  #FooBar", "foobar"},
		{"##double", "double"},
		{"MiXeD", "mixed"},
		{"", ""},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			if got := NormalizeHashtag(tc.input); got != tc.want {
				t.Errorf("NormalizeHashtag(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestNewTrend(t *testing.T) {
	v := Video{
		Title:         "Title",
		VideoID:       "vid1",
		Views:         1500,
		PublishedTime: "1 hour ago",
		Channel: Channel{
			Title: "Chan",
			Link:  "https://example.com/chan",
		},
		Length:    "3:21",
		Thumbnail: map[string]any{"static": "s", "rich": "r"},
		Link:      "https://example.com/v",
		IsShort:   true,
	}

	trend := NewTrend(v, "YouTube")

	if trend.Platform != "YouTube" || trend.Title != "Title" {
		t.Errorf("header fields wrong: %+v", trend)
	}
	if trend.Status != StatusActive {
		t.Errorf("status = %q, want %q", trend.Status, StatusActive)
	}
	if trend.CreatedAt.IsZero() {
		t.Error("created_at must be stamped")
	}
	m := trend.EngagementMetrics
	if m.Views != 1500 || m.Channel != "Chan" || m.ChannelLink != "https://example.com/chan" {
		t.Errorf("metrics wrong: %+v", m)
	}
	if m.VideoLink != "https://example.com/v" || m.VideoID != "vid1" || !m.IsShort {
		t.Errorf("metrics wrong: %+v", m)
	}
}
