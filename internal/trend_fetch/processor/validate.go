package processor

import (
	"strings"

	"trend-fetch/internal/trend_fetch/model"
)

// ValidateVideo turns one raw upstream item into a canonical Video. The
// second return is false when the item is unusable. A bad item never fails
// the batch: any panic while digging through the raw shape is recovered and
// treated as a rejection of that single item.
func ValidateVideo(raw any) (video *model.Video, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			video, ok = nil, false
		}
	}()

	item, isMap := raw.(map[string]any)
	if !isMap {
		return nil, false
	}

	title := strings.TrimSpace(Stringify(item["title"]))
	id := Stringify(item["id"])
	if title == "" || id == "" {
		return nil, false
	}

	// A malformed nested channel never rejects the whole item.
	channel, _ := item["channel"].(map[string]any)
	if channel == nil {
		channel = map[string]any{}
	}
	channelTitle := "Unknown"
	if v, exists := channel["title"]; exists {
		channelTitle = Stringify(v)
	}

	return &model.Video{
		Title:         title,
		VideoID:       id,
		Views:         CleanViewsCount(item["views"]),
		PublishedTime: Stringify(item["published_time"]),
		Channel: model.Channel{
			Title:     channelTitle,
			Link:      Stringify(channel["link"]),
			Thumbnail: ParseThumbnail(valueOrEmpty(channel, "thumbnail")),
		},
		Length:    Stringify(item["length"]),
		Thumbnail: ParseThumbnail(valueOrEmpty(item, "thumbnail")),
		Link:      Stringify(item["link"]),
		IsShort:   Boolish(item["is_short"]),
	}, true
}

func valueOrEmpty(m map[string]any, key string) any {
	if v, exists := m[key]; exists && v != nil {
		return v
	}
	return ""
}
