package model

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const StatusActive = "active"

// EngagementMetrics is the flattened metrics block stored on a trend.
// Thumbnail stays `any` because upstream delivers it either as a bare URL
// or as a structured object.
type EngagementMetrics struct {
	Views         int64  `bson:"views" json:"views"`
	PublishedTime string `bson:"published_time" json:"published_time"`
	Channel       string `bson:"channel" json:"channel"`
	ChannelLink   string `bson:"channel_link" json:"channel_link"`
	Length        string `bson:"length" json:"length"`
	Thumbnail     any    `bson:"thumbnail" json:"thumbnail"`
	VideoLink     string `bson:"video_link" json:"video_link"`
	VideoID       string `bson:"video_id" json:"video_id"`
	IsShort       bool   `bson:"is_short" json:"is_short"`
}

// Trend is the persisted trend record. Created once at ingestion time and
// mutated only through the merge-update path in the store.
type Trend struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title             string             `bson:"title" json:"title"`
	Platform          string             `bson:"platform" json:"platform"`
	EngagementMetrics EngagementMetrics  `bson:"engagement_metrics" json:"engagement_metrics"`
	SentimentScore    any                `bson:"sentiment_score" json:"sentiment_score"`
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time          `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
	Status            string             `bson:"status" json:"status"`
	ROIPotential      any                `bson:"roi_potential" json:"roi_potential"`
}

// NewTrend builds a trend record from a validated video and a platform label.
func NewTrend(v Video, platform string) *Trend {
	return &Trend{
		Title:    v.Title,
		Platform: platform,
		EngagementMetrics: EngagementMetrics{
			Views:         v.Views,
			PublishedTime: v.PublishedTime,
			Channel:       v.Channel.Title,
			ChannelLink:   v.Channel.Link,
			Length:        v.Length,
			Thumbnail:     v.Thumbnail,
			VideoLink:     v.Link,
			VideoID:       v.VideoID,
			IsShort:       v.IsShort,
		},
		SentimentScore: nil,
		CreatedAt:      time.Now().UTC(),
		Status:         StatusActive,
		ROIPotential:   nil,
	}
}

// InstagramTrend stores one hashtag lookup together with the opaque payload
// returned by the hashtag discovery API.
type InstagramTrend struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Hashtag        string             `bson:"hashtag" json:"hashtag"`
	Data           map[string]any     `bson:"data" json:"data"`
	SentimentScore any                `bson:"sentiment_score" json:"sentiment_score"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
	Status         string             `bson:"status" json:"status"`
	ROIPotential   any                `bson:"roi_potential" json:"roi_potential"`
}

// NewInstagramTrend builds an instagram trend record. The hashtag must
// already be normalized.
func NewInstagramTrend(hashtag string, data map[string]any) *InstagramTrend {
	return &InstagramTrend{
		Hashtag:   hashtag,
		Data:      data,
		CreatedAt: time.Now().UTC(),
		Status:    StatusActive,
	}
}

// NormalizeHashtag canonicalizes a caller-supplied hashtag: trim, lowercase,
// drop '#'. Applied identically on create and update so "#Trending " and
// "trending" address the same logical hashtag.
func NormalizeHashtag(hashtag string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(hashtag)), "#", "")
}
