package model

// Channel is the canonical channel block of a validated video.
type Channel struct {
	Title     string         `bson:"title" json:"title"`
	Link      string         `bson:"link" json:"link"`
	Thumbnail map[string]any `bson:"thumbnail" json:"thumbnail"`
}

// Video is one fully validated trending video. Every field is always
// populated with a type-correct (possibly default) value; raw items that
// cannot fill them are dropped at validation and never reach this type.
type Video struct {
	Title         string         `bson:"title" json:"title"`
	VideoID       string         `bson:"video_id" json:"video_id"`
	Views         int64          `bson:"views" json:"views"`
	PublishedTime string         `bson:"published_time" json:"published_time"`
	Channel       Channel        `bson:"channel" json:"channel"`
	Length        string         `bson:"length" json:"length"`
	Thumbnail     map[string]any `bson:"thumbnail" json:"thumbnail"`
	Link          string         `bson:"link" json:"link"`
	IsShort       bool           `bson:"is_short" json:"is_short"`
}
