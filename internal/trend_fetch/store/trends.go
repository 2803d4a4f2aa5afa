package store

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"trend-fetch/internal/trend_fetch/model"
	"trend-fetch/internal/trend_fetch/processor"
)

// Trends persists trend records and owns the merge-update semantics.
type Trends struct {
	Log  *zap.Logger
	Coll *mongo.Collection
}

func NewTrends(log *zap.Logger, coll *mongo.Collection) *Trends {
	return &Trends{Log: log, Coll: coll}
}

// InsertFromVideos stores one trend record per validated video under the
// given platform label. A failed insert skips that item only; the batch
// fails solely when nothing could be stored.
func (s *Trends) InsertFromVideos(ctx context.Context, videos []model.Video, platform string) ([]model.Trend, error) {
	stored := make([]model.Trend, 0, len(videos))
	for _, v := range videos {
		t := model.NewTrend(v, platform)
		res, err := s.Coll.InsertOne(ctx, t)
		if err != nil {
			s.Log.Error("failed to insert trend",
				zap.String("video_id", v.VideoID),
				zap.Error(err),
			)
			continue
		}
		if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
			t.ID = oid
		}
		stored = append(stored, *t)
	}
	if len(stored) == 0 && len(videos) > 0 {
		return nil, ErrNothingStored
	}
	return stored, nil
}

// List returns all stored trends.
func (s *Trends) List(ctx context.Context) ([]model.Trend, error) {
	cur, err := s.Coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer func(cur *mongo.Cursor, ctx context.Context) {
		if err := cur.Close(ctx); err != nil {
			s.Log.Warn("failed to close cursor", zap.Error(err))
		}
	}(cur, ctx)

	var out []model.Trend
	for cur.Next(ctx) {
		var t model.Trend
		if err := cur.Decode(&t); err != nil {
			s.Log.Warn("failed to decode trend", zap.Error(err))
			continue
		}
		out = append(out, t)
	}
	return out, cur.Err()
}

// Get returns one trend by its hex identifier.
func (s *Trends) Get(ctx context.Context, id string) (*model.Trend, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var t model.Trend
	if err := s.Coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Update applies a partial patch to an existing trend: read the stored
// record, compute the merged field set, write it with one $set. Returns the
// record as persisted after the update.
func (s *Trends) Update(ctx context.Context, id string, patch map[string]any) (*model.Trend, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if len(patch) == 0 {
		return nil, ErrEmptyPatch
	}

	var existing model.Trend
	if err := s.Coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&existing); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	update, err := buildTrendUpdate(&existing, patch)
	if err != nil {
		return nil, err
	}
	if !trendChanged(&existing, update) {
		return nil, ErrNoChanges
	}
	update["updated_at"] = time.Now().UTC()

	res, err := s.Coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": update})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}

	var updated model.Trend
	if err := s.Coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&updated); err != nil {
		return nil, err
	}
	s.Log.Info("trend updated", zap.String("id", id))
	return &updated, nil
}

// Delete removes one trend by its hex identifier.
func (s *Trends) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := s.Coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	s.Log.Info("trend deleted", zap.String("id", id))
	return nil
}

// BulkDelete removes many trends in one store call. All identifiers are
// validated up front; any invalid one rejects the whole operation before a
// single deletion happens. The deleted count can be lower than the request
// when records no longer exist.
func (s *Trends) BulkDelete(ctx context.Context, ids []string) (int64, []string, error) {
	valid, invalid := partitionIDs(ids)
	if len(invalid) > 0 {
		return 0, nil, &InvalidIDsError{IDs: invalid}
	}

	res, err := s.Coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": valid}})
	if err != nil {
		return 0, nil, err
	}

	targeted := make([]string, len(valid))
	for i, oid := range valid {
		targeted[i] = oid.Hex()
	}
	s.Log.Info("trends bulk deleted",
		zap.Int("requested", len(ids)),
		zap.Int64("deleted", res.DeletedCount),
	)
	return res.DeletedCount, targeted, nil
}

// buildTrendUpdate computes the fields to persist for a partial patch. Only
// keys present in the patch are considered; every engagement-metrics
// sub-field falls back to the stored value when the patch omits it, and
// views/is_short are re-normalized even when carried over.
func buildTrendUpdate(existing *model.Trend, patch map[string]any) (bson.M, error) {
	update := bson.M{}

	if v, exists := patch["title"]; exists {
		update["title"] = strings.TrimSpace(processor.Stringify(v))
	}
	if v, exists := patch["platform"]; exists {
		update["platform"] = strings.TrimSpace(processor.Stringify(v))
	}

	if v, exists := patch["engagement_metrics"]; exists {
		metrics, isMap := v.(map[string]any)
		if !isMap {
			return nil, ErrInvalidMetrics
		}
		cur := existing.EngagementMetrics
		update["engagement_metrics"] = model.EngagementMetrics{
			Views:         processor.CleanViewsCount(metricOr(metrics, "views", cur.Views)),
			PublishedTime: processor.Stringify(metricOr(metrics, "published_time", cur.PublishedTime)),
			Channel:       processor.Stringify(metricOr(metrics, "channel", cur.Channel)),
			ChannelLink:   processor.Stringify(metricOr(metrics, "channel_link", cur.ChannelLink)),
			Length:        processor.Stringify(metricOr(metrics, "length", cur.Length)),
			Thumbnail:     metricOr(metrics, "thumbnail", cur.Thumbnail),
			VideoLink:     processor.Stringify(metricOr(metrics, "video_link", cur.VideoLink)),
			VideoID:       processor.Stringify(metricOr(metrics, "video_id", cur.VideoID)),
			IsShort:       processor.Boolish(metricOr(metrics, "is_short", cur.IsShort)),
		}
	}

	if v, exists := patch["sentiment_score"]; exists {
		update["sentiment_score"] = v
	}

	return update, nil
}

// trendChanged reports whether the computed update set differs from the
// stored record. An update that would persist identical values is refused
// instead of written as a no-op that looks successful.
func trendChanged(existing *model.Trend, update bson.M) bool {
	for key, v := range update {
		switch key {
		case "title":
			if v != existing.Title {
				return true
			}
		case "platform":
			if v != existing.Platform {
				return true
			}
		case "engagement_metrics":
			if !reflect.DeepEqual(v, existing.EngagementMetrics) {
				return true
			}
		case "sentiment_score":
			if !reflect.DeepEqual(v, existing.SentimentScore) {
				return true
			}
		}
	}
	return false
}

func metricOr(metrics map[string]any, key string, fallback any) any {
	if v, exists := metrics[key]; exists {
		return v
	}
	return fallback
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, &InvalidIDsError{IDs: []string{id}}
	}
	return oid, nil
}

// partitionIDs splits identifiers into store-valid ObjectIDs and the raw
// strings that failed validation.
func partitionIDs(ids []string) ([]primitive.ObjectID, []string) {
	valid := make([]primitive.ObjectID, 0, len(ids))
	var invalid []string
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			invalid = append(invalid, id)
			continue
		}
		valid = append(valid, oid)
	}
	return valid, invalid
}
