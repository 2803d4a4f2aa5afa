package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"trend-fetch/internal/trend_fetch/model"
)

// Instagram persists hashtag trend records.
type Instagram struct {
	Log  *zap.Logger
	Coll *mongo.Collection
}

func NewInstagram(log *zap.Logger, coll *mongo.Collection) *Instagram {
	return &Instagram{Log: log, Coll: coll}
}

// Create stores a new hashtag trend. The hashtag must already be
// normalized; data is the opaque upstream payload.
func (s *Instagram) Create(ctx context.Context, hashtag string, data map[string]any) (*model.InstagramTrend, error) {
	t := model.NewInstagramTrend(hashtag, data)
	res, err := s.Coll.InsertOne(ctx, t)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		t.ID = oid
	}
	s.Log.Info("instagram trend created", zap.String("hashtag", hashtag))
	return t, nil
}

// List returns all stored hashtag trends.
func (s *Instagram) List(ctx context.Context) ([]model.InstagramTrend, error) {
	cur, err := s.Coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer func(cur *mongo.Cursor, ctx context.Context) {
		if err := cur.Close(ctx); err != nil {
			s.Log.Warn("failed to close cursor", zap.Error(err))
		}
	}(cur, ctx)

	var out []model.InstagramTrend
	for cur.Next(ctx) {
		var t model.InstagramTrend
		if err := cur.Decode(&t); err != nil {
			s.Log.Warn("failed to decode instagram trend", zap.Error(err))
			continue
		}
		out = append(out, t)
	}
	return out, cur.Err()
}

// Get returns one hashtag trend by its hex identifier.
func (s *Instagram) Get(ctx context.Context, id string) (*model.InstagramTrend, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var t model.InstagramTrend
	if err := s.Coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Update replaces the hashtag and payload of an existing record. The
// hashtag must already be normalized; writing identical values back is
// reported as ErrNoChanges.
func (s *Instagram) Update(ctx context.Context, id, hashtag string, data map[string]any) (*model.InstagramTrend, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	res, err := s.Coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"hashtag": hashtag,
		"data":    data,
	}})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	if res.ModifiedCount == 0 {
		return nil, ErrNoChanges
	}

	var updated model.InstagramTrend
	if err := s.Coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&updated); err != nil {
		return nil, err
	}
	s.Log.Info("instagram trend updated", zap.String("id", id), zap.String("hashtag", hashtag))
	return &updated, nil
}

// Delete removes one hashtag trend by its hex identifier.
func (s *Instagram) Delete(ctx context.Context, id string) error {
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
	s.Log.Info("instagram trend deleted", zap.String("id", id))
	return nil
}
