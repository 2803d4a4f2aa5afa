package helper

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Stores struct {
	DB              *mongo.Database
	Trends          *mongo.Collection
	InstagramTrends *mongo.Collection
}

// MustMongo connects, pings, and wires the fixed collections. Startup
// cannot proceed without the store, so failures panic.
func MustMongo(ctx context.Context, host, dbname, username, password, authSource string) *Stores {
	clientOpts := options.Client().ApplyURI("mongodb://" + host)
	if username != "" {
		clientOpts = clientOpts.SetAuth(options.Credential{
			Username:   username,
			Password:   password,
			AuthSource: authSource,
		})
	}

	cli, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		panic(err)
	}
	if err = cli.Ping(ctx, nil); err != nil {
		panic(err)
	}

	db := cli.Database(dbname)
	s := &Stores{
		DB:              db,
		Trends:          db.Collection("trends"),
		InstagramTrends: db.Collection("instagram_trends"),
	}
	ensureIndexes(ctx, s)
	return s
}

func ensureIndexes(ctx context.Context, s *Stores) {
	_, _ = s.Trends.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "platform", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
	})
	_, _ = s.InstagramTrends.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "hashtag", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
}
