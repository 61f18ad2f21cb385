package lib

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectDB opens the Mongo client and pings the deployment before returning
// a handle to the configured database.
func ConnectDB(ctx context.Context, cfg Config) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	return client.Database(cfg.MongoDB), nil
}

// EnsureIndexes creates the unique indexes the data model relies on.
// Concurrency correctness rests on these: a duplicate connection request or a
// duplicate like must fail at the storage layer, not be filtered in code.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	unique := options.Index().SetUnique(true)

	_, err := db.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
	})
	if err != nil {
		return err
	}

	// One outstanding or accepted request per ordered (requester, recipient) pair
	_, err = db.Collection("connections").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "requester", Value: 1}, {Key: "recipient", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return err
	}

	// A user likes a given target at most once
	_, err = db.Collection("likes").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}, {Key: "target", Value: 1}, {Key: "targetKind", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("comments").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "post", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("posts").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "author", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return err
}
