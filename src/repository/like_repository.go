package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mednest/Backend-Med-Nest/src/models"
)

type LikeRepository interface {
	// Insert fails with ErrDuplicateKey when the (user, target, kind) fact
	// already exists; the unique index is the real guard against races.
	Insert(ctx context.Context, like *models.Like) error
	DeleteMatching(ctx context.Context, user, target primitive.ObjectID, kind models.TargetKind) (bool, error)
	Exists(ctx context.Context, user, target primitive.ObjectID, kind models.TargetKind) (bool, error)
	Count(ctx context.Context, target primitive.ObjectID, kind models.TargetKind) (int64, error)
	CountForTargets(ctx context.Context, targets []primitive.ObjectID, kind models.TargetKind) (map[primitive.ObjectID]int64, error)
	// LikedSet returns which of the given targets the user has liked.
	LikedSet(ctx context.Context, user primitive.ObjectID, targets []primitive.ObjectID, kind models.TargetKind) (map[primitive.ObjectID]bool, error)
	DeleteForTarget(ctx context.Context, target primitive.ObjectID, kind models.TargetKind) error
	DeleteForTargets(ctx context.Context, targets []primitive.ObjectID, kind models.TargetKind) error
}

type mongoLikeRepo struct {
	col *mongo.Collection
}

func NewMongoLikeRepo(db *mongo.Database) LikeRepository {
	return &mongoLikeRepo{col: db.Collection("likes")}
}

func (r *mongoLikeRepo) Insert(ctx context.Context, like *models.Like) error {
	like.Id = primitive.NewObjectID()
	like.CreatedAt = time.Now().UTC()

	_, err := r.col.InsertOne(ctx, like)
	return wrapDuplicate(err)
}

func (r *mongoLikeRepo) DeleteMatching(ctx context.Context, user, target primitive.ObjectID, kind models.TargetKind) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"user": user, "target": target, "targetKind": kind})
	if err != nil {
		return false, err
	}
	return res.DeletedCount == 1, nil
}

func (r *mongoLikeRepo) Exists(ctx context.Context, user, target primitive.ObjectID, kind models.TargetKind) (bool, error) {
	err := r.col.FindOne(ctx, bson.M{"user": user, "target": target, "targetKind": kind}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *mongoLikeRepo) Count(ctx context.Context, target primitive.ObjectID, kind models.TargetKind) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"target": target, "targetKind": kind})
}

func (r *mongoLikeRepo) CountForTargets(ctx context.Context, targets []primitive.ObjectID, kind models.TargetKind) (map[primitive.ObjectID]int64, error) {
	out := make(map[primitive.ObjectID]int64, len(targets))
	if len(targets) == 0 {
		return out, nil
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"target": bson.M{"$in": targets}, "targetKind": kind}}},
		{{Key: "$group", Value: bson.M{"_id": "$target", "count": bson.M{"$sum": 1}}}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID    primitive.ObjectID `bson:"_id"`
		Count int64              `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ID] = row.Count
	}
	return out, nil
}

func (r *mongoLikeRepo) LikedSet(ctx context.Context, user primitive.ObjectID, targets []primitive.ObjectID, kind models.TargetKind) (map[primitive.ObjectID]bool, error) {
	out := make(map[primitive.ObjectID]bool, len(targets))
	if len(targets) == 0 {
		return out, nil
	}

	cursor, err := r.col.Find(ctx, bson.M{
		"user":       user,
		"target":     bson.M{"$in": targets},
		"targetKind": kind,
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var likes []models.Like
	if err := cursor.All(ctx, &likes); err != nil {
		return nil, err
	}
	for _, like := range likes {
		out[like.Target] = true
	}
	return out, nil
}

func (r *mongoLikeRepo) DeleteForTarget(ctx context.Context, target primitive.ObjectID, kind models.TargetKind) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"target": target, "targetKind": kind})
	return err
}

func (r *mongoLikeRepo) DeleteForTargets(ctx context.Context, targets []primitive.ObjectID, kind models.TargetKind) error {
	if len(targets) == 0 {
		return nil
	}
	_, err := r.col.DeleteMany(ctx, bson.M{"target": bson.M{"$in": targets}, "targetKind": kind})
	return err
}
