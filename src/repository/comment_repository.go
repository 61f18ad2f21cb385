package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mednest/Backend-Med-Nest/src/models"
)

type CommentRepository interface {
	Insert(ctx context.Context, comment *models.Comment) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error)
	Update(ctx context.Context, id, author primitive.ObjectID, content string) (bool, error)
	Delete(ctx context.Context, id, author primitive.ObjectID) (bool, error)
	ListForPost(ctx context.Context, post primitive.ObjectID, page, limit int) ([]models.Comment, error)
	ListByAuthor(ctx context.Context, author primitive.ObjectID, page, limit int) ([]models.Comment, error)
	CountForPosts(ctx context.Context, posts []primitive.ObjectID) (map[primitive.ObjectID]int64, error)
	// DeleteForPost removes every comment of a post and returns the removed
	// ids so the caller can cascade their likes.
	DeleteForPost(ctx context.Context, post primitive.ObjectID) ([]primitive.ObjectID, error)
}

type mongoCommentRepo struct {
	col *mongo.Collection
}

func NewMongoCommentRepo(db *mongo.Database) CommentRepository {
	return &mongoCommentRepo{col: db.Collection("comments")}
}

func (r *mongoCommentRepo) Insert(ctx context.Context, comment *models.Comment) error {
	comment.Id = primitive.NewObjectID()
	comment.CreatedAt = time.Now().UTC()

	_, err := r.col.InsertOne(ctx, comment)
	return err
}

func (r *mongoCommentRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	var comment models.Comment
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&comment)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *mongoCommentRepo) Update(ctx context.Context, id, author primitive.ObjectID, content string) (bool, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "author": author},
		bson.M{"$set": bson.M{"content": content}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil
}

func (r *mongoCommentRepo) Delete(ctx context.Context, id, author primitive.ObjectID) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "author": author})
	if err != nil {
		return false, err
	}
	return res.DeletedCount == 1, nil
}

func (r *mongoCommentRepo) ListForPost(ctx context.Context, post primitive.ObjectID, page, limit int) ([]models.Comment, error) {
	return r.list(ctx, bson.M{"post": post}, page, limit)
}

func (r *mongoCommentRepo) ListByAuthor(ctx context.Context, author primitive.ObjectID, page, limit int) ([]models.Comment, error) {
	return r.list(ctx, bson.M{"author": author}, page, limit)
}

func (r *mongoCommentRepo) list(ctx context.Context, filter bson.M, page, limit int) ([]models.Comment, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(pageSkip(page, limit)).
		SetLimit(int64(limit))

	cursor, err := r.col.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var comments []models.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *mongoCommentRepo) CountForPosts(ctx context.Context, posts []primitive.ObjectID) (map[primitive.ObjectID]int64, error) {
	out := make(map[primitive.ObjectID]int64, len(posts))
	if len(posts) == 0 {
		return out, nil
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"post": bson.M{"$in": posts}}}},
		{{Key: "$group", Value: bson.M{"_id": "$post", "count": bson.M{"$sum": 1}}}},
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

func (r *mongoCommentRepo) DeleteForPost(ctx context.Context, post primitive.ObjectID) ([]primitive.ObjectID, error) {
	cursor, err := r.col.Find(ctx, bson.M{"post": post},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	if len(ids) == 0 {
		return ids, nil
	}

	_, err = r.col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	return ids, err
}
