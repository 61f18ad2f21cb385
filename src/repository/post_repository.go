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

// PostQuery selects a newest-first page of posts. ExcludeAuthor implements the
// feed's viewer self-exclusion; Author selects a single user's posts.
type PostQuery struct {
	ExcludeAuthor *primitive.ObjectID
	Author        *primitive.ObjectID
	Page          int
	Limit         int
}

// PostUpdate replaces the description and, when Media is non-nil, the whole
// media list. Media is replace-not-merge.
type PostUpdate struct {
	Description string
	Media       []models.MediaRef
}

type PostRepository interface {
	Insert(ctx context.Context, post *models.Post) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	// Update applies the change iff the post belongs to author; returns false
	// when nothing matched.
	Update(ctx context.Context, id, author primitive.ObjectID, update PostUpdate) (bool, error)
	Delete(ctx context.Context, id, author primitive.ObjectID) (bool, error)
	List(ctx context.Context, q PostQuery) ([]models.Post, error)
}

type mongoPostRepo struct {
	col *mongo.Collection
}

func NewMongoPostRepo(db *mongo.Database) PostRepository {
	return &mongoPostRepo{col: db.Collection("posts")}
}

func (r *mongoPostRepo) Insert(ctx context.Context, post *models.Post) error {
	post.Id = primitive.NewObjectID()
	post.CreatedAt = time.Now().UTC()
	post.UpdatedAt = post.CreatedAt

	_, err := r.col.InsertOne(ctx, post)
	return err
}

func (r *mongoPostRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *mongoPostRepo) Update(ctx context.Context, id, author primitive.ObjectID, update PostUpdate) (bool, error) {
	set := bson.M{
		"description": update.Description,
		"updatedAt":   time.Now().UTC(),
	}
	if update.Media != nil {
		set["media"] = update.Media
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id, "author": author}, bson.M{"$set": set})
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil
}

func (r *mongoPostRepo) Delete(ctx context.Context, id, author primitive.ObjectID) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "author": author})
	if err != nil {
		return false, err
	}
	return res.DeletedCount == 1, nil
}

func (r *mongoPostRepo) List(ctx context.Context, q PostQuery) ([]models.Post, error) {
	filter := bson.M{}
	if q.ExcludeAuthor != nil {
		filter["author"] = bson.M{"$ne": *q.ExcludeAuthor}
	}
	if q.Author != nil {
		filter["author"] = *q.Author
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(pageSkip(q.Page, q.Limit)).
		SetLimit(int64(q.Limit))

	cursor, err := r.col.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}
