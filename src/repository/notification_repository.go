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

type NotificationRepository interface {
	Insert(ctx context.Context, n *models.Notification) error
	ListForRecipient(ctx context.Context, recipient primitive.ObjectID, page, limit int) ([]models.Notification, error)
	MarkRead(ctx context.Context, id, recipient primitive.ObjectID) (bool, error)
	Delete(ctx context.Context, id, recipient primitive.ObjectID) (bool, error)
}

type mongoNotificationRepo struct {
	col *mongo.Collection
}

func NewMongoNotificationRepo(db *mongo.Database) NotificationRepository {
	return &mongoNotificationRepo{col: db.Collection("notifications")}
}

func (r *mongoNotificationRepo) Insert(ctx context.Context, n *models.Notification) error {
	n.Id = primitive.NewObjectID()
	n.CreatedAt = time.Now().UTC()

	_, err := r.col.InsertOne(ctx, n)
	return err
}

func (r *mongoNotificationRepo) ListForRecipient(ctx context.Context, recipient primitive.ObjectID, page, limit int) ([]models.Notification, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(pageSkip(page, limit)).
		SetLimit(int64(limit))

	cursor, err := r.col.Find(ctx, bson.M{"recipient": recipient}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *mongoNotificationRepo) MarkRead(ctx context.Context, id, recipient primitive.ObjectID) (bool, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "recipient": recipient},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil
}

func (r *mongoNotificationRepo) Delete(ctx context.Context, id, recipient primitive.ObjectID) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "recipient": recipient})
	if err != nil {
		return false, err
	}
	return res.DeletedCount == 1, nil
}
