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

type ConnectionRepository interface {
	Insert(ctx context.Context, conn *models.Connection) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Connection, error)
	// FindBetween returns the records between two users in both directions.
	FindBetween(ctx context.Context, a, b primitive.ObjectID) ([]models.Connection, error)
	// Accept flips accepted=false to true iff the record belongs to recipient.
	// Returns false when no record matched the pending predicate.
	Accept(ctx context.Context, id, recipient primitive.ObjectID) (bool, error)
	// Delete removes a pending record iff it belongs to recipient.
	Delete(ctx context.Context, id, recipient primitive.ObjectID) (bool, error)
	ListPendingFor(ctx context.Context, recipient primitive.ObjectID) ([]models.Connection, error)
	ListAcceptedOf(ctx context.Context, user primitive.ObjectID) ([]models.Connection, error)
	ListInvolving(ctx context.Context, user primitive.ObjectID) ([]models.Connection, error)
	// CountAcceptedFor aggregates accepted-connection counts for a batch of
	// users in one round trip.
	CountAcceptedFor(ctx context.Context, users []primitive.ObjectID) (map[primitive.ObjectID]int64, error)
}

type mongoConnectionRepo struct {
	col *mongo.Collection
}

func NewMongoConnectionRepo(db *mongo.Database) ConnectionRepository {
	return &mongoConnectionRepo{col: db.Collection("connections")}
}

func (r *mongoConnectionRepo) Insert(ctx context.Context, conn *models.Connection) error {
	conn.Id = primitive.NewObjectID()
	conn.CreatedAt = time.Now().UTC()

	_, err := r.col.InsertOne(ctx, conn)
	return wrapDuplicate(err)
}

func (r *mongoConnectionRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Connection, error) {
	var conn models.Connection
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&conn)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &conn, nil
}

func (r *mongoConnectionRepo) FindBetween(ctx context.Context, a, b primitive.ObjectID) ([]models.Connection, error) {
	filter := bson.M{"$or": []bson.M{
		{"requester": a, "recipient": b},
		{"requester": b, "recipient": a},
	}}
	return r.list(ctx, filter)
}

func (r *mongoConnectionRepo) Accept(ctx context.Context, id, recipient primitive.ObjectID) (bool, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "recipient": recipient, "accepted": false},
		bson.M{"$set": bson.M{"accepted": true}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

func (r *mongoConnectionRepo) Delete(ctx context.Context, id, recipient primitive.ObjectID) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "recipient": recipient, "accepted": false})
	if err != nil {
		return false, err
	}
	return res.DeletedCount == 1, nil
}

func (r *mongoConnectionRepo) ListPendingFor(ctx context.Context, recipient primitive.ObjectID) ([]models.Connection, error) {
	return r.list(ctx, bson.M{"recipient": recipient, "accepted": false})
}

func (r *mongoConnectionRepo) ListAcceptedOf(ctx context.Context, user primitive.ObjectID) ([]models.Connection, error) {
	return r.list(ctx, bson.M{
		"accepted": true,
		"$or":      []bson.M{{"requester": user}, {"recipient": user}},
	})
}

func (r *mongoConnectionRepo) ListInvolving(ctx context.Context, user primitive.ObjectID) ([]models.Connection, error) {
	return r.list(ctx, bson.M{"$or": []bson.M{{"requester": user}, {"recipient": user}}})
}

func (r *mongoConnectionRepo) list(ctx context.Context, filter bson.M) ([]models.Connection, error) {
	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var conns []models.Connection
	if err := cursor.All(ctx, &conns); err != nil {
		return nil, err
	}
	return conns, nil
}

func (r *mongoConnectionRepo) CountAcceptedFor(ctx context.Context, users []primitive.ObjectID) (map[primitive.ObjectID]int64, error) {
	out := make(map[primitive.ObjectID]int64, len(users))
	if len(users) == 0 {
		return out, nil
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"accepted": true,
			"$or": []bson.M{
				{"requester": bson.M{"$in": users}},
				{"recipient": bson.M{"$in": users}},
			},
		}}},
		{{Key: "$project", Value: bson.M{"parties": bson.A{"$requester", "$recipient"}}}},
		{{Key: "$unwind", Value: "$parties"}},
		{{Key: "$match", Value: bson.M{"parties": bson.M{"$in": users}}}},
		{{Key: "$group", Value: bson.M{"_id": "$parties", "count": bson.M{"$sum": 1}}}},
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
