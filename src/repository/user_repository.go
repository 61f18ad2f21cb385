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

// UserQuery filters the user listing used by discovery. Exclude removes ids
// from the candidate pool; Search is a case-insensitive substring match over
// name, specialty, institution and location.
type UserQuery struct {
	Exclude []primitive.ObjectID
	Search  string
	Page    int
	Limit   int
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, update models.ProfileUpdate) (*models.User, error)
	List(ctx context.Context, q UserQuery) ([]models.User, error)
}

type mongoUserRepo struct {
	col *mongo.Collection
}

func NewMongoUserRepo(db *mongo.Database) UserRepository {
	return &mongoUserRepo{col: db.Collection("users")}
}

func (r *mongoUserRepo) Create(ctx context.Context, user *models.User) error {
	user.Id = primitive.NewObjectID()
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt

	_, err := r.col.InsertOne(ctx, user)
	return wrapDuplicate(err)
}

func (r *mongoUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *mongoUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *mongoUserRepo) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := r.col.FindOne(ctx, filter).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *mongoUserRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error) {
	out := make(map[primitive.ObjectID]models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cursor, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	for _, u := range users {
		out[u.Id] = u
	}
	return out, nil
}

func (r *mongoUserRepo) UpdateProfile(ctx context.Context, id primitive.ObjectID, update models.ProfileUpdate) (*models.User, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Specialty != nil {
		set["specialty"] = *update.Specialty
	}
	if update.Institution != nil {
		set["institution"] = *update.Institution
	}
	if update.Location != nil {
		set["location"] = *update.Location
	}
	if update.About != nil {
		set["about"] = *update.About
	}
	if update.ProfilePicture != nil {
		set["profile_picture"] = *update.ProfilePicture
	}

	res := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After))

	var user models.User
	err := res.Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *mongoUserRepo) List(ctx context.Context, q UserQuery) ([]models.User, error) {
	filter := bson.M{}
	if len(q.Exclude) > 0 {
		filter["_id"] = bson.M{"$nin": q.Exclude}
	}
	if q.Search != "" {
		regex := bson.M{"$regex": primitive.Regex{Pattern: q.Search, Options: "i"}}
		filter["$or"] = []bson.M{
			{"name": regex},
			{"specialty": regex},
			{"institution": regex},
			{"location": regex},
		}
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetSkip(pageSkip(q.Page, q.Limit)).
		SetLimit(int64(q.Limit))

	cursor, err := r.col.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
