package databases

// go generate: mockery --name UserDatabase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carepoint/clinic-api/models"
)

const userCollection = "users"

// UserDatabase contains the methods to use with the user database
type UserDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.User, error)
	Create(ctx context.Context, user models.User) (*models.User, error)
	Update(ctx context.Context, id string, fields bson.M) error
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
}

type userDatabase struct {
	db DatabaseHelper
}

// NewUserDatabase initializes a new instance of user database with the provided db connection
func NewUserDatabase(db DatabaseHelper) UserDatabase {
	return &userDatabase{
		db: db,
	}
}

func (u *userDatabase) FindOne(ctx context.Context, filter interface{}) (*models.User, error) {
	user := &models.User{}
	err := u.db.Collection(userCollection).FindOne(ctx, filter).Decode(user)
	if err != nil {
		return nil, wrapStoreError("findOne", userCollection, err)
	}
	return user, nil
}

func (u *userDatabase) FindByID(ctx context.Context, id string) (*models.User, error) {
	return u.FindOne(ctx, bson.M{"_id": id})
}

func (u *userDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.User, error) {
	var users []models.User
	cur, err := u.db.Collection(userCollection).Find(ctx, filter, opts...)
	if err != nil {
		return nil, wrapStoreError("find", userCollection, err)
	}
	err = cur.Decode(&users)
	if err != nil {
		return nil, wrapStoreError("decode", userCollection, err)
	}
	return users, nil
}

func (u *userDatabase) Create(ctx context.Context, user models.User) (*models.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = primitive.NewDateTimeFromTime(time.Now())
	user.UpdatedAt = user.CreatedAt

	_, err := u.db.Collection(userCollection).InsertOne(ctx, user)
	if err != nil {
		return nil, wrapStoreError("insertOne", userCollection, err)
	}
	return &user, nil
}

func (u *userDatabase) Update(ctx context.Context, id string, fields bson.M) error {
	update := bson.M{}
	for key, value := range fields {
		update[key] = value
	}
	update["updatedAt"] = primitive.NewDateTimeFromTime(time.Now())

	res, err := u.db.Collection(userCollection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		return wrapStoreError("updateOne", userCollection, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (u *userDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	count, err := u.db.Collection(userCollection).CountDocuments(ctx, filter, opts...)
	if err != nil {
		return 0, wrapStoreError("count", userCollection, err)
	}
	return count, nil
}
