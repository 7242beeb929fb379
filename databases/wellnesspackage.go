package databases

// go generate: mockery --name WellnessPackageDatabase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carepoint/clinic-api/models"
)

const wellnessPackageCollection = "wellnessPackages"

// WellnessPackageDatabase contains the methods to use with the wellness package database
type WellnessPackageDatabase interface {
	FindByID(ctx context.Context, id string) (*models.WellnessPackage, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.WellnessPackage, error)
	Create(ctx context.Context, pkg models.WellnessPackage) (*models.WellnessPackage, error)
	Update(ctx context.Context, id string, fields bson.M) error
	Delete(ctx context.Context, id string) error
}

type wellnessPackageDatabase struct {
	db DatabaseHelper
}

// NewWellnessPackageDatabase initializes a new instance of wellness package database with the provided db connection
func NewWellnessPackageDatabase(db DatabaseHelper) WellnessPackageDatabase {
	return &wellnessPackageDatabase{
		db: db,
	}
}

func (w *wellnessPackageDatabase) FindByID(ctx context.Context, id string) (*models.WellnessPackage, error) {
	pkg := &models.WellnessPackage{}
	err := w.db.Collection(wellnessPackageCollection).FindOne(ctx, bson.M{"_id": id}).Decode(pkg)
	if err != nil {
		return nil, wrapStoreError("findOne", wellnessPackageCollection, err)
	}
	normalized := pkg.Normalized()
	return &normalized, nil
}

func (w *wellnessPackageDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.WellnessPackage, error) {
	var pkgs []models.WellnessPackage
	cur, err := w.db.Collection(wellnessPackageCollection).Find(ctx, filter, opts...)
	if err != nil {
		return nil, wrapStoreError("find", wellnessPackageCollection, err)
	}
	err = cur.Decode(&pkgs)
	if err != nil {
		return nil, wrapStoreError("decode", wellnessPackageCollection, err)
	}
	for i := range pkgs {
		pkgs[i] = pkgs[i].Normalized()
	}
	return pkgs, nil
}

func (w *wellnessPackageDatabase) Create(ctx context.Context, pkg models.WellnessPackage) (*models.WellnessPackage, error) {
	if pkg.ID == "" {
		pkg.ID = uuid.NewString()
	}
	pkg = pkg.Normalized()
	pkg.CreatedAt = primitive.NewDateTimeFromTime(time.Now())
	pkg.UpdatedAt = pkg.CreatedAt

	_, err := w.db.Collection(wellnessPackageCollection).InsertOne(ctx, pkg)
	if err != nil {
		return nil, wrapStoreError("insertOne", wellnessPackageCollection, err)
	}
	return &pkg, nil
}

func (w *wellnessPackageDatabase) Update(ctx context.Context, id string, fields bson.M) error {
	update := bson.M{}
	for key, value := range fields {
		update[key] = value
	}
	update["updatedAt"] = primitive.NewDateTimeFromTime(time.Now())

	res, err := w.db.Collection(wellnessPackageCollection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		return wrapStoreError("updateOne", wellnessPackageCollection, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (w *wellnessPackageDatabase) Delete(ctx context.Context, id string) error {
	_, err := w.db.Collection(wellnessPackageCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return wrapStoreError("deleteOne", wellnessPackageCollection, err)
	}
	return nil
}
