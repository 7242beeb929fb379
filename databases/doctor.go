package databases

// go generate: mockery --name DoctorDatabase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carepoint/clinic-api/models"
)

const doctorCollection = "doctors"

// DoctorDatabase contains the methods to use with the doctor database
type DoctorDatabase interface {
	FindByID(ctx context.Context, id string) (*models.Doctor, error)
	FindByIDOrDefault(ctx context.Context, id string) (*models.Doctor, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Doctor, error)
	Create(ctx context.Context, doctor models.Doctor) (*models.Doctor, error)
	Update(ctx context.Context, id string, fields bson.M) error
}

type doctorDatabase struct {
	db DatabaseHelper
}

// NewDoctorDatabase initializes a new instance of doctor database with the provided db connection
func NewDoctorDatabase(db DatabaseHelper) DoctorDatabase {
	return &doctorDatabase{
		db: db,
	}
}

func (d *doctorDatabase) FindByID(ctx context.Context, id string) (*models.Doctor, error) {
	doctor := &models.Doctor{}
	err := d.db.Collection(doctorCollection).FindOne(ctx, bson.M{"_id": id}).Decode(doctor)
	if err != nil {
		return nil, wrapStoreError("findOne", doctorCollection, err)
	}
	normalized := doctor.Normalized()
	return &normalized, nil
}

// FindByIDOrDefault resolves a doctor reference for display. A missing id
// degrades to the placeholder doctor instead of an error; store failures still
// propagate.
func (d *doctorDatabase) FindByIDOrDefault(ctx context.Context, id string) (*models.Doctor, error) {
	doctor, err := d.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		placeholder := models.PlaceholderDoctor(id)
		return &placeholder, nil
	}
	if err != nil {
		return nil, err
	}
	return doctor, nil
}

func (d *doctorDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Doctor, error) {
	var doctors []models.Doctor
	cur, err := d.db.Collection(doctorCollection).Find(ctx, filter, opts...)
	if err != nil {
		return nil, wrapStoreError("find", doctorCollection, err)
	}
	err = cur.Decode(&doctors)
	if err != nil {
		return nil, wrapStoreError("decode", doctorCollection, err)
	}
	for i := range doctors {
		doctors[i] = doctors[i].Normalized()
	}
	return doctors, nil
}

func (d *doctorDatabase) Create(ctx context.Context, doctor models.Doctor) (*models.Doctor, error) {
	if doctor.ID == "" {
		doctor.ID = uuid.NewString()
	}
	doctor = doctor.Normalized()
	doctor.CreatedAt = primitive.NewDateTimeFromTime(time.Now())
	doctor.UpdatedAt = doctor.CreatedAt

	_, err := d.db.Collection(doctorCollection).InsertOne(ctx, doctor)
	if err != nil {
		return nil, wrapStoreError("insertOne", doctorCollection, err)
	}
	return &doctor, nil
}

func (d *doctorDatabase) Update(ctx context.Context, id string, fields bson.M) error {
	update := bson.M{}
	for key, value := range fields {
		update[key] = value
	}
	update["updatedAt"] = primitive.NewDateTimeFromTime(time.Now())

	res, err := d.db.Collection(doctorCollection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		return wrapStoreError("updateOne", doctorCollection, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
