package databases

// go generate: mockery --name PatientDatabase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carepoint/clinic-api/models"
)

const patientCollection = "patients"

// PatientDatabase contains the methods to use with the patient database
type PatientDatabase interface {
	FindByID(ctx context.Context, id string) (*models.Patient, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Patient, error)
	Create(ctx context.Context, patient models.Patient) (*models.Patient, error)
	Update(ctx context.Context, id string, fields bson.M) error
	Delete(ctx context.Context, id string) error
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
}

type patientDatabase struct {
	db DatabaseHelper
}

// NewPatientDatabase initializes a new instance of patient database with the provided db connection
func NewPatientDatabase(db DatabaseHelper) PatientDatabase {
	return &patientDatabase{
		db: db,
	}
}

func (p *patientDatabase) FindByID(ctx context.Context, id string) (*models.Patient, error) {
	patient := &models.Patient{}
	err := p.db.Collection(patientCollection).FindOne(ctx, bson.M{"_id": id}).Decode(patient)
	if err != nil {
		return nil, wrapStoreError("findOne", patientCollection, err)
	}
	normalized := patient.Normalized()
	return &normalized, nil
}

func (p *patientDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Patient, error) {
	var patients []models.Patient
	cur, err := p.db.Collection(patientCollection).Find(ctx, filter, opts...)
	if err != nil {
		return nil, wrapStoreError("find", patientCollection, err)
	}
	err = cur.Decode(&patients)
	if err != nil {
		return nil, wrapStoreError("decode", patientCollection, err)
	}
	for i := range patients {
		patients[i] = patients[i].Normalized()
	}
	return patients, nil
}

func (p *patientDatabase) Create(ctx context.Context, patient models.Patient) (*models.Patient, error) {
	if patient.ID == "" {
		patient.ID = uuid.NewString()
	}
	if patient.RegisteredDate == "" {
		patient.RegisteredDate = time.Now().Format("2006-01-02")
	}
	patient = patient.Normalized()
	patient.CreatedAt = primitive.NewDateTimeFromTime(time.Now())
	patient.UpdatedAt = patient.CreatedAt

	_, err := p.db.Collection(patientCollection).InsertOne(ctx, patient)
	if err != nil {
		return nil, wrapStoreError("insertOne", patientCollection, err)
	}
	return &patient, nil
}

func (p *patientDatabase) Update(ctx context.Context, id string, fields bson.M) error {
	update := bson.M{}
	for key, value := range fields {
		update[key] = value
	}
	update["updatedAt"] = primitive.NewDateTimeFromTime(time.Now())

	res, err := p.db.Collection(patientCollection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		return wrapStoreError("updateOne", patientCollection, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the patient from the active set. Deleting an id that is
// already absent is not an error. Appointments referencing the patient are
// left alone.
func (p *patientDatabase) Delete(ctx context.Context, id string) error {
	_, err := p.db.Collection(patientCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return wrapStoreError("deleteOne", patientCollection, err)
	}
	return nil
}

func (p *patientDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	count, err := p.db.Collection(patientCollection).CountDocuments(ctx, filter, opts...)
	if err != nil {
		return 0, wrapStoreError("count", patientCollection, err)
	}
	return count, nil
}
