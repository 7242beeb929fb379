package databases

// go generate: mockery --name BillingDatabase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carepoint/clinic-api/models"
)

const billingCollection = "billing"

// BillingDatabase contains the methods to use with the billing database
type BillingDatabase interface {
	FindByID(ctx context.Context, id string) (*models.BillingRecord, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.BillingRecord, error)
	FindByPatientID(ctx context.Context, patientID string) ([]models.BillingRecord, error)
	Create(ctx context.Context, record models.BillingRecord) (*models.BillingRecord, error)
	UpdateStatus(ctx context.Context, id string, status string) error
}

type billingDatabase struct {
	db DatabaseHelper
}

// NewBillingDatabase initializes a new instance of billing database with the provided db connection
func NewBillingDatabase(db DatabaseHelper) BillingDatabase {
	return &billingDatabase{
		db: db,
	}
}

func (b *billingDatabase) FindByID(ctx context.Context, id string) (*models.BillingRecord, error) {
	record := &models.BillingRecord{}
	err := b.db.Collection(billingCollection).FindOne(ctx, bson.M{"_id": id}).Decode(record)
	if err != nil {
		return nil, wrapStoreError("findOne", billingCollection, err)
	}
	normalized := record.Normalized()
	return &normalized, nil
}

func (b *billingDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.BillingRecord, error) {
	var records []models.BillingRecord
	cur, err := b.db.Collection(billingCollection).Find(ctx, filter, opts...)
	if err != nil {
		return nil, wrapStoreError("find", billingCollection, err)
	}
	err = cur.Decode(&records)
	if err != nil {
		return nil, wrapStoreError("decode", billingCollection, err)
	}
	for i := range records {
		records[i] = records[i].Normalized()
	}
	return records, nil
}

func (b *billingDatabase) FindByPatientID(ctx context.Context, patientID string) ([]models.BillingRecord, error) {
	return b.Find(ctx, bson.M{"patientId": patientID})
}

// Create persists a billing record. The stored total is always recomputed as
// subtotal - discount + tax, regardless of what the caller supplied.
func (b *billingDatabase) Create(ctx context.Context, record models.BillingRecord) (*models.BillingRecord, error) {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	record = record.Normalized()
	record.Total = record.ComputedTotal()
	record.CreatedAt = primitive.NewDateTimeFromTime(time.Now())
	record.UpdatedAt = record.CreatedAt

	_, err := b.db.Collection(billingCollection).InsertOne(ctx, record)
	if err != nil {
		return nil, wrapStoreError("insertOne", billingCollection, err)
	}
	return &record, nil
}

func (b *billingDatabase) UpdateStatus(ctx context.Context, id string, status string) error {
	res, err := b.db.Collection(billingCollection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"status":    status,
		"updatedAt": primitive.NewDateTimeFromTime(time.Now()),
	}})
	if err != nil {
		return wrapStoreError("updateOne", billingCollection, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
