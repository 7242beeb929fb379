package databases

// go generate: mockery --name AppointmentDatabase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carepoint/clinic-api/models"
)

const appointmentCollection = "appointments"

// AppointmentDatabase contains the methods to use with the appointment database
type AppointmentDatabase interface {
	FindByID(ctx context.Context, id string) (*models.Appointment, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Appointment, error)
	Create(ctx context.Context, appointment models.Appointment) (*models.Appointment, error)
	Update(ctx context.Context, id string, fields bson.M) error
	UpdateStatus(ctx context.Context, id string, status string) error
	Delete(ctx context.Context, id string) error
	CheckTimeSlotAvailability(ctx context.Context, doctorID, branchID, date, timeSlot string) (bool, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
}

type appointmentDatabase struct {
	db DatabaseHelper
}

// NewAppointmentDatabase initializes a new instance of appointment database with the provided db connection
func NewAppointmentDatabase(db DatabaseHelper) AppointmentDatabase {
	return &appointmentDatabase{
		db: db,
	}
}

func (a *appointmentDatabase) FindByID(ctx context.Context, id string) (*models.Appointment, error) {
	appointment := &models.Appointment{}
	err := a.db.Collection(appointmentCollection).FindOne(ctx, bson.M{"_id": id}).Decode(appointment)
	if err != nil {
		return nil, wrapStoreError("findOne", appointmentCollection, err)
	}
	normalized := appointment.Normalized()
	return &normalized, nil
}

func (a *appointmentDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Appointment, error) {
	var appointments []models.Appointment
	cur, err := a.db.Collection(appointmentCollection).Find(ctx, filter, opts...)
	if err != nil {
		return nil, wrapStoreError("find", appointmentCollection, err)
	}
	err = cur.Decode(&appointments)
	if err != nil {
		return nil, wrapStoreError("decode", appointmentCollection, err)
	}
	for i := range appointments {
		appointments[i] = appointments[i].Normalized()
	}
	return appointments, nil
}

func (a *appointmentDatabase) Create(ctx context.Context, appointment models.Appointment) (*models.Appointment, error) {
	if appointment.ID == "" {
		appointment.ID = uuid.NewString()
	}
	appointment = appointment.Normalized()
	now := primitive.NewDateTimeFromTime(time.Now())
	if appointment.BookedAt == 0 {
		appointment.BookedAt = now
	}
	appointment.CreatedAt = now
	appointment.UpdatedAt = now

	_, err := a.db.Collection(appointmentCollection).InsertOne(ctx, appointment)
	if err != nil {
		return nil, wrapStoreError("insertOne", appointmentCollection, err)
	}
	return &appointment, nil
}

func (a *appointmentDatabase) Update(ctx context.Context, id string, fields bson.M) error {
	update := bson.M{}
	for key, value := range fields {
		update[key] = value
	}
	update["updatedAt"] = primitive.NewDateTimeFromTime(time.Now())

	res, err := a.db.Collection(appointmentCollection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		return wrapStoreError("updateOne", appointmentCollection, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateStatus sets the appointment status. Transitions are unconstrained:
// any caller may move an appointment to any status.
func (a *appointmentDatabase) UpdateStatus(ctx context.Context, id string, status string) error {
	return a.Update(ctx, id, bson.M{"status": status})
}

func (a *appointmentDatabase) Delete(ctx context.Context, id string) error {
	_, err := a.db.Collection(appointmentCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return wrapStoreError("deleteOne", appointmentCollection, err)
	}
	return nil
}

// CheckTimeSlotAvailability reports whether the exact (doctor, branch, date,
// time) tuple is free of pending or confirmed appointments. Advisory only:
// nothing serializes the gap between this check and a subsequent booking, so
// callers must tolerate the occasional double booking.
func (a *appointmentDatabase) CheckTimeSlotAvailability(ctx context.Context, doctorID, branchID, date, timeSlot string) (bool, error) {
	count, err := a.db.Collection(appointmentCollection).CountDocuments(ctx, bson.M{
		"doctorId": doctorID,
		"branchId": branchID,
		"date":     date,
		"time":     timeSlot,
		"status":   bson.M{"$in": []string{models.AppointmentStatusConfirmed, models.AppointmentStatusPending}},
	})
	if err != nil {
		return false, wrapStoreError("count", appointmentCollection, err)
	}
	return count == 0, nil
}

func (a *appointmentDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	count, err := a.db.Collection(appointmentCollection).CountDocuments(ctx, filter, opts...)
	if err != nil {
		return 0, wrapStoreError("count", appointmentCollection, err)
	}
	return count, nil
}
