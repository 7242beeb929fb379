package databases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/carepoint/clinic-api/databases"
	"github.com/carepoint/clinic-api/databases/mocks"
	"github.com/carepoint/clinic-api/models"
)

func slotFilter(doctorID, branchID, date, timeSlot string) bson.M {
	return bson.M{
		"doctorId": doctorID,
		"branchId": branchID,
		"date":     date,
		"time":     timeSlot,
		"status":   bson.M{"$in": []string{models.AppointmentStatusConfirmed, models.AppointmentStatusPending}},
	}
}

func TestAppointmentDatabase_CheckTimeSlotAvailabilityFreeSlot(t *testing.T) {

	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}

	collectionHelper.(*mocks.CollectionHelper).
		On("CountDocuments", context.Background(), slotFilter("d1", "b1", "2026-09-02", "10:00")).
		Return(int64(0), nil)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "appointments").Return(collectionHelper)

	appointmentDba := databases.NewAppointmentDatabase(dbHelper)

	available, err := appointmentDba.CheckTimeSlotAvailability(context.Background(), "d1", "b1", "2026-09-02", "10:00")

	assert.NoError(t, err)
	assert.True(t, available)
}

func TestAppointmentDatabase_CheckTimeSlotAvailabilityTakenSlot(t *testing.T) {

	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}

	// one pending or confirmed appointment already holds the slot
	collectionHelper.(*mocks.CollectionHelper).
		On("CountDocuments", context.Background(), slotFilter("d1", "b1", "2026-09-02", "10:00")).
		Return(int64(1), nil)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "appointments").Return(collectionHelper)

	appointmentDba := databases.NewAppointmentDatabase(dbHelper)

	available, err := appointmentDba.CheckTimeSlotAvailability(context.Background(), "d1", "b1", "2026-09-02", "10:00")

	assert.NoError(t, err)
	assert.False(t, available)
}

func TestAppointmentDatabase_CheckTimeSlotAvailabilityError(t *testing.T) {

	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}

	collectionHelper.(*mocks.CollectionHelper).
		On("CountDocuments", context.Background(), mock.Anything).
		Return(int64(0), errors.New("mocked-error"))

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "appointments").Return(collectionHelper)

	appointmentDba := databases.NewAppointmentDatabase(dbHelper)

	available, err := appointmentDba.CheckTimeSlotAvailability(context.Background(), "d1", "b1", "2026-09-02", "10:00")

	assert.False(t, available)

	var storeErr *databases.StoreError
	assert.ErrorAs(t, err, &storeErr)
}

func TestAppointmentDatabase_CreateAppliesDefaults(t *testing.T) {

	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}

	collectionHelper.(*mocks.CollectionHelper).
		On("InsertOne", context.Background(), mock.Anything).
		Return(&mocks.InsertOneResultHelper{}, nil)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "appointments").Return(collectionHelper)

	appointmentDba := databases.NewAppointmentDatabase(dbHelper)

	created, err := appointmentDba.Create(context.Background(), models.Appointment{
		PatientID: "p1",
		DoctorID:  "d1",
		Date:      "2026-09-02",
		Time:      "10:00",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.AppointmentStatusPending, created.Status)
	assert.Equal(t, models.DeriveToken(created.ID), created.Token)
	assert.Equal(t, models.DefaultAppointmentReason, created.Reason)
	assert.NotZero(t, created.BookedAt)
}

func TestAppointmentDatabase_UpdateStatus(t *testing.T) {

	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}

	collectionHelper.(*mocks.CollectionHelper).
		On("UpdateOne", context.Background(), bson.M{"_id": "a1"}, mock.MatchedBy(func(update bson.M) bool {
			set, ok := update["$set"].(bson.M)
			return ok && set["status"] == models.AppointmentStatusConfirmed
		})).
		Return(&mongo.UpdateResult{MatchedCount: 1}, nil)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "appointments").Return(collectionHelper)

	appointmentDba := databases.NewAppointmentDatabase(dbHelper)

	err := appointmentDba.UpdateStatus(context.Background(), "a1", models.AppointmentStatusConfirmed)
	assert.NoError(t, err)
}

func TestAppointmentDatabase_FindNormalizesRecords(t *testing.T) {

	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var cursorHelper databases.CursorHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	cursorHelper = &mocks.CursorHelper{}

	cursorHelper.(*mocks.CursorHelper).
		On("Decode", mock.Anything).
		Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*[]models.Appointment)
		(*arg) = []models.Appointment{{ID: "ab12cd34"}}
	})

	collectionHelper.(*mocks.CollectionHelper).
		On("Find", context.Background(), bson.D{}).
		Return(cursorHelper, nil)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "appointments").Return(collectionHelper)

	appointmentDba := databases.NewAppointmentDatabase(dbHelper)

	appointments, err := appointmentDba.Find(context.Background(), bson.D{})

	assert.NoError(t, err)
	assert.Len(t, appointments, 1)
	assert.Equal(t, "TK-AB12", appointments[0].Token)
	assert.Equal(t, models.AppointmentStatusPending, appointments[0].Status)
	assert.Equal(t, models.AppointmentPriorityMedium, appointments[0].Priority)
}
