package databases_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/carepoint/clinic-api/config"
	"github.com/carepoint/clinic-api/databases"
	"github.com/carepoint/clinic-api/databases/mocks"
	"github.com/carepoint/clinic-api/models"
)

func TestNewPatientDatabase(t *testing.T) {
	os.Setenv("DB_URI", "mongodb://127.0.0.1:27017")
	os.Setenv("DB_NAME", "test")
	conf := config.New()

	dbClient, err := databases.NewClient(conf)
	assert.NoError(t, err)

	db := databases.NewDatabase(conf, dbClient)

	patientDB := databases.NewPatientDatabase(db)

	assert.NotEmpty(t, patientDB)
}

func TestPatientDatabase_FindByID(t *testing.T) {

	// define variables for interfaces
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var srHelperErr databases.SingleResultHelper
	var srHelperCorrect databases.SingleResultHelper

	// set interfaces implementation to mocked structures
	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	srHelperErr = &mocks.SingleResultHelper{}
	srHelperCorrect = &mocks.SingleResultHelper{}

	srHelperErr.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(mongo.ErrNoDocuments)

	srHelperCorrect.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*models.Patient)
		arg.ID = "mocked-patient"
	})

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", context.Background(), bson.M{"_id": "missing"}).
		Return(srHelperErr)

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", context.Background(), bson.M{"_id": "mocked-patient"}).
		Return(srHelperCorrect)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "patients").Return(collectionHelper)

	patientDba := databases.NewPatientDatabase(dbHelper)

	// a missing document maps to the not-found sentinel
	patient, err := patientDba.FindByID(context.Background(), "missing")

	assert.Nil(t, patient)
	assert.ErrorIs(t, err, databases.ErrNotFound)

	// a found document comes back normalized
	patient, err = patientDba.FindByID(context.Background(), "mocked-patient")

	assert.NoError(t, err)
	assert.Equal(t, "mocked-patient", patient.ID)
	assert.Equal(t, models.DefaultPatientName, patient.Name)
	assert.Equal(t, models.PatientStatusActive, patient.Status)
}

func TestPatientDatabase_FindNormalizesEveryRecord(t *testing.T) {

	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var cursorHelper databases.CursorHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	cursorHelper = &mocks.CursorHelper{}

	cursorHelper.(*mocks.CursorHelper).
		On("Decode", mock.Anything).
		Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*[]models.Patient)
		(*arg) = []models.Patient{
			{ID: "p1", Name: "Jane Smith", Status: "inactive"},
			{ID: "p2"},
		}
	})

	collectionHelper.(*mocks.CollectionHelper).
		On("Find", context.Background(), bson.D{}).
		Return(cursorHelper, nil)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "patients").Return(collectionHelper)

	patientDba := databases.NewPatientDatabase(dbHelper)

	patients, err := patientDba.Find(context.Background(), bson.D{})

	assert.NoError(t, err)
	assert.Len(t, patients, 2)
	assert.Equal(t, "Jane Smith", patients[0].Name)
	assert.Equal(t, "inactive", patients[0].Status)
	assert.Equal(t, models.DefaultPatientName, patients[1].Name)
	assert.Equal(t, models.PatientStatusActive, patients[1].Status)
}

func TestPatientDatabase_FindError(t *testing.T) {

	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}

	collectionHelper.(*mocks.CollectionHelper).
		On("Find", context.Background(), bson.D{}).
		Return(nil, errors.New("mocked-error"))

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "patients").Return(collectionHelper)

	patientDba := databases.NewPatientDatabase(dbHelper)

	patients, err := patientDba.Find(context.Background(), bson.D{})

	assert.Nil(t, patients)

	var storeErr *databases.StoreError
	assert.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "find", storeErr.Op)
	assert.Equal(t, "patients", storeErr.Collection)
}

func TestPatientDatabase_CreateFillsIDAndDefaults(t *testing.T) {

	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}

	collectionHelper.(*mocks.CollectionHelper).
		On("InsertOne", context.Background(), mock.Anything).
		Return(&mocks.InsertOneResultHelper{}, nil)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "patients").Return(collectionHelper)

	patientDba := databases.NewPatientDatabase(dbHelper)

	created, err := patientDba.Create(context.Background(), models.Patient{})

	assert.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.NotEmpty(t, created.RegisteredDate)
	assert.Equal(t, models.DefaultPatientName, created.Name)
	assert.Equal(t, models.PatientStatusActive, created.Status)
	assert.NotZero(t, created.CreatedAt)
}

func TestPatientDatabase_Update(t *testing.T) {

	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}

	collectionHelper.(*mocks.CollectionHelper).
		On("UpdateOne", context.Background(), bson.M{"_id": "p1"}, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 1}, nil)

	collectionHelper.(*mocks.CollectionHelper).
		On("UpdateOne", context.Background(), bson.M{"_id": "missing"}, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 0}, nil)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "patients").Return(collectionHelper)

	patientDba := databases.NewPatientDatabase(dbHelper)

	err := patientDba.Update(context.Background(), "p1", bson.M{"name": "Jane Smith"})
	assert.NoError(t, err)

	err = patientDba.Update(context.Background(), "missing", bson.M{"name": "Jane Smith"})
	assert.ErrorIs(t, err, databases.ErrNotFound)
}

func TestPatientDatabase_DeleteIsIdempotent(t *testing.T) {

	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}

	// nothing deleted is still a success
	collectionHelper.(*mocks.CollectionHelper).
		On("DeleteOne", context.Background(), bson.M{"_id": "already-gone"}).
		Return(&mongo.DeleteResult{DeletedCount: 0}, nil)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "patients").Return(collectionHelper)

	patientDba := databases.NewPatientDatabase(dbHelper)

	err := patientDba.Delete(context.Background(), "already-gone")
	assert.NoError(t, err)
}
