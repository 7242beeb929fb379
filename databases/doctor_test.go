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

func TestDoctorDatabase_FindByIDOrDefaultMissingDoctor(t *testing.T) {

	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var srHelper databases.SingleResultHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	srHelper = &mocks.SingleResultHelper{}

	srHelper.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(mongo.ErrNoDocuments)

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", context.Background(), bson.M{"_id": "missing"}).
		Return(srHelper)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "doctors").Return(collectionHelper)

	doctorDba := databases.NewDoctorDatabase(dbHelper)

	// a dangling reference degrades to the placeholder, not an error
	doctor, err := doctorDba.FindByIDOrDefault(context.Background(), "missing")

	assert.NoError(t, err)
	assert.Equal(t, "missing", doctor.ID)
	assert.Equal(t, models.DefaultDoctorName, doctor.Name)
	assert.Equal(t, models.DefaultDoctorSpecialization, doctor.Specialization)
}

func TestDoctorDatabase_FindByIDOrDefaultStoreErrorPropagates(t *testing.T) {

	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var srHelper databases.SingleResultHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	srHelper = &mocks.SingleResultHelper{}

	srHelper.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(errors.New("connection reset"))

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", context.Background(), bson.M{"_id": "d1"}).
		Return(srHelper)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "doctors").Return(collectionHelper)

	doctorDba := databases.NewDoctorDatabase(dbHelper)

	doctor, err := doctorDba.FindByIDOrDefault(context.Background(), "d1")

	assert.Nil(t, doctor)

	var storeErr *databases.StoreError
	assert.ErrorAs(t, err, &storeErr)
}

func TestDoctorDatabase_FindByIDNormalizes(t *testing.T) {

	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var srHelper databases.SingleResultHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	srHelper = &mocks.SingleResultHelper{}

	srHelper.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*models.Doctor)
		arg.ID = "d1"
	})

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", context.Background(), bson.M{"_id": "d1"}).
		Return(srHelper)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "doctors").Return(collectionHelper)

	doctorDba := databases.NewDoctorDatabase(dbHelper)

	doctor, err := doctorDba.FindByID(context.Background(), "d1")

	assert.NoError(t, err)
	assert.Equal(t, models.DefaultDoctorName, doctor.Name)
	assert.Equal(t, models.DefaultDoctorSpecialization, doctor.Specialization)
}
