package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/carepoint/clinic-api/api/handlers"
	"github.com/carepoint/clinic-api/databases"
	"github.com/carepoint/clinic-api/databases/mocks"
	"github.com/carepoint/clinic-api/models"
)

func newMockedPatientHandler(setup func(conn *mocks.CollectionHelper)) handlers.Patient {
	db := &mocks.DatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	setup(conn)
	db.On("Collection", "patients").Return(conn)
	return handlers.Patient{DB: databases.NewPatientDatabase(db)}
}

func TestPatient_PatientByIDHandlerNotFound(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/patient/missing", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"patient_id": "missing"})

	p := newMockedPatientHandler(func(conn *mocks.CollectionHelper) {
		sr := &mocks.SingleResultHelper{}
		sr.On("Decode", mock.Anything).Return(mongo.ErrNoDocuments)
		conn.On("FindOne", mock.Anything, mock.Anything).Return(sr)
	})

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(p.PatientByIDHandler)

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)

	expected := models.ErrorMessageResponse{Response: models.MessageError{Message: "failed to get patient by ID", Error: "document not found"}}
	b, _ := json.Marshal(expected)
	assert.Equal(t, string(b), rr.Body.String())
}

func TestPatient_PatientByIDHandlerSuccess(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/patient/p1", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"patient_id": "p1"})

	p := newMockedPatientHandler(func(conn *mocks.CollectionHelper) {
		sr := &mocks.SingleResultHelper{}
		sr.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
			arg := args.Get(0).(*models.Patient)
			arg.ID = "p1"
			arg.Name = "Jane Smith"
		})
		conn.On("FindOne", mock.Anything, mock.Anything).Return(sr)
	})

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(p.PatientByIDHandler)

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var got models.Patient
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "Jane Smith", got.Name)
	assert.Equal(t, models.PatientStatusActive, got.Status)
}

func TestPatient_PatientHandlerFiltersSortsAndPaginates(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/patients?search=jo&limit=1&page=2", nil)
	if err != nil {
		t.Fatal(err)
	}

	p := newMockedPatientHandler(func(conn *mocks.CollectionHelper) {
		cur := &mocks.CursorHelper{}
		cur.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
			arg := args.Get(0).(*[]models.Patient)
			(*arg) = []models.Patient{
				{ID: "p1", Name: "John Doe"},
				{ID: "p2", Name: "Jane Smith"},
				{ID: "p3", Name: "Bob Jones"},
			}
		})
		conn.On("Find", mock.Anything, mock.Anything).Return(cur, nil)
	})

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(p.PatientHandler)

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var got struct {
		Data  []models.Patient `json:"data"`
		Total int              `json:"total"`
		Page  int              `json:"page"`
		Pages int              `json:"pages"`
	}
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))

	// "jo" matches John Doe and Bob Jones; name sort puts Bob first, so
	// page 2 of size 1 holds John Doe
	assert.Equal(t, 2, got.Total)
	assert.Equal(t, 2, got.Page)
	assert.Equal(t, 2, got.Pages)
	assert.Len(t, got.Data, 1)
	assert.Equal(t, "John Doe", got.Data[0].Name)
}

func TestPatient_PatientHandlerPageBeyondRangeIsEmpty(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/patients?page=50", nil)
	if err != nil {
		t.Fatal(err)
	}

	p := newMockedPatientHandler(func(conn *mocks.CollectionHelper) {
		cur := &mocks.CursorHelper{}
		cur.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
			arg := args.Get(0).(*[]models.Patient)
			(*arg) = []models.Patient{{ID: "p1", Name: "John Doe"}}
		})
		conn.On("Find", mock.Anything, mock.Anything).Return(cur, nil)
	})

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(p.PatientHandler)

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var got struct {
		Data  []models.Patient `json:"data"`
		Total int              `json:"total"`
	}
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, 1, got.Total)
	assert.Empty(t, got.Data)
}

func TestPatient_UpdatePatientHandlerStripsAge(t *testing.T) {
	req, err := http.NewRequest("PUT", "/api/v1/patient/p1", jsonBody(`{"name": "Jane Smith", "age": 99}`))
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"patient_id": "p1"})

	p := newMockedPatientHandler(func(conn *mocks.CollectionHelper) {
		conn.On("UpdateOne", mock.Anything, mock.Anything, mock.MatchedBy(func(update bson.M) bool {
			set, ok := update["$set"].(bson.M)
			if !ok {
				return false
			}
			_, hasAge := set["age"]
			return !hasAge && set["name"] == "Jane Smith"
		})).Return(&mongo.UpdateResult{MatchedCount: 1}, nil)
	})

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(p.UpdatePatientHandler)

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}
