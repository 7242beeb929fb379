package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/carepoint/clinic-api/api/handlers"
	"github.com/carepoint/clinic-api/databases"
	"github.com/carepoint/clinic-api/databases/mocks"
	"github.com/carepoint/clinic-api/models"
)

func newMockedBillingHandler(setup func(conn *mocks.CollectionHelper)) handlers.Billing {
	db := &mocks.DatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	setup(conn)
	db.On("Collection", "billing").Return(conn)
	return handlers.Billing{DB: databases.NewBillingDatabase(db), BaseURL: "http://localhost:8080"}
}

func TestBilling_CreateBillingHandlerRecomputesTotal(t *testing.T) {
	b := newMockedBillingHandler(func(conn *mocks.CollectionHelper) {
		conn.On("InsertOne", mock.Anything, mock.MatchedBy(func(record models.BillingRecord) bool {
			return record.Total == 168
		})).Return(&mocks.InsertOneResultHelper{}, nil)
	})

	// caller-supplied total is ignored
	req, _ := http.NewRequest("POST", "/api/v1/billing",
		jsonBody(`{"patientId": "p1", "subtotal": 200, "discount": 50, "tax": 18, "total": 9999}`))
	rr := httptest.NewRecorder()

	http.HandlerFunc(b.CreateBillingHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)

	var got map[string]interface{}
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, 168.0, got["total"])
}

func TestBilling_BillingByIDHandlerNotFound(t *testing.T) {
	b := newMockedBillingHandler(func(conn *mocks.CollectionHelper) {
		sr := &mocks.SingleResultHelper{}
		sr.On("Decode", mock.Anything).Return(mongo.ErrNoDocuments)
		conn.On("FindOne", mock.Anything, mock.Anything).Return(sr)
	})

	req, _ := http.NewRequest("GET", "/api/v1/billing/missing", nil)
	req = mux.SetURLVars(req, map[string]string{"billing_id": "missing"})
	rr := httptest.NewRecorder()

	http.HandlerFunc(b.BillingByIDHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestBilling_CreateCheckoutSessionHandlerAlreadyPaid(t *testing.T) {
	b := newMockedBillingHandler(func(conn *mocks.CollectionHelper) {
		sr := &mocks.SingleResultHelper{}
		sr.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
			arg := args.Get(0).(*models.BillingRecord)
			arg.ID = "bill-1"
			arg.Status = models.BillingStatusPaid
		})
		conn.On("FindOne", mock.Anything, mock.Anything).Return(sr)
	})

	req, _ := http.NewRequest("POST", "/api/v1/billing/bill-1/create-checkout-session", nil)
	req = mux.SetURLVars(req, map[string]string{"billing_id": "bill-1"})
	rr := httptest.NewRecorder()

	http.HandlerFunc(b.CreateCheckoutSessionHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
}
