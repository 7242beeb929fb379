package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"go.uber.org/zap"

	"github.com/carepoint/clinic-api/config"
	"github.com/carepoint/clinic-api/databases"
	"github.com/carepoint/clinic-api/models"
)

// Billing exported for testing purposes
type Billing struct {
	DB      databases.BillingDatabase
	BaseURL string
}

// CreateBillingHandler creates a billing record. The stored total is always
// recomputed from subtotal, discount and tax.
func (b Billing) CreateBillingHandler(w http.ResponseWriter, r *http.Request) {
	var record models.BillingRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	created, err := b.DB.Create(context.Background(), record)
	if err != nil {
		config.ErrorStatus("failed to create billing record", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Billing record created successfully",
		"id":      created.ID,
		"total":   created.Total,
	})
}

// BillingByIDHandler returns a billing record by ID
func (b Billing) BillingByIDHandler(w http.ResponseWriter, r *http.Request) {
	billingID := mux.Vars(r)["billing_id"]

	dbResp, err := b.DB.FindByID(context.Background(), billingID)
	if errors.Is(err, databases.ErrNotFound) {
		config.ErrorStatus("failed to get billing record by ID", http.StatusNotFound, w, err)
		return
	}
	if err != nil {
		config.ErrorStatus("failed to get billing record by ID", http.StatusInternalServerError, w, err)
		return
	}

	out, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

// BillingByPatientIDHandler returns all billing records for a patient
func (b Billing) BillingByPatientIDHandler(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patient_id"]

	dbResp, err := b.DB.FindByPatientID(context.Background(), patientID)
	if err != nil {
		config.ErrorStatus("failed to get billing records by patient ID", http.StatusInternalServerError, w, err)
		return
	}

	if len(dbResp) == 0 {
		dbResp = []models.BillingRecord{}
	}
	out, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

// CreateCheckoutSessionHandler opens a Stripe checkout session for an unpaid bill
func (b Billing) CreateCheckoutSessionHandler(w http.ResponseWriter, r *http.Request) {
	billingID := mux.Vars(r)["billing_id"]

	record, err := b.DB.FindByID(context.Background(), billingID)
	if errors.Is(err, databases.ErrNotFound) {
		config.ErrorStatus("failed to get billing record by ID", http.StatusNotFound, w, err)
		return
	}
	if err != nil {
		config.ErrorStatus("failed to get billing record by ID", http.StatusInternalServerError, w, err)
		return
	}
	if record.Status == models.BillingStatusPaid {
		config.ErrorStatus("billing record already paid", http.StatusConflict, w, fmt.Errorf("billing record %s is already paid", record.ID))
		return
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(string(stripe.CurrencyUSD)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Clinic invoice " + record.ID),
					},
					UnitAmount: stripe.Int64(int64(record.Total * 100)),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:        stripe.String(b.BaseURL + "/api/v1/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:         stripe.String(b.BaseURL + "/api/v1/cancel"),
		ClientReferenceID: stripe.String(record.ID),
	}

	s, err := session.New(params)
	if err != nil {
		config.ErrorStatus("failed to create checkout session", http.StatusInternalServerError, w, err)
		return
	}

	zap.S().Infow("created checkout session",
		"billing_id", record.ID,
		"session_id", s.ID,
	)

	out, err := json.Marshal(map[string]string{"sessionId": s.ID, "url": s.URL})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

// VerifyPaymentHandler checks a checkout session and marks the bill paid
func (b Billing) VerifyPaymentHandler(w http.ResponseWriter, r *http.Request) {
	billingID := mux.Vars(r)["billing_id"]

	var body struct {
		SessionID string `json:"sessionId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	s, err := session.Get(body.SessionID, nil)
	if err != nil {
		config.ErrorStatus("failed to retrieve checkout session", http.StatusInternalServerError, w, err)
		return
	}
	if s.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		config.ErrorStatus("payment not completed", http.StatusPaymentRequired, w, fmt.Errorf("session %s payment status: %s", s.ID, s.PaymentStatus))
		return
	}

	err = b.DB.UpdateStatus(context.Background(), billingID, models.BillingStatusPaid)
	if errors.Is(err, databases.ErrNotFound) {
		config.ErrorStatus("failed to update billing record", http.StatusNotFound, w, err)
		return
	}
	if err != nil {
		config.ErrorStatus("failed to update billing record", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Payment verified successfully",
	})
}

// handleSuccessRedirect lands the browser after a completed checkout
func (b Billing) handleSuccessRedirect(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "payment successful, you may close this window"}`))
}

// handleCancelRedirect lands the browser after an abandoned checkout
func (b Billing) handleCancelRedirect(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "payment cancelled"}`))
}
