package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Billing statuses
const (
	BillingStatusPending = "pending"
	BillingStatusPaid    = "paid"
	BillingStatusPartial = "partial"
)

// BillingRecord holds the structure for the billing collection
type BillingRecord struct {
	ID            string             `json:"_id" bson:"_id"`
	PatientID     string             `json:"patientId" bson:"patientId"`
	AppointmentID string             `json:"appointmentId" bson:"appointmentId"`
	Services      []BillingService   `json:"services" bson:"services"`
	Subtotal      float64            `json:"subtotal" bson:"subtotal"`
	Discount      float64            `json:"discount" bson:"discount"`
	Tax           float64            `json:"tax" bson:"tax"`
	Total         float64            `json:"total" bson:"total"`
	Status        string             `json:"status" bson:"status"`
	CreatedAt     primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt     primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// BillingService is one itemized line on a bill
type BillingService struct {
	Name   string  `json:"service" bson:"service"`
	Amount float64 `json:"amount" bson:"amount"`
}

// ComputedTotal returns subtotal - discount + tax
func (b BillingRecord) ComputedTotal() float64 {
	return b.Subtotal - b.Discount + b.Tax
}

// Normalized returns a copy of the record with the repository defaults applied
func (b BillingRecord) Normalized() BillingRecord {
	if b.Status == "" {
		b.Status = BillingStatusPending
	}
	if b.Services == nil {
		b.Services = []BillingService{}
	}
	return b
}
