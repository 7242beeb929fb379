package models

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Appointment statuses. No state machine is enforced over these; any caller
// may set any status.
const (
	AppointmentStatusPending   = "pending"
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCompleted = "completed"
	AppointmentStatusCancelled = "cancelled"
	AppointmentStatusNoShow    = "no-show"
)

// Appointment types
const (
	AppointmentTypeNew      = "new"
	AppointmentTypeFollowUp = "follow-up"
	AppointmentTypeReview   = "review"
)

// Appointment priorities
const (
	AppointmentPriorityLow       = "low"
	AppointmentPriorityMedium    = "medium"
	AppointmentPriorityHigh      = "high"
	AppointmentPriorityEmergency = "emergency"
)

// Defaults substituted on read for missing appointment fields
const (
	DefaultAppointmentReason    = "No reason provided"
	DefaultAppointmentInsurance = "None"
)

// Appointment holds the structure for the appointments collection
type Appointment struct {
	ID             string             `json:"_id" bson:"_id"`
	PatientID      string             `json:"patientId" bson:"patientId"`
	DoctorID       string             `json:"doctorId" bson:"doctorId"`
	BranchID       string             `json:"branchId,omitempty" bson:"branchId,omitempty"`
	Date           string             `json:"date" bson:"date"`
	Time           string             `json:"time" bson:"time"`
	Token          string             `json:"token" bson:"token,omitempty"`
	Status         string             `json:"status" bson:"status"`
	Reason         string             `json:"reason" bson:"reason"`
	Type           string             `json:"type" bson:"type"`
	Priority       string             `json:"priority" bson:"priority"`
	Symptoms       []string           `json:"symptoms" bson:"symptoms"`
	PreviousVisits int                `json:"previousVisits" bson:"previousVisits"`
	Insurance      string             `json:"insurance" bson:"insurance"`
	BookedAt       primitive.DateTime `json:"bookedAt" bson:"bookedAt"`
	CreatedAt      primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt      primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// Normalized returns a copy of the appointment with the repository defaults
// applied field-by-field.
func (a Appointment) Normalized() Appointment {
	if a.Status == "" {
		a.Status = AppointmentStatusPending
	}
	if a.Token == "" {
		a.Token = DeriveToken(a.ID)
	}
	if a.Reason == "" {
		a.Reason = DefaultAppointmentReason
	}
	if a.Priority == "" {
		a.Priority = AppointmentPriorityMedium
	}
	if a.Type == "" {
		a.Type = AppointmentTypeNew
	}
	if a.Insurance == "" {
		a.Insurance = DefaultAppointmentInsurance
	}
	if a.Symptoms == nil {
		a.Symptoms = []string{}
	}
	return a
}

// DeriveToken builds the display token for an appointment that was stored
// without one: "TK-" plus the first four characters of the id, uppercased.
func DeriveToken(id string) string {
	short := id
	if len(short) > 4 {
		short = short[:4]
	}
	return "TK-" + strings.ToUpper(short)
}
