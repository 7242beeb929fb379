package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Blood groups accepted on patient registration forms
const (
	BloodGroupAPositive  = "A+"
	BloodGroupANegative  = "A-"
	BloodGroupBPositive  = "B+"
	BloodGroupBNegative  = "B-"
	BloodGroupABPositive = "AB+"
	BloodGroupABNegative = "AB-"
	BloodGroupOPositive  = "O+"
	BloodGroupONegative  = "O-"
)

// Patient statuses
const (
	PatientStatusActive   = "active"
	PatientStatusInactive = "inactive"
)

// DefaultPatientName is substituted when a stored patient record has no name,
// including the dangling-reference case where an appointment points at a
// patient id that no longer exists.
const DefaultPatientName = "Unknown Patient"

// Patient holds the structure for the patients collection
type Patient struct {
	ID               string             `json:"_id" bson:"_id"`
	Name             string             `json:"name" bson:"name"`
	DateOfBirth      string             `json:"dateOfBirth" bson:"dateOfBirth"`
	Age              int                `json:"age" bson:"-"` // always derived from dateOfBirth, never stored
	Gender           string             `json:"gender" bson:"gender"`
	BloodGroup       string             `json:"bloodGroup" bson:"bloodGroup"`
	Phone            string             `json:"phone" bson:"phone"`
	Email            string             `json:"email,omitempty" bson:"email,omitempty"`
	Address          string             `json:"address,omitempty" bson:"address,omitempty"`
	EmergencyContact string             `json:"emergencyContact,omitempty" bson:"emergencyContact,omitempty"`
	MedicalHistory   []string           `json:"medicalHistory" bson:"medicalHistory"`
	Allergies        []string           `json:"allergies" bson:"allergies"`
	RegisteredDate   string             `json:"registeredDate" bson:"registeredDate"`
	LastVisit        string             `json:"lastVisit,omitempty" bson:"lastVisit,omitempty"`
	Status           string             `json:"status" bson:"status"`
	InsuranceID      string             `json:"insuranceId,omitempty" bson:"insuranceId,omitempty"`
	CreatedAt        primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt        primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// Normalized returns a copy of the patient with the repository defaults
// applied. Partially written and legacy records are common in the store, so
// every read path goes through here before anything downstream sees the
// entity.
func (p Patient) Normalized() Patient {
	if p.Name == "" {
		p.Name = DefaultPatientName
	}
	if p.Status == "" {
		p.Status = PatientStatusActive
	}
	if p.MedicalHistory == nil {
		p.MedicalHistory = []string{}
	}
	if p.Allergies == nil {
		p.Allergies = []string{}
	}
	p.Age = AgeFromDateOfBirth(p.DateOfBirth, time.Now())
	return p
}

// AgeFromDateOfBirth computes a whole-year age from an ISO date of birth.
// Unparseable or empty input yields 0.
func AgeFromDateOfBirth(dob string, now time.Time) int {
	born, err := time.Parse("2006-01-02", dob)
	if err != nil {
		return 0
	}
	age := now.Year() - born.Year()
	if now.YearDay() < born.YearDay() {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}
