package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Defaults substituted when a doctor record (or a doctor reference on an
// appointment) cannot be resolved. The two display names are intentionally
// distinct: the doctor repository read path uses DefaultDoctorName while the
// appointment display join uses DefaultDoctorDisplayName.
const (
	DefaultDoctorName           = "Dr. Unknown"
	DefaultDoctorDisplayName    = "Dr. John Doe"
	DefaultDoctorSpecialization = "General Physician"
)

// Doctor holds the structure for the doctors collection. Read-mostly.
type Doctor struct {
	ID             string             `json:"_id" bson:"_id"`
	Name           string             `json:"name" bson:"name"`
	Specialization string             `json:"specialization" bson:"specialization"`
	Branch         string             `json:"branch,omitempty" bson:"branch,omitempty"`
	Schedule       []ScheduleSlot     `json:"schedule,omitempty" bson:"schedule,omitempty"`
	Contact        string             `json:"contact,omitempty" bson:"contact,omitempty"`
	CreatedAt      primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt      primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// ScheduleSlot is one recurring working window for a doctor
type ScheduleSlot struct {
	Day       string `json:"day" bson:"day"`
	StartTime string `json:"startTime" bson:"startTime"`
	EndTime   string `json:"endTime" bson:"endTime"`
}

// Normalized returns a copy of the doctor with the repository defaults applied
func (d Doctor) Normalized() Doctor {
	if d.Name == "" {
		d.Name = DefaultDoctorName
	}
	if d.Specialization == "" {
		d.Specialization = DefaultDoctorSpecialization
	}
	return d
}

// PlaceholderDoctor is the entity returned on doctor read paths when the
// requested id does not exist in the store.
func PlaceholderDoctor(id string) Doctor {
	return Doctor{
		ID:             id,
		Name:           DefaultDoctorName,
		Specialization: DefaultDoctorSpecialization,
	}
}
