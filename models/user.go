package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User roles shared across the portals
const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
	RoleStaff   = "staff"
	RoleAdmin   = "admin"
)

// User holds the structure for the users collection. Doctor, staff and admin
// identities all live here; role decides which portal the account belongs to.
type User struct {
	ID             string             `json:"_id" bson:"_id"`
	Role           string             `json:"role" bson:"role"`
	Name           string             `json:"name" bson:"name"`
	Email          string             `json:"email" bson:"email"`
	Password       string             `json:"-" bson:"password"`
	Phone          string             `json:"phone" bson:"phone"`
	Specialization string             `json:"specialization,omitempty" bson:"specialization,omitempty"`
	Branch         string             `json:"branch,omitempty" bson:"branch,omitempty"`
	Active         bool               `json:"active" bson:"active"`
	CreatedAt      primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt      primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}
