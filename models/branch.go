package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Branch holds the structure for the branches collection
type Branch struct {
	ID        string             `json:"_id" bson:"_id"`
	Name      string             `json:"name" bson:"name"`
	Address   string             `json:"address" bson:"address"`
	Phone     string             `json:"phone" bson:"phone"`
	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}
