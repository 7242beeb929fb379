package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Wellness package types
const (
	PackageTypeBasic     = "basic"
	PackageTypePremium   = "premium"
	PackageTypeCorporate = "corporate"
	PackageTypeFamily    = "family"
	PackageTypeSenior    = "senior"
)

// Wellness package categories
const (
	PackageCategoryFitness       = "fitness"
	PackageCategoryNutrition     = "nutrition"
	PackageCategoryMentalHealth  = "mental_health"
	PackageCategoryPreventive    = "preventive"
	PackageCategoryComprehensive = "comprehensive"
)

// WellnessPackage holds the structure for the wellnessPackages collection
type WellnessPackage struct {
	ID                 string             `json:"_id" bson:"_id"`
	Name               string             `json:"name" bson:"name"`
	Description        string             `json:"description" bson:"description"`
	Type               string             `json:"type" bson:"type"`
	Category           string             `json:"category" bson:"category"`
	Duration           int                `json:"duration" bson:"duration"` // months
	Price              float64            `json:"price" bson:"price"`
	DiscountedPrice    float64            `json:"discountedPrice,omitempty" bson:"discountedPrice,omitempty"`
	DiscountPercentage float64            `json:"discountPercentage,omitempty" bson:"discountPercentage,omitempty"`
	Features           []string           `json:"features" bson:"features"`
	Inclusions         []string           `json:"inclusions" bson:"inclusions"`
	ValidityPeriod     ValidityPeriod     `json:"validityPeriod" bson:"validityPeriod"`
	SalesCount         int                `json:"salesCount" bson:"salesCount"`
	Rating             float64            `json:"rating" bson:"rating"`
	Popularity         int                `json:"popularity" bson:"popularity"` // 1-5
	CreatedAt          primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt          primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// ValidityPeriod is the sale window for a wellness package
type ValidityPeriod struct {
	Start string `json:"start" bson:"start"`
	End   string `json:"end" bson:"end"`
}

// Normalized returns a copy of the package with the repository defaults
// applied. discountedPrice is stored as given; the price relationship is not
// enforced here.
func (p WellnessPackage) Normalized() WellnessPackage {
	if p.Type == "" {
		p.Type = PackageTypeBasic
	}
	if p.Features == nil {
		p.Features = []string{}
	}
	if p.Inclusions == nil {
		p.Inclusions = []string{}
	}
	return p
}
