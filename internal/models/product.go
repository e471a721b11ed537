package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name           string             `bson:"name" json:"name"`
	Description    string             `bson:"description" json:"description"`
	Price          float64            `bson:"price" json:"price"`
	Offer          *float64           `bson:"offer" json:"offer"`
	OfferPrice     *float64           `bson:"offerPrice" json:"offerPrice"`
	OfferStartDate *time.Time         `bson:"offerStartDate" json:"offerStartDate"`
	OfferEndDate   *time.Time         `bson:"offerEndDate" json:"offerEndDate"`
	OnOffer        bool               `bson:"-" json:"onOffer"`
	Category       StringList         `bson:"category" json:"category"`
	Size           StringList         `bson:"size" json:"size"`
	AgeCategory    StringList         `bson:"ageCategory" json:"ageCategory"`
	Tags           StringList         `bson:"tags" json:"tags"`
	Images         []string           `bson:"images" json:"images"`
	ImagePublicIDs []string           `bson:"imagePublicIds" json:"imagePublicIds"`
	IsActive       bool               `bson:"isActive" json:"isActive"`
	BestSeller     bool               `bson:"bestSeller" json:"bestSeller"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}
