package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderItem is a snapshot of a product at the time the order was placed.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Price     float64            `bson:"price" json:"price"`
	Images    []string           `bson:"images" json:"images"`
	Size      string             `bson:"size" json:"size"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

type ShippingAddress struct {
	FirstName string `bson:"firstName" json:"firstName" binding:"required"`
	LastName  string `bson:"lastName" json:"lastName" binding:"required"`
	Email     string `bson:"email" json:"email" binding:"required,email"`
	Street    string `bson:"street" json:"street" binding:"required"`
	City      string `bson:"city" json:"city" binding:"required"`
	Country   string `bson:"country" json:"country" binding:"required"`
	Phone     string `bson:"phone" json:"phone" binding:"required"`
}

// Order defines the persisted order document. Date is milliseconds since
// the Unix epoch.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID        primitive.ObjectID `bson:"userId" json:"userId"`
	Items         []OrderItem        `bson:"items" json:"items"`
	Amount        float64            `bson:"amount" json:"amount"`
	Address       ShippingAddress    `bson:"address" json:"address"`
	PaymentMethod string             `bson:"paymentMethod" json:"paymentMethod"`
	Payment       bool               `bson:"payment" json:"payment"`
	Status        string             `bson:"status" json:"status"`
	Date          int64              `bson:"date" json:"date"`
}
