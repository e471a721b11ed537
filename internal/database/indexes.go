package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureAdminIndexes(db *mongo.Database) error {
	return ensureEmailIndex(db, Admins)
}

func EnsureUserIndexes(db *mongo.Database) error {
	return ensureEmailIndex(db, Users)
}

func ensureEmailIndex(db *mongo.Database, collection string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetName("email_unique").
			SetUnique(true),
	}

	log.Printf("EnsureIndexes: creating %s.email_unique index", collection)
	if _, err := db.Collection(collection).Indexes().CreateOne(ctx, emailIndex); err != nil {
		log.Printf("EnsureIndexes: %s email index error: %v", collection, err)
		return err
	}
	return nil
}

func EnsureProductIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	catalogIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "isActive", Value: 1},
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index().SetName("active_createdAt"),
	}
	offerIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "offerStartDate", Value: 1},
			{Key: "offerEndDate", Value: 1},
		},
		Options: options.Index().
			SetName("offer_window").
			SetPartialFilterExpression(bson.M{
				"offerPrice": bson.M{"$gt": 0},
			}),
	}

	log.Println("EnsureProductIndexes: creating catalog and offer indexes")
	if _, err := db.Collection(Products).Indexes().CreateMany(ctx, []mongo.IndexModel{catalogIndex, offerIndex}); err != nil {
		log.Println("EnsureProductIndexes: index error:", err)
		return err
	}
	return nil
}

func EnsureOrderIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	userIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "date", Value: -1},
		},
		Options: options.Index().SetName("userId_date"),
	}

	log.Println("EnsureOrderIndexes: creating userId_date index")
	if _, err := db.Collection(Orders).Indexes().CreateOne(ctx, userIndex); err != nil {
		log.Println("EnsureOrderIndexes: userId index error:", err)
		return err
	}
	return nil
}
