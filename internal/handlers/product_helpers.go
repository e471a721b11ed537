package handlers

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/database"
	"storefront/internal/models"
	"storefront/internal/pricing"
)

// withOfferState fills the derived onOffer flag.
func withOfferState(p models.Product, now time.Time) models.Product {
	p.OnOffer = pricing.IsActive(p.OfferPrice, p.OfferStartDate, p.OfferEndDate, now)
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.ImagePublicIDs == nil {
		p.ImagePublicIDs = []string{}
	}
	return p
}

func decodeProducts(ctx context.Context, cursor *mongo.Cursor, now time.Time) ([]models.Product, error) {
	products := make([]models.Product, 0)

	for cursor.Next(ctx) {
		var p models.Product
		if err := cursor.Decode(&p); err != nil {
			return nil, err
		}
		products = append(products, withOfferState(p, now))
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

// findProducts runs filter with sort and optional paging, returning the
// page and the total match count.
func findProducts(ctx context.Context, db *mongo.Database, filter bson.M, findOptions *options.FindOptions) ([]models.Product, int64, error) {
	coll := db.Collection(database.Products)

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	cursor, err := coll.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	products, err := decodeProducts(ctx, cursor, time.Now())
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func findProductByID(ctx context.Context, db *mongo.Database, id primitive.ObjectID) (models.Product, error) {
	var p models.Product
	if err := db.Collection(database.Products).FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return models.Product{}, err
	}
	return withOfferState(p, time.Now()), nil
}
