package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/database"
	"storefront/internal/models"
)

// GetProductsDashboard is the admin product table: every product, optional
// isActive narrowing and free-text search.
func GetProductsDashboard(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /dashboard/Products"
		defer handlePanic(c, route)

		filter, err := dashboardFilter(c.Request.URL.Query())
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		products, total, err := findProducts(ctx, db, filter, options.Find().SetSort(productSort(c.Query("sort"))))
		if err != nil {
			respondInternal(c, route, "Error fetching dashboard products", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"products": products, "totalProducts": total})
	}
}

type statusTotal struct {
	Status  string  `bson:"_id"`
	Count   int64   `bson:"count"`
	Revenue float64 `bson:"revenue"`
}

type orderSummary struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"byStatus"`
	Revenue  float64          `json:"revenue"`
}

func GetDashboardStats(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /dashboard/stats"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		now := time.Now()
		products := db.Collection(database.Products)
		counts := map[string]bson.M{
			"total":   {},
			"active":  {"isActive": true},
			"onOffer": activeOfferFilter(now),
		}
		productStats := gin.H{}
		for key, filter := range counts {
			n, err := products.CountDocuments(ctx, filter)
			if err != nil {
				respondInternal(c, route, "Error fetching stats", err)
				return
			}
			productStats[key] = n
		}

		totals, err := orderTotals(ctx, db)
		if err != nil {
			respondInternal(c, route, "Error fetching stats", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"products": productStats,
			"orders":   summarizeOrders(totals),
		})
	}
}

func activeOfferFilter(now time.Time) bson.M {
	return bson.M{
		"offerPrice":     bson.M{"$gt": 0},
		"offerStartDate": bson.M{"$lte": now},
		"offerEndDate":   bson.M{"$gte": now},
	}
}

func orderTotals(ctx context.Context, db *mongo.Database) ([]statusTotal, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "revenue", Value: bson.D{{Key: "$sum", Value: "$amount"}}},
		}}},
	}

	cursor, err := db.Collection(database.Orders).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	totals := make([]statusTotal, 0)
	if err := cursor.All(ctx, &totals); err != nil {
		return nil, err
	}
	return totals, nil
}

// summarizeOrders folds per-status totals. Cancelled orders do not count
// towards revenue.
func summarizeOrders(totals []statusTotal) orderSummary {
	summary := orderSummary{ByStatus: map[string]int64{}}
	for _, status := range models.OrderStatuses {
		summary.ByStatus[status] = 0
	}

	revenue := decimal.Zero
	for _, t := range totals {
		status := t.Status
		if status == "" {
			status = models.OrderPending
		}
		summary.ByStatus[status] += t.Count
		summary.Total += t.Count
		if status != models.OrderCancelled {
			revenue = revenue.Add(decimal.NewFromFloat(t.Revenue))
		}
	}
	summary.Revenue, _ = revenue.Round(2).Float64()
	return summary
}
