package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/database"
	"storefront/internal/models"
)

type orderStatusRequest struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

func AllOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders/list"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		orders, err := findOrders(ctx, db, bson.M{})
		if err != nil {
			respondInternal(c, route, "Server Error", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
	}
}

func UpdateOrderStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders/status"
		defer handlePanic(c, route)

		var req orderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "Invalid request body")
			return
		}

		req.OrderID = strings.TrimSpace(req.OrderID)
		req.Status = strings.ToLower(strings.TrimSpace(req.Status))
		if req.OrderID == "" || req.Status == "" {
			respondWithError(c, http.StatusBadRequest, route, "orderId and status are required")
			return
		}
		orderID, err := primitive.ObjectIDFromHex(req.OrderID)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "Invalid order id")
			return
		}
		if !models.IsOrderStatus(req.Status) {
			respondWithError(c, http.StatusBadRequest, route, "Invalid status: "+req.Status)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		result, err := db.Collection(database.Orders).UpdateOne(ctx, bson.M{"_id": orderID}, bson.M{"$set": bson.M{"status": req.Status}})
		if err != nil {
			respondInternal(c, route, "Server Error", err)
			return
		}
		if result.MatchedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "Order not found")
			return
		}

		log.Printf("[%s] order %s -> %s", route, orderID.Hex(), req.Status)
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Status Updated"})
	}
}
