package handlers

import (
	"context"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/database"
	"storefront/internal/models"
	"storefront/internal/notify"
	"storefront/internal/pricing"
)

type placeOrderRequest struct {
	Address models.ShippingAddress `json:"address" binding:"required"`
}

// PlaceOrderCOD turns the stored cart into a cash-on-delivery order. Prices
// come from the products at order time, never from the client.
func PlaceOrderCOD(db *mongo.Database, notifier notify.Notifier, deliveryFee float64) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders/cod"
		defer handlePanic(c, route)

		userID, ok := currentUserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "Unauthorized")
			return
		}

		var req placeOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		cart, err := loadCart(ctx, db, userID)
		if err != nil {
			respondCartError(c, route, err)
			return
		}
		if cart.ItemCount() == 0 {
			respondWithError(c, http.StatusBadRequest, route, "Cart is empty")
			return
		}

		products, err := productsInCart(ctx, db, cart)
		if err != nil {
			respondInternal(c, route, "Server Error", err)
			return
		}

		order := buildOrder(userID, cart, products, req.Address, deliveryFee, time.Now())
		if len(order.Items) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "Cart has no available products")
			return
		}

		res, err := db.Collection(database.Orders).InsertOne(ctx, order)
		if err != nil {
			respondInternal(c, route, "Server Error", err)
			return
		}
		order.ID, _ = res.InsertedID.(primitive.ObjectID)

		if err := saveCart(ctx, db, userID, models.CartData{}); err != nil {
			log.Printf("[%s] [ERROR] order %s placed but cart not cleared: %v", route, order.ID.Hex(), err)
		}

		if err := notifier.OrderPlaced(ctx, order.Address.Email, order); err != nil {
			log.Printf("[%s] [ERROR] confirmation email for %s failed: %v", route, order.ID.Hex(), err)
		}

		log.Printf("[%s] order %s placed: items=%d amount=%.2f", route, order.ID.Hex(), len(order.Items), order.Amount)
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Order Placed", "order": order})
	}
}

func UserOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders/userOrders"
		defer handlePanic(c, route)

		userID, ok := currentUserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "Unauthorized")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		orders, err := findOrders(ctx, db, bson.M{"userId": userID})
		if err != nil {
			respondInternal(c, route, "Server Error", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
	}
}

func findOrders(ctx context.Context, db *mongo.Database, filter bson.M) ([]models.Order, error) {
	cursor, err := db.Collection(database.Orders).Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := make([]models.Order, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func productsInCart(ctx context.Context, db *mongo.Database, cart models.CartData) (map[string]models.Product, error) {
	ids := make([]primitive.ObjectID, 0, len(cart))
	for key := range cart {
		if id, err := primitive.ObjectIDFromHex(key); err == nil {
			ids = append(ids, id)
		}
	}

	out := make(map[string]models.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cursor, err := db.Collection(database.Products).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var p models.Product
		if err := cursor.Decode(&p); err != nil {
			return nil, err
		}
		out[p.ID.Hex()] = p
	}
	return out, cursor.Err()
}

// buildOrder snapshots every cart line whose product still exists and is
// active. Lines come out sorted by product id then size.
func buildOrder(userID primitive.ObjectID, cart models.CartData, products map[string]models.Product, address models.ShippingAddress, deliveryFee float64, now time.Time) models.Order {
	productIDs := make([]string, 0, len(cart))
	for id := range cart {
		productIDs = append(productIDs, id)
	}
	sort.Strings(productIDs)

	items := make([]models.OrderItem, 0)
	lines := make([]pricing.Line, 0)
	for _, id := range productIDs {
		product, ok := products[id]
		if !ok || !product.IsActive {
			log.Printf("[ORDER] skipping unavailable product %s", id)
			continue
		}
		unitPrice := pricing.EffectivePrice(product.Price, product.OfferPrice, product.OfferStartDate, product.OfferEndDate, now)

		sizes := make([]string, 0, len(cart[id]))
		for size := range cart[id] {
			sizes = append(sizes, size)
		}
		sort.Strings(sizes)

		for _, size := range sizes {
			qty := cart[id][size]
			if qty <= 0 {
				continue
			}
			images := product.Images
			if images == nil {
				images = []string{}
			}
			items = append(items, models.OrderItem{
				ProductID: product.ID,
				Name:      product.Name,
				Price:     unitPrice,
				Images:    images,
				Size:      size,
				Quantity:  qty,
			})
			lines = append(lines, pricing.Line{UnitPrice: unitPrice, Quantity: qty})
		}
	}

	amount := 0.0
	if len(items) > 0 {
		amount = pricing.Total(lines, deliveryFee)
	}

	return models.Order{
		UserID:        userID,
		Items:         items,
		Amount:        amount,
		Address:       address,
		PaymentMethod: "cod",
		Payment:       false,
		Status:        models.OrderPending,
		Date:          now.UnixMilli(),
	}
}
