package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/database"
	"storefront/internal/models"
)

var errUserNotFound = errors.New("user not found")

type cartItemRequest struct {
	ItemID string `json:"itemId" binding:"required"`
	Size   string `json:"size" binding:"required"`
}

type cartQuantityRequest struct {
	ItemID   string `json:"itemId" binding:"required"`
	Size     string `json:"size" binding:"required"`
	Quantity *int   `json:"quantity" binding:"required"`
}

// validate returns the item id in the canonical lowercase hex form used as
// the cart key.
func (r cartItemRequest) validate() (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(r.ItemID))
	if err != nil {
		return primitive.NilObjectID, errors.New("Invalid item id")
	}
	if !models.IsSize(r.Size) {
		return primitive.NilObjectID, errors.New("Invalid size")
	}
	return id, nil
}

func GetCart(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /cart/getCart"
		defer handlePanic(c, route)

		userID, ok := currentUserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "Unauthorized")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		cart, err := loadCart(ctx, db, userID)
		if err != nil {
			respondCartError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "cartData": cart})
	}
}

// AddToCart increments one unit of the product in the given size.
func AddToCart(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /cart/addToCart"
		defer handlePanic(c, route)

		userID, ok := currentUserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "Unauthorized")
			return
		}

		var req cartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}
		productID, err := req.validate()
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		product, err := findProductByID(ctx, db, productID)
		if err != nil || !product.IsActive {
			if err != nil && err != mongo.ErrNoDocuments {
				respondInternal(c, route, "Server Error", err)
				return
			}
			respondWithError(c, http.StatusNotFound, route, "Product not found")
			return
		}
		if len(product.Size) > 0 && !containsString(product.Size, req.Size) {
			respondWithError(c, http.StatusBadRequest, route, "Size not available for this product")
			return
		}

		cart, err := mutateCart(ctx, db, userID, func(cart models.CartData) error {
			cart.Add(productID.Hex(), req.Size)
			return nil
		})
		if err != nil {
			respondCartError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product added to cart", "cartData": cart})
	}
}

// UpdateCart overwrites the quantity of an entry; zero removes it.
func UpdateCart(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /cart/updateCart"
		defer handlePanic(c, route)

		userID, ok := currentUserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "Unauthorized")
			return
		}

		var req cartQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}
		item := cartItemRequest{ItemID: req.ItemID, Size: req.Size}
		itemID, err := item.validate()
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}
		if *req.Quantity < 0 {
			respondWithError(c, http.StatusBadRequest, route, "Quantity cannot be negative")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		cart, err := mutateCart(ctx, db, userID, func(cart models.CartData) error {
			return cart.SetQuantity(itemID.Hex(), req.Size, *req.Quantity)
		})
		if err != nil {
			respondCartError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart updated", "cartData": cart})
	}
}

func RemoveCartItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /cart/removeItem"
		defer handlePanic(c, route)

		userID, ok := currentUserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "Unauthorized")
			return
		}

		var req cartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}
		itemID, err := req.validate()
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		cart, err := mutateCart(ctx, db, userID, func(cart models.CartData) error {
			return cart.Remove(itemID.Hex(), req.Size)
		})
		if err != nil {
			respondCartError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Item removed", "cartData": cart})
	}
}

func ClearCart(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /cart/clearCart"
		defer handlePanic(c, route)

		userID, ok := currentUserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "Unauthorized")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		if err := saveCart(ctx, db, userID, models.CartData{}); err != nil {
			respondCartError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart cleared", "cartData": models.CartData{}})
	}
}

func loadCart(ctx context.Context, db *mongo.Database, userID primitive.ObjectID) (models.CartData, error) {
	var user models.User
	err := db.Collection(database.Users).FindOne(
		ctx,
		bson.M{"_id": userID},
		options.FindOne().SetProjection(bson.M{"cartData": 1}),
	).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errUserNotFound
		}
		return nil, err
	}
	if user.CartData == nil {
		return models.CartData{}, nil
	}
	return user.CartData, nil
}

func saveCart(ctx context.Context, db *mongo.Database, userID primitive.ObjectID, cart models.CartData) error {
	result, err := db.Collection(database.Users).UpdateOne(
		ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"cartData": cart, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return errUserNotFound
	}
	return nil
}

// mutateCart loads the cart, applies fn and stores the result.
func mutateCart(ctx context.Context, db *mongo.Database, userID primitive.ObjectID, fn func(models.CartData) error) (models.CartData, error) {
	cart, err := loadCart(ctx, db, userID)
	if err != nil {
		return nil, err
	}
	if err := fn(cart); err != nil {
		return nil, err
	}
	if err := saveCart(ctx, db, userID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func respondCartError(c *gin.Context, route string, err error) {
	switch {
	case errors.Is(err, models.ErrCartItemNotFound):
		respondWithError(c, http.StatusNotFound, route, "Item not found in cart")
	case errors.Is(err, errUserNotFound):
		respondWithError(c, http.StatusNotFound, route, "User not found")
	default:
		log.Printf("[%s] [ERROR] cart write failed: %v", route, err)
		respondWithError(c, http.StatusInternalServerError, route, "Server Error")
	}
}

func containsString(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
