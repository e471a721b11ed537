package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/pricing"
)

// GetProducts lists active products matching the catalog filters.
func GetProducts(db *mongo.Database) gin.HandlerFunc {
	return listCatalog(db, "GET /products", false)
}

// GetOfferProducts lists active products whose offer is running now.
func GetOfferProducts(db *mongo.Database) gin.HandlerFunc {
	return listCatalog(db, "GET /products/offers", true)
}

func listCatalog(db *mongo.Database, route string, offersOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, route)

		log.Printf(
			"[%s] hit category=%s size=%s search=%s sort=%s",
			route,
			c.Query("category"),
			c.Query("size"),
			c.Query("search"),
			c.Query("sort"),
		)

		filter, err := catalogFilter(c.Request.URL.Query(), offersOnly, time.Now())
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		findOptions := options.Find().SetSort(productSort(c.Query("sort")))
		products, total, err := findProducts(ctx, db, filter, findOptions)
		if err != nil {
			respondInternal(c, route, "Error fetching products", err)
			return
		}

		log.Printf("[%s] returning %d products", route, len(products))
		c.JSON(http.StatusOK, gin.H{
			"success":       true,
			"products":      products,
			"totalProducts": total,
		})
	}
}

func GetProductByID(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products/:id"
		defer handlePanic(c, route)

		id, err := objectIDParam(c, "id")
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "Invalid product id")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		product, err := findProductByID(ctx, db, id)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, route, "Product not found")
				return
			}
			respondInternal(c, route, "Error fetching product", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
	}
}

// OfferPreview lets the admin form show the discounted price before saving.
func OfferPreview() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products/offer-preview"

		price, err := strconv.ParseFloat(strings.TrimSpace(c.Query("price")), 64)
		if err != nil || price <= 0 {
			respondWithError(c, http.StatusBadRequest, route, "price must be a positive number")
			return
		}

		var offer *float64
		if raw := strings.TrimSpace(c.Query("offer")); raw != "" {
			value, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "offer must be a number")
				return
			}
			offer = &value
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "offerPrice": pricing.OfferPrice(price, offer)})
	}
}
