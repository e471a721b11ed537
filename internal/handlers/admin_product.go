package handlers

import (
	"context"
	"errors"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/database"
	"storefront/internal/media"
)

const mediaTimeout = 30 * time.Second

// GetAllProductsAdmin lists every product, inactive ones included. Paging
// applies only when page or limit is given.
func GetAllProductsAdmin(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products/admin/all"
		defer handlePanic(c, route)

		findOptions := options.Find().SetSort(productSort(c.Query("sort")))

		paged := c.Query("page") != "" || c.Query("limit") != ""
		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}
		if paged {
			findOptions.SetSkip((page - 1) * limit).SetLimit(limit)
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		products, total, err := findProducts(ctx, db, bson.M{}, findOptions)
		if err != nil {
			respondInternal(c, route, "Error fetching all products", err)
			return
		}

		response := gin.H{
			"success":       true,
			"products":      products,
			"totalProducts": total,
		}
		if paged {
			response["currentPage"] = page
			response["totalPages"] = int64(math.Ceil(float64(total) / float64(limit)))
		}
		c.JSON(http.StatusOK, response)
	}
}

func CreateProduct(db *mongo.Database, store media.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /products"
		defer handlePanic(c, route)

		form, err := parseProductForm(c)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		product, err := newProductFromForm(form, time.Now())
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		uploadCtx, cancelUpload := context.WithTimeout(c.Request.Context(), mediaTimeout)
		defer cancelUpload()

		images, err := media.UploadAll(uploadCtx, store, form.Images)
		if err != nil {
			log.Printf("[%s] [ERROR] image upload failed: %v", route, err)
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}
		product.Images = media.URLs(images)
		product.ImagePublicIDs = media.PublicIDs(images)

		ctx, cancel := requestContext(c)
		defer cancel()

		res, err := db.Collection(database.Products).InsertOne(ctx, product)
		if err != nil {
			media.Discard(context.Background(), store, images)
			respondInternal(c, route, "Error creating product", err)
			return
		}
		product.ID, _ = res.InsertedID.(primitive.ObjectID)

		log.Printf("[%s] created product %s with %d images", route, product.ID.Hex(), len(images))
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Product created successfully",
			"product": withOfferState(product, time.Now()),
		})
	}
}

func UpdateProduct(db *mongo.Database, store media.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /products/:id"
		defer handlePanic(c, route)

		id, err := objectIDParam(c, "id")
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "Invalid product id")
			return
		}

		form, err := parseProductForm(c)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		existing, err := findProductByID(ctx, db, id)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, route, "Product not found")
				return
			}
			respondInternal(c, route, "Error updating product", err)
			return
		}

		product, plan, err := applyProductForm(existing, form, time.Now())
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		uploadCtx, cancelUpload := context.WithTimeout(c.Request.Context(), mediaTimeout)
		defer cancelUpload()

		uploaded, err := media.UploadAll(uploadCtx, store, form.Images)
		if err != nil {
			log.Printf("[%s] [ERROR] image upload failed: %v", route, err)
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}
		product.Images = append(product.Images, media.URLs(uploaded)...)
		product.ImagePublicIDs = append(product.ImagePublicIDs, media.PublicIDs(uploaded)...)

		writeCtx, cancelWrite := requestContext(c)
		defer cancelWrite()

		result, err := db.Collection(database.Products).UpdateOne(
			writeCtx,
			bson.M{"_id": id},
			bson.M{"$set": productUpdateSet(product)},
		)
		if err != nil || result.MatchedCount == 0 {
			media.Discard(context.Background(), store, uploaded)
			if err == nil {
				respondWithError(c, http.StatusNotFound, route, "Product not found")
				return
			}
			respondInternal(c, route, "Error updating product", err)
			return
		}

		if len(plan.Removed) > 0 {
			if err := store.Delete(uploadCtx, plan.Removed); err != nil {
				log.Printf("[%s] [ERROR] removed image cleanup failed for %s: %v", route, id.Hex(), err)
			}
		}

		log.Printf("[%s] updated product %s: kept=%d added=%d removed=%d", route, id.Hex(), len(plan.KeptURLs), len(uploaded), len(plan.Removed))
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Product updated successfully!",
			"product": withOfferState(product, time.Now()),
		})
	}
}

type productStatusRequest struct {
	IsActive *bool `json:"isActive"`
}

func UpdateProductStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /products/:id/status"
		defer handlePanic(c, route)

		id, err := objectIDParam(c, "id")
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "Invalid product id")
			return
		}

		var req productStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.IsActive == nil {
			respondWithError(c, http.StatusBadRequest, route, `Invalid "isActive" value provided.`)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		var product struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		err = db.Collection(database.Products).FindOneAndUpdate(
			ctx,
			bson.M{"_id": id},
			bson.M{"$set": bson.M{"isActive": *req.IsActive, "updatedAt": time.Now()}},
		).Decode(&product)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, route, "Product not found")
				return
			}
			respondInternal(c, route, "Server error while updating status.", err)
			return
		}

		updated, err := findProductByID(ctx, db, id)
		if err != nil {
			respondInternal(c, route, "Server error while updating status.", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product status updated.", "product": updated})
	}
}

// DeleteProduct removes the product images from the store first; the
// document stays when that fails so the delete can be retried.
func DeleteProduct(db *mongo.Database, store media.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /products/:id"
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
			if errors.Is(err, mongo.ErrNoDocuments) {
				respondWithError(c, http.StatusNotFound, route, "Product not found")
				return
			}
			respondInternal(c, route, "Error deleting product", err)
			return
		}

		if len(product.ImagePublicIDs) > 0 {
			mediaCtx, cancelMedia := context.WithTimeout(c.Request.Context(), mediaTimeout)
			defer cancelMedia()
			if err := store.Delete(mediaCtx, product.ImagePublicIDs); err != nil {
				respondInternal(c, route, "Error deleting product images", err)
				return
			}
		}

		if _, err := db.Collection(database.Products).DeleteOne(ctx, bson.M{"_id": id}); err != nil {
			respondInternal(c, route, "Error deleting product", err)
			return
		}

		log.Printf("[%s] deleted product %s", route, id.Hex())
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted successfully"})
	}
}
