package middleware

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/database"
	"storefront/internal/models"
	"storefront/internal/session"
)

type adminLookup func(ctx context.Context, id primitive.ObjectID) (models.Admin, error)

// AdminAuth guards admin routes. The admin_token session is resolved to an
// admin document, exposed as "admin" and "adminId" on the context.
func AdminAuth(db *mongo.Database, secret string) gin.HandlerFunc {
	return adminGuard(secret, func(ctx context.Context, id primitive.ObjectID) (models.Admin, error) {
		var admin models.Admin
		err := db.Collection(database.Admins).FindOne(
			ctx,
			bson.M{"_id": id},
			options.FindOne().SetProjection(bson.M{"password": 0}),
		).Decode(&admin)
		return admin, err
	})
}

func adminGuard(secret string, lookup adminLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := session.FromRequest(c, session.AdminCookie)
		if err != nil {
			log.Println("[AUTH] [ERROR] admin token missing")
			unauthorized(c, "Unauthorized: no admin token provided")
			return
		}

		adminID, err := session.Subject(raw, session.AdminClaim, secret)
		if err != nil {
			log.Println("[AUTH] [ERROR] admin token validation failed:", err)
			unauthorized(c, "Unauthorized: invalid or expired admin token")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		admin, err := lookup(ctx, adminID)
		if err != nil {
			if err != mongo.ErrNoDocuments {
				log.Println("[AUTH] [ERROR] admin lookup failed:", err)
			}
			unauthorized(c, "Unauthorized: admin not found")
			return
		}

		c.Set("adminId", adminID)
		c.Set("admin", admin)
		c.Next()
	}
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": message})
}
