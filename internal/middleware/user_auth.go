package middleware

import (
	"context"
	"log"
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

type userLookup func(ctx context.Context, id primitive.ObjectID) (models.User, error)

// UserAuth validates the customer session cookie and injects "userId" and
// "user" into the context.
func UserAuth(db *mongo.Database, secret string) gin.HandlerFunc {
	return userGuard(secret, func(ctx context.Context, id primitive.ObjectID) (models.User, error) {
		var user models.User
		err := db.Collection(database.Users).FindOne(
			ctx,
			bson.M{"_id": id},
			options.FindOne().SetProjection(bson.M{"password": 0}),
		).Decode(&user)
		return user, err
	})
}

func userGuard(secret string, lookup userLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := session.FromRequest(c, session.UserCookie)
		if err != nil {
			log.Println("[AUTH] [ERROR] missing token")
			unauthorized(c, "Unauthorized: no token provided")
			return
		}

		userID, err := session.Subject(raw, session.UserClaim, secret)
		if err != nil {
			log.Println("[AUTH] [ERROR] token validation failed:", err)
			unauthorized(c, "Unauthorized: invalid or expired token")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		user, err := lookup(ctx, userID)
		if err != nil {
			if err != mongo.ErrNoDocuments {
				log.Println("[AUTH] [ERROR] user lookup failed:", err)
			}
			unauthorized(c, "Unauthorized: user not found")
			return
		}

		c.Set("userId", userID)
		c.Set("user", user)
		c.Next()
	}
}
