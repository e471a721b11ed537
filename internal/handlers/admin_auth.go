package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/database"
	"storefront/internal/models"
	"storefront/internal/session"
)

// SessionConfig carries what the login handlers need to mint cookies.
type SessionConfig struct {
	Secret     string
	TTL        time.Duration
	Production bool
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func AdminLogin(db *mongo.Database, cfg SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /auth/login"
		defer handlePanic(c, route)

		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "Email and password are required")
			return
		}

		email := normalizeEmail(req.Email)
		ctx, cancel := requestContext(c)
		defer cancel()

		var admin models.Admin
		if err := db.Collection(database.Admins).FindOne(ctx, bson.M{"email": email}).Decode(&admin); err != nil {
			if err != mongo.ErrNoDocuments {
				respondInternal(c, route, "Server error", err)
				return
			}
			log.Println("[AUTH] [ERROR] admin login unknown email:", email)
			respondWithError(c, http.StatusUnauthorized, route, "Invalid credentials")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
			log.Println("[AUTH] [ERROR] admin login invalid password:", email)
			respondWithError(c, http.StatusUnauthorized, route, "Invalid credentials")
			return
		}

		token, err := session.Issue(session.AdminClaim, admin.ID, cfg.Secret, cfg.TTL)
		if err != nil {
			respondInternal(c, route, "Token generation failed", err)
			return
		}
		session.SetCookie(c, session.AdminCookie, token, cfg.TTL, cfg.Production)

		admin.Password = ""
		log.Println("[AUTH] [INFO] admin login succeeded:", email)
		c.JSON(http.StatusOK, gin.H{"success": true, "admin": admin})
	}
}

func AdminLogout(cfg SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		session.ClearCookie(c, session.AdminCookie, cfg.Production)
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
	}
}

func AdminMe() gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, ok := c.Get("admin")
		if !ok {
			respondWithError(c, http.StatusUnauthorized, "GET /auth/me", "Unauthorized")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "admin": admin})
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
