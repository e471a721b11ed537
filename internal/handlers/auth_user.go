package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/database"
	"storefront/internal/models"
	"storefront/internal/session"
)

type RegisterUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func RegisterUser(db *mongo.Database, cfg SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /auth/register"
		defer handlePanic(c, route)

		var req RegisterUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		name := strings.TrimSpace(req.Name)
		email := normalizeEmail(req.Email)
		if name == "" {
			respondWithError(c, http.StatusBadRequest, route, "name is required")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		count, err := db.Collection(database.Users).CountDocuments(ctx, bson.M{"email": email})
		if err != nil {
			respondInternal(c, route, "Server error", err)
			return
		}
		if count > 0 {
			log.Println("[AUTH] [ERROR] user register email exists:", email)
			respondWithError(c, http.StatusBadRequest, route, "User already exists")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			respondInternal(c, route, "Password hash failed", err)
			return
		}

		now := time.Now()
		user := models.User{
			Name:      name,
			Email:     email,
			Password:  string(hash),
			CartData:  models.CartData{},
			CreatedAt: now,
			UpdatedAt: now,
		}

		res, err := db.Collection(database.Users).InsertOne(ctx, user)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				respondWithError(c, http.StatusBadRequest, route, "User already exists")
				return
			}
			respondInternal(c, route, "Server error", err)
			return
		}
		user.ID, _ = res.InsertedID.(primitive.ObjectID)

		token, err := session.Issue(session.UserClaim, user.ID, cfg.Secret, cfg.TTL)
		if err != nil {
			respondInternal(c, route, "Token generation failed", err)
			return
		}
		session.SetCookie(c, session.UserCookie, token, cfg.TTL, cfg.Production)

		log.Println("[AUTH] [INFO] user registered:", email)
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "User registered successfully",
			"token":   token,
			"user":    user,
		})
	}
}

func LoginUser(db *mongo.Database, cfg SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /auth/userlogin"
		defer handlePanic(c, route)

		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "Email and password are required")
			return
		}

		email := normalizeEmail(req.Email)
		ctx, cancel := requestContext(c)
		defer cancel()

		var user models.User
		if err := db.Collection(database.Users).FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
			if err != mongo.ErrNoDocuments {
				respondInternal(c, route, "Server error", err)
				return
			}
			log.Println("[AUTH] [ERROR] login invalid credentials for user")
			respondWithError(c, http.StatusUnauthorized, route, "Invalid credentials")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			log.Println("[AUTH] [ERROR] login invalid credentials for user")
			respondWithError(c, http.StatusUnauthorized, route, "Invalid credentials")
			return
		}

		token, err := session.Issue(session.UserClaim, user.ID, cfg.Secret, cfg.TTL)
		if err != nil {
			respondInternal(c, route, "Token generation failed", err)
			return
		}
		session.SetCookie(c, session.UserCookie, token, cfg.TTL, cfg.Production)

		log.Println("[AUTH] [INFO] user login succeeded:", user.Email)
		c.JSON(http.StatusOK, gin.H{"success": true, "token": token, "user": user})
	}
}

func LogoutUser(cfg SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		session.ClearCookie(c, session.UserCookie, cfg.Production)
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
	}
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

// jsonFieldName makes validation errors name the field as it appears on
// the wire. An empty result falls back to the Go field name.
func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

func respondValidationError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			field := lowerCamel(fieldError.Field())
			switch fieldError.Tag() {
			case "required":
				details = append(details, fmt.Sprintf("%s is required", field))
			case "email":
				details = append(details, fmt.Sprintf("%s must be a valid email", field))
			case "min":
				details = append(details, fmt.Sprintf("%s must be at least %s characters", field, fieldError.Param()))
			default:
				details = append(details, fmt.Sprintf("%s is invalid", field))
			}
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": strings.Join(details, "; "),
			"details": details,
		})
		return
	}

	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
}

func lowerCamel(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}
