// Command seedadmin creates or resets the admin account named by
// ADMIN_EMAIL and ADMIN_PASSWORD.
package main

import (
	"context"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/config"
	"storefront/internal/database"
)

func main() {
	config.Load()

	email := strings.ToLower(strings.TrimSpace(config.MustEnv("ADMIN_EMAIL")))
	password := config.MustEnv("ADMIN_PASSWORD")
	if len(password) < 8 {
		log.Fatal("ADMIN_PASSWORD must be at least 8 characters")
	}

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(config.AppEnv.DBName)
	if err := database.EnsureAdminIndexes(db); err != nil {
		log.Printf("admin index warning: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("hash password: ", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now()
	res, err := db.Collection(database.Admins).UpdateOne(
		ctx,
		bson.M{"email": email},
		bson.M{
			"$set":         bson.M{"password": string(hash), "updatedAt": now},
			"$setOnInsert": bson.M{"email": email, "createdAt": now},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		log.Fatal("upsert admin: ", err)
	}

	if res.UpsertedCount > 0 {
		log.Println("admin created:", email)
		return
	}
	log.Println("admin password updated:", email)
}
