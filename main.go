package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handlers"
	"storefront/internal/media"
	"storefront/internal/middleware"
	"storefront/internal/notify"
)

func main() {
	config.Load()
	env := config.AppEnv

	if env.JWTSecret == "" {
		log.Fatal("JWT_SECRET_KEY is not set in environment variables")
	}

	client, err := database.Connect(env.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(env.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureAdminIndexes(db); err != nil {
		log.Printf("admin index warning: %v", err)
	}
	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("user index warning: %v", err)
	}
	if err := database.EnsureProductIndexes(db); err != nil {
		log.Printf("product index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("order index warning: %v", err)
	}

	if env.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.SecureHeaders(env.IsProduction()))
	r.Use(middleware.CORS(env.AllowedOrigins))
	r.Use(middleware.RateLimit(env.RateLimitMax, env.RateLimitWindow))

	var store media.Store
	if env.CloudinaryURL != "" {
		cld, err := media.NewCloudinaryStore(env.CloudinaryURL, "products")
		if err != nil {
			log.Fatal("cloudinary: ", err)
		}
		store = cld
		log.Println("media: using Cloudinary")
	} else {
		if err := os.MkdirAll(env.UploadDir, 0o755); err != nil {
			log.Fatal("upload dir: ", err)
		}
		store = media.NewLocalStore(env.UploadDir, env.PublicBaseURL)
		r.Static("/uploads", env.UploadDir)
		log.Println("media: storing uploads in", env.UploadDir)
	}

	notifier := notify.New(env.PostmarkToken, env.EmailSender)
	sessions := handlers.SessionConfig{
		Secret:     env.JWTSecret,
		TTL:        env.SessionTTL,
		Production: env.IsProduction(),
	}
	adminOnly := middleware.AdminAuth(db, env.JWTSecret)
	userOnly := middleware.UserAuth(db, env.JWTSecret)

	r.GET("/", handlers.Home())

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/login", handlers.AdminLogin(db, sessions))
		auth.POST("/logout", handlers.AdminLogout(sessions))
		auth.GET("/me", adminOnly, handlers.AdminMe())
		auth.POST("/register", handlers.RegisterUser(db, sessions))
		auth.POST("/userlogin", handlers.LoginUser(db, sessions))
		auth.POST("/userlogout", handlers.LogoutUser(sessions))
	}

	products := api.Group("/products")
	{
		products.GET("", handlers.GetProducts(db))
		products.GET("/offers", handlers.GetOfferProducts(db))
		products.GET("/categories", handlers.GetProductCategories(db))
		products.GET("/offer-preview", handlers.OfferPreview())
		products.GET("/admin/all", adminOnly, handlers.GetAllProductsAdmin(db))
		products.GET("/admin/export", adminOnly, handlers.ExportProducts(db))
		products.GET("/:id", handlers.GetProductByID(db))
		products.POST("", adminOnly, handlers.CreateProduct(db, store))
		products.PUT("/:id", adminOnly, handlers.UpdateProduct(db, store))
		products.PATCH("/:id/status", adminOnly, handlers.UpdateProductStatus(db))
		products.DELETE("/:id", adminOnly, handlers.DeleteProduct(db, store))
	}

	cart := api.Group("/cart")
	cart.Use(userOnly)
	{
		cart.GET("/getCart", handlers.GetCart(db))
		cart.POST("/addToCart", handlers.AddToCart(db))
		cart.POST("/updateCart", handlers.UpdateCart(db))
		cart.POST("/removeItem", handlers.RemoveCartItem(db))
		cart.POST("/clearCart", handlers.ClearCart(db))
	}

	orders := api.Group("/orders")
	{
		orders.POST("/cod", userOnly, handlers.PlaceOrderCOD(db, notifier, env.DeliveryFee))
		orders.POST("/userOrders", userOnly, handlers.UserOrders(db))
		orders.POST("/list", adminOnly, handlers.AllOrders(db))
		orders.POST("/status", adminOnly, handlers.UpdateOrderStatus(db))
	}

	dashboard := api.Group("/dashboard")
	dashboard.Use(adminOnly)
	{
		dashboard.GET("/Products", handlers.GetProductsDashboard(db))
		dashboard.GET("/stats", handlers.GetDashboardStats(db))
	}

	r.NoRoute(handlers.NotFound())

	log.Println("server listening on port", env.Port)
	if err := r.Run(":" + env.Port); err != nil {
		log.Fatal(err)
	}
}
