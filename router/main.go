package router

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/learning-master/api/config"
	"github.com/learning-master/api/database"
	admin_handlers "github.com/learning-master/api/handlers/admin"
	auth_handlers "github.com/learning-master/api/handlers/auth"
	cart_handlers "github.com/learning-master/api/handlers/cart"
	class_handlers "github.com/learning-master/api/handlers/class"
	enrollment_handlers "github.com/learning-master/api/handlers/enrollment"
	instructor_handlers "github.com/learning-master/api/handlers/instructor"
	payment_handlers "github.com/learning-master/api/handlers/payment"
	user_handlers "github.com/learning-master/api/handlers/user"
	"github.com/learning-master/api/services"
	"github.com/learning-master/api/services/gateway"
	"github.com/learning-master/api/utils/auth"
	"github.com/learning-master/api/utils/cache"
	"github.com/learning-master/api/utils/middleware"
	"gorm.io/gorm"
)

// SetupRoutes wires every route. The paths are flat, not versioned, because
// the deployed frontend calls them that way.
func SetupRoutes(app *fiber.App, store database.Storage, analytics *database.AnalyticsStore) {
	getEnv, err := config.Get()
	if err != nil {
		log.Fatal("Failed to load configuration")
	}

	if getEnv.JWT_SECRET == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtIssuer := getEnv.JWT_ISSUER
	if jwtIssuer == "" {
		jwtIssuer = "learning-master-api"
	}

	// Initialize JWT manager with config
	jwtConfig := auth.JWTConfig{
		Secret: getEnv.JWT_SECRET,
		Expiry: 24 * time.Hour, // Access token expires in 24 hours
		Issuer: jwtIssuer,
	}
	jwtManager := auth.NewJWTManager(jwtConfig)

	// Get DB instance (type assert from interface)
	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		log.Fatal("Failed to get GORM DB instance")
	}

	// Initialize Redis cache for the popularity rankings
	redisURL := getEnv.REDIS_URL
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	redisCache, err := cache.NewRedisCache(redisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Popularity caching will be disabled.", err)
		redisCache = nil
	}

	// Initialize auth middleware with DB for role checks
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, db)

	// Initialize services
	catalogService := services.NewCatalogService(db, analytics, redisCache)
	checkoutService := services.NewCheckoutService(db, redisCache)
	stripeGateway := gateway.NewStripeGateway(getEnv.STRIPE_SECRET_KEY, getEnv.PAYMENT_CURRENCY)

	// Initialize handlers
	tokenHandler := auth_handlers.NewTokenHandler(jwtManager)
	userHandler := user_handlers.NewUserHandler(db)
	classHandler := class_handlers.NewClassHandler(db, catalogService)
	cartHandler := cart_handlers.NewCartHandler(db)
	paymentHandler := payment_handlers.NewPaymentHandler(db, stripeGateway, checkoutService)
	enrollmentHandler := enrollment_handlers.NewEnrollmentHandler(analytics, catalogService)
	applicationHandler := instructor_handlers.NewApplicationHandler(db)
	statsHandler := admin_handlers.NewStatsHandler(analytics)

	// Apply security middleware
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000,http://localhost:5173"
	}
	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 100,             // 100 requests
		RateLimitWindow:   1 * time.Minute, // per minute
	})

	jwt := authMiddleware.Required()
	admin := authMiddleware.RequireAdmin()
	instructor := authMiddleware.RequireInstructor()

	// Liveness check (public)
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Learning Academy Server is running!")
	})

	// Token exchange (public)
	app.Post("/api/set-token", tokenHandler.SetToken)

	// Users
	app.Post("/new-user", userHandler.NewUser)
	app.Get("/users", userHandler.ListUsers)
	app.Get("/users/:id", userHandler.GetUserByID)
	app.Get("/user/:email", jwt, userHandler.GetUserByEmail)
	app.Delete("/delete-user/:id", jwt, admin, userHandler.DeleteUser)
	app.Put("/update-userbyAdmin/:id", jwt, admin, userHandler.UpdateUserByAdmin)
	app.Put("/update-profile/:id", jwt, userHandler.UpdateProfile)
	app.Get("/instructors", userHandler.ListInstructors)

	// Classes
	app.Post("/new-class", jwt, instructor, classHandler.NewClass)
	app.Get("/classes", classHandler.ListApproved)
	app.Get("/approved-classes", classHandler.ListApproved)
	app.Get("/classes/:email", jwt, instructor, classHandler.ListByInstructor)
	app.Get("/classesPending/:email", jwt, instructor, classHandler.ListPendingByInstructor)
	app.Get("/classesApproved/:email", jwt, instructor, classHandler.ListApprovedByInstructor)
	app.Get("/classes-manage", classHandler.ListAll)
	app.Put("/change-status/:id", jwt, admin, classHandler.ChangeStatus)
	app.Put("/change-reason/:id", jwt, admin, classHandler.ChangeReason)
	app.Put("/update-class/:id", jwt, instructor, classHandler.UpdateClass)
	app.Get("/class/:id", classHandler.GetClass)
	app.Get("/popular_classes", classHandler.PopularClasses)

	// Cart
	app.Post("/add-to-cart", jwt, cartHandler.AddToCart)
	app.Get("/cart-item/:id", jwt, cartHandler.GetCartItem)
	app.Get("/cart/:email", jwt, cartHandler.GetCart)
	app.Delete("/delete-cart-item/:id", jwt, cartHandler.DeleteCartItem)

	// Payments
	app.Post("/create-payment-intent", jwt, paymentHandler.CreatePaymentIntent)
	app.Post("/payment-info", jwt, paymentHandler.PaymentInfo)
	app.Get("/payment-history/:email", paymentHandler.PaymentHistory)
	app.Get("/payment-history-length/:email", paymentHandler.PaymentHistoryLength)

	// Enrollment
	app.Get("/enrolled-classes/:email", jwt, enrollmentHandler.EnrolledClasses)
	app.Get("/popular-instructors", enrollmentHandler.PopularInstructors)

	// Instructor applications
	app.Post("/as-instructor", applicationHandler.Apply)
	app.Get("/applied-instructors", applicationHandler.ListApplications)
	app.Get("/applied-instructors/:email", applicationHandler.GetApplicationByEmail)
	app.Put("/change-role/:email", jwt, admin, applicationHandler.ChangeRole)
	app.Delete("/delete-application/:id", jwt, admin, applicationHandler.DeleteApplication)

	// Admin dashboard
	app.Get("/admin-stats", jwt, admin, statsHandler.AdminStats)
}
