package router

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/okravets/institutions-api/config"
	"github.com/okravets/institutions-api/database"
	"github.com/okravets/institutions-api/handlers"
	auth_handlers "github.com/okravets/institutions-api/handlers/auth"
	institution_handlers "github.com/okravets/institutions-api/handlers/institution"
	"github.com/okravets/institutions-api/services"
	"github.com/okravets/institutions-api/utils/auth"
	"github.com/okravets/institutions-api/utils/cache"
	"github.com/okravets/institutions-api/utils/middleware"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, store database.Storage) {
	getEnv, err := config.Get()
	if err != nil {
		log.Fatal("Failed to read environment:", err)
	}

	if getEnv.JWT_SECRET == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	authUsers, err := config.ParseAuthUsers(getEnv.AUTH_USERS)
	if err != nil {
		log.Fatal("Failed to parse AUTH_USERS:", err)
	}
	if len(authUsers) == 0 {
		log.Println("Warning: AUTH_USERS is empty, nobody can obtain tokens")
	}

	// Token issuer and bearer-token middleware share the signing key
	issuer := auth.NewTokenIssuer(getEnv.JWT_SECRET)
	authMiddleware := middleware.NewAuthMiddleware(issuer)

	// Get DB instance (type assert from interface)
	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		log.Fatal("Failed to get GORM DB instance")
	}

	// Redis-backed brute force protection for the token endpoint; the API
	// stays up without it when Redis is unreachable
	var bruteForceProtection *middleware.BruteForceProtection
	redisURL := getEnv.REDIS_URL
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}
	redisCache, err := cache.NewRedisCache(redisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Brute force protection will be disabled.", err)
	} else {
		bruteForceProtection = middleware.NewBruteForceProtection(redisCache)
	}

	basicAuth := middleware.NewBasicAuthMiddleware(authUsers, bruteForceProtection)

	// Services and handlers
	institutionService := services.NewInstitutionService(store)
	auditService := services.NewAuditService(db)
	institutionHandler := institution_handlers.NewInstitutionHandler(institutionService, auditService)
	tokenHandler := auth_handlers.NewTokenHandler(issuer)

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000"
	}

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 100,             // 100 requests
		RateLimitWindow:   1 * time.Minute, // per minute
	})

	// Health check endpoint (public)
	app.Get("/health", handlers.HandleCheckHealth(store))

	// Token endpoint: basic credentials in, bare signed token out
	authGroup := app.Group("/auth")
	if bruteForceProtection != nil {
		authGroup.Post("/token", bruteForceProtection.CheckLockout(), basicAuth.Required(), tokenHandler.IssueToken)
	} else {
		authGroup.Post("/token", basicAuth.Required(), tokenHandler.IssueToken)
	}

	// Institution catalog, bearer token required
	institutions := app.Group("/institutions", authMiddleware.Required())
	institutions.Get("/", institutionHandler.ListInstitutions)
	institutions.Get("/:id", institutionHandler.GetInstitution)
	institutions.Post("/", institutionHandler.CreateInstitution)
	institutions.Put("/:id", institutionHandler.UpdateInstitution)
	institutions.Delete("/:id", institutionHandler.DeleteInstitution)
}
