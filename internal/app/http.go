package app

import (
	"context"

	"identity-service/internal/account/postgres"
	"identity-service/internal/auth"
	"identity-service/internal/auth/handler"
	"identity-service/internal/auth/provider"
	"identity-service/internal/auth/provider/google"
	"identity-service/internal/auth/resolver"
	"identity-service/internal/auth/token"
	"identity-service/internal/config"
	"identity-service/internal/middleware"
	"identity-service/internal/statestore"

	"github.com/gin-gonic/gin"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	accountStore := postgres.NewStore(infra.DB)
	identityResolver := resolver.NewStoreResolver(accountStore)
	stateStore := statestore.NewRedisStore(infra.Redis.Client)

	tokenService, err := token.NewService([]byte(cfg.JWTSecret), cfg.TokenTTL)
	if err != nil {
		return nil, nil, err
	}

	googleProvider, err := google.New(
		ctx,
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleRedirectURL,
	)
	if err != nil {
		return nil, nil, err
	}

	registry := provider.NewRegistry(googleProvider)

	authService := auth.NewService(
		accountStore,
		tokenService,
		identityResolver,
		registry,
	)

	authHandler := handler.NewHandler(authService, registry, stateStore)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())

	// ----------------------------
	// Public Routes
	// ----------------------------

	authHandler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ----------------------------
	// Protected API Routes
	// ----------------------------

	api := router.Group("/api")
	api.Use(middleware.GinRequireAuth(authMiddleware))

	api.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	api.GET("/me", func(c *gin.Context) {
		accountID, _ := middleware.AccountIDFromContext(c.Request.Context())
		c.JSON(200, gin.H{
			"account_id": accountID,
		})
	})

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, infra.Close, nil
}
