package app

import (
	"context"

	"github.com/gin-gonic/gin"

	"vestibule-demo/internal/auth/handler"
	"vestibule-demo/internal/auth/resolver"
	"vestibule-demo/internal/config"
	"vestibule-demo/internal/logger"
	"vestibule-demo/internal/middleware"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	registry, err := buildRegistry(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("oauth providers registered", map[string]any{
		"providers": registry.Names(),
	})

	sessionStore, cleanup, err := setupSessionStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	identityResolver := resolver.NewMemoryResolver()
	secret := []byte(cfg.SecretKeyBase)

	authHandler := handler.NewHandler(
		registry,
		sessionStore,
		identityResolver,
		secret,
		cfg.BaseURL,
	)

	authMiddleware := middleware.NewAuthMiddleware(sessionStore, secret)

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

	api.GET("/me", authHandler.Me)

	return router, cleanup, nil
}
