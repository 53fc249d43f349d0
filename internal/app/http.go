package app

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/rafaelminatto1/dudufisio-sub005/internal/audit"
	"github.com/rafaelminatto1/dudufisio-sub005/internal/auth/callback"
	"github.com/rafaelminatto1/dudufisio-sub005/internal/auth/credentials"
	"github.com/rafaelminatto1/dudufisio-sub005/internal/auth/handler"
	"github.com/rafaelminatto1/dudufisio-sub005/internal/auth/login"
	"github.com/rafaelminatto1/dudufisio-sub005/internal/auth/provider"
	"github.com/rafaelminatto1/dudufisio-sub005/internal/auth/provider/google"
	"github.com/rafaelminatto1/dudufisio-sub005/internal/auth/provider/oidc"
	"github.com/rafaelminatto1/dudufisio-sub005/internal/auth/resolver"
	"github.com/rafaelminatto1/dudufisio-sub005/internal/auth/service"
	"github.com/rafaelminatto1/dudufisio-sub005/internal/config"
	"github.com/rafaelminatto1/dudufisio-sub005/internal/middleware"
	"github.com/rafaelminatto1/dudufisio-sub005/internal/profile"
	"github.com/rafaelminatto1/dudufisio-sub005/internal/session"
)

func setupHTTP(ctx context.Context, cfg config.Config, log zerolog.Logger) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	sessionStore := session.NewRedisStore(infra.Redis.Client)
	identityResolver := resolver.NewDBResolver(infra.DB)
	credentialService := credentials.NewService(infra.DB)

	var providers []provider.OAuthProvider

	if cfg.GoogleEnabled() {
		googleProvider, err := google.New(
			ctx,
			cfg.GoogleClientID,
			cfg.GoogleClientSecret,
			cfg.GoogleRedirectURL,
			log,
		)
		if err != nil {
			return nil, nil, err
		}
		providers = append(providers, googleProvider)
	}

	if cfg.OIDCEnabled() {
		oidcProvider, err := oidc.New(
			ctx,
			cfg.OIDCIssuer,
			cfg.OIDCClientID,
			cfg.OIDCRedirectURL,
			log,
		)
		if err != nil {
			return nil, nil, err
		}
		providers = append(providers, oidcProvider)
	}

	registry := provider.NewRegistry(providers...)

	// Callbacks without an explicit provider parameter fall back to the
	// configured default; an absent default must fail here, not at the
	// first login.
	if err := registry.Ensure(cfg.DefaultProvider); err != nil {
		return nil, nil, err
	}

	log.Info().Strs("providers", registry.Names()).Msg("oauth providers registered")

	authService := service.New(
		registry,
		credentialService,
		identityResolver,
		sessionStore,
		log,
	)

	profileStore := profile.NewPostgresStore(infra.DB)
	provisioner := profile.NewProvisioner(profileStore, log)
	recorder := audit.NewPostgresRecorder(infra.DB, log)

	callbackHandler := callback.NewHandler(
		authService,
		provisioner,
		recorder,
		cfg.AppOrigin,
		cfg.DefaultProvider,
		log,
	)

	loginController := login.NewController(authService, recorder, log)

	authHandler := handler.NewHandler(
		registry,
		callbackHandler,
		loginController,
		credentialService,
		sessionStore,
		profileStore,
		identityResolver,
		log,
	)

	authMiddleware := middleware.NewAuthMiddleware(sessionStore)

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

	api.GET("/auth/profile", authHandler.Profile)

	api.GET("/me", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"user_id": c.GetString("userID"),
		})
	})

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, func() error {
		return infra.DB.Close()
	}, nil
}
