package app

import (
	"context"
	"fmt"

	"auth-api/internal/auth"
	"auth-api/internal/auth/basic"
	"auth-api/internal/config"
	"auth-api/internal/handler"
	"auth-api/internal/logger"
	"auth-api/internal/middleware"
	"auth-api/internal/records"
	"auth-api/internal/session"
	"auth-api/internal/user"

	"github.com/gin-gonic/gin"
)

// excludedPaths are the routes reachable without authentication.
// Supplied once at startup; first-match-wins for the wildcard rules.
var excludedPaths = []string{
	"/health/",
	"/users/",
	"/sessions/",
	"/reset_password*",
}

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	userStore := user.NewPGStore(infra.DB)
	userService := user.NewService(userStore)

	strategy, sessions, err := bindStrategy(cfg, infra, userStore)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("auth strategy bound", map[string]any{
		"strategy": strategy.Name(),
	})

	facade := auth.NewFacade(strategy, excludedPaths)
	authMiddleware := middleware.NewAuthMiddleware(facade)

	authHandler := handler.NewHandler(
		userService,
		sessions,
		cfg.SessionName,
		cfg.SessionDuration,
	)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())

	if cfg.AuthType != "none" {
		router.Use(middleware.GinRequireAuth(authMiddleware))
	}

	authHandler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, func() error {
		return infra.DB.Close()
	}, nil
}

// bindStrategy selects the single authentication policy for this
// deployment. The session manager is nil for non-session strategies.
func bindStrategy(
	cfg config.Config,
	infra *Infra,
	users user.Store,
) (auth.Strategy, handler.SessionManager, error) {

	switch cfg.AuthType {

	case "none":
		return auth.NoAuth{}, nil, nil

	case "basic":
		return basic.New(users), nil, nil

	case "session":
		lc := session.New(session.NewMemoryStore(), users, cfg.SessionName)
		return lc, lc, nil

	case "session_exp":
		lc := session.NewExpiring(
			session.NewMemoryStore(), users,
			cfg.SessionName, cfg.SessionDuration,
		)
		return lc, lc, nil

	case "session_db":
		var recordStore records.Store
		switch cfg.SessionStore {
		case "redis":
			recordStore = records.NewRedisStore(infra.Redis.Client)
		case "postgres":
			recordStore = records.NewPGStore(infra.DB)
		default:
			return nil, nil, fmt.Errorf("app: unknown session store %q", cfg.SessionStore)
		}

		exp := session.NewExpiring(
			session.NewMemoryStore(), users,
			cfg.SessionName, cfg.SessionDuration,
		)
		lc := session.NewPersistent(exp, recordStore)
		return lc, lc, nil

	default:
		return nil, nil, fmt.Errorf("app: unknown auth type %q", cfg.AuthType)
	}
}
