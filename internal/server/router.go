// Package server assembles the gin engine and runs the HTTP listener.
package server

import (
	"net/http"
	"strings"
	"time"

	"northwind-ai-api/internal/ai"
	"northwind-ai-api/internal/auth"
	"northwind-ai-api/internal/config"
	"northwind-ai-api/internal/handlers"
	"northwind-ai-api/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Store is everything the handlers read from the database.
type Store interface {
	handlers.ProductFinder
	handlers.CustomerLister
	handlers.UserStore
}

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Config config.AppConfig
	Logger zerolog.Logger
	Store  Store
	AI     ai.Completer
	Tokens *auth.TokenManager
	// OpenRouterSettings overrides config.LoadOpenRouter; tests set it.
	OpenRouterSettings func() (config.OpenRouter, error)
}

// NewRouter builds the engine with every route mounted.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	// ASP.NET-style clients use /api/openrouter/findrecipe and friends.
	r.RedirectFixedPath = true

	r.Use(middleware.RequestContext(d.Logger))
	r.Use(middleware.AccessLog())
	r.Use(middleware.Metrics())
	r.Use(gin.Recovery())
	if corsCfg, ok := corsConfig(d.Config.CORSAllowedOrigins); ok {
		r.Use(cors.New(corsCfg))
	}

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "online"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	accounts := &handlers.AccountHandler{Users: d.Store, Tokens: d.Tokens}
	r.POST("/login", accounts.Login)
	if d.Config.AllowRegistration {
		r.POST("/register", accounts.Register)
		d.Logger.Warn().Msg("registration route is OPEN, disable this in production")
	}

	openRouter := handlers.NewOpenRouterHandler(d.Store, d.AI)
	if d.OpenRouterSettings != nil {
		openRouter.Settings = d.OpenRouterSettings
	}
	customers := &handlers.CustomerHandler{Customers: d.Store}

	api := r.Group("/api")
	{
		or := api.Group("/openrouter")
		or.Use(middleware.EnvelopeRecovery())
		or.GET("/test", openRouter.Test)
		or.GET("/FindRecipe", openRouter.FindRecipe)

		// PROTECTED
		api.GET("/customers", middleware.AuthMiddleware(d.Tokens), customers.GetAllCustomers)
	}

	return r
}

// corsConfig returns false when no origins are configured, in which case no
// CORS headers are emitted. A lone "*" allows any origin without credentials.
func corsConfig(origins []string) (cors.Config, bool) {
	var cleaned []string
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			cleaned = append(cleaned, o)
		}
	}
	if len(cleaned) == 0 {
		return cors.Config{}, false
	}

	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(cleaned) == 1 && cleaned[0] == "*" {
		cfg.AllowAllOrigins = true
		return cfg, true
	}
	cfg.AllowOrigins = cleaned
	cfg.AllowCredentials = true
	return cfg, true
}
