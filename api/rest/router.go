// Package rest assembles the mock storefront API.
package rest

import (
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	authroutes "github.com/tanker327/react-project-structure-best-practices/api/rest/auth"
	"github.com/tanker327/react-project-structure-best-practices/api/rest/health"
	productroutes "github.com/tanker327/react-project-structure-best-practices/api/rest/products"
	userroutes "github.com/tanker327/react-project-structure-best-practices/api/rest/users"
	"github.com/tanker327/react-project-structure-best-practices/internal/auth"
	"github.com/tanker327/react-project-structure-best-practices/internal/errors"
	"github.com/tanker327/react-project-structure-best-practices/internal/validate"
	"github.com/tanker327/react-project-structure-best-practices/shop/products"
	"github.com/tanker327/react-project-structure-best-practices/shop/users"
)

// Deps holds what the route handlers need
type Deps struct {
	Products *products.Repository
	Users    *users.Repository
	Signer   *auth.Signer

	// ulule limiter format ("5-M"); empty disables login throttling
	LoginRateLimit string

	// empty allows any origin
	CORSOrigins []string
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validate.UseJSONNames(v)
	}
}

// creates the gin engine with middleware and all API routes
func NewRouter(deps Deps) (*gin.Engine, error) {
	loginLimit, err := LoginRateLimiter(deps.LoginRateLimit)
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(), CORSMiddleware(deps.CORSOrigins))

	RegisterRoutes(router, deps, loginLimit)

	return router, nil
}

// sets up all API routes
func RegisterRoutes(router *gin.Engine, deps Deps, loginLimit gin.HandlerFunc) {
	router.GET("/health", health.Handler)

	api := router.Group("/api")
	{
		api.GET("/ping", health.PingHandler)

		authroutes.RegisterRoutes(api, deps.Users, deps.Signer, loginLimit)
		productroutes.RegisterRoutes(api, deps.Products, deps.Signer)
		userroutes.RegisterRoutes(api, deps.Users, deps.Signer)
	}

	router.NoRoute(func(c *gin.Context) {
		errors.NotFound(c, "route")
	})
}

func CORSMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: len(origins) > 0,
		MaxAge:           12 * time.Hour,
	}

	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}

	return cors.New(cfg)
}

// per-IP limiter for the login endpoint backed by an in-memory store
func LoginRateLimiter(formatted string) (gin.HandlerFunc, error) {
	if formatted == "" {
		return func(c *gin.Context) { c.Next() }, nil
	}

	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("invalid login rate limit %q: %w", formatted, err)
	}

	instance := limiter.New(memory.NewStore(), rate)

	return mgin.NewMiddleware(instance, mgin.WithLimitReachedHandler(func(c *gin.Context) {
		errors.TooManyRequests(c, "too many login attempts, try again later")
	})), nil
}
