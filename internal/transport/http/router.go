package httptransport

import (
	"log/slog"

	"github.com/ErlanBelekov/contact-manager/internal/auth"
	"github.com/ErlanBelekov/contact-manager/internal/transport/http/handler"
	"github.com/ErlanBelekov/contact-manager/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

type Handlers struct {
	Auth    *handler.AuthHandler
	Contact *handler.ContactHandler
	Health  *handler.HealthHandler
}

func NewRouter(logger *slog.Logger, h Handlers, tokens *auth.TokenService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	r.GET("/healthz", h.Health.Live)
	r.GET("/readyz", h.Health.Ready)

	authMW := middleware.Auth(tokens, logger)

	// Public identity routes
	users := r.Group("/users")
	users.POST("/register", h.Auth.Register)
	users.POST("/login", h.Auth.Login)
	users.GET("/me", authMW, h.Auth.Me)

	// Protected contact routes
	contacts := r.Group("/contacts", authMW)
	contacts.POST("", h.Contact.Create)
	contacts.GET("", h.Contact.List)
	contacts.GET("/:id", h.Contact.Get)
	contacts.PUT("/:id", h.Contact.Update)
	contacts.DELETE("/:id", h.Contact.Delete)
	contacts.POST("/:id/addresses", h.Contact.CreateAddress)
	contacts.PUT("/:id/addresses/:address_id", h.Contact.UpdateAddress)
	contacts.DELETE("/:id/addresses/:address_id", h.Contact.DeleteAddress)

	return r
}
