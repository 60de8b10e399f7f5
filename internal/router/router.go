package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/library-inventory/internal/config"
	"github.com/iliyamo/library-inventory/internal/handler"
	"github.com/iliyamo/library-inventory/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers authentication routes. Unauthenticated
// operations live under /v1/auth; the session endpoints that need a
// valid access token are registered by RegisterProtected.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/v1/auth")
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	// Logout takes a refresh token in the body, so it does not require
	// a live access token.
	g.POST("/logout", a.Logout)
}

// RegisterCatalog registers the read-only catalog endpoints. These are
// unauthenticated so the public OPAC frontend can browse without a
// session; the rate limiter and response cache wrap them because they
// take the anonymous traffic.
func RegisterCatalog(e *echo.Echo, b *handler.BookHandler, au *handler.AuthorHandler, cat *handler.CategoryHandler, rdb *redis.Client) {
	g := e.Group("/v1")
	g.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	g.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	g.GET("/books", b.ListBooks)
	g.GET("/books/:id", b.GetBook)
	g.GET("/books/:id/copies", b.GetCopies)
	g.GET("/books/:id/copies/count", b.GetCopyCount)

	g.GET("/authors", au.ListAuthors)
	g.GET("/authors/search", au.SearchAuthors)
	g.GET("/categories", cat.ListCategories)
}

// RegisterProtected registers every endpoint that mutates the catalog or
// inventory. All of them require a staff JWT with the LIBRARIAN or ADMIN
// role; account creation is further restricted to ADMIN.
func RegisterProtected(e *echo.Echo, jwtSecret string, a *handler.AuthHandler, b *handler.BookHandler, acc *handler.AccountHandler) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("LIBRARIAN", "ADMIN"))

	g.GET("/me", a.Me)
	g.POST("/auth/logout-all", a.LogoutAll)

	g.POST("/books", b.CreateBook)
	g.PUT("/books/:id", b.UpdateBook)
	g.DELETE("/books/:id", b.DeleteBook)
	g.POST("/books/bulk-delete", b.BulkDeleteBooks)
	g.PUT("/books/:id/copies", b.UpdateCopies)

	admin := e.Group("/v1/accounts")
	admin.Use(middleware.JWTAuth(jwtSecret))
	admin.Use(middleware.RequireRole("ADMIN"))
	admin.POST("/staff", acc.CreateStaff)
	admin.POST("/members", acc.CreateMember)
}
