package router

import (
	"net/http"

	"github.com/deppfellow/askhub/internal/handler"
	"github.com/deppfellow/askhub/internal/middleware"
	"github.com/labstack/echo/v4"
)

// registerV1Routes mounts the marketplace API. Reads are public except
// the caller's own data; every write needs a bearer token.
func registerV1Routes(g *echo.Group, h *handler.Handlers, mw *middleware.Middlewares) {
	requireAuth := mw.Auth.RequireAuth
	optionalAuth := mw.Auth.OptionalAuth

	me := g.Group("/me", requireAuth)
	me.GET("", handler.Handle(h.Profile.Handler, h.Profile.Me, http.StatusOK))
	me.GET("/posts", handler.Handle(h.Post.Handler, h.Post.ListMine, http.StatusOK))
	me.GET("/responses", handler.Handle(h.Response.Handler, h.Response.ListMine, http.StatusOK))

	profiles := g.Group("/profiles")
	profiles.POST("", handler.Handle(h.Profile.Handler, h.Profile.Create, http.StatusCreated), requireAuth)
	profiles.PATCH("/me", handler.Handle(h.Profile.Handler, h.Profile.Update, http.StatusOK), requireAuth)
	profiles.PUT("/me/solver", handler.Handle(h.Profile.Handler, h.Profile.UpsertSolver, http.StatusOK), requireAuth)
	profiles.GET("/:id", handler.Handle(h.Profile.Handler, h.Profile.Get, http.StatusOK), optionalAuth)
	profiles.GET("/:id/solver", handler.Handle(h.Profile.Handler, h.Profile.GetSolver, http.StatusOK), optionalAuth)

	categories := g.Group("/categories")
	categories.GET("", handler.Handle(h.Category.Handler, h.Category.List, http.StatusOK))
	categories.GET("/:slug", handler.Handle(h.Category.Handler, h.Category.Get, http.StatusOK))

	posts := g.Group("/posts")
	posts.GET("", handler.Handle(h.Post.Handler, h.Post.List, http.StatusOK), optionalAuth)
	posts.POST("", handler.Handle(h.Post.Handler, h.Post.Create, http.StatusCreated), requireAuth)
	posts.GET("/:id", handler.Handle(h.Post.Handler, h.Post.Get, http.StatusOK), optionalAuth)
	posts.PATCH("/:id", handler.Handle(h.Post.Handler, h.Post.Update, http.StatusOK), requireAuth)
	posts.DELETE("/:id", handler.HandleNoContent(h.Post.Handler, h.Post.Delete, http.StatusNoContent), requireAuth)
	posts.GET("/:id/responses", handler.Handle(h.Response.Handler, h.Response.ListByPost, http.StatusOK), optionalAuth)
	posts.POST("/:id/responses", handler.Handle(h.Response.Handler, h.Response.Create, http.StatusCreated), requireAuth)

	responses := g.Group("/responses", requireAuth)
	responses.PATCH("/:id", handler.Handle(h.Response.Handler, h.Response.Update, http.StatusOK))
	responses.POST("/:id/accept", handler.Handle(h.Response.Handler, h.Response.Accept, http.StatusOK))
	responses.POST("/:id/reject", handler.Handle(h.Response.Handler, h.Response.Reject, http.StatusOK))
	responses.POST("/:id/complete", handler.Handle(h.Response.Handler, h.Response.Complete, http.StatusOK))

	messages := g.Group("/messages", requireAuth)
	messages.GET("", handler.Handle(h.Message.Handler, h.Message.List, http.StatusOK))
	messages.GET("/unread-count", handler.Handle(h.Message.Handler, h.Message.UnreadCount, http.StatusOK))
	messages.POST("/read-all", handler.Handle(h.Message.Handler, h.Message.MarkAllRead, http.StatusOK))
	messages.POST("/:id/read", handler.Handle(h.Message.Handler, h.Message.MarkRead, http.StatusOK))
}
