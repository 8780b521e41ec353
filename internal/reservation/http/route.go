package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/reservations")

	// === Public Routes ===
	group.POST("", h.Create)
	group.GET("/user", h.ListByEmail)
	group.GET("/:id", h.Get)
	group.PUT("/:id/cancel", h.Cancel)

	// === Admin Routes ===
	admin := group.Group("/admin")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.GET("/pending", h.ListPending)
		admin.GET("/all", h.ListAll)
		admin.PUT("/:id/confirm", h.Confirm)
		admin.PUT("/:id/reject", h.Reject)
		admin.DELETE("/:id", h.Delete)
	}
}
