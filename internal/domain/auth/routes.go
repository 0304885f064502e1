package auth

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the public auth endpoints.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	grp := r.Group("/auth")
	{
		grp.POST("/register", h.Register)
		grp.POST("/login", h.Login)
	}
}
