package product

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes mounts the read endpoints.
func RegisterPublicRoutes(r *gin.RouterGroup, h *Handler) {
	products := r.Group("/products")
	{
		products.GET("", h.List)
		products.GET("/:id", h.GetByID)
	}
}

// RegisterProtectedRoutes mounts the write endpoints behind auth.
func RegisterProtectedRoutes(r *gin.RouterGroup, h *Handler) {
	r.POST("/products", h.Create)
}
