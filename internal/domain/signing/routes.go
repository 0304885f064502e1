package signing

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the signing endpoint under the protected group.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	r.POST("/upload-urls", h.SignBatch)
}
