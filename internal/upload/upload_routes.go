package upload

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the callback outside the bearer auth; the request
// is authenticated by its signature instead.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	r.POST("/uploads/callback", handler.Callback)
}
