package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/emerginginv/media-api/internal/interfaces/httpserver/handlers"
)

// Routes encapsulates versioned route registration.
type Routes struct {
	handlers  *handlers.Provider
	adminAuth gin.HandlerFunc
}

func NewRoutes(provider *handlers.Provider, adminAuth gin.HandlerFunc) *Routes {
	if adminAuth == nil {
		adminAuth = func(c *gin.Context) { c.Next() }
	}
	return &Routes{handlers: provider, adminAuth: adminAuth}
}

// Register attaches all v1 routes under /v1 prefix.
func (r *Routes) Register(router gin.IRouter) {
	group := router.Group("/v1")

	group.GET("/media", r.handlers.Media.List)
	group.GET("/media/featured", r.handlers.Media.Featured)
	group.GET("/files/:bucket/*key", r.handlers.Media.ServeFile)

	admin := group.Group("/admin", r.adminAuth)
	admin.POST("/media", r.handlers.Admin.Upload)
	admin.GET("/media", r.handlers.Admin.List)
	admin.GET("/media/recent", r.handlers.Admin.Recent)
	admin.GET("/media/categories", r.handlers.Admin.Categories)
	admin.GET("/media/:id", r.handlers.Admin.Get)
	admin.DELETE("/media/:id", r.handlers.Admin.Delete)
}
