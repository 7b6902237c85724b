package routes

import (
	"net/http"
	"time"

	"musicminds/config"
	"musicminds/handlers"
	"musicminds/middleware"
	"musicminds/services/auth"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute exposes the dependency snapshot.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterAuthRoutes registers the public login flow.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/login", hb.Auth.Relay(auth.ActionLogin))
		api.POST("/verify", hb.Auth.Relay(auth.ActionVerify))
		api.POST("/resend", hb.Auth.Relay(auth.ActionResend))
		api.POST("/forgot", hb.Auth.Relay(auth.ActionForgot))
		api.POST("/reset-password", hb.Auth.Relay(auth.ActionResetPassword))
		api.POST("/logout", hb.Auth.LogoutHandler)
	}
}

// RegisterResourceRoutes registers list and forward endpoints for every known
// resource. Paths are static per resource so unknown names never reach the backend.
func RegisterResourceRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	for _, res := range hb.Resources {
		name := res.Name
		group := api.Group("/" + name)

		if name == "notifications" {
			group.GET("", hb.Notifications.ListNotificationsHandler)
			group.GET("/unread-count", hb.Notifications.UnreadCountHandler)
			group.PATCH("/read-all", hb.Notifications.MarkAllReadHandler)
		} else {
			group.GET("", hb.Resource.List(name))
		}

		forward := hb.Resource.Forward(name)
		group.POST("", forward)
		group.GET("/:id", forward)
		group.PUT("/:id", forward)
		group.PATCH("/:id", forward)
		group.DELETE("/:id", forward)
		group.POST("/:id/:action", forward)
		group.PATCH("/:id/:action", forward)
		group.PUT("/:id/:action", forward)
	}
}

// RegisterProtectedRoutes registers everything that needs the accessToken cookie.
func RegisterProtectedRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	api.Use(middleware.CookieAuth(hb.SessionStore))
	{
		api.GET("/session", hb.Session.CurrentUserHandler)
		api.POST("/exports", hb.Export.CreateExportHandler)
		api.GET("/download", hb.Download.DownloadFileHandler)
	}
	RegisterResourceRoutes(api, hb)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Cookies only flow with an explicit origin list, never "*".
	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.AllowedOrigins(),
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", handlers.ViewIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Total-Count", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb)
	RegisterProtectedRoutes(r, hb)
}
