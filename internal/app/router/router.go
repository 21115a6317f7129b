// Package router builds the gin route table.
package router

import (
	"github.com/gin-gonic/gin"

	apphandler "magang_backend/internal/feature/application/transport/handler"
	authhandler "magang_backend/internal/feature/auth/transport/handler"
	chathandler "magang_backend/internal/feature/chat/transport/handler"
	poshandler "magang_backend/internal/feature/position/transport/handler"
	"magang_backend/internal/platform/http/handler"
	jwtmw "magang_backend/internal/platform/jwt"
)

// NewRouter wires every handler into the gin engine.
func NewRouter(
	secret string,
	users jwtmw.UserResolver,
	auth *authhandler.AuthHandler,
	positions *poshandler.PositionHandler,
	applications *apphandler.ApplicationHandler,
	chat *chathandler.ChatHandler,
) *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", handler.Health)

	// Identity endpoints, no token required.
	r.POST("/auth/register", auth.Register)
	r.POST("/auth/login", auth.Login)
	r.POST("/auth/verify-otp", auth.VerifyOTP)
	r.POST("/auth/resend-otp", auth.ResendOTP)
	r.POST("/auth/forgot-password", auth.ForgotPassword)
	r.POST("/auth/reset-password", auth.ResetPassword)

	// Position reads are public.
	r.GET("/positions", positions.List)
	r.GET("/positions/:id", positions.Get)

	authed := r.Group("/")
	authed.Use(jwtmw.AuthRequired(secret, users))
	{
		authed.GET("/auth/me", auth.Me)
		authed.PUT("/auth/profile", auth.UpdateProfile)
		authed.PUT("/auth/change-password", auth.ChangePassword)

		authed.POST("/applications", applications.Submit)
		authed.GET("/applications", applications.List)
		// /applications/stats must be registered before /applications/:id
		// is matched; gin resolves the static route first.
		authed.GET("/applications/stats", jwtmw.AdminRequired(), applications.Stats)
		authed.GET("/applications/:id", applications.Get)
		authed.DELETE("/applications/:id", applications.Delete)
		authed.PUT("/applications/:id/status", jwtmw.AdminRequired(), applications.SetStatus)

		authed.GET("/uploads/*filepath", applications.Download)

		authed.POST("/chat", chat.Ask)

		admin := authed.Group("/")
		admin.Use(jwtmw.AdminRequired())
		{
			admin.POST("/positions", positions.Create)
			admin.PUT("/positions/:id", positions.Update)
			admin.DELETE("/positions/:id", positions.Delete)
			admin.PATCH("/positions/:id/toggle-active", positions.ToggleActive)
		}
	}

	return r
}
