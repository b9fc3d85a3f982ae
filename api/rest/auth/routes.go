package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/tanker327/react-project-structure-best-practices/internal/auth"
	"github.com/tanker327/react-project-structure-best-practices/shop/users"
)

// registers all authentication routes; loginLimit guards the login endpoint
func RegisterRoutes(router *gin.RouterGroup, userRepo *users.Repository, signer *auth.Signer, loginLimit gin.HandlerFunc) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", loginLimit, LoginHandler(userRepo, signer))
		authGroup.POST("/logout", LogoutHandler())
		authGroup.GET("/me", signer.AuthMiddleware(), GetCurrentUserHandler(userRepo))
	}
}
