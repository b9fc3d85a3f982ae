package users

import (
	"github.com/gin-gonic/gin"

	"github.com/tanker327/react-project-structure-best-practices/internal/auth"
	"github.com/tanker327/react-project-structure-best-practices/shop/users"
)

func RegisterRoutes(rg *gin.RouterGroup, repo *users.Repository, signer *auth.Signer) {
	group := rg.Group("/users")
	group.Use(signer.AuthMiddleware()) // all user routes require authentication

	group.GET("", ListUsersHandler(repo))
	group.GET("/:id", GetUserHandler(repo))
	group.POST("", auth.RequireAdmin(), CreateUserHandler(repo))
	group.PUT("/:id", UpdateUserHandler(repo))
	group.DELETE("/:id", auth.RequireAdmin(), DeleteUserHandler(repo))
}
