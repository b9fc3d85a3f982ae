package main

import (
	"github.com/gin-gonic/gin"

	"github.com/tanker327/react-project-structure-best-practices/internal/auth"
	"github.com/tanker327/react-project-structure-best-practices/internal/config"
	"github.com/tanker327/react-project-structure-best-practices/shop/products"
	"github.com/tanker327/react-project-structure-best-practices/shop/users"
)

// holds all dependencies and state for the API server
type Server struct {
	config      *config.ServerConfig
	signer      *auth.Signer
	productRepo *products.Repository
	userRepo    *users.Repository
	router      *gin.Engine
}
