package products

import (
	"github.com/gin-gonic/gin"

	"github.com/tanker327/react-project-structure-best-practices/internal/auth"
	"github.com/tanker327/react-project-structure-best-practices/shop/products"
)

// registers product routes; reads are public, writes require a token
func RegisterRoutes(rg *gin.RouterGroup, repo *products.Repository, signer *auth.Signer) {
	group := rg.Group("/products")
	{
		group.GET("", ListProductsHandler(repo))
		group.GET("/:id", GetProductHandler(repo))
		group.POST("", signer.AuthMiddleware(), CreateProductHandler(repo))
		group.PUT("/:id", signer.AuthMiddleware(), UpdateProductHandler(repo))
		group.DELETE("/:id", signer.AuthMiddleware(), auth.RequireAdmin(), DeleteProductHandler(repo))
	}
}
