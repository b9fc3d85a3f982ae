package products

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tanker327/react-project-structure-best-practices/api/rest/pagination"
	"github.com/tanker327/react-project-structure-best-practices/internal/errors"
	"github.com/tanker327/react-project-structure-best-practices/internal/validate"
	"github.com/tanker327/react-project-structure-best-practices/shop/products"
)

// ListProductsHandler godoc
// @Summary List products
// @Description Returns one page of the catalog, optionally filtered by category or search term
// @Tags products
// @Produce json
// @Param category query string false "Category (case-insensitive)"
// @Param q query string false "Search in name and description"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} ListResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/products [get]
func ListProductsHandler(repo *products.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := pagination.FromQuery(c)
		filter := products.ListFilter{
			Category: c.Query("category"),
			Search:   c.Query("q"),
		}

		items, total, err := repo.List(c.Request.Context(), filter, params.Limit, params.Offset)
		if err != nil {
			errors.InternalError(c, "failed to list products", err)
			return
		}

		c.JSON(http.StatusOK, ListResponse{
			Products:   items,
			Pagination: pagination.NewMeta(params, total),
		})
	}
}

// GetProductHandler godoc
// @Summary Get a product
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} products.Product
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/products/{id} [get]
func GetProductHandler(repo *products.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := repo.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondRepoError(c, "failed to get product", err)
			return
		}

		c.JSON(http.StatusOK, product)
	}
}

// CreateProductHandler godoc
// @Summary Create a product
// @Tags products
// @Accept json
// @Produce json
// @Param request body products.CreateProductRequest true "Product"
// @Success 201 {object} products.Product
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /api/products [post]
// @Security BearerAuth
func CreateProductHandler(repo *products.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req products.CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, validate.FromBinding(err))
			return
		}

		product, err := repo.Create(c.Request.Context(), req)
		if err != nil {
			respondRepoError(c, "failed to create product", err)
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}

// UpdateProductHandler godoc
// @Summary Update a product
// @Description Applies the fields present in the body
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body products.UpdateProductRequest true "Changed fields"
// @Success 200 {object} products.Product
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /api/products/{id} [put]
// @Security BearerAuth
func UpdateProductHandler(repo *products.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req products.UpdateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, validate.FromBinding(err))
			return
		}

		product, err := repo.Update(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			respondRepoError(c, "failed to update product", err)
			return
		}

		c.JSON(http.StatusOK, product)
	}
}

// DeleteProductHandler godoc
// @Summary Delete a product
// @Tags products
// @Param id path string true "Product ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/products/{id} [delete]
// @Security BearerAuth
func DeleteProductHandler(repo *products.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondRepoError(c, "failed to delete product", err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}

func respondRepoError(c *gin.Context, message string, err error) {
	switch {
	case stderrors.Is(err, products.ErrProductNotFound):
		errors.NotFound(c, "product")
	case stderrors.Is(err, products.ErrProductConflict):
		errors.Conflict(c, err.Error())
	default:
		errors.InternalError(c, message, err)
	}
}
