package users

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tanker327/react-project-structure-best-practices/api/rest/pagination"
	"github.com/tanker327/react-project-structure-best-practices/internal/auth"
	"github.com/tanker327/react-project-structure-best-practices/internal/errors"
	"github.com/tanker327/react-project-structure-best-practices/internal/validate"
	"github.com/tanker327/react-project-structure-best-practices/shop/users"
)

// ListUsersHandler godoc
// @Summary List users
// @Tags users
// @Produce json
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} ListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/users [get]
// @Security BearerAuth
func ListUsersHandler(repo *users.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := pagination.FromQuery(c)

		items, total, err := repo.List(c.Request.Context(), params.Limit, params.Offset)
		if err != nil {
			errors.InternalError(c, "failed to list users", err)
			return
		}

		c.JSON(http.StatusOK, ListResponse{
			Users:      items,
			Pagination: pagination.NewMeta(params, total),
		})
	}
}

// GetUserHandler godoc
// @Summary Get a user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} users.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/users/{id} [get]
// @Security BearerAuth
func GetUserHandler(repo *users.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := repo.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondRepoError(c, "failed to get user", err)
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

// CreateUserHandler godoc
// @Summary Create a user
// @Description Admin only
// @Tags users
// @Accept json
// @Produce json
// @Param request body users.CreateUserRequest true "User"
// @Success 201 {object} users.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /api/users [post]
// @Security BearerAuth
func CreateUserHandler(repo *users.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req users.CreateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, validate.FromBinding(err))
			return
		}

		user, err := repo.Create(c.Request.Context(), req)
		if err != nil {
			respondRepoError(c, "failed to create user", err)
			return
		}

		c.JSON(http.StatusCreated, user)
	}
}

// UpdateUserHandler godoc
// @Summary Update a user
// @Description Users may update themselves; admins may update anyone and toggle is_admin
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body users.UpdateUserRequest true "Changed fields"
// @Success 200 {object} users.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/users/{id} [put]
// @Security BearerAuth
func UpdateUserHandler(repo *users.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		userID, _ := auth.GetUserID(c)
		isAdmin := c.GetBool(auth.ContextIsAdmin)

		if id != userID && !isAdmin {
			errors.Forbidden(c, "cannot modify another user")
			return
		}

		var req users.UpdateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, validate.FromBinding(err))
			return
		}

		if req.IsAdmin != nil && !isAdmin {
			errors.Forbidden(c, "admin access required to change roles")
			return
		}

		user, err := repo.Update(c.Request.Context(), id, req)
		if err != nil {
			respondRepoError(c, "failed to update user", err)
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

// DeleteUserHandler godoc
// @Summary Delete a user
// @Description Admin only
// @Tags users
// @Param id path string true "User ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/users/{id} [delete]
// @Security BearerAuth
func DeleteUserHandler(repo *users.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondRepoError(c, "failed to delete user", err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}

func respondRepoError(c *gin.Context, message string, err error) {
	switch {
	case stderrors.Is(err, users.ErrUserNotFound):
		errors.NotFound(c, "user")
	case stderrors.Is(err, users.ErrUserConflict):
		errors.Conflict(c, err.Error())
	default:
		errors.InternalError(c, message, err)
	}
}
