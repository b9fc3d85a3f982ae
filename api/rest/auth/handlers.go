package auth

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tanker327/react-project-structure-best-practices/internal/auth"
	"github.com/tanker327/react-project-structure-best-practices/internal/errors"
	"github.com/tanker327/react-project-structure-best-practices/internal/logger"
	"github.com/tanker327/react-project-structure-best-practices/internal/validate"
	"github.com/tanker327/react-project-structure-best-practices/shop/users"
)

// LoginHandler godoc
// @Summary Log in
// @Description Exchanges a username and password for a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Router /api/auth/login [post]
func LoginHandler(userRepo *users.Repository, signer *auth.Signer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, validate.FromBinding(err))
			return
		}

		user, err := userRepo.Authenticate(c.Request.Context(), req.Username, req.Password)
		if stderrors.Is(err, auth.ErrInvalidCredentials) {
			logger.Warn("failed login attempt", "username", req.Username, "ip", c.ClientIP())
			errors.Unauthorized(c, "invalid username or password")
			return
		}
		if err != nil {
			errors.InternalError(c, "failed to authenticate", err)
			return
		}

		expiresAt := time.Now().Add(signer.TTL()).UTC()

		token, err := signer.GenerateJWT(user.ID, user.Username, user.IsAdmin)
		if err != nil {
			errors.InternalError(c, "failed to issue token", err)
			return
		}

		logger.Info("user logged in", "user_id", user.ID)

		c.JSON(http.StatusOK, LoginResponse{
			Token:     token,
			ExpiresAt: expiresAt,
			User:      user,
		})
	}
}

// LogoutHandler godoc
// @Summary Log out
// @Description Tokens are stateless; clients discard theirs
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /api/auth/logout [post]
func LogoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, MessageResponse{Message: "logged out successfully"})
	}
}

// GetCurrentUserHandler godoc
// @Summary Get current user
// @Tags auth
// @Produce json
// @Success 200 {object} users.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/auth/me [get]
// @Security BearerAuth
func GetCurrentUserHandler(userRepo *users.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			errors.Unauthorized(c, "user not authenticated")
			return
		}

		user, err := userRepo.Get(c.Request.Context(), userID)
		if stderrors.Is(err, users.ErrUserNotFound) {
			errors.NotFound(c, "user")
			return
		}
		if err != nil {
			errors.InternalError(c, "failed to get user", err)
			return
		}

		c.JSON(http.StatusOK, user)
	}
}
