package handler

import (
	"context"
	"errors"
	"net/http"

	"ecommerce-api/internal/logger"
	"ecommerce-api/internal/middleware"
	"ecommerce-api/internal/user/model"
	appErrors "ecommerce-api/pkg/errors"
	"ecommerce-api/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserService is the auth flow surface the handler depends on.
type UserService interface {
	Signup(ctx context.Context, request *model.SignupRequest) (*model.TokenResponse, error)
	Login(ctx context.Context, request *model.LoginRequest) (*model.TokenResponse, error)
}

type UserHandler struct {
	service UserService
}

func NewHandler(service UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/signup", h.Signup)
		auth.POST("/login", h.Login)
	}
}

func (h *UserHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.GET("/me", h.Me)
		auth.POST("/logout", h.Logout)
	}
}

func (h *UserHandler) Signup(c *gin.Context) {
	var request model.SignupRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	request.Username = utils.SanitizeString(request.Username)
	request.Email = utils.SanitizeEmail(request.Email)

	token, err := h.service.Signup(c.Request.Context(), &request)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, token)
}

// Login accepts form-encoded credentials, OAuth2 password-grant style.
func (h *UserHandler) Login(c *gin.Context) {
	var request model.LoginRequest

	if err := c.ShouldBind(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.service.Login(c.Request.Context(), &request)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, token)
}

func (h *UserHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	c.JSON(http.StatusOK, user.ToResponse())
}

// Logout acknowledges the request. Tokens are stateless and expire on their
// own; there is nothing to invalidate server-side.
func (h *UserHandler) Logout(c *gin.Context) {
	utils.MessageResponse(c, http.StatusOK, "Successfully logged out")
}

func respondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, appErrors.ErrUserAlreadyExists):
		utils.ErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, appErrors.ErrInvalidCredentials),
		errors.Is(err, appErrors.ErrTokenInvalid),
		errors.Is(err, appErrors.ErrTokenExpired),
		errors.Is(err, appErrors.ErrUnauthorized):
		utils.ErrorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, appErrors.ErrUserInactive):
		utils.ErrorResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, appErrors.ErrUserNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
	default:
		var appErr *appErrors.AppError
		if errors.As(err, &appErr) {
			utils.ErrorResponse(c, http.StatusBadRequest, appErr.Message)
			return
		}

		requestID := middleware.GetRequestID(c)
		logger.Error("Internal server error",
			zap.String("request_id", requestID),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Error(err),
		)
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}
