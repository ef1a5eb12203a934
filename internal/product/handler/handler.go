package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"ecommerce-api/internal/logger"
	"ecommerce-api/internal/middleware"
	"ecommerce-api/internal/product/model"
	appErrors "ecommerce-api/pkg/errors"
	"ecommerce-api/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductService is the catalog surface the handler depends on.
type ProductService interface {
	CreateProduct(ctx context.Context, request *model.CreateProductRequest) (*model.Product, error)
	ListProducts(ctx context.Context, skip, limit int) ([]model.Product, error)
	GetProduct(ctx context.Context, productID uuid.UUID) (*model.Product, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) (bool, error)
}

type ProductHandler struct {
	service ProductService
}

func NewHandler(service ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

func (h *ProductHandler) RegisterRoutes(router *gin.RouterGroup) {
	products := router.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)
		products.POST("", h.CreateProduct)
		products.DELETE("/:id", h.DeleteProduct)
	}
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	products, err := h.service.ListProducts(c.Request.Context(), skip, limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid product ID")
		return
	}

	product, err := h.service.GetProduct(c.Request.Context(), productID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var request model.CreateProductRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	request.Name = utils.SanitizeString(request.Name)
	if request.Description != nil {
		sanitized := utils.SanitizeText(*request.Description)
		request.Description = &sanitized
	}

	product, err := h.service.CreateProduct(c.Request.Context(), &request)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid product ID")
		return
	}

	deleted, err := h.service.DeleteProduct(c.Request.Context(), productID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if !deleted {
		utils.ErrorResponse(c, http.StatusNotFound, appErrors.ErrProductNotFound.Error())
		return
	}

	utils.MessageResponse(c, http.StatusOK, "Product deleted successfully")
}

func respondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, appErrors.ErrProductNotFound):
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
