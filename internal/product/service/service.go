package service

import (
	"context"

	"ecommerce-api/internal/product/model"
	appErrors "ecommerce-api/pkg/errors"
	"ecommerce-api/pkg/utils"

	"github.com/google/uuid"
)

const (
	DefaultPageSize = 100
	// MaxPageSize bounds list queries so a caller cannot force an
	// unbounded scan.
	MaxPageSize = 100
)

// ProductRepository is the persistence surface the service needs.
type ProductRepository interface {
	CreateProduct(ctx context.Context, product *model.Product) error
	ListProducts(ctx context.Context, skip, limit int) ([]model.Product, error)
	GetProductByID(ctx context.Context, productID uuid.UUID) (*model.Product, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) (bool, error)
}

type ProductService struct {
	repo ProductRepository
}

func NewService(repo ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

func (s *ProductService) CreateProduct(ctx context.Context, request *model.CreateProductRequest) (*model.Product, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	product := &model.Product{
		Name:        request.Name,
		Description: request.Description,
		Price:       request.Price,
		Stock:       request.Stock,
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (s *ProductService) ListProducts(ctx context.Context, skip, limit int) ([]model.Product, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > MaxPageSize {
		limit = DefaultPageSize
	}

	return s.repo.ListProducts(ctx, skip, limit)
}

func (s *ProductService) GetProduct(ctx context.Context, productID uuid.UUID) (*model.Product, error) {
	return s.repo.GetProductByID(ctx, productID)
}

func (s *ProductService) DeleteProduct(ctx context.Context, productID uuid.UUID) (bool, error) {
	return s.repo.DeleteProduct(ctx, productID)
}
