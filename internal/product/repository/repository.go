package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ecommerce-api/internal/database"
	"ecommerce-api/internal/product/model"
	appErrors "ecommerce-api/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository struct {
	db *database.Database
}

func NewRepository(db *database.Database) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) CreateProduct(ctx context.Context, product *model.Product) error {
	product.ID = uuid.New()
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()

	if err := r.db.DB.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// ListProducts returns a page of products in creation order, with the ID as
// tiebreaker so pagination stays stable.
func (r *ProductRepository) ListProducts(ctx context.Context, skip, limit int) ([]model.Product, error) {
	products := make([]model.Product, 0, limit)
	err := r.db.DB.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Offset(skip).
		Limit(limit).
		Find(&products).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (r *ProductRepository) GetProductByID(ctx context.Context, productID uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.DB.WithContext(ctx).Where("id = ?", productID).First(&product).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErrors.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

// DeleteProduct removes the row and reports whether one was removed, so a
// repeat delete of the same ID is a no-op rather than an error.
func (r *ProductRepository) DeleteProduct(ctx context.Context, productID uuid.UUID) (bool, error) {
	result := r.db.DB.WithContext(ctx).Where("id = ?", productID).Delete(&model.Product{})

	if result.Error != nil {
		return false, fmt.Errorf("failed to delete product: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
