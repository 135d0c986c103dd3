package service

import (
	"context"
	"log/slog"

	"github.com/notuna/order-service/internal/entities"
)

type ProductRepo interface {
	CreateProduct(ctx context.Context, p entities.Product) (entities.Product, error)
	GetProduct(ctx context.Context, productID int64) (entities.Product, error)
	GetSellerProduct(ctx context.Context, productID, sellerID int64) (entities.Product, error)
	ListSellerProducts(ctx context.Context, sellerID int64) ([]entities.Product, error)
	ListProducts(ctx context.Context) ([]entities.Product, error)
	DeleteSellerProduct(ctx context.Context, productID, sellerID int64) (bool, error)
	DeleteProduct(ctx context.Context, productID int64) (bool, error)
	SellerExists(ctx context.Context, sellerID int64) (bool, error)
}

type productService struct {
	logger *slog.Logger
	repo   ProductRepo
}

func NewProductService(logger *slog.Logger, repo ProductRepo) *productService {
	return &productService{
		logger: logger.With(slog.String("service", "product")),
		repo:   repo,
	}
}

// Add creates a catalog product. A product with a seller id requires the
// seller to exist; without one the product is shared.
func (s *productService) Add(ctx context.Context, p entities.Product) (entities.Product, error) {
	if p.SellerID != 0 {
		exists, err := s.repo.SellerExists(ctx, p.SellerID)
		if err != nil {
			return entities.Product{}, err
		}
		if !exists {
			return entities.Product{}, entities.ErrSellerNotFound
		}
	}
	return s.repo.CreateProduct(ctx, p)
}

func (s *productService) Get(ctx context.Context, productID int64) (entities.Product, error) {
	return s.repo.GetProduct(ctx, productID)
}

// GetForSeller resolves a product within one seller's catalog. A missing
// seller and a missing product are distinct failures.
func (s *productService) GetForSeller(ctx context.Context, productID, sellerID int64) (entities.Product, error) {
	exists, err := s.repo.SellerExists(ctx, sellerID)
	if err != nil {
		return entities.Product{}, err
	}
	if !exists {
		return entities.Product{}, entities.ErrSellerNotFound
	}
	return s.repo.GetSellerProduct(ctx, productID, sellerID)
}

func (s *productService) ListForSeller(ctx context.Context, sellerID int64) ([]entities.Product, error) {
	exists, err := s.repo.SellerExists(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, entities.ErrSellerNotFound
	}
	return s.repo.ListSellerProducts(ctx, sellerID)
}

func (s *productService) ListAll(ctx context.Context) ([]entities.Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *productService) Delete(ctx context.Context, productID int64) error {
	ok, err := s.repo.DeleteProduct(ctx, productID)
	if err != nil {
		return err
	}
	if !ok {
		return entities.ErrProductNotFound
	}
	return nil
}

// DeleteForSeller removes a product only from its owner's catalog.
func (s *productService) DeleteForSeller(ctx context.Context, productID, sellerID int64) error {
	ok, err := s.repo.DeleteSellerProduct(ctx, productID, sellerID)
	if err != nil {
		return err
	}
	if !ok {
		return entities.ErrProductNotFound
	}
	return nil
}
