package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/notuna/order-service/internal/entities"

	sq "github.com/Masterminds/squirrel"
)

var productColumns = []string{"p2_id", "p2_name", "p2_price", "p2_tax", "p2_desc", "seller_id"}

func (r *postgresRepo) CreateProduct(ctx context.Context, p entities.Product) (entities.Product, error) {
	query, args := r.qb.Insert("productsv2").
		Columns("p2_name", "p2_price", "p2_tax", "p2_desc", "seller_id").
		Values(p.Name, p.Price, p.TaxRate, p.Description, nullInt64(p.SellerID)).
		Suffix("RETURNING " + strings.Join(productColumns, ", ")).
		MustSql()

	var row Product
	if err := r.getContext(ctx, &row, query, args...); err != nil {
		return entities.Product{}, fmt.Errorf("failed to create product: %w", err)
	}
	return ProductToEntity(row), nil
}

func (r *postgresRepo) GetProduct(ctx context.Context, productID int64) (entities.Product, error) {
	query, args := r.qb.Select(productColumns...).
		From("productsv2").
		Where(sq.Eq{"p2_id": productID}).
		MustSql()

	var row Product
	err := r.getContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Product{}, entities.ErrProductNotFound
	}
	if err != nil {
		return entities.Product{}, fmt.Errorf("failed to get product: %w", err)
	}
	return ProductToEntity(row), nil
}

func (r *postgresRepo) GetSellerProduct(ctx context.Context, productID, sellerID int64) (entities.Product, error) {
	query, args := r.qb.Select(productColumns...).
		From("productsv2").
		Where(sq.Eq{"p2_id": productID, "seller_id": sellerID}).
		MustSql()

	var row Product
	err := r.getContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Product{}, entities.ErrProductNotFound
	}
	if err != nil {
		return entities.Product{}, fmt.Errorf("failed to get seller product: %w", err)
	}
	return ProductToEntity(row), nil
}

func (r *postgresRepo) ListSellerProducts(ctx context.Context, sellerID int64) ([]entities.Product, error) {
	query, args := r.qb.Select(productColumns...).
		From("productsv2").
		Where(sq.Eq{"seller_id": sellerID}).
		MustSql()

	return r.selectProducts(ctx, query, args)
}

func (r *postgresRepo) ListProducts(ctx context.Context) ([]entities.Product, error) {
	query, args := r.qb.Select(productColumns...).
		From("productsv2").
		MustSql()

	return r.selectProducts(ctx, query, args)
}

// DeleteSellerProduct removes a product only when it belongs to the seller.
func (r *postgresRepo) DeleteSellerProduct(ctx context.Context, productID, sellerID int64) (bool, error) {
	query, args := r.qb.Delete("productsv2").
		Where(sq.Eq{"p2_id": productID, "seller_id": sellerID}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to delete product: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *postgresRepo) DeleteProduct(ctx context.Context, productID int64) (bool, error) {
	query, args := r.qb.Delete("productsv2").
		Where(sq.Eq{"p2_id": productID}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to delete product: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// ResolveSharedProduct resolves an inline product by its exact tuple of id,
// tax rate and description, creating the row when no identical tuple exists.
// Shared products carry no owning seller.
func (r *postgresRepo) ResolveSharedProduct(ctx context.Context, p entities.Product) (int64, error) {
	query, args := r.qb.Select("p2_id").
		From("productsv2").
		Where(sq.Eq{
			"p2_id":   p.ID,
			"p2_tax":  p.TaxRate,
			"p2_desc": p.Description,
		}).
		Limit(1).
		MustSql()

	var id int64
	err := r.getContext(ctx, &id, query, args...)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to resolve product: %w", err)
	}

	query, args = r.qb.Insert("productsv2").
		Columns("p2_id", "p2_tax", "p2_desc").
		Values(p.ID, p.TaxRate, p.Description).
		Suffix("ON CONFLICT (p2_id) DO NOTHING RETURNING p2_id").
		MustSql()

	err = r.getContext(ctx, &id, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		// Lost a race with an identical insert; the id is authoritative.
		return p.ID, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to create product: %w", err)
	}
	return id, nil
}

// ProductBelongsToSeller backs the v2 create-order ownership check.
func (r *postgresRepo) ProductBelongsToSeller(ctx context.Context, productID, sellerID int64) (bool, error) {
	query, args := r.qb.Select("1").
		From("productsv2").
		Where(sq.Eq{"p2_id": productID, "seller_id": sellerID}).
		Limit(1).
		MustSql()

	var one int
	err := r.getContext(ctx, &one, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check product ownership: %w", err)
	}
	return true, nil
}

func (r *postgresRepo) selectProducts(ctx context.Context, query string, args []any) ([]entities.Product, error) {
	var rows []Product
	if err := r.selectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select products: %w", err)
	}

	result := make([]entities.Product, 0, len(rows))
	for _, row := range rows {
		result = append(result, ProductToEntity(row))
	}
	return result, nil
}
