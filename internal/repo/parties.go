package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/notuna/order-service/internal/entities"

	sq "github.com/Masterminds/squirrel"
)

// UpsertBuyer resolves a buyer by its full attribute tuple, creating the row
// when no identical tuple exists. The ON CONFLICT DO NOTHING insert returns
// no row for an existing tuple, so a follow-up select recovers the id.
func (r *postgresRepo) UpsertBuyer(ctx context.Context, d entities.PartyDetails) (int64, error) {
	query, args := r.qb.Insert("buyers").
		Columns("b_name", "b_address", "b_phone_no", "b_email", "b_tax").
		Values(d.Name, d.Address, d.Phone, d.Email, d.TaxID).
		Suffix("ON CONFLICT (b_name, b_address, b_phone_no, b_email, b_tax) DO NOTHING RETURNING b_id").
		MustSql()

	var id int64
	err := r.getContext(ctx, &id, query, args...)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to upsert buyer: %w", err)
	}

	query, args = r.qb.Select("b_id").
		From("buyers").
		Where(sq.Eq{
			"b_name":     d.Name,
			"b_address":  d.Address,
			"b_phone_no": d.Phone,
			"b_email":    d.Email,
			"b_tax":      d.TaxID,
		}).
		MustSql()

	if err := r.getContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("failed to resolve buyer: %w", err)
	}
	return id, nil
}

func (r *postgresRepo) UpsertSeller(ctx context.Context, d entities.PartyDetails) (int64, error) {
	query, args := r.qb.Insert("sellers").
		Columns("s_name", "s_address", "s_phone_no", "s_email", "s_tax").
		Values(d.Name, d.Address, d.Phone, d.Email, d.TaxID).
		Suffix("ON CONFLICT (s_name, s_address, s_phone_no, s_email, s_tax) DO NOTHING RETURNING s_id").
		MustSql()

	var id int64
	err := r.getContext(ctx, &id, query, args...)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to upsert seller: %w", err)
	}

	query, args = r.qb.Select("s_id").
		From("sellers").
		Where(sq.Eq{
			"s_name":     d.Name,
			"s_address":  d.Address,
			"s_phone_no": d.Phone,
			"s_email":    d.Email,
			"s_tax":      d.TaxID,
		}).
		MustSql()

	if err := r.getContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("failed to resolve seller: %w", err)
	}
	return id, nil
}

func (r *postgresRepo) GetBuyer(ctx context.Context, buyerID int64) (entities.Buyer, error) {
	query, args := r.qb.Select("b_id", "b_name", "b_address", "b_phone_no", "b_email", "b_tax").
		From("buyers").
		Where(sq.Eq{"b_id": buyerID}).
		MustSql()

	var buyer Buyer
	err := r.getContext(ctx, &buyer, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Buyer{}, entities.ErrBuyerNotFound
	}
	if err != nil {
		return entities.Buyer{}, fmt.Errorf("failed to get buyer: %w", err)
	}
	return BuyerToEntity(buyer), nil
}

func (r *postgresRepo) GetSeller(ctx context.Context, sellerID int64) (entities.Seller, error) {
	query, args := r.qb.Select("s_id", "s_name", "s_address", "s_phone_no", "s_email", "s_tax").
		From("sellers").
		Where(sq.Eq{"s_id": sellerID}).
		MustSql()

	var seller Seller
	err := r.getContext(ctx, &seller, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Seller{}, entities.ErrSellerNotFound
	}
	if err != nil {
		return entities.Seller{}, fmt.Errorf("failed to get seller: %w", err)
	}
	return SellerToEntity(seller), nil
}

// FindBuyerIDByName supports buyer change, which re-resolves party references
// by company name.
func (r *postgresRepo) FindBuyerIDByName(ctx context.Context, name string) (int64, error) {
	query, args := r.qb.Select("b_id").
		From("buyers").
		Where(sq.Eq{"b_name": name}).
		Limit(1).
		MustSql()

	var id int64
	err := r.getContext(ctx, &id, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, entities.ErrBuyerNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to find buyer: %w", err)
	}
	return id, nil
}

func (r *postgresRepo) FindSellerIDByName(ctx context.Context, name string) (int64, error) {
	query, args := r.qb.Select("s_id").
		From("sellers").
		Where(sq.Eq{"s_name": name}).
		Limit(1).
		MustSql()

	var id int64
	err := r.getContext(ctx, &id, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, entities.ErrSellerNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to find seller: %w", err)
	}
	return id, nil
}

func (r *postgresRepo) SellerExists(ctx context.Context, sellerID int64) (bool, error) {
	query, args := r.qb.Select("1").
		From("sellers").
		Where(sq.Eq{"s_id": sellerID}).
		MustSql()

	var one int
	err := r.getContext(ctx, &one, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check seller: %w", err)
	}
	return true, nil
}
