package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/notuna/order-service/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

var userColumns = []string{"id", "namefirst", "namelast", "email", "password", "b_id", "s_id"}

func (r *postgresRepo) CreateUser(ctx context.Context, u entities.User) (int64, error) {
	query, args := r.qb.Insert("users").
		Columns("namefirst", "namelast", "email", "password", "b_id", "s_id").
		Values(u.NameFirst, u.NameLast, u.Email, u.PasswordHash, nullInt64(u.BuyerID), nullInt64(u.SellerID)).
		Suffix("RETURNING id").
		MustSql()

	var id int64
	err := r.getContext(ctx, &id, query, args...)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return 0, entities.ErrEmailTaken
	}
	if err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

func (r *postgresRepo) GetUserByEmail(ctx context.Context, email string) (entities.User, error) {
	return r.getUser(ctx, sq.Eq{"email": email})
}

func (r *postgresRepo) GetUserByID(ctx context.Context, userID int64) (entities.User, error) {
	return r.getUser(ctx, sq.Eq{"id": userID})
}

func (r *postgresRepo) GetUserByBuyerID(ctx context.Context, buyerID int64) (entities.User, error) {
	return r.getUser(ctx, sq.Eq{"b_id": buyerID})
}

func (r *postgresRepo) GetUserBySellerID(ctx context.Context, sellerID int64) (entities.User, error) {
	return r.getUser(ctx, sq.Eq{"s_id": sellerID})
}

// LinkBuyer attaches a buyer identity to a user account. Registering a buyer
// profile twice just repoints the link.
func (r *postgresRepo) LinkBuyer(ctx context.Context, userID, buyerID int64) error {
	query, args := r.qb.Update("users").
		Set("b_id", buyerID).
		Where(sq.Eq{"id": userID}).
		MustSql()

	return r.linkParty(ctx, query, args)
}

func (r *postgresRepo) LinkSeller(ctx context.Context, userID, sellerID int64) error {
	query, args := r.qb.Update("users").
		Set("s_id", sellerID).
		Where(sq.Eq{"id": userID}).
		MustSql()

	return r.linkParty(ctx, query, args)
}

func (r *postgresRepo) linkParty(ctx context.Context, query string, args []any) error {
	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to link party: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return entities.ErrUserNotFound
	}
	return nil
}

func (r *postgresRepo) getUser(ctx context.Context, where sq.Eq) (entities.User, error) {
	query, args := r.qb.Select(userColumns...).
		From("users").
		Where(where).
		MustSql()

	var user User
	err := r.getContext(ctx, &user, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.User{}, entities.ErrUserNotFound
	}
	if err != nil {
		return entities.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return UserToEntity(user), nil
}
