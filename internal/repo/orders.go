package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/notuna/order-service/internal/entities"

	sq "github.com/Masterminds/squirrel"
)

var orderColumns = []string{
	"order_id", "order_date", "price", "payment_details", "quantity",
	"delivery_address", "contract_data", "response", "details", "o_status",
	"buyer", "seller", "product", "invoice_id", "despatch_id",
}

func (r *postgresRepo) GetOrder(ctx context.Context, orderID int64) (entities.Order, error) {
	query, args := r.qb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"order_id": orderID}).
		MustSql()

	var order Order
	err := r.getContext(ctx, &order, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to get order: %w", err)
	}
	return OrderToEntity(order), nil
}

// GetSnapshot loads the order joined with its buyer, seller and product, the
// input of every document transform.
func (r *postgresRepo) GetSnapshot(ctx context.Context, orderID int64) (entities.OrderSnapshot, error) {
	order, err := r.GetOrder(ctx, orderID)
	if err != nil {
		return entities.OrderSnapshot{}, err
	}

	snap := entities.OrderSnapshot{Order: order}

	if order.BuyerID != 0 {
		if snap.Buyer, err = r.GetBuyer(ctx, order.BuyerID); err != nil && !errors.Is(err, entities.ErrBuyerNotFound) {
			return entities.OrderSnapshot{}, err
		}
	}
	if order.SellerID != 0 {
		if snap.Seller, err = r.GetSeller(ctx, order.SellerID); err != nil && !errors.Is(err, entities.ErrSellerNotFound) {
			return entities.OrderSnapshot{}, err
		}
	}
	if order.ProductID != 0 {
		if snap.Product, err = r.GetProduct(ctx, order.ProductID); err != nil && !errors.Is(err, entities.ErrProductNotFound) {
			return entities.OrderSnapshot{}, err
		}
	}
	return snap, nil
}

func (r *postgresRepo) OrderExists(ctx context.Context, orderID int64) (bool, error) {
	query, args := r.qb.Select("1").
		From("orders").
		Where(sq.Eq{"order_id": orderID}).
		MustSql()

	var one int
	err := r.getContext(ctx, &one, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check order: %w", err)
	}
	return true, nil
}

func (r *postgresRepo) CreateOrder(ctx context.Context, o entities.Order) (int64, error) {
	query, args := r.qb.Insert("orders").
		Columns("order_date", "price", "payment_details", "quantity",
			"delivery_address", "contract_data", "o_status",
			"buyer", "seller", "product").
		Values(o.OrderDate, o.Price, o.PaymentDetails, o.Quantity,
			o.DeliveryAddress, o.ContractData, string(o.Status),
			o.BuyerID, o.SellerID, o.ProductID).
		Suffix("RETURNING order_id").
		MustSql()

	var id int64
	if err := r.getContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("failed to create order: %w", err)
	}
	return id, nil
}

// TransitionStatus performs a conditional status update. It returns false
// when the order is not currently in the expected status, which callers
// resolve to either NotFound or Conflict. The single conditional UPDATE
// closes the check-then-update gap.
func (r *postgresRepo) TransitionStatus(ctx context.Context, orderID int64, from, to entities.Status) (bool, error) {
	query, args := r.qb.Update("orders").
		Set("o_status", string(to)).
		Where(sq.Eq{"order_id": orderID, "o_status": string(from)}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to transition order status: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// SetStatus overwrites the status unconditionally (buyer cancellation).
func (r *postgresRepo) SetStatus(ctx context.Context, orderID int64, to entities.Status) (bool, error) {
	query, args := r.qb.Update("orders").
		Set("o_status", string(to)).
		Where(sq.Eq{"order_id": orderID}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to set order status: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// AppendResponse replaces the cumulative response log and moves the order to
// PENDING_BUYER_REVIEW, conditional on it still awaiting seller review.
func (r *postgresRepo) AppendResponse(ctx context.Context, orderID int64, response string) (bool, error) {
	query, args := r.qb.Update("orders").
		Set("response", response).
		Set("o_status", string(entities.StatusPendingBuyerReview)).
		Where(sq.Eq{
			"order_id": orderID,
			"o_status": string(entities.StatusPendingSellerReview),
		}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to append order response: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// UpdateOrder overwrites the mutable order fields and forces the status back
// to PENDING_SELLER_REVIEW (buyer change).
func (r *postgresRepo) UpdateOrder(ctx context.Context, o entities.Order) (bool, error) {
	query, args := r.qb.Update("orders").
		Set("buyer", o.BuyerID).
		Set("seller", o.SellerID).
		Set("product", o.ProductID).
		Set("payment_details", o.PaymentDetails).
		Set("delivery_address", o.DeliveryAddress).
		Set("contract_data", o.ContractData).
		Set("quantity", o.Quantity).
		Set("price", o.Price).
		Set("o_status", string(entities.StatusPendingSellerReview)).
		Where(sq.Eq{"order_id": o.ID}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to update order: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// DeleteCancelled removes the row only while it is still ORDER_CANCELLED.
func (r *postgresRepo) DeleteCancelled(ctx context.Context, orderID int64) (bool, error) {
	query, args := r.qb.Delete("orders").
		Where(sq.Eq{
			"order_id": orderID,
			"o_status": string(entities.StatusCancelled),
		}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to delete order: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// SaveInvoiceID writes the invoice id at most once: the WHERE clause requires
// a registered order with no invoice id yet.
func (r *postgresRepo) SaveInvoiceID(ctx context.Context, orderID int64, invoiceID string) (bool, error) {
	return r.saveDocumentID(ctx, orderID, "invoice_id", invoiceID)
}

// SaveDespatchID writes the despatch id at most once, same contract as
// SaveInvoiceID.
func (r *postgresRepo) SaveDespatchID(ctx context.Context, orderID int64, despatchID string) (bool, error) {
	return r.saveDocumentID(ctx, orderID, "despatch_id", despatchID)
}

func (r *postgresRepo) saveDocumentID(ctx context.Context, orderID int64, column, id string) (bool, error) {
	query, args := r.qb.Update("orders").
		Set(column, id).
		Where(sq.Eq{
			"order_id": orderID,
			column:     nil,
			"o_status": string(entities.StatusRegistered),
		}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to save %s: %w", column, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *postgresRepo) ListOrdersByBuyer(ctx context.Context, buyerID int64) ([]entities.OrderSummary, error) {
	query, args := r.qb.Select(
		"o.order_id", "o.order_date", "o.price", "o.quantity", "o.o_status",
		"b.b_name AS buyer_name", "s.s_name AS seller_name", "p.p2_name AS product_name").
		From("orders o").
		Join("buyers b ON o.buyer = b.b_id").
		Join("sellers s ON o.seller = s.s_id").
		Join("productsv2 p ON o.product = p.p2_id").
		Where(sq.Eq{"b.b_id": buyerID}).
		OrderBy("o.order_date DESC").
		MustSql()

	return r.selectSummaries(ctx, query, args)
}

func (r *postgresRepo) ListOrdersBySeller(ctx context.Context, sellerID int64) ([]entities.OrderSummary, error) {
	query, args := r.qb.Select(
		"o.order_id", "o.order_date", "o.price", "o.quantity", "o.o_status",
		"b.b_name AS buyer_name", "s.s_name AS seller_name", "p.p2_name AS product_name").
		From("orders o").
		Join("buyers b ON o.buyer = b.b_id").
		Join("sellers s ON o.seller = s.s_id").
		Join("productsv2 p ON o.product = p.p2_id").
		Where(sq.Eq{"s.s_id": sellerID}).
		OrderBy("o.order_date DESC").
		MustSql()

	return r.selectSummaries(ctx, query, args)
}

// ListActiveOrdersByBuyerEmail returns orders still moving through the
// lifecycle (registered orders are settled and excluded).
func (r *postgresRepo) ListActiveOrdersByBuyerEmail(ctx context.Context, email string) ([]entities.OrderSummary, error) {
	query, args := r.qb.Select(
		"o.order_id", "o.order_date", "o.price", "o.quantity", "o.o_status",
		"b.b_name AS buyer_name", "s.s_name AS seller_name", "p.p2_name AS product_name").
		From("orders o").
		Join("buyers b ON o.buyer = b.b_id").
		Join("sellers s ON o.seller = s.s_id").
		Join("productsv2 p ON o.product = p.p2_id").
		Where(sq.Eq{"b.b_email": email}).
		Where(sq.NotEq{"o.o_status": string(entities.StatusRegistered)}).
		OrderBy("o.order_date DESC").
		MustSql()

	return r.selectSummaries(ctx, query, args)
}

func (r *postgresRepo) ListActiveOrdersBySellerEmail(ctx context.Context, email string) ([]entities.OrderSummary, error) {
	query, args := r.qb.Select(
		"o.order_id", "o.order_date", "o.price", "o.quantity", "o.o_status",
		"b.b_name AS buyer_name", "s.s_name AS seller_name", "p.p2_name AS product_name").
		From("orders o").
		Join("buyers b ON o.buyer = b.b_id").
		Join("sellers s ON o.seller = s.s_id").
		Join("productsv2 p ON o.product = p.p2_id").
		Where(sq.Eq{"s.s_email": email}).
		Where(sq.NotEq{"o.o_status": string(entities.StatusRegistered)}).
		OrderBy("o.order_date DESC").
		MustSql()

	return r.selectSummaries(ctx, query, args)
}

// ListActionOrders returns orders awaiting the given party's action.
func (r *postgresRepo) ListActionOrders(ctx context.Context, partyID int64, role entities.PartyRole) ([]entities.OrderSummary, error) {
	partyCol, counterName, status := "o.buyer", "s.s_name AS seller_name", entities.StatusPendingBuyerReview
	if role == entities.RoleSeller {
		partyCol, counterName, status = "o.seller", "b.b_name AS buyer_name", entities.StatusPendingSellerReview
	}

	query, args := r.qb.Select(
		"o.order_id", "o.order_date", "o.price", "o.quantity", "o.o_status",
		counterName, "p.p2_name AS product_name").
		From("orders o").
		Join("buyers b ON o.buyer = b.b_id").
		Join("sellers s ON o.seller = s.s_id").
		Join("productsv2 p ON o.product = p.p2_id").
		Where(sq.Eq{partyCol: partyID, "o.o_status": string(status)}).
		OrderBy("o.order_id").
		MustSql()

	return r.selectSummaries(ctx, query, args)
}

func (r *postgresRepo) ListRegisteredOrderIDs(ctx context.Context, sellerID int64) ([]int64, error) {
	query, args := r.qb.Select("order_id").
		From("orders").
		Where(sq.Eq{"seller": sellerID, "o_status": string(entities.StatusRegistered)}).
		OrderBy("order_id").
		MustSql()

	var ids []int64
	if err := r.selectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select registered orders: %w", err)
	}
	return ids, nil
}

// ListStatsRows loads the status/date/price projection for one party, the
// stats aggregator's only input.
func (r *postgresRepo) ListStatsRows(ctx context.Context, partyID int64, role entities.PartyRole) ([]entities.StatsRow, error) {
	col := "buyer"
	if role == entities.RoleSeller {
		col = "seller"
	}

	query, args := r.qb.Select("o_status", "order_date", "price").
		From("orders").
		Where(sq.Eq{col: partyID}).
		MustSql()

	var rows []StatsRow
	if err := r.selectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select stats rows: %w", err)
	}

	result := make([]entities.StatsRow, 0, len(rows))
	for _, row := range rows {
		result = append(result, StatsRowToEntity(row))
	}
	return result, nil
}

// ListDocumentRefs lists orders with a saved invoice or despatch id for one
// party. The counterparty name is reported: sellers see the buyer, buyers see
// the seller.
func (r *postgresRepo) ListDocumentRefs(ctx context.Context, partyID int64, role entities.PartyRole, doc entities.DocumentKind) ([]entities.DocumentRef, error) {
	idColumn := "invoice_id"
	if doc == entities.DocumentDespatch {
		idColumn = "despatch_id"
	}

	partyCol, counter, counterJoin := "o.seller", "b.b_name AS party_name", "buyers b ON o.buyer = b.b_id"
	if role == entities.RoleBuyer {
		partyCol, counter, counterJoin = "o.buyer", "s.s_name AS party_name", "sellers s ON o.seller = s.s_id"
	}

	query, args := r.qb.Select(
		"o.order_id", "o.order_date", counter, "o.o_status",
		"p.p2_name AS product_name", "o.price", "o."+idColumn+" AS document_id").
		From("orders o").
		Join(counterJoin).
		Join("productsv2 p ON o.product = p.p2_id").
		Where(sq.Eq{partyCol: partyID}).
		Where(sq.NotEq{"o." + idColumn: nil}).
		OrderBy("o.order_id").
		MustSql()

	var refs []DocumentRef
	if err := r.selectContext(ctx, &refs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select document refs: %w", err)
	}

	result := make([]entities.DocumentRef, 0, len(refs))
	for _, ref := range refs {
		result = append(result, DocumentRefToEntity(ref))
	}
	return result, nil
}

func (r *postgresRepo) selectSummaries(ctx context.Context, query string, args []any) ([]entities.OrderSummary, error) {
	var rows []OrderSummary
	if err := r.selectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select orders: %w", err)
	}

	result := make([]entities.OrderSummary, 0, len(rows))
	for _, row := range rows {
		result = append(result, OrderSummaryToEntity(row))
	}
	return result, nil
}
