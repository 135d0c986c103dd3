package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/notuna/order-service/internal/entities"
	"github.com/notuna/order-service/internal/ubl"
	"github.com/notuna/order-service/pkg/trm"
)

type OrderRepo interface {
	GetOrder(ctx context.Context, orderID int64) (entities.Order, error)
	GetSnapshot(ctx context.Context, orderID int64) (entities.OrderSnapshot, error)
	OrderExists(ctx context.Context, orderID int64) (bool, error)
	CreateOrder(ctx context.Context, o entities.Order) (int64, error)
	TransitionStatus(ctx context.Context, orderID int64, from, to entities.Status) (bool, error)
	SetStatus(ctx context.Context, orderID int64, to entities.Status) (bool, error)
	AppendResponse(ctx context.Context, orderID int64, response string) (bool, error)
	UpdateOrder(ctx context.Context, o entities.Order) (bool, error)
	DeleteCancelled(ctx context.Context, orderID int64) (bool, error)

	UpsertBuyer(ctx context.Context, d entities.PartyDetails) (int64, error)
	UpsertSeller(ctx context.Context, d entities.PartyDetails) (int64, error)
	FindBuyerIDByName(ctx context.Context, name string) (int64, error)
	FindSellerIDByName(ctx context.Context, name string) (int64, error)

	ResolveSharedProduct(ctx context.Context, p entities.Product) (int64, error)
	GetSellerProduct(ctx context.Context, productID, sellerID int64) (entities.Product, error)
	ProductBelongsToSeller(ctx context.Context, productID, sellerID int64) (bool, error)

	ListOrdersByBuyer(ctx context.Context, buyerID int64) ([]entities.OrderSummary, error)
	ListOrdersBySeller(ctx context.Context, sellerID int64) ([]entities.OrderSummary, error)
	ListActiveOrdersByBuyerEmail(ctx context.Context, email string) ([]entities.OrderSummary, error)
	ListActiveOrdersBySellerEmail(ctx context.Context, email string) ([]entities.OrderSummary, error)
	ListActionOrders(ctx context.Context, partyID int64, role entities.PartyRole) ([]entities.OrderSummary, error)
	ListRegisteredOrderIDs(ctx context.Context, sellerID int64) ([]int64, error)
}

// Publisher emits status-change events after successful transitions.
type Publisher interface {
	PublishStatusChange(ctx context.Context, orderID int64, from, to entities.Status)
}

// CreateOrderInput is the v1 payload: inline party and product tuples that
// are resolved or created alongside the order.
type CreateOrderInput struct {
	Price           int
	PaymentDetails  string
	Quantity        int
	DeliveryAddress string
	ContractData    string

	Buyer   entities.PartyDetails
	Seller  entities.PartyDetails
	Product entities.Product
}

// CreateOrderV2Input references already-registered parties and a seller-owned
// product by id.
type CreateOrderV2Input struct {
	BuyerID   int64
	SellerID  int64
	ProductID int64

	Quantity        int
	PaymentDetails  string
	DeliveryAddress string
	ContractData    string
}

// ChangeOrderInput carries the buyer's replacement terms. Parties are
// re-resolved by company name, the product by id.
type ChangeOrderInput struct {
	BuyerCompanyName  string
	SellerCompanyName string
	ProductID         int64
	PaymentDetails    string
	DeliveryAddress   string
	ContractData      string
	Quantity          int
	Price             int
}

type orderService struct {
	logger    *slog.Logger
	txManager trm.Manager
	repo      OrderRepo
	events    Publisher
}

func NewOrderService(logger *slog.Logger, txManager trm.Manager, repo OrderRepo, events Publisher) *orderService {
	return &orderService{
		logger:    logger.With(slog.String("service", "order")),
		txManager: txManager,
		repo:      repo,
		events:    events,
	}
}

// Create resolves the inline buyer, seller and product tuples and inserts the
// order awaiting seller review. The whole resolution runs in one transaction
// so a failed insert never leaves stray parties behind.
func (s *orderService) Create(ctx context.Context, in CreateOrderInput) (int64, error) {
	var orderID int64

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		buyerID, err := s.repo.UpsertBuyer(ctx, in.Buyer)
		if err != nil {
			return err
		}
		sellerID, err := s.repo.UpsertSeller(ctx, in.Seller)
		if err != nil {
			return err
		}
		productID, err := s.repo.ResolveSharedProduct(ctx, in.Product)
		if err != nil {
			return err
		}

		orderID, err = s.repo.CreateOrder(ctx, entities.Order{
			OrderDate:       time.Now().UTC(),
			Price:           in.Price,
			PaymentDetails:  in.PaymentDetails,
			Quantity:        in.Quantity,
			DeliveryAddress: in.DeliveryAddress,
			ContractData:    in.ContractData,
			Status:          entities.StatusPendingSellerReview,
			BuyerID:         buyerID,
			SellerID:        sellerID,
			ProductID:       productID,
		})
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create order: %w", err)
	}

	s.events.PublishStatusChange(ctx, orderID, "", entities.StatusPendingSellerReview)
	s.logger.InfoContext(ctx, "order created", slog.Int64("order_id", orderID))
	return orderID, nil
}

// CreateV2 creates an order from party and product ids. The product must
// belong to the declared seller; the price is taken from the catalog.
func (s *orderService) CreateV2(ctx context.Context, in CreateOrderV2Input) (int64, error) {
	owns, err := s.repo.ProductBelongsToSeller(ctx, in.ProductID, in.SellerID)
	if err != nil {
		return 0, err
	}
	if !owns {
		return 0, entities.ErrProductNotOwned
	}

	product, err := s.repo.GetSellerProduct(ctx, in.ProductID, in.SellerID)
	if err != nil {
		return 0, err
	}

	orderID, err := s.repo.CreateOrder(ctx, entities.Order{
		OrderDate:       time.Now().UTC(),
		Price:           product.Price,
		PaymentDetails:  in.PaymentDetails,
		Quantity:        in.Quantity,
		DeliveryAddress: in.DeliveryAddress,
		ContractData:    in.ContractData,
		Status:          entities.StatusPendingSellerReview,
		BuyerID:         in.BuyerID,
		SellerID:        in.SellerID,
		ProductID:       in.ProductID,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create order: %w", err)
	}

	s.events.PublishStatusChange(ctx, orderID, "", entities.StatusPendingSellerReview)
	s.logger.InfoContext(ctx, "order created", slog.Int64("order_id", orderID))
	return orderID, nil
}

func (s *orderService) SellerAccept(ctx context.Context, orderID int64) error {
	return s.transition(ctx, orderID, entities.StatusPendingSellerReview, entities.StatusSellerAccepted)
}

func (s *orderService) SellerReject(ctx context.Context, orderID int64) error {
	return s.transition(ctx, orderID, entities.StatusPendingSellerReview, entities.StatusSellerRejected)
}

// SellerRespond appends a timestamped entry to the order's response log and
// hands the order back to the buyer.
func (s *orderService) SellerRespond(ctx context.Context, orderID int64, text string) (string, error) {
	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return "", err
	}

	updated := fmt.Sprintf("%s\n%s\n%s", order.Response, time.Now().UTC().Format(time.RFC3339), text)

	ok, err := s.repo.AppendResponse(ctx, orderID, updated)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", s.resolveFailedTransition(ctx, orderID)
	}

	s.events.PublishStatusChange(ctx, orderID, entities.StatusPendingSellerReview, entities.StatusPendingBuyerReview)
	return updated, nil
}

func (s *orderService) BuyerAccept(ctx context.Context, orderID int64) error {
	return s.transition(ctx, orderID, entities.StatusPendingBuyerReview, entities.StatusAccepted)
}

// BuyerChange replaces the order terms and forces the order back to seller
// review. The order must exist before field validation so a missing order
// reports not-found rather than a field error.
func (s *orderService) BuyerChange(ctx context.Context, orderID int64, in ChangeOrderInput) error {
	exists, err := s.repo.OrderExists(ctx, orderID)
	if err != nil {
		return err
	}
	if !exists {
		return entities.ErrOrderNotFound
	}

	if in.BuyerCompanyName == "" || in.SellerCompanyName == "" || in.ProductID == 0 ||
		in.PaymentDetails == "" || in.DeliveryAddress == "" || in.ContractData == "" ||
		in.Quantity == 0 || in.Price == 0 {
		return entities.ErrMissingFields
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		buyerID, err := s.repo.FindBuyerIDByName(ctx, in.BuyerCompanyName)
		if err != nil {
			return err
		}
		sellerID, err := s.repo.FindSellerIDByName(ctx, in.SellerCompanyName)
		if err != nil {
			return err
		}

		ok, err := s.repo.UpdateOrder(ctx, entities.Order{
			ID:              orderID,
			Price:           in.Price,
			PaymentDetails:  in.PaymentDetails,
			Quantity:        in.Quantity,
			DeliveryAddress: in.DeliveryAddress,
			ContractData:    in.ContractData,
			BuyerID:         buyerID,
			SellerID:        sellerID,
			ProductID:       in.ProductID,
		})
		if err != nil {
			return err
		}
		if !ok {
			return entities.ErrOrderNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.events.PublishStatusChange(ctx, orderID, "", entities.StatusPendingSellerReview)
	return nil
}

// Cancel overwrites the status unconditionally; a cancelled or even
// registered order can still be cancelled by the buyer.
func (s *orderService) Cancel(ctx context.Context, orderID int64) error {
	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}

	ok, err := s.repo.SetStatus(ctx, orderID, entities.StatusCancelled)
	if err != nil {
		return err
	}
	if !ok {
		return entities.ErrOrderNotFound
	}

	s.events.PublishStatusChange(ctx, orderID, order.Status, entities.StatusCancelled)
	return nil
}

// CancelReceive removes a cancelled order for good. The delete is conditional
// on the status so only cancelled orders can be wiped.
func (s *orderService) CancelReceive(ctx context.Context, orderID int64) error {
	ok, err := s.repo.DeleteCancelled(ctx, orderID)
	if err != nil {
		return err
	}
	if !ok {
		return s.resolveFailedTransition(ctx, orderID)
	}
	return nil
}

// Register turns an accepted order into a registered one and returns the UBL
// registration document. The document is built from the snapshot taken before
// the status write, so it reports SELLER_ORDER_ACCEPTED.
func (s *orderService) Register(ctx context.Context, orderID int64) ([]byte, error) {
	snap, err := s.repo.GetSnapshot(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if snap.Status != entities.StatusSellerAccepted {
		return nil, entities.ErrStatusConflict
	}

	document, err := ubl.BuildOrderDocument(snap)
	if err != nil {
		return nil, err
	}

	ok, err := s.repo.TransitionStatus(ctx, orderID, entities.StatusSellerAccepted, entities.StatusRegistered)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.resolveFailedTransition(ctx, orderID)
	}

	s.events.PublishStatusChange(ctx, orderID, entities.StatusSellerAccepted, entities.StatusRegistered)
	s.logger.InfoContext(ctx, "order registered", slog.Int64("order_id", orderID))
	return document, nil
}

// Details returns the joined snapshot of a registered order.
func (s *orderService) Details(ctx context.Context, orderID int64) (entities.OrderSnapshot, error) {
	snap, err := s.repo.GetSnapshot(ctx, orderID)
	if err != nil {
		return entities.OrderSnapshot{}, err
	}
	if snap.Status != entities.StatusRegistered {
		return entities.OrderSnapshot{}, entities.ErrStatusConflict
	}
	return snap, nil
}

func (s *orderService) OrdersByBuyer(ctx context.Context, buyerID int64) ([]entities.OrderSummary, error) {
	return s.repo.ListOrdersByBuyer(ctx, buyerID)
}

func (s *orderService) OrdersBySeller(ctx context.Context, sellerID int64) ([]entities.OrderSummary, error) {
	return s.repo.ListOrdersBySeller(ctx, sellerID)
}

func (s *orderService) ActiveOrdersByBuyerEmail(ctx context.Context, email string) ([]entities.OrderSummary, error) {
	return s.repo.ListActiveOrdersByBuyerEmail(ctx, email)
}

func (s *orderService) ActiveOrdersBySellerEmail(ctx context.Context, email string) ([]entities.OrderSummary, error) {
	return s.repo.ListActiveOrdersBySellerEmail(ctx, email)
}

func (s *orderService) ActionOrders(ctx context.Context, partyID int64, role entities.PartyRole) ([]entities.OrderSummary, error) {
	return s.repo.ListActionOrders(ctx, partyID, role)
}

func (s *orderService) RegisteredOrderIDs(ctx context.Context, sellerID int64) ([]int64, error) {
	return s.repo.ListRegisteredOrderIDs(ctx, sellerID)
}

// transition performs a conditional status change and publishes the event.
func (s *orderService) transition(ctx context.Context, orderID int64, from, to entities.Status) error {
	ok, err := s.repo.TransitionStatus(ctx, orderID, from, to)
	if err != nil {
		return err
	}
	if !ok {
		return s.resolveFailedTransition(ctx, orderID)
	}

	s.events.PublishStatusChange(ctx, orderID, from, to)
	s.logger.DebugContext(ctx, "order transitioned",
		slog.Int64("order_id", orderID), slog.String("from", string(from)), slog.String("to", string(to)))
	return nil
}

// resolveFailedTransition distinguishes a missing order from one in the wrong
// state after a conditional write matched no rows.
func (s *orderService) resolveFailedTransition(ctx context.Context, orderID int64) error {
	_, err := s.repo.GetOrder(ctx, orderID)
	if errors.Is(err, entities.ErrOrderNotFound) {
		return entities.ErrOrderNotFound
	}
	if err != nil {
		return err
	}
	return entities.ErrStatusConflict
}
