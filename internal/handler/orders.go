package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/notuna/order-service/internal/entities"
	"github.com/notuna/order-service/internal/service"
	"github.com/notuna/order-service/pkg/utils"
)

type OrderService interface {
	Create(ctx context.Context, in service.CreateOrderInput) (int64, error)
	CreateV2(ctx context.Context, in service.CreateOrderV2Input) (int64, error)
	SellerAccept(ctx context.Context, orderID int64) error
	SellerReject(ctx context.Context, orderID int64) error
	SellerRespond(ctx context.Context, orderID int64, text string) (string, error)
	BuyerAccept(ctx context.Context, orderID int64) error
	BuyerChange(ctx context.Context, orderID int64, in service.ChangeOrderInput) error
	Cancel(ctx context.Context, orderID int64) error
	CancelReceive(ctx context.Context, orderID int64) error
	Register(ctx context.Context, orderID int64) ([]byte, error)
	Details(ctx context.Context, orderID int64) (entities.OrderSnapshot, error)

	OrdersByBuyer(ctx context.Context, buyerID int64) ([]entities.OrderSummary, error)
	OrdersBySeller(ctx context.Context, sellerID int64) ([]entities.OrderSummary, error)
	ActiveOrdersByBuyerEmail(ctx context.Context, email string) ([]entities.OrderSummary, error)
	ActiveOrdersBySellerEmail(ctx context.Context, email string) ([]entities.OrderSummary, error)
	ActionOrders(ctx context.Context, partyID int64, role entities.PartyRole) ([]entities.OrderSummary, error)
	RegisteredOrderIDs(ctx context.Context, sellerID int64) ([]int64, error)
}

// UserDirectory backs the existence checks of the listing endpoints.
type UserDirectory interface {
	UserByEmail(ctx context.Context, email string) (entities.User, error)
	UserByBuyerID(ctx context.Context, buyerID int64) (entities.User, error)
	UserBySellerID(ctx context.Context, sellerID int64) (entities.User, error)
}

type OrderHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	svc      OrderService
	users    UserDirectory
	guard    func(next http.Handler) http.Handler
}

func NewOrderHandler(logger *slog.Logger, svc OrderService, users UserDirectory, guard func(next http.Handler) http.Handler) *OrderHandler {
	return &OrderHandler{
		logger:   logger.With(slog.String("handler", "orders")),
		validate: validator.New(),
		svc:      svc,
		users:    users,
		guard:    guard,
	}
}

func (h *OrderHandler) Init(r chi.Router) {
	r.With(h.guard).Post("/shop/buyer/order", h.CreateOrder)
	r.With(h.guard).Post("/v2/shop/buyer/order", h.CreateOrderV2)
	r.With(h.guard).Put("/shop/buyer/{id}/order-cancel", h.CancelOrder)
	r.With(h.guard).Put("/shop/buyer/{id}/order-accept", h.BuyerAccept)
	r.With(h.guard).Put("/shop/buyer/{id}/order-change", h.BuyerChange)
	r.With(h.guard).Post("/shop/seller/{id}/order-create-response", h.SellerRespond)
	r.With(h.guard).Put("/shop/seller/{id}/order-add-detail", h.AddDetail)
	r.With(h.guard).Delete("/shop/seller/{id}/order-cancel-receive", h.CancelReceive)
	r.With(h.guard).Put("/shop/seller/{id}/order-register", h.RegisterOrder)
	r.Put("/shop/seller/{id}/order-accept", h.SellerAccept)
	r.Delete("/shop/seller/{id}/order-reject", h.SellerReject)

	r.Get("/shop/seller/orders", h.SellerOrders)
	r.Get("/shop/seller/{id}/active-orders", h.SellerActiveOrders)
	r.With(h.guard).Get("/shop/seller/{id}/active-orders-action", h.SellerActionOrders)
	r.With(h.guard).Get("/shop/seller/orders/{id}", h.SellerRegisteredOrders)
	r.Get("/shop/buyer/orders", h.BuyerOrders)
	r.Get("/shop/buyer/{id}/active-orders", h.BuyerActiveOrders)
	r.With(h.guard).Get("/shop/buyer/{id}/active-orders-action", h.BuyerActionOrders)
	r.With(h.guard).Get("/shop/{id}", h.OrderDetails)
}

// CreateOrder places a new order with inline party and product details.
// @Summary      Place an order
// @Tags         orders
// @Param        request  body      CreateOrderRequest  true  "Order payload"
// @Success      200  {object}  OrderCreatedResponse
// @Failure      400  {object}  utils.ValidationErrorResponse
// @Router       /shop/buyer/order [post]
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateOrderRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	orderID, err := h.svc.Create(ctx, CreateOrderRequestToInput(req))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create order", slog.Any("error", err))
		utils.WriteError(w, "Order creation failed", http.StatusBadRequest)
		return
	}

	utils.WriteJSON(w, OrderCreatedResponse{Message: "Order accepted successfully", OrderID: orderID}, http.StatusOK)
}

// CreateOrderV2 places an order referencing registered parties and a catalog
// product.
// @Summary      Place an order (v2)
// @Tags         orders
// @Param        request  body      CreateOrderV2Request  true  "Order payload"
// @Success      200  {object}  OrderCreatedResponse
// @Failure      400  {object}  utils.ErrorResponse
// @Router       /v2/shop/buyer/order [post]
func (h *OrderHandler) CreateOrderV2(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateOrderV2Request
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	orderID, err := h.svc.CreateV2(ctx, service.CreateOrderV2Input{
		BuyerID:         req.BuyerID,
		SellerID:        req.SellerID,
		ProductID:       req.ProductID,
		Quantity:        req.Quantity,
		PaymentDetails:  req.PaymentDetails,
		DeliveryAddress: req.DeliveryAddress,
		ContractData:    req.ContractData,
	})
	if errors.Is(err, entities.ErrProductNotOwned) || errors.Is(err, entities.ErrProductNotFound) {
		utils.WriteError(w, "Product does not belong to the given seller", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create order", slog.Any("error", err))
		utils.WriteError(w, "Order creation failed", http.StatusBadRequest)
		return
	}

	utils.WriteJSON(w, OrderCreatedResponse{Message: "Order accepted successfully", OrderID: orderID}, http.StatusOK)
}

// CancelOrder lets the buyer cancel an order in any state.
// @Summary      Cancel an order
// @Tags         orders
// @Param        id   path      int  true  "Order ID"
// @Success      200  {object}  utils.ErrorResponse
// @Failure      400  {object}  utils.ErrorResponse
// @Router       /shop/buyer/{id}/order-cancel [put]
func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, err := pathID(r)
	if err != nil {
		utils.WriteError(w, "Order cancellation failed: Invalid OrderId", http.StatusBadRequest)
		return
	}

	err = h.svc.Cancel(ctx, orderID)
	if errors.Is(err, entities.ErrOrderNotFound) {
		utils.WriteError(w, "Order cancellation failed: Invalid OrderId", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to cancel order", slog.Any("error", err), slog.Int64("order_id", orderID))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, utils.ErrorResponse{Message: fmt.Sprintf("Order %d successfully cancelled", orderID)}, http.StatusOK)
}

// BuyerAccept moves an order under buyer review to ORDER_ACCEPTED.
// @Summary      Accept an order as buyer
// @Tags         orders
// @Param        id   path      int  true  "Order ID"
// @Success      200  {object}  OrderCreatedResponse
// @Failure      400  {object}  utils.ErrorResponse
// @Router       /shop/buyer/{id}/order-accept [put]
func (h *OrderHandler) BuyerAccept(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, err := pathID(r)
	if err != nil {
		utils.WriteError(w, "Invalid Order ID", http.StatusBadRequest)
		return
	}

	err = h.svc.BuyerAccept(ctx, orderID)
	if errors.Is(err, entities.ErrOrderNotFound) {
		utils.WriteError(w, "Order not found", http.StatusBadRequest)
		return
	}
	if errors.Is(err, entities.ErrStatusConflict) {
		utils.WriteError(w, "Order cannot be accepted in its current state", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to accept order", slog.Any("error", err), slog.Int64("order_id", orderID))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, OrderCreatedResponse{Message: "Order accepted successfully", OrderID: orderID}, http.StatusOK)
}

// BuyerChange replaces the order terms and returns the order to seller review.
// @Summary      Change an order
// @Tags         orders
// @Param        id       path  int                 true  "Order ID"
// @Param        request  body  ChangeOrderRequest  true  "Replacement terms"
// @Success      200  {object}  OrderCreatedResponse
// @Failure      400  {object}  utils.ErrorResponse  "Missing fields"
// @Failure      404  {object}  utils.ErrorResponse  "Order not found"
// @Router       /shop/buyer/{id}/order-change [put]
func (h *OrderHandler) BuyerChange(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, err := pathID(r)
	if err != nil {
		utils.WriteError(w, "Invalid Order ID", http.StatusBadRequest)
		return
	}

	var req ChangeOrderRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	err = h.svc.BuyerChange(ctx, orderID, service.ChangeOrderInput{
		BuyerCompanyName:  req.BuyerCompanyName,
		SellerCompanyName: req.SellerCompanyName,
		ProductID:         req.ProductID,
		PaymentDetails:    req.PaymentDetails,
		DeliveryAddress:   req.DeliveryAddress,
		ContractData:      req.ContractData,
		Quantity:          req.Quantity,
		Price:             req.Price,
	})
	if errors.Is(err, entities.ErrOrderNotFound) {
		utils.WriteError(w, "Order not found", http.StatusNotFound)
		return
	}
	if errors.Is(err, entities.ErrMissingFields) {
		utils.WriteError(w, "Missing required fields", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to change order", slog.Any("error", err), slog.Int64("order_id", orderID))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, OrderCreatedResponse{Message: "Order updated successfully", OrderID: orderID}, http.StatusOK)
}

// SellerRespond records the seller's negotiation response.
// @Summary      Respond to an order
// @Tags         orders
// @Param        id       path  int                    true  "Order ID"
// @Param        request  body  SellerResponseRequest  true  "Response text"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  utils.ErrorResponse
// @Failure      404  {object}  utils.ErrorResponse
// @Router       /shop/seller/{id}/order-create-response [post]
func (h *OrderHandler) SellerRespond(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, err := pathID(r)
	if err != nil {
		utils.WriteError(w, "Invalid orderId", http.StatusBadRequest)
		return
	}

	var req SellerResponseRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Text() == "" {
		utils.WriteError(w, "Response text is required", http.StatusBadRequest)
		return
	}

	updated, err := h.svc.SellerRespond(ctx, orderID, req.Text())
	if errors.Is(err, entities.ErrOrderNotFound) {
		utils.WriteError(w, "Order not found", http.StatusNotFound)
		return
	}
	if errors.Is(err, entities.ErrStatusConflict) {
		utils.WriteError(w, "Order status is not PENDING_SELLER_REVIEW", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to record response", slog.Any("error", err), slog.Int64("order_id", orderID))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]string{"newResponse": updated}, http.StatusOK)
}

// AddDetail appends further seller detail to an order under review.
// @Summary      Add detail to an order
// @Tags         orders
// @Param        id       path  int                    true  "Order ID"
// @Param        request  body  SellerResponseRequest  true  "Response text"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  utils.ErrorResponse
// @Failure      403  {object}  utils.ErrorResponse  "Wrong order status"
// @Router       /shop/seller/{id}/order-add-detail [put]
func (h *OrderHandler) AddDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, err := pathID(r)
	if err != nil {
		utils.WriteError(w, "Invalid orderId", http.StatusBadRequest)
		return
	}

	var req SellerResponseRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Text() == "" {
		utils.WriteError(w, "Response text is required", http.StatusBadRequest)
		return
	}

	updated, err := h.svc.SellerRespond(ctx, orderID, req.Text())
	if errors.Is(err, entities.ErrOrderNotFound) {
		utils.WriteError(w, "Order not found", http.StatusBadRequest)
		return
	}
	if errors.Is(err, entities.ErrStatusConflict) {
		utils.WriteError(w, "Order status is not PENDING_SELLER_REVIEW", http.StatusForbidden)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to add detail", slog.Any("error", err), slog.Int64("order_id", orderID))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]any{
		"message":      "Response updated successfully",
		"orderId":      orderID,
		"responseText": updated,
		"newStatus":    string(entities.StatusPendingBuyerReview),
	}, http.StatusOK)
}

// CancelReceive acknowledges a cancelled order and deletes it.
// @Summary      Receive an order cancellation
// @Tags         orders
// @Param        id   path      int  true  "Order ID"
// @Success      200  {object}  utils.ErrorResponse
// @Failure      400  {object}  utils.ErrorResponse
// @Router       /shop/seller/{id}/order-cancel-receive [delete]
func (h *OrderHandler) CancelReceive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, err := pathID(r)
	if err != nil {
		utils.WriteError(w, "Order cancellation failed: Invalid OrderId", http.StatusBadRequest)
		return
	}

	err = h.svc.CancelReceive(ctx, orderID)
	if errors.Is(err, entities.ErrOrderNotFound) {
		utils.WriteError(w, "Order not found", http.StatusBadRequest)
		return
	}
	if errors.Is(err, entities.ErrStatusConflict) {
		utils.WriteError(w, "Order cannot be cancelled in its current state", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to receive cancellation", slog.Any("error", err), slog.Int64("order_id", orderID))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, utils.ErrorResponse{Message: fmt.Sprintf("Order %d successfully cancelled", orderID)}, http.StatusOK)
}

// RegisterOrder finalizes an accepted order and returns its UBL document.
// @Summary      Register an order
// @Tags         orders
// @Produce      xml
// @Param        id   path      int  true  "Order ID"
// @Success      200  {string}  string  "UBL order document"
// @Failure      400  {object}  utils.ErrorResponse
// @Failure      403  {object}  utils.ErrorResponse  "Wrong order status"
// @Router       /shop/seller/{id}/order-register [put]
func (h *OrderHandler) RegisterOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, err := pathID(r)
	if err != nil {
		utils.WriteError(w, "Invalid orderId", http.StatusBadRequest)
		return
	}

	document, err := h.svc.Register(ctx, orderID)
	if errors.Is(err, entities.ErrOrderNotFound) {
		utils.WriteError(w, "Order not found", http.StatusBadRequest)
		return
	}
	if errors.Is(err, entities.ErrStatusConflict) {
		utils.WriteError(w, "Order status is not SELLER_ORDER_ACCEPTED", http.StatusForbidden)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to register order", slog.Any("error", err), slog.Int64("order_id", orderID))
		utils.WriteError(w, "Failed to register order", http.StatusInternalServerError)
		return
	}

	utils.WriteXML(w, document, http.StatusOK)
}

// SellerAccept moves an order under seller review to SELLER_ORDER_ACCEPTED.
// @Summary      Accept an order as seller
// @Tags         orders
// @Param        id   path      int  true  "Order ID"
// @Success      200  {object}  OrderCreatedResponse
// @Failure      400  {object}  utils.ErrorResponse
// @Failure      404  {object}  utils.ErrorResponse
// @Router       /shop/seller/{id}/order-accept [put]
func (h *OrderHandler) SellerAccept(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, err := pathID(r)
	if err != nil {
		utils.WriteError(w, "Invalid Order ID", http.StatusBadRequest)
		return
	}

	err = h.svc.SellerAccept(ctx, orderID)
	if errors.Is(err, entities.ErrOrderNotFound) {
		utils.WriteError(w, "Order not found", http.StatusNotFound)
		return
	}
	if errors.Is(err, entities.ErrStatusConflict) {
		utils.WriteError(w, "Order cannot be accepted in its current state", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to accept order", slog.Any("error", err), slog.Int64("order_id", orderID))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, OrderCreatedResponse{Message: "Order accepted successfully", OrderID: orderID}, http.StatusOK)
}

// SellerReject declines an order under seller review.
// @Summary      Reject an order
// @Tags         orders
// @Param        id   path      int  true  "Order ID"
// @Success      200  {object}  OrderCreatedResponse
// @Failure      400  {object}  utils.ErrorResponse
// @Failure      404  {object}  utils.ErrorResponse
// @Router       /shop/seller/{id}/order-reject [delete]
func (h *OrderHandler) SellerReject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, err := pathID(r)
	if err != nil {
		utils.WriteError(w, "Invalid Order ID", http.StatusBadRequest)
		return
	}

	err = h.svc.SellerReject(ctx, orderID)
	if errors.Is(err, entities.ErrOrderNotFound) {
		utils.WriteError(w, "Order not found", http.StatusNotFound)
		return
	}
	if errors.Is(err, entities.ErrStatusConflict) {
		utils.WriteError(w, "Order cannot be rejected in its current state", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to reject order", slog.Any("error", err), slog.Int64("order_id", orderID))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, OrderCreatedResponse{Message: "Order rejected successfully", OrderID: orderID}, http.StatusOK)
}

// OrderDetails returns the joined details of a registered order.
// @Summary      Get a registered order
// @Tags         orders
// @Param        id   path      int  true  "Order ID"
// @Success      200  {object}  OrderSnapshotResponse
// @Failure      400  {object}  utils.ErrorResponse
// @Failure      403  {object}  utils.ErrorResponse  "Order not registered"
// @Router       /shop/{id} [get]
func (h *OrderHandler) OrderDetails(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, err := pathID(r)
	if err != nil {
		utils.WriteError(w, "Invalid orderId", http.StatusBadRequest)
		return
	}

	snap, err := h.svc.Details(ctx, orderID)
	if errors.Is(err, entities.ErrOrderNotFound) {
		utils.WriteError(w, "Order not found", http.StatusBadRequest)
		return
	}
	if errors.Is(err, entities.ErrStatusConflict) {
		utils.WriteError(w, "Order status is not ORDER_REGISTERED", http.StatusForbidden)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get order", slog.Any("error", err), slog.Int64("order_id", orderID))
		utils.WriteError(w, "Failed to retrieve order", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, SnapshotToJSON(snap), http.StatusOK)
}

// SellerOrders lists every order of a seller.
// @Summary      List seller orders
// @Tags         orders
// @Param        s_id  query     int  true  "Seller ID"
// @Success      200  {object}  OrdersResponse
// @Failure      400  {object}  utils.ErrorResponse
// @Failure      404  {object}  utils.ErrorResponse
// @Router       /shop/seller/orders [get]
func (h *OrderHandler) SellerOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sellerID, err := queryID(r, "s_id")
	if err != nil {
		utils.WriteError(w, "SellerId is required", http.StatusBadRequest)
		return
	}
	if _, err := h.users.UserBySellerID(ctx, sellerID); err != nil {
		utils.WriteError(w, "SellerId not found", http.StatusNotFound)
		return
	}

	orders, err := h.svc.OrdersBySeller(ctx, sellerID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list seller orders", slog.Any("error", err))
		utils.WriteError(w, "Failed to retrieve seller orders", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, OrderSummariesToJSON(orders), http.StatusOK)
}

// BuyerOrders lists every order of a buyer.
// @Summary      List buyer orders
// @Tags         orders
// @Param        b_id  query     int  true  "Buyer ID"
// @Success      200  {object}  OrdersResponse
// @Failure      400  {object}  utils.ErrorResponse
// @Failure      404  {object}  utils.ErrorResponse
// @Router       /shop/buyer/orders [get]
func (h *OrderHandler) BuyerOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	buyerID, err := queryID(r, "b_id")
	if err != nil {
		utils.WriteError(w, "BuyerId is required", http.StatusBadRequest)
		return
	}
	if _, err := h.users.UserByBuyerID(ctx, buyerID); err != nil {
		utils.WriteError(w, "BuyerId not found", http.StatusNotFound)
		return
	}

	orders, err := h.svc.OrdersByBuyer(ctx, buyerID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list buyer orders", slog.Any("error", err))
		utils.WriteError(w, "Failed to retrieve buyer orders", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, OrderSummariesToJSON(orders), http.StatusOK)
}

// SellerActiveOrders lists a seller's unregistered orders by email.
// @Summary      List active seller orders
// @Tags         orders
// @Param        id     path      int     true  "Seller ID"
// @Param        email  query     string  true  "Seller email"
// @Success      200  {object}  OrdersResponse
// @Failure      404  {object}  utils.ErrorResponse
// @Router       /shop/seller/{id}/active-orders [get]
func (h *OrderHandler) SellerActiveOrders(w http.ResponseWriter, r *http.Request) {
	h.activeOrders(w, r, entities.RoleSeller)
}

// BuyerActiveOrders lists a buyer's unregistered orders by email.
// @Summary      List active buyer orders
// @Tags         orders
// @Param        id     path      int     true  "Buyer ID"
// @Param        email  query     string  true  "Buyer email"
// @Success      200  {object}  OrdersResponse
// @Failure      404  {object}  utils.ErrorResponse
// @Router       /shop/buyer/{id}/active-orders [get]
func (h *OrderHandler) BuyerActiveOrders(w http.ResponseWriter, r *http.Request) {
	h.activeOrders(w, r, entities.RoleBuyer)
}

func (h *OrderHandler) activeOrders(w http.ResponseWriter, r *http.Request, role entities.PartyRole) {
	ctx := r.Context()

	email := r.URL.Query().Get("email")
	if email == "" {
		utils.WriteError(w, fmt.Sprintf("%s email is required", roleLabel(role)), http.StatusBadRequest)
		return
	}
	if _, err := h.users.UserByEmail(ctx, email); err != nil {
		utils.WriteError(w, fmt.Sprintf("%s email not found", roleLabel(role)), http.StatusNotFound)
		return
	}

	var (
		orders []entities.OrderSummary
		err    error
	)
	if role == entities.RoleSeller {
		orders, err = h.svc.ActiveOrdersBySellerEmail(ctx, email)
	} else {
		orders, err = h.svc.ActiveOrdersByBuyerEmail(ctx, email)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list active orders", slog.Any("error", err), slog.String("email", email))
		utils.WriteError(w, "Failed to retrieve orders", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, OrderSummariesToJSON(orders), http.StatusOK)
}

// SellerActionOrders lists orders awaiting the seller's action.
// @Summary      List seller action orders
// @Tags         orders
// @Param        id   path      int  true  "Seller ID"
// @Success      200  {object}  OrdersResponse
// @Router       /shop/seller/{id}/active-orders-action [get]
func (h *OrderHandler) SellerActionOrders(w http.ResponseWriter, r *http.Request) {
	h.actionOrders(w, r, entities.RoleSeller)
}

// BuyerActionOrders lists orders awaiting the buyer's action.
// @Summary      List buyer action orders
// @Tags         orders
// @Param        id   path      int  true  "Buyer ID"
// @Success      200  {object}  OrdersResponse
// @Router       /shop/buyer/{id}/active-orders-action [get]
func (h *OrderHandler) BuyerActionOrders(w http.ResponseWriter, r *http.Request) {
	h.actionOrders(w, r, entities.RoleBuyer)
}

func (h *OrderHandler) actionOrders(w http.ResponseWriter, r *http.Request, role entities.PartyRole) {
	ctx := r.Context()

	partyID, err := pathID(r)
	if err != nil {
		utils.WriteError(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	orders, err := h.svc.ActionOrders(ctx, partyID, role)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list action orders", slog.Any("error", err), slog.Int64("party_id", partyID))
		utils.WriteError(w, "Failed to retrieve orders", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, OrderSummariesToJSON(orders), http.StatusOK)
}

// SellerRegisteredOrders lists the ids of a seller's registered orders.
// @Summary      List registered order ids
// @Tags         orders
// @Param        id   path      int  true  "Seller ID"
// @Success      200  {object}  map[string][]int64
// @Failure      400  {object}  utils.ErrorResponse
// @Router       /shop/seller/orders/{id} [get]
func (h *OrderHandler) SellerRegisteredOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sellerID, err := pathID(r)
	if err != nil {
		utils.WriteError(w, "Invalid seller ID", http.StatusBadRequest)
		return
	}

	ids, err := h.svc.RegisteredOrderIDs(ctx, sellerID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list registered orders", slog.Any("error", err), slog.Int64("seller_id", sellerID))
		utils.WriteError(w, "Failed to retrieve orders", http.StatusInternalServerError)
		return
	}
	if ids == nil {
		ids = []int64{}
	}

	utils.WriteJSON(w, map[string][]int64{"orders": ids}, http.StatusOK)
}

func roleLabel(role entities.PartyRole) string {
	if role == entities.RoleSeller {
		return "Seller"
	}
	return "Buyer"
}
