package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/notuna/order-service/internal/entities"
	"github.com/notuna/order-service/pkg/utils"
)

type DocumentService interface {
	GenerateInvoice(ctx context.Context, orderID, sellerID int64) (string, error)
	SaveInvoice(ctx context.Context, orderID, sellerID int64, invoiceID string) error
	GenerateDespatch(ctx context.Context, orderID int64) (map[string]any, error)
	SaveDespatch(ctx context.Context, orderID, sellerID int64, despatchID string) error
	ViewInvoices(ctx context.Context, partyID int64, role entities.PartyRole) ([]entities.DocumentRef, error)
	ViewDespatches(ctx context.Context, partyID int64, role entities.PartyRole) ([]entities.DocumentRef, error)
}

// DocumentHandler serves invoice and despatch generation. Every route sits
// behind the api key guard, and domain failures come back as 400 with the
// reason in the message.
type DocumentHandler struct {
	logger *slog.Logger
	svc    DocumentService
	guard  func(next http.Handler) http.Handler
}

func NewDocumentHandler(logger *slog.Logger, svc DocumentService, guard func(next http.Handler) http.Handler) *DocumentHandler {
	return &DocumentHandler{
		logger: logger.With(slog.String("handler", "documents")),
		svc:    svc,
		guard:  guard,
	}
}

func (h *DocumentHandler) Init(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.guard)
		r.Post("/shop/seller/generate-invoice/{id}", h.GenerateInvoice)
		r.Put("/shop/seller/save-invoice/{id}", h.SaveInvoice)
		r.Get("/shop/seller/view-invoices/{id}", h.SellerInvoices)
		r.Get("/shop/buyer/view-invoices/{id}", h.BuyerInvoices)
		r.Post("/shop/seller/generate-despatch/{id}", h.GenerateDespatch)
		r.Put("/shop/seller/save-despatch/{id}", h.SaveDespatch)
		r.Get("/shop/seller/view-despatch/{id}", h.SellerDespatches)
		r.Get("/shop/buyer/view-despatch/{id}", h.BuyerDespatches)
	})
}

// GenerateInvoice builds the order XML and submits it to the invoice API.
// @Summary      Generate an invoice
// @Tags         documents
// @Param        id        path   int  true  "Order ID"
// @Param        sellerId  query  int  true  "Seller ID"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  utils.ErrorResponse
// @Router       /shop/seller/generate-invoice/{id} [post]
func (h *DocumentHandler) GenerateInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, err := pathID(r)
	if err != nil {
		utils.WriteError(w, "Invalid orderId", http.StatusBadRequest)
		return
	}
	sellerID, err := queryID(r, "sellerId")
	if err != nil {
		utils.WriteError(w, "Valid seller ID must be provided", http.StatusBadRequest)
		return
	}

	invoiceID, err := h.svc.GenerateInvoice(ctx, orderID, sellerID)
	if err != nil {
		h.writeDocumentError(ctx, w, err, entities.DocumentInvoice)
		return
	}

	utils.WriteJSON(w, map[string]any{
		"message":   "Invoice Generated Successfully",
		"invoiceId": invoiceID,
	}, http.StatusOK)
}

// SaveInvoice stores a generated invoice id on the order.
// @Summary      Save an invoice id
// @Tags         documents
// @Param        id         path   int     true  "Order ID"
// @Param        sellerId   query  int     true  "Seller ID"
// @Param        invoiceId  query  string  true  "Invoice ID"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  utils.ErrorResponse
// @Router       /shop/seller/save-invoice/{id} [put]
func (h *DocumentHandler) SaveInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, err := pathID(r)
	if err != nil {
		utils.WriteError(w, "Invalid orderId", http.StatusBadRequest)
		return
	}
	sellerID, err := queryID(r, "sellerId")
	if err != nil {
		utils.WriteError(w, "Valid seller ID must be provided", http.StatusBadRequest)
		return
	}
	invoiceID := r.URL.Query().Get("invoiceId")

	if err := h.svc.SaveInvoice(ctx, orderID, sellerID, invoiceID); err != nil {
		h.writeDocumentError(ctx, w, err, entities.DocumentInvoice)
		return
	}

	utils.WriteJSON(w, map[string]any{
		"message":   "Invoice Saved Successfully",
		"invoiceId": invoiceID,
	}, http.StatusOK)
}

// GenerateDespatch submits the despatch payload and returns the advice.
// @Summary      Generate a despatch advice
// @Tags         documents
// @Param        id   path      int  true  "Order ID"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  utils.ErrorResponse
// @Router       /shop/seller/generate-despatch/{id} [post]
func (h *DocumentHandler) GenerateDespatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, err := pathID(r)
	if err != nil {
		utils.WriteError(w, "Invalid orderId", http.StatusBadRequest)
		return
	}

	advice, err := h.svc.GenerateDespatch(ctx, orderID)
	if err != nil {
		h.writeDocumentError(ctx, w, err, entities.DocumentDespatch)
		return
	}

	utils.WriteJSON(w, map[string]any{"despatchAdvice": advice}, http.StatusOK)
}

// SaveDespatch stores a generated despatch id on the order.
// @Summary      Save a despatch id
// @Tags         documents
// @Param        id          path   int     true  "Order ID"
// @Param        sellerId    query  int     true  "Seller ID"
// @Param        despatchId  query  string  true  "Despatch ID"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  utils.ErrorResponse
// @Router       /shop/seller/save-despatch/{id} [put]
func (h *DocumentHandler) SaveDespatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, err := pathID(r)
	if err != nil {
		utils.WriteError(w, "Invalid orderId", http.StatusBadRequest)
		return
	}
	sellerID, err := queryID(r, "sellerId")
	if err != nil {
		utils.WriteError(w, "Valid seller ID must be provided", http.StatusBadRequest)
		return
	}
	despatchID := r.URL.Query().Get("despatchId")

	if err := h.svc.SaveDespatch(ctx, orderID, sellerID, despatchID); err != nil {
		h.writeDocumentError(ctx, w, err, entities.DocumentDespatch)
		return
	}

	utils.WriteJSON(w, map[string]any{
		"message":    "Despatch Saved Successfully",
		"despatchId": despatchID,
	}, http.StatusOK)
}

// SellerInvoices lists a seller's saved invoices.
// @Summary      View seller invoices
// @Tags         documents
// @Param        id   path      int  true  "Seller ID"
// @Success      200  {object}  map[string][]DocumentRef
// @Router       /shop/seller/view-invoices/{id} [get]
func (h *DocumentHandler) SellerInvoices(w http.ResponseWriter, r *http.Request) {
	h.viewDocuments(w, r, entities.RoleSeller, entities.DocumentInvoice)
}

// BuyerInvoices lists a buyer's saved invoices.
// @Summary      View buyer invoices
// @Tags         documents
// @Param        id   path      int  true  "Buyer ID"
// @Success      200  {object}  map[string][]DocumentRef
// @Router       /shop/buyer/view-invoices/{id} [get]
func (h *DocumentHandler) BuyerInvoices(w http.ResponseWriter, r *http.Request) {
	h.viewDocuments(w, r, entities.RoleBuyer, entities.DocumentInvoice)
}

// SellerDespatches lists a seller's saved despatch advices.
// @Summary      View seller despatches
// @Tags         documents
// @Param        id   path      int  true  "Seller ID"
// @Success      200  {object}  map[string][]DocumentRef
// @Router       /shop/seller/view-despatch/{id} [get]
func (h *DocumentHandler) SellerDespatches(w http.ResponseWriter, r *http.Request) {
	h.viewDocuments(w, r, entities.RoleSeller, entities.DocumentDespatch)
}

// BuyerDespatches lists a buyer's saved despatch advices.
// @Summary      View buyer despatches
// @Tags         documents
// @Param        id   path      int  true  "Buyer ID"
// @Success      200  {object}  map[string][]DocumentRef
// @Router       /shop/buyer/view-despatch/{id} [get]
func (h *DocumentHandler) BuyerDespatches(w http.ResponseWriter, r *http.Request) {
	h.viewDocuments(w, r, entities.RoleBuyer, entities.DocumentDespatch)
}

func (h *DocumentHandler) viewDocuments(w http.ResponseWriter, r *http.Request, role entities.PartyRole, doc entities.DocumentKind) {
	ctx := r.Context()

	partyID, err := pathID(r)
	if err != nil {
		utils.WriteError(w, "Buyer or Seller ID is empty or invalid", http.StatusBadRequest)
		return
	}

	var refs []entities.DocumentRef
	if doc == entities.DocumentInvoice {
		refs, err = h.svc.ViewInvoices(ctx, partyID, role)
	} else {
		refs, err = h.svc.ViewDespatches(ctx, partyID, role)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list documents", slog.Any("error", err), slog.Int64("party_id", partyID))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	key := "invoices"
	if doc == entities.DocumentDespatch {
		key = "despatches"
	}
	utils.WriteJSON(w, map[string][]DocumentRef{key: DocumentRefsToJSON(refs)}, http.StatusOK)
}

func (h *DocumentHandler) writeDocumentError(ctx context.Context, w http.ResponseWriter, err error, doc entities.DocumentKind) {
	label := "Invoice"
	if doc == entities.DocumentDespatch {
		label = "Despatch"
	}

	switch {
	case errors.Is(err, entities.ErrOrderNotFound):
		utils.WriteError(w, "Order not found", http.StatusBadRequest)
	case errors.Is(err, entities.ErrNotOwner):
		utils.WriteError(w, "Order does not belong to this seller", http.StatusBadRequest)
	case errors.Is(err, entities.ErrStatusConflict):
		utils.WriteError(w, "Order status is not ORDER_REGISTERED", http.StatusBadRequest)
	case errors.Is(err, entities.ErrAlreadySaved):
		utils.WriteError(w, label+" already saved for this order", http.StatusBadRequest)
	case errors.Is(err, entities.ErrMissingFields):
		utils.WriteError(w, "Valid "+label+" ID must be provided", http.StatusBadRequest)
	default:
		h.logger.ErrorContext(ctx, "document operation failed", slog.Any("error", err))
		utils.WriteError(w, "Failed to process "+label, http.StatusBadRequest)
	}
}
