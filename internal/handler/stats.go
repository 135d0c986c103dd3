package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/notuna/order-service/internal/entities"
	"github.com/notuna/order-service/internal/service"
	"github.com/notuna/order-service/pkg/utils"
)

type StatsService interface {
	Stats(ctx context.Context, partyID int64, role entities.PartyRole) (service.Stats, error)
	FinanceStats(ctx context.Context, partyID int64, role entities.PartyRole) (service.FinanceStats, error)
}

type StatsHandler struct {
	logger *slog.Logger
	svc    StatsService
}

func NewStatsHandler(logger *slog.Logger, svc StatsService) *StatsHandler {
	return &StatsHandler{
		logger: logger.With(slog.String("handler", "stats")),
		svc:    svc,
	}
}

func (h *StatsHandler) Init(r chi.Router) {
	r.Get("/shop/buyer/get-buyer-stats", h.BuyerStats)
	r.Get("/shop/seller/get-seller-stats", h.SellerStats)
	r.Get("/shop/seller/get-seller-finance/{id}", h.SellerFinance)
	r.Get("/shop/seller/get-buyer-finance/{id}", h.BuyerFinance)
}

// BuyerStats returns a buyer's order counts bucketed by status.
// @Summary      Buyer order statistics
// @Tags         stats
// @Param        b_id  query     int  true  "Buyer ID"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  utils.ErrorResponse
// @Router       /shop/buyer/get-buyer-stats [get]
func (h *StatsHandler) BuyerStats(w http.ResponseWriter, r *http.Request) {
	h.stats(w, r, entities.RoleBuyer)
}

// SellerStats returns a seller's order counts bucketed by status.
// @Summary      Seller order statistics
// @Tags         stats
// @Param        s_id  query     int  true  "Seller ID"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  utils.ErrorResponse
// @Router       /shop/seller/get-seller-stats [get]
func (h *StatsHandler) SellerStats(w http.ResponseWriter, r *http.Request) {
	h.stats(w, r, entities.RoleSeller)
}

func (h *StatsHandler) stats(w http.ResponseWriter, r *http.Request, role entities.PartyRole) {
	ctx := r.Context()

	param := "b_id"
	if role == entities.RoleSeller {
		param = "s_id"
	}
	partyID, err := queryID(r, param)
	if err != nil {
		utils.WriteError(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	stats, err := h.svc.Stats(ctx, partyID, role)
	if errors.Is(err, entities.ErrBuyerNotFound) || errors.Is(err, entities.ErrSellerNotFound) {
		utils.WriteError(w, "No orders found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get stats", slog.Any("error", err), slog.Int64("party_id", partyID))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, StatsToJSON(stats), http.StatusOK)
}

// SellerFinance returns a seller's per-status revenue breakdown.
// @Summary      Seller finance statistics
// @Tags         stats
// @Param        id   path      int  true  "Seller ID"
// @Success      200  {object}  map[string]any
// @Router       /shop/seller/get-seller-finance/{id} [get]
func (h *StatsHandler) SellerFinance(w http.ResponseWriter, r *http.Request) {
	h.finance(w, r, entities.RoleSeller)
}

// BuyerFinance returns a buyer's per-status revenue breakdown.
// @Summary      Buyer finance statistics
// @Tags         stats
// @Param        id   path      int  true  "Buyer ID"
// @Success      200  {object}  map[string]any
// @Router       /shop/seller/get-buyer-finance/{id} [get]
func (h *StatsHandler) BuyerFinance(w http.ResponseWriter, r *http.Request) {
	h.finance(w, r, entities.RoleBuyer)
}

func (h *StatsHandler) finance(w http.ResponseWriter, r *http.Request, role entities.PartyRole) {
	ctx := r.Context()

	partyID, err := pathID(r)
	if err != nil {
		utils.WriteError(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	stats, err := h.svc.FinanceStats(ctx, partyID, role)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get finance stats", slog.Any("error", err), slog.Int64("party_id", partyID))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, FinanceStatsToJSON(stats), http.StatusOK)
}
