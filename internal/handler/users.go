package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/notuna/order-service/internal/entities"
	"github.com/notuna/order-service/internal/service"
	"github.com/notuna/order-service/pkg/utils"
)

type UserService interface {
	Register(ctx context.Context, nameFirst, nameLast, email, password string) error
	Login(ctx context.Context, email, password string) (service.Session, error)
	CheckBuyerID(ctx context.Context, userID int64) error
	CheckSellerID(ctx context.Context, userID int64) error
	CreateBuyer(ctx context.Context, userID int64, details entities.PartyDetails) (int64, error)
	CreateSeller(ctx context.Context, userID int64, details entities.PartyDetails) (int64, error)
	BuyerDetails(ctx context.Context, buyerID int64) (entities.Buyer, error)
	SellerDetails(ctx context.Context, sellerID int64) (entities.Seller, error)
}

type UserHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	svc      UserService
}

func NewUserHandler(logger *slog.Logger, svc UserService) *UserHandler {
	return &UserHandler{
		logger:   logger.With(slog.String("handler", "users")),
		validate: validator.New(),
		svc:      svc,
	}
}

func (h *UserHandler) Init(r chi.Router) {
	r.Post("/shop/user/register", h.Register)
	r.Post("/shop/user/login", h.Login)
	r.Get("/shop/user/check-buyerId", h.CheckBuyerID)
	r.Get("/shop/user/check-sellerId", h.CheckSellerID)
	r.Post("/shop/user/create-buyer", h.CreateBuyer)
	r.Post("/shop/user/create-seller", h.CreateSeller)
	r.Get("/shop/user/get-buyer-details", h.BuyerDetails)
	r.Get("/shop/user/get-seller-details", h.SellerDetails)
}

// Register creates a login identity.
// @Summary      Register a user
// @Tags         users
// @Param        request  body      RegisterUserRequest  true  "Registration payload"
// @Success      200  {object}  utils.ErrorResponse
// @Failure      400  {object}  utils.ErrorResponse
// @Router       /shop/user/register [post]
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RegisterUserRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	err := h.svc.Register(ctx, req.NameFirst, req.NameLast, req.Email, req.Password)
	if errors.Is(err, entities.ErrEmailTaken) {
		utils.WriteError(w, "Email already in use", http.StatusBadRequest)
		return
	}
	if errors.Is(err, entities.ErrInvalidInput) {
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to register user", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, utils.ErrorResponse{Message: "User registered successfully"}, http.StatusOK)
}

// Login verifies credentials and returns session details with a token.
// @Summary      Log in
// @Tags         users
// @Param        request  body      LoginRequest  true  "Credentials"
// @Success      200  {object}  LoginResponse
// @Failure      400  {object}  utils.ErrorResponse  "Invalid email or password"
// @Router       /shop/user/login [post]
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LoginRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	session, err := h.svc.Login(ctx, req.Email, req.Password)
	if errors.Is(err, entities.ErrInvalidCredentials) {
		utils.WriteError(w, "Invalid email or password", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to log in", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, LoginResponse{SessionDetails: SessionDetails{
		Email:     session.Email,
		NameFirst: session.NameFirst,
		NameLast:  session.NameLast,
		ID:        session.UserID,
		BuyerID:   session.BuyerID,
		SellerID:  session.SellerID,
		Token:     session.Token,
	}}, http.StatusOK)
}

// CheckBuyerID reports whether a user has a linked buyer identity.
// @Summary      Check buyer link
// @Tags         users
// @Param        userId  query     int  true  "User ID"
// @Success      200  {object}  utils.ErrorResponse
// @Failure      400  {object}  utils.ErrorResponse
// @Router       /shop/user/check-buyerId [get]
func (h *UserHandler) CheckBuyerID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := queryID(r, "userId")
	if err != nil {
		utils.WriteError(w, "Invalid User ID", http.StatusBadRequest)
		return
	}

	err = h.svc.CheckBuyerID(ctx, userID)
	if errors.Is(err, entities.ErrNoPartyLink) {
		utils.WriteError(w, "User has no b_Id", http.StatusBadRequest)
		return
	}
	if errors.Is(err, entities.ErrUserNotFound) {
		utils.WriteError(w, "Invalid User ID", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to check buyer link", slog.Any("error", err), slog.Int64("user_id", userID))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, utils.ErrorResponse{Message: "Buyer Id found"}, http.StatusOK)
}

// CheckSellerID reports whether a user has a linked seller identity.
// @Summary      Check seller link
// @Tags         users
// @Param        userId  query     int  true  "User ID"
// @Success      200  {object}  utils.ErrorResponse
// @Failure      400  {object}  utils.ErrorResponse
// @Router       /shop/user/check-sellerId [get]
func (h *UserHandler) CheckSellerID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := queryID(r, "userId")
	if err != nil {
		utils.WriteError(w, "Invalid User ID", http.StatusBadRequest)
		return
	}

	err = h.svc.CheckSellerID(ctx, userID)
	if errors.Is(err, entities.ErrNoPartyLink) {
		utils.WriteError(w, "User has no s_Id", http.StatusBadRequest)
		return
	}
	if errors.Is(err, entities.ErrUserNotFound) {
		utils.WriteError(w, "Invalid User ID", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to check seller link", slog.Any("error", err), slog.Int64("user_id", userID))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, utils.ErrorResponse{Message: "Seller Id found"}, http.StatusOK)
}

// CreateBuyer creates a buyer identity and links it to the user.
// @Summary      Create a buyer
// @Tags         users
// @Param        request  body      CreateBuyerRequest  true  "Buyer details"
// @Success      200  {object}  map[string]int64
// @Failure      400  {object}  utils.ValidationErrorResponse
// @Router       /shop/user/create-buyer [post]
func (h *UserHandler) CreateBuyer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateBuyerRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	buyerID, err := h.svc.CreateBuyer(ctx, req.UserID, entities.PartyDetails{
		Name:    req.BuyerCompanyName,
		Address: req.BuyerAddress,
		Phone:   req.BuyerPhoneNumber,
		Email:   req.BuyerEmail,
		TaxID:   req.BuyerTax,
	})
	if errors.Is(err, entities.ErrUserNotFound) {
		utils.WriteError(w, "User not found", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create buyer", slog.Any("error", err), slog.Int64("user_id", req.UserID))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]int64{"buyerId": buyerID}, http.StatusOK)
}

// CreateSeller creates a seller identity and links it to the user.
// @Summary      Create a seller
// @Tags         users
// @Param        request  body      CreateSellerRequest  true  "Seller details"
// @Success      200  {object}  map[string]int64
// @Failure      400  {object}  utils.ValidationErrorResponse
// @Router       /shop/user/create-seller [post]
func (h *UserHandler) CreateSeller(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateSellerRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	sellerID, err := h.svc.CreateSeller(ctx, req.UserID, entities.PartyDetails{
		Name:    req.SellerCompanyName,
		Address: req.SellerAddress,
		Phone:   req.SellerPhoneNumber,
		Email:   req.SellerEmail,
		TaxID:   req.SellerTax,
	})
	if errors.Is(err, entities.ErrUserNotFound) {
		utils.WriteError(w, "User not found", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create seller", slog.Any("error", err), slog.Int64("user_id", req.UserID))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]int64{"sellerId": sellerID}, http.StatusOK)
}

// BuyerDetails returns the company details of a buyer.
// @Summary      Get buyer details
// @Tags         users
// @Param        buyerId  query     int  true  "Buyer ID"
// @Success      200  {object}  PartyDetailsResponse
// @Failure      400  {object}  utils.ErrorResponse
// @Router       /shop/user/get-buyer-details [get]
func (h *UserHandler) BuyerDetails(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	buyerID, err := queryID(r, "buyerId")
	if err != nil {
		utils.WriteError(w, "Invalid buyer ID", http.StatusBadRequest)
		return
	}

	buyer, err := h.svc.BuyerDetails(ctx, buyerID)
	if errors.Is(err, entities.ErrBuyerNotFound) {
		utils.WriteError(w, "Buyer does not exist", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get buyer details", slog.Any("error", err), slog.Int64("buyer_id", buyerID))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, PartyDetailsResponse{
		ID:          buyer.ID,
		Name:        buyer.Name,
		Address:     buyer.Address,
		PhoneNumber: buyer.Phone,
		Email:       buyer.Email,
		Tax:         buyer.TaxID,
	}, http.StatusOK)
}

// SellerDetails returns the company details of a seller.
// @Summary      Get seller details
// @Tags         users
// @Param        sellerId  query     int  true  "Seller ID"
// @Success      200  {object}  PartyDetailsResponse
// @Failure      400  {object}  utils.ErrorResponse
// @Router       /shop/user/get-seller-details [get]
func (h *UserHandler) SellerDetails(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sellerID, err := queryID(r, "sellerId")
	if err != nil {
		utils.WriteError(w, "Invalid seller ID", http.StatusBadRequest)
		return
	}

	seller, err := h.svc.SellerDetails(ctx, sellerID)
	if errors.Is(err, entities.ErrSellerNotFound) {
		utils.WriteError(w, "Seller does not exist", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get seller details", slog.Any("error", err), slog.Int64("seller_id", sellerID))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, PartyDetailsResponse{
		ID:          seller.ID,
		Name:        seller.Name,
		Address:     seller.Address,
		PhoneNumber: seller.Phone,
		Email:       seller.Email,
		Tax:         seller.TaxID,
	}, http.StatusOK)
}
