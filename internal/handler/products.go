package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/notuna/order-service/internal/entities"
	"github.com/notuna/order-service/pkg/utils"
)

type ProductService interface {
	Add(ctx context.Context, p entities.Product) (entities.Product, error)
	Get(ctx context.Context, productID int64) (entities.Product, error)
	GetForSeller(ctx context.Context, productID, sellerID int64) (entities.Product, error)
	ListForSeller(ctx context.Context, sellerID int64) ([]entities.Product, error)
	ListAll(ctx context.Context) ([]entities.Product, error)
	Delete(ctx context.Context, productID int64) error
	DeleteForSeller(ctx context.Context, productID, sellerID int64) error
}

type ProductHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	svc      ProductService
	guard    func(next http.Handler) http.Handler
}

func NewProductHandler(logger *slog.Logger, svc ProductService, guard func(next http.Handler) http.Handler) *ProductHandler {
	return &ProductHandler{
		logger:   logger.With(slog.String("handler", "products")),
		validate: validator.New(),
		svc:      svc,
		guard:    guard,
	}
}

func (h *ProductHandler) Init(r chi.Router) {
	r.With(h.guard).Get("/shop/products/allProduct-v2", h.ListAll)
	r.Post("/shop/add-new-product-v2", h.Add)
	r.Delete("/shop/delete-product-v2", h.Delete)
	r.Get("/shop/product-v2/{id}", h.Get)
	r.Post("/shop/{id}/add-new-product-v2", h.AddForSeller)
	r.Delete("/shop/{id}/delete-product-v2", h.DeleteForSeller)
	r.Get("/shop/product-v2/{id}/view-product", h.GetForSeller)
	r.Get("/shop/product-v2/{id}/view-all-products", h.ListForSeller)
}

// ListAll returns the whole catalog.
// @Summary      List all products
// @Tags         products
// @Success      200  {object}  map[string][]Product
// @Router       /shop/products/allProduct-v2 [get]
func (h *ProductHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	products, err := h.svc.ListAll(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list products", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string][]Product{"products": ProductsToJSON(products)}, http.StatusOK)
}

// Add creates a shared catalog product.
// @Summary      Add a product
// @Tags         products
// @Param        request  body      AddProductRequest  true  "Product payload"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  utils.ErrorResponse
// @Router       /shop/add-new-product-v2 [post]
func (h *ProductHandler) Add(w http.ResponseWriter, r *http.Request) {
	h.add(w, r, 0)
}

// AddForSeller creates a product inside a seller's catalog.
// @Summary      Add a product for a seller
// @Tags         products
// @Param        id       path  int                true  "Seller ID"
// @Param        request  body  AddProductRequest  true  "Product payload"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  utils.ErrorResponse
// @Failure      404  {object}  utils.ErrorResponse  "Seller not found"
// @Router       /shop/{id}/add-new-product-v2 [post]
func (h *ProductHandler) AddForSeller(w http.ResponseWriter, r *http.Request) {
	sellerID, err := pathID(r)
	if err != nil {
		utils.WriteError(w, "Valid seller ID must be provided", http.StatusBadRequest)
		return
	}
	h.add(w, r, sellerID)
}

func (h *ProductHandler) add(w http.ResponseWriter, r *http.Request, sellerID int64) {
	ctx := r.Context()

	var req AddProductRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteError(w, "All product fields must be valid and non-empty", http.StatusBadRequest)
		return
	}

	product, err := h.svc.Add(ctx, entities.Product{
		Name:        req.Name,
		Price:       req.Price,
		TaxRate:     req.Tax,
		Description: req.Description,
		SellerID:    sellerID,
	})
	if errors.Is(err, entities.ErrSellerNotFound) {
		utils.WriteError(w, "Seller ID does not exist", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to add product", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]any{
		"message": "Product added successfully",
		"product": ProductEntityToJSON(product),
	}, http.StatusOK)
}

// Get returns a catalog product by id.
// @Summary      Get a product
// @Tags         products
// @Param        id   path      int  true  "Product ID"
// @Success      200  {object}  map[string]Product
// @Failure      404  {object}  utils.ErrorResponse
// @Router       /shop/product-v2/{id} [get]
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productID, err := pathID(r)
	if err != nil {
		utils.WriteError(w, "Invalid product ID", http.StatusBadRequest)
		return
	}

	product, err := h.svc.Get(ctx, productID)
	if errors.Is(err, entities.ErrProductNotFound) {
		utils.WriteError(w, "Product not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get product", slog.Any("error", err), slog.Int64("product_id", productID))
		utils.WriteError(w, "Failed to retrieve product", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]Product{"product": ProductEntityToJSON(product)}, http.StatusOK)
}

// Delete removes a product from the shared catalog.
// @Summary      Delete a product
// @Tags         products
// @Param        request  body      DeleteProductRequest  true  "Product ID"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  utils.ErrorResponse
// @Router       /shop/delete-product-v2 [delete]
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req DeleteProductRequest
	if err := utils.DecodeBody(r, &req); err != nil || req.ID == 0 {
		utils.WriteError(w, "Valid product ID must be provided", http.StatusBadRequest)
		return
	}

	product, err := h.svc.Get(ctx, req.ID)
	if err == nil {
		err = h.svc.Delete(ctx, req.ID)
	}
	if errors.Is(err, entities.ErrProductNotFound) {
		utils.WriteError(w, "Product not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to delete product", slog.Any("error", err), slog.Int64("product_id", req.ID))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]any{
		"message":        "Product deleted successfully",
		"deletedProduct": ProductEntityToJSON(product),
	}, http.StatusOK)
}

// DeleteForSeller removes a product from its owner's catalog.
// @Summary      Delete a seller's product
// @Tags         products
// @Param        id       path  int                   true  "Seller ID"
// @Param        request  body  DeleteProductRequest  true  "Product ID"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  utils.ErrorResponse
// @Router       /shop/{id}/delete-product-v2 [delete]
func (h *ProductHandler) DeleteForSeller(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sellerID, err := pathID(r)
	if err != nil {
		utils.WriteError(w, "Valid seller ID must be provided", http.StatusBadRequest)
		return
	}

	var req DeleteProductRequest
	if err := utils.DecodeBody(r, &req); err != nil || req.ProductID == 0 {
		utils.WriteError(w, "Valid product ID must be provided", http.StatusBadRequest)
		return
	}

	product, err := h.svc.GetForSeller(ctx, req.ProductID, sellerID)
	if err == nil {
		err = h.svc.DeleteForSeller(ctx, req.ProductID, sellerID)
	}
	if errors.Is(err, entities.ErrProductNotFound) || errors.Is(err, entities.ErrSellerNotFound) {
		utils.WriteError(w, "Product not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to delete product", slog.Any("error", err), slog.Int64("product_id", req.ProductID))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]any{
		"message":        "Product deleted successfully",
		"deletedProduct": ProductEntityToJSON(product),
	}, http.StatusOK)
}

// GetForSeller returns a product from one seller's catalog.
// @Summary      View a seller's product
// @Tags         products
// @Param        id         path   int  true  "Seller ID"
// @Param        productId  query  int  true  "Product ID"
// @Success      200  {object}  map[string]Product
// @Failure      404  {object}  utils.ErrorResponse
// @Router       /shop/product-v2/{id}/view-product [get]
func (h *ProductHandler) GetForSeller(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sellerID, err := pathID(r)
	if err != nil {
		utils.WriteError(w, "Valid seller ID must be provided", http.StatusBadRequest)
		return
	}
	productID, err := queryID(r, "productId")
	if err != nil {
		utils.WriteError(w, "Valid product ID must be provided", http.StatusBadRequest)
		return
	}

	product, err := h.svc.GetForSeller(ctx, productID, sellerID)
	if errors.Is(err, entities.ErrSellerNotFound) {
		utils.WriteError(w, "Seller ID not found", http.StatusNotFound)
		return
	}
	if errors.Is(err, entities.ErrProductNotFound) {
		utils.WriteError(w, "Product not found for this seller", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get product", slog.Any("error", err), slog.Int64("product_id", productID))
		utils.WriteError(w, "Failed to retrieve product", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]Product{"product": ProductEntityToJSON(product)}, http.StatusOK)
}

// ListForSeller returns every product of one seller.
// @Summary      View all of a seller's products
// @Tags         products
// @Param        id   path      int  true  "Seller ID"
// @Success      200  {object}  map[string][]Product
// @Failure      404  {object}  utils.ErrorResponse
// @Router       /shop/product-v2/{id}/view-all-products [get]
func (h *ProductHandler) ListForSeller(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sellerID, err := pathID(r)
	if err != nil {
		utils.WriteError(w, "Valid seller ID must be provided", http.StatusBadRequest)
		return
	}

	products, err := h.svc.ListForSeller(ctx, sellerID)
	if errors.Is(err, entities.ErrSellerNotFound) {
		utils.WriteError(w, "Seller ID not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list products", slog.Any("error", err), slog.Int64("seller_id", sellerID))
		utils.WriteError(w, "Failed to retrieve products", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string][]Product{"products": ProductsToJSON(products)}, http.StatusOK)
}
