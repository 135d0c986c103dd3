package service

import (
	"context"
	"log/slog"

	"github.com/notuna/order-service/internal/entities"
	"github.com/notuna/order-service/internal/ubl"
)

type DocumentRepo interface {
	GetOrder(ctx context.Context, orderID int64) (entities.Order, error)
	GetSnapshot(ctx context.Context, orderID int64) (entities.OrderSnapshot, error)
	SaveInvoiceID(ctx context.Context, orderID int64, invoiceID string) (bool, error)
	SaveDespatchID(ctx context.Context, orderID int64, despatchID string) (bool, error)
	ListDocumentRefs(ctx context.Context, partyID int64, role entities.PartyRole, doc entities.DocumentKind) ([]entities.DocumentRef, error)
}

// DocumentsAPI is the external generation service.
type DocumentsAPI interface {
	GenerateInvoice(ctx context.Context, invoiceXML []byte) (string, error)
	GenerateDespatch(ctx context.Context, payload ubl.DespatchRequest) (map[string]any, error)
}

type documentService struct {
	logger *slog.Logger
	repo   DocumentRepo
	api    DocumentsAPI
}

func NewDocumentService(logger *slog.Logger, repo DocumentRepo, api DocumentsAPI) *documentService {
	return &documentService{
		logger: logger.With(slog.String("service", "document")),
		repo:   repo,
		api:    api,
	}
}

// GenerateInvoice builds the purchase order XML for a registered order the
// seller owns and submits it to the invoice API.
func (s *documentService) GenerateInvoice(ctx context.Context, orderID, sellerID int64) (string, error) {
	if err := s.guardOwnedRegistered(ctx, orderID, sellerID, entities.DocumentInvoice); err != nil {
		return "", err
	}

	snap, err := s.repo.GetSnapshot(ctx, orderID)
	if err != nil {
		return "", err
	}

	invoiceID, err := s.api.GenerateInvoice(ctx, ubl.BuildInvoiceXML(snap))
	if err != nil {
		return "", err
	}

	s.logger.InfoContext(ctx, "invoice generated",
		slog.Int64("order_id", orderID), slog.String("invoice_id", invoiceID))
	return invoiceID, nil
}

// SaveInvoice stores the invoice id on the order. The write is conditional so
// the id is write-once; a second save reports the conflict and leaves the
// original untouched.
func (s *documentService) SaveInvoice(ctx context.Context, orderID, sellerID int64, invoiceID string) error {
	if invoiceID == "" {
		return entities.ErrMissingFields
	}
	if err := s.guardOwnedRegistered(ctx, orderID, sellerID, entities.DocumentInvoice); err != nil {
		return err
	}

	ok, err := s.repo.SaveInvoiceID(ctx, orderID, invoiceID)
	if err != nil {
		return err
	}
	if !ok {
		return entities.ErrAlreadySaved
	}
	return nil
}

// GenerateDespatch builds the despatch payload for a registered order and
// returns the advice the API produced.
func (s *documentService) GenerateDespatch(ctx context.Context, orderID int64) (map[string]any, error) {
	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != entities.StatusRegistered {
		return nil, entities.ErrStatusConflict
	}

	snap, err := s.repo.GetSnapshot(ctx, orderID)
	if err != nil {
		return nil, err
	}

	advice, err := s.api.GenerateDespatch(ctx, ubl.BuildDespatchRequest(snap))
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "despatch generated", slog.Int64("order_id", orderID))
	return advice, nil
}

func (s *documentService) SaveDespatch(ctx context.Context, orderID, sellerID int64, despatchID string) error {
	if despatchID == "" {
		return entities.ErrMissingFields
	}
	if err := s.guardOwnedRegistered(ctx, orderID, sellerID, entities.DocumentDespatch); err != nil {
		return err
	}

	ok, err := s.repo.SaveDespatchID(ctx, orderID, despatchID)
	if err != nil {
		return err
	}
	if !ok {
		return entities.ErrAlreadySaved
	}
	return nil
}

func (s *documentService) ViewInvoices(ctx context.Context, partyID int64, role entities.PartyRole) ([]entities.DocumentRef, error) {
	return s.repo.ListDocumentRefs(ctx, partyID, role, entities.DocumentInvoice)
}

func (s *documentService) ViewDespatches(ctx context.Context, partyID int64, role entities.PartyRole) ([]entities.DocumentRef, error) {
	return s.repo.ListDocumentRefs(ctx, partyID, role, entities.DocumentDespatch)
}

// guardOwnedRegistered runs the shared invoice/despatch preconditions: the
// order exists, the caller owns it, it is registered, and the document id is
// not already set.
func (s *documentService) guardOwnedRegistered(ctx context.Context, orderID, sellerID int64, doc entities.DocumentKind) error {
	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if order.SellerID != sellerID {
		return entities.ErrNotOwner
	}
	if order.Status != entities.StatusRegistered {
		return entities.ErrStatusConflict
	}

	saved := order.InvoiceID
	if doc == entities.DocumentDespatch {
		saved = order.DespatchID
	}
	if saved != "" {
		return entities.ErrAlreadySaved
	}
	return nil
}
