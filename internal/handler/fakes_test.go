package handler_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/notuna/order-service/internal/entities"
	"github.com/notuna/order-service/internal/middleware"
	"github.com/notuna/order-service/internal/service"
)

const testAPIKey = "test-key"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testGuard() func(next http.Handler) http.Handler {
	return middleware.APIKey([]string{testAPIKey})
}

// fakeOrderService implements handler.OrderService with overridable function
// fields. Unset methods panic, flagging calls the test did not expect.
type fakeOrderService struct {
	CreateFunc        func(ctx context.Context, in service.CreateOrderInput) (int64, error)
	CreateV2Func      func(ctx context.Context, in service.CreateOrderV2Input) (int64, error)
	SellerAcceptFunc  func(ctx context.Context, orderID int64) error
	SellerRejectFunc  func(ctx context.Context, orderID int64) error
	SellerRespondFunc func(ctx context.Context, orderID int64, text string) (string, error)
	BuyerAcceptFunc   func(ctx context.Context, orderID int64) error
	BuyerChangeFunc   func(ctx context.Context, orderID int64, in service.ChangeOrderInput) error
	CancelFunc        func(ctx context.Context, orderID int64) error
	CancelReceiveFunc func(ctx context.Context, orderID int64) error
	RegisterFunc      func(ctx context.Context, orderID int64) ([]byte, error)
	DetailsFunc       func(ctx context.Context, orderID int64) (entities.OrderSnapshot, error)

	OrdersByBuyerFunc             func(ctx context.Context, buyerID int64) ([]entities.OrderSummary, error)
	OrdersBySellerFunc            func(ctx context.Context, sellerID int64) ([]entities.OrderSummary, error)
	ActiveOrdersByBuyerEmailFunc  func(ctx context.Context, email string) ([]entities.OrderSummary, error)
	ActiveOrdersBySellerEmailFunc func(ctx context.Context, email string) ([]entities.OrderSummary, error)
	ActionOrdersFunc              func(ctx context.Context, partyID int64, role entities.PartyRole) ([]entities.OrderSummary, error)
	RegisteredOrderIDsFunc        func(ctx context.Context, sellerID int64) ([]int64, error)
}

func (f *fakeOrderService) Create(ctx context.Context, in service.CreateOrderInput) (int64, error) {
	return f.CreateFunc(ctx, in)
}

func (f *fakeOrderService) CreateV2(ctx context.Context, in service.CreateOrderV2Input) (int64, error) {
	return f.CreateV2Func(ctx, in)
}

func (f *fakeOrderService) SellerAccept(ctx context.Context, orderID int64) error {
	return f.SellerAcceptFunc(ctx, orderID)
}

func (f *fakeOrderService) SellerReject(ctx context.Context, orderID int64) error {
	return f.SellerRejectFunc(ctx, orderID)
}

func (f *fakeOrderService) SellerRespond(ctx context.Context, orderID int64, text string) (string, error) {
	return f.SellerRespondFunc(ctx, orderID, text)
}

func (f *fakeOrderService) BuyerAccept(ctx context.Context, orderID int64) error {
	return f.BuyerAcceptFunc(ctx, orderID)
}

func (f *fakeOrderService) BuyerChange(ctx context.Context, orderID int64, in service.ChangeOrderInput) error {
	return f.BuyerChangeFunc(ctx, orderID, in)
}

func (f *fakeOrderService) Cancel(ctx context.Context, orderID int64) error {
	return f.CancelFunc(ctx, orderID)
}

func (f *fakeOrderService) CancelReceive(ctx context.Context, orderID int64) error {
	return f.CancelReceiveFunc(ctx, orderID)
}

func (f *fakeOrderService) Register(ctx context.Context, orderID int64) ([]byte, error) {
	return f.RegisterFunc(ctx, orderID)
}

func (f *fakeOrderService) Details(ctx context.Context, orderID int64) (entities.OrderSnapshot, error) {
	return f.DetailsFunc(ctx, orderID)
}

func (f *fakeOrderService) OrdersByBuyer(ctx context.Context, buyerID int64) ([]entities.OrderSummary, error) {
	return f.OrdersByBuyerFunc(ctx, buyerID)
}

func (f *fakeOrderService) OrdersBySeller(ctx context.Context, sellerID int64) ([]entities.OrderSummary, error) {
	return f.OrdersBySellerFunc(ctx, sellerID)
}

func (f *fakeOrderService) ActiveOrdersByBuyerEmail(ctx context.Context, email string) ([]entities.OrderSummary, error) {
	return f.ActiveOrdersByBuyerEmailFunc(ctx, email)
}

func (f *fakeOrderService) ActiveOrdersBySellerEmail(ctx context.Context, email string) ([]entities.OrderSummary, error) {
	return f.ActiveOrdersBySellerEmailFunc(ctx, email)
}

func (f *fakeOrderService) ActionOrders(ctx context.Context, partyID int64, role entities.PartyRole) ([]entities.OrderSummary, error) {
	return f.ActionOrdersFunc(ctx, partyID, role)
}

func (f *fakeOrderService) RegisteredOrderIDs(ctx context.Context, sellerID int64) ([]int64, error) {
	return f.RegisteredOrderIDsFunc(ctx, sellerID)
}

type fakeUserDirectory struct {
	UserByEmailFunc    func(ctx context.Context, email string) (entities.User, error)
	UserByBuyerIDFunc  func(ctx context.Context, buyerID int64) (entities.User, error)
	UserBySellerIDFunc func(ctx context.Context, sellerID int64) (entities.User, error)
}

func (f *fakeUserDirectory) UserByEmail(ctx context.Context, email string) (entities.User, error) {
	return f.UserByEmailFunc(ctx, email)
}

func (f *fakeUserDirectory) UserByBuyerID(ctx context.Context, buyerID int64) (entities.User, error) {
	return f.UserByBuyerIDFunc(ctx, buyerID)
}

func (f *fakeUserDirectory) UserBySellerID(ctx context.Context, sellerID int64) (entities.User, error) {
	return f.UserBySellerIDFunc(ctx, sellerID)
}

type fakeStatsService struct {
	StatsFunc        func(ctx context.Context, partyID int64, role entities.PartyRole) (service.Stats, error)
	FinanceStatsFunc func(ctx context.Context, partyID int64, role entities.PartyRole) (service.FinanceStats, error)
}

func (f *fakeStatsService) Stats(ctx context.Context, partyID int64, role entities.PartyRole) (service.Stats, error) {
	return f.StatsFunc(ctx, partyID, role)
}

func (f *fakeStatsService) FinanceStats(ctx context.Context, partyID int64, role entities.PartyRole) (service.FinanceStats, error) {
	return f.FinanceStatsFunc(ctx, partyID, role)
}

type fakeUserService struct {
	RegisterFunc      func(ctx context.Context, nameFirst, nameLast, email, password string) error
	LoginFunc         func(ctx context.Context, email, password string) (service.Session, error)
	CheckBuyerIDFunc  func(ctx context.Context, userID int64) error
	CheckSellerIDFunc func(ctx context.Context, userID int64) error
	CreateBuyerFunc   func(ctx context.Context, userID int64, details entities.PartyDetails) (int64, error)
	CreateSellerFunc  func(ctx context.Context, userID int64, details entities.PartyDetails) (int64, error)
	BuyerDetailsFunc  func(ctx context.Context, buyerID int64) (entities.Buyer, error)
	SellerDetailsFunc func(ctx context.Context, sellerID int64) (entities.Seller, error)
}

func (f *fakeUserService) Register(ctx context.Context, nameFirst, nameLast, email, password string) error {
	return f.RegisterFunc(ctx, nameFirst, nameLast, email, password)
}

func (f *fakeUserService) Login(ctx context.Context, email, password string) (service.Session, error) {
	return f.LoginFunc(ctx, email, password)
}

func (f *fakeUserService) CheckBuyerID(ctx context.Context, userID int64) error {
	return f.CheckBuyerIDFunc(ctx, userID)
}

func (f *fakeUserService) CheckSellerID(ctx context.Context, userID int64) error {
	return f.CheckSellerIDFunc(ctx, userID)
}

func (f *fakeUserService) CreateBuyer(ctx context.Context, userID int64, details entities.PartyDetails) (int64, error) {
	return f.CreateBuyerFunc(ctx, userID, details)
}

func (f *fakeUserService) CreateSeller(ctx context.Context, userID int64, details entities.PartyDetails) (int64, error) {
	return f.CreateSellerFunc(ctx, userID, details)
}

func (f *fakeUserService) BuyerDetails(ctx context.Context, buyerID int64) (entities.Buyer, error) {
	return f.BuyerDetailsFunc(ctx, buyerID)
}

func (f *fakeUserService) SellerDetails(ctx context.Context, sellerID int64) (entities.Seller, error) {
	return f.SellerDetailsFunc(ctx, sellerID)
}

type fakeProductService struct {
	AddFunc             func(ctx context.Context, p entities.Product) (entities.Product, error)
	GetFunc             func(ctx context.Context, productID int64) (entities.Product, error)
	GetForSellerFunc    func(ctx context.Context, productID, sellerID int64) (entities.Product, error)
	ListForSellerFunc   func(ctx context.Context, sellerID int64) ([]entities.Product, error)
	ListAllFunc         func(ctx context.Context) ([]entities.Product, error)
	DeleteFunc          func(ctx context.Context, productID int64) error
	DeleteForSellerFunc func(ctx context.Context, productID, sellerID int64) error
}

func (f *fakeProductService) Add(ctx context.Context, p entities.Product) (entities.Product, error) {
	return f.AddFunc(ctx, p)
}

func (f *fakeProductService) Get(ctx context.Context, productID int64) (entities.Product, error) {
	return f.GetFunc(ctx, productID)
}

func (f *fakeProductService) GetForSeller(ctx context.Context, productID, sellerID int64) (entities.Product, error) {
	return f.GetForSellerFunc(ctx, productID, sellerID)
}

func (f *fakeProductService) ListForSeller(ctx context.Context, sellerID int64) ([]entities.Product, error) {
	return f.ListForSellerFunc(ctx, sellerID)
}

func (f *fakeProductService) ListAll(ctx context.Context) ([]entities.Product, error) {
	return f.ListAllFunc(ctx)
}

func (f *fakeProductService) Delete(ctx context.Context, productID int64) error {
	return f.DeleteFunc(ctx, productID)
}

func (f *fakeProductService) DeleteForSeller(ctx context.Context, productID, sellerID int64) error {
	return f.DeleteForSellerFunc(ctx, productID, sellerID)
}

type fakeDocumentService struct {
	GenerateInvoiceFunc  func(ctx context.Context, orderID, sellerID int64) (string, error)
	SaveInvoiceFunc      func(ctx context.Context, orderID, sellerID int64, invoiceID string) error
	GenerateDespatchFunc func(ctx context.Context, orderID int64) (map[string]any, error)
	SaveDespatchFunc     func(ctx context.Context, orderID, sellerID int64, despatchID string) error
	ViewInvoicesFunc     func(ctx context.Context, partyID int64, role entities.PartyRole) ([]entities.DocumentRef, error)
	ViewDespatchesFunc   func(ctx context.Context, partyID int64, role entities.PartyRole) ([]entities.DocumentRef, error)
}

func (f *fakeDocumentService) GenerateInvoice(ctx context.Context, orderID, sellerID int64) (string, error) {
	return f.GenerateInvoiceFunc(ctx, orderID, sellerID)
}

func (f *fakeDocumentService) SaveInvoice(ctx context.Context, orderID, sellerID int64, invoiceID string) error {
	return f.SaveInvoiceFunc(ctx, orderID, sellerID, invoiceID)
}

func (f *fakeDocumentService) GenerateDespatch(ctx context.Context, orderID int64) (map[string]any, error) {
	return f.GenerateDespatchFunc(ctx, orderID)
}

func (f *fakeDocumentService) SaveDespatch(ctx context.Context, orderID, sellerID int64, despatchID string) error {
	return f.SaveDespatchFunc(ctx, orderID, sellerID, despatchID)
}

func (f *fakeDocumentService) ViewInvoices(ctx context.Context, partyID int64, role entities.PartyRole) ([]entities.DocumentRef, error) {
	return f.ViewInvoicesFunc(ctx, partyID, role)
}

func (f *fakeDocumentService) ViewDespatches(ctx context.Context, partyID int64, role entities.PartyRole) ([]entities.DocumentRef, error) {
	return f.ViewDespatchesFunc(ctx, partyID, role)
}

type fakeMessageService struct {
	SendFunc         func(ctx context.Context, senderEmail, receiverEmail, content string) (entities.Message, error)
	ViewSentFunc     func(ctx context.Context, email string) ([]entities.Message, error)
	ViewReceivedFunc func(ctx context.Context, email string) ([]entities.Message, error)
	EditFunc         func(ctx context.Context, messageID int64, content string) (entities.Message, error)
	DeleteFunc       func(ctx context.Context, messageID int64) (entities.Message, error)
	ActiveChatsFunc  func(ctx context.Context, email string) ([]entities.Chat, error)
}

func (f *fakeMessageService) Send(ctx context.Context, senderEmail, receiverEmail, content string) (entities.Message, error) {
	return f.SendFunc(ctx, senderEmail, receiverEmail, content)
}

func (f *fakeMessageService) ViewSent(ctx context.Context, email string) ([]entities.Message, error) {
	return f.ViewSentFunc(ctx, email)
}

func (f *fakeMessageService) ViewReceived(ctx context.Context, email string) ([]entities.Message, error) {
	return f.ViewReceivedFunc(ctx, email)
}

func (f *fakeMessageService) Edit(ctx context.Context, messageID int64, content string) (entities.Message, error) {
	return f.EditFunc(ctx, messageID, content)
}

func (f *fakeMessageService) Delete(ctx context.Context, messageID int64) (entities.Message, error) {
	return f.DeleteFunc(ctx, messageID)
}

func (f *fakeMessageService) ActiveChats(ctx context.Context, email string) ([]entities.Chat, error) {
	return f.ActiveChatsFunc(ctx, email)
}
