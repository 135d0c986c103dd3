package service_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/notuna/order-service/internal/entities"
	"github.com/notuna/order-service/internal/ubl"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeTxManager runs the callback inline, without a database.
type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type publishedEvent struct {
	OrderID  int64
	From, To entities.Status
}

// fakePublisher records status-change events for assertions.
type fakePublisher struct {
	events []publishedEvent
}

func (p *fakePublisher) PublishStatusChange(_ context.Context, orderID int64, from, to entities.Status) {
	p.events = append(p.events, publishedEvent{OrderID: orderID, From: from, To: to})
}

// fakeOrderRepo implements service.OrderRepo with overridable function
// fields. Unset methods panic, flagging calls the test did not expect.
type fakeOrderRepo struct {
	GetOrderFunc          func(ctx context.Context, orderID int64) (entities.Order, error)
	GetSnapshotFunc       func(ctx context.Context, orderID int64) (entities.OrderSnapshot, error)
	OrderExistsFunc       func(ctx context.Context, orderID int64) (bool, error)
	CreateOrderFunc       func(ctx context.Context, o entities.Order) (int64, error)
	TransitionStatusFunc  func(ctx context.Context, orderID int64, from, to entities.Status) (bool, error)
	SetStatusFunc         func(ctx context.Context, orderID int64, to entities.Status) (bool, error)
	AppendResponseFunc    func(ctx context.Context, orderID int64, response string) (bool, error)
	UpdateOrderFunc       func(ctx context.Context, o entities.Order) (bool, error)
	DeleteCancelledFunc   func(ctx context.Context, orderID int64) (bool, error)
	UpsertBuyerFunc       func(ctx context.Context, d entities.PartyDetails) (int64, error)
	UpsertSellerFunc      func(ctx context.Context, d entities.PartyDetails) (int64, error)
	FindBuyerIDByNameFunc func(ctx context.Context, name string) (int64, error)

	FindSellerIDByNameFunc     func(ctx context.Context, name string) (int64, error)
	ResolveSharedProductFunc   func(ctx context.Context, p entities.Product) (int64, error)
	GetSellerProductFunc       func(ctx context.Context, productID, sellerID int64) (entities.Product, error)
	ProductBelongsToSellerFunc func(ctx context.Context, productID, sellerID int64) (bool, error)

	ListOrdersByBuyerFunc             func(ctx context.Context, buyerID int64) ([]entities.OrderSummary, error)
	ListOrdersBySellerFunc            func(ctx context.Context, sellerID int64) ([]entities.OrderSummary, error)
	ListActiveOrdersByBuyerEmailFunc  func(ctx context.Context, email string) ([]entities.OrderSummary, error)
	ListActiveOrdersBySellerEmailFunc func(ctx context.Context, email string) ([]entities.OrderSummary, error)
	ListActionOrdersFunc              func(ctx context.Context, partyID int64, role entities.PartyRole) ([]entities.OrderSummary, error)
	ListRegisteredOrderIDsFunc        func(ctx context.Context, sellerID int64) ([]int64, error)
}

func (f *fakeOrderRepo) GetOrder(ctx context.Context, orderID int64) (entities.Order, error) {
	return f.GetOrderFunc(ctx, orderID)
}

func (f *fakeOrderRepo) GetSnapshot(ctx context.Context, orderID int64) (entities.OrderSnapshot, error) {
	return f.GetSnapshotFunc(ctx, orderID)
}

func (f *fakeOrderRepo) OrderExists(ctx context.Context, orderID int64) (bool, error) {
	return f.OrderExistsFunc(ctx, orderID)
}

func (f *fakeOrderRepo) CreateOrder(ctx context.Context, o entities.Order) (int64, error) {
	return f.CreateOrderFunc(ctx, o)
}

func (f *fakeOrderRepo) TransitionStatus(ctx context.Context, orderID int64, from, to entities.Status) (bool, error) {
	return f.TransitionStatusFunc(ctx, orderID, from, to)
}

func (f *fakeOrderRepo) SetStatus(ctx context.Context, orderID int64, to entities.Status) (bool, error) {
	return f.SetStatusFunc(ctx, orderID, to)
}

func (f *fakeOrderRepo) AppendResponse(ctx context.Context, orderID int64, response string) (bool, error) {
	return f.AppendResponseFunc(ctx, orderID, response)
}

func (f *fakeOrderRepo) UpdateOrder(ctx context.Context, o entities.Order) (bool, error) {
	return f.UpdateOrderFunc(ctx, o)
}

func (f *fakeOrderRepo) DeleteCancelled(ctx context.Context, orderID int64) (bool, error) {
	return f.DeleteCancelledFunc(ctx, orderID)
}

func (f *fakeOrderRepo) UpsertBuyer(ctx context.Context, d entities.PartyDetails) (int64, error) {
	return f.UpsertBuyerFunc(ctx, d)
}

func (f *fakeOrderRepo) UpsertSeller(ctx context.Context, d entities.PartyDetails) (int64, error) {
	return f.UpsertSellerFunc(ctx, d)
}

func (f *fakeOrderRepo) FindBuyerIDByName(ctx context.Context, name string) (int64, error) {
	return f.FindBuyerIDByNameFunc(ctx, name)
}

func (f *fakeOrderRepo) FindSellerIDByName(ctx context.Context, name string) (int64, error) {
	return f.FindSellerIDByNameFunc(ctx, name)
}

func (f *fakeOrderRepo) ResolveSharedProduct(ctx context.Context, p entities.Product) (int64, error) {
	return f.ResolveSharedProductFunc(ctx, p)
}

func (f *fakeOrderRepo) GetSellerProduct(ctx context.Context, productID, sellerID int64) (entities.Product, error) {
	return f.GetSellerProductFunc(ctx, productID, sellerID)
}

func (f *fakeOrderRepo) ProductBelongsToSeller(ctx context.Context, productID, sellerID int64) (bool, error) {
	return f.ProductBelongsToSellerFunc(ctx, productID, sellerID)
}

func (f *fakeOrderRepo) ListOrdersByBuyer(ctx context.Context, buyerID int64) ([]entities.OrderSummary, error) {
	return f.ListOrdersByBuyerFunc(ctx, buyerID)
}

func (f *fakeOrderRepo) ListOrdersBySeller(ctx context.Context, sellerID int64) ([]entities.OrderSummary, error) {
	return f.ListOrdersBySellerFunc(ctx, sellerID)
}

func (f *fakeOrderRepo) ListActiveOrdersByBuyerEmail(ctx context.Context, email string) ([]entities.OrderSummary, error) {
	return f.ListActiveOrdersByBuyerEmailFunc(ctx, email)
}

func (f *fakeOrderRepo) ListActiveOrdersBySellerEmail(ctx context.Context, email string) ([]entities.OrderSummary, error) {
	return f.ListActiveOrdersBySellerEmailFunc(ctx, email)
}

func (f *fakeOrderRepo) ListActionOrders(ctx context.Context, partyID int64, role entities.PartyRole) ([]entities.OrderSummary, error) {
	return f.ListActionOrdersFunc(ctx, partyID, role)
}

func (f *fakeOrderRepo) ListRegisteredOrderIDs(ctx context.Context, sellerID int64) ([]int64, error) {
	return f.ListRegisteredOrderIDsFunc(ctx, sellerID)
}

type fakeStatsRepo struct {
	ListStatsRowsFunc func(ctx context.Context, partyID int64, role entities.PartyRole) ([]entities.StatsRow, error)
}

func (f *fakeStatsRepo) ListStatsRows(ctx context.Context, partyID int64, role entities.PartyRole) ([]entities.StatsRow, error) {
	return f.ListStatsRowsFunc(ctx, partyID, role)
}

type fakeUserRepo struct {
	CreateUserFunc        func(ctx context.Context, u entities.User) (int64, error)
	GetUserByEmailFunc    func(ctx context.Context, email string) (entities.User, error)
	GetUserByIDFunc       func(ctx context.Context, userID int64) (entities.User, error)
	GetUserByBuyerIDFunc  func(ctx context.Context, buyerID int64) (entities.User, error)
	GetUserBySellerIDFunc func(ctx context.Context, sellerID int64) (entities.User, error)
	LinkBuyerFunc         func(ctx context.Context, userID, buyerID int64) error
	LinkSellerFunc        func(ctx context.Context, userID, sellerID int64) error
	UpsertBuyerFunc       func(ctx context.Context, d entities.PartyDetails) (int64, error)
	UpsertSellerFunc      func(ctx context.Context, d entities.PartyDetails) (int64, error)
	GetBuyerFunc          func(ctx context.Context, buyerID int64) (entities.Buyer, error)
	GetSellerFunc         func(ctx context.Context, sellerID int64) (entities.Seller, error)
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, u entities.User) (int64, error) {
	return f.CreateUserFunc(ctx, u)
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (entities.User, error) {
	return f.GetUserByEmailFunc(ctx, email)
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, userID int64) (entities.User, error) {
	return f.GetUserByIDFunc(ctx, userID)
}

func (f *fakeUserRepo) GetUserByBuyerID(ctx context.Context, buyerID int64) (entities.User, error) {
	return f.GetUserByBuyerIDFunc(ctx, buyerID)
}

func (f *fakeUserRepo) GetUserBySellerID(ctx context.Context, sellerID int64) (entities.User, error) {
	return f.GetUserBySellerIDFunc(ctx, sellerID)
}

func (f *fakeUserRepo) LinkBuyer(ctx context.Context, userID, buyerID int64) error {
	return f.LinkBuyerFunc(ctx, userID, buyerID)
}

func (f *fakeUserRepo) LinkSeller(ctx context.Context, userID, sellerID int64) error {
	return f.LinkSellerFunc(ctx, userID, sellerID)
}

func (f *fakeUserRepo) UpsertBuyer(ctx context.Context, d entities.PartyDetails) (int64, error) {
	return f.UpsertBuyerFunc(ctx, d)
}

func (f *fakeUserRepo) UpsertSeller(ctx context.Context, d entities.PartyDetails) (int64, error) {
	return f.UpsertSellerFunc(ctx, d)
}

func (f *fakeUserRepo) GetBuyer(ctx context.Context, buyerID int64) (entities.Buyer, error) {
	return f.GetBuyerFunc(ctx, buyerID)
}

func (f *fakeUserRepo) GetSeller(ctx context.Context, sellerID int64) (entities.Seller, error) {
	return f.GetSellerFunc(ctx, sellerID)
}

type fakeDocumentRepo struct {
	GetOrderFunc         func(ctx context.Context, orderID int64) (entities.Order, error)
	GetSnapshotFunc      func(ctx context.Context, orderID int64) (entities.OrderSnapshot, error)
	SaveInvoiceIDFunc    func(ctx context.Context, orderID int64, invoiceID string) (bool, error)
	SaveDespatchIDFunc   func(ctx context.Context, orderID int64, despatchID string) (bool, error)
	ListDocumentRefsFunc func(ctx context.Context, partyID int64, role entities.PartyRole, doc entities.DocumentKind) ([]entities.DocumentRef, error)
}

func (f *fakeDocumentRepo) GetOrder(ctx context.Context, orderID int64) (entities.Order, error) {
	return f.GetOrderFunc(ctx, orderID)
}

func (f *fakeDocumentRepo) GetSnapshot(ctx context.Context, orderID int64) (entities.OrderSnapshot, error) {
	return f.GetSnapshotFunc(ctx, orderID)
}

func (f *fakeDocumentRepo) SaveInvoiceID(ctx context.Context, orderID int64, invoiceID string) (bool, error) {
	return f.SaveInvoiceIDFunc(ctx, orderID, invoiceID)
}

func (f *fakeDocumentRepo) SaveDespatchID(ctx context.Context, orderID int64, despatchID string) (bool, error) {
	return f.SaveDespatchIDFunc(ctx, orderID, despatchID)
}

func (f *fakeDocumentRepo) ListDocumentRefs(ctx context.Context, partyID int64, role entities.PartyRole, doc entities.DocumentKind) ([]entities.DocumentRef, error) {
	return f.ListDocumentRefsFunc(ctx, partyID, role, doc)
}

type fakeDocumentsAPI struct {
	GenerateInvoiceFunc  func(ctx context.Context, invoiceXML []byte) (string, error)
	GenerateDespatchFunc func(ctx context.Context, payload ubl.DespatchRequest) (map[string]any, error)
}

func (f *fakeDocumentsAPI) GenerateInvoice(ctx context.Context, invoiceXML []byte) (string, error) {
	return f.GenerateInvoiceFunc(ctx, invoiceXML)
}

func (f *fakeDocumentsAPI) GenerateDespatch(ctx context.Context, payload ubl.DespatchRequest) (map[string]any, error) {
	return f.GenerateDespatchFunc(ctx, payload)
}

type fakeMessageRepo struct {
	CreateMessageFunc        func(ctx context.Context, m entities.Message) (entities.Message, error)
	ListSentMessagesFunc     func(ctx context.Context, senderEmail string) ([]entities.Message, error)
	ListReceivedMessagesFunc func(ctx context.Context, receiverEmail string) ([]entities.Message, error)
	UpdateMessageFunc        func(ctx context.Context, messageID int64, content string, ts time.Time) (entities.Message, error)
	DeleteMessageFunc        func(ctx context.Context, messageID int64) (entities.Message, error)
	ListChatsFunc            func(ctx context.Context, email string) ([]entities.Chat, error)
}

func (f *fakeMessageRepo) CreateMessage(ctx context.Context, m entities.Message) (entities.Message, error) {
	return f.CreateMessageFunc(ctx, m)
}

func (f *fakeMessageRepo) ListSentMessages(ctx context.Context, senderEmail string) ([]entities.Message, error) {
	return f.ListSentMessagesFunc(ctx, senderEmail)
}

func (f *fakeMessageRepo) ListReceivedMessages(ctx context.Context, receiverEmail string) ([]entities.Message, error) {
	return f.ListReceivedMessagesFunc(ctx, receiverEmail)
}

func (f *fakeMessageRepo) UpdateMessage(ctx context.Context, messageID int64, content string, ts time.Time) (entities.Message, error) {
	return f.UpdateMessageFunc(ctx, messageID, content, ts)
}

func (f *fakeMessageRepo) DeleteMessage(ctx context.Context, messageID int64) (entities.Message, error) {
	return f.DeleteMessageFunc(ctx, messageID)
}

func (f *fakeMessageRepo) ListChats(ctx context.Context, email string) ([]entities.Chat, error) {
	return f.ListChatsFunc(ctx, email)
}

type fakeUserFinder struct {
	GetUserByEmailFunc func(ctx context.Context, email string) (entities.User, error)
}

func (f *fakeUserFinder) GetUserByEmail(ctx context.Context, email string) (entities.User, error) {
	return f.GetUserByEmailFunc(ctx, email)
}

type fakeProductRepo struct {
	CreateProductFunc       func(ctx context.Context, p entities.Product) (entities.Product, error)
	GetProductFunc          func(ctx context.Context, productID int64) (entities.Product, error)
	GetSellerProductFunc    func(ctx context.Context, productID, sellerID int64) (entities.Product, error)
	ListSellerProductsFunc  func(ctx context.Context, sellerID int64) ([]entities.Product, error)
	ListProductsFunc        func(ctx context.Context) ([]entities.Product, error)
	DeleteSellerProductFunc func(ctx context.Context, productID, sellerID int64) (bool, error)
	DeleteProductFunc       func(ctx context.Context, productID int64) (bool, error)
	SellerExistsFunc        func(ctx context.Context, sellerID int64) (bool, error)
}

func (f *fakeProductRepo) CreateProduct(ctx context.Context, p entities.Product) (entities.Product, error) {
	return f.CreateProductFunc(ctx, p)
}

func (f *fakeProductRepo) GetProduct(ctx context.Context, productID int64) (entities.Product, error) {
	return f.GetProductFunc(ctx, productID)
}

func (f *fakeProductRepo) GetSellerProduct(ctx context.Context, productID, sellerID int64) (entities.Product, error) {
	return f.GetSellerProductFunc(ctx, productID, sellerID)
}

func (f *fakeProductRepo) ListSellerProducts(ctx context.Context, sellerID int64) ([]entities.Product, error) {
	return f.ListSellerProductsFunc(ctx, sellerID)
}

func (f *fakeProductRepo) ListProducts(ctx context.Context) ([]entities.Product, error) {
	return f.ListProductsFunc(ctx)
}

func (f *fakeProductRepo) DeleteSellerProduct(ctx context.Context, productID, sellerID int64) (bool, error) {
	return f.DeleteSellerProductFunc(ctx, productID, sellerID)
}

func (f *fakeProductRepo) DeleteProduct(ctx context.Context, productID int64) (bool, error) {
	return f.DeleteProductFunc(ctx, productID)
}

func (f *fakeProductRepo) SellerExists(ctx context.Context, sellerID int64) (bool, error) {
	return f.SellerExistsFunc(ctx, sellerID)
}
