package handler

import (
	"github.com/notuna/order-service/internal/entities"
	"github.com/notuna/order-service/internal/service"
)

// CreateOrderRequest is the legacy order payload carrying inline buyer,
// seller and product tuples.
type CreateOrderRequest struct {
	Price           int    `json:"price" validate:"gte=0"`
	PaymentDetails  string `json:"paymentDetails" validate:"required"`
	Quantity        int    `json:"quantity" validate:"required,gte=1"`
	DeliveryAddress string `json:"deliveryAddress" validate:"required"`
	ContractData    string `json:"contractData" validate:"required"`

	BuyerCompanyName string `json:"buyerCompanyName" validate:"required"`
	BuyerAddress     string `json:"buyerAddress" validate:"required"`
	BuyerPhoneNumber string `json:"buyerPhoneNumber" validate:"required"`
	BuyerEmail       string `json:"buyerEmail" validate:"required,email"`
	BuyerTax         string `json:"buyerTax" validate:"required"`

	SellerCompanyName string `json:"sellerCompanyName" validate:"required"`
	SellerAddress     string `json:"sellerAddress" validate:"required"`
	SellerPhoneNumber string `json:"sellerPhoneNumber" validate:"required"`
	SellerEmail       string `json:"sellerEmail" validate:"required,email"`
	SellerTax         string `json:"sellerTax" validate:"required"`

	ProductID   int64  `json:"productId" validate:"required"`
	ProductTax  string `json:"productTax" validate:"required"`
	ProductDesc string `json:"productDesc" validate:"required"`
}

// CreateOrderV2Request references registered parties and a catalog product.
type CreateOrderV2Request struct {
	BuyerID         int64  `json:"buyerId" validate:"required"`
	SellerID        int64  `json:"sellerId" validate:"required"`
	ProductID       int64  `json:"productId" validate:"required"`
	Quantity        int    `json:"quantity" validate:"required,gte=1"`
	PaymentDetails  string `json:"paymentDetails" validate:"required"`
	DeliveryAddress string `json:"deliveryAddress" validate:"required"`
	ContractData    string `json:"contractData" validate:"required"`
}

// ChangeOrderRequest replaces the negotiable order terms.
type ChangeOrderRequest struct {
	BuyerCompanyName  string `json:"buyerCompanyName"`
	SellerCompanyName string `json:"sellerCompanyName"`
	ProductID         int64  `json:"productId"`
	PaymentDetails    string `json:"paymentDetails"`
	DeliveryAddress   string `json:"deliveryAddress"`
	ContractData      string `json:"contractData"`
	Quantity          int    `json:"quantity"`
	Price             int    `json:"price"`
}

// SellerResponseRequest carries the seller's negotiation message. Both the
// create-response and add-detail routes decode it; either field name works.
type SellerResponseRequest struct {
	Response     string `json:"response"`
	ResponseText string `json:"responseText"`
}

func (r SellerResponseRequest) Text() string {
	if r.ResponseText != "" {
		return r.ResponseText
	}
	return r.Response
}

// OrderCreatedResponse acknowledges a new order.
type OrderCreatedResponse struct {
	Message string `json:"message"`
	OrderID int64  `json:"orderId"`
}

// OrderSummary is a listing row.
type OrderSummary struct {
	OrderID     int64  `json:"order_id"`
	OrderDate   string `json:"order_date"`
	Price       int    `json:"price"`
	Quantity    int    `json:"quantity"`
	Status      string `json:"status"`
	BuyerName   string `json:"buyer_name"`
	SellerName  string `json:"seller_name"`
	ProductName string `json:"product_name"`
}

// OrdersResponse wraps every listing endpoint.
type OrdersResponse struct {
	Orders []OrderSummary `json:"orders"`
}

// PartyJSON is the party block of an order snapshot.
type PartyJSON struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Tax     string `json:"tax"`
}

// SnapshotProductJSON is the product block of an order snapshot.
type SnapshotProductJSON struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Tax         string `json:"tax"`
}

// OrderSnapshotResponse is the registered-order details payload.
type OrderSnapshotResponse struct {
	OrderID         int64               `json:"OrderId"`
	OrderDate       string              `json:"OrderDate"`
	Price           int                 `json:"Price"`
	PaymentDetails  string              `json:"PaymentDetails"`
	Quantity        int                 `json:"Quantity"`
	DeliveryAddress string              `json:"DeliveryAddress"`
	ContractData    string              `json:"ContractData"`
	Response        string              `json:"Response"`
	Details         string              `json:"Details"`
	OrderStatus     string              `json:"OrderStatus"`
	Buyer           PartyJSON           `json:"Buyer"`
	Seller          PartyJSON           `json:"Seller"`
	Product         SnapshotProductJSON `json:"Product"`
}

// RegisterUserRequest creates a login identity.
type RegisterUserRequest struct {
	NameFirst string `json:"nameFirst" validate:"required"`
	NameLast  string `json:"nameLast" validate:"required"`
	Email     string `json:"email" validate:"required"`
	Password  string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SessionDetails is the login payload, keyed the way the frontend expects.
type SessionDetails struct {
	Email     string `json:"email"`
	NameFirst string `json:"namefirst"`
	NameLast  string `json:"namelast"`
	ID        int64  `json:"id"`
	BuyerID   int64  `json:"b_id"`
	SellerID  int64  `json:"s_id"`
	Token     string `json:"token"`
}

type LoginResponse struct {
	SessionDetails SessionDetails `json:"sessionDetails"`
}

// CreateBuyerRequest links a buyer identity to a user account.
type CreateBuyerRequest struct {
	UserID           int64  `json:"id" validate:"required"`
	BuyerCompanyName string `json:"buyerCompanyName" validate:"required"`
	BuyerAddress     string `json:"buyerAddress" validate:"required"`
	BuyerPhoneNumber string `json:"buyerPhoneNumber" validate:"required"`
	BuyerEmail       string `json:"buyerEmail" validate:"required,email"`
	BuyerTax         string `json:"buyerTax" validate:"required"`
}

type CreateSellerRequest struct {
	UserID            int64  `json:"id" validate:"required"`
	SellerCompanyName string `json:"sellerCompanyName" validate:"required"`
	SellerAddress     string `json:"sellerAddress" validate:"required"`
	SellerPhoneNumber string `json:"sellerPhoneNumber" validate:"required"`
	SellerEmail       string `json:"sellerEmail" validate:"required,email"`
	SellerTax         string `json:"sellerTax" validate:"required"`
}

// PartyDetailsResponse describes a buyer or seller.
type PartyDetailsResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	Tax         string `json:"tax"`
}

// AddProductRequest creates a catalog product.
type AddProductRequest struct {
	Name        string `json:"name" validate:"required"`
	Price       int    `json:"price" validate:"required,gte=0"`
	Tax         string `json:"tax" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// DeleteProductRequest identifies the product to remove.
type DeleteProductRequest struct {
	ID        int64 `json:"id"`
	ProductID int64 `json:"productId"`
}

// Product mirrors the catalog row shape.
type Product struct {
	ID          int64  `json:"p2_id"`
	Name        string `json:"p2_name"`
	Price       int    `json:"p2_price"`
	Tax         string `json:"p2_tax"`
	Description string `json:"p2_desc"`
	SellerID    int64  `json:"seller_id,omitempty"`
}

// DocumentRef is a saved invoice or despatch listing row.
type DocumentRef struct {
	OrderID     int64  `json:"order_id"`
	OrderDate   string `json:"order_date"`
	PartyName   string `json:"party_name"`
	Status      string `json:"status"`
	ProductName string `json:"product_name"`
	Price       int    `json:"price"`
	DocumentID  string `json:"document_id"`
}

// SendMessageRequest delivers a message to another user.
type SendMessageRequest struct {
	ReceiverEmail string `json:"receiver_email" validate:"required,email"`
	Content       string `json:"content" validate:"required"`
}

type EditMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

// Message is the wire shape of one message row.
type Message struct {
	MessageID     int64  `json:"message_id"`
	SenderEmail   string `json:"sender_email"`
	ReceiverEmail string `json:"receiver_email"`
	Content       string `json:"content"`
	Timestamp     string `json:"timestamp"`
}

// Chat is a distinct conversation pair.
type Chat struct {
	SenderEmail   string `json:"sender_email"`
	ReceiverEmail string `json:"receiver_email"`
}

func CreateOrderRequestToInput(req CreateOrderRequest) service.CreateOrderInput {
	return service.CreateOrderInput{
		Price:           req.Price,
		PaymentDetails:  req.PaymentDetails,
		Quantity:        req.Quantity,
		DeliveryAddress: req.DeliveryAddress,
		ContractData:    req.ContractData,
		Buyer: entities.PartyDetails{
			Name:    req.BuyerCompanyName,
			Address: req.BuyerAddress,
			Phone:   req.BuyerPhoneNumber,
			Email:   req.BuyerEmail,
			TaxID:   req.BuyerTax,
		},
		Seller: entities.PartyDetails{
			Name:    req.SellerCompanyName,
			Address: req.SellerAddress,
			Phone:   req.SellerPhoneNumber,
			Email:   req.SellerEmail,
			TaxID:   req.SellerTax,
		},
		Product: entities.Product{
			ID:          req.ProductID,
			TaxRate:     req.ProductTax,
			Description: req.ProductDesc,
		},
	}
}

func OrderSummaryToJSON(o entities.OrderSummary) OrderSummary {
	return OrderSummary{
		OrderID:     o.OrderID,
		OrderDate:   isoDate(o.OrderDate),
		Price:       o.Price,
		Quantity:    o.Quantity,
		Status:      string(o.Status),
		BuyerName:   o.BuyerName,
		SellerName:  o.SellerName,
		ProductName: o.ProductName,
	}
}

func OrderSummariesToJSON(orders []entities.OrderSummary) OrdersResponse {
	res := OrdersResponse{Orders: make([]OrderSummary, 0, len(orders))}
	for _, o := range orders {
		res.Orders = append(res.Orders, OrderSummaryToJSON(o))
	}
	return res
}

func SnapshotToJSON(snap entities.OrderSnapshot) OrderSnapshotResponse {
	return OrderSnapshotResponse{
		OrderID:         snap.ID,
		OrderDate:       isoDate(snap.OrderDate),
		Price:           snap.Price,
		PaymentDetails:  snap.PaymentDetails,
		Quantity:        snap.Quantity,
		DeliveryAddress: snap.DeliveryAddress,
		ContractData:    snap.ContractData,
		Response:        snap.Response,
		Details:         snap.Details,
		OrderStatus:     string(snap.Status),
		Buyer:           PartyDetailsToJSON(snap.Buyer.PartyDetails),
		Seller:          PartyDetailsToJSON(snap.Seller.PartyDetails),
		Product: SnapshotProductJSON{
			ID:          snap.Product.ID,
			Name:        snap.Product.Name,
			Description: snap.Product.Description,
			Tax:         snap.Product.TaxRate,
		},
	}
}

func PartyDetailsToJSON(d entities.PartyDetails) PartyJSON {
	return PartyJSON{
		Name:    d.Name,
		Address: d.Address,
		Phone:   d.Phone,
		Email:   d.Email,
		Tax:     d.TaxID,
	}
}

func ProductEntityToJSON(p entities.Product) Product {
	return Product{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Tax:         p.TaxRate,
		Description: p.Description,
		SellerID:    p.SellerID,
	}
}

func ProductsToJSON(products []entities.Product) []Product {
	res := make([]Product, 0, len(products))
	for _, p := range products {
		res = append(res, ProductEntityToJSON(p))
	}
	return res
}

func DocumentRefToJSON(ref entities.DocumentRef) DocumentRef {
	return DocumentRef{
		OrderID:     ref.OrderID,
		OrderDate:   isoDate(ref.OrderDate),
		PartyName:   ref.PartyName,
		Status:      string(ref.Status),
		ProductName: ref.ProductName,
		Price:       ref.Price,
		DocumentID:  ref.DocumentID,
	}
}

func DocumentRefsToJSON(refs []entities.DocumentRef) []DocumentRef {
	res := make([]DocumentRef, 0, len(refs))
	for _, ref := range refs {
		res = append(res, DocumentRefToJSON(ref))
	}
	return res
}

func MessageEntityToJSON(m entities.Message) Message {
	return Message{
		MessageID:     m.ID,
		SenderEmail:   m.SenderEmail,
		ReceiverEmail: m.ReceiverEmail,
		Content:       m.Content,
		Timestamp:     m.Timestamp.UTC().Format(timestampLayout),
	}
}

func MessagesToJSON(messages []entities.Message) []Message {
	res := make([]Message, 0, len(messages))
	for _, m := range messages {
		res = append(res, MessageEntityToJSON(m))
	}
	return res
}

func ChatsToJSON(chats []entities.Chat) []Chat {
	res := make([]Chat, 0, len(chats))
	for _, c := range chats {
		res = append(res, Chat{SenderEmail: c.SenderEmail, ReceiverEmail: c.ReceiverEmail})
	}
	return res
}

// StatsToJSON flattens the status counts next to totalOrders, keeping the
// response shape chart components consume directly.
func StatsToJSON(stats service.Stats) map[string]any {
	res := make(map[string]any, len(stats.Counts)+2)
	res["totalOrders"] = stats.TotalOrders
	for status, count := range stats.Counts {
		res[string(status)] = count
	}
	res["orders"] = stats.Orders
	return res
}

// FinanceStatsToJSON keeps counts and revenue nested, unlike StatsToJSON.
func FinanceStatsToJSON(stats service.FinanceStats) map[string]any {
	counts := make(map[string]int, len(stats.Counts))
	for status, count := range stats.Counts {
		counts[string(status)] = count
	}
	revenue := make(map[string]int, len(stats.Revenue))
	for status, total := range stats.Revenue {
		revenue[string(status)] = total
	}
	return map[string]any{
		"totalOrders":   stats.TotalOrders,
		"statusCounts":  counts,
		"statusRevenue": revenue,
		"orders":        stats.Orders,
	}
}
