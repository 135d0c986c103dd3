package repo

import (
	"database/sql"
	"time"

	"github.com/notuna/order-service/internal/entities"
)

type Order struct {
	OrderID         int64          `db:"order_id"`
	OrderDate       sql.NullTime   `db:"order_date"`
	Price           int            `db:"price"`
	PaymentDetails  string         `db:"payment_details"`
	Quantity        int            `db:"quantity"`
	DeliveryAddress string         `db:"delivery_address"`
	ContractData    string         `db:"contract_data"`
	Response        sql.NullString `db:"response"`
	Details         sql.NullString `db:"details"`
	Status          string         `db:"o_status"`
	Buyer           int64          `db:"buyer"`
	Seller          int64          `db:"seller"`
	Product         int64          `db:"product"`
	InvoiceID       sql.NullString `db:"invoice_id"`
	DespatchID      sql.NullString `db:"despatch_id"`
}

type Buyer struct {
	ID      int64  `db:"b_id"`
	Name    string `db:"b_name"`
	Address string `db:"b_address"`
	Phone   string `db:"b_phone_no"`
	Email   string `db:"b_email"`
	Tax     string `db:"b_tax"`
}

type Seller struct {
	ID      int64  `db:"s_id"`
	Name    string `db:"s_name"`
	Address string `db:"s_address"`
	Phone   string `db:"s_phone_no"`
	Email   string `db:"s_email"`
	Tax     string `db:"s_tax"`
}

type Product struct {
	ID          int64         `db:"p2_id"`
	Name        string        `db:"p2_name"`
	Price       int           `db:"p2_price"`
	Tax         string        `db:"p2_tax"`
	Description string        `db:"p2_desc"`
	SellerID    sql.NullInt64 `db:"seller_id"`
}

type User struct {
	ID        int64         `db:"id"`
	NameFirst string        `db:"namefirst"`
	NameLast  string        `db:"namelast"`
	Email     string        `db:"email"`
	Password  string        `db:"password"`
	BuyerID   sql.NullInt64 `db:"b_id"`
	SellerID  sql.NullInt64 `db:"s_id"`
}

type Message struct {
	ID            int64     `db:"message_id"`
	SenderEmail   string    `db:"sender_email"`
	ReceiverEmail string    `db:"receiver_email"`
	Content       string    `db:"content"`
	Timestamp     time.Time `db:"timestamp"`
}

type OrderSummary struct {
	OrderID     int64          `db:"order_id"`
	OrderDate   sql.NullTime   `db:"order_date"`
	Price       int            `db:"price"`
	Quantity    sql.NullInt64  `db:"quantity"`
	Status      string         `db:"o_status"`
	BuyerName   sql.NullString `db:"buyer_name"`
	SellerName  sql.NullString `db:"seller_name"`
	ProductName sql.NullString `db:"product_name"`
}

type StatsRow struct {
	Status    string        `db:"o_status"`
	OrderDate sql.NullTime  `db:"order_date"`
	Price     sql.NullInt64 `db:"price"`
}

type DocumentRef struct {
	OrderID     int64          `db:"order_id"`
	OrderDate   sql.NullTime   `db:"order_date"`
	PartyName   sql.NullString `db:"party_name"`
	Status      string         `db:"o_status"`
	ProductName sql.NullString `db:"product_name"`
	Price       int            `db:"price"`
	DocumentID  string         `db:"document_id"`
}

func OrderToEntity(o Order) entities.Order {
	var date time.Time
	if o.OrderDate.Valid {
		date = o.OrderDate.Time
	}
	return entities.Order{
		ID:              o.OrderID,
		OrderDate:       date,
		Price:           o.Price,
		PaymentDetails:  o.PaymentDetails,
		Quantity:        o.Quantity,
		DeliveryAddress: o.DeliveryAddress,
		ContractData:    o.ContractData,
		Response:        nullStringToString(o.Response),
		Details:         nullStringToString(o.Details),
		Status:          entities.Status(o.Status),
		BuyerID:         o.Buyer,
		SellerID:        o.Seller,
		ProductID:       o.Product,
		InvoiceID:       nullStringToString(o.InvoiceID),
		DespatchID:      nullStringToString(o.DespatchID),
	}
}

func BuyerToEntity(b Buyer) entities.Buyer {
	return entities.Buyer{
		ID: b.ID,
		PartyDetails: entities.PartyDetails{
			Name:    b.Name,
			Address: b.Address,
			Phone:   b.Phone,
			Email:   b.Email,
			TaxID:   b.Tax,
		},
	}
}

func SellerToEntity(s Seller) entities.Seller {
	return entities.Seller{
		ID: s.ID,
		PartyDetails: entities.PartyDetails{
			Name:    s.Name,
			Address: s.Address,
			Phone:   s.Phone,
			Email:   s.Email,
			TaxID:   s.Tax,
		},
	}
}

func ProductToEntity(p Product) entities.Product {
	return entities.Product{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		TaxRate:     p.Tax,
		Description: p.Description,
		SellerID:    nullInt64ToInt64(p.SellerID),
	}
}

func UserToEntity(u User) entities.User {
	return entities.User{
		ID:           u.ID,
		NameFirst:    u.NameFirst,
		NameLast:     u.NameLast,
		Email:        u.Email,
		PasswordHash: u.Password,
		BuyerID:      nullInt64ToInt64(u.BuyerID),
		SellerID:     nullInt64ToInt64(u.SellerID),
	}
}

func MessageToEntity(m Message) entities.Message {
	return entities.Message{
		ID:            m.ID,
		SenderEmail:   m.SenderEmail,
		ReceiverEmail: m.ReceiverEmail,
		Content:       m.Content,
		Timestamp:     m.Timestamp,
	}
}

func OrderSummaryToEntity(o OrderSummary) entities.OrderSummary {
	var date time.Time
	if o.OrderDate.Valid {
		date = o.OrderDate.Time
	}
	return entities.OrderSummary{
		OrderID:     o.OrderID,
		OrderDate:   date,
		Price:       o.Price,
		Quantity:    int(nullInt64ToInt64(o.Quantity)),
		Status:      entities.Status(o.Status),
		BuyerName:   nullStringToString(o.BuyerName),
		SellerName:  nullStringToString(o.SellerName),
		ProductName: nullStringToString(o.ProductName),
	}
}

func StatsRowToEntity(row StatsRow) entities.StatsRow {
	var date time.Time
	if row.OrderDate.Valid {
		date = row.OrderDate.Time
	}
	return entities.StatsRow{
		Status:    entities.Status(row.Status),
		OrderDate: date,
		Price:     int(nullInt64ToInt64(row.Price)),
	}
}

func DocumentRefToEntity(d DocumentRef) entities.DocumentRef {
	var date time.Time
	if d.OrderDate.Valid {
		date = d.OrderDate.Time
	}
	return entities.DocumentRef{
		OrderID:     d.OrderID,
		OrderDate:   date,
		PartyName:   nullStringToString(d.PartyName),
		Status:      entities.Status(d.Status),
		ProductName: nullStringToString(d.ProductName),
		Price:       d.Price,
		DocumentID:  d.DocumentID,
	}
}
