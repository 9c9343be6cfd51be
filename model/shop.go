package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a coffee shop catalog entry.
type Product struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"size:128;not null" json:"name"`
	Description string          `gorm:"size:255;not null" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Image       string          `gorm:"size:255;not null" json:"image"`
}

func (Product) TableName() string { return TableProduct }

// Order statuses as stored by the application.
const (
	OrderStatusCompleted = "finalizado"
	OrderStatusInCart    = "carrinho"
)

type Order struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	TotalAmount   decimal.Decimal `gorm:"column:total_amount;type:decimal(10,2);not null" json:"total_amount"`
	TotalQuantity int             `gorm:"column:total_quantity;not null" json:"total_quantity"`
	Status        string          `gorm:"column:status;size:32;not null" json:"status"`
	UserID        int64           `gorm:"column:userId;index;not null" json:"user_id"`
	UpdatedAt     time.Time       `gorm:"column:updated_at" json:"updated_at"`
}

func (Order) TableName() string { return TableOrder }

type OrderItem struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Quantity  int             `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:decimal(10,2);not null" json:"unit_price"`
	Price     decimal.Decimal `gorm:"column:price;type:decimal(10,2);not null" json:"price"`
	Total     decimal.Decimal `gorm:"column:total;type:decimal(10,2);not null" json:"total"`
	OrderID   int64           `gorm:"column:orderId;index;not null" json:"order_id"`
	ProductID int64           `gorm:"column:productId;not null" json:"product_id"`
}

func (OrderItem) TableName() string { return TableOrderItem }

type ShoppingCart struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"column:userId;index;not null" json:"user_id"`
}

func (ShoppingCart) TableName() string { return TableShoppingCart }

type ShoppingCartItem struct {
	ID             int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Quantity       int   `gorm:"column:quantity;not null" json:"quantity"`
	ShoppingCartID int64 `gorm:"column:shoppingCartId;index;not null" json:"shopping_cart_id"`
	ProductID      int64 `gorm:"column:productId;not null" json:"product_id"`
}

func (ShoppingCartItem) TableName() string { return TableShoppingCartItem }
