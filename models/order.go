package models

import "time"

const OrderStatusPaid = "paid"

type Order struct {
	ID            uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	CustomerName  *string   `json:"customer_name"`
	CustomerPhone *string   `json:"customer_phone"`
	Subtotal      float64   `json:"subtotal" gorm:"type:decimal(10,2);not null"`
	Discount      float64   `json:"discount" gorm:"type:decimal(10,2);default:0.0"`
	Taxable       float64   `json:"taxable" gorm:"type:decimal(10,2);not null"`
	VAT           float64   `json:"vat" gorm:"type:decimal(10,2);not null"`
	Total         float64   `json:"total" gorm:"type:decimal(10,2);not null"`
	Status        string    `json:"status" gorm:"type:varchar(20);default:'paid'"`
	CreatedAt     time.Time `json:"created_at" gorm:"index"`

	Items []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem snapshots the service name and price at the time of sale.
type OrderItem struct {
	ID        uint    `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID   uint    `json:"-" gorm:"index;not null"`
	ServiceID uint    `json:"service_id" gorm:"index;not null"`
	Name      string  `json:"name" gorm:"not null"`
	UnitPrice float64 `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	Qty       int     `json:"qty" gorm:"default:1"`
	LineTotal float64 `json:"line_total" gorm:"type:decimal(10,2);not null"`
}
