package models

import (
	"time"
)

// Customer is a CRM customer. Rows are hard-deleted by the cleanup job,
// so there is no soft-delete column on purpose.
type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:191;not null" json:"name"`
	Email     string    `gorm:"size:191;uniqueIndex;not null" json:"email"`
	Phone     string    `gorm:"size:32" json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Product struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:191;not null" json:"name"`
	Price     float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Stock     int       `gorm:"default:0" json:"stock"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Order references its customer by id only. Deleting a customer leaves its
// orders behind; whether those rows are ever purged is up to the operator.
type Order struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CustomerID  uint      `gorm:"index;not null" json:"customer_id"`
	OrderDate   time.Time `gorm:"index;not null" json:"order_date"`
	TotalAmount float64   `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	Products    []Product `gorm:"many2many:order_products" json:"products,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
