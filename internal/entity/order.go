package domain

import (
	"errors"
	"strings"
	"time"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusReady     OrderStatus = "ready"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusReady, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

var (
	ErrEmptyOrder      = errors.New("order has no items")
	ErrInvalidCustomer = errors.New("invalid customer info")
	ErrInvalidStatus   = errors.New("invalid order status")
)

// OrderItem is a snapshot taken at submission time. Later catalog or
// price edits never reach back into a stored order.
type OrderItem struct {
	ProductID   string `bson:"productId" json:"productId"`
	ProductName string `bson:"productName" json:"productName"`
	Quantity    int    `bson:"quantity" json:"quantity"`
	Price       int64  `bson:"price" json:"price"`
}

type CustomerInfo struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
	Phone string `bson:"phone" json:"phone"`
}

// Validate mirrors the checkout gate: trimmed name and phone non-blank,
// email must at least contain an "@".
func (c CustomerInfo) Validate() error {
	if strings.TrimSpace(c.Name) == "" ||
		!strings.Contains(c.Email, "@") ||
		strings.TrimSpace(c.Phone) == "" {
		return ErrInvalidCustomer
	}
	return nil
}

// Order is constructed once per successful checkout and immutable here
// afterwards; status transitions belong to admin tooling. ID and
// CreatedAt are assigned by the order store.
type Order struct {
	ID                 string       `bson:"_id,omitempty" json:"id,omitempty"`
	Items              []OrderItem  `bson:"items" json:"items"`
	Customer           CustomerInfo `bson:"customer" json:"customer"`
	PickupDate         string       `bson:"pickupDate" json:"pickupDate"`
	PickupTime         string       `bson:"pickupTime" json:"pickupTime"`
	Status             OrderStatus  `bson:"status" json:"status"`
	TotalAmount        int64        `bson:"totalAmount" json:"totalAmount"`
	Notes              string       `bson:"notes,omitempty" json:"notes,omitempty"`
	IsFettisdagenOrder bool         `bson:"isFettisdagenOrder" json:"isFettisdagenOrder"`
	CreatedAt          time.Time    `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

func (o *Order) Validate() error {
	if len(o.Items) == 0 {
		return ErrEmptyOrder
	}
	if !o.Status.Valid() {
		return ErrInvalidStatus
	}
	return o.Customer.Validate()
}
