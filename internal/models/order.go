package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus is a two-value toggle; there is no terminal state other than
// explicit deletion.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusCompleted OrderStatus = "completed"
)

// Toggle returns the other status value.
func (s OrderStatus) Toggle() OrderStatus {
	if s == StatusCompleted {
		return StatusPending
	}
	return StatusCompleted
}

// OrderItem is a (product, quantity) pair within an order.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"product_id" json:"product_id"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// Order is a set of line items placed by a staff account against a table.
type Order struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TableID   primitive.ObjectID `bson:"table_id" json:"table_id"`
	AccountID primitive.ObjectID `bson:"account_id" json:"account_id"`
	Items     []OrderItem        `bson:"items" json:"items"`
	Status    OrderStatus        `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// ResolvedItem expands a line item with its product. Product is null when
// the reference no longer resolves.
type ResolvedItem struct {
	Product  *Product `json:"product"`
	Quantity int      `json:"quantity"`
}

// ResolvedOrder expands an order's references into full sub-documents for
// response purposes. Any reference that no longer resolves is null.
type ResolvedOrder struct {
	ID        primitive.ObjectID `json:"id"`
	Table     *Table             `json:"table"`
	Account   *Account           `json:"account"`
	Items     []ResolvedItem     `json:"items"`
	Status    OrderStatus        `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
}

// CreateOrderItem is a line item as submitted by the client.
type CreateOrderItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CreateOrderRequest is the body of POST /order. The placing account comes
// from the bearer token, not the body.
type CreateOrderRequest struct {
	TableID string            `json:"tableId"`
	Items   []CreateOrderItem `json:"items"`
}

// Validate checks the create-order request before anything touches storage.
func (req *CreateOrderRequest) Validate() error {
	if req.TableID == "" {
		return fmt.Errorf("tableId is required")
	}
	if len(req.Items) == 0 {
		return fmt.Errorf("items cannot be empty")
	}
	for i, item := range req.Items {
		if item.ProductID == "" {
			return fmt.Errorf("items[%d].productId is required", i)
		}
		if item.Quantity < 1 {
			return fmt.Errorf("items[%d].quantity must be at least 1", i)
		}
	}
	return nil
}
