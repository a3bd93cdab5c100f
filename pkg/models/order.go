package models

import (
	"time"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusDelivered  Status = "delivered"
)

var validNext = map[Status]map[Status]bool{
	StatusPending:    {StatusProcessing: true, StatusCancelled: true},
	StatusProcessing: {StatusCompleted: true, StatusCancelled: true},
	StatusCompleted:  {},
	StatusCancelled:  {},
	StatusDelivered:  {},
}

func ValidStatus(s Status) bool {
	_, ok := validNext[s]
	return ok
}

// CanTransition reports whether an order may move from one status to another.
// Completed, cancelled and delivered are terminal.
func CanTransition(from, to Status) bool {
	return validNext[from][to]
}

// OrderItem is an immutable snapshot of a food item at order time. Later
// catalog edits never alter historical orders.
type OrderItem struct {
	FoodID   string  `bson:"food_id" json:"foodId"`
	Name     string  `bson:"name" json:"name"`
	Image    string  `bson:"image" json:"image"`
	Price    float64 `bson:"price" json:"price"`
	Quantity int     `bson:"quantity" json:"quantity"`
}

type Order struct {
	ID                    string      `bson:"_id" json:"id"`
	UserID                string      `bson:"user_id" json:"userId"`
	Name                  string      `bson:"name" json:"name"`
	Address               string      `bson:"address" json:"address"`
	Contact               string      `bson:"contact" json:"contact"`
	Location              string      `bson:"location" json:"location"`
	PaymentMethod         string      `bson:"payment_method" json:"paymentMethod"`
	Items                 []OrderItem `bson:"items" json:"items"`
	Status                Status      `bson:"status" json:"status"`
	TotalAmount           float64     `bson:"total_amount" json:"totalAmount"`
	EstimatedDeliveryTime time.Time   `bson:"estimated_delivery_time" json:"estimatedDeliveryTime"`
	DeliveredAt           *time.Time  `bson:"delivered_at,omitempty" json:"deliveredAt,omitempty"`
	CancelledAt           *time.Time  `bson:"cancelled_at,omitempty" json:"cancelledAt,omitempty"`
	CreatedAt             time.Time   `bson:"created_at" json:"createdAt"`
	UpdatedAt             time.Time   `bson:"updated_at" json:"updatedAt"`
}

// ComputeTotal sums price*quantity over the line items. Orders must keep
// TotalAmount equal to this whenever their items are set.
func ComputeTotal(items []OrderItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// SetItems replaces the order's line items and recomputes the total.
func (o *Order) SetItems(items []OrderItem) {
	o.Items = items
	o.TotalAmount = ComputeTotal(items)
}
