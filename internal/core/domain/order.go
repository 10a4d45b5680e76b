package domain

import "time"

// PaymentStatus is shared by orders and payments.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentCompleted PaymentStatus = "Completed"
	PaymentFailed    PaymentStatus = "Failed"
)

type OrderDeliveryStatus string

const (
	OrderDeliveryPending   OrderDeliveryStatus = "Pending"
	OrderDeliveryInTransit OrderDeliveryStatus = "In Transit"
	OrderDeliveryDelivered OrderDeliveryStatus = "Delivered"
	OrderDeliveryCancelled OrderDeliveryStatus = "Cancelled"
)

type Order struct {
	ID             string              `json:"id" bson:"_id,omitempty"`
	CustomerID     string              `json:"customer_id" bson:"customer_id"`
	TotalAmount    float64             `json:"total_amount" bson:"total_amount"`
	OrderDate      time.Time           `json:"order_date" bson:"order_date"`
	PaymentStatus  PaymentStatus       `json:"payment_status" bson:"payment_status"`
	DeliveryStatus OrderDeliveryStatus `json:"delivery_status" bson:"delivery_status"`
}

// OrderItem is one line of an order.
type OrderItem struct {
	ID           string  `json:"id" bson:"_id,omitempty"`
	OrderID      string  `json:"order_id" bson:"order_id"`
	CakeID       string  `json:"cake_id" bson:"cake_id"`
	SizeID       string  `json:"size_id,omitempty" bson:"size_id,omitempty"`
	Quantity     int     `json:"quantity" bson:"quantity"`
	PricePerItem float64 `json:"price_per_item" bson:"price_per_item"`
}

type Payment struct {
	ID            string        `json:"id" bson:"_id,omitempty"`
	OrderID       string        `json:"order_id" bson:"order_id"`
	PaymentMethod string        `json:"payment_method" bson:"payment_method"`
	PaymentDate   time.Time     `json:"payment_date" bson:"payment_date"`
	AmountPaid    float64       `json:"amount_paid" bson:"amount_paid"`
	PaymentStatus PaymentStatus `json:"payment_status" bson:"payment_status"`
}

type DeliveryStatus string

const (
	DeliveryScheduled DeliveryStatus = "Scheduled"
	DeliveryInTransit DeliveryStatus = "In Transit"
	DeliveryDelivered DeliveryStatus = "Delivered"
	DeliveryCancelled DeliveryStatus = "Cancelled"
)

type Delivery struct {
	ID           string         `json:"id" bson:"_id,omitempty"`
	OrderID      string         `json:"order_id" bson:"order_id"`
	Address      string         `json:"address" bson:"address"`
	City         string         `json:"city" bson:"city"`
	PostalCode   string         `json:"postal_code,omitempty" bson:"postal_code,omitempty"`
	Country      string         `json:"country,omitempty" bson:"country,omitempty"`
	DeliveryDate time.Time      `json:"delivery_date" bson:"delivery_date"`
	Status       DeliveryStatus `json:"status" bson:"status"`
}
