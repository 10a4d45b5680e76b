package service

import (
	"github.com/rs/zerolog"

	"github.com/cakedelivery/delivery-api/internal/core/domain"
	"github.com/cakedelivery/delivery-api/internal/core/ports"
	"github.com/cakedelivery/delivery-api/internal/core/query"
)

const (
	OrdersCollection     = "orders"
	OrderItemsCollection = "order_items"
	PaymentsCollection   = "payments"
	DeliveriesCollection = "deliveries"
)

type (
	OrderService     = EntityService[domain.Order, domain.Order]
	OrderItemService = EntityService[domain.OrderItem, domain.OrderItem]
	PaymentService   = EntityService[domain.Payment, domain.Payment]
	DeliveryService  = EntityService[domain.Delivery, domain.Delivery]
)

var paymentStatuses = []string{
	string(domain.PaymentPending),
	string(domain.PaymentCompleted),
	string(domain.PaymentFailed),
}

var orderDeliveryStatuses = []string{
	string(domain.OrderDeliveryPending),
	string(domain.OrderDeliveryInTransit),
	string(domain.OrderDeliveryDelivered),
	string(domain.OrderDeliveryCancelled),
}

var deliveryStatuses = []string{
	string(domain.DeliveryScheduled),
	string(domain.DeliveryInTransit),
	string(domain.DeliveryDelivered),
	string(domain.DeliveryCancelled),
}

func NewOrderService(store ports.Store[domain.Order], logger zerolog.Logger) *OrderService {
	return NewEntityService(Descriptor[domain.Order, domain.Order]{
		Name:       "order",
		Collection: OrdersCollection,
		Sort: query.SortFields{
			"order_date":      "order_date",
			"total_amount":    "total_amount",
			"payment_status":  "payment_status",
			"delivery_status": "delivery_status",
		},
		Search: query.Fields{
			"id":              query.Identifier(),
			"customer_id":     query.Exact("customer_id"),
			"payment_status":  query.OneOf("payment_status", paymentStatuses...),
			"delivery_status": query.OneOf("delivery_status", orderDeliveryStatuses...),
		},
		Match: query.Fields{
			"id":          query.Identifier(),
			"customer_id": query.Exact("customer_id"),
		},
		View: Identity[domain.Order],
	}, store, logger)
}

func NewOrderItemService(store ports.Store[domain.OrderItem], logger zerolog.Logger) *OrderItemService {
	return NewEntityService(Descriptor[domain.OrderItem, domain.OrderItem]{
		Name:       "order item",
		Collection: OrderItemsCollection,
		Sort: query.SortFields{
			"quantity": "quantity",
			"size_id":  "size_id",
			"cake_id":  "cake_id",
			"order_id": "order_id",
		},
		Search: query.Fields{
			"id":       query.Identifier(),
			"order_id": query.Exact("order_id"),
			"cake_id":  query.Exact("cake_id"),
		},
		Match: query.Fields{
			"id":       query.Identifier(),
			"order_id": query.Exact("order_id"),
			"cake_id":  query.Exact("cake_id"),
		},
		View: Identity[domain.OrderItem],
	}, store, logger)
}

func NewPaymentService(store ports.Store[domain.Payment], logger zerolog.Logger) *PaymentService {
	return NewEntityService(Descriptor[domain.Payment, domain.Payment]{
		Name:       "payment",
		Collection: PaymentsCollection,
		Sort: query.SortFields{
			"payment_date":   "payment_date",
			"amount_paid":    "amount_paid",
			"payment_status": "payment_status",
		},
		Search: query.Fields{
			"id":             query.Identifier(),
			"order_id":       query.Exact("order_id"),
			"payment_method": query.Exact("payment_method"),
			"payment_status": query.OneOf("payment_status", paymentStatuses...),
		},
		Match: query.Fields{
			"id":       query.Identifier(),
			"order_id": query.Exact("order_id"),
		},
		View: Identity[domain.Payment],
	}, store, logger)
}

func NewDeliveryService(store ports.Store[domain.Delivery], logger zerolog.Logger) *DeliveryService {
	return NewEntityService(Descriptor[domain.Delivery, domain.Delivery]{
		Name:       "delivery",
		Collection: DeliveriesCollection,
		Sort: query.SortFields{
			"delivery_date": "delivery_date",
			"status":        "status",
			"city":          "city",
		},
		Search: query.Fields{
			"id":       query.Identifier(),
			"order_id": query.Exact("order_id"),
			"city":     query.Substring("city"),
			"status":   query.OneOf("status", deliveryStatuses...),
		},
		Match: query.Fields{
			"id":       query.Identifier(),
			"order_id": query.Exact("order_id"),
		},
		View: Identity[domain.Delivery],
	}, store, logger)
}
