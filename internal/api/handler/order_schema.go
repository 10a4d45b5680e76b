package handler

import (
	"time"

	"github.com/cakedelivery/delivery-api/internal/core/domain"
)

type createOrderRequest struct {
	CustomerID     string                     `json:"customer_id" validate:"required"`
	TotalAmount    float64                    `json:"total_amount" validate:"gte=0"`
	OrderDate      *time.Time                 `json:"order_date"`
	PaymentStatus  domain.PaymentStatus       `json:"payment_status" validate:"omitempty,oneof=Pending Completed Failed"`
	DeliveryStatus domain.OrderDeliveryStatus `json:"delivery_status" validate:"omitempty,oneof=Pending 'In Transit' Delivered Cancelled"`
}

func (r createOrderRequest) Entity(now time.Time) domain.Order {
	o := domain.Order{
		CustomerID:     r.CustomerID,
		TotalAmount:    r.TotalAmount,
		OrderDate:      orNow(r.OrderDate, now),
		PaymentStatus:  r.PaymentStatus,
		DeliveryStatus: r.DeliveryStatus,
	}
	if o.PaymentStatus == "" {
		o.PaymentStatus = domain.PaymentPending
	}
	if o.DeliveryStatus == "" {
		o.DeliveryStatus = domain.OrderDeliveryPending
	}
	return o
}

type updateOrderRequest struct {
	TotalAmount    *float64                    `json:"total_amount" validate:"omitempty,gte=0"`
	PaymentStatus  *domain.PaymentStatus       `json:"payment_status" validate:"omitempty,oneof=Pending Completed Failed"`
	DeliveryStatus *domain.OrderDeliveryStatus `json:"delivery_status" validate:"omitempty,oneof=Pending 'In Transit' Delivered Cancelled"`
}

func (r updateOrderRequest) Changes() map[string]any {
	set := map[string]any{}
	setIf(set, "total_amount", r.TotalAmount)
	setIf(set, "payment_status", r.PaymentStatus)
	setIf(set, "delivery_status", r.DeliveryStatus)
	return set
}

type createOrderItemRequest struct {
	OrderID      string  `json:"order_id" validate:"required"`
	CakeID       string  `json:"cake_id" validate:"required"`
	SizeID       string  `json:"size_id"`
	Quantity     int     `json:"quantity" validate:"required,min=1"`
	PricePerItem float64 `json:"price_per_item" validate:"gte=0"`
}

func (r createOrderItemRequest) Entity(time.Time) domain.OrderItem {
	return domain.OrderItem{
		OrderID:      r.OrderID,
		CakeID:       r.CakeID,
		SizeID:       r.SizeID,
		Quantity:     r.Quantity,
		PricePerItem: r.PricePerItem,
	}
}

type updateOrderItemRequest struct {
	SizeID       *string  `json:"size_id"`
	Quantity     *int     `json:"quantity" validate:"omitempty,min=1"`
	PricePerItem *float64 `json:"price_per_item" validate:"omitempty,gte=0"`
}

func (r updateOrderItemRequest) Changes() map[string]any {
	set := map[string]any{}
	setIf(set, "size_id", r.SizeID)
	setIf(set, "quantity", r.Quantity)
	setIf(set, "price_per_item", r.PricePerItem)
	return set
}

type createPaymentRequest struct {
	OrderID       string               `json:"order_id" validate:"required"`
	PaymentMethod string               `json:"payment_method" validate:"required,max=40"`
	PaymentDate   *time.Time           `json:"payment_date"`
	AmountPaid    float64              `json:"amount_paid" validate:"gt=0"`
	PaymentStatus domain.PaymentStatus `json:"payment_status" validate:"omitempty,oneof=Pending Completed Failed"`
}

func (r createPaymentRequest) Entity(now time.Time) domain.Payment {
	p := domain.Payment{
		OrderID:       r.OrderID,
		PaymentMethod: r.PaymentMethod,
		PaymentDate:   orNow(r.PaymentDate, now),
		AmountPaid:    r.AmountPaid,
		PaymentStatus: r.PaymentStatus,
	}
	if p.PaymentStatus == "" {
		p.PaymentStatus = domain.PaymentPending
	}
	return p
}

type updatePaymentRequest struct {
	PaymentMethod *string               `json:"payment_method" validate:"omitempty,min=1,max=40"`
	AmountPaid    *float64              `json:"amount_paid" validate:"omitempty,gt=0"`
	PaymentStatus *domain.PaymentStatus `json:"payment_status" validate:"omitempty,oneof=Pending Completed Failed"`
}

func (r updatePaymentRequest) Changes() map[string]any {
	set := map[string]any{}
	setIf(set, "payment_method", r.PaymentMethod)
	setIf(set, "amount_paid", r.AmountPaid)
	setIf(set, "payment_status", r.PaymentStatus)
	return set
}

type createDeliveryRequest struct {
	OrderID      string                `json:"order_id" validate:"required"`
	Address      string                `json:"address" validate:"required,max=200"`
	City         string                `json:"city" validate:"required,max=80"`
	PostalCode   string                `json:"postal_code" validate:"max=20"`
	Country      string                `json:"country" validate:"max=80"`
	DeliveryDate *time.Time            `json:"delivery_date"`
	Status       domain.DeliveryStatus `json:"status" validate:"omitempty,oneof=Scheduled 'In Transit' Delivered Cancelled"`
}

func (r createDeliveryRequest) Entity(now time.Time) domain.Delivery {
	d := domain.Delivery{
		OrderID:      r.OrderID,
		Address:      r.Address,
		City:         r.City,
		PostalCode:   r.PostalCode,
		Country:      r.Country,
		DeliveryDate: orNow(r.DeliveryDate, now),
		Status:       r.Status,
	}
	if d.Status == "" {
		d.Status = domain.DeliveryScheduled
	}
	return d
}

type updateDeliveryRequest struct {
	Address      *string                `json:"address" validate:"omitempty,min=1,max=200"`
	City         *string                `json:"city" validate:"omitempty,min=1,max=80"`
	PostalCode   *string                `json:"postal_code" validate:"omitempty,max=20"`
	Country      *string                `json:"country" validate:"omitempty,max=80"`
	DeliveryDate *time.Time             `json:"delivery_date"`
	Status       *domain.DeliveryStatus `json:"status" validate:"omitempty,oneof=Scheduled 'In Transit' Delivered Cancelled"`
}

func (r updateDeliveryRequest) Changes() map[string]any {
	set := map[string]any{}
	setIf(set, "address", r.Address)
	setIf(set, "city", r.City)
	setIf(set, "postal_code", r.PostalCode)
	setIf(set, "country", r.Country)
	if r.DeliveryDate != nil {
		set["delivery_date"] = r.DeliveryDate.UTC()
	}
	setIf(set, "status", r.Status)
	return set
}
