package handler

import (
	"strings"
	"time"

	"github.com/cakedelivery/delivery-api/internal/core/domain"
)

type createCustomerRequest struct {
	FirstName   string `json:"first_name" validate:"required,max=80"`
	LastName    string `json:"last_name" validate:"required,max=80"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"max=30"`
	Address     string `json:"address" validate:"max=200"`
	City        string `json:"city" validate:"max=80"`
	PostalCode  string `json:"postal_code" validate:"max=20"`
	Country     string `json:"country" validate:"max=80"`
}

func (r createCustomerRequest) Entity(now time.Time) domain.Customer {
	return domain.Customer{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       strings.ToLower(r.Email),
		PhoneNumber: r.PhoneNumber,
		Address:     r.Address,
		City:        r.City,
		PostalCode:  r.PostalCode,
		Country:     r.Country,
		CreatedAt:   now,
	}
}

type updateCustomerRequest struct {
	FirstName   *string `json:"first_name" validate:"omitempty,min=1,max=80"`
	LastName    *string `json:"last_name" validate:"omitempty,min=1,max=80"`
	Email       *string `json:"email" validate:"omitempty,email"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=30"`
	Address     *string `json:"address" validate:"omitempty,max=200"`
	City        *string `json:"city" validate:"omitempty,max=80"`
	PostalCode  *string `json:"postal_code" validate:"omitempty,max=20"`
	Country     *string `json:"country" validate:"omitempty,max=80"`
}

func (r updateCustomerRequest) Changes() map[string]any {
	set := map[string]any{}
	setIf(set, "first_name", r.FirstName)
	setIf(set, "last_name", r.LastName)
	if r.Email != nil {
		set["email"] = strings.ToLower(*r.Email)
	}
	setIf(set, "phone_number", r.PhoneNumber)
	setIf(set, "address", r.Address)
	setIf(set, "city", r.City)
	setIf(set, "postal_code", r.PostalCode)
	setIf(set, "country", r.Country)
	return set
}

type createFeedbackRequest struct {
	CustomerID   string     `json:"customer_id" validate:"required"`
	Feedback     string     `json:"feedback" validate:"required,max=2000"`
	Rating       int        `json:"rating" validate:"required,min=1,max=5"`
	FeedbackDate *time.Time `json:"feedback_date"`
}

func (r createFeedbackRequest) Entity(now time.Time) domain.Feedback {
	return domain.Feedback{
		CustomerID:   r.CustomerID,
		Feedback:     r.Feedback,
		Rating:       r.Rating,
		FeedbackDate: orNow(r.FeedbackDate, now),
	}
}

type updateFeedbackRequest struct {
	Feedback *string `json:"feedback" validate:"omitempty,min=1,max=2000"`
	Rating   *int    `json:"rating" validate:"omitempty,min=1,max=5"`
}

func (r updateFeedbackRequest) Changes() map[string]any {
	set := map[string]any{}
	setIf(set, "feedback", r.Feedback)
	setIf(set, "rating", r.Rating)
	return set
}
