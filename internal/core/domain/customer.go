package domain

import (
	"strings"
	"time"
)

type Customer struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	FirstName   string    `json:"first_name" bson:"first_name"`
	LastName    string    `json:"last_name" bson:"last_name"`
	Email       string    `json:"email" bson:"email"`
	PhoneNumber string    `json:"phone_number,omitempty" bson:"phone_number,omitempty"`
	Address     string    `json:"address,omitempty" bson:"address,omitempty"`
	City        string    `json:"city,omitempty" bson:"city,omitempty"`
	PostalCode  string    `json:"postal_code,omitempty" bson:"postal_code,omitempty"`
	Country     string    `json:"country,omitempty" bson:"country,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// CustomerView is the external representation of a customer.
type CustomerView struct {
	Customer
	FullName string `json:"full_name"`
}

// NewCustomerView builds the view, joining the name parts.
func NewCustomerView(c *Customer) CustomerView {
	return CustomerView{
		Customer: *c,
		FullName: strings.TrimSpace(c.FirstName + " " + c.LastName),
	}
}

const (
	MinRating = 1
	MaxRating = 5
)

// Feedback is a customer's rating of the service.
type Feedback struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	CustomerID   string    `json:"customer_id" bson:"customer_id"`
	Feedback     string    `json:"feedback" bson:"feedback"`
	Rating       int       `json:"rating" bson:"rating"`
	FeedbackDate time.Time `json:"feedback_date" bson:"feedback_date"`
}
