package service

import (
	"github.com/rs/zerolog"

	"github.com/cakedelivery/delivery-api/internal/core/domain"
	"github.com/cakedelivery/delivery-api/internal/core/ports"
	"github.com/cakedelivery/delivery-api/internal/core/query"
)

const (
	CustomersCollection = "customers"
	FeedbackCollection  = "customer_feedback"
)

type (
	CustomerService = EntityService[domain.Customer, domain.CustomerView]
	FeedbackService = EntityService[domain.Feedback, domain.Feedback]
)

func NewCustomerService(store ports.Store[domain.Customer], logger zerolog.Logger) *CustomerService {
	return NewEntityService(Descriptor[domain.Customer, domain.CustomerView]{
		Name:       "customer",
		Collection: CustomersCollection,
		Sort: query.SortFields{
			"first_name": "first_name",
			"last_name":  "last_name",
			"email":      "email",
		},
		Search: query.Fields{
			"id":         query.Identifier(),
			"email":      query.Substring("email"),
			"first_name": query.Substring("first_name"),
			"last_name":  query.Substring("last_name"),
		},
		Match: query.Fields{
			"id":    query.Identifier(),
			"email": query.Exact("email"),
		},
		View: domain.NewCustomerView,
	}, store, logger)
}

func NewFeedbackService(store ports.Store[domain.Feedback], logger zerolog.Logger) *FeedbackService {
	return NewEntityService(Descriptor[domain.Feedback, domain.Feedback]{
		Name:       "feedback",
		Collection: FeedbackCollection,
		Sort: query.SortFields{
			"feedback_date": "feedback_date",
			"rating":        "rating",
		},
		Search: query.Fields{
			"id":          query.Identifier(),
			"customer_id": query.Exact("customer_id"),
			"rating":      query.Integer("rating"),
			"feedback":    query.Substring("feedback"),
		},
		Match: query.Fields{
			"id":          query.Identifier(),
			"customer_id": query.Exact("customer_id"),
		},
		View: Identity[domain.Feedback],
	}, store, logger)
}
