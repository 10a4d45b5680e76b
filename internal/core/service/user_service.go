package service

import (
	"github.com/rs/zerolog"

	"github.com/cakedelivery/delivery-api/internal/core/domain"
	"github.com/cakedelivery/delivery-api/internal/core/ports"
	"github.com/cakedelivery/delivery-api/internal/core/query"
)

const UsersCollection = "users"

type UserService = EntityService[domain.User, domain.User]

// NewUserService manages accounts. Secrets never leave the process because
// domain.User hides them from JSON.
func NewUserService(store ports.Store[domain.User], logger zerolog.Logger) *UserService {
	return NewEntityService(Descriptor[domain.User, domain.User]{
		Name:       "user",
		Collection: UsersCollection,
		Sort: query.SortFields{
			"email":    "email",
			"username": "username",
		},
		Search: query.Fields{
			"id":    query.Identifier(),
			"email": query.Substring("email"),
		},
		Match: query.Fields{
			"id":    query.Identifier(),
			"email": query.Exact("email"),
		},
		View: Identity[domain.User],
	}, store, logger)
}
