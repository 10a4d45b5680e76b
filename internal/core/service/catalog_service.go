package service

import (
	"github.com/rs/zerolog"

	"github.com/cakedelivery/delivery-api/internal/core/domain"
	"github.com/cakedelivery/delivery-api/internal/core/ports"
	"github.com/cakedelivery/delivery-api/internal/core/query"
)

const (
	CakesCollection      = "cakes"
	CategoriesCollection = "categories"
)

type (
	CakeService     = EntityService[domain.Cake, domain.Cake]
	CategoryService = EntityService[domain.Category, domain.Category]
)

func NewCakeService(store ports.Store[domain.Cake], logger zerolog.Logger) *CakeService {
	return NewEntityService(Descriptor[domain.Cake, domain.Cake]{
		Name:       "cake",
		Collection: CakesCollection,
		Sort: query.SortFields{
			"name":           "name",
			"created_at":     "created_at",
			"stock_quantity": "stock_quantity",
			"price":          "price",
		},
		Search: query.Fields{
			"id":          query.Identifier(),
			"name":        query.Substring("name"),
			"category_id": query.Exact("category_id"),
		},
		Match: query.Fields{
			"id":          query.Identifier(),
			"name":        query.Exact("name"),
			"category_id": query.Exact("category_id"),
		},
		View: Identity[domain.Cake],
	}, store, logger)
}

func NewCategoryService(store ports.Store[domain.Category], logger zerolog.Logger) *CategoryService {
	return NewEntityService(Descriptor[domain.Category, domain.Category]{
		Name:       "category",
		Collection: CategoriesCollection,
		Sort:       query.SortFields{"name": "name"},
		Search: query.Fields{
			"id":   query.Identifier(),
			"name": query.Substring("name"),
		},
		Match: query.Fields{
			"id":   query.Identifier(),
			"name": query.Exact("name"),
		},
		View: Identity[domain.Category],
	}, store, logger)
}
