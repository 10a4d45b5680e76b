package handler

import (
	"time"

	"github.com/cakedelivery/delivery-api/internal/core/domain"
)

type createCakeRequest struct {
	Name          string  `json:"name" validate:"required,max=120"`
	Description   string  `json:"description" validate:"max=2000"`
	Price         float64 `json:"price" validate:"gt=0"`
	StockQuantity int     `json:"stock_quantity" validate:"gte=0"`
	CategoryID    string  `json:"category_id" validate:"required"`
	ImageURL      string  `json:"image_url" validate:"omitempty,url"`
}

func (r createCakeRequest) Entity(now time.Time) domain.Cake {
	return domain.Cake{
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		StockQuantity: r.StockQuantity,
		CategoryID:    r.CategoryID,
		ImageURL:      r.ImageURL,
		CreatedAt:     now,
	}
}

type updateCakeRequest struct {
	Name          *string  `json:"name" validate:"omitempty,min=1,max=120"`
	Description   *string  `json:"description" validate:"omitempty,max=2000"`
	Price         *float64 `json:"price" validate:"omitempty,gt=0"`
	StockQuantity *int     `json:"stock_quantity" validate:"omitempty,gte=0"`
	CategoryID    *string  `json:"category_id" validate:"omitempty,min=1"`
	ImageURL      *string  `json:"image_url" validate:"omitempty,url"`
}

func (r updateCakeRequest) Changes() map[string]any {
	set := map[string]any{}
	setIf(set, "name", r.Name)
	setIf(set, "description", r.Description)
	setIf(set, "price", r.Price)
	setIf(set, "stock_quantity", r.StockQuantity)
	setIf(set, "category_id", r.CategoryID)
	setIf(set, "image_url", r.ImageURL)
	return set
}

type createCategoryRequest struct {
	Name     string `json:"name" validate:"required,max=80"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
}

func (r createCategoryRequest) Entity(time.Time) domain.Category {
	return domain.Category{Name: r.Name, ImageURL: r.ImageURL}
}

type updateCategoryRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=80"`
	ImageURL *string `json:"image_url" validate:"omitempty,url"`
}

func (r updateCategoryRequest) Changes() map[string]any {
	set := map[string]any{}
	setIf(set, "name", r.Name)
	setIf(set, "image_url", r.ImageURL)
	return set
}
