package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/cakedelivery/delivery-api/internal/api/middleware"
	"github.com/cakedelivery/delivery-api/internal/core/domain"
	"github.com/cakedelivery/delivery-api/internal/core/ports"
)

// Services groups the entity services exposed under /api.
type Services struct {
	Cakes      ports.EntityService[domain.Cake, domain.Cake]
	Categories ports.EntityService[domain.Category, domain.Category]
	Customers  ports.EntityService[domain.Customer, domain.CustomerView]
	Feedback   ports.EntityService[domain.Feedback, domain.Feedback]
	Orders     ports.EntityService[domain.Order, domain.Order]
	OrderItems ports.EntityService[domain.OrderItem, domain.OrderItem]
	Payments   ports.EntityService[domain.Payment, domain.Payment]
	Deliveries ports.EntityService[domain.Delivery, domain.Delivery]
	Users      ports.EntityService[domain.User, domain.User]
}

// RegisterEntityRoutes mounts every entity on g, which must already run the
// Auth middleware. Reads need View; writes need the entity's manage permission.
func RegisterEntityRoutes(g *echo.Group, s Services) {
	mountEntity[createCakeRequest, updateCakeRequest](g, "/cakes",
		NewEntityHandler("cake", s.Cakes), domain.PermissionView, domain.PermissionManageCakes)
	mountEntity[createCategoryRequest, updateCategoryRequest](g, "/categories",
		NewEntityHandler("category", s.Categories), domain.PermissionView, domain.PermissionManageCategories)
	mountEntity[createCustomerRequest, updateCustomerRequest](g, "/customers",
		NewEntityHandler("customer", s.Customers), domain.PermissionView, domain.PermissionManageCustomers)
	mountEntity[createFeedbackRequest, updateFeedbackRequest](g, "/feedback",
		NewEntityHandler("feedback", s.Feedback), domain.PermissionView, domain.PermissionManageCustomers)
	mountEntity[createOrderRequest, updateOrderRequest](g, "/orders",
		NewEntityHandler("order", s.Orders), domain.PermissionView, domain.PermissionManageOrders)
	mountEntity[createOrderItemRequest, updateOrderItemRequest](g, "/order-items",
		NewEntityHandler("order_item", s.OrderItems), domain.PermissionView, domain.PermissionManageOrders)
	mountEntity[createPaymentRequest, updatePaymentRequest](g, "/payments",
		NewEntityHandler("payment", s.Payments), domain.PermissionView, domain.PermissionManagePayments)
	mountEntity[createDeliveryRequest, updateDeliveryRequest](g, "/deliveries",
		NewEntityHandler("delivery", s.Deliveries), domain.PermissionView, domain.PermissionManageDeliveries)

	// Accounts are created through /api/auth/register, so users get no create
	// route, and reading them is as privileged as changing them.
	users := NewEntityHandler("user", s.Users)
	ug := g.Group("/users")
	mountReads(ug, users, middleware.RequirePermission(domain.PermissionManageUsers))
	mountWrites(ug, users, Update[updateUserRequest](users), middleware.RequirePermission(domain.PermissionManageUsers))
}

// RegisterAuthRoutes mounts /auth on g. Revoke is the only route that needs a
// principal, so auth is applied to it alone.
func RegisterAuthRoutes(g *echo.Group, h *AuthHandler, auth echo.MiddlewareFunc) {
	ag := g.Group("/auth")
	ag.POST("/register", h.Register)
	ag.POST("/login", h.Login)
	ag.POST("/refresh", h.Refresh)
	ag.POST("/revoke", h.Revoke, auth)
}

func mountEntity[C ports.Draft[T], P ports.Patch, T, V any](g *echo.Group, path string, h *EntityHandler[T, V], view, manage domain.Permission) {
	eg := g.Group(path)
	canView := middleware.RequirePermission(view)
	canManage := middleware.RequirePermission(manage)

	mountReads(eg, h, canView)
	eg.POST("", Create[C](h), canManage)
	mountWrites(eg, h, Update[P](h), canManage)
}

func mountReads[T, V any](g *echo.Group, h *EntityHandler[T, V], guard echo.MiddlewareFunc) {
	g.GET("", h.List, guard)
	g.GET("/all", h.All, guard)
	g.GET("/:id", h.Get, guard)
	g.POST("/search", h.Search, guard)
	g.POST("/exists", h.Exists, guard)
}

func mountWrites[T, V any](g *echo.Group, h *EntityHandler[T, V], update echo.HandlerFunc, guard echo.MiddlewareFunc) {
	g.PUT("/:id", update, guard)
	g.PATCH("/:id", update, guard)
	g.DELETE("/:id", h.Delete, guard)
	g.POST("/delete", h.DeleteMatching, guard)
}
