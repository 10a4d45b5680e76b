package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cakedelivery/delivery-api/internal/api/handler"
	"github.com/cakedelivery/delivery-api/internal/core/domain"
	"github.com/cakedelivery/delivery-api/internal/core/ports"
	"github.com/cakedelivery/delivery-api/internal/core/service"
	"github.com/cakedelivery/delivery-api/internal/infrastructure/db/memory"
	"github.com/cakedelivery/delivery-api/internal/infrastructure/http/handlers"
)

type routerFixture struct {
	e    *echo.Echo
	auth *service.AuthService
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	log := zerolog.Nop()
	db := memory.NewDatabase()

	tokens, err := service.NewTokenIssuer(service.TokenConfig{
		SigningKey: "router-test-signing-key",
		Issuer:     "cake-delivery-api",
		Audience:   "cake-delivery-clients",
	})
	require.NoError(t, err)

	authSvc := service.NewAuthService(memory.NewUserRepository(db, service.UsersCollection), tokens, nil, log)

	e := NewRouter(Dependencies{
		Logger:   log,
		Checks:   map[string]handlers.Check{"store": db.Ping},
		Registry: prometheus.NewRegistry(),
		Tokens:   tokens,
		Auth:     authSvc,
		Entities: handler.Services{
			Cakes:      service.NewCakeService(memory.NewCollection[domain.Cake](db, service.CakesCollection), log),
			Categories: service.NewCategoryService(memory.NewCollection[domain.Category](db, service.CategoriesCollection), log),
			Customers:  service.NewCustomerService(memory.NewCollection[domain.Customer](db, service.CustomersCollection), log),
			Feedback:   service.NewFeedbackService(memory.NewCollection[domain.Feedback](db, service.FeedbackCollection), log),
			Orders:     service.NewOrderService(memory.NewCollection[domain.Order](db, service.OrdersCollection), log),
			OrderItems: service.NewOrderItemService(memory.NewCollection[domain.OrderItem](db, service.OrderItemsCollection), log),
			Payments:   service.NewPaymentService(memory.NewCollection[domain.Payment](db, service.PaymentsCollection), log),
			Deliveries: service.NewDeliveryService(memory.NewCollection[domain.Delivery](db, service.DeliveriesCollection), log),
			Users:      service.NewUserService(memory.NewCollection[domain.User](db, service.UsersCollection), log),
		},
	})
	return &routerFixture{e: e, auth: authSvc}
}

func (f *routerFixture) do(method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func (f *routerFixture) login(t *testing.T, email, password string) (access, refresh string) {
	t.Helper()
	rec := f.do(http.MethodPost, "/api/auth/login", `{"email":"`+email+`","password":"`+password+`"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.AccessToken, resp.RefreshToken
}

func (f *routerFixture) seedUser(t *testing.T, email, role string) string {
	t.Helper()
	_, err := f.auth.Register(context.Background(), ports.RegisterInput{
		Username: strings.Split(email, "@")[0],
		Email:    email,
		Password: "password-" + role,
		Role:     role,
	})
	require.NoError(t, err)
	access, _ := f.login(t, email, "password-"+role)
	return access
}

func TestRouter_OperationalEndpoints(t *testing.T) {
	f := newRouterFixture(t)

	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/health", "", "").Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/health/ready", "", "").Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/metrics", "", "").Code)

	rec := f.do(http.MethodGet, "/health", "", "")
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestRouter_RegisterLoginRefreshRevoke(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(http.MethodPost, "/api/auth/register",
		`{"username":"grace","email":"Grace@Example.com","password":"pa55word!"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "password_hash")

	rec = f.do(http.MethodPost, "/api/auth/register",
		`{"username":"grace2","email":"grace@example.com","password":"pa55word!"}`, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = f.do(http.MethodPost, "/api/auth/login", `{"email":"grace@example.com","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"invalid credentials"}`, rec.Body.String())

	access, refresh := f.login(t, "grace@example.com", "pa55word!")

	rec = f.do(http.MethodPost, "/api/auth/refresh", `{"refresh_token":"`+refresh+`"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = f.do(http.MethodPost, "/api/auth/refresh", `{"refresh_token":"`+refresh+`"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "a rotated refresh token must not be reusable")

	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodPost, "/api/auth/revoke", `{}`, "").Code)
	assert.Equal(t, http.StatusNoContent, f.do(http.MethodPost, "/api/auth/revoke", `{}`, access).Code)
	assert.Equal(t, http.StatusForbidden,
		f.do(http.MethodPost, "/api/auth/revoke", `{"email":"someone@example.com"}`, access).Code)
}

func TestRouter_EntityPermissions(t *testing.T) {
	f := newRouterFixture(t)
	userToken := f.seedUser(t, "user@example.com", domain.RoleUser)
	managerToken := f.seedUser(t, "manager@example.com", domain.RoleManager)
	adminToken := f.seedUser(t, "admin@example.com", domain.RoleAdmin)

	cake := `{"name":"Sacher","price":28,"stock_quantity":3,"category_id":"chocolate"}`

	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/api/cakes", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/api/cakes", "", "not-a-jwt").Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/api/cakes", "", userToken).Code)
	assert.Equal(t, http.StatusForbidden, f.do(http.MethodPost, "/api/cakes", cake, userToken).Code)

	rec := f.do(http.MethodPost, "/api/cakes", cake, managerToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created domain.Cake
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = f.do(http.MethodGet, "/api/cakes/"+created.ID, "", userToken)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodGet, "/api/cakes?page=1&page_size=10", "", userToken)
	assert.Equal(t, "1", rec.Header().Get("X-Total-Count"))

	rec = f.do(http.MethodGet, "/api/cakes?page_size=500", "", userToken)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"page_size":100`)

	rec = f.do(http.MethodGet, "/api/cakes?page_size=0", "", userToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Managers cannot touch payments or users.
	assert.Equal(t, http.StatusForbidden,
		f.do(http.MethodPost, "/api/payments", `{"order_id":"o1","payment_method":"card","amount_paid":10}`, managerToken).Code)
	assert.Equal(t, http.StatusForbidden, f.do(http.MethodGet, "/api/users", "", managerToken).Code)

	rec = f.do(http.MethodGet, "/api/users", "", adminToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password_hash")
	assert.NotContains(t, rec.Body.String(), "refresh_token")

	rec = f.do(http.MethodPost, "/api/users", `{}`, adminToken)
	assert.Contains(t, []int{http.StatusNotFound, http.StatusMethodNotAllowed}, rec.Code, "users have no create route")

	assert.Equal(t, http.StatusNoContent, f.do(http.MethodDelete, "/api/cakes/"+created.ID, "", managerToken).Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodGet, "/api/cakes/"+created.ID, "", userToken).Code)
}

func TestRouter_CustomerViewAddsFullName(t *testing.T) {
	f := newRouterFixture(t)
	token := f.seedUser(t, "ops@example.com", domain.RoleManager)

	rec := f.do(http.MethodPost, "/api/customers",
		`{"first_name":"Ada","last_name":"Lovelace","email":"ADA@example.com"}`, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var view map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "Ada Lovelace", view["full_name"])
	assert.Equal(t, "ada@example.com", view["email"])

	rec = f.do(http.MethodPost, "/api/customers/exists", `{"field":"email","value":"ada@example.com"}`, token)
	assert.JSONEq(t, `{"exists":true}`, rec.Body.String())
}

func TestRouter_UnknownAPIRoute(t *testing.T) {
	f := newRouterFixture(t)
	token := f.seedUser(t, "viewer@example.com", domain.RoleUser)

	rec := f.do(http.MethodGet, "/api/not-a-thing", "", token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
