package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/davidmarquez/tastebite-backend/internal/auth"
	"github.com/davidmarquez/tastebite-backend/internal/cart"
	"github.com/davidmarquez/tastebite-backend/internal/catalog"
	checkoutsvc "github.com/davidmarquez/tastebite-backend/internal/checkout"
	"github.com/davidmarquez/tastebite-backend/internal/coupons"
	"github.com/davidmarquez/tastebite-backend/internal/flyers"
	"github.com/davidmarquez/tastebite-backend/internal/orders"
	"github.com/davidmarquez/tastebite-backend/internal/restaurants"
	"github.com/davidmarquez/tastebite-backend/internal/users"
	pkgauth "github.com/davidmarquez/tastebite-backend/pkg/auth"
	"github.com/davidmarquez/tastebite-backend/pkg/auth/session"
	"github.com/davidmarquez/tastebite-backend/pkg/config"
	"github.com/davidmarquez/tastebite-backend/pkg/db/models"
	"github.com/davidmarquez/tastebite-backend/pkg/enums"
	"github.com/davidmarquez/tastebite-backend/pkg/logger"
	"github.com/davidmarquez/tastebite-backend/pkg/outbox"
	goredis "github.com/redis/go-redis/v9"
)

var routerSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  name TEXT NOT NULL,
  phone TEXT,
  address_line TEXT,
  city TEXT,
  postal_code TEXT,
  avatar_path TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE IF NOT EXISTS roles (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  created_at DATETIME
);`,
	`CREATE TABLE IF NOT EXISTS user_roles (
  user_id TEXT NOT NULL,
  role_id TEXT NOT NULL,
  PRIMARY KEY (user_id, role_id)
);`,
	`CREATE TABLE IF NOT EXISTS restaurants (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  address_line TEXT NOT NULL,
  city TEXT,
  phone TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  base_price_cents INTEGER NOT NULL,
  is_combo INTEGER NOT NULL DEFAULT 0,
  is_available INTEGER NOT NULL DEFAULT 1,
  image_path TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE IF NOT EXISTS product_sizes (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  name TEXT NOT NULL,
  price_modifier_cents INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME
);`,
	`CREATE TABLE IF NOT EXISTS ingredients (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  created_at DATETIME
);`,
	`CREATE TABLE IF NOT EXISTS product_ingredients (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  ingredient_id TEXT NOT NULL,
  is_default INTEGER NOT NULL DEFAULT 0,
  is_removable INTEGER NOT NULL DEFAULT 1,
  is_required INTEGER NOT NULL DEFAULT 0,
  max_quantity INTEGER NOT NULL DEFAULT 1,
  extra_price_cents INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME
);`,
	`CREATE TABLE IF NOT EXISTS sides (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  extra_price_cents INTEGER NOT NULL DEFAULT 0,
  is_available INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE IF NOT EXISTS drinks (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  extra_price_cents INTEGER NOT NULL DEFAULT 0,
  is_available INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE IF NOT EXISTS flyers (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  image_path TEXT NOT NULL,
  starts_at DATETIME,
  ends_at DATETIME,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE IF NOT EXISTS coupons (
  id TEXT PRIMARY KEY,
  code TEXT NOT NULL UNIQUE,
  discount_type TEXT NOT NULL,
  discount_value INTEGER NOT NULL,
  min_purchase_cents INTEGER NOT NULL DEFAULT 0,
  max_discount_cents INTEGER,
  starts_at DATETIME,
  ends_at DATETIME,
  usage_limit INTEGER,
  used_count INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE IF NOT EXISTS carts (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL UNIQUE,
  coupon_id TEXT,
  discount_cents INTEGER NOT NULL DEFAULT 0,
  restaurant_id TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE IF NOT EXISTS cart_items (
  id TEXT PRIMARY KEY,
  cart_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  size_id TEXT,
  side_id TEXT,
  drink_id TEXT,
  quantity INTEGER NOT NULL,
  unit_price_cents INTEGER NOT NULL,
  total_price_cents INTEGER NOT NULL,
  customizations TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  fulfillment TEXT NOT NULL,
  subtotal_cents INTEGER NOT NULL,
  discount_cents INTEGER NOT NULL DEFAULT 0,
  delivery_fee_cents INTEGER NOT NULL DEFAULT 0,
  tip_cents INTEGER NOT NULL DEFAULT 0,
  total_cents INTEGER NOT NULL,
  payment_method TEXT NOT NULL,
  coupon_id TEXT,
  delivery_address TEXT,
  restaurant_id TEXT,
  restaurant_name TEXT,
  driver_id TEXT,
  is_demo INTEGER NOT NULL DEFAULT 0,
  picked_up_at DATETIME,
  delivered_at DATETIME,
  cancelled_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  product_name TEXT NOT NULL,
  size_name TEXT,
  side_name TEXT,
  drink_name TEXT,
  quantity INTEGER NOT NULL,
  unit_price_cents INTEGER NOT NULL,
  total_price_cents INTEGER NOT NULL,
  customizations TEXT,
  created_at DATETIME
);`,
	`CREATE TABLE IF NOT EXISTS outbox_events (
  id TEXT PRIMARY KEY,
  event_type TEXT NOT NULL,
  aggregate_type TEXT NOT NULL,
  aggregate_id TEXT NOT NULL,
  payload TEXT NOT NULL,
  attempt_count INTEGER NOT NULL DEFAULT 0,
  last_error TEXT,
  published_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`,
}

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

// routerSessions backs both the auth service and the middleware checker so a
// token minted through /register is immediately usable on private routes.
type routerSessions struct {
	mu      sync.Mutex
	tokens  map[string]string
	counter int
}

func newRouterSessions() *routerSessions {
	return &routerSessions{tokens: make(map[string]string)}
}

func (m *routerSessions) Generate(_ context.Context, accessID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	token := fmt.Sprintf("refresh-%d", m.counter)
	m.tokens[accessID] = token
	return token, nil
}

func (m *routerSessions) Rotate(_ context.Context, oldAccessID, provided string) (string, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.tokens[oldAccessID]
	if !ok || stored != provided {
		return "", "", session.ErrInvalidRefreshToken
	}
	delete(m.tokens, oldAccessID)
	m.counter++
	accessID := session.NewAccessID()
	token := fmt.Sprintf("refresh-%d", m.counter)
	m.tokens[accessID] = token
	return accessID, token, nil
}

func (m *routerSessions) Revoke(_ context.Context, accessID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, accessID)
	return nil
}

func (m *routerSessions) HasSession(_ context.Context, accessID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.tokens[accessID]
	return ok, nil
}

// admit registers an externally minted access ID, standing in for a login.
func (m *routerSessions) admit(accessID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	m.tokens[accessID] = fmt.Sprintf("refresh-%d", m.counter)
}

type openLimiter struct{}

func (openLimiter) FixedWindowAllow(context.Context, string, int64, time.Duration) (bool, int64, error) {
	return true, 0, nil
}

type memoryIdempotency struct {
	mu      sync.Mutex
	records map[string]string
}

func newMemoryIdempotency() *memoryIdempotency {
	return &memoryIdempotency{records: make(map[string]string)}
}

func (s *memoryIdempotency) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.records[key]
	if !ok {
		return "", goredis.Nil
	}
	return value, nil
}

func (s *memoryIdempotency) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[key]; exists {
		return false, nil
	}
	s.records[key] = fmt.Sprintf("%v", value)
	return true, nil
}

func (s *memoryIdempotency) IdempotencyKey(scope, id string) string {
	return "idem:" + scope + ":" + id
}

func (s *memoryIdempotency) Del(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.records, key)
	}
	return nil
}

type nullPinger struct{}

func (nullPinger) Ping(context.Context) error { return nil }

func routerTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:                 "router-test-secret",
			Issuer:                 "tastebite-test",
			ExpirationMinutes:      15,
			RefreshTokenTTLMinutes: 60,
		},
		Password: config.PasswordConfig{
			ArgonMemoryKB:    8,
			ArgonTime:        1,
			ArgonParallelism: 1,
			ArgonSaltLen:     8,
			ArgonKeyLen:      16,
		},
		AuthRateLimit: config.AuthRateLimitConfig{
			LoginWindow:        time.Minute,
			LoginEmailLimit:    100,
			LoginIPLimit:       100,
			RegisterWindow:     time.Minute,
			RegisterEmailLimit: 100,
			RegisterIPLimit:    100,
		},
		FeatureFlags: config.FeatureFlagsConfig{DemoSimulation: true},
		Checkout: config.CheckoutConfig{
			DeliveryFeeCents: 500,
			MaxItemQuantity:  5,
			MaxTipCents:      50000,
		},
	}
}

type routerFixture struct {
	handler  http.Handler
	db       *gorm.DB
	cfg      *config.Config
	sessions *routerSessions
}

func newRouterFixture(t *testing.T) routerFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	for _, stmt := range routerSchema {
		require.NoError(t, db.Exec(stmt).Error)
	}
	for _, role := range []enums.UserRole{enums.UserRoleCustomer, enums.UserRoleDriver, enums.UserRoleAdmin} {
		require.NoError(t, db.Create(&models.Role{ID: uuid.New(), Name: role}).Error)
	}

	cfg := routerTestConfig()
	logg := logger.New(logger.Options{ServiceName: "router-test", Level: zerolog.ErrorLevel, Output: io.Discard})
	sessions := newRouterSessions()
	tx := gormTxRunner{db: db}

	usersRepo := users.NewRepository(db)
	usersSvc, err := users.NewService(usersRepo)
	require.NoError(t, err)

	catalogRepo := catalog.NewRepository(db)
	catalogSvc, err := catalog.NewService(catalogRepo)
	require.NoError(t, err)
	resolver, err := catalog.NewResolver(catalogRepo, cfg.Checkout.MaxItemQuantity)
	require.NoError(t, err)

	restaurantRepo := restaurants.NewRepository(db)
	restaurantSvc, err := restaurants.NewService(restaurantRepo)
	require.NoError(t, err)

	flyerSvc, err := flyers.NewService(flyers.NewRepository(db))
	require.NoError(t, err)

	cartRepo := cart.NewRepository(db)
	cartSvc, err := cart.NewService(cartRepo, resolver, restaurantRepo)
	require.NoError(t, err)

	couponRepo := coupons.NewRepository(db)
	couponSvc, err := coupons.NewService(couponRepo, cartRepo)
	require.NoError(t, err)

	outboxSvc := outbox.NewService(outbox.NewRepository(db), nil)
	ordersRepo := orders.NewRepository(db)
	ordersSvc, err := orders.NewService(tx, ordersRepo, outboxSvc, cfg.FeatureFlags)
	require.NoError(t, err)

	checkoutSvc, err := checkoutsvc.NewService(tx, cartRepo, couponRepo, ordersRepo, catalogRepo, usersRepo, restaurantRepo, outboxSvc, cfg.Checkout)
	require.NoError(t, err)

	authSvc, err := auth.NewService(auth.ServiceParams{
		Tx:             tx,
		UserRepo:       usersRepo,
		SessionManager: sessions,
		RateLimiter:    openLimiter{},
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
		RateLimits:     cfg.AuthRateLimit,
	})
	require.NoError(t, err)

	handler := NewRouter(Deps{
		Config:      cfg,
		Logger:      logg,
		DB:          nullPinger{},
		Redis:       nullPinger{},
		Idempotency: newMemoryIdempotency(),
		Session:     sessions,

		Auth:        authSvc,
		Users:       usersSvc,
		Catalog:     catalogSvc,
		Restaurants: restaurantSvc,
		Flyers:      flyerSvc,
		Cart:        cartSvc,
		Coupons:     couponSvc,
		Checkout:    checkoutSvc,
		Orders:      ordersSvc,
	})

	return routerFixture{handler: handler, db: db, cfg: cfg, sessions: sessions}
}

func (f routerFixture) do(t *testing.T, method, path, token string, body any, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, req)
	return rr
}

func decodeData(t *testing.T, rr *httptest.ResponseRecorder, out any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope), rr.Body.String())
	require.NoError(t, json.Unmarshal(envelope.Data, out), rr.Body.String())
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope), rr.Body.String())
	return envelope.Error.Code
}

func (f routerFixture) registerUser(t *testing.T, email string) (string, uuid.UUID) {
	t.Helper()
	rr := f.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"email":    email,
		"password": "a fine password",
		"name":     "Test User",
	}, nil)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var result struct {
		User struct {
			ID uuid.UUID `json:"id"`
		} `json:"user"`
		Tokens struct {
			AccessToken string `json:"access_token"`
		} `json:"tokens"`
	}
	decodeData(t, rr, &result)
	require.NotEmpty(t, result.Tokens.AccessToken)
	return result.Tokens.AccessToken, result.User.ID
}

// mintRoleToken forges a signed token for a role-bearing actor and admits its
// session, standing in for accounts provisioned out of band.
func (f routerFixture) mintRoleToken(t *testing.T, userID uuid.UUID, roles ...enums.UserRole) string {
	t.Helper()
	accessID := session.NewAccessID()
	token, err := pkgauth.MintAccessToken(f.cfg.JWT, time.Now(), pkgauth.AccessTokenPayload{
		UserID: userID,
		Roles:  roles,
		JTI:    accessID,
	})
	require.NoError(t, err)
	f.sessions.admit(accessID)
	return token
}

func (f routerFixture) seedProduct(t *testing.T, name string, priceCents int) uuid.UUID {
	t.Helper()
	product := models.Product{Name: name, BasePriceCents: priceCents, IsAvailable: true}
	require.NoError(t, f.db.Create(&product).Error)
	return product.ID
}

func (f routerFixture) seedRestaurant(t *testing.T, name string) uuid.UUID {
	t.Helper()
	restaurant := models.Restaurant{Name: name, AddressLine: "Av. Central 12", IsActive: true}
	require.NoError(t, f.db.Create(&restaurant).Error)
	return restaurant.ID
}

func TestRouterHealthAndPublicCatalog(t *testing.T) {
	fx := newRouterFixture(t)
	fx.seedProduct(t, "Torta Ahogada", 9500)

	rr := fx.do(t, http.MethodGet, "/health/live", "", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "test", rr.Header().Get("X-Tastebite-Env"))

	rr = fx.do(t, http.MethodGet, "/health/ready", "", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = fx.do(t, http.MethodGet, "/api/v1/catalog/products", "", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var products []struct {
		Name string `json:"name"`
	}
	decodeData(t, rr, &products)
	require.Len(t, products, 1)
	assert.Equal(t, "Torta Ahogada", products[0].Name)
}

func TestRouterRejectsAnonymousPrivateRoutes(t *testing.T) {
	fx := newRouterFixture(t)

	for _, path := range []string{"/api/v1/cart", "/api/v1/profile", "/api/v1/orders"} {
		rr := fx.do(t, http.MethodGet, path, "", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, path)
	}
}

func TestRouterRoleEnforcement(t *testing.T) {
	fx := newRouterFixture(t)
	token, userID := fx.registerUser(t, "plain@example.com")

	rr := fx.do(t, http.MethodGet, "/api/v1/admin/products", token, nil, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	rr = fx.do(t, http.MethodGet, "/api/v1/driver/orders/queue", token, nil, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	adminToken := fx.mintRoleToken(t, userID, enums.UserRoleAdmin)
	rr = fx.do(t, http.MethodGet, "/api/v1/admin/products", adminToken, nil, nil)
	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	driverToken := fx.mintRoleToken(t, userID, enums.UserRoleDriver)
	rr = fx.do(t, http.MethodGet, "/api/v1/driver/orders/queue", driverToken, nil, nil)
	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
}

func TestRouterCartToCheckoutFlow(t *testing.T) {
	fx := newRouterFixture(t)
	token, _ := fx.registerUser(t, "hungry@example.com")
	productID := fx.seedProduct(t, "Pozole Rojo", 1000)
	restaurantID := fx.seedRestaurant(t, "Sucursal Centro")

	rr := fx.do(t, http.MethodPost, "/api/v1/cart/items", token, map[string]any{
		"product_id": productID,
		"quantity":   2,
	}, nil)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var cartBody struct {
		SubtotalCents int `json:"subtotal_cents"`
		Items         []struct {
			TotalPriceCents int `json:"total_price_cents"`
		} `json:"items"`
	}
	decodeData(t, rr, &cartBody)
	assert.Equal(t, 2000, cartBody.SubtotalCents)
	require.Len(t, cartBody.Items, 1)

	// Pinning a restaurant makes the order a pickup: no delivery fee.
	rr = fx.do(t, http.MethodPut, "/api/v1/cart/restaurant", token, map[string]any{
		"restaurant_id": restaurantID,
	}, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = fx.do(t, http.MethodGet, "/api/v1/checkout", token, nil, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var summary struct {
		Fulfillment      string `json:"fulfillment"`
		DeliveryFeeCents int    `json:"delivery_fee_cents"`
		TotalCents       int    `json:"total_cents"`
	}
	decodeData(t, rr, &summary)
	assert.Equal(t, "pickup", summary.Fulfillment)
	assert.Equal(t, 0, summary.DeliveryFeeCents)
	assert.Equal(t, 2000, summary.TotalCents)

	// The completion route demands an idempotency key before anything else.
	rr = fx.do(t, http.MethodPost, "/api/v1/checkout/complete", token, map[string]any{
		"payment_method": "cash",
		"tip_cents":      150,
	}, nil)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rr))

	key := map[string]string{"Idempotency-Key": uuid.NewString()}
	rr = fx.do(t, http.MethodPost, "/api/v1/checkout/complete", token, map[string]any{
		"payment_method": "cash",
		"tip_cents":      150,
	}, key)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var order struct {
		ID         uuid.UUID `json:"id"`
		Status     string    `json:"status"`
		TotalCents int       `json:"total_cents"`
	}
	decodeData(t, rr, &order)
	assert.Equal(t, "pending", order.Status)
	assert.Equal(t, 2150, order.TotalCents)

	// Replaying the same request with the same key returns the stored
	// response without creating a second order.
	rr = fx.do(t, http.MethodPost, "/api/v1/checkout/complete", token, map[string]any{
		"payment_method": "cash",
		"tip_cents":      150,
	}, key)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var replayed struct {
		ID uuid.UUID `json:"id"`
	}
	decodeData(t, rr, &replayed)
	assert.Equal(t, order.ID, replayed.ID)

	var count int64
	require.NoError(t, fx.db.Model(&models.Order{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRouterProfileRoundTrip(t *testing.T) {
	fx := newRouterFixture(t)
	token, _ := fx.registerUser(t, "profile@example.com")

	rr := fx.do(t, http.MethodPatch, "/api/v1/profile", token, map[string]any{
		"address_line": "Calle Morelos 88",
		"city":         "Guadalajara",
	}, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = fx.do(t, http.MethodGet, "/api/v1/profile", token, nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var profile struct {
		Email       string  `json:"email"`
		AddressLine *string `json:"address_line"`
		City        *string `json:"city"`
	}
	decodeData(t, rr, &profile)
	assert.Equal(t, "profile@example.com", profile.Email)
	require.NotNil(t, profile.AddressLine)
	assert.Equal(t, "Calle Morelos 88", *profile.AddressLine)
}
