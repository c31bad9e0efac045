package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/davidmarquez/tastebite-backend/api/controllers"
	"github.com/davidmarquez/tastebite-backend/api/middleware"
	"github.com/davidmarquez/tastebite-backend/internal/auth"
	"github.com/davidmarquez/tastebite-backend/internal/cart"
	"github.com/davidmarquez/tastebite-backend/internal/catalog"
	checkoutsvc "github.com/davidmarquez/tastebite-backend/internal/checkout"
	"github.com/davidmarquez/tastebite-backend/internal/coupons"
	"github.com/davidmarquez/tastebite-backend/internal/flyers"
	"github.com/davidmarquez/tastebite-backend/internal/orders"
	"github.com/davidmarquez/tastebite-backend/internal/restaurants"
	"github.com/davidmarquez/tastebite-backend/internal/users"
	"github.com/davidmarquez/tastebite-backend/pkg/auth/session"
	"github.com/davidmarquez/tastebite-backend/pkg/config"
	"github.com/davidmarquez/tastebite-backend/pkg/db"
	"github.com/davidmarquez/tastebite-backend/pkg/enums"
	"github.com/davidmarquez/tastebite-backend/pkg/logger"
	"github.com/davidmarquez/tastebite-backend/pkg/metrics"
	pkgredis "github.com/davidmarquez/tastebite-backend/pkg/redis"
)

// Deps carries everything the HTTP surface needs. The router itself owns no
// state; it only wires middleware and handlers.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	Redis       pkgredis.Pinger
	Idempotency pkgredis.IdempotencyStore
	Session     session.AccessSessionChecker
	Metrics     *metrics.HTTPMetrics

	MetricsHandler http.Handler

	Auth        auth.Service
	Users       users.Service
	Catalog     catalog.Service
	Restaurants restaurants.Service
	Flyers      flyers.Service
	Cart        cart.Service
	Coupons     coupons.Service
	Checkout    checkoutsvc.Service
	Orders      orders.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(deps.Metrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.MetricsHandler != nil {
		r.Handle("/metrics", deps.MetricsHandler)
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(deps.Auth, logg))
		r.Post("/login", controllers.AuthLogin(deps.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.Auth, logg))
		r.With(middleware.Auth(cfg.JWT, deps.Session, logg)).
			Post("/logout", controllers.AuthLogout(deps.Auth, logg))
	})

	// Public catalog reads need no session.
	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/products", controllers.CatalogProducts(deps.Catalog, logg))
		r.Get("/products/{productId}", controllers.CatalogProductDetail(deps.Catalog, logg))
		r.Get("/sides", controllers.CatalogSides(deps.Catalog, logg))
		r.Get("/drinks", controllers.CatalogDrinks(deps.Catalog, logg))
		r.Get("/restaurants", controllers.CatalogRestaurants(deps.Restaurants, logg))
		r.Get("/flyers", controllers.CatalogFlyers(deps.Flyers, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Session, logg))
		r.Use(middleware.Idempotency(deps.Idempotency, logg))

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", controllers.ProfileGet(deps.Users, logg))
			r.Patch("/", controllers.ProfileUpdate(deps.Users, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(deps.Cart, logg))
			r.Post("/items", controllers.CartAddItem(deps.Cart, logg))
			r.Patch("/items/{itemId}", controllers.CartUpdateItem(deps.Cart, logg))
			r.Delete("/items/{itemId}", controllers.CartRemoveItem(deps.Cart, logg))
			r.Delete("/", controllers.CartClear(deps.Cart, logg))
			r.Put("/restaurant", controllers.CartSetRestaurant(deps.Cart, logg))
		})

		r.Route("/coupons", func(r chi.Router) {
			r.Post("/apply", controllers.CouponApply(deps.Coupons, logg))
			r.Delete("/", controllers.CouponRemove(deps.Coupons, logg))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/", controllers.CheckoutSummary(deps.Checkout, logg))
			r.Post("/complete", controllers.CheckoutComplete(deps.Checkout, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrdersList(deps.Orders, logg))
			r.Get("/{orderId}", controllers.OrderDetail(deps.Orders, logg))
			r.Post("/{orderId}/cancel", controllers.OrderCancel(deps.Orders, logg))
		})

		r.Route("/driver", func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.UserRoleDriver, logg))
			r.Route("/orders", func(r chi.Router) {
				r.Get("/queue", controllers.DriverQueue(deps.Orders, logg))
				r.Get("/", controllers.DriverAssigned(deps.Orders, logg))
				r.Post("/{orderId}/claim", controllers.DriverClaim(deps.Orders, logg))
				r.Post("/{orderId}/deliver", controllers.DriverDeliver(deps.Orders, logg))
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.UserRoleAdmin, logg))

			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.AdminProductList(deps.Catalog, logg))
				r.Post("/", controllers.AdminProductCreate(deps.Catalog, logg))
				r.Patch("/{productId}", controllers.AdminProductUpdate(deps.Catalog, logg))
				r.Delete("/{productId}", controllers.AdminProductDelete(deps.Catalog, logg))
			})
			r.Route("/sides", func(r chi.Router) {
				r.Get("/", controllers.AdminSideList(deps.Catalog, logg))
				r.Post("/", controllers.AdminSideCreate(deps.Catalog, logg))
				r.Patch("/{sideId}", controllers.AdminSideUpdate(deps.Catalog, logg))
				r.Delete("/{sideId}", controllers.AdminSideDelete(deps.Catalog, logg))
			})
			r.Route("/drinks", func(r chi.Router) {
				r.Get("/", controllers.AdminDrinkList(deps.Catalog, logg))
				r.Post("/", controllers.AdminDrinkCreate(deps.Catalog, logg))
				r.Patch("/{drinkId}", controllers.AdminDrinkUpdate(deps.Catalog, logg))
				r.Delete("/{drinkId}", controllers.AdminDrinkDelete(deps.Catalog, logg))
			})
			r.Route("/ingredients", func(r chi.Router) {
				r.Get("/", controllers.AdminIngredientList(deps.Catalog, logg))
				r.Post("/", controllers.AdminIngredientCreate(deps.Catalog, logg))
			})
			r.Route("/restaurants", func(r chi.Router) {
				r.Get("/", controllers.AdminRestaurantList(deps.Restaurants, logg))
				r.Post("/", controllers.AdminRestaurantCreate(deps.Restaurants, logg))
				r.Get("/{restaurantId}", controllers.AdminRestaurantDetail(deps.Restaurants, logg))
				r.Patch("/{restaurantId}", controllers.AdminRestaurantUpdate(deps.Restaurants, logg))
				r.Delete("/{restaurantId}", controllers.AdminRestaurantDelete(deps.Restaurants, logg))
			})
			r.Route("/flyers", func(r chi.Router) {
				r.Get("/", controllers.AdminFlyerList(deps.Flyers, logg))
				r.Post("/", controllers.AdminFlyerCreate(deps.Flyers, logg))
				r.Get("/{flyerId}", controllers.AdminFlyerDetail(deps.Flyers, logg))
				r.Patch("/{flyerId}", controllers.AdminFlyerUpdate(deps.Flyers, logg))
				r.Delete("/{flyerId}", controllers.AdminFlyerDelete(deps.Flyers, logg))
			})
			r.Route("/coupons", func(r chi.Router) {
				r.Get("/", controllers.AdminCouponList(deps.Coupons, logg))
				r.Post("/", controllers.AdminCouponCreate(deps.Coupons, logg))
				r.Get("/{couponId}", controllers.AdminCouponDetail(deps.Coupons, logg))
				r.Patch("/{couponId}", controllers.AdminCouponUpdate(deps.Coupons, logg))
				r.Delete("/{couponId}", controllers.AdminCouponDelete(deps.Coupons, logg))
			})
			r.Route("/users", func(r chi.Router) {
				r.Get("/", controllers.AdminUserList(deps.Users, logg))
				r.Post("/{userId}/roles", controllers.AdminUserAssignRole(deps.Users, logg))
				r.Delete("/{userId}/roles", controllers.AdminUserRevokeRole(deps.Users, logg))
			})
			r.Route("/orders", func(r chi.Router) {
				r.Post("/demo/advance", controllers.AdminOrderDemoAdvance(deps.Orders, logg))
				r.Post("/{orderId}/status", controllers.AdminOrderTransition(deps.Orders, logg))
			})
		})
	})

	return r
}
