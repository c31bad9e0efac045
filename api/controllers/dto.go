package controllers

import (
	"time"

	"github.com/davidmarquez/tastebite-backend/internal/checkout"
	"github.com/davidmarquez/tastebite-backend/internal/orders"
	"github.com/davidmarquez/tastebite-backend/pkg/db/models"
	"github.com/davidmarquez/tastebite-backend/pkg/types"
	"github.com/google/uuid"
)

// Response shapes are explicit: GORM models never leak onto the wire.

type userResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Phone       *string   `json:"phone,omitempty"`
	AddressLine *string   `json:"address_line,omitempty"`
	City        *string   `json:"city,omitempty"`
	PostalCode  *string   `json:"postal_code,omitempty"`
	AvatarPath  *string   `json:"avatar_path,omitempty"`
	Roles       []string  `json:"roles"`
	CreatedAt   time.Time `json:"created_at"`
}

func toUserResponse(user *models.User) userResponse {
	roles := make([]string, 0, len(user.Roles))
	for _, role := range user.Roles {
		roles = append(roles, role.Name.String())
	}
	return userResponse{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Name,
		Phone:       user.Phone,
		AddressLine: user.AddressLine,
		City:        user.City,
		PostalCode:  user.PostalCode,
		AvatarPath:  user.AvatarPath,
		Roles:       roles,
		CreatedAt:   user.CreatedAt,
	}
}

func toUserResponses(users []models.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return out
}

type productSizeResponse struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	PriceModifierCents int       `json:"price_modifier_cents"`
}

type productIngredientResponse struct {
	IngredientID    uuid.UUID `json:"ingredient_id"`
	Name            string    `json:"name"`
	IsDefault       bool      `json:"is_default"`
	IsRemovable     bool      `json:"is_removable"`
	IsRequired      bool      `json:"is_required"`
	MaxQuantity     int       `json:"max_quantity"`
	ExtraPriceCents int       `json:"extra_price_cents"`
}

type productResponse struct {
	ID             uuid.UUID                   `json:"id"`
	Name           string                      `json:"name"`
	Description    *string                     `json:"description,omitempty"`
	BasePriceCents int                         `json:"base_price_cents"`
	IsCombo        bool                        `json:"is_combo"`
	IsAvailable    bool                        `json:"is_available"`
	ImagePath      *string                     `json:"image_path,omitempty"`
	Sizes          []productSizeResponse       `json:"sizes"`
	Ingredients    []productIngredientResponse `json:"ingredients"`
}

func toProductResponse(product *models.Product) productResponse {
	sizes := make([]productSizeResponse, 0, len(product.Sizes))
	for _, size := range product.Sizes {
		sizes = append(sizes, productSizeResponse{
			ID:                 size.ID,
			Name:               size.Name,
			PriceModifierCents: size.PriceModifierCents,
		})
	}
	ingredients := make([]productIngredientResponse, 0, len(product.Ingredients))
	for _, link := range product.Ingredients {
		ingredients = append(ingredients, productIngredientResponse{
			IngredientID:    link.IngredientID,
			Name:            link.Ingredient.Name,
			IsDefault:       link.IsDefault,
			IsRemovable:     link.IsRemovable,
			IsRequired:      link.IsRequired,
			MaxQuantity:     link.MaxQuantity,
			ExtraPriceCents: link.ExtraPriceCents,
		})
	}
	return productResponse{
		ID:             product.ID,
		Name:           product.Name,
		Description:    product.Description,
		BasePriceCents: product.BasePriceCents,
		IsCombo:        product.IsCombo,
		IsAvailable:    product.IsAvailable,
		ImagePath:      product.ImagePath,
		Sizes:          sizes,
		Ingredients:    ingredients,
	}
}

func toProductResponses(products []models.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for i := range products {
		out = append(out, toProductResponse(&products[i]))
	}
	return out
}

type addOnResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	ExtraPriceCents int       `json:"extra_price_cents"`
	IsAvailable     bool      `json:"is_available"`
}

func toSideResponses(sides []models.Side) []addOnResponse {
	out := make([]addOnResponse, 0, len(sides))
	for _, side := range sides {
		out = append(out, addOnResponse{ID: side.ID, Name: side.Name, ExtraPriceCents: side.ExtraPriceCents, IsAvailable: side.IsAvailable})
	}
	return out
}

func toDrinkResponses(drinks []models.Drink) []addOnResponse {
	out := make([]addOnResponse, 0, len(drinks))
	for _, drink := range drinks {
		out = append(out, addOnResponse{ID: drink.ID, Name: drink.Name, ExtraPriceCents: drink.ExtraPriceCents, IsAvailable: drink.IsAvailable})
	}
	return out
}

type ingredientResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func toIngredientResponses(ingredients []models.Ingredient) []ingredientResponse {
	out := make([]ingredientResponse, 0, len(ingredients))
	for _, ingredient := range ingredients {
		out = append(out, ingredientResponse{ID: ingredient.ID, Name: ingredient.Name})
	}
	return out
}

type restaurantResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	AddressLine string    `json:"address_line"`
	City        *string   `json:"city,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	IsActive    bool      `json:"is_active"`
}

func toRestaurantResponse(restaurant *models.Restaurant) restaurantResponse {
	return restaurantResponse{
		ID:          restaurant.ID,
		Name:        restaurant.Name,
		AddressLine: restaurant.AddressLine,
		City:        restaurant.City,
		Phone:       restaurant.Phone,
		IsActive:    restaurant.IsActive,
	}
}

func toRestaurantResponses(restaurants []models.Restaurant) []restaurantResponse {
	out := make([]restaurantResponse, 0, len(restaurants))
	for i := range restaurants {
		out = append(out, toRestaurantResponse(&restaurants[i]))
	}
	return out
}

type flyerResponse struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	ImagePath string     `json:"image_path"`
	StartsAt  *time.Time `json:"starts_at,omitempty"`
	EndsAt    *time.Time `json:"ends_at,omitempty"`
	IsActive  bool       `json:"is_active"`
}

func toFlyerResponse(flyer *models.Flyer) flyerResponse {
	return flyerResponse{
		ID:        flyer.ID,
		Title:     flyer.Title,
		ImagePath: flyer.ImagePath,
		StartsAt:  flyer.StartsAt,
		EndsAt:    flyer.EndsAt,
		IsActive:  flyer.IsActive,
	}
}

func toFlyerResponses(flyers []models.Flyer) []flyerResponse {
	out := make([]flyerResponse, 0, len(flyers))
	for i := range flyers {
		out = append(out, toFlyerResponse(&flyers[i]))
	}
	return out
}

type couponResponse struct {
	ID               uuid.UUID  `json:"id"`
	Code             string     `json:"code"`
	DiscountType     string     `json:"discount_type"`
	DiscountValue    int        `json:"discount_value"`
	MinPurchaseCents int        `json:"min_purchase_cents"`
	MaxDiscountCents *int       `json:"max_discount_cents,omitempty"`
	StartsAt         *time.Time `json:"starts_at,omitempty"`
	EndsAt           *time.Time `json:"ends_at,omitempty"`
	UsageLimit       *int       `json:"usage_limit,omitempty"`
	UsedCount        int        `json:"used_count"`
	IsActive         bool       `json:"is_active"`
}

func toCouponResponse(coupon *models.Coupon) couponResponse {
	return couponResponse{
		ID:               coupon.ID,
		Code:             coupon.Code,
		DiscountType:     string(coupon.DiscountType),
		DiscountValue:    coupon.DiscountValue,
		MinPurchaseCents: coupon.MinPurchaseCents,
		MaxDiscountCents: coupon.MaxDiscountCents,
		StartsAt:         coupon.StartsAt,
		EndsAt:           coupon.EndsAt,
		UsageLimit:       coupon.UsageLimit,
		UsedCount:        coupon.UsedCount,
		IsActive:         coupon.IsActive,
	}
}

func toCouponResponses(coupons []models.Coupon) []couponResponse {
	out := make([]couponResponse, 0, len(coupons))
	for i := range coupons {
		out = append(out, toCouponResponse(&coupons[i]))
	}
	return out
}

type cartItemResponse struct {
	ID              uuid.UUID            `json:"id"`
	ProductID       uuid.UUID            `json:"product_id"`
	SizeID          *uuid.UUID           `json:"size_id,omitempty"`
	SideID          *uuid.UUID           `json:"side_id,omitempty"`
	DrinkID         *uuid.UUID           `json:"drink_id,omitempty"`
	Quantity        int                  `json:"quantity"`
	UnitPriceCents  int                  `json:"unit_price_cents"`
	TotalPriceCents int                  `json:"total_price_cents"`
	Customizations  types.Customizations `json:"customizations,omitempty"`
}

type cartResponse struct {
	ID            uuid.UUID          `json:"id"`
	RestaurantID  *uuid.UUID         `json:"restaurant_id,omitempty"`
	CouponID      *uuid.UUID         `json:"coupon_id,omitempty"`
	DiscountCents int                `json:"discount_cents"`
	SubtotalCents int                `json:"subtotal_cents"`
	Items         []cartItemResponse `json:"items"`
}

func toCartResponse(cart *models.Cart) cartResponse {
	items := make([]cartItemResponse, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, cartItemResponse{
			ID:              item.ID,
			ProductID:       item.ProductID,
			SizeID:          item.SizeID,
			SideID:          item.SideID,
			DrinkID:         item.DrinkID,
			Quantity:        item.Quantity,
			UnitPriceCents:  item.UnitPriceCents,
			TotalPriceCents: item.TotalPriceCents,
			Customizations:  item.Customizations,
		})
	}
	return cartResponse{
		ID:            cart.ID,
		RestaurantID:  cart.RestaurantID,
		CouponID:      cart.CouponID,
		DiscountCents: cart.DiscountCents,
		SubtotalCents: cart.SubtotalCents(),
		Items:         items,
	}
}

type orderItemResponse struct {
	ID              uuid.UUID            `json:"id"`
	ProductID       uuid.UUID            `json:"product_id"`
	ProductName     string               `json:"product_name"`
	SizeName        *string              `json:"size_name,omitempty"`
	SideName        *string              `json:"side_name,omitempty"`
	DrinkName       *string              `json:"drink_name,omitempty"`
	Quantity        int                  `json:"quantity"`
	UnitPriceCents  int                  `json:"unit_price_cents"`
	TotalPriceCents int                  `json:"total_price_cents"`
	Customizations  types.Customizations `json:"customizations,omitempty"`
}

type orderResponse struct {
	ID               uuid.UUID           `json:"id"`
	Status           string              `json:"status"`
	Fulfillment      string              `json:"fulfillment"`
	SubtotalCents    int                 `json:"subtotal_cents"`
	DiscountCents    int                 `json:"discount_cents"`
	DeliveryFeeCents int                 `json:"delivery_fee_cents"`
	TipCents         int                 `json:"tip_cents"`
	TotalCents       int                 `json:"total_cents"`
	PaymentMethod    string              `json:"payment_method"`
	DeliveryAddress  *string             `json:"delivery_address,omitempty"`
	RestaurantID     *uuid.UUID          `json:"restaurant_id,omitempty"`
	RestaurantName   *string             `json:"restaurant_name,omitempty"`
	DriverID         *uuid.UUID          `json:"driver_id,omitempty"`
	IsDemo           bool                `json:"is_demo"`
	Items            []orderItemResponse `json:"items"`
	PickedUpAt       *time.Time          `json:"picked_up_at,omitempty"`
	DeliveredAt      *time.Time          `json:"delivered_at,omitempty"`
	CancelledAt      *time.Time          `json:"cancelled_at,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
}

func toOrderResponse(order *models.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemResponse{
			ID:              item.ID,
			ProductID:       item.ProductID,
			ProductName:     item.ProductName,
			SizeName:        item.SizeName,
			SideName:        item.SideName,
			DrinkName:       item.DrinkName,
			Quantity:        item.Quantity,
			UnitPriceCents:  item.UnitPriceCents,
			TotalPriceCents: item.TotalPriceCents,
			Customizations:  item.Customizations,
		})
	}
	return orderResponse{
		ID:               order.ID,
		Status:           order.Status.String(),
		Fulfillment:      string(order.Fulfillment),
		SubtotalCents:    order.SubtotalCents,
		DiscountCents:    order.DiscountCents,
		DeliveryFeeCents: order.DeliveryFeeCents,
		TipCents:         order.TipCents,
		TotalCents:       order.TotalCents,
		PaymentMethod:    string(order.PaymentMethod),
		DeliveryAddress:  order.DeliveryAddress,
		RestaurantID:     order.RestaurantID,
		RestaurantName:   order.RestaurantName,
		DriverID:         order.DriverID,
		IsDemo:           order.IsDemo,
		Items:            items,
		PickedUpAt:       order.PickedUpAt,
		DeliveredAt:      order.DeliveredAt,
		CancelledAt:      order.CancelledAt,
		CreatedAt:        order.CreatedAt,
	}
}

func toOrderResponses(list []models.Order) []orderResponse {
	out := make([]orderResponse, 0, len(list))
	for i := range list {
		out = append(out, toOrderResponse(&list[i]))
	}
	return out
}

type orderPageResponse struct {
	Orders     []orderResponse `json:"orders"`
	NextCursor string          `json:"next_cursor,omitempty"`
}

func toOrderPageResponse(page orders.OrderPage) orderPageResponse {
	return orderPageResponse{
		Orders:     toOrderResponses(page.Orders),
		NextCursor: page.NextCursor,
	}
}

type checkoutSummaryResponse struct {
	Fulfillment      string              `json:"fulfillment"`
	DeliveryAddress  *string             `json:"delivery_address,omitempty"`
	Restaurant       *restaurantResponse `json:"restaurant,omitempty"`
	SubtotalCents    int                 `json:"subtotal_cents"`
	DiscountCents    int                 `json:"discount_cents"`
	DeliveryFeeCents int                 `json:"delivery_fee_cents"`
	TotalCents       int                 `json:"total_cents"`
	Cart             cartResponse        `json:"cart"`
}

func toCheckoutSummaryResponse(summary *checkout.Summary) checkoutSummaryResponse {
	resp := checkoutSummaryResponse{
		Fulfillment:      string(summary.Fulfillment),
		DeliveryAddress:  summary.DeliveryAddress,
		SubtotalCents:    summary.SubtotalCents,
		DiscountCents:    summary.DiscountCents,
		DeliveryFeeCents: summary.DeliveryFeeCents,
		TotalCents:       summary.TotalCents,
		Cart:             toCartResponse(summary.Cart),
	}
	if summary.Restaurant != nil {
		restaurant := toRestaurantResponse(summary.Restaurant)
		resp.Restaurant = &restaurant
	}
	return resp
}
