package controllers

import (
	"net/http"

	"github.com/davidmarquez/tastebite-backend/api/middleware"
	"github.com/davidmarquez/tastebite-backend/api/responses"
	"github.com/davidmarquez/tastebite-backend/api/validators"
	"github.com/davidmarquez/tastebite-backend/internal/cart"
	pkgerrors "github.com/davidmarquez/tastebite-backend/pkg/errors"
	"github.com/davidmarquez/tastebite-backend/pkg/logger"
	"github.com/davidmarquez/tastebite-backend/pkg/types"
	"github.com/google/uuid"
)

type addCartItemRequest struct {
	ProductID      uuid.UUID      `json:"product_id" validate:"required"`
	SizeID         *uuid.UUID     `json:"size_id,omitempty"`
	SideID         *uuid.UUID     `json:"side_id,omitempty"`
	DrinkID        *uuid.UUID     `json:"drink_id,omitempty"`
	Quantity       int            `json:"quantity" validate:"required,min=1"`
	Customizations map[string]int `json:"customizations,omitempty"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"min=0"`
}

type setCartRestaurantRequest struct {
	RestaurantID *uuid.UUID `json:"restaurant_id"`
}

func CartFetch(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current, err := svc.Get(r.Context(), middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toCartResponse(current))
	}
}

func CartAddItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addCartItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customizations, err := parseCustomizations(req.Customizations)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.AddItem(r.Context(), middleware.UserIDFromContext(r.Context()), cart.AddItemInput{
			ProductID:      req.ProductID,
			SizeID:         req.SizeID,
			SideID:         req.SideID,
			DrinkID:        req.DrinkID,
			Quantity:       req.Quantity,
			Customizations: customizations,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, toCartResponse(updated))
	}
}

// CartUpdateItem changes an item's quantity; zero removes the item.
func CartUpdateItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := validators.ParseUUIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.UpdateItemQuantity(r.Context(), middleware.UserIDFromContext(r.Context()), itemID, req.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toCartResponse(updated))
	}
}

func CartRemoveItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := validators.ParseUUIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.RemoveItem(r.Context(), middleware.UserIDFromContext(r.Context()), itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toCartResponse(updated))
	}
}

func CartClear(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		updated, err := svc.Clear(r.Context(), middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toCartResponse(updated))
	}
}

// CartSetRestaurant pins the cart to a pickup restaurant; a null id switches
// the cart back to delivery.
func CartSetRestaurant(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req setCartRestaurantRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.SetRestaurant(r.Context(), middleware.UserIDFromContext(r.Context()), req.RestaurantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toCartResponse(updated))
	}
}

func parseCustomizations(raw map[string]int) (types.Customizations, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(types.Customizations, len(raw))
	for key, quantity := range raw {
		id, err := uuid.Parse(key)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid customization ingredient id").
				WithDetails(map[string]any{"ingredient_id": key})
		}
		out[id] = quantity
	}
	return out, nil
}
