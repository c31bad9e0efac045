package controllers

import (
	"net/http"

	"github.com/davidmarquez/tastebite-backend/api/responses"
	"github.com/davidmarquez/tastebite-backend/api/validators"
	"github.com/davidmarquez/tastebite-backend/internal/restaurants"
	"github.com/davidmarquez/tastebite-backend/pkg/logger"
)

type createRestaurantRequest struct {
	Name        string  `json:"name" validate:"required"`
	AddressLine string  `json:"address_line" validate:"required"`
	City        *string `json:"city,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	IsActive    bool    `json:"is_active"`
}

type updateRestaurantRequest struct {
	Name        *string `json:"name,omitempty"`
	AddressLine *string `json:"address_line,omitempty"`
	City        *string `json:"city,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func AdminRestaurantList(svc restaurants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context(), true)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toRestaurantResponses(list))
	}
}

func AdminRestaurantDetail(svc restaurants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "restaurantId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		restaurant, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toRestaurantResponse(restaurant))
	}
}

func AdminRestaurantCreate(svc restaurants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRestaurantRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		restaurant, err := svc.Create(r.Context(), restaurants.CreateRestaurantInput{
			Name:        req.Name,
			AddressLine: req.AddressLine,
			City:        req.City,
			Phone:       req.Phone,
			IsActive:    req.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, toRestaurantResponse(restaurant))
	}
}

func AdminRestaurantUpdate(svc restaurants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "restaurantId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req updateRestaurantRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		restaurant, err := svc.Update(r.Context(), id, restaurants.UpdateRestaurantInput{
			Name:        req.Name,
			AddressLine: req.AddressLine,
			City:        req.City,
			Phone:       req.Phone,
			IsActive:    req.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toRestaurantResponse(restaurant))
	}
}

func AdminRestaurantDelete(svc restaurants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "restaurantId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
