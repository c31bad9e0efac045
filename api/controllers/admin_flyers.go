package controllers

import (
	"net/http"
	"time"

	"github.com/davidmarquez/tastebite-backend/api/responses"
	"github.com/davidmarquez/tastebite-backend/api/validators"
	"github.com/davidmarquez/tastebite-backend/internal/flyers"
	"github.com/davidmarquez/tastebite-backend/pkg/logger"
)

type createFlyerRequest struct {
	Title     string     `json:"title" validate:"required"`
	ImagePath string     `json:"image_path" validate:"required"`
	StartsAt  *time.Time `json:"starts_at,omitempty"`
	EndsAt    *time.Time `json:"ends_at,omitempty"`
	IsActive  bool       `json:"is_active"`
}

type updateFlyerRequest struct {
	Title     *string    `json:"title,omitempty"`
	ImagePath *string    `json:"image_path,omitempty"`
	StartsAt  *time.Time `json:"starts_at,omitempty"`
	EndsAt    *time.Time `json:"ends_at,omitempty"`
	IsActive  *bool      `json:"is_active,omitempty"`
}

func AdminFlyerList(svc flyers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toFlyerResponses(list))
	}
}

func AdminFlyerDetail(svc flyers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "flyerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		flyer, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toFlyerResponse(flyer))
	}
}

func AdminFlyerCreate(svc flyers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createFlyerRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		flyer, err := svc.Create(r.Context(), flyers.CreateFlyerInput{
			Title:     req.Title,
			ImagePath: req.ImagePath,
			StartsAt:  req.StartsAt,
			EndsAt:    req.EndsAt,
			IsActive:  req.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, toFlyerResponse(flyer))
	}
}

func AdminFlyerUpdate(svc flyers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "flyerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req updateFlyerRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		flyer, err := svc.Update(r.Context(), id, flyers.UpdateFlyerInput{
			Title:     req.Title,
			ImagePath: req.ImagePath,
			StartsAt:  req.StartsAt,
			EndsAt:    req.EndsAt,
			IsActive:  req.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toFlyerResponse(flyer))
	}
}

func AdminFlyerDelete(svc flyers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "flyerId")
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
