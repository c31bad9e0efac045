package controllers

import (
	"net/http"

	"github.com/davidmarquez/tastebite-backend/api/middleware"
	"github.com/davidmarquez/tastebite-backend/api/responses"
	"github.com/davidmarquez/tastebite-backend/api/validators"
	"github.com/davidmarquez/tastebite-backend/internal/coupons"
	"github.com/davidmarquez/tastebite-backend/pkg/logger"
)

type applyCouponRequest struct {
	Code string `json:"code" validate:"required"`
}

// CouponApply validates the code against the current cart and stores the
// computed discount on it. Usage is not burned until checkout completes.
func CouponApply(svc coupons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req applyCouponRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.Apply(r.Context(), middleware.UserIDFromContext(r.Context()), req.Code)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toCartResponse(updated))
	}
}

func CouponRemove(svc coupons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		updated, err := svc.Remove(r.Context(), middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toCartResponse(updated))
	}
}
