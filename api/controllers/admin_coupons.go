package controllers

import (
	"net/http"
	"time"

	"github.com/davidmarquez/tastebite-backend/api/responses"
	"github.com/davidmarquez/tastebite-backend/api/validators"
	"github.com/davidmarquez/tastebite-backend/internal/coupons"
	"github.com/davidmarquez/tastebite-backend/pkg/enums"
	pkgerrors "github.com/davidmarquez/tastebite-backend/pkg/errors"
	"github.com/davidmarquez/tastebite-backend/pkg/logger"
)

type createCouponRequest struct {
	Code             string     `json:"code" validate:"required"`
	DiscountType     string     `json:"discount_type" validate:"required"`
	DiscountValue    int        `json:"discount_value" validate:"required,min=1"`
	MinPurchaseCents int        `json:"min_purchase_cents" validate:"min=0"`
	MaxDiscountCents *int       `json:"max_discount_cents,omitempty"`
	StartsAt         *time.Time `json:"starts_at,omitempty"`
	EndsAt           *time.Time `json:"ends_at,omitempty"`
	UsageLimit       *int       `json:"usage_limit,omitempty"`
	IsActive         bool       `json:"is_active"`
}

type updateCouponRequest struct {
	DiscountValue    *int       `json:"discount_value,omitempty"`
	MinPurchaseCents *int       `json:"min_purchase_cents,omitempty"`
	MaxDiscountCents *int       `json:"max_discount_cents,omitempty"`
	StartsAt         *time.Time `json:"starts_at,omitempty"`
	EndsAt           *time.Time `json:"ends_at,omitempty"`
	UsageLimit       *int       `json:"usage_limit,omitempty"`
	IsActive         *bool      `json:"is_active,omitempty"`
}

func AdminCouponList(svc coupons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toCouponResponses(list))
	}
}

func AdminCouponDetail(svc coupons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "couponId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		coupon, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toCouponResponse(coupon))
	}
}

func AdminCouponCreate(svc coupons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createCouponRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		discountType, err := enums.ParseCouponDiscountType(req.DiscountType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown discount type").
					WithDetails(map[string]any{"discount_type": req.DiscountType}))
			return
		}

		coupon, err := svc.Create(r.Context(), coupons.CreateCouponInput{
			Code:             req.Code,
			DiscountType:     discountType,
			DiscountValue:    req.DiscountValue,
			MinPurchaseCents: req.MinPurchaseCents,
			MaxDiscountCents: req.MaxDiscountCents,
			StartsAt:         req.StartsAt,
			EndsAt:           req.EndsAt,
			UsageLimit:       req.UsageLimit,
			IsActive:         req.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, toCouponResponse(coupon))
	}
}

func AdminCouponUpdate(svc coupons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "couponId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req updateCouponRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		coupon, err := svc.Update(r.Context(), id, coupons.UpdateCouponInput{
			DiscountValue:    req.DiscountValue,
			MinPurchaseCents: req.MinPurchaseCents,
			MaxDiscountCents: req.MaxDiscountCents,
			StartsAt:         req.StartsAt,
			EndsAt:           req.EndsAt,
			UsageLimit:       req.UsageLimit,
			IsActive:         req.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toCouponResponse(coupon))
	}
}

func AdminCouponDelete(svc coupons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "couponId")
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
