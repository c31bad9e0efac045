package controllers

import (
	"net/http"

	"github.com/davidmarquez/tastebite-backend/api/middleware"
	"github.com/davidmarquez/tastebite-backend/api/responses"
	"github.com/davidmarquez/tastebite-backend/api/validators"
	"github.com/davidmarquez/tastebite-backend/internal/checkout"
	"github.com/davidmarquez/tastebite-backend/pkg/enums"
	pkgerrors "github.com/davidmarquez/tastebite-backend/pkg/errors"
	"github.com/davidmarquez/tastebite-backend/pkg/logger"
)

type completeCheckoutRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required"`
	TipCents      int    `json:"tip_cents" validate:"min=0"`
	IsDemo        bool   `json:"is_demo"`
}

func CheckoutSummary(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := svc.Summary(r.Context(), middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toCheckoutSummaryResponse(summary))
	}
}

// CheckoutComplete turns the cart into an order inside one transaction.
func CheckoutComplete(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req completeCheckoutRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := enums.ParsePaymentMethod(req.PaymentMethod)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
			return
		}

		order, err := svc.Complete(r.Context(), middleware.UserIDFromContext(r.Context()), checkout.CompleteInput{
			PaymentMethod: method,
			TipCents:      req.TipCents,
			IsDemo:        req.IsDemo,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, toOrderResponse(order))
	}
}
