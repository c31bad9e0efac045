package controllers

import (
	"net/http"

	"github.com/davidmarquez/tastebite-backend/api/middleware"
	"github.com/davidmarquez/tastebite-backend/api/responses"
	"github.com/davidmarquez/tastebite-backend/api/validators"
	"github.com/davidmarquez/tastebite-backend/internal/orders"
	"github.com/davidmarquez/tastebite-backend/pkg/enums"
	pkgerrors "github.com/davidmarquez/tastebite-backend/pkg/errors"
	"github.com/davidmarquez/tastebite-backend/pkg/logger"
)

type transitionOrderRequest struct {
	Status string `json:"status" validate:"required"`
}

// AdminOrderTransition moves an order along its lifecycle. The target status
// comes from the body; the state machine in the orders service decides whether
// the move is legal.
func AdminOrderTransition(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req transitionOrderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseOrderStatus(req.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown order status").
					WithDetails(map[string]any{"status": req.Status}))
			return
		}

		actorID := middleware.UserIDFromContext(r.Context())
		order, err := svc.Transition(r.Context(), actorID, orderID, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toOrderResponse(order))
	}
}

// AdminOrderDemoAdvance steps every in-flight demo order one status forward.
func AdminOrderDemoAdvance(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID := middleware.UserIDFromContext(r.Context())
		advanced, err := svc.AdvanceDemoOrders(r.Context(), actorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]int{"advanced": advanced})
	}
}
