package controllers

import (
	"net/http"

	"github.com/davidmarquez/tastebite-backend/api/responses"
	"github.com/davidmarquez/tastebite-backend/api/validators"
	"github.com/davidmarquez/tastebite-backend/internal/users"
	"github.com/davidmarquez/tastebite-backend/pkg/enums"
	pkgerrors "github.com/davidmarquez/tastebite-backend/pkg/errors"
	"github.com/davidmarquez/tastebite-backend/pkg/logger"
)

type roleRequest struct {
	Role string `json:"role" validate:"required"`
}

func AdminUserList(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListUsers(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toUserResponses(list))
	}
}

func AdminUserAssignRole(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := validators.ParseUUIDParam(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		role, err := parseRoleBody(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		user, err := svc.AssignRole(r.Context(), userID, role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toUserResponse(user))
	}
}

func AdminUserRevokeRole(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := validators.ParseUUIDParam(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		role, err := parseRoleBody(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		user, err := svc.RevokeRole(r.Context(), userID, role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toUserResponse(user))
	}
}

func parseRoleBody(r *http.Request) (enums.UserRole, error) {
	var req roleRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		return "", err
	}
	role, err := enums.ParseUserRole(req.Role)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown role").
			WithDetails(map[string]any{"role": req.Role})
	}
	return role, nil
}
