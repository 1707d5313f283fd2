package handler

import (
	"encoding/json"
	"net/http"

	"courseapp/internal/api/middleware"
	"courseapp/internal/app/service"
	"courseapp/internal/common"
	"courseapp/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type EnrollmentHandler struct {
	enrollmentService *service.EnrollmentService
}

func NewEnrollmentHandler(es *service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentService: es}
}

func (h *EnrollmentHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)
	r.Get("/", h.listEnrollments)
	r.Post("/", h.enroll)
	r.Put("/progress", h.updateProgress)
}

// listEnrollments returns the caller's enrollments. An admin may pass
// ?userId= to inspect another user's; everyone else is pinned to their own
// verified id.
func (h *EnrollmentHandler) listEnrollments(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	userID := claims.UserID
	if requested := r.URL.Query().Get("userId"); requested != "" && requested != claims.UserID {
		if !claims.Role.AtLeast(model.RoleAdmin) {
			common.RespondWithError(w, http.StatusUnauthorized, "User Unauthorized")
			return
		}
		userID = requested
	}

	list, err := h.enrollmentService.ListByUser(r.Context(), userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, list)
}

func (h *EnrollmentHandler) enroll(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.EnrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	enrollment, err := h.enrollmentService.Enroll(r.Context(), claims.UserID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithMessage(w, http.StatusCreated, "Enrolled successfully", enrollment)
}

func (h *EnrollmentHandler) updateProgress(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.UpdateProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	enrollment, err := h.enrollmentService.UpdateProgress(r.Context(), claims.UserID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithMessage(w, http.StatusOK, "Progress updated", enrollment)
}
