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

type CourseHandler struct {
	courseService *service.CourseService
}

func NewCourseHandler(cs *service.CourseService) *CourseHandler {
	return &CourseHandler{courseService: cs}
}

func (h *CourseHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)

	r.Get("/", h.listCourses) // any verified token

	r.Group(func(mutate chi.Router) {
		mutate.Use(middleware.RequireRole(model.RoleInstructor))
		mutate.Post("/", h.createCourse)
		mutate.Put("/", h.updateCourse)
	})
}

func (h *CourseHandler) createCourse(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.CreateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	course, err := h.courseService.Create(r.Context(), claims.UserID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithMessage(w, http.StatusCreated, "Course created successfully", course)
}

func (h *CourseHandler) listCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courseService.List(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, courses)
}

func (h *CourseHandler) updateCourse(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	course, err := h.courseService.Update(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithMessage(w, http.StatusOK, "Course updated successfully", course)
}
