package cataloghandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"kraeval/internal/domain/catalog"
	"kraeval/internal/transport/http/api"
	"kraeval/internal/transport/http/middleware"
	"kraeval/internal/transport/http/shared"
)

type Handler struct {
	Service *catalog.Service
}

func NewHandler(service *catalog.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/responsibilities/{responsibilityID}/kras", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/validate-weights", h.handleValidateWeights)
		r.Post("/distribute-weights", h.handleDistributeWeights)
	})
	r.Route("/kras/{kraID}", func(r chi.Router) {
		r.Get("/", h.handleGet)
		r.Put("/", h.handleUpdate)
		r.Delete("/", h.handleDelete)
	})
}

type createKRAPayload struct {
	Name              string `json:"name"`
	Description       string `json:"description"`
	TargetMetric      string `json:"targetMetric"`
	MeasurementMethod string `json:"measurementMethod"`
	Weight            *int   `json:"weight"`
	IsRequired        bool   `json:"isRequired"`
	SequenceOrder     *int   `json:"sequenceOrder"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	responsibilityID := chi.URLParam(r, "responsibilityID")

	var payload createKRAPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	if payload.Weight != nil {
		v.IntRange("weight", *payload.Weight, 0, catalog.TotalWeight)
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	kra, err := h.Service.CreateKRA(r.Context(), user.OrganizationID, responsibilityID, catalog.CreateKRAInput{
		Name:              payload.Name,
		Description:       payload.Description,
		TargetMetric:      payload.TargetMetric,
		MeasurementMethod: payload.MeasurementMethod,
		Weight:            payload.Weight,
		IsRequired:        payload.IsRequired,
		SequenceOrder:     payload.SequenceOrder,
	})
	if err != nil {
		failCatalog(w, r, err, "kra_create_failed", "failed to create kra")
		return
	}
	api.Created(w, kra, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	responsibilityID := chi.URLParam(r, "responsibilityID")
	includeInactive := r.URL.Query().Get("includeInactive") == "true"

	kras, err := h.Service.ListKRAs(r.Context(), user.OrganizationID, responsibilityID, includeInactive)
	if err != nil {
		failCatalog(w, r, err, "kra_list_failed", "failed to list kras")
		return
	}
	api.Success(w, kras, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	kra, err := h.Service.GetKRA(r.Context(), user.OrganizationID, chi.URLParam(r, "kraID"))
	if err != nil {
		failCatalog(w, r, err, "kra_get_failed", "failed to get kra")
		return
	}
	api.Success(w, kra, middleware.GetRequestID(r.Context()))
}

type updateKRAPayload struct {
	Name              *string `json:"name"`
	Description       *string `json:"description"`
	TargetMetric      *string `json:"targetMetric"`
	MeasurementMethod *string `json:"measurementMethod"`
	Weight            *int    `json:"weight"`
	IsRequired        *bool   `json:"isRequired"`
	SequenceOrder     *int    `json:"sequenceOrder"`
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload updateKRAPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	if payload.Weight != nil {
		v.IntRange("weight", *payload.Weight, 0, catalog.TotalWeight)
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	kra, err := h.Service.UpdateKRA(r.Context(), user.OrganizationID, chi.URLParam(r, "kraID"), catalog.KRAUpdate{
		Name:              payload.Name,
		Description:       payload.Description,
		TargetMetric:      payload.TargetMetric,
		MeasurementMethod: payload.MeasurementMethod,
		Weight:            payload.Weight,
		IsRequired:        payload.IsRequired,
		SequenceOrder:     payload.SequenceOrder,
	})
	if err != nil {
		failCatalog(w, r, err, "kra_update_failed", "failed to update kra")
		return
	}
	api.Success(w, kra, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	if err := h.Service.DeleteKRA(r.Context(), user.OrganizationID, chi.URLParam(r, "kraID")); err != nil {
		failCatalog(w, r, err, "kra_delete_failed", "failed to delete kra")
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleValidateWeights(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	result, err := h.Service.ValidateResponsibilityWeights(r.Context(), user.OrganizationID, chi.URLParam(r, "responsibilityID"))
	if err != nil {
		failCatalog(w, r, err, "weight_validation_failed", "failed to validate weights")
		return
	}
	api.Success(w, result, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDistributeWeights(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	kras, err := h.Service.DistributeResponsibilityWeights(r.Context(), user.OrganizationID, chi.URLParam(r, "responsibilityID"))
	if err != nil {
		failCatalog(w, r, err, "weight_distribution_failed", "failed to distribute weights")
		return
	}
	api.Success(w, kras, middleware.GetRequestID(r.Context()))
}

func failCatalog(w http.ResponseWriter, r *http.Request, err error, code, message string) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, catalog.ErrNameRequired):
		api.Fail(w, http.StatusBadRequest, "name_required", "kra name is required", requestID)
	case errors.Is(err, catalog.ErrKRANotFound):
		api.Fail(w, http.StatusNotFound, "kra_not_found", "kra not found", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, code, message, requestID)
	}
}
