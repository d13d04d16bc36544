package jobkrahandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"kraeval/internal/domain/catalog"
	"kraeval/internal/domain/jobkra"
	"kraeval/internal/transport/http/api"
	"kraeval/internal/transport/http/middleware"
	"kraeval/internal/transport/http/shared"
)

type Handler struct {
	Service *jobkra.Service
}

func NewHandler(service *jobkra.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/job-responsibilities/{jobResponsibilityID}/kras", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/clone", h.handleClone)
		r.Post("/generated", h.handleCreateGenerated)
	})
	r.Route("/job-kras/{jobKRAID}", func(r chi.Router) {
		r.Put("/", h.handleCustomize)
		r.Put("/weight", h.handleSetWeight)
		r.Delete("/", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUser(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	listing, err := h.Service.ListForJob(r.Context(), chi.URLParam(r, "jobResponsibilityID"))
	if err != nil {
		failJobKRA(w, r, err, "job_kra_list_failed", "failed to list job-specific kras")
		return
	}
	api.Success(w, listing, middleware.GetRequestID(r.Context()))
}

type clonePayload struct {
	Entries []struct {
		Name        string  `json:"name"`
		SourceKRAID *string `json:"sourceKraId"`
	} `json:"entries"`
}

func (h *Handler) handleClone(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUser(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload clonePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	entries := make([]jobkra.CloneEntry, 0, len(payload.Entries))
	for _, entry := range payload.Entries {
		entries = append(entries, jobkra.CloneEntry{Name: entry.Name, SourceKRAID: entry.SourceKRAID})
	}

	kras, err := h.Service.CloneFromCatalog(r.Context(), chi.URLParam(r, "jobResponsibilityID"), entries)
	if err != nil {
		failJobKRA(w, r, err, "job_kra_clone_failed", "failed to clone kras")
		return
	}
	api.Created(w, kras, middleware.GetRequestID(r.Context()))
}

type generatedPayload struct {
	Name              string `json:"name"`
	JobSpecificTarget string `json:"jobSpecificTarget"`
	MeasurementMethod string `json:"measurementMethod"`
	AISource          string `json:"aiSource"`
}

func (h *Handler) handleCreateGenerated(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUser(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload generatedPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	kra, err := h.Service.CreateGenerated(r.Context(), chi.URLParam(r, "jobResponsibilityID"), jobkra.GeneratedInput{
		Name:              payload.Name,
		JobSpecificTarget: payload.JobSpecificTarget,
		MeasurementMethod: payload.MeasurementMethod,
		AISource:          payload.AISource,
	})
	if err != nil {
		failJobKRA(w, r, err, "job_kra_create_failed", "failed to create job-specific kra")
		return
	}
	api.Created(w, kra, middleware.GetRequestID(r.Context()))
}

type customizePayload struct {
	Name              *string `json:"name"`
	JobSpecificTarget *string `json:"jobSpecificTarget"`
	MeasurementMethod *string `json:"measurementMethod"`
}

func (h *Handler) handleCustomize(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUser(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload customizePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	kra, err := h.Service.Customize(r.Context(), chi.URLParam(r, "jobKRAID"), jobkra.CustomizeUpdate{
		Name:              payload.Name,
		JobSpecificTarget: payload.JobSpecificTarget,
		MeasurementMethod: payload.MeasurementMethod,
	})
	if err != nil {
		failJobKRA(w, r, err, "job_kra_update_failed", "failed to customize job-specific kra")
		return
	}
	api.Success(w, kra, middleware.GetRequestID(r.Context()))
}

type setWeightPayload struct {
	Weight int `json:"weight"`
}

func (h *Handler) handleSetWeight(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUser(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload setWeightPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.IntRange("weight", payload.Weight, 0, catalog.TotalWeight)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	kra, err := h.Service.SetWeight(r.Context(), chi.URLParam(r, "jobKRAID"), payload.Weight)
	if err != nil {
		failJobKRA(w, r, err, "job_kra_weight_failed", "failed to set weight")
		return
	}
	api.Success(w, kra, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUser(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	if err := h.Service.Remove(r.Context(), chi.URLParam(r, "jobKRAID")); err != nil {
		failJobKRA(w, r, err, "job_kra_delete_failed", "failed to delete job-specific kra")
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func failJobKRA(w http.ResponseWriter, r *http.Request, err error, code, message string) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, jobkra.ErrNameRequired), errors.Is(err, jobkra.ErrNamesRequired):
		api.Fail(w, http.StatusBadRequest, "name_required", err.Error(), requestID)
	case errors.Is(err, jobkra.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "job_kra_not_found", "job-specific kra not found", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, code, message, requestID)
	}
}
