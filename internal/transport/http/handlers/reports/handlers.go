package reportshandler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"kraeval/internal/domain/identity"
	"kraeval/internal/domain/reports"
	"kraeval/internal/transport/http/api"
	"kraeval/internal/transport/http/middleware"
)

type Handler struct {
	Service *reports.Service
}

func NewHandler(service *reports.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Get("/appraisal", h.handleAppraisalSummary)
		r.Post("/appraisal/export", h.handleExportAppraisal)
	})
}

func (h *Handler) handleAppraisalSummary(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	participantID := r.URL.Query().Get("participantId")
	if participantID == "" {
		participantID = user.UserID
	}
	if participantID != user.UserID && user.Role != identity.RoleManager && user.Role != identity.RoleAdmin {
		api.Fail(w, http.StatusForbidden, "forbidden", "manager role required for other participants", middleware.GetRequestID(r.Context()))
		return
	}

	summary, err := h.Service.AppraisalSummary(r.Context(), user.OrganizationID, participantID)
	if err != nil {
		failReports(w, r, err, "appraisal_summary_failed", "failed to build appraisal summary")
		return
	}
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExportAppraisal(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	participantID := r.URL.Query().Get("participantId")
	if participantID == "" {
		participantID = user.UserID
	}
	if participantID != user.UserID && user.Role != identity.RoleManager && user.Role != identity.RoleAdmin {
		api.Fail(w, http.StatusForbidden, "forbidden", "manager role required for other participants", middleware.GetRequestID(r.Context()))
		return
	}

	reportID := uuid.NewString()
	path, err := h.Service.GenerateAppraisalPDF(r.Context(), user.OrganizationID, participantID, reportID)
	if err != nil {
		failReports(w, r, err, "appraisal_export_failed", "failed to export appraisal")
		return
	}
	api.Created(w, map[string]string{"reportId": reportID, "path": path}, middleware.GetRequestID(r.Context()))
}

func failReports(w http.ResponseWriter, r *http.Request, err error, code, message string) {
	requestID := middleware.GetRequestID(r.Context())
	if errors.Is(err, reports.ErrResponsibilityNotFound) {
		api.Fail(w, http.StatusNotFound, "responsibility_not_found", "responsibility not found", requestID)
		return
	}
	api.Fail(w, http.StatusInternalServerError, code, message, requestID)
}
