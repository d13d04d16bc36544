package ratinghandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"kraeval/internal/domain/identity"
	"kraeval/internal/domain/rating"
	"kraeval/internal/domain/rollup"
	"kraeval/internal/transport/http/api"
	"kraeval/internal/transport/http/middleware"
	"kraeval/internal/transport/http/shared"
)

type Handler struct {
	Service *rating.Service
	Rollup  *rollup.Service
}

func NewHandler(service *rating.Service, rollupSvc *rollup.Service) *Handler {
	return &Handler{Service: service, Rollup: rollupSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/ratings", func(r chi.Router) {
		r.Get("/", h.handleFetchRatings)
		r.Post("/self", h.handleSubmitSelf)
		r.Post("/manager", h.handleSubmitManager)
	})
	r.Get("/responsibilities/{responsibilityID}/rating-sheet", h.handleRatingSheet)
	r.Get("/responsibilities/{responsibilityID}/rollup", h.handleRollup)
}

type selfRatingPayload struct {
	KRAID            string  `json:"responsibilityKraId"`
	ResponsibilityID string  `json:"responsibilityId"`
	Rating           int     `json:"rating"`
	Comments         *string `json:"comments"`
}

func (h *Handler) handleSubmitSelf(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload selfRatingPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("responsibilityKraId", payload.KRAID, "responsibilityKraId is required")
	v.IntRange("rating", payload.Rating, rating.ScaleMin, rating.ScaleMax)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	submission, err := h.Service.SubmitSelfRating(r.Context(), rating.SelfRatingParams{
		OrganizationID:   user.OrganizationID,
		ParticipantID:    user.UserID,
		KRAID:            payload.KRAID,
		ResponsibilityID: payload.ResponsibilityID,
		Rating:           payload.Rating,
		Comments:         payload.Comments,
	})
	if err != nil {
		failRating(w, r, err, "self_rating_failed", "failed to submit self rating")
		return
	}
	api.Success(w, submission, middleware.GetRequestID(r.Context()))
}

type managerRatingPayload struct {
	ParticipantID    string  `json:"participantId"`
	KRAID            string  `json:"responsibilityKraId"`
	ResponsibilityID string  `json:"responsibilityId"`
	Rating           int     `json:"rating"`
	Comments         *string `json:"comments"`
}

func (h *Handler) handleSubmitManager(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	if user.Role != identity.RoleManager && user.Role != identity.RoleAdmin {
		api.Fail(w, http.StatusForbidden, "forbidden", "manager role required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload managerRatingPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("participantId", payload.ParticipantID, "participantId is required")
	v.Required("responsibilityKraId", payload.KRAID, "responsibilityKraId is required")
	v.IntRange("rating", payload.Rating, rating.ScaleMin, rating.ScaleMax)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	submission, err := h.Service.SubmitManagerRating(r.Context(), rating.ManagerRatingParams{
		OrganizationID:   user.OrganizationID,
		ParticipantID:    payload.ParticipantID,
		KRAID:            payload.KRAID,
		ResponsibilityID: payload.ResponsibilityID,
		ManagerID:        user.UserID,
		Rating:           payload.Rating,
		Comments:         payload.Comments,
	})
	if err != nil {
		failRating(w, r, err, "manager_rating_failed", "failed to submit manager rating")
		return
	}
	api.Success(w, submission, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleFetchRatings(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	participantID := r.URL.Query().Get("participantId")
	if participantID == "" {
		participantID = user.UserID
	}
	responsibilityID := r.URL.Query().Get("responsibilityId")

	ratings, err := h.Service.FetchRatings(r.Context(), user.OrganizationID, participantID, responsibilityID)
	if err != nil {
		failRating(w, r, err, "ratings_fetch_failed", "failed to fetch ratings")
		return
	}

	page := shared.ParsePagination(r, 50, 200)
	if page.Offset >= len(ratings) {
		ratings = nil
	} else if end := page.Offset + page.Limit; end < len(ratings) {
		ratings = ratings[page.Offset:end]
	} else {
		ratings = ratings[page.Offset:]
	}
	api.Success(w, ratings, middleware.GetRequestID(r.Context()))
}

// handleRatingSheet returns the active KRA set for a responsibility with the
// participant's submission joined per KRA, which is what a rating screen
// renders in one call.
func (h *Handler) handleRatingSheet(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	participantID := r.URL.Query().Get("participantId")
	if participantID == "" {
		participantID = user.UserID
	}

	sheet, err := h.Service.FetchKRAsWithRatings(r.Context(), user.OrganizationID, participantID, chi.URLParam(r, "responsibilityID"))
	if err != nil {
		failRating(w, r, err, "rating_sheet_failed", "failed to fetch rating sheet")
		return
	}
	api.Success(w, sheet, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRollup(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	participantID := r.URL.Query().Get("participantId")
	if participantID == "" {
		participantID = user.UserID
	}

	score, err := h.Rollup.ResponsibilityRollup(r.Context(), user.OrganizationID, participantID, chi.URLParam(r, "responsibilityID"))
	if err != nil {
		failRating(w, r, err, "rollup_failed", "failed to calculate rollup")
		return
	}
	api.Success(w, map[string]float64{"rollup": score}, middleware.GetRequestID(r.Context()))
}

func failRating(w http.ResponseWriter, r *http.Request, err error, code, message string) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, rating.ErrRatingOutOfRange):
		api.Fail(w, http.StatusBadRequest, "rating_out_of_range", err.Error(), requestID)
	case errors.Is(err, rating.ErrKRANotFound):
		api.Fail(w, http.StatusNotFound, "kra_not_found", "rated kra not found", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, code, message, requestID)
	}
}
