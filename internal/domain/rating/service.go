package rating

import (
	"context"

	"kraeval/internal/domain/catalog"
)

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

// SubmitSelfRating upserts the participant's side of the submission keyed by
// (participant, KRA). Out-of-scale ratings fail before anything is written.
func (s *Service) SubmitSelfRating(ctx context.Context, params SelfRatingParams) (Submission, error) {
	if !ValidRating(params.Rating) {
		return Submission{}, ErrRatingOutOfRange
	}
	return s.store.UpsertSelfRating(ctx, params)
}

// SubmitManagerRating upserts the manager's side and derives the final and
// weight-adjusted scores from the rated KRA's weight.
func (s *Service) SubmitManagerRating(ctx context.Context, params ManagerRatingParams) (Submission, error) {
	if !ValidRating(params.Rating) {
		return Submission{}, ErrRatingOutOfRange
	}
	return s.store.UpsertManagerRating(ctx, params)
}

// FetchRatings returns a participant's submissions in creation order,
// optionally scoped to one responsibility.
func (s *Service) FetchRatings(ctx context.Context, orgID, participantID, responsibilityID string) ([]Submission, error) {
	return s.store.FetchRatings(ctx, orgID, participantID, responsibilityID)
}

func (s *Service) FetchKRAsWithRatings(ctx context.Context, orgID, participantID, responsibilityID string) ([]KRAWithRating, error) {
	return s.store.FetchKRAsWithRatings(ctx, orgID, participantID, responsibilityID)
}

func (s *Service) ActiveKRAs(ctx context.Context, orgID, responsibilityID string) ([]catalog.KRA, error) {
	return s.store.ActiveKRAs(ctx, orgID, responsibilityID)
}
