package rollup

import (
	"context"

	"kraeval/internal/domain/rating"
)

// Service computes rollups from stored ratings. It reads through the rating
// store rather than keeping state of its own.
type Service struct {
	store rating.StoreAPI
}

func NewService(store rating.StoreAPI) *Service {
	return &Service{store: store}
}

// ResponsibilityRollup loads a participant's submissions and the
// responsibility's active KRAs and reduces them to one weighted score.
func (s *Service) ResponsibilityRollup(ctx context.Context, orgID, participantID, responsibilityID string) (float64, error) {
	ratings, err := s.store.FetchRatings(ctx, orgID, participantID, responsibilityID)
	if err != nil {
		return 0, err
	}
	kras, err := s.store.ActiveKRAs(ctx, orgID, responsibilityID)
	if err != nil {
		return 0, err
	}
	return CalculateResponsibilityRollup(ratings, Definitions(kras)), nil
}
