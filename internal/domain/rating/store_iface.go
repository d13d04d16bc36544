package rating

import (
	"context"

	"kraeval/internal/domain/catalog"
)

type StoreAPI interface {
	UpsertSelfRating(ctx context.Context, params SelfRatingParams) (Submission, error)
	UpsertManagerRating(ctx context.Context, params ManagerRatingParams) (Submission, error)
	FetchRatings(ctx context.Context, orgID, participantID, responsibilityID string) ([]Submission, error)
	FetchKRAsWithRatings(ctx context.Context, orgID, participantID, responsibilityID string) ([]KRAWithRating, error)
	ActiveKRAs(ctx context.Context, orgID, responsibilityID string) ([]catalog.KRA, error)
}
