package catalog

import "context"

type StoreAPI interface {
	InsertKRA(ctx context.Context, orgID, responsibilityID string, details KRADetails) (KRA, error)
	GetKRA(ctx context.Context, orgID, kraID string) (KRA, error)
	ListKRAs(ctx context.Context, orgID, responsibilityID string, includeInactive bool) ([]KRA, error)
	UpdateKRA(ctx context.Context, orgID, kraID string, update KRAUpdate) (KRA, error)
	DeactivateKRA(ctx context.Context, orgID, kraID string) error
	ActiveTotalWeight(ctx context.Context, orgID, responsibilityID string) (int, error)
	NextSequenceOrder(ctx context.Context, orgID, responsibilityID string) (int, error)
	ApplyWeights(ctx context.Context, orgID string, kras []KRA) error
}
