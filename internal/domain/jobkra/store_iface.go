package jobkra

import "context"

type StoreAPI interface {
	InsertClones(ctx context.Context, jobResponsibilityID string, clones []CloneEntry) ([]JobSpecificKRA, error)
	InsertGenerated(ctx context.Context, jobResponsibilityID string, details GeneratedDetails) (JobSpecificKRA, error)
	Customize(ctx context.Context, id string, update CustomizeUpdate) (JobSpecificKRA, error)
	SetWeight(ctx context.Context, id string, weight int) (JobSpecificKRA, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (JobSpecificKRA, error)
	List(ctx context.Context, jobResponsibilityID string) ([]JobSpecificKRA, error)
	HasAny(ctx context.Context, jobResponsibilityID string) (bool, error)
	NextSequenceOrder(ctx context.Context, jobResponsibilityID string) (int, error)
}
