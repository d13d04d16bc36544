package jobkra

import (
	"context"
	"strings"
)

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

type GeneratedInput struct {
	Name              string
	JobSpecificTarget string
	MeasurementMethod string
	AISource          string
}

// Listing is what rendering consumers work from: the job-specific set plus
// the flag that tells them to hide the inherited catalog list by default.
// The catalog list itself stays retrievable through the catalog service.
type Listing struct {
	KRAs      []JobSpecificKRA `json:"kras"`
	HasCustom bool             `json:"hasCustom"`
}

// CloneFromCatalog bulk-creates one inherited record per catalog entry,
// sequenced in the supplied order. Used when a user opts to edit the
// inherited list manually.
func (s *Service) CloneFromCatalog(ctx context.Context, jobResponsibilityID string, entries []CloneEntry) ([]JobSpecificKRA, error) {
	if len(entries) == 0 {
		return nil, ErrNamesRequired
	}
	for i := range entries {
		entries[i].Name = strings.TrimSpace(entries[i].Name)
		if entries[i].Name == "" {
			return nil, ErrNameRequired
		}
	}
	return s.store.InsertClones(ctx, jobResponsibilityID, entries)
}

// CreateGenerated records a KRA produced by an external contextualize
// assistant. Generation itself happens outside this engine; only the result
// and its provenance are stored.
func (s *Service) CreateGenerated(ctx context.Context, jobResponsibilityID string, input GeneratedInput) (JobSpecificKRA, error) {
	if strings.TrimSpace(input.Name) == "" {
		return JobSpecificKRA{}, ErrNameRequired
	}

	next, err := s.store.NextSequenceOrder(ctx, jobResponsibilityID)
	if err != nil {
		return JobSpecificKRA{}, err
	}

	details := GeneratedDetails{
		Name:          strings.TrimSpace(input.Name),
		AISource:      input.AISource,
		SequenceOrder: next,
	}
	if input.JobSpecificTarget != "" {
		details.JobSpecificTarget = &input.JobSpecificTarget
	}
	if input.MeasurementMethod != "" {
		details.MeasurementMethod = &input.MeasurementMethod
	}
	return s.store.InsertGenerated(ctx, jobResponsibilityID, details)
}

// Customize edits content fields in place. Any content edit flips the record
// from inherited to customized.
func (s *Service) Customize(ctx context.Context, id string, update CustomizeUpdate) (JobSpecificKRA, error) {
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return JobSpecificKRA{}, ErrNameRequired
	}
	return s.store.Customize(ctx, id, update)
}

func (s *Service) SetWeight(ctx context.Context, id string, weight int) (JobSpecificKRA, error) {
	return s.store.SetWeight(ctx, id, weight)
}

// Remove hard-deletes a job-specific KRA. The catalog entry it was cloned
// from is unaffected, as are any rating submissions.
func (s *Service) Remove(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

func (s *Service) Get(ctx context.Context, id string) (JobSpecificKRA, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) ListForJob(ctx context.Context, jobResponsibilityID string) (Listing, error) {
	kras, err := s.store.List(ctx, jobResponsibilityID)
	if err != nil {
		return Listing{}, err
	}
	return Listing{KRAs: kras, HasCustom: len(kras) > 0}, nil
}
