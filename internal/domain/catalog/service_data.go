package catalog

import (
	"context"
	"strings"
)

type CreateKRAInput struct {
	Name              string
	Description       string
	TargetMetric      string
	MeasurementMethod string
	Weight            *int
	IsRequired        bool
	SequenceOrder     *int
}

// CreateKRA inserts a catalog KRA. When no weight is supplied it defaults to
// whatever keeps the running active total at TotalWeight, so sequential adds
// pre-fill a conforming value.
func (s *Service) CreateKRA(ctx context.Context, orgID, responsibilityID string, input CreateKRAInput) (KRA, error) {
	if strings.TrimSpace(input.Name) == "" {
		return KRA{}, ErrNameRequired
	}

	details := KRADetails{
		Name:              strings.TrimSpace(input.Name),
		Description:       input.Description,
		TargetMetric:      input.TargetMetric,
		MeasurementMethod: input.MeasurementMethod,
		IsRequired:        input.IsRequired,
	}

	if input.Weight != nil {
		details.Weight = *input.Weight
	} else {
		total, err := s.store.ActiveTotalWeight(ctx, orgID, responsibilityID)
		if err != nil {
			return KRA{}, err
		}
		details.Weight = max(0, TotalWeight-total)
	}

	if input.SequenceOrder != nil {
		details.SequenceOrder = *input.SequenceOrder
	} else {
		next, err := s.store.NextSequenceOrder(ctx, orgID, responsibilityID)
		if err != nil {
			return KRA{}, err
		}
		details.SequenceOrder = next
	}

	return s.store.InsertKRA(ctx, orgID, responsibilityID, details)
}

// UpdateKRA applies a partial update. The resulting total weight is not
// enforced here; ValidateResponsibilityWeights reports non-conformance.
func (s *Service) UpdateKRA(ctx context.Context, orgID, kraID string, update KRAUpdate) (KRA, error) {
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return KRA{}, ErrNameRequired
	}
	return s.store.UpdateKRA(ctx, orgID, kraID, update)
}

// DeleteKRA soft-removes a KRA from the active set. Rating submissions that
// reference it are kept for historical integrity.
func (s *Service) DeleteKRA(ctx context.Context, orgID, kraID string) error {
	return s.store.DeactivateKRA(ctx, orgID, kraID)
}

func (s *Service) GetKRA(ctx context.Context, orgID, kraID string) (KRA, error) {
	return s.store.GetKRA(ctx, orgID, kraID)
}

func (s *Service) ListKRAs(ctx context.Context, orgID, responsibilityID string, includeInactive bool) ([]KRA, error) {
	return s.store.ListKRAs(ctx, orgID, responsibilityID, includeInactive)
}

func (s *Service) ValidateResponsibilityWeights(ctx context.Context, orgID, responsibilityID string) (WeightValidation, error) {
	kras, err := s.store.ListKRAs(ctx, orgID, responsibilityID, false)
	if err != nil {
		return WeightValidation{}, err
	}
	return ValidateWeights(kras), nil
}

// DistributeResponsibilityWeights reassigns the active KRAs' weights evenly
// and persists the result atomically.
func (s *Service) DistributeResponsibilityWeights(ctx context.Context, orgID, responsibilityID string) ([]KRA, error) {
	kras, err := s.store.ListKRAs(ctx, orgID, responsibilityID, false)
	if err != nil {
		return nil, err
	}
	distributed := DistributeWeightsEvenly(kras)
	if len(distributed) == 0 {
		return nil, nil
	}
	if err := s.store.ApplyWeights(ctx, orgID, distributed); err != nil {
		return nil, err
	}
	return distributed, nil
}
