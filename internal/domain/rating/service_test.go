package rating

import (
	"context"
	"errors"
	"testing"

	"kraeval/internal/domain/catalog"
)

type fakeStore struct {
	selfCalls    int
	managerCalls int
}

func (f *fakeStore) UpsertSelfRating(_ context.Context, params SelfRatingParams) (Submission, error) {
	f.selfCalls++
	return Submission{
		ParticipantID: params.ParticipantID,
		KRAID:         params.KRAID,
		SelfRating:    &params.Rating,
		Status:        StatusSelfRated,
	}, nil
}

func (f *fakeStore) UpsertManagerRating(_ context.Context, params ManagerRatingParams) (Submission, error) {
	f.managerCalls++
	return Submission{
		ParticipantID: params.ParticipantID,
		KRAID:         params.KRAID,
		ManagerRating: &params.Rating,
		Status:        StatusManagerRated,
	}, nil
}

func (f *fakeStore) FetchRatings(context.Context, string, string, string) ([]Submission, error) {
	return nil, nil
}

func (f *fakeStore) FetchKRAsWithRatings(context.Context, string, string, string) ([]KRAWithRating, error) {
	return nil, nil
}

func (f *fakeStore) ActiveKRAs(context.Context, string, string) ([]catalog.KRA, error) {
	return nil, nil
}

func TestSubmitSelfRatingRejectsOutOfScale(t *testing.T) {
	store := &fakeStore{}
	service := NewService(store)

	for _, rating := range []int{0, 6, -1} {
		_, err := service.SubmitSelfRating(context.Background(), SelfRatingParams{
			ParticipantID: "emp-1", KRAID: "kra-1", Rating: rating,
		})
		if !errors.Is(err, ErrRatingOutOfRange) {
			t.Fatalf("rating %d: expected ErrRatingOutOfRange, got %v", rating, err)
		}
	}
	if store.selfCalls != 0 {
		t.Fatalf("expected no store writes on invalid input, got %d", store.selfCalls)
	}
}

func TestSubmitManagerRatingRejectsOutOfScale(t *testing.T) {
	store := &fakeStore{}
	service := NewService(store)

	_, err := service.SubmitManagerRating(context.Background(), ManagerRatingParams{
		ParticipantID: "emp-1", KRAID: "kra-1", ManagerID: "mgr-1", Rating: 6,
	})
	if !errors.Is(err, ErrRatingOutOfRange) {
		t.Fatalf("expected ErrRatingOutOfRange, got %v", err)
	}
	if store.managerCalls != 0 {
		t.Fatalf("expected no store writes on invalid input, got %d", store.managerCalls)
	}
}

func TestSubmitBoundaryRatingsAccepted(t *testing.T) {
	store := &fakeStore{}
	service := NewService(store)

	for _, rating := range []int{ScaleMin, ScaleMax} {
		if _, err := service.SubmitSelfRating(context.Background(), SelfRatingParams{
			ParticipantID: "emp-1", KRAID: "kra-1", Rating: rating,
		}); err != nil {
			t.Fatalf("rating %d: unexpected error: %v", rating, err)
		}
	}
	if store.selfCalls != 2 {
		t.Fatalf("expected 2 store writes, got %d", store.selfCalls)
	}
}
