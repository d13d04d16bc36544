package jobkra

import (
	"context"
	"errors"
	"testing"
)

type fakeStore struct {
	clones       []CloneEntry
	customized   *CustomizeUpdate
	nextSequence int
	listed       []JobSpecificKRA
}

func (f *fakeStore) InsertClones(_ context.Context, jobResponsibilityID string, clones []CloneEntry) ([]JobSpecificKRA, error) {
	f.clones = clones
	out := make([]JobSpecificKRA, len(clones))
	for i, clone := range clones {
		out[i] = JobSpecificKRA{
			ID:                  clone.Name,
			JobResponsibilityID: jobResponsibilityID,
			SourceKRAID:         clone.SourceKRAID,
			Name:                clone.Name,
			IsInherited:         true,
			SequenceOrder:       i,
		}
	}
	return out, nil
}

func (f *fakeStore) InsertGenerated(_ context.Context, jobResponsibilityID string, details GeneratedDetails) (JobSpecificKRA, error) {
	return JobSpecificKRA{
		JobResponsibilityID: jobResponsibilityID,
		Name:                details.Name,
		AIGenerated:         true,
		SequenceOrder:       details.SequenceOrder,
	}, nil
}

func (f *fakeStore) Customize(_ context.Context, id string, update CustomizeUpdate) (JobSpecificKRA, error) {
	f.customized = &update
	kra := JobSpecificKRA{ID: id, IsInherited: false}
	if update.Name != nil {
		kra.Name = *update.Name
	}
	return kra, nil
}

func (f *fakeStore) SetWeight(_ context.Context, id string, weight int) (JobSpecificKRA, error) {
	return JobSpecificKRA{ID: id, Weight: weight}, nil
}

func (f *fakeStore) Delete(context.Context, string) error {
	return nil
}

func (f *fakeStore) Get(context.Context, string) (JobSpecificKRA, error) {
	return JobSpecificKRA{}, ErrNotFound
}

func (f *fakeStore) List(context.Context, string) ([]JobSpecificKRA, error) {
	return f.listed, nil
}

func (f *fakeStore) HasAny(context.Context, string) (bool, error) {
	return len(f.listed) > 0, nil
}

func (f *fakeStore) NextSequenceOrder(context.Context, string) (int, error) {
	return f.nextSequence, nil
}

func TestCloneFromCatalogSequencesEntries(t *testing.T) {
	store := &fakeStore{}
	service := NewService(store)

	sourceID := "kra-2"
	cloned, err := service.CloneFromCatalog(context.Background(), "job-1", []CloneEntry{
		{Name: "Stakeholder communication"},
		{Name: "Delivery quality", SourceKRAID: &sourceID},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cloned) != 2 {
		t.Fatalf("expected 2 clones, got %d", len(cloned))
	}
	for i, kra := range cloned {
		if !kra.IsInherited {
			t.Fatalf("expected clone %d to be inherited", i)
		}
		if kra.Weight != 0 {
			t.Fatalf("expected clone %d weight 0 until set, got %d", i, kra.Weight)
		}
		if kra.SequenceOrder != i {
			t.Fatalf("expected clone %d sequence %d, got %d", i, i, kra.SequenceOrder)
		}
	}
}

func TestCloneFromCatalogRejectsBlankNames(t *testing.T) {
	store := &fakeStore{}
	service := NewService(store)

	_, err := service.CloneFromCatalog(context.Background(), "job-1", []CloneEntry{{Name: " "}})
	if !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
	if store.clones != nil {
		t.Fatal("expected no insert on validation failure")
	}

	if _, err := service.CloneFromCatalog(context.Background(), "job-1", nil); !errors.Is(err, ErrNamesRequired) {
		t.Fatalf("expected ErrNamesRequired for empty list, got %v", err)
	}
}

func TestCustomizeRejectsBlankName(t *testing.T) {
	store := &fakeStore{}
	service := NewService(store)

	blank := "  "
	_, err := service.Customize(context.Background(), "jk-1", CustomizeUpdate{Name: &blank})
	if !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
	if store.customized != nil {
		t.Fatal("expected no update on validation failure")
	}
}

func TestListForJobReportsCustomPresence(t *testing.T) {
	store := &fakeStore{listed: []JobSpecificKRA{{ID: "jk-1", Name: "Custom"}}}
	service := NewService(store)

	listing, err := service.ListForJob(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !listing.HasCustom {
		t.Fatal("expected HasCustom when job-specific KRAs exist")
	}

	store.listed = nil
	listing, err = service.ListForJob(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if listing.HasCustom {
		t.Fatal("expected HasCustom false when no job-specific KRAs exist")
	}
}
