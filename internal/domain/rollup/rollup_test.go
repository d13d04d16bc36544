package rollup

import (
	"testing"

	"kraeval/internal/domain/catalog"
	"kraeval/internal/domain/rating"
)

func floatPtr(v float64) *float64 { return &v }

func defs(kras ...catalog.KRA) []rating.KRADefinition {
	return Definitions(kras)
}

func TestRollupWeightsFinalScores(t *testing.T) {
	ratings := []rating.Submission{
		{KRAID: "a", FinalScore: floatPtr(4)},
		{KRAID: "b", FinalScore: floatPtr(2)},
	}
	kras := defs(
		catalog.KRA{ID: "a", Weight: 75},
		catalog.KRA{ID: "b", Weight: 25},
	)

	// (4*75 + 2*25) / 100 = 3.5
	if got := CalculateResponsibilityRollup(ratings, kras); got != 3.5 {
		t.Fatalf("expected rollup 3.5, got %v", got)
	}
}

func TestRollupIgnoresUnratedKRAs(t *testing.T) {
	ratings := []rating.Submission{
		{KRAID: "a", FinalScore: floatPtr(4)},
		{KRAID: "b", FinalScore: nil},
	}
	kras := defs(
		catalog.KRA{ID: "a", Weight: 50},
		catalog.KRA{ID: "b", Weight: 50},
	)

	// Only the rated half counts: (4*50)/50 = 4.00, not 2.00.
	if got := CalculateResponsibilityRollup(ratings, kras); got != 4.0 {
		t.Fatalf("expected rollup 4.0 over rated weight only, got %v", got)
	}
}

func TestRollupNoUsableRatings(t *testing.T) {
	kras := defs(catalog.KRA{ID: "a", Weight: 100})

	if got := CalculateResponsibilityRollup(nil, kras); got != 0 {
		t.Fatalf("expected 0 for empty ratings, got %v", got)
	}
	if got := CalculateResponsibilityRollup([]rating.Submission{{KRAID: "a"}}, kras); got != 0 {
		t.Fatalf("expected 0 when no final scores exist, got %v", got)
	}
	if got := CalculateResponsibilityRollup([]rating.Submission{{KRAID: "a", FinalScore: floatPtr(3)}}, nil); got != 0 {
		t.Fatalf("expected 0 for empty KRA set, got %v", got)
	}
}

func TestRollupZeroWeightsDoNotDivide(t *testing.T) {
	ratings := []rating.Submission{{KRAID: "a", FinalScore: floatPtr(5)}}
	kras := defs(catalog.KRA{ID: "a", Weight: 0})

	if got := CalculateResponsibilityRollup(ratings, kras); got != 0 {
		t.Fatalf("expected 0 when rated weight totals 0, got %v", got)
	}
}

func TestRollupRoundsToTwoDecimals(t *testing.T) {
	ratings := []rating.Submission{
		{KRAID: "a", FinalScore: floatPtr(4)},
		{KRAID: "b", FinalScore: floatPtr(3)},
		{KRAID: "c", FinalScore: floatPtr(5)},
	}
	kras := defs(
		catalog.KRA{ID: "a", Weight: 33},
		catalog.KRA{ID: "b", Weight: 33},
		catalog.KRA{ID: "c", Weight: 34},
	)

	// (4*33 + 3*33 + 5*34) / 100 = 4.01
	if got := CalculateResponsibilityRollup(ratings, kras); got != 4.01 {
		t.Fatalf("expected rollup 4.01, got %v", got)
	}
}
