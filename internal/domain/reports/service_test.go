package reports

import "testing"

func TestBuildAppraisalSummary(t *testing.T) {
	scores := []ResponsibilityScore{
		{ResponsibilityID: "r1", Rollup: 80, RatedKRAs: 3, TotalKRAs: 4},
		{ResponsibilityID: "r2", Rollup: 60.5, RatedKRAs: 2, TotalKRAs: 2},
		{ResponsibilityID: "r3", Rollup: 0, RatedKRAs: 0, TotalKRAs: 5},
	}

	summary := buildAppraisalSummary("emp-1", scores)

	if summary.ParticipantID != "emp-1" {
		t.Fatalf("expected participant emp-1, got %q", summary.ParticipantID)
	}
	if summary.RatedKRAs != 5 {
		t.Fatalf("expected 5 rated KRAs, got %d", summary.RatedKRAs)
	}
	if summary.TotalKRAs != 11 {
		t.Fatalf("expected 11 total KRAs, got %d", summary.TotalKRAs)
	}
	// r3 has no ratings so it does not drag the overall score down.
	if summary.OverallScore != 70.25 {
		t.Fatalf("expected overall 70.25, got %v", summary.OverallScore)
	}
}

func TestBuildAppraisalSummaryEmpty(t *testing.T) {
	summary := buildAppraisalSummary("emp-2", nil)
	if summary.OverallScore != 0 {
		t.Fatalf("expected overall 0 for no responsibilities, got %v", summary.OverallScore)
	}
	if summary.TotalKRAs != 0 || summary.RatedKRAs != 0 {
		t.Fatalf("expected zero counts, got %d/%d", summary.RatedKRAs, summary.TotalKRAs)
	}
}
