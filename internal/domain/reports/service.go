package reports

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"kraeval/internal/domain/rating"
	"kraeval/internal/domain/rollup"
	cryptoutil "kraeval/internal/platform/crypto"
)

type Service struct {
	store      *Store
	ratings    rating.StoreAPI
	crypto     *cryptoutil.Service
	reportsDir string
}

func NewService(store *Store, ratings rating.StoreAPI, crypto *cryptoutil.Service, reportsDir string) *Service {
	return &Service{store: store, ratings: ratings, crypto: crypto, reportsDir: reportsDir}
}

// AppraisalSummary rolls every responsibility a participant has been rated
// under into one report: per-responsibility rollups, completion counts and
// an overall score averaged over responsibilities that produced a rollup.
func (s *Service) AppraisalSummary(ctx context.Context, orgID, participantID string) (AppraisalSummary, error) {
	responsibilityIDs, err := s.store.ParticipantResponsibilityIDs(ctx, orgID, participantID)
	if err != nil {
		return AppraisalSummary{}, err
	}

	var scores []ResponsibilityScore
	for _, responsibilityID := range responsibilityIDs {
		score, err := s.responsibilityScore(ctx, orgID, participantID, responsibilityID)
		if err != nil {
			return AppraisalSummary{}, err
		}
		scores = append(scores, score)
	}
	return buildAppraisalSummary(participantID, scores), nil
}

func (s *Service) responsibilityScore(ctx context.Context, orgID, participantID, responsibilityID string) (ResponsibilityScore, error) {
	title, err := s.store.ResponsibilityTitle(ctx, orgID, responsibilityID)
	if err != nil && err != ErrResponsibilityNotFound {
		return ResponsibilityScore{}, err
	}

	submissions, err := s.ratings.FetchRatings(ctx, orgID, participantID, responsibilityID)
	if err != nil {
		return ResponsibilityScore{}, err
	}
	kras, err := s.ratings.ActiveKRAs(ctx, orgID, responsibilityID)
	if err != nil {
		return ResponsibilityScore{}, err
	}

	rated := 0
	byKRA := map[string]rating.Submission{}
	for _, sub := range submissions {
		byKRA[sub.KRAID] = sub
	}
	for _, kra := range kras {
		if sub, ok := byKRA[kra.ID]; ok && sub.FinalScore != nil {
			rated++
		}
	}

	return ResponsibilityScore{
		ResponsibilityID: responsibilityID,
		Title:            title,
		Rollup:           rollup.CalculateResponsibilityRollup(submissions, rollup.Definitions(kras)),
		RatedKRAs:        rated,
		TotalKRAs:        len(kras),
	}, nil
}

func buildAppraisalSummary(participantID string, scores []ResponsibilityScore) AppraisalSummary {
	summary := AppraisalSummary{ParticipantID: participantID, Responsibilities: scores}

	scoredCount := 0
	total := 0.0
	for _, score := range scores {
		summary.RatedKRAs += score.RatedKRAs
		summary.TotalKRAs += score.TotalKRAs
		if score.RatedKRAs > 0 {
			total += score.Rollup
			scoredCount++
		}
	}
	if scoredCount > 0 {
		summary.OverallScore = math.Round(total/float64(scoredCount)*100) / 100
	}
	return summary
}

// GenerateAppraisalPDF writes the participant's appraisal summary to disk
// and returns the file path. With an encryption key configured the PDF is
// stored encrypted and the plaintext removed.
func (s *Service) GenerateAppraisalPDF(ctx context.Context, orgID, participantID, reportID string) (string, error) {
	summary, err := s.AppraisalSummary(ctx, orgID, participantID)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.reportsDir, 0o755); err != nil {
		return "", err
	}
	filePath := filepath.Join(s.reportsDir, reportID+".pdf")

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Appraisal Summary")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Participant: %s", participantID))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Generated: %s", time.Now().UTC().Format("2006-01-02")))
	pdf.Ln(10)
	for _, score := range summary.Responsibilities {
		title := score.Title
		if title == "" {
			title = score.ResponsibilityID
		}
		pdf.Cell(0, 8, fmt.Sprintf("%s: %.2f (%d of %d KRAs rated)", title, score.Rollup, score.RatedKRAs, score.TotalKRAs))
		pdf.Ln(7)
	}
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Overall score: %.2f", summary.OverallScore))

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", err
	}

	if s.crypto != nil && s.crypto.Configured() {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return "", err
		}
		encrypted, err := s.crypto.Encrypt(data)
		if err != nil {
			return "", err
		}
		encryptedPath := filePath + ".enc"
		if err := os.WriteFile(encryptedPath, encrypted, 0o600); err != nil {
			return "", err
		}
		if err := os.Remove(filePath); err != nil {
			return "", err
		}
		return encryptedPath, nil
	}

	return filePath, nil
}
