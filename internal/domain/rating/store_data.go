package rating

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"kraeval/internal/domain/catalog"
	"kraeval/internal/platform/querier"
)

const submissionColumns = "id, organization_id, participant_id, responsibility_kra_id, responsibility_id, self_rating, self_comments, self_rating_at, manager_id, manager_rating, manager_comments, manager_rating_at, calculated_score, final_score, weight_adjusted_score, status, created_at, updated_at"

type SelfRatingParams struct {
	OrganizationID   string
	ParticipantID    string
	KRAID            string
	ResponsibilityID string
	Rating           int
	Comments         *string
}

type ManagerRatingParams struct {
	OrganizationID   string
	ParticipantID    string
	KRAID            string
	ResponsibilityID string
	ManagerID        string
	Rating           int
	Comments         *string
}

// UpsertSelfRating records the participant's side of a submission. The row
// is locked for the duration of the merge so a concurrent writer cannot
// interleave between read and write.
func (s *Store) UpsertSelfRating(ctx context.Context, params SelfRatingParams) (Submission, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return Submission{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	weight, err := kraWeight(ctx, tx, params.OrganizationID, params.KRAID)
	if err != nil {
		return Submission{}, err
	}

	existing, found, err := lockSubmission(ctx, tx, params.ParticipantID, params.KRAID)
	if err != nil {
		return Submission{}, err
	}

	var submission Submission
	if !found {
		row := tx.QueryRow(ctx, `
      INSERT INTO kra_rating_submissions (organization_id, participant_id, responsibility_kra_id, responsibility_id, self_rating, self_comments, self_rating_at, status)
      VALUES ($1,$2,$3,$4,$5,$6,now(),$7)
      RETURNING `+submissionColumns, params.OrganizationID, params.ParticipantID, params.KRAID, params.ResponsibilityID, params.Rating, params.Comments, StatusSelfRated)
		submission, err = scanSubmission(row)
		if err != nil {
			return Submission{}, err
		}
		return submission, tx.Commit(ctx)
	}

	// A manager rating may already be present; keep the blended scores in
	// step with the new self rating.
	finalScore := BlendFinalScore(&params.Rating, existing.ManagerRating)
	var weightAdjusted *float64
	if finalScore != nil {
		adjusted := WeightAdjustedScore(*finalScore, weight)
		weightAdjusted = &adjusted
	}

	row := tx.QueryRow(ctx, `
    UPDATE kra_rating_submissions
    SET self_rating = $2, self_comments = $3, self_rating_at = now(),
        final_score = $4, weight_adjusted_score = $5, status = $6, updated_at = now()
    WHERE id = $1
    RETURNING `+submissionColumns, existing.ID, params.Rating, params.Comments, finalScore, weightAdjusted, NextStatus(existing.Status, SideSelf))
	submission, err = scanSubmission(row)
	if err != nil {
		return Submission{}, err
	}
	return submission, tx.Commit(ctx)
}

// UpsertManagerRating records the manager's side and derives the scores:
// calculated keeps the raw manager input, final blends with any self rating,
// weight-adjusted normalizes the final score against the KRA's weight.
func (s *Store) UpsertManagerRating(ctx context.Context, params ManagerRatingParams) (Submission, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return Submission{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	weight, err := kraWeight(ctx, tx, params.OrganizationID, params.KRAID)
	if err != nil {
		return Submission{}, err
	}

	existing, found, err := lockSubmission(ctx, tx, params.ParticipantID, params.KRAID)
	if err != nil {
		return Submission{}, err
	}

	var selfRating *int
	status := StatusManagerRated
	if found {
		selfRating = existing.SelfRating
		status = NextStatus(existing.Status, SideManager)
	}

	calculated := float64(params.Rating)
	finalScore := *BlendFinalScore(selfRating, &params.Rating)
	weightAdjusted := WeightAdjustedScore(finalScore, weight)

	var submission Submission
	if !found {
		row := tx.QueryRow(ctx, `
      INSERT INTO kra_rating_submissions (organization_id, participant_id, responsibility_kra_id, responsibility_id, manager_id, manager_rating, manager_comments, manager_rating_at, calculated_score, final_score, weight_adjusted_score, status)
      VALUES ($1,$2,$3,$4,$5,$6,$7,now(),$8,$9,$10,$11)
      RETURNING `+submissionColumns, params.OrganizationID, params.ParticipantID, params.KRAID, params.ResponsibilityID, params.ManagerID, params.Rating, params.Comments, calculated, finalScore, weightAdjusted, status)
		submission, err = scanSubmission(row)
		if err != nil {
			return Submission{}, err
		}
		return submission, tx.Commit(ctx)
	}

	row := tx.QueryRow(ctx, `
    UPDATE kra_rating_submissions
    SET manager_id = $2, manager_rating = $3, manager_comments = $4, manager_rating_at = now(),
        calculated_score = $5, final_score = $6, weight_adjusted_score = $7, status = $8, updated_at = now()
    WHERE id = $1
    RETURNING `+submissionColumns, existing.ID, params.ManagerID, params.Rating, params.Comments, calculated, finalScore, weightAdjusted, status)
	submission, err = scanSubmission(row)
	if err != nil {
		return Submission{}, err
	}
	return submission, tx.Commit(ctx)
}

func (s *Store) FetchRatings(ctx context.Context, orgID, participantID, responsibilityID string) ([]Submission, error) {
	query := `
    SELECT ` + submissionColumns + `
    FROM kra_rating_submissions
    WHERE organization_id = $1 AND participant_id = $2
  `
	args := []any{orgID, participantID}
	if responsibilityID != "" {
		query += " AND responsibility_id = $3"
		args = append(args, responsibilityID)
	}
	query += " ORDER BY created_at"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var submissions []Submission
	for rows.Next() {
		submission, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, submission)
	}
	return submissions, rows.Err()
}

// FetchKRAsWithRatings returns every active KRA for a responsibility joined
// with the participant's submission, nil when unrated. One row per KRA
// regardless of completion state.
func (s *Store) FetchKRAsWithRatings(ctx context.Context, orgID, participantID, responsibilityID string) ([]KRAWithRating, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT k.id, k.organization_id, k.responsibility_id, k.name, k.description, k.target_metric, k.measurement_method, k.weight, k.is_required, k.is_active, k.sequence_order, k.created_at, k.updated_at,
           r.id, r.organization_id, r.participant_id, r.responsibility_kra_id, r.responsibility_id, r.self_rating, r.self_comments, r.self_rating_at, r.manager_id, r.manager_rating, r.manager_comments, r.manager_rating_at, r.calculated_score, r.final_score, r.weight_adjusted_score, r.status, r.created_at, r.updated_at
    FROM responsibility_kras k
    LEFT JOIN kra_rating_submissions r
      ON r.responsibility_kra_id = k.id AND r.participant_id = $3
    WHERE k.organization_id = $1 AND k.responsibility_id = $2 AND k.is_active
    ORDER BY k.sequence_order, k.created_at
  `, orgID, responsibilityID, participantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []KRAWithRating
	for rows.Next() {
		var entry KRAWithRating
		var subID, subOrgID, subParticipantID, subKRAID, subResponsibilityID, subStatus *string
		var subCreatedAt, subUpdatedAt *time.Time
		sub := Submission{}
		kra := &entry.KRA
		if err := rows.Scan(
			&kra.ID, &kra.OrganizationID, &kra.ResponsibilityID, &kra.Name, &kra.Description, &kra.TargetMetric, &kra.MeasurementMethod, &kra.Weight, &kra.IsRequired, &kra.IsActive, &kra.SequenceOrder, &kra.CreatedAt, &kra.UpdatedAt,
			&subID, &subOrgID, &subParticipantID, &subKRAID, &subResponsibilityID, &sub.SelfRating, &sub.SelfComments, &sub.SelfRatingAt, &sub.ManagerID, &sub.ManagerRating, &sub.ManagerComments, &sub.ManagerRatingAt, &sub.CalculatedScore, &sub.FinalScore, &sub.WeightAdjustedScore, &subStatus, &subCreatedAt, &subUpdatedAt,
		); err != nil {
			return nil, err
		}
		if subID != nil {
			sub.ID = *subID
			sub.OrganizationID = *subOrgID
			sub.ParticipantID = *subParticipantID
			sub.KRAID = *subKRAID
			sub.ResponsibilityID = *subResponsibilityID
			sub.Status = *subStatus
			sub.CreatedAt = *subCreatedAt
			sub.UpdatedAt = *subUpdatedAt
			entry.Rating = &sub
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

// ActiveKRAs exposes the catalog rows the rollup runs against.
func (s *Store) ActiveKRAs(ctx context.Context, orgID, responsibilityID string) ([]catalog.KRA, error) {
	return catalog.NewStore(s.DB).ListKRAs(ctx, orgID, responsibilityID, false)
}

func lockSubmission(ctx context.Context, q querier.Querier, participantID, kraID string) (Submission, bool, error) {
	row := q.QueryRow(ctx, `
    SELECT `+submissionColumns+`
    FROM kra_rating_submissions
    WHERE participant_id = $1 AND responsibility_kra_id = $2
    FOR UPDATE
  `, participantID, kraID)
	submission, err := scanSubmission(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Submission{}, false, nil
	}
	if err != nil {
		return Submission{}, false, err
	}
	return submission, true, nil
}

func kraWeight(ctx context.Context, q querier.Querier, orgID, kraID string) (int, error) {
	var weight int
	err := q.QueryRow(ctx, `
    SELECT weight
    FROM responsibility_kras
    WHERE organization_id = $1 AND id = $2
  `, orgID, kraID).Scan(&weight)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrKRANotFound
	}
	return weight, err
}

func scanSubmission(row pgx.Row) (Submission, error) {
	var sub Submission
	err := row.Scan(&sub.ID, &sub.OrganizationID, &sub.ParticipantID, &sub.KRAID, &sub.ResponsibilityID, &sub.SelfRating, &sub.SelfComments, &sub.SelfRatingAt, &sub.ManagerID, &sub.ManagerRating, &sub.ManagerComments, &sub.ManagerRatingAt, &sub.CalculatedScore, &sub.FinalScore, &sub.WeightAdjustedScore, &sub.Status, &sub.CreatedAt, &sub.UpdatedAt)
	return sub, err
}
