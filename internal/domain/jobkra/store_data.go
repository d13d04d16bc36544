package jobkra

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

const jobKRAColumns = "id, job_responsibility_id, source_kra_id, name, job_specific_target, measurement_method, weight, is_inherited, ai_generated, ai_source, sequence_order, customized_at, created_at"

type CloneEntry struct {
	Name        string
	SourceKRAID *string
}

type GeneratedDetails struct {
	Name              string
	JobSpecificTarget *string
	MeasurementMethod *string
	AISource          string
	SequenceOrder     int
}

// CustomizeUpdate carries content edits; nil fields are left untouched.
type CustomizeUpdate struct {
	Name              *string
	JobSpecificTarget *string
	MeasurementMethod *string
}

// InsertClones bulk-inserts one inherited record per catalog entry in a
// single transaction. Weights start at zero until explicitly set.
func (s *Store) InsertClones(ctx context.Context, jobResponsibilityID string, clones []CloneEntry) ([]JobSpecificKRA, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	out := make([]JobSpecificKRA, 0, len(clones))
	for i, clone := range clones {
		row := tx.QueryRow(ctx, `
      INSERT INTO job_specific_kras (job_responsibility_id, source_kra_id, name, weight, is_inherited, sequence_order)
      VALUES ($1,$2,$3,0,true,$4)
      RETURNING `+jobKRAColumns, jobResponsibilityID, clone.SourceKRAID, clone.Name, i)
		kra, err := scanJobKRA(row)
		if err != nil {
			return nil, err
		}
		out = append(out, kra)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) InsertGenerated(ctx context.Context, jobResponsibilityID string, details GeneratedDetails) (JobSpecificKRA, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO job_specific_kras (job_responsibility_id, name, job_specific_target, measurement_method, weight, is_inherited, ai_generated, ai_source, sequence_order)
    VALUES ($1,$2,$3,$4,0,false,true,$5,$6)
    RETURNING `+jobKRAColumns, jobResponsibilityID, details.Name, details.JobSpecificTarget, details.MeasurementMethod, details.AISource, details.SequenceOrder)
	return scanJobKRA(row)
}

// Customize updates content fields, drops inherited provenance and stamps
// the customization time.
func (s *Store) Customize(ctx context.Context, id string, update CustomizeUpdate) (JobSpecificKRA, error) {
	sets := []string{"is_inherited = false", "customized_at = now()"}
	args := []any{id}

	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if update.Name != nil {
		addSet("name", *update.Name)
	}
	if update.JobSpecificTarget != nil {
		addSet("job_specific_target", *update.JobSpecificTarget)
	}
	if update.MeasurementMethod != nil {
		addSet("measurement_method", *update.MeasurementMethod)
	}

	query := "UPDATE job_specific_kras SET " + sets[0]
	for _, set := range sets[1:] {
		query += ", " + set
	}
	query += " WHERE id = $1 RETURNING " + jobKRAColumns

	kra, err := scanJobKRA(s.DB.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return JobSpecificKRA{}, ErrNotFound
	}
	return kra, err
}

// SetWeight changes only the weight. Weight edits do not affect inherited
// provenance.
func (s *Store) SetWeight(ctx context.Context, id string, weight int) (JobSpecificKRA, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE job_specific_kras
    SET weight = $2
    WHERE id = $1
    RETURNING `+jobKRAColumns, id, weight)
	kra, err := scanJobKRA(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return JobSpecificKRA{}, ErrNotFound
	}
	return kra, err
}

func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM job_specific_kras WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (JobSpecificKRA, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+jobKRAColumns+`
    FROM job_specific_kras
    WHERE id = $1
  `, id)
	kra, err := scanJobKRA(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return JobSpecificKRA{}, ErrNotFound
	}
	return kra, err
}

func (s *Store) List(ctx context.Context, jobResponsibilityID string) ([]JobSpecificKRA, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+jobKRAColumns+`
    FROM job_specific_kras
    WHERE job_responsibility_id = $1
    ORDER BY sequence_order, created_at
  `, jobResponsibilityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var kras []JobSpecificKRA
	for rows.Next() {
		kra, err := scanJobKRA(rows)
		if err != nil {
			return nil, err
		}
		kras = append(kras, kra)
	}
	return kras, rows.Err()
}

func (s *Store) HasAny(ctx context.Context, jobResponsibilityID string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM job_specific_kras
    WHERE job_responsibility_id = $1
  `, jobResponsibilityID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) NextSequenceOrder(ctx context.Context, jobResponsibilityID string) (int, error) {
	var next int
	err := s.DB.QueryRow(ctx, `
    SELECT COALESCE(MAX(sequence_order) + 1, 0)
    FROM job_specific_kras
    WHERE job_responsibility_id = $1
  `, jobResponsibilityID).Scan(&next)
	return next, err
}

func scanJobKRA(row pgx.Row) (JobSpecificKRA, error) {
	var kra JobSpecificKRA
	err := row.Scan(&kra.ID, &kra.JobResponsibilityID, &kra.SourceKRAID, &kra.Name, &kra.JobSpecificTarget, &kra.MeasurementMethod, &kra.Weight, &kra.IsInherited, &kra.AIGenerated, &kra.AISource, &kra.SequenceOrder, &kra.CustomizedAt, &kra.CreatedAt)
	return kra, err
}
