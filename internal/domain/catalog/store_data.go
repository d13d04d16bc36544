package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

const kraColumns = "id, organization_id, responsibility_id, name, description, target_metric, measurement_method, weight, is_required, is_active, sequence_order, created_at, updated_at"

type KRADetails struct {
	Name              string
	Description       string
	TargetMetric      string
	MeasurementMethod string
	Weight            int
	IsRequired        bool
	SequenceOrder     int
}

// KRAUpdate carries a partial update; nil fields are left untouched.
type KRAUpdate struct {
	Name              *string
	Description       *string
	TargetMetric      *string
	MeasurementMethod *string
	Weight            *int
	IsRequired        *bool
	SequenceOrder     *int
}

func (s *Store) InsertKRA(ctx context.Context, orgID, responsibilityID string, details KRADetails) (KRA, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO responsibility_kras (organization_id, responsibility_id, name, description, target_metric, measurement_method, weight, is_required, sequence_order)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
    RETURNING `+kraColumns, orgID, responsibilityID, details.Name, details.Description, details.TargetMetric, details.MeasurementMethod, details.Weight, details.IsRequired, details.SequenceOrder)
	return scanKRA(row)
}

func (s *Store) GetKRA(ctx context.Context, orgID, kraID string) (KRA, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+kraColumns+`
    FROM responsibility_kras
    WHERE organization_id = $1 AND id = $2
  `, orgID, kraID)
	kra, err := scanKRA(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return KRA{}, ErrKRANotFound
	}
	return kra, err
}

func (s *Store) ListKRAs(ctx context.Context, orgID, responsibilityID string, includeInactive bool) ([]KRA, error) {
	query := `
    SELECT ` + kraColumns + `
    FROM responsibility_kras
    WHERE organization_id = $1 AND responsibility_id = $2
  `
	if !includeInactive {
		query += " AND is_active"
	}
	query += " ORDER BY sequence_order, created_at"

	rows, err := s.DB.Query(ctx, query, orgID, responsibilityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var kras []KRA
	for rows.Next() {
		kra, err := scanKRA(rows)
		if err != nil {
			return nil, err
		}
		kras = append(kras, kra)
	}
	return kras, rows.Err()
}

func (s *Store) UpdateKRA(ctx context.Context, orgID, kraID string, update KRAUpdate) (KRA, error) {
	sets := []string{"updated_at = now()"}
	args := []any{orgID, kraID}

	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if update.Name != nil {
		addSet("name", *update.Name)
	}
	if update.Description != nil {
		addSet("description", *update.Description)
	}
	if update.TargetMetric != nil {
		addSet("target_metric", *update.TargetMetric)
	}
	if update.MeasurementMethod != nil {
		addSet("measurement_method", *update.MeasurementMethod)
	}
	if update.Weight != nil {
		addSet("weight", *update.Weight)
	}
	if update.IsRequired != nil {
		addSet("is_required", *update.IsRequired)
	}
	if update.SequenceOrder != nil {
		addSet("sequence_order", *update.SequenceOrder)
	}

	query := "UPDATE responsibility_kras SET " + joinSets(sets) + " WHERE organization_id = $1 AND id = $2 RETURNING " + kraColumns
	kra, err := scanKRA(s.DB.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return KRA{}, ErrKRANotFound
	}
	return kra, err
}

func (s *Store) DeactivateKRA(ctx context.Context, orgID, kraID string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE responsibility_kras
    SET is_active = false, updated_at = now()
    WHERE organization_id = $1 AND id = $2 AND is_active
  `, orgID, kraID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrKRANotFound
	}
	return nil
}

func (s *Store) ActiveTotalWeight(ctx context.Context, orgID, responsibilityID string) (int, error) {
	var total int
	err := s.DB.QueryRow(ctx, `
    SELECT COALESCE(SUM(weight), 0)
    FROM responsibility_kras
    WHERE organization_id = $1 AND responsibility_id = $2 AND is_active
  `, orgID, responsibilityID).Scan(&total)
	return total, err
}

func (s *Store) NextSequenceOrder(ctx context.Context, orgID, responsibilityID string) (int, error) {
	var next int
	err := s.DB.QueryRow(ctx, `
    SELECT COALESCE(MAX(sequence_order) + 1, 0)
    FROM responsibility_kras
    WHERE organization_id = $1 AND responsibility_id = $2
  `, orgID, responsibilityID).Scan(&next)
	return next, err
}

// ApplyWeights persists a weight assignment atomically so a concurrent
// create or delete cannot leave a torn total behind.
func (s *Store) ApplyWeights(ctx context.Context, orgID string, kras []KRA) error {
	if len(kras) == 0 {
		return nil
	}

	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, kra := range kras {
		tag, err := tx.Exec(ctx, `
      UPDATE responsibility_kras
      SET weight = $3, updated_at = now()
      WHERE organization_id = $1 AND id = $2
    `, orgID, kra.ID, kra.Weight)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrKRANotFound
		}
	}
	return tx.Commit(ctx)
}

func scanKRA(row pgx.Row) (KRA, error) {
	var kra KRA
	err := row.Scan(&kra.ID, &kra.OrganizationID, &kra.ResponsibilityID, &kra.Name, &kra.Description, &kra.TargetMetric, &kra.MeasurementMethod, &kra.Weight, &kra.IsRequired, &kra.IsActive, &kra.SequenceOrder, &kra.CreatedAt, &kra.UpdatedAt)
	return kra, err
}

func joinSets(sets []string) string {
	out := sets[0]
	for _, set := range sets[1:] {
		out += ", " + set
	}
	return out
}
