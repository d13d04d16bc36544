package reports

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"kraeval/internal/platform/querier"
)

var ErrResponsibilityNotFound = errors.New("responsibility not found")

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

// ParticipantResponsibilityIDs returns the responsibilities a participant
// has submissions under, oldest first.
func (s *Store) ParticipantResponsibilityIDs(ctx context.Context, orgID, participantID string) ([]string, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT responsibility_id
    FROM kra_rating_submissions
    WHERE organization_id = $1 AND participant_id = $2
    GROUP BY responsibility_id
    ORDER BY MIN(created_at)
  `, orgID, participantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *Store) ResponsibilityTitle(ctx context.Context, orgID, responsibilityID string) (string, error) {
	var title string
	err := s.DB.QueryRow(ctx, `
    SELECT title
    FROM responsibilities
    WHERE organization_id = $1 AND id = $2
  `, orgID, responsibilityID).Scan(&title)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrResponsibilityNotFound
	}
	return title, err
}
