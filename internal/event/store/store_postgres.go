package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	consentmodels "consentd/internal/consent/models"
	"consentd/internal/event/models"
	"consentd/internal/sentinel"
	id "consentd/pkg/domain"
)

// PostgresStore persists events and their assertions in PostgreSQL. The event
// row and all assertion rows are written in one transaction, so a rejected
// assertion can never leave a partial event behind. The seq column is a
// BIGSERIAL: the database assigns the tie-breaking sequence number atomically
// at append time.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed event store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, event *models.Event) error {
	if event == nil {
		return fmt.Errorf("event is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin event create tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO events (id, user_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING seq
	`
	err = tx.QueryRowContext(ctx, query,
		uuid.UUID(event.ID),
		uuid.UUID(event.UserID),
		event.CreatedAt,
	).Scan(&event.Seq)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("user not found: %w", sentinel.ErrNotFound)
		}
		return fmt.Errorf("create event: %w", err)
	}

	for pos, a := range event.Assertions {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO consents (id, event_id, position, type, enabled)
			VALUES ($1, $2, $3, $4, $5)
		`, uuid.New(), uuid.UUID(event.ID), pos, string(a.Type), a.Enabled)
		if err != nil {
			return fmt.Errorf("create assertion: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit event create: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID id.UserID) ([]*models.Event, error) {
	query := `
		SELECT e.id, e.user_id, e.seq, e.created_at, c.type, c.enabled
		FROM events e
		LEFT JOIN consents c ON c.event_id = e.id
		WHERE e.user_id = $1
		ORDER BY e.created_at, e.seq, c.position
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(userID))
	if err != nil {
		return nil, fmt.Errorf("list events by user: %w", err)
	}
	defer rows.Close()
	return collectEvents(rows)
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) ListPage(ctx context.Context, limit, offset int) ([]*models.Event, error) {
	// Page over the events table first so limit/offset count events, then
	// join the assertions of just that page.
	query := `
		SELECT e.id, e.user_id, e.seq, e.created_at, c.type, c.enabled
		FROM (
			SELECT id, user_id, seq, created_at
			FROM events
			ORDER BY created_at, seq
			LIMIT $1 OFFSET $2
		) e
		LEFT JOIN consents c ON c.event_id = e.id
		ORDER BY e.created_at, e.seq, c.position
	`
	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list events page: %w", err)
	}
	defer rows.Close()
	return collectEvents(rows)
}

func (s *PostgresStore) DeleteByUser(ctx context.Context, userID id.UserID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE user_id = $1`, uuid.UUID(userID))
	if err != nil {
		return fmt.Errorf("delete events by user: %w", err)
	}
	return nil
}

// collectEvents folds joined event/assertion rows into events, relying on the
// query's ordering to keep each event's rows adjacent.
func collectEvents(rows *sql.Rows) ([]*models.Event, error) {
	events := []*models.Event{}
	var current *models.Event
	for rows.Next() {
		var (
			eventID uuid.UUID
			userID  uuid.UUID
			seq     int64
			created sql.NullTime
			ctype   sql.NullString
			enabled sql.NullBool
		)
		if err := rows.Scan(&eventID, &userID, &seq, &created, &ctype, &enabled); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if current == nil || current.ID != id.EventID(eventID) {
			current = &models.Event{
				ID:        id.EventID(eventID),
				UserID:    id.UserID(userID),
				Seq:       seq,
				CreatedAt: created.Time,
			}
			events = append(events, current)
		}
		if ctype.Valid {
			current.Assertions = append(current.Assertions, consentmodels.Assertion{
				Type:    consentmodels.Type(ctype.String),
				Enabled: enabled.Bool,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
