package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventbook/server/internal/domain/events"
	"github.com/eventbook/server/internal/domain/ids"
)

var _ events.Repository = (*EventsRepository)(nil)

type EventsRepository struct {
	pool *pgxpool.Pool
}

func NewEventsRepository(pool *pgxpool.Pool) *EventsRepository {
	return &EventsRepository{pool: pool}
}

const eventColumns = `id, name, description, location,
       begin_enrollment_at, close_enrollment_at, begin_event_at, end_event_at,
       base_price, max_price, limit_of_enrollment,
       free, offline, event_status, manager_id, created_at, updated_at`

type eventRow struct {
	ID                string
	Name              string
	Description       string
	Location          *string
	BeginEnrollment   pgtype.Timestamptz
	CloseEnrollment   pgtype.Timestamptz
	BeginEvent        pgtype.Timestamptz
	EndEvent          pgtype.Timestamptz
	BasePrice         int
	MaxPrice          int
	LimitOfEnrollment int
	Free              bool
	Offline           bool
	EventStatus       string
	ManagerID         *string
	CreatedAt         pgtype.Timestamptz
	UpdatedAt         pgtype.Timestamptz
}

func (r *EventsRepository) Save(ctx context.Context, event *events.Event) (*events.Event, error) {
	id, err := ids.NewULID()
	if err != nil {
		return nil, fmt.Errorf("mint event id: %w", err)
	}

	now := time.Now().UTC()
	stored := *event
	stored.ID = id
	stored.CreatedAt = now
	stored.UpdatedAt = now

	_, err = r.pool.Exec(ctx, `
INSERT INTO events (`+eventColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
`,
		stored.ID,
		stored.Name,
		stored.Description,
		nullIfEmpty(stored.Location),
		stored.BeginEnrollment,
		stored.CloseEnrollment,
		stored.BeginEvent,
		stored.EndEvent,
		stored.BasePrice,
		stored.MaxPrice,
		stored.LimitOfEnrollment,
		stored.Free,
		stored.Offline,
		string(stored.Status),
		nullIfEmpty(string(stored.Manager)),
		stored.CreatedAt,
		stored.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return &stored, nil
}

func (r *EventsRepository) Update(ctx context.Context, event *events.Event) (*events.Event, error) {
	stored := *event
	stored.UpdatedAt = time.Now().UTC()

	tag, err := r.pool.Exec(ctx, `
UPDATE events
   SET name = $2,
       description = $3,
       location = $4,
       begin_enrollment_at = $5,
       close_enrollment_at = $6,
       begin_event_at = $7,
       end_event_at = $8,
       base_price = $9,
       max_price = $10,
       limit_of_enrollment = $11,
       free = $12,
       offline = $13,
       event_status = $14,
       updated_at = $15
 WHERE id = $1
`,
		stored.ID,
		stored.Name,
		stored.Description,
		nullIfEmpty(stored.Location),
		stored.BeginEnrollment,
		stored.CloseEnrollment,
		stored.BeginEvent,
		stored.EndEvent,
		stored.BasePrice,
		stored.MaxPrice,
		stored.LimitOfEnrollment,
		stored.Free,
		stored.Offline,
		string(stored.Status),
		stored.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, events.ErrNotFound
	}
	return &stored, nil
}

func (r *EventsRepository) GetByID(ctx context.Context, id string) (*events.Event, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, events.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (r *EventsRepository) List(ctx context.Context, page events.Page) (events.ListResult, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM events`).Scan(&total); err != nil {
		return events.ListResult{}, fmt.Errorf("count events: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
SELECT `+eventColumns+`
  FROM events
 ORDER BY created_at ASC, id ASC
 LIMIT $1 OFFSET $2
`, page.Size, page.Offset())
	if err != nil {
		return events.ListResult{}, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	result := events.ListResult{Total: total}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return events.ListResult{}, fmt.Errorf("scan event: %w", err)
		}
		result.Events = append(result.Events, event)
	}
	if err := rows.Err(); err != nil {
		return events.ListResult{}, fmt.Errorf("list events: %w", err)
	}
	return result, nil
}

func scanEvent(row pgx.Row) (*events.Event, error) {
	var r eventRow
	if err := row.Scan(
		&r.ID,
		&r.Name,
		&r.Description,
		&r.Location,
		&r.BeginEnrollment,
		&r.CloseEnrollment,
		&r.BeginEvent,
		&r.EndEvent,
		&r.BasePrice,
		&r.MaxPrice,
		&r.LimitOfEnrollment,
		&r.Free,
		&r.Offline,
		&r.EventStatus,
		&r.ManagerID,
		&r.CreatedAt,
		&r.UpdatedAt,
	); err != nil {
		return nil, err
	}

	event := &events.Event{
		ID:                r.ID,
		Name:              r.Name,
		Description:       r.Description,
		BeginEnrollment:   r.BeginEnrollment.Time,
		CloseEnrollment:   r.CloseEnrollment.Time,
		BeginEvent:        r.BeginEvent.Time,
		EndEvent:          r.EndEvent.Time,
		BasePrice:         r.BasePrice,
		MaxPrice:          r.MaxPrice,
		LimitOfEnrollment: r.LimitOfEnrollment,
		Free:              r.Free,
		Offline:           r.Offline,
		Status:            events.Status(r.EventStatus),
		CreatedAt:         r.CreatedAt.Time,
		UpdatedAt:         r.UpdatedAt.Time,
	}
	if r.Location != nil {
		event.Location = *r.Location
	}
	if r.ManagerID != nil {
		event.Manager = events.Identity(*r.ManagerID)
	}
	return event, nil
}

func nullIfEmpty(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
