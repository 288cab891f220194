package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/signage/internal/model"
)

const scheduleColumns = `id, date, content, created_at`

func (s *pgStore) CreateSchedule(ctx context.Context, date time.Time, content string) (model.Schedule, error) {
	var sc model.Schedule
	q := `
	INSERT INTO schedules (id, date, content, created_at)
	VALUES ($1, $2, $3, now())
	RETURNING ` + scheduleColumns + `;`
	if err := s.db.GetContext(ctx, &sc, q, uuid.NewString(), date, content); err != nil {
		log.Error().Err(err).Msg("[db] CreateSchedule failed")
		return model.Schedule{}, err
	}
	return sc, nil
}

// ListSchedulesBetween returns the entries dated within [from, to], earliest
// first.
func (s *pgStore) ListSchedulesBetween(ctx context.Context, from, to time.Time) ([]model.Schedule, error) {
	out := []model.Schedule{}
	err := s.db.SelectContext(ctx, &out, `
		SELECT `+scheduleColumns+`
		FROM schedules
		WHERE date >= $1 AND date <= $2
		ORDER BY date, id;`,
		from, to,
	)
	if err != nil {
		log.Error().Err(err).Time("from", from).Time("to", to).Msg("[db] ListSchedulesBetween failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) DeleteSchedule(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Str("schedule_id", id).Msg("[db] DeleteSchedule failed")
	}
	return affected(res, err)
}
