package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/signage/internal/model"
)

const noticeColumns = `id, message, is_active, created_at`

func (s *pgStore) CreateNotice(ctx context.Context, message string) (model.Notice, error) {
	var n model.Notice
	q := `
	INSERT INTO notices (id, message, is_active, created_at)
	VALUES ($1, $2, true, now())
	RETURNING ` + noticeColumns + `;`
	if err := s.db.GetContext(ctx, &n, q, uuid.NewString(), message); err != nil {
		log.Error().Err(err).Msg("[db] CreateNotice failed")
		return model.Notice{}, err
	}
	return n, nil
}

func (s *pgStore) ListNotices(ctx context.Context) ([]model.Notice, error) {
	out := []model.Notice{}
	if err := s.db.SelectContext(ctx, &out,
		`SELECT `+noticeColumns+` FROM notices ORDER BY created_at DESC, id;`); err != nil {
		log.Error().Err(err).Msg("[db] ListNotices failed")
		return nil, err
	}
	return out, nil
}

// ListActiveNotices returns the notices shown on the ticker, newest first.
func (s *pgStore) ListActiveNotices(ctx context.Context) ([]model.Notice, error) {
	out := []model.Notice{}
	if err := s.db.SelectContext(ctx, &out,
		`SELECT `+noticeColumns+` FROM notices WHERE is_active = true ORDER BY created_at DESC, id;`); err != nil {
		log.Error().Err(err).Msg("[db] ListActiveNotices failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) SetNoticeActive(ctx context.Context, id string, active bool) error {
	return affected(s.db.ExecContext(ctx, `UPDATE notices SET is_active = $2 WHERE id = $1;`, id, active))
}

func (s *pgStore) DeleteNotice(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notices WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Str("notice_id", id).Msg("[db] DeleteNotice failed")
	}
	return affected(res, err)
}
