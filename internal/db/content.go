package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/signage/internal/model"
)

const contentColumns = `id, title, type, url, thumbnail, body, duration, is_active, start_date, end_date, created_at, updated_at`

// ContentUpdate is an edit of a content item. Title, Body and Duration are
// left unchanged when nil; the eligibility window is always written, so a
// nil bound clears it.
type ContentUpdate struct {
	Title     *string
	Body      *string
	Duration  *int
	StartDate *time.Time
	EndDate   *time.Time
}

func (s *pgStore) CreateContent(ctx context.Context, c model.Content) (model.Content, error) {
	var out model.Content
	query := `
	INSERT INTO contents
	(id, title, type, url, thumbnail, body, duration, is_active, start_date, end_date, created_at, updated_at)
	VALUES
	($1, $2,    $3,   $4,  $5,        $6,   $7,       true,      $8,         $9,       now(),      now())
	RETURNING ` + contentColumns + `;`

	if err := s.db.GetContext(ctx, &out, query,
		uuid.NewString(),
		c.Title,
		c.Type,
		c.URL,
		c.Thumbnail,
		c.Body,
		c.Duration,
		c.StartDate,
		c.EndDate,
	); err != nil {
		log.Error().Err(err).Msg("[db] CreateContent: failed to insert content")
		return model.Content{}, err
	}
	return out, nil
}

func (s *pgStore) GetContent(ctx context.Context, id string) (model.Content, error) {
	var c model.Content
	err := s.db.GetContext(ctx, &c, `SELECT `+contentColumns+` FROM contents WHERE id = $1;`, id)
	return c, notFound(err)
}

// ListContent returns all content newest first, optionally of one type.
func (s *pgStore) ListContent(ctx context.Context, typ *model.ContentType) ([]model.Content, error) {
	all := []model.Content{}
	query := `SELECT ` + contentColumns + ` FROM contents`
	args := []any{}
	if typ != nil {
		query += ` WHERE type = $1`
		args = append(args, *typ)
	}
	query += ` ORDER BY created_at DESC, id;`

	if err := s.db.SelectContext(ctx, &all, query, args...); err != nil {
		log.Error().Err(err).Msg("[db] ListContent failed")
		return nil, err
	}
	return all, nil
}

func (s *pgStore) UpdateContent(ctx context.Context, id string, upd ContentUpdate) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE contents
		SET
		title      = COALESCE($2, title),
		body       = COALESCE($3, body),
		duration   = COALESCE($4, duration),
		start_date = $5,
		end_date   = $6,
		updated_at = now()
		WHERE id = $1;`,
		id, upd.Title, upd.Body, upd.Duration, upd.StartDate, upd.EndDate,
	)
	if err != nil {
		log.Error().Err(err).Str("content_id", id).Msg("[db] UpdateContent failed")
	}
	return affected(res, err)
}

func (s *pgStore) SetContentActive(ctx context.Context, id string, active bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE contents SET is_active = $2, updated_at = now() WHERE id = $1;`, id, active)
	return affected(res, err)
}

// DeleteContent removes the content's playlist memberships before the
// content row itself.
func (s *pgStore) DeleteContent(ctx context.Context, id string) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM playlist_contents WHERE content_id = $1;`, id); err != nil {
			log.Error().Err(err).Str("content_id", id).Msg("[db] DeleteContent: failed to remove memberships")
			return err
		}
		return affected(tx.ExecContext(ctx, `DELETE FROM contents WHERE id = $1;`, id))
	})
}
