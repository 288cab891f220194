package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/signage/internal/model"
)

const playlistColumns = `id, name, description, created_at, updated_at`

// @ PLAYLIST
func (s *pgStore) CreatePlaylist(ctx context.Context, name, description string) (model.Playlist, error) {
	var p model.Playlist
	q := `
    INSERT INTO playlists (id, name, description, created_at, updated_at)
    VALUES ($1, $2, $3, now(), now())
    RETURNING ` + playlistColumns + `;`
	if err := s.db.GetContext(ctx, &p, q, uuid.NewString(), name, description); err != nil {
		log.Error().Err(err).Msg("[db] CreatePlaylist: failed to insert playlist")
		return model.Playlist{}, err
	}
	return p, nil
}

func (s *pgStore) GetPlaylist(ctx context.Context, id string) (model.Playlist, error) {
	var p model.Playlist
	if err := s.db.GetContext(ctx, &p, `SELECT `+playlistColumns+` FROM playlists WHERE id = $1;`, id); err != nil {
		return model.Playlist{}, notFound(err)
	}

	items, err := s.ListPlaylistContents(ctx, id)
	if err != nil {
		return p, err
	}
	p.Items = items
	return p, nil
}

func (s *pgStore) ListPlaylists(ctx context.Context) ([]model.Playlist, error) {
	out := []model.Playlist{}
	if err := s.db.SelectContext(ctx, &out, `SELECT `+playlistColumns+` FROM playlists ORDER BY created_at DESC, id;`); err != nil {
		log.Error().Err(err).Msg("[db] ListPlaylists: failed to select playlists")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) UpdatePlaylist(ctx context.Context, id string, name, description *string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE playlists
		SET
		name        = COALESCE($2, name),
		description = COALESCE($3, description),
		updated_at  = now()
		WHERE id = $1;`,
		id, name, description,
	)
	if err != nil {
		log.Error().Err(err).Str("playlist_id", id).Msg("[db] UpdatePlaylist failed")
	}
	return affected(res, err)
}

// DeletePlaylist removes device assignments and memberships of the playlist
// before the playlist row.
func (s *pgStore) DeletePlaylist(ctx context.Context, id string) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM device_playlists WHERE playlist_id = $1;`, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM playlist_contents WHERE playlist_id = $1;`, id); err != nil {
			return err
		}
		return affected(tx.ExecContext(ctx, `DELETE FROM playlists WHERE id = $1;`, id))
	})
}

// AddContentToPlaylist appends the content after the playlist's highest
// display order, in the MAIN zone. The playlist row is locked for the
// transaction so concurrent appends get distinct orders.
func (s *pgStore) AddContentToPlaylist(ctx context.Context, playlistID, contentID string) (model.PlaylistContent, error) {
	var it model.PlaylistContent
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var locked string
		if err := tx.GetContext(ctx, &locked,
			`SELECT id FROM playlists WHERE id = $1 FOR UPDATE;`, playlistID); err != nil {
			return notFound(err)
		}

		query := `
		INSERT INTO playlist_contents
		(id, playlist_id, content_id, zone, display_order, created_at)
		SELECT
		$1, $2, $3, $4, COALESCE(MAX(display_order), 0) + 1, now()
		FROM playlist_contents
		WHERE playlist_id = $2
		RETURNING
		id, playlist_id, content_id, zone, display_order, created_at;`

		if err := tx.GetContext(ctx, &it, query,
			uuid.NewString(), playlistID, contentID, model.ZoneMain,
		); err != nil {
			return classify(err)
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("playlist_id", playlistID).Str("content_id", contentID).
			Msg("[db] AddContentToPlaylist failed")
		return model.PlaylistContent{}, err
	}
	return it, nil
}

// ListPlaylistContents returns the playlist's items in display order with
// their content attached.
func (s *pgStore) ListPlaylistContents(ctx context.Context, playlistID string) ([]model.PlaylistContent, error) {
	type row struct {
		model.PlaylistContent
		model.Content `db:"content" json:"-"`
	}
	var rows []row
	err := s.db.SelectContext(ctx, &rows, `
    SELECT
      pc.id, pc.playlist_id, pc.content_id, pc.zone, pc.display_order, pc.created_at,
      c.id         AS "content.id",
      c.title      AS "content.title",
      c.type       AS "content.type",
      c.url        AS "content.url",
      c.thumbnail  AS "content.thumbnail",
      c.body       AS "content.body",
      c.duration   AS "content.duration",
      c.is_active  AS "content.is_active",
      c.start_date AS "content.start_date",
      c.end_date   AS "content.end_date",
      c.created_at AS "content.created_at",
      c.updated_at AS "content.updated_at"
    FROM playlist_contents pc
    JOIN contents c ON c.id = pc.content_id
    WHERE pc.playlist_id = $1
    ORDER BY pc.display_order, pc.id;`, playlistID)
	if err != nil {
		log.Error().Err(err).Str("playlist_id", playlistID).Msg("[db] ListPlaylistContents failed")
		return nil, err
	}

	items := make([]model.PlaylistContent, len(rows))
	for i := range rows {
		items[i] = rows[i].PlaylistContent
		c := rows[i].Content
		items[i].Content = &c
	}
	return items, nil
}

func (s *pgStore) RemovePlaylistContent(ctx context.Context, playlistID, itemID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM playlist_contents WHERE id = $1 AND playlist_id = $2;`, itemID, playlistID)
	if err != nil {
		log.Error().Err(err).Str("item_id", itemID).Msg("[db] RemovePlaylistContent failed")
	}
	return affected(res, err)
}

func (s *pgStore) UpdatePlaylistContentZone(ctx context.Context, playlistID, itemID string, zone model.Zone) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE playlist_contents SET zone = $3 WHERE id = $1 AND playlist_id = $2;`, itemID, playlistID, zone)
	if err != nil {
		log.Error().Err(err).Str("item_id", itemID).Msg("[db] UpdatePlaylistContentZone failed")
	}
	return affected(res, err)
}

// ReorderPlaylistContents renumbers the listed items 1..n in the given order.
// Every id must belong to the playlist.
func (s *pgStore) ReorderPlaylistContents(ctx context.Context, playlistID string, itemIDs []string) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		for idx, itemID := range itemIDs {
			res, err := tx.ExecContext(ctx, `
            UPDATE playlist_contents
               SET display_order = $1
             WHERE id = $2
               AND playlist_id = $3;`, idx+1, itemID, playlistID)
			if err := affected(res, err); err != nil {
				return fmt.Errorf("reorder item %s: %w", itemID, err)
			}
		}
		return nil
	})
}
