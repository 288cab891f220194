package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/signage/internal/model"
)

const deviceColumns = `id, name, location, layout_mode, split_ratio, is_active, created_at, updated_at`

// DeviceUpdate carries the optional fields of a device edit; nil leaves the
// stored value unchanged.
type DeviceUpdate struct {
	Name       *string
	Location   *string
	LayoutMode *model.LayoutMode
	SplitRatio *int
}

func (s *pgStore) CreateDevice(ctx context.Context, name, location string, mode model.LayoutMode, splitRatio int) (model.Device, error) {
	var d model.Device
	q := `
	INSERT INTO devices (id, name, location, layout_mode, split_ratio, is_active, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, true, now(), now())
	RETURNING ` + deviceColumns + `;`
	if err := s.db.GetContext(ctx, &d, q, uuid.NewString(), name, location, mode, splitRatio); err != nil {
		log.Error().Err(err).Msg("[db] CreateDevice: failed to insert device")
		return model.Device{}, err
	}
	return d, nil
}

func (s *pgStore) GetDevice(ctx context.Context, id string) (model.Device, error) {
	var d model.Device
	err := s.db.GetContext(ctx, &d, `SELECT `+deviceColumns+` FROM devices WHERE id = $1;`, id)
	return d, notFound(err)
}

func (s *pgStore) ListDevices(ctx context.Context) ([]model.Device, error) {
	devices := []model.Device{}
	if err := s.db.SelectContext(ctx, &devices, `SELECT `+deviceColumns+` FROM devices ORDER BY created_at, id;`); err != nil {
		log.Error().Err(err).Msg("[db] ListDevices: failed to select devices")
		return nil, err
	}
	return devices, nil
}

func (s *pgStore) UpdateDevice(ctx context.Context, id string, upd DeviceUpdate) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE devices
		SET
		name        = COALESCE($2, name),
		location    = COALESCE($3, location),
		layout_mode = COALESCE($4, layout_mode),
		split_ratio = COALESCE($5, split_ratio),
		updated_at  = now()
		WHERE id = $1;`,
		id, upd.Name, upd.Location, upd.LayoutMode, upd.SplitRatio,
	)
	if err != nil {
		log.Error().Err(err).Str("device_id", id).Msg("[db] UpdateDevice failed")
	}
	return affected(res, err)
}

func (s *pgStore) SetDeviceActive(ctx context.Context, id string, active bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE devices SET is_active = $2, updated_at = now() WHERE id = $1;`, id, active)
	return affected(res, err)
}

// DeleteDevice removes the device and its playlist assignments together.
func (s *pgStore) DeleteDevice(ctx context.Context, id string) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM device_playlists WHERE device_id = $1;`, id); err != nil {
			log.Error().Err(err).Str("device_id", id).Msg("[db] DeleteDevice: failed to remove assignments")
			return err
		}
		return affected(tx.ExecContext(ctx, `DELETE FROM devices WHERE id = $1;`, id))
	})
}

// AssignPlaylistToDevice replaces every playlist assignment of the device
// with a single active one. An empty playlistID only clears. Both steps run
// in one transaction so the device is never observed without its playlist.
func (s *pgStore) AssignPlaylistToDevice(ctx context.Context, deviceID, playlistID string) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM device_playlists WHERE device_id = $1;`, deviceID); err != nil {
			log.Error().Err(err).Str("device_id", deviceID).Msg("[db] AssignPlaylistToDevice: failed to clear assignments")
			return err
		}
		if playlistID == "" {
			return nil
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO device_playlists (device_id, playlist_id, is_active, assigned_at)
			VALUES ($1, $2, true, now());`,
			deviceID, playlistID,
		); err != nil {
			log.Error().Err(err).Str("device_id", deviceID).Str("playlist_id", playlistID).
				Msg("[db] AssignPlaylistToDevice: failed to insert assignment")
			return classify(err)
		}
		return nil
	})
}

func (s *pgStore) GetDevicePlaylist(ctx context.Context, deviceID string) (model.Playlist, error) {
	var pid string
	err := s.db.GetContext(ctx, &pid, `
		SELECT playlist_id FROM device_playlists
		WHERE device_id = $1 AND is_active = true
		ORDER BY assigned_at DESC
		LIMIT 1;`,
		deviceID,
	)
	if err != nil {
		return model.Playlist{}, notFound(err)
	}
	return s.GetPlaylist(ctx, pid)
}

// ListDeviceEntries follows the device's active playlist assignments to
// their content, ordered by assignment and then display order. Eligibility
// is not applied here.
func (s *pgStore) ListDeviceEntries(ctx context.Context, deviceID string) ([]model.DeviceEntry, error) {
	entries := []model.DeviceEntry{}
	err := s.db.SelectContext(ctx, &entries, `
        SELECT
          c.id, c.title, c.type, c.url, c.thumbnail, c.body, c.duration,
          c.is_active, c.start_date, c.end_date, c.created_at, c.updated_at,
          pc.zone, pc.display_order
        FROM device_playlists  dp
        JOIN playlist_contents pc ON pc.playlist_id = dp.playlist_id
        JOIN contents          c  ON c.id = pc.content_id
       WHERE dp.device_id = $1
         AND dp.is_active = true
       ORDER BY dp.assigned_at, dp.playlist_id, pc.display_order, pc.id;`,
		deviceID,
	)
	if err != nil {
		log.Error().Err(err).Str("device_id", deviceID).Msg("[db] ListDeviceEntries failed")
		return nil, err
	}
	return entries, nil
}
