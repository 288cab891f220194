// exposes a Store interface that is passed to API calls w/ param requirements
package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Nixie-Tech-LLC/signage/internal/model"
)

var (
	// ErrNotFound is returned when the addressed row, or a row it
	// references, does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a uniqueness constraint rejects a write.
	ErrConflict = errors.New("conflict")
)

type Store interface {
	// device functions
	CreateDevice(ctx context.Context, name, location string, mode model.LayoutMode, splitRatio int) (model.Device, error)
	GetDevice(ctx context.Context, id string) (model.Device, error)
	ListDevices(ctx context.Context) ([]model.Device, error)
	UpdateDevice(ctx context.Context, id string, upd DeviceUpdate) error
	SetDeviceActive(ctx context.Context, id string, active bool) error
	DeleteDevice(ctx context.Context, id string) error
	AssignPlaylistToDevice(ctx context.Context, deviceID, playlistID string) error
	GetDevicePlaylist(ctx context.Context, deviceID string) (model.Playlist, error)
	ListDeviceEntries(ctx context.Context, deviceID string) ([]model.DeviceEntry, error)

	// content functions
	CreateContent(ctx context.Context, c model.Content) (model.Content, error)
	GetContent(ctx context.Context, id string) (model.Content, error)
	ListContent(ctx context.Context, typ *model.ContentType) ([]model.Content, error)
	UpdateContent(ctx context.Context, id string, upd ContentUpdate) error
	SetContentActive(ctx context.Context, id string, active bool) error
	DeleteContent(ctx context.Context, id string) error

	// playlist functions
	CreatePlaylist(ctx context.Context, name, description string) (model.Playlist, error)
	GetPlaylist(ctx context.Context, id string) (model.Playlist, error)
	ListPlaylists(ctx context.Context) ([]model.Playlist, error)
	UpdatePlaylist(ctx context.Context, id string, name, description *string) error
	DeletePlaylist(ctx context.Context, id string) error
	AddContentToPlaylist(ctx context.Context, playlistID, contentID string) (model.PlaylistContent, error)
	ListPlaylistContents(ctx context.Context, playlistID string) ([]model.PlaylistContent, error)
	RemovePlaylistContent(ctx context.Context, playlistID, itemID string) error
	UpdatePlaylistContentZone(ctx context.Context, playlistID, itemID string, zone model.Zone) error
	ReorderPlaylistContents(ctx context.Context, playlistID string, itemIDs []string) error

	// notice functions
	CreateNotice(ctx context.Context, message string) (model.Notice, error)
	ListNotices(ctx context.Context) ([]model.Notice, error)
	ListActiveNotices(ctx context.Context) ([]model.Notice, error)
	SetNoticeActive(ctx context.Context, id string, active bool) error
	DeleteNotice(ctx context.Context, id string) error

	// schedule functions
	CreateSchedule(ctx context.Context, date time.Time, content string) (model.Schedule, error)
	ListSchedulesBetween(ctx context.Context, from, to time.Time) ([]model.Schedule, error)
	DeleteSchedule(ctx context.Context, id string) error
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore(conn *sqlx.DB) Store {
	return &pgStore{db: conn}
}

// withTx runs fn in a transaction, committing on success and rolling back
// on any error.
func (s *pgStore) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()
	return fn(tx)
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// affected maps a zero-row update or delete to ErrNotFound.
func affected(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// classify maps postgres constraint violations onto the store's sentinels.
func classify(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return ErrConflict
		case "23503":
			return ErrNotFound
		}
	}
	return err
}
