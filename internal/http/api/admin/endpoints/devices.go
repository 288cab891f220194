package endpoints

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/signage/internal/db"
	"github.com/Nixie-Tech-LLC/signage/internal/events"
	"github.com/Nixie-Tech-LLC/signage/internal/http/api"
	"github.com/Nixie-Tech-LLC/signage/internal/http/api/admin/packets"
	"github.com/Nixie-Tech-LLC/signage/internal/model"
)

// PresenceReader reports when a device last polled for its status.
type PresenceReader interface {
	LastSeen(ctx context.Context, deviceID string) (time.Time, bool, error)
}

type DeviceController struct {
	store    db.Store
	events   events.Publisher
	presence PresenceReader
}

// DeviceModule mounts the /devices endpoints. presence may be nil, in which
// case the presence endpoint answers 503.
func DeviceModule(store db.Store, pub events.Publisher, presence PresenceReader) api.Module {
	ctl := &DeviceController{store: store, events: pub, presence: presence}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/devices", ctl.listDevices)
		c.POST("/devices", ctl.createDevice)
		c.GET("/devices/:id", ctl.getDevice)
		c.PUT("/devices/:id", ctl.updateDevice)
		c.DELETE("/devices/:id", ctl.deleteDevice)
		c.PATCH("/devices/:id/active", ctl.setActive)

		c.GET("/devices/:id/playlist", ctl.getPlaylist)
		c.PUT("/devices/:id/playlist", ctl.assignPlaylist)
		c.GET("/devices/:id/presence", ctl.getPresence)
	})
}

func (c *DeviceController) listDevices(ctx *gin.Context) (any, *api.APIError) {
	devices, err := c.store.ListDevices(ctx.Request.Context())
	if err != nil {
		return nil, api.StoreError(err, "could not list devices")
	}
	out := make([]packets.DeviceResponse, len(devices))
	for i, d := range devices {
		out[i] = packets.NewDeviceResponse(d)
	}
	return out, nil
}

func (c *DeviceController) createDevice(ctx *gin.Context) (any, *api.APIError) {
	var req packets.CreateDeviceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("[device] create: invalid body")
		return nil, api.BadRequest(err.Error())
	}

	mode := req.LayoutMode
	if mode == "" {
		mode = model.LayoutFull
	}
	ratio := model.DefaultSplitRatio
	if req.SplitRatio != nil {
		ratio = *req.SplitRatio
	}

	d, err := c.store.CreateDevice(ctx.Request.Context(), req.Name, req.Location, mode, ratio)
	if err != nil {
		return nil, api.StoreError(err, "could not create device")
	}
	log.Info().Str("device_id", d.ID).Str("layout", string(d.LayoutMode)).Msg("[device] created")
	go c.events.Publish("device.created", d.ID)
	return api.Created(packets.NewDeviceResponse(d)), nil
}

func (c *DeviceController) getDevice(ctx *gin.Context) (any, *api.APIError) {
	d, err := c.store.GetDevice(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		return nil, api.StoreError(err, "could not load device")
	}
	return packets.NewDeviceResponse(d), nil
}

func (c *DeviceController) updateDevice(ctx *gin.Context) (any, *api.APIError) {
	var req packets.UpdateDeviceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("[device] update: invalid body")
		return nil, api.BadRequest(err.Error())
	}

	id := ctx.Param("id")
	upd := db.DeviceUpdate{
		Name:       req.Name,
		Location:   req.Location,
		LayoutMode: req.LayoutMode,
		SplitRatio: req.SplitRatio,
	}
	if err := c.store.UpdateDevice(ctx.Request.Context(), id, upd); err != nil {
		return nil, api.StoreError(err, "could not update device")
	}
	d, err := c.store.GetDevice(ctx.Request.Context(), id)
	if err != nil {
		return nil, api.StoreError(err, "could not load device")
	}
	go c.events.Publish("device.updated", id)
	return packets.NewDeviceResponse(d), nil
}

func (c *DeviceController) deleteDevice(ctx *gin.Context) (any, *api.APIError) {
	id := ctx.Param("id")
	if err := c.store.DeleteDevice(ctx.Request.Context(), id); err != nil {
		return nil, api.StoreError(err, "could not delete device")
	}
	log.Info().Str("device_id", id).Msg("[device] deleted")
	go c.events.Publish("device.deleted", id)
	return nil, nil
}

func (c *DeviceController) setActive(ctx *gin.Context) (any, *api.APIError) {
	var req packets.SetActiveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, api.BadRequest(err.Error())
	}
	id := ctx.Param("id")
	if err := c.store.SetDeviceActive(ctx.Request.Context(), id, *req.IsActive); err != nil {
		return nil, api.StoreError(err, "could not update device")
	}
	go c.events.Publish("device.updated", id)
	return nil, nil
}

func (c *DeviceController) getPlaylist(ctx *gin.Context) (any, *api.APIError) {
	p, err := c.store.GetDevicePlaylist(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		return nil, api.StoreError(err, "could not load playlist")
	}
	return packets.NewPlaylistResponse(p), nil
}

func (c *DeviceController) assignPlaylist(ctx *gin.Context) (any, *api.APIError) {
	var req packets.AssignPlaylistRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, api.BadRequest(err.Error())
	}

	id := ctx.Param("id")
	if _, err := c.store.GetDevice(ctx.Request.Context(), id); err != nil {
		return nil, api.StoreError(err, "could not load device")
	}
	if err := c.store.AssignPlaylistToDevice(ctx.Request.Context(), id, req.PlaylistID); err != nil {
		log.Error().Err(err).Str("device_id", id).Str("playlist_id", req.PlaylistID).Msg("[device] assign playlist failed")
		return nil, api.StoreError(err, "could not assign playlist")
	}
	log.Info().Str("device_id", id).Str("playlist_id", req.PlaylistID).Msg("[device] playlist assigned")
	go c.events.Publish("device.assigned", id)
	return nil, nil
}

func (c *DeviceController) getPresence(ctx *gin.Context) (any, *api.APIError) {
	if c.presence == nil {
		return nil, &api.APIError{Code: http.StatusServiceUnavailable, Message: "presence tracking disabled"}
	}

	id := ctx.Param("id")
	if _, err := c.store.GetDevice(ctx.Request.Context(), id); err != nil {
		return nil, api.StoreError(err, "could not load device")
	}
	at, ok, err := c.presence.LastSeen(ctx.Request.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("device_id", id).Msg("[device] presence lookup failed")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not read presence"}
	}
	return packets.NewPresenceResponse(id, at, ok), nil
}
