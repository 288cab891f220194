package endpoints

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/signage/internal/db"
	"github.com/Nixie-Tech-LLC/signage/internal/events"
	"github.com/Nixie-Tech-LLC/signage/internal/http/api"
	"github.com/Nixie-Tech-LLC/signage/internal/http/api/admin/packets"
)

type PlaylistController struct {
	store  db.Store
	events events.Publisher
}

// PlaylistModule mounts the /playlists endpoints.
func PlaylistModule(store db.Store, pub events.Publisher) api.Module {
	ctl := &PlaylistController{store: store, events: pub}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/playlists", ctl.listPlaylists)
		c.POST("/playlists", ctl.createPlaylist)
		c.GET("/playlists/:id", ctl.getPlaylist)
		c.PUT("/playlists/:id", ctl.updatePlaylist)
		c.DELETE("/playlists/:id", ctl.deletePlaylist)

		c.POST("/playlists/:id/contents", ctl.addContent)
		c.PUT("/playlists/:id/contents", ctl.reorderContents)
		c.DELETE("/playlists/:id/contents/:item_id", ctl.removeContent)
		c.PUT("/playlists/:id/contents/:item_id/zone", ctl.updateZone)
	})
}

func (p *PlaylistController) listPlaylists(ctx *gin.Context) (any, *api.APIError) {
	all, err := p.store.ListPlaylists(ctx.Request.Context())
	if err != nil {
		return nil, api.StoreError(err, "could not list playlists")
	}
	out := make([]packets.PlaylistResponse, len(all))
	for i, pl := range all {
		out[i] = packets.NewPlaylistResponse(pl)
	}
	return out, nil
}

func (p *PlaylistController) createPlaylist(ctx *gin.Context) (any, *api.APIError) {
	var req packets.CreatePlaylistRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("[playlist] create: invalid body")
		return nil, api.BadRequest(err.Error())
	}
	pl, err := p.store.CreatePlaylist(ctx.Request.Context(), req.Name, req.Description)
	if err != nil {
		return nil, api.StoreError(err, "could not create playlist")
	}
	log.Info().Str("playlist_id", pl.ID).Msg("[playlist] created")
	go p.events.Publish("playlist.created", pl.ID)
	return api.Created(packets.NewPlaylistResponse(pl)), nil
}

func (p *PlaylistController) getPlaylist(ctx *gin.Context) (any, *api.APIError) {
	pl, err := p.store.GetPlaylist(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		return nil, api.StoreError(err, "could not load playlist")
	}
	return packets.NewPlaylistResponse(pl), nil
}

func (p *PlaylistController) updatePlaylist(ctx *gin.Context) (any, *api.APIError) {
	var req packets.UpdatePlaylistRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, api.BadRequest(err.Error())
	}
	id := ctx.Param("id")
	if err := p.store.UpdatePlaylist(ctx.Request.Context(), id, req.Name, req.Description); err != nil {
		return nil, api.StoreError(err, "could not update playlist")
	}
	pl, err := p.store.GetPlaylist(ctx.Request.Context(), id)
	if err != nil {
		return nil, api.StoreError(err, "could not load playlist")
	}
	go p.events.Publish("playlist.updated", id)
	return packets.NewPlaylistResponse(pl), nil
}

func (p *PlaylistController) deletePlaylist(ctx *gin.Context) (any, *api.APIError) {
	id := ctx.Param("id")
	if err := p.store.DeletePlaylist(ctx.Request.Context(), id); err != nil {
		return nil, api.StoreError(err, "could not delete playlist")
	}
	log.Info().Str("playlist_id", id).Msg("[playlist] deleted")
	go p.events.Publish("playlist.deleted", id)
	return nil, nil
}

func (p *PlaylistController) addContent(ctx *gin.Context) (any, *api.APIError) {
	var req packets.AddPlaylistContentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, api.BadRequest(err.Error())
	}
	id := ctx.Param("id")
	it, err := p.store.AddContentToPlaylist(ctx.Request.Context(), id, req.ContentID)
	if err != nil {
		log.Error().Err(err).Str("playlist_id", id).Str("content_id", req.ContentID).Msg("[playlist] add content failed")
		return nil, api.StoreError(err, "could not add content")
	}
	go p.events.Publish("playlist.updated", id)
	return api.Created(packets.NewPlaylistItemResponse(it)), nil
}

func (p *PlaylistController) removeContent(ctx *gin.Context) (any, *api.APIError) {
	id := ctx.Param("id")
	if err := p.store.RemovePlaylistContent(ctx.Request.Context(), id, ctx.Param("item_id")); err != nil {
		return nil, api.StoreError(err, "could not remove content")
	}
	go p.events.Publish("playlist.updated", id)
	return nil, nil
}

func (p *PlaylistController) updateZone(ctx *gin.Context) (any, *api.APIError) {
	var req packets.UpdateZoneRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, api.BadRequest(err.Error())
	}
	id := ctx.Param("id")
	if err := p.store.UpdatePlaylistContentZone(ctx.Request.Context(), id, ctx.Param("item_id"), req.Zone); err != nil {
		return nil, api.StoreError(err, "could not update zone")
	}
	go p.events.Publish("playlist.updated", id)
	return nil, nil
}

func (p *PlaylistController) reorderContents(ctx *gin.Context) (any, *api.APIError) {
	var req packets.ReorderPlaylistRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, api.BadRequest(err.Error())
	}
	id := ctx.Param("id")
	if err := p.store.ReorderPlaylistContents(ctx.Request.Context(), id, req.ItemIDs); err != nil {
		log.Error().Err(err).Str("playlist_id", id).Msg("[playlist] reorder failed")
		return nil, api.StoreError(err, "could not reorder playlist")
	}
	items, err := p.store.ListPlaylistContents(ctx.Request.Context(), id)
	if err != nil {
		return nil, api.StoreError(err, "could not list playlist contents")
	}
	out := make([]packets.PlaylistItemResponse, len(items))
	for i, it := range items {
		out[i] = packets.NewPlaylistItemResponse(it)
	}
	go p.events.Publish("playlist.updated", id)
	return out, nil
}
