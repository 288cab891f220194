package endpoints

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/signage/internal/db"
	"github.com/Nixie-Tech-LLC/signage/internal/events"
	"github.com/Nixie-Tech-LLC/signage/internal/http/api"
	"github.com/Nixie-Tech-LLC/signage/internal/http/api/admin/packets"
)

type NoticeController struct {
	store  db.Store
	events events.Publisher
}

func NoticeModule(store db.Store, pub events.Publisher) api.Module {
	ctl := &NoticeController{store: store, events: pub}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/notices", ctl.listNotices)
		c.POST("/notices", ctl.createNotice)
		c.DELETE("/notices/:id", ctl.deleteNotice)
		c.PATCH("/notices/:id/active", ctl.setActive)
	})
}

func (n *NoticeController) listNotices(ctx *gin.Context) (any, *api.APIError) {
	all, err := n.store.ListNotices(ctx.Request.Context())
	if err != nil {
		return nil, api.StoreError(err, "could not list notices")
	}
	out := make([]packets.NoticeResponse, len(all))
	for i, x := range all {
		out[i] = packets.NewNoticeResponse(x)
	}
	return out, nil
}

func (n *NoticeController) createNotice(ctx *gin.Context) (any, *api.APIError) {
	var req packets.CreateNoticeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, api.BadRequest(err.Error())
	}
	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		return nil, api.BadRequest("message is required")
	}
	x, err := n.store.CreateNotice(ctx.Request.Context(), msg)
	if err != nil {
		return nil, api.StoreError(err, "could not create notice")
	}
	log.Info().Str("notice_id", x.ID).Msg("[notice] created")
	go n.events.Publish("notice.created", x.ID)
	return api.Created(packets.NewNoticeResponse(x)), nil
}

func (n *NoticeController) deleteNotice(ctx *gin.Context) (any, *api.APIError) {
	id := ctx.Param("id")
	if err := n.store.DeleteNotice(ctx.Request.Context(), id); err != nil {
		return nil, api.StoreError(err, "could not delete notice")
	}
	go n.events.Publish("notice.deleted", id)
	return nil, nil
}

func (n *NoticeController) setActive(ctx *gin.Context) (any, *api.APIError) {
	var req packets.SetActiveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, api.BadRequest(err.Error())
	}
	id := ctx.Param("id")
	if err := n.store.SetNoticeActive(ctx.Request.Context(), id, *req.IsActive); err != nil {
		return nil, api.StoreError(err, "could not update notice")
	}
	go n.events.Publish("notice.updated", id)
	return nil, nil
}
