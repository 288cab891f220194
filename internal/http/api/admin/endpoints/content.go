package endpoints

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/signage/internal/db"
	"github.com/Nixie-Tech-LLC/signage/internal/events"
	"github.com/Nixie-Tech-LLC/signage/internal/http/api"
	"github.com/Nixie-Tech-LLC/signage/internal/http/api/admin/packets"
	"github.com/Nixie-Tech-LLC/signage/internal/model"
	"github.com/Nixie-Tech-LLC/signage/internal/storage"
)

type ContentController struct {
	store   db.Store
	storage storage.Storage
	events  events.Publisher
}

// ContentModule mounts the /content endpoints.
func ContentModule(store db.Store, storage storage.Storage, pub events.Publisher) api.Module {
	ctl := &ContentController{store: store, storage: storage, events: pub}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/content", ctl.listContent)
		c.POST("/content", ctl.createContent)
		c.GET("/content/:id", ctl.getContent)
		c.PUT("/content/:id", ctl.updateContent)
		c.DELETE("/content/:id", ctl.deleteContent)
		c.PATCH("/content/:id/active", ctl.setActive)
	})
}

func (c *ContentController) listContent(ctx *gin.Context) (any, *api.APIError) {
	var typ *model.ContentType
	if raw := ctx.Query("type"); raw != "" {
		t := model.ContentType(strings.ToUpper(raw))
		if !t.Valid() {
			return nil, api.BadRequest("invalid content type")
		}
		typ = &t
	}

	all, err := c.store.ListContent(ctx.Request.Context(), typ)
	if err != nil {
		return nil, api.StoreError(err, "could not list content")
	}
	out := make([]packets.ContentResponse, len(all))
	for i, x := range all {
		out[i] = packets.NewContentResponse(x)
	}
	return out, nil
}

func (c *ContentController) getContent(ctx *gin.Context) (any, *api.APIError) {
	x, err := c.store.GetContent(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		return nil, api.StoreError(err, "could not load content")
	}
	return packets.NewContentResponse(x), nil
}

// createContent takes a multipart form. IMAGE and VIDEO need either an
// uploaded "file" or a "url"; the thumbnail may likewise be a file or a URL.
func (c *ContentController) createContent(ctx *gin.Context) (any, *api.APIError) {
	var form packets.CreateContentForm
	if err := ctx.ShouldBind(&form); err != nil {
		log.Warn().Err(err).Msg("[content] create: invalid form")
		return nil, api.BadRequest(err.Error())
	}
	title := strings.TrimSpace(form.Title)
	if title == "" {
		return nil, api.BadRequest("title is required")
	}
	typ := form.Type

	duration := model.DefaultDuration
	if form.Duration != nil {
		duration = *form.Duration
	}

	start, end, apiErr := parseWindow(form.StartDate, form.EndDate)
	if apiErr != nil {
		return nil, apiErr
	}

	content := model.Content{
		Title:     title,
		Type:      typ,
		Body:      form.Body,
		Duration:  duration,
		StartDate: start,
		EndDate:   end,
	}

	if typ != model.ContentText {
		url, apiErr := c.upload(ctx, "file", strings.ToLower(string(typ)))
		if apiErr != nil {
			return nil, apiErr
		}
		if url == "" {
			url = strings.TrimSpace(form.URL)
		}
		if url == "" {
			log.Warn().Str("type", string(typ)).Msg("[content] create: missing file and url")
			return nil, api.BadRequest("file or url is required")
		}
		content.URL = url
	}

	thumb, apiErr := c.upload(ctx, "thumbnail", "image")
	if apiErr != nil {
		return nil, apiErr
	}
	if thumb == "" {
		thumb = strings.TrimSpace(form.Thumbnail)
	}
	content.Thumbnail = thumb

	created, err := c.store.CreateContent(ctx.Request.Context(), content)
	if err != nil {
		return nil, api.StoreError(err, "could not create content")
	}
	log.Info().Str("content_id", created.ID).Str("type", string(created.Type)).Msg("[content] created")
	go c.events.Publish("content.created", created.ID)
	return api.Created(packets.NewContentResponse(created)), nil
}

// upload stores the multipart file under field, if present, after checking
// it belongs to the given MIME family. It returns "" when no file was sent.
func (c *ContentController) upload(ctx *gin.Context, field, family string) (string, *api.APIError) {
	fh, err := ctx.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		log.Warn().Err(err).Str("field", field).Msg("[content] upload: unreadable form file")
		return "", api.BadRequest("invalid multipart form")
	}

	if _, err := storage.CheckKind(fh, family); err != nil {
		log.Warn().Err(err).Str("field", field).Msg("[content] upload: rejected file")
		if errors.Is(err, storage.ErrUnsupportedMedia) {
			return "", &api.APIError{Code: http.StatusUnsupportedMediaType, Message: err.Error()}
		}
		return "", api.BadRequest("could not read uploaded file")
	}

	url, err := c.storage.SaveFile(fh, fh.Filename)
	if err != nil {
		log.Error().Err(err).Str("field", field).Msg("[content] upload: save failed")
		return "", &api.APIError{Code: http.StatusInternalServerError, Message: "could not save file"}
	}
	return url, nil
}

func (c *ContentController) updateContent(ctx *gin.Context) (any, *api.APIError) {
	var req packets.UpdateContentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("[content] update: invalid body")
		return nil, api.BadRequest(err.Error())
	}
	start, end, apiErr := parseWindow(req.StartDate, req.EndDate)
	if apiErr != nil {
		return nil, apiErr
	}

	id := ctx.Param("id")
	upd := db.ContentUpdate{
		Title:     req.Title,
		Body:      req.Body,
		Duration:  req.Duration,
		StartDate: start,
		EndDate:   end,
	}
	if err := c.store.UpdateContent(ctx.Request.Context(), id, upd); err != nil {
		return nil, api.StoreError(err, "could not update content")
	}
	x, err := c.store.GetContent(ctx.Request.Context(), id)
	if err != nil {
		return nil, api.StoreError(err, "could not load content")
	}
	go c.events.Publish("content.updated", id)
	return packets.NewContentResponse(x), nil
}

func (c *ContentController) deleteContent(ctx *gin.Context) (any, *api.APIError) {
	id := ctx.Param("id")
	if err := c.store.DeleteContent(ctx.Request.Context(), id); err != nil {
		return nil, api.StoreError(err, "could not delete content")
	}
	log.Info().Str("content_id", id).Msg("[content] deleted")
	go c.events.Publish("content.deleted", id)
	return nil, nil
}

func (c *ContentController) setActive(ctx *gin.Context) (any, *api.APIError) {
	var req packets.SetActiveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, api.BadRequest(err.Error())
	}
	id := ctx.Param("id")
	if err := c.store.SetContentActive(ctx.Request.Context(), id, *req.IsActive); err != nil {
		return nil, api.StoreError(err, "could not update content")
	}
	go c.events.Publish("content.updated", id)
	return nil, nil
}
