package endpoints

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/signage/internal/db"
	"github.com/Nixie-Tech-LLC/signage/internal/events"
	"github.com/Nixie-Tech-LLC/signage/internal/http/api"
	"github.com/Nixie-Tech-LLC/signage/internal/http/api/admin/packets"
)

type ScheduleController struct {
	store  db.Store
	events events.Publisher
	now    func() time.Time
}

func ScheduleModule(store db.Store, pub events.Publisher) api.Module {
	ctl := &ScheduleController{store: store, events: pub, now: time.Now}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/schedules", ctl.listSchedules)
		c.POST("/schedules", ctl.createSchedule)
		c.DELETE("/schedules/:id", ctl.deleteSchedule)
	})
}

// MonthRange spans the whole calendar month, first instant to last, in loc.
func MonthRange(year int, month time.Month, loc *time.Location) (from, to time.Time) {
	from = time.Date(year, month, 1, 0, 0, 0, 0, loc)
	to = from.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return from, to
}

// listSchedules returns one month of entries; year and month default to the
// current ones.
func (s *ScheduleController) listSchedules(ctx *gin.Context) (any, *api.APIError) {
	now := s.now()
	year, month := now.Year(), int(now.Month())

	if raw := ctx.Query("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil || y < 1 {
			return nil, api.BadRequest("invalid year")
		}
		year = y
	}
	if raw := ctx.Query("month"); raw != "" {
		m, err := strconv.Atoi(raw)
		if err != nil || m < 1 || m > 12 {
			return nil, api.BadRequest("month must be between 1 and 12")
		}
		month = m
	}

	from, to := MonthRange(year, time.Month(month), now.Location())
	all, err := s.store.ListSchedulesBetween(ctx.Request.Context(), from, to)
	if err != nil {
		return nil, api.StoreError(err, "could not list schedules")
	}
	out := make([]packets.ScheduleResponse, len(all))
	for i, x := range all {
		out[i] = packets.NewScheduleResponse(x)
	}
	return out, nil
}

func (s *ScheduleController) createSchedule(ctx *gin.Context) (any, *api.APIError) {
	var req packets.CreateScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, api.BadRequest(err.Error())
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, api.BadRequest("content is required")
	}
	date, err := packets.ParseDate(req.Date, s.now().Location())
	if err != nil {
		log.Warn().Str("date", req.Date).Msg("[schedule] create: invalid date")
		return nil, api.BadRequest("invalid date")
	}

	x, err := s.store.CreateSchedule(ctx.Request.Context(), date, content)
	if err != nil {
		return nil, api.StoreError(err, "could not create schedule")
	}
	log.Info().Str("schedule_id", x.ID).Time("date", x.Date).Msg("[schedule] created")
	go s.events.Publish("schedule.created", x.ID)
	return api.Created(packets.NewScheduleResponse(x)), nil
}

func (s *ScheduleController) deleteSchedule(ctx *gin.Context) (any, *api.APIError) {
	id := ctx.Param("id")
	if err := s.store.DeleteSchedule(ctx.Request.Context(), id); err != nil {
		return nil, api.StoreError(err, "could not delete schedule")
	}
	go s.events.Publish("schedule.deleted", id)
	return nil, nil
}
