package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/signage/internal/config"
	"github.com/Nixie-Tech-LLC/signage/internal/db"
	"github.com/Nixie-Tech-LLC/signage/internal/events"
	"github.com/Nixie-Tech-LLC/signage/internal/http/api"
	adminapi "github.com/Nixie-Tech-LLC/signage/internal/http/api/admin/endpoints"
	playerapi "github.com/Nixie-Tech-LLC/signage/internal/http/api/player/endpoints"
	"github.com/Nixie-Tech-LLC/signage/internal/http/middleware"
	redisclient "github.com/Nixie-Tech-LLC/signage/internal/redis"
	"github.com/Nixie-Tech-LLC/signage/internal/storage"
)

// Dependencies are the services the routes are built from. Presence is nil
// when Redis is not configured.
type Dependencies struct {
	Store    db.Store
	Resolver playerapi.StatusResolver
	Storage  storage.Storage
	Events   events.Publisher
	Presence *redisclient.Presence
}

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, cfg *config.Config, deps Dependencies) {
	r.Use(middleware.RequestLogger())

	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"If-None-Match",
		},
		ExposeHeaders: []string{
			"Content-Length",
			"ETag",
		},
		AllowCredentials: false,
	}))

	// a nil *Presence must not become a non-nil interface
	var (
		presenceReader adminapi.PresenceReader
		presenceWriter playerapi.PresenceWriter
	)
	if deps.Presence != nil {
		presenceReader = deps.Presence
		presenceWriter = deps.Presence
	}

	api.MountGroup(r, api.GroupConfig{},
		playerapi.StatusModule(deps.Resolver, presenceWriter),
	)

	api.MountGroup(r, api.GroupConfig{Prefix: "/api/admin"},
		adminapi.DeviceModule(deps.Store, deps.Events, presenceReader),
		adminapi.ContentModule(deps.Store, deps.Storage, deps.Events),
		adminapi.PlaylistModule(deps.Store, deps.Events),
		adminapi.NoticeModule(deps.Store, deps.Events),
		adminapi.ScheduleModule(deps.Store, deps.Events),
	)

	// Static content
	if !cfg.UseSpaces {
		r.Static(storage.PublicPrefix, cfg.UploadDir)
	}
}
