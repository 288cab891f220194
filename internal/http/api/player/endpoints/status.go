package endpoints

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/signage/internal/http/api"
	"github.com/Nixie-Tech-LLC/signage/internal/signage"
)

const presenceTimeout = 2 * time.Second

type StatusResolver interface {
	Resolve(ctx context.Context, deviceID string, now time.Time) (signage.Status, error)
}

// PresenceWriter records that a device polled.
type PresenceWriter interface {
	Touch(ctx context.Context, deviceID string, at time.Time) error
}

type StatusController struct {
	resolver StatusResolver
	presence PresenceWriter
	now      func() time.Time
}

// StatusModule mounts the unauthenticated device polling endpoint. presence
// may be nil.
func StatusModule(resolver StatusResolver, presence PresenceWriter) api.Module {
	ctl := &StatusController{resolver: resolver, presence: presence, now: time.Now}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/signage-status/:deviceId", ctl.getStatus)
	})
}

func (s *StatusController) getStatus(ctx *gin.Context) (any, *api.APIError) {
	deviceID := ctx.Param("deviceId")
	now := s.now()

	st, err := s.resolver.Resolve(ctx.Request.Context(), deviceID, now)
	switch {
	case errors.Is(err, signage.ErrDeviceNotFound):
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "Device not found"}
	case errors.Is(err, signage.ErrDeviceInactive):
		return nil, &api.APIError{Code: http.StatusForbidden, Message: "Device is inactive"}
	case err != nil:
		log.Error().Err(err).Str("device_id", deviceID).Msg("[status] resolve failed")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "Internal Server Error"}
	}

	if s.presence != nil {
		go s.touch(deviceID, now)
	}

	ctx.Header("Cache-Control", "no-store")
	ctx.Header("ETag", `"`+st.Version+`"`)
	if matchesETag(ctx.GetHeader("If-None-Match"), st.Version) {
		return api.Status{Code: http.StatusNotModified}, nil
	}
	return st, nil
}

func (s *StatusController) touch(deviceID string, at time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), presenceTimeout)
	defer cancel()
	if err := s.presence.Touch(ctx, deviceID, at); err != nil {
		log.Warn().Err(err).Str("device_id", deviceID).Msg("[status] presence update failed")
	}
}

// matchesETag reports whether an If-None-Match header names version. Weak
// validators and lists are accepted.
func matchesETag(header, version string) bool {
	if header == "" || version == "" {
		return false
	}
	for _, tag := range strings.Split(header, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "*" {
			return true
		}
		tag = strings.TrimPrefix(tag, "W/")
		if strings.Trim(tag, `"`) == version {
			return true
		}
	}
	return false
}
