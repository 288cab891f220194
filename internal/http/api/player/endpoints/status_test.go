package endpoints

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/signage/internal/http/api"
	"github.com/Nixie-Tech-LLC/signage/internal/model"
	"github.com/Nixie-Tech-LLC/signage/internal/signage"
)

func init() { gin.SetMode(gin.TestMode) }

type stubResolver struct {
	status signage.Status
	err    error
}

func (s stubResolver) Resolve(context.Context, string, time.Time) (signage.Status, error) {
	return s.status, s.err
}

type touches chan string

func (t touches) Touch(_ context.Context, id string, _ time.Time) error {
	t <- id
	return nil
}

func get(r http.Handler, path, etag string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if etag != "" {
		req.Header.Set("If-None-Match", etag)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func statusRouter(res StatusResolver, p PresenceWriter) *gin.Engine {
	r := gin.New()
	api.MountGroup(r, api.GroupConfig{}, StatusModule(res, p))
	return r
}

func TestStatusErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
		msg  string
	}{
		{signage.ErrDeviceNotFound, http.StatusNotFound, "Device not found"},
		{signage.ErrDeviceInactive, http.StatusForbidden, "Device is inactive"},
		{errors.New("db down"), http.StatusInternalServerError, "Internal Server Error"},
	}
	for _, tc := range cases {
		w := get(statusRouter(stubResolver{err: tc.err}, nil), "/signage-status/d1", "")
		assert.Equal(t, tc.code, w.Code)
		assert.JSONEq(t, `{"error":"`+tc.msg+`"}`, w.Body.String())
	}
}

func TestStatusPayloadAndETag(t *testing.T) {
	st := signage.Status{
		Device:   signage.DeviceInfo{Name: "Lobby", LayoutMode: model.LayoutSplit, SplitRatio: 60},
		Contents: []signage.Item{{ID: "a", Title: "A", Type: model.ContentText, Duration: 5, Zone: model.ZoneMain, DisplayOrder: 1}},
		Notices:  []string{"Fire drill"},
	}
	st.Version = signage.StatusVersion(st)

	seen := make(touches, 4)
	r := statusRouter(stubResolver{status: st}, seen)

	w := get(r, "/signage-status/d1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `"`+st.Version+`"`, w.Header().Get("ETag"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, map[string]any{"name": "Lobby", "layoutMode": "SPLIT", "splitRatio": float64(60)}, body["device"])
	assert.Equal(t, []any{"Fire drill"}, body["notices"])
	assert.Len(t, body["contents"], 1)

	select {
	case id := <-seen:
		assert.Equal(t, "d1", id)
	case <-time.After(time.Second):
		t.Fatal("presence not recorded")
	}

	w = get(r, "/signage-status/d1", `"`+st.Version+`"`)
	assert.Equal(t, http.StatusNotModified, w.Code)
	assert.Empty(t, w.Body.String())

	w = get(r, "/signage-status/d1", `"stale"`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMatchesETag(t *testing.T) {
	assert.True(t, matchesETag(`"abc"`, "abc"))
	assert.True(t, matchesETag(`W/"abc"`, "abc"))
	assert.True(t, matchesETag(`"x", "abc"`, "abc"))
	assert.True(t, matchesETag(`*`, "abc"))
	assert.False(t, matchesETag(``, "abc"))
	assert.False(t, matchesETag(`"abd"`, "abc"))
}
