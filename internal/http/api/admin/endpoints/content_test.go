package endpoints

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/signage/internal/model"
)

func TestCreateTextContent(t *testing.T) {
	store, rec := newFakeStore(), newRecorder()
	r := router(ContentModule(store, &memStorage{}, rec))

	body, ct := multipartBody(t, map[string]string{"title": "Welcome", "type": "TEXT", "body": "Hello"}, nil)
	w := postMultipart(r, "/api/admin/content", body, ct)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	require.NotNil(t, store.created)
	assert.Equal(t, model.ContentText, store.created.Type)
	assert.Equal(t, model.DefaultDuration, store.created.Duration)
	assert.Equal(t, "Hello", store.created.Body)
	assert.Empty(t, store.created.URL)
	assert.Equal(t, []string{"content.created"}, rec.wait(t))
}

func TestCreateImageContentUpload(t *testing.T) {
	store, files := newFakeStore(), &memStorage{}
	r := router(ContentModule(store, files, newRecorder()))

	body, ct := multipartBody(t,
		map[string]string{"title": "Poster", "type": "IMAGE", "duration": "7"},
		map[string][]byte{"file": pngBytes},
	)
	w := postMultipart(r, "/api/admin/content", body, ct)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "/uploads/file.bin", store.created.URL)
	assert.Equal(t, 7, store.created.Duration)
	assert.Equal(t, []string{"file.bin"}, files.saved)
}

func TestCreateContentRejects(t *testing.T) {
	r := router(ContentModule(newFakeStore(), &memStorage{}, newRecorder()))

	cases := []struct {
		name   string
		fields map[string]string
		files  map[string][]byte
		code   int
	}{
		{"missing title", map[string]string{"type": "TEXT"}, nil, http.StatusBadRequest},
		{"bad type", map[string]string{"title": "x", "type": "AUDIO"}, nil, http.StatusBadRequest},
		{"lowercase type", map[string]string{"title": "x", "type": "text"}, nil, http.StatusBadRequest},
		{"blank title", map[string]string{"title": "  ", "type": "TEXT"}, nil, http.StatusBadRequest},
		{"non-numeric duration", map[string]string{"title": "x", "type": "TEXT", "duration": "ten"}, nil, http.StatusBadRequest},
		{"bad duration", map[string]string{"title": "x", "type": "TEXT", "duration": "0"}, nil, http.StatusBadRequest},
		{"image without source", map[string]string{"title": "x", "type": "IMAGE"}, nil, http.StatusBadRequest},
		{"video given an image", map[string]string{"title": "x", "type": "VIDEO"}, map[string][]byte{"file": pngBytes}, http.StatusUnsupportedMediaType},
		{"inverted window", map[string]string{"title": "x", "type": "TEXT", "startDate": "2024-03-10", "endDate": "2024-03-01"}, nil, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body, ct := multipartBody(t, tc.fields, tc.files)
			w := postMultipart(r, "/api/admin/content", body, ct)
			assert.Equal(t, tc.code, w.Code, w.Body.String())
		})
	}
}

func TestCreateVideoByURL(t *testing.T) {
	store := newFakeStore()
	r := router(ContentModule(store, &memStorage{}, newRecorder()))

	body, ct := multipartBody(t, map[string]string{
		"title": "Clip", "type": "VIDEO", "url": "https://cdn.example.com/clip.mp4",
		"thumbnail": "https://cdn.example.com/clip.jpg",
	}, nil)
	w := postMultipart(r, "/api/admin/content", body, ct)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, model.ContentVideo, store.created.Type)
	assert.Equal(t, "https://cdn.example.com/clip.mp4", store.created.URL)
	assert.Equal(t, "https://cdn.example.com/clip.jpg", store.created.Thumbnail)
}

func TestListContentByType(t *testing.T) {
	store := newFakeStore()
	store.contents = []model.Content{{ID: "a", Type: model.ContentText}, {ID: "b", Type: model.ContentImage}}
	r := router(ContentModule(store, &memStorage{}, newRecorder()))

	w := do(r, http.MethodGet, "/api/admin/content?type=image", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"b"`)
	assert.NotContains(t, w.Body.String(), `"id":"a"`)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/admin/content?type=gif", nil).Code)
}

func TestUpdateContentWindow(t *testing.T) {
	store := newFakeStore()
	r := router(ContentModule(store, &memStorage{}, newRecorder()))

	w := do(r, http.MethodPut, "/api/admin/content/c1", map[string]any{
		"title": "New", "startDate": "2024-03-01", "endDate": "2024-03-10",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NotNil(t, store.updated)
	assert.Equal(t, "New", *store.updated.Title)
	assert.Nil(t, store.updated.Duration)

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	assert.True(t, store.updated.StartDate.Equal(start))
	endOfDay := time.Date(2024, 3, 11, 0, 0, 0, 0, time.Local).Add(-time.Nanosecond)
	assert.True(t, store.updated.EndDate.Equal(endOfDay))

	w = do(r, http.MethodPut, "/api/admin/content/c1", map[string]any{"duration": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
