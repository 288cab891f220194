package signage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Nixie-Tech-LLC/signage/internal/model"
)

func TestSequenceVersion(t *testing.T) {
	a := Item{ID: "a", Type: model.ContentImage, Duration: 5, Zone: model.ZoneMain, DisplayOrder: 1}
	b := Item{ID: "b", Type: model.ContentText, Body: "hi", Duration: 3, Zone: model.ZoneMain, DisplayOrder: 2}

	base := SequenceVersion([]Item{a, b})
	assert.Equal(t, base, SequenceVersion([]Item{a, b}))
	assert.NotEqual(t, base, SequenceVersion([]Item{b, a}))
	assert.NotEqual(t, base, SequenceVersion([]Item{a}))

	edited := b
	edited.Body = "hello"
	assert.NotEqual(t, base, SequenceVersion([]Item{a, edited}))
}

func TestStatusVersionCoversNotices(t *testing.T) {
	st := Status{
		Device:  DeviceInfo{Name: "Lobby", LayoutMode: model.LayoutFull, SplitRatio: 50},
		Notices: []string{"one"},
	}
	v1 := StatusVersion(st)
	st.Notices = []string{"one", "two"}
	assert.NotEqual(t, v1, StatusVersion(st))

	st.Notices = []string{"one"}
	assert.Equal(t, v1, StatusVersion(st))
}
