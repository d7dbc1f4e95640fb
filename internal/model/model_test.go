package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageInputUnmarshalString(t *testing.T) {
	var in ImageInput
	require.NoError(t, json.Unmarshal([]byte(`"data:image/png;base64,aGk="`), &in))
	assert.Equal(t, "data:image/png;base64,aGk=", in.Raw)
	assert.Empty(t, in.URL)
}

func TestImageInputUnmarshalObject(t *testing.T) {
	var in ImageInput
	require.NoError(t, json.Unmarshal([]byte(`{"url":"https://cdn.example/a.png","externalId":"abc"}`), &in))
	assert.Empty(t, in.Raw)
	assert.Equal(t, "https://cdn.example/a.png", in.URL)
	assert.Equal(t, "abc", in.ExternalID)
}

func TestImageInputUnmarshalRejectsOtherTypes(t *testing.T) {
	var in ImageInput
	err := json.Unmarshal([]byte(`42`), &in)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestImageInputListMixedForms(t *testing.T) {
	var list []ImageInput
	require.NoError(t, json.Unmarshal([]byte(`["https://a.example/x.jpg",{"url":"https://b.example/y.jpg","externalId":"e"}]`), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "https://a.example/x.jpg", list[0].Raw)
	assert.Equal(t, "e", list[1].ExternalID)
}

func TestNoteNormalizeDefaults(t *testing.T) {
	n := Note{Content: "hi"}
	n.Normalize()
	assert.Equal(t, "rose", n.Color)
	assert.Equal(t, DefaultNoteEmoji, n.Emoji)
	assert.Equal(t, "personal", n.Category)
	assert.NotNil(t, n.Images)
	require.NoError(t, n.Validate())
}

func TestNoteValidate(t *testing.T) {
	n := Note{}
	n.Normalize()
	assert.ErrorIs(t, n.Validate(), ErrValidation)

	n = Note{Content: "x", Color: "mauve", Category: "personal"}
	assert.ErrorIs(t, n.Validate(), ErrValidation)

	n = Note{Content: "x", Color: "blue", Category: "homework"}
	assert.ErrorIs(t, n.Validate(), ErrValidation)
}

func TestLetterDefaultRecipient(t *testing.T) {
	l := Letter{Content: "dear me"}
	l.Normalize()
	assert.Equal(t, "My Beautiful Self", l.To)
	require.NoError(t, l.Validate())
}

func TestEventDateFormat(t *testing.T) {
	e := Event{Title: "x", Date: "2026-02-30"}
	e.Normalize()
	assert.ErrorIs(t, e.Validate(), ErrValidation, "impossible dates are rejected")

	e.Date = "2026-03-01"
	require.NoError(t, e.Validate())
}

func TestMoodValidate(t *testing.T) {
	m := Mood{Mood: MoodInfo{Name: "Hopeful", Emoji: "🌱", Color: "green"}}
	m.Normalize()
	require.NoError(t, m.Validate())
	assert.False(t, m.Date.IsZero(), "date defaults to now")

	m.Mood.Name = "Smug"
	assert.ErrorIs(t, m.Validate(), ErrValidation)
}

func TestPdfNormalizePages(t *testing.T) {
	p := StudyPdf{Name: "n", SectionID: "s", FileData: "d"}
	p.Normalize()
	assert.Equal(t, 1, p.LastPage)
	assert.Equal(t, 1, p.TotalPages)
	require.NoError(t, p.Validate())
}
