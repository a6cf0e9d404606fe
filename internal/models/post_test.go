package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostPatch_UnmarshalDistinguishesAbsentNullAndValue(t *testing.T) {
	var p PostPatch
	require.NoError(t, json.Unmarshal([]byte(`{"title":"New","excerpt":null,"category":"Security"}`), &p))

	require.NotNil(t, p.Title)
	assert.Equal(t, "New", *p.Title)
	assert.Nil(t, p.Content)

	assert.True(t, p.Excerpt.IsSet())
	assert.True(t, p.Excerpt.IsCleared())

	assert.False(t, p.Image.IsSet())

	v, ok := p.Category.Value()
	assert.True(t, ok)
	assert.Equal(t, "Security", v)
}

func TestPostPatch_Apply(t *testing.T) {
	post := Post{
		Title:    "Old",
		Content:  "<p>old</p>",
		Excerpt:  StringPtr("short"),
		Image:    StringPtr("data:image/png;base64,AAAA"),
		Category: StringPtr("Fintech"),
	}

	PostPatch{
		Content:  StringPtr("<p>new</p>"),
		Excerpt:  Clear[string](),
		Category: Set("Budgeting"),
	}.Apply(&post)

	assert.Equal(t, "Old", post.Title)
	assert.Equal(t, "<p>new</p>", post.Content)
	assert.Nil(t, post.Excerpt)
	require.NotNil(t, post.Image)
	assert.Equal(t, "data:image/png;base64,AAAA", *post.Image)
	require.NotNil(t, post.Category)
	assert.Equal(t, "Budgeting", *post.Category)
}

func TestPostPatch_Empty(t *testing.T) {
	assert.True(t, PostPatch{}.Empty())
	assert.False(t, PostPatch{Image: Clear[string]()}.Empty())
}

func TestOptional_ApplyCopiesValue(t *testing.T) {
	o := Set("a")
	var dst *string
	o.ApplyTo(&dst)
	require.NotNil(t, dst)
	*dst = "b"

	v, _ := o.Value()
	assert.Equal(t, "a", v)
}

func TestEnrichedPost_MarshalOmitsMissingProfile(t *testing.T) {
	b, err := json.Marshal(EnrichedPost{Post: Post{ID: "p1"}})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "profiles")

	u := User{ID: "1", Email: "demo@example.com", FullName: "Demo User"}
	b, err = json.Marshal(EnrichedPost{Post: Post{ID: "p1"}, Profiles: u.Profile()})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"profiles":{"full_name":"Demo User","email":"demo@example.com"}`)
}

func TestUser_ProfileWithoutName(t *testing.T) {
	p := User{Email: "a@b.c"}.Profile()
	assert.Nil(t, p.FullName)
	assert.Equal(t, "a@b.c", p.Email)
}
