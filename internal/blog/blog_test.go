package blog

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/inkwell/internal/models"
)

func post(id, title, category string) models.EnrichedPost {
	p := models.EnrichedPost{Post: models.Post{ID: id, Title: title, Content: "<p>body of " + title + "</p>", AuthorID: "1"}}
	if category != "" {
		p.Category = models.StringPtr(category)
	}
	return p
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Hello, World!":        "hello-world",
		"  Go 1.22 released  ": "go-1-22-released",
		"---":                  "",
		"Ünïcode title":        "n-code-title",
		"already-a-slug":       "already-a-slug",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slug(in), in)
	}
}

func TestFindBySlug(t *testing.T) {
	posts := []models.EnrichedPost{post("a", "First Post", ""), post("b", "Second Post!", "")}
	p, ok := FindBySlug(posts, "second-post")
	require.True(t, ok)
	assert.Equal(t, "b", p.ID)

	_, ok = FindBySlug(posts, "third-post")
	assert.False(t, ok)
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "given", Excerpt(models.Post{Excerpt: models.StringPtr("given"), Content: "x"}))
	assert.Equal(t, "short...", Excerpt(models.Post{Content: "short"}))
	assert.Equal(t, NoExcerpt, Excerpt(models.Post{}))

	long := strings.Repeat("é", 200)
	assert.Equal(t, strings.Repeat("é", 150)+"...", Excerpt(models.Post{Content: long}))
}

func TestReadingTime(t *testing.T) {
	assert.Equal(t, 1, ReadingTime(""))
	assert.Equal(t, 1, ReadingTime("<p>one two three</p>"))
	assert.Equal(t, 2, ReadingTime(strings.Repeat("word ", 201)))
	assert.Equal(t, 1, ReadingTime("<p>a</p><p>b</p>"), "tags separate words")
}

func TestAuthorAndInitials(t *testing.T) {
	p := post("a", "t", "")
	assert.Equal(t, Anonymous, AuthorName(p))

	p.Profiles = &models.Profile{FullName: models.StringPtr("demo user extra"), Email: "d@e.f"}
	assert.Equal(t, "demo user extra", AuthorName(p))
	assert.Equal(t, "DU", Initials(AuthorName(p)))
	assert.Equal(t, "A", Initials(Anonymous))
	assert.Equal(t, "", Initials("   "))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, NoDate, FormatDate(time.Time{}))
	assert.Equal(t, "March 05, 2024", FormatDate(time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)))
}

func TestCategories(t *testing.T) {
	posts := []models.EnrichedPost{post("1", "a", "Go"), post("2", "b", ""), post("3", "c", "Go"), post("4", "d", "Rust")}
	assert.Equal(t, []string{AllCategories, "Go", Uncategorized, "Rust"}, Categories(posts))
}

func TestList_FilterSearchAndPage(t *testing.T) {
	var posts []models.EnrichedPost
	for i := 0; i < 14; i++ {
		cat := "Go"
		if i%2 == 1 {
			cat = "Rust"
		}
		posts = append(posts, post(fmt.Sprint(i), fmt.Sprintf("Post %d", i), cat))
	}

	all := List(posts, Query{})
	assert.Equal(t, 14, all.Total)
	assert.Equal(t, 3, all.TotalPages)
	assert.Len(t, all.Items, DefaultPerPage)
	assert.Equal(t, "0", all.Items[0].ID)

	last := List(posts, Query{Page: 3})
	assert.Len(t, last.Items, 2)

	past := List(posts, Query{Page: 9})
	assert.Empty(t, past.Items)
	assert.NotNil(t, past.Items)

	rust := List(posts, Query{Category: "Rust", PerPage: 100})
	assert.Equal(t, 7, rust.Total)
	for _, c := range rust.Items {
		assert.Equal(t, "Rust", c.Category)
	}

	assert.Equal(t, 14, List(posts, Query{Category: AllCategories}).Total)

	// search matches title, excerpt and category, case-insensitively
	assert.Equal(t, 1, List(posts, Query{Search: "post 13"}).Total)
	assert.Equal(t, 1, List(posts, Query{Search: "BODY OF POST 12"}).Total)
	assert.Equal(t, 7, List(posts, Query{Search: "rUsT"}).Total)
	assert.Equal(t, 0, List(posts, Query{Category: "Go", Search: "rust"}).Total)
}

func TestMyPosts(t *testing.T) {
	a := post("a", "mine", "")
	b := post("b", "theirs", "")
	b.AuthorID = "2"
	c := post("c", "mine too", "")

	got := MyPosts([]models.EnrichedPost{a, b, c}, "1")
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
	assert.Empty(t, MyPosts(nil, "1"))
}
