// Package blog derives what the listing, detail and dashboard views show
// from enriched posts.
package blog

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/baharkarakas/inkwell/internal/models"
)

const (
	AllCategories    = "All Articles"
	Uncategorized    = "Uncategorized"
	NoExcerpt        = "No excerpt available"
	Anonymous        = "Anonymous"
	NoDate           = "Date not available"
	PlaceholderImage = "https://via.placeholder.com/800x600?text=Blog+Image"

	DefaultPerPage = 6
	excerptLen     = 150
	wordsPerMinute = 200
)

var (
	nonSlug = regexp.MustCompile(`[^a-z0-9]+`)
	tags    = regexp.MustCompile(`<[^>]*>`)
)

// Slug lowercases title and joins its alphanumeric runs with dashes.
func Slug(title string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(title), "-"), "-")
}

// FindBySlug returns the first post whose title slugs to slug.
func FindBySlug(posts []models.EnrichedPost, slug string) (models.EnrichedPost, bool) {
	for _, p := range posts {
		if Slug(p.Title) == slug {
			return p, true
		}
	}
	return models.EnrichedPost{}, false
}

func Excerpt(p models.Post) string {
	if p.Excerpt != nil && *p.Excerpt != "" {
		return *p.Excerpt
	}
	if p.Content == "" {
		return NoExcerpt
	}
	r := []rune(p.Content)
	if len(r) > excerptLen {
		r = r[:excerptLen]
	}
	return string(r) + "..."
}

func Category(p models.Post) string {
	if p.Category != nil && *p.Category != "" {
		return *p.Category
	}
	return Uncategorized
}

func Image(p models.Post) string {
	if p.Image != nil && *p.Image != "" {
		return *p.Image
	}
	return PlaceholderImage
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return NoDate
	}
	return t.Format("January 02, 2006")
}

// ReadingTime is whole minutes at 200 words a minute, markup excluded.
func ReadingTime(content string) int {
	words := len(strings.Fields(tags.ReplaceAllString(content, " ")))
	if words == 0 {
		return 1
	}
	return int(math.Ceil(float64(words) / wordsPerMinute))
}

func AuthorName(p models.EnrichedPost) string {
	if p.Profiles != nil && p.Profiles.FullName != nil && *p.Profiles.FullName != "" {
		return *p.Profiles.FullName
	}
	return Anonymous
}

// Initials takes the first letter of the first two words, uppercased.
func Initials(name string) string {
	var b strings.Builder
	for _, w := range strings.Fields(name) {
		b.WriteRune([]rune(w)[0])
	}
	r := []rune(strings.ToUpper(b.String()))
	if len(r) > 2 {
		r = r[:2]
	}
	return string(r)
}

// MyPosts keeps the posts written by userID, order preserved.
func MyPosts(posts []models.EnrichedPost, userID string) []models.EnrichedPost {
	out := []models.EnrichedPost{}
	for _, p := range posts {
		if p.AuthorID == userID {
			out = append(out, p)
		}
	}
	return out
}
