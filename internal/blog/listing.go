package blog

import (
	"strings"

	"github.com/baharkarakas/inkwell/internal/models"
)

// Card is a post as the public listing renders it.
type Card struct {
	ID       string `json:"id"`
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Date     string `json:"date"`
	Image    string `json:"image"`
	Excerpt  string `json:"excerpt"`
	Author   string `json:"author"`
}

func CardOf(p models.EnrichedPost) Card {
	return Card{
		ID:       p.ID,
		Slug:     Slug(p.Title),
		Title:    p.Title,
		Category: Category(p.Post),
		Date:     FormatDate(p.CreatedAt),
		Image:    Image(p.Post),
		Excerpt:  Excerpt(p.Post),
		Author:   AuthorName(p),
	}
}

// Categories lists "All Articles" followed by each category in first-seen order.
func Categories(posts []models.EnrichedPost) []string {
	out := []string{AllCategories}
	seen := map[string]bool{}
	for _, p := range posts {
		c := Category(p.Post)
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

type Query struct {
	Category string
	Search   string
	Page     int
	PerPage  int
}

type Page struct {
	Items      []Card `json:"items"`
	Page       int    `json:"page"`
	PerPage    int    `json:"per_page"`
	TotalPages int    `json:"total_pages"`
	Total      int    `json:"total"`
}

// List filters by category, then by a case-insensitive search over title,
// excerpt and category, then pages the result. Pages are 1-based; a page
// past the end is empty.
func List(posts []models.EnrichedPost, q Query) Page {
	if q.PerPage <= 0 {
		q.PerPage = DefaultPerPage
	}
	if q.Page < 1 {
		q.Page = 1
	}
	needle := strings.ToLower(strings.TrimSpace(q.Search))

	matched := []Card{}
	for _, p := range posts {
		c := CardOf(p)
		if q.Category != "" && q.Category != AllCategories && c.Category != q.Category {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(c.Title), needle) &&
			!strings.Contains(strings.ToLower(c.Excerpt), needle) &&
			!strings.Contains(strings.ToLower(c.Category), needle) {
			continue
		}
		matched = append(matched, c)
	}

	out := Page{
		Items:      []Card{},
		Page:       q.Page,
		PerPage:    q.PerPage,
		Total:      len(matched),
		TotalPages: (len(matched) + q.PerPage - 1) / q.PerPage,
	}
	start := (q.Page - 1) * q.PerPage
	if start < len(matched) {
		end := start + q.PerPage
		if end > len(matched) {
			end = len(matched)
		}
		out.Items = matched[start:end]
	}
	return out
}
