package models

import (
	"time"
)

type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Excerpt   *string   `json:"excerpt"`
	Image     *string   `json:"image,omitempty"`
	Category  *string   `json:"category,omitempty"`
	AuthorID  string    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Profile struct {
	FullName *string `json:"full_name"`
	Email    string  `json:"email"`
}

// EnrichedPost is a Post joined with its author's profile. Profiles is nil
// when the author record no longer exists.
type EnrichedPost struct {
	Post
	Profiles *Profile `json:"profiles,omitempty"`
}

type NewPost struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Excerpt  *string `json:"excerpt,omitempty"`
	Image    *string `json:"image,omitempty"`
	Category *string `json:"category,omitempty"`
	AuthorID string  `json:"author_id"`
}

// PostPatch lists the fields an update may touch. Nil Title/Content and unset
// optionals leave the stored value as it is.
type PostPatch struct {
	Title    *string          `json:"title,omitempty"`
	Content  *string          `json:"content,omitempty"`
	Excerpt  Optional[string] `json:"excerpt"`
	Image    Optional[string] `json:"image"`
	Category Optional[string] `json:"category"`
}

// Apply merges the patch over p. UpdatedAt is left to the caller.
func (pp PostPatch) Apply(p *Post) {
	if pp.Title != nil {
		p.Title = *pp.Title
	}
	if pp.Content != nil {
		p.Content = *pp.Content
	}
	pp.Excerpt.ApplyTo(&p.Excerpt)
	pp.Image.ApplyTo(&p.Image)
	pp.Category.ApplyTo(&p.Category)
}

func (pp PostPatch) Empty() bool {
	return pp.Title == nil && pp.Content == nil &&
		!pp.Excerpt.IsSet() && !pp.Image.IsSet() && !pp.Category.IsSet()
}

func StringPtr(s string) *string { return &s }
