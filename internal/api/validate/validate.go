package validate

import (
	"net/mail"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/baharkarakas/inkwell/internal/models"
)

type ErrField struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

type Errs []ErrField

func (e Errs) Error() string { // error interface
	var b strings.Builder
	for i, ef := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ef.Field + ": " + ef.Msg)
	}
	return b.String()
}

// Helpers
func Required(field, value string) *ErrField {
	if strings.TrimSpace(value) == "" {
		return &ErrField{Field: field, Msg: "required"}
	}
	return nil
}

func MaxLen(field, value string, max int) *ErrField {
	if utf8.RuneCountInString(strings.TrimSpace(value)) > max {
		return &ErrField{Field: field, Msg: "must be at most " + strconv.Itoa(max) + " characters"}
	}
	return nil
}

func MinLen(field, value string, min int) *ErrField {
	if utf8.RuneCountInString(value) < min {
		return &ErrField{Field: field, Msg: "must be at least " + strconv.Itoa(min) + " characters"}
	}
	return nil
}

func Email(field, value string) *ErrField {
	a, err := mail.ParseAddress(value)
	if err != nil || a.Address != value {
		return &ErrField{Field: field, Msg: "invalid email address"}
	}
	return nil
}

func collect(checks ...*ErrField) error {
	var out Errs
	for _, c := range checks {
		if c != nil {
			out = append(out, *c)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Post checks a new post the way the editor form does.
func Post(in models.NewPost) error {
	return collect(
		Required("title", in.Title),
		MaxLen("title", in.Title, 200),
		MaxLen("excerpt", deref(in.Excerpt), 300),
		Required("content", in.Content),
		MaxLen("content", in.Content, 10000),
		Required("category", deref(in.Category)),
		Required("image", deref(in.Image)),
	)
}

// Patch applies the same limits to the fields an update sets. Category may
// not be cleared; image may, since existing posts can predate the rule.
func Patch(p models.PostPatch) error {
	var checks []*ErrField
	if p.Title != nil {
		checks = append(checks, Required("title", *p.Title), MaxLen("title", *p.Title, 200))
	}
	if p.Content != nil {
		checks = append(checks, Required("content", *p.Content), MaxLen("content", *p.Content, 10000))
	}
	if v, ok := p.Excerpt.Value(); ok {
		checks = append(checks, MaxLen("excerpt", v, 300))
	}
	if p.Category.IsCleared() {
		checks = append(checks, &ErrField{Field: "category", Msg: "required"})
	} else if v, ok := p.Category.Value(); ok {
		checks = append(checks, Required("category", v))
	}
	return collect(checks...)
}

func Login(email, password string) error {
	return collect(
		Required("email", email),
		Email("email", email),
		Required("password", password),
		MinLen("password", password, 6),
	)
}

func Register(email, password, fullName string) error {
	return collect(
		Required("full_name", fullName),
		MinLen("full_name", strings.TrimSpace(fullName), 2),
		Required("email", email),
		Email("email", email),
		Required("password", password),
		MinLen("password", password, 6),
	)
}
