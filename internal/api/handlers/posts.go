package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/baharkarakas/inkwell/internal/api/httpx"
	"github.com/baharkarakas/inkwell/internal/api/validate"
	"github.com/baharkarakas/inkwell/internal/apperr"
	"github.com/baharkarakas/inkwell/internal/blog"
	"github.com/baharkarakas/inkwell/internal/middleware"
	"github.com/baharkarakas/inkwell/internal/models"
)

type PostActions interface {
	FetchPosts(ctx context.Context) ([]models.EnrichedPost, error)
	GetPost(ctx context.Context, id string) (models.EnrichedPost, error)
	AddPost(ctx context.Context, in models.NewPost) (models.EnrichedPost, error)
	UpdatePost(ctx context.Context, id string, patch models.PostPatch) (models.EnrichedPost, error)
	DeletePost(ctx context.Context, id string) (string, error)
}

type PostHandler struct {
	svc PostActions
}

func NewPostHandler(svc PostActions) *PostHandler {
	return &PostHandler{svc: svc}
}

// detail is a post plus what the detail page derives from it.
type detail struct {
	models.EnrichedPost
	Slug        string `json:"slug"`
	ReadingTime int    `json:"reading_time"`
	Author      string `json:"author"`
	Initials    string `json:"initials"`
}

func detailOf(p models.EnrichedPost) detail {
	name := blog.AuthorName(p)
	return detail{
		EnrichedPost: p,
		Slug:         blog.Slug(p.Title),
		ReadingTime:  blog.ReadingTime(p.Content),
		Author:       name,
		Initials:     blog.Initials(name),
	}
}

// List serves the public listing: ?category=&q=&page=&per_page=
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.FetchPosts(r.Context())
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	q := r.URL.Query()
	httpx.WriteJSON(w, http.StatusOK, blog.List(posts, blog.Query{
		Category: q.Get("category"),
		Search:   q.Get("q"),
		Page:     atoi(q.Get("page"), 1),
		PerPage:  atoi(q.Get("per_page"), blog.DefaultPerPage),
	}))
}

func (h *PostHandler) Categories(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.FetchPosts(r.Context())
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, blog.Categories(posts))
}

func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetPost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, detailOf(p))
}

func (h *PostHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.FetchPosts(r.Context())
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	p, ok := blog.FindBySlug(posts, chi.URLParam(r, "slug"))
	if !ok {
		httpx.WriteAppError(w, apperr.ErrPostNotFound)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, detailOf(p))
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.FromCtx(r.Context())
	var in models.NewPost
	if err := httpx.DecodeJSON(r.Body, &in); err != nil {
		badRequest(w, err)
		return
	}
	in.AuthorID = u.ID
	if err := validate.Post(in); err != nil {
		invalid(w, err)
		return
	}
	p, err := h.svc.AddPost(r.Context(), in)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, p)
}

func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var patch models.PostPatch
	if err := httpx.DecodeJSON(r.Body, &patch); err != nil {
		badRequest(w, err)
		return
	}
	if err := validate.Patch(patch); err != nil {
		invalid(w, err)
		return
	}
	if err := h.ownPost(r, id); err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	p, err := h.svc.UpdatePost(r.Context(), id, patch)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.ownPost(r, id); err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	deleted, err := h.svc.DeletePost(r.Context(), id)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"id": deleted})
}

// Dashboard lists the caller's own posts, newest first.
func (h *PostHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.FromCtx(r.Context())
	posts, err := h.svc.FetchPosts(r.Context())
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, blog.MyPosts(posts, u.ID))
}

// ownPost restricts edits over HTTP to the post's author. The repository
// itself does not check ownership.
func (h *PostHandler) ownPost(r *http.Request, id string) error {
	u, _ := middleware.FromCtx(r.Context())
	p, err := h.svc.GetPost(r.Context(), id)
	if err != nil {
		return err
	}
	if p.AuthorID != u.ID {
		return apperr.ErrNotPostAuthor
	}
	return nil
}

func atoi(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}
