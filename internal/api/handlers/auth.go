package handlers

import (
	"context"
	"net/http"

	"github.com/baharkarakas/inkwell/internal/api/httpx"
	"github.com/baharkarakas/inkwell/internal/api/validate"
	"github.com/baharkarakas/inkwell/internal/middleware"
	"github.com/baharkarakas/inkwell/internal/models"
)

type AuthActions interface {
	Login(ctx context.Context, email, password string) (models.Session, error)
	Register(ctx context.Context, email, password, fullName string) (models.Session, error)
}

type AuthHandler struct {
	svc AuthActions
}

func NewAuthHandler(svc AuthActions) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerReq struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password,omitempty"`
	FullName        string `json:"full_name"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		badRequest(w, err)
		return
	}
	if err := validate.Login(req.Email, req.Password); err != nil {
		invalid(w, err)
		return
	}
	sess, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sess)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		badRequest(w, err)
		return
	}
	err := validate.Register(req.Email, req.Password, req.FullName)
	if err == nil && req.ConfirmPassword != "" && req.ConfirmPassword != req.Password {
		err = validate.Errs{{Field: "confirm_password", Msg: "passwords must match"}}
	}
	if err != nil {
		invalid(w, err)
		return
	}
	sess, err := h.svc.Register(r.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, sess)
}

// Me echoes the user resolved by the auth middleware.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.FromCtx(r.Context())
	httpx.WriteJSON(w, http.StatusOK, u)
}

func badRequest(w http.ResponseWriter, err error) {
	httpx.WriteError(w, http.StatusBadRequest, "bad_request", err.Error(), nil)
}

func invalid(w http.ResponseWriter, err error) {
	httpx.WriteError(w, http.StatusBadRequest, "validation", "validation failed", err)
}
