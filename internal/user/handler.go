package user

import (
	"net/http"
	"time"

	"github.com/saulo-duarte/examly-api/internal/auth"
	"github.com/saulo-duarte/examly-api/internal/config"
)

type Handler struct {
	service  UserService
	sessions *auth.Handler
}

func NewHandler(service UserService, sessions *auth.Handler) *Handler {
	return &Handler{service: service, sessions: sessions}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if err := config.DecodeJSON(r, &dto); err != nil {
		config.WriteError(w, r, err)
		return
	}

	resp, err := h.service.Register(r.Context(), dto)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	h.setCookie(w, resp)
	config.JSON(w, http.StatusCreated, resp)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := config.DecodeJSON(r, &dto); err != nil {
		config.WriteError(w, r, err)
		return
	}

	resp, err := h.service.Login(r.Context(), dto)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	h.setCookie(w, resp)
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.GetCurrent(r.Context())
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) setCookie(w http.ResponseWriter, resp *AuthResponse) {
	if h.sessions == nil {
		return
	}
	h.sessions.SetSessionCookie(w, resp.Token, time.Duration(resp.ExpiresIn)*time.Second)
}
