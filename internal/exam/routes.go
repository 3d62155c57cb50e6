package exam

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/examly-api/internal/auth"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.With(auth.Require(auth.OpExamManage)).Post("/", h.Create)
	r.With(auth.Require(auth.OpExamListAll)).Get("/", h.List)
	r.With(auth.Require(auth.OpExamListAvailable)).Get("/available", h.ListAvailable)
	r.With(auth.Require(auth.OpExamRead)).Get("/{id}", h.Get)
	r.With(auth.Require(auth.OpExamManage)).Put("/{id}", h.Update)
	r.With(auth.Require(auth.OpExamManage)).Delete("/{id}", h.Delete)
	return r
}
