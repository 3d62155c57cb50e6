package result

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/examly-api/internal/auth"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.With(auth.Require(auth.OpResultSubmit)).Post("/submit", h.Submit)
	r.With(auth.Require(auth.OpResultListOwn)).Get("/my-results", h.ListMine)
	r.With(auth.Require(auth.OpResultListAll)).Get("/all", h.ListAll)
	r.With(auth.Require(auth.OpResultListByExam)).Get("/exam/{examId}", h.ListByExam)
	r.With(auth.Require(auth.OpResultRead)).Get("/{id}", h.Get)
	return r
}
