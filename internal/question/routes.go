package question

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/examly-api/internal/auth"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(auth.Require(auth.OpQuestionManage))

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/subjects", h.Subjects)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	return r
}
