package user

import (
	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/examly-api/internal/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.With(auth.Require(auth.OpProfileRead)).Get("/me", h.GetUser)
	return r
}
