package exam

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/examly-api/internal/auth"
	"github.com/saulo-duarte/examly-api/internal/config"
)

type Handler struct {
	service ExamService
}

func NewHandler(s ExamService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateExamDTO
	if err := config.DecodeJSON(r, &dto); err != nil {
		config.WriteError(w, r, err)
		return
	}

	e, err := h.service.Create(r.Context(), dto)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	config.JSON(w, http.StatusCreated, e)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	exams, err := h.service.List(r.Context())
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	config.JSON(w, http.StatusOK, exams)
}

func (h *Handler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	exams, err := h.service.ListAvailable(r.Context())
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	config.JSON(w, http.StatusOK, exams)
}

// Get answers admins with the full exam and students with the gated,
// answer-free view.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	id := chi.URLParam(r, "id")
	if claims.IsAdmin() {
		e, err := h.service.GetForAdmin(r.Context(), id)
		if err != nil {
			config.WriteError(w, r, err)
			return
		}
		config.JSON(w, http.StatusOK, e)
		return
	}

	view, err := h.service.GetForStudent(r.Context(), id)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, view)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var dto UpdateExamDTO
	if err := config.DecodeJSON(r, &dto); err != nil {
		config.WriteError(w, r, err)
		return
	}

	e, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	config.JSON(w, http.StatusOK, e)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		config.WriteError(w, r, err)
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{
		"message": "exam deleted successfully",
	})
}
