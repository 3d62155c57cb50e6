package question

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/examly-api/internal/config"
)

type Handler struct {
	service QuestionService
}

func NewHandler(s QuestionService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateQuestionDTO
	if err := config.DecodeJSON(r, &dto); err != nil {
		config.WriteError(w, r, err)
		return
	}

	q, err := h.service.Create(r.Context(), dto)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	config.JSON(w, http.StatusCreated, q)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := Filter{
		Subject:    r.URL.Query().Get("subject"),
		Difficulty: Difficulty(r.URL.Query().Get("difficulty")),
	}

	questions, err := h.service.List(r.Context(), filter)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	config.JSON(w, http.StatusOK, questions)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	q, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	config.JSON(w, http.StatusOK, q)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var dto UpdateQuestionDTO
	if err := config.DecodeJSON(r, &dto); err != nil {
		config.WriteError(w, r, err)
		return
	}

	q, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	config.JSON(w, http.StatusOK, q)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		config.WriteError(w, r, err)
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{
		"message": "question deleted successfully",
	})
}

func (h *Handler) Subjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.service.Subjects(r.Context())
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	config.JSON(w, http.StatusOK, subjects)
}
