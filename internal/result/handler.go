package result

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/examly-api/internal/config"
)

type Handler struct {
	service ResultService
}

func NewHandler(s ResultService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var dto SubmitDTO
	if err := config.DecodeJSON(r, &dto); err != nil {
		config.WriteError(w, r, err)
		return
	}

	res, err := h.service.Submit(r.Context(), dto)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	config.JSON(w, http.StatusCreated, res)
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	results, err := h.service.ListMine(r.Context())
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	config.JSON(w, http.StatusOK, results)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	config.JSON(w, http.StatusOK, res)
}

func (h *Handler) ListByExam(w http.ResponseWriter, r *http.Request) {
	results, err := h.service.ListByExam(r.Context(), chi.URLParam(r, "examId"))
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	config.JSON(w, http.StatusOK, results)
}

func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	results, err := h.service.ListAll(r.Context())
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	config.JSON(w, http.StatusOK, results)
}
