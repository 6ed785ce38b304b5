package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Totarae/shortlink-demo/internal/model"
	"github.com/Totarae/shortlink-demo/internal/service"
	"github.com/Totarae/shortlink-demo/internal/util"
	"github.com/Totarae/shortlink-demo/internal/validator"
)

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Logger.Error("Failed to encode response", zap.Error(err))
	}
}

// RequireLoadedAPI отвечает 503, пока хранилище не прочитано.
func (h *Handler) RequireLoadedAPI(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.Store.Loaded() {
			w.Header().Set("Retry-After", "1")
			h.writeJSON(w, http.StatusServiceUnavailable, model.ErrorResponse{Error: "mappings are still loading"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ReceiveShorten создаёт короткую ссылку из JSON-запроса.
func (h *Handler) ReceiveShorten(w http.ResponseWriter, r *http.Request) {
	var req model.ShortenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "invalid request body"})
		return
	}

	mapping, err := h.Shortener.Shorten(r.Context(), sessionID(r), req.Submission())
	if err != nil {
		var verr *validator.ValidationError
		switch {
		case errors.As(err, &verr):
			h.writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: verr.Message, Field: verr.Field})
		case errors.Is(err, service.ErrSubmissionInProgress):
			h.writeJSON(w, http.StatusConflict, model.ErrorResponse{Error: MsgSubmissionInProgress})
		default:
			h.writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{Error: service.MsgBackendFailure})
		}
		return
	}

	h.writeJSON(w, http.StatusCreated, mapping)
}

// LookupMapping возвращает оригинальный URL по коду.
func (h *Handler) LookupMapping(w http.ResponseWriter, r *http.Request) {
	shortcode := chi.URLParam(r, "shortcode")
	original, ok := h.Store.Get(shortcode)
	if !ok {
		h.writeJSON(w, http.StatusNotFound, model.ErrorResponse{Error: "shortcode not found"})
		return
	}
	h.writeJSON(w, http.StatusOK, model.LookupResponse{Shortcode: shortcode, OriginalURL: original})
}

// CopyShortURL копирует короткую ссылку в буфер обмена. Ошибки только логируются.
func (h *Handler) CopyShortURL(w http.ResponseWriter, r *http.Request) {
	shortcode := chi.URLParam(r, "shortcode")
	if _, ok := h.Store.Get(shortcode); ok {
		h.Copier.Copy(util.BuildShortURL(h.BaseURL, shortcode))
	}
	w.WriteHeader(http.StatusNoContent)
}

// Stats возвращает количество сохранённых ссылок.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, model.StatsResponse{URLs: h.Store.Len()})
}

// PingDB проверяет доступность хранилища
func (h *Handler) PingDB(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Ping(r.Context()); err != nil {
		h.Logger.Error("Storage ping failed", zap.Error(err))
		http.Error(w, "storage unavailable", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}
