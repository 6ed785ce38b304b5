package router

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Totarae/shortlink-demo/internal/auth"
	"github.com/Totarae/shortlink-demo/internal/handlers"
	"github.com/Totarae/shortlink-demo/internal/middleware"
)

// NewRouter создаёт и настраивает маршрутизатор
func NewRouter(handler *handlers.Handler, sessions *auth.Sessions, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.LoggingMiddleware(logger)) // Подключаем логирование
	r.Use(chimw.Recoverer)
	r.Use(middleware.GzipMiddleware) // Gzip-сжатие
	r.Use(middleware.SessionMiddleware(sessions))

	r.Get("/ping", handler.PingDB)

	r.Route("/api", func(r chi.Router) {
		r.Use(handler.RequireLoadedAPI)
		r.Post("/shorten", handler.ReceiveShorten)
		r.Get("/mappings/{shortcode}", handler.LookupMapping)
		r.Post("/copy/{shortcode}", handler.CopyShortURL)
		r.Get("/stats", handler.Stats)
	})

	r.Group(func(r chi.Router) {
		r.Use(handler.RequireLoaded)
		r.Get("/", handler.ShortenerPage)
		r.Post("/", handler.SubmitForm)
		r.Get("/stats", handler.StatsPage)
	})

	// редиректор сам показывает состояние загрузки
	r.Get("/{shortcode}", handler.ResponseURL)
	r.NotFound(handler.InvalidShortcode)

	return r
}
