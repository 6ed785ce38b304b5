package handlers

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Totarae/shortlink-demo/internal/auth"
	"github.com/Totarae/shortlink-demo/internal/clipboard"
	"github.com/Totarae/shortlink-demo/internal/model"
	"github.com/Totarae/shortlink-demo/internal/resolver"
	"github.com/Totarae/shortlink-demo/internal/service"
	"github.com/Totarae/shortlink-demo/internal/validator"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pages = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// defaultValidity значение поля срока действия в пустой форме, в минутах
const defaultValidity = "30"

// MsgSubmissionInProgress показывается при повторной отправке формы во время обработки.
const MsgSubmissionInProgress = "A submission is already in progress. Please wait."

// Store данные хранилища, нужные обработчикам
type Store interface {
	Loaded() bool
	Get(shortcode string) (string, bool)
	Len() int
	Ping(ctx context.Context) error
}

// Handler обслуживает страницы и JSON API сервиса.
type Handler struct {
	Store     Store
	Shortener *service.Shortener
	Resolver  *resolver.Resolver
	Copier    *clipboard.Copier
	BaseURL   string
	Logger    *zap.Logger
}

func NewHandler(store Store, shortener *service.Shortener, res *resolver.Resolver, copier *clipboard.Copier, baseURL string, logger *zap.Logger) *Handler {
	return &Handler{
		Store:     store,
		Shortener: shortener,
		Resolver:  res,
		Copier:    copier,
		BaseURL:   baseURL,
		Logger:    logger,
	}
}

type pageData struct {
	Title string
}

type shortenerPage struct {
	pageData
	Form   model.Submission
	Error  string
	Field  string
	Result *model.Mapping
	Busy   bool
}

type statsPage struct {
	pageData
	Count int
}

type redirectorPage struct {
	pageData
	Shortcode string
}

func (h *Handler) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		h.Logger.Error("Failed to render page", zap.String("page", name), zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// RequireLoaded отдаёт страницу загрузки, пока хранилище не прочитано.
func (h *Handler) RequireLoaded(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.Store.Loaded() {
			h.renderLoading(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) renderLoading(w http.ResponseWriter) {
	w.Header().Set("Retry-After", "1")
	h.render(w, http.StatusServiceUnavailable, "loading", pageData{Title: "Loading..."})
}

func sessionID(r *http.Request) string {
	if id, ok := auth.SessionIDFromContext(r.Context()); ok {
		return id
	}
	return r.RemoteAddr
}

// ShortenerPage показывает пустую форму.
func (h *Handler) ShortenerPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "shortener", shortenerPage{
		pageData: pageData{Title: "Shorten Your URL"},
		Form:     model.Submission{ValidityPeriod: defaultValidity},
		Busy:     h.Shortener.Busy(sessionID(r)),
	})
}

// SubmitForm обрабатывает отправку формы. Введённые значения сохраняются при любой ошибке.
func (h *Handler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	form := model.Submission{
		LongURL:            r.PostForm.Get("longUrl"),
		UseCustomValidity:  r.PostForm.Get("useCustomValidity") != "",
		ValidityPeriod:     r.PostForm.Get("validityPeriod"),
		UseCustomShortcode: r.PostForm.Get("useCustomShortcode") != "",
		CustomShortcode:    r.PostForm.Get("customShortcode"),
	}
	page := shortenerPage{
		pageData: pageData{Title: "Shorten Your URL"},
		Form:     form,
	}

	mapping, err := h.Shortener.Shorten(r.Context(), sessionID(r), form)
	status := http.StatusOK
	if err != nil {
		var verr *validator.ValidationError
		switch {
		case errors.As(err, &verr):
			status = http.StatusBadRequest
			page.Error, page.Field = verr.Message, verr.Field
		case errors.Is(err, service.ErrSubmissionInProgress):
			status = http.StatusConflict
			page.Error, page.Busy = MsgSubmissionInProgress, true
		default:
			status = http.StatusInternalServerError
			page.Error = service.MsgBackendFailure
		}
	}
	page.Result = mapping

	h.render(w, status, "shortener", page)
}

// StatsPage страница-заглушка статистики.
func (h *Handler) StatsPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "stats", statsPage{
		pageData: pageData{Title: "URL Shortener Statistics"},
		Count:    h.Store.Len(),
	})
}

// ResponseURL перенаправляет по короткому коду.
func (h *Handler) ResponseURL(w http.ResponseWriter, r *http.Request) {
	h.redirect(w, r, chi.URLParam(r, "shortcode"))
}

// InvalidShortcode обрабатывает пути, которые не являются одним сегментом.
func (h *Handler) InvalidShortcode(w http.ResponseWriter, r *http.Request) {
	h.redirect(w, r, "")
}

func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, shortcode string) {
	outcome := h.Resolver.Resolve(shortcode)

	switch outcome.State {
	case resolver.StateLoading:
		h.renderLoading(w)
	case resolver.StateRedirected:
		// 307 заменяет текущую запись истории, к редиректору вернуться нельзя
		http.Redirect(w, r, outcome.Target, http.StatusTemporaryRedirect)
	case resolver.StateNotFound:
		http.Redirect(w, r, outcome.Target, http.StatusFound)
	default:
		h.render(w, http.StatusNotFound, "redirector", redirectorPage{
			pageData:  pageData{Title: "Invalid Shortcode"},
			Shortcode: outcome.Shortcode,
		})
	}
}
