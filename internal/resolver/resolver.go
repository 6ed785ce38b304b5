// Package resolver превращает короткий код в результат навигации.
package resolver

import (
	"go.uber.org/zap"
)

// HomePath страница отправки формы, куда ведёт неизвестный код.
const HomePath = "/"

// State состояние разрешения кода.
type State string

const (
	StateLoading    State = "loading"
	StateResolving  State = "resolving"
	StateRedirected State = "redirected"
	StateNotFound   State = "not_found"
	StateEmpty      State = "empty"
)

// Terminal сообщает, что из состояния больше нет переходов.
func (s State) Terminal() bool {
	return s == StateRedirected || s == StateNotFound || s == StateEmpty
}

// Outcome результат разрешения. Target заполнен для redirected и not_found.
type Outcome struct {
	State     State
	Shortcode string
	Target    string
}

// Start возвращает начальное состояние для кода.
func Start(shortcode string) Outcome {
	return Outcome{State: StateLoading, Shortcode: shortcode}
}

// Step выполняет один переход. Пока хранилище не загружено, поиск не выполняется.
func Step(o Outcome, mappings map[string]string, loaded bool) Outcome {
	switch o.State {
	case StateLoading:
		if !loaded {
			return o
		}
		if o.Shortcode == "" {
			return Outcome{State: StateEmpty}
		}
		return Outcome{State: StateResolving, Shortcode: o.Shortcode}
	case StateResolving:
		if target := mappings[o.Shortcode]; target != "" {
			return Outcome{State: StateRedirected, Shortcode: o.Shortcode, Target: target}
		}
		return Outcome{State: StateNotFound, Shortcode: o.Shortcode, Target: HomePath}
	default:
		return o
	}
}

// Resolve прогоняет переходы до конечного состояния или до loading.
// Функция без побочных эффектов: повторный вызов даёт тот же результат.
func Resolve(shortcode string, mappings map[string]string, loaded bool) Outcome {
	o := Start(shortcode)
	for {
		next := Step(o, mappings, loaded)
		if next == o {
			return o
		}
		o = next
	}
}

// Source источник таблицы ссылок.
type Source interface {
	Loaded() bool
	Snapshot() map[string]string
}

// Resolver разрешает коды по текущему снимку хранилища и пишет журнал.
type Resolver struct {
	Source Source
	Logger *zap.Logger
}

func New(source Source, logger *zap.Logger) *Resolver {
	return &Resolver{Source: source, Logger: logger}
}

func (r *Resolver) Resolve(shortcode string) Outcome {
	if !r.Source.Loaded() {
		return Start(shortcode)
	}

	r.Logger.Info("Attempting to resolve shortcode", zap.String("shortcode", shortcode))
	o := Resolve(shortcode, r.Source.Snapshot(), true)

	switch o.State {
	case StateRedirected:
		r.Logger.Info("Redirecting shortcode to original URL",
			zap.String("shortcode", shortcode),
			zap.String("originalUrl", o.Target),
		)
	case StateNotFound:
		r.Logger.Warn("Shortcode not found in mappings", zap.String("shortcode", shortcode))
	}
	return o
}
