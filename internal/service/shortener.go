//go:generate mockgen -destination=mocks/mock_submitter.go -package=mocks github.com/Totarae/shortlink-demo/internal/service Submitter

package service

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Totarae/shortlink-demo/internal/model"
	"github.com/Totarae/shortlink-demo/internal/util"
	"github.com/Totarae/shortlink-demo/internal/validator"
)

// ExpiryLayout формат отображения срока действия.
const ExpiryLayout = "1/2/2006, 3:04:05 PM"

// MsgBackendFailure показывается пользователю при сбое отправки.
const MsgBackendFailure = "Failed to shorten URL. Please try again later."

// ErrSubmissionInProgress возвращается, если в сессии уже выполняется отправка.
var ErrSubmissionInProgress = errors.New("submission already in progress")

// SimulatedBackendError оборачивает любой сбой шага отправки.
type SimulatedBackendError struct {
	Err error
}

func (e *SimulatedBackendError) Error() string {
	return MsgBackendFailure
}

func (e *SimulatedBackendError) Unwrap() error {
	return e.Err
}

// Submitter создаёт короткую ссылку для уже проверенной формы.
type Submitter interface {
	Submit(ctx context.Context, sub model.Submission) (*model.Mapping, error)
}

// MappingWriter сохраняет соответствие shortcode -> URL.
type MappingWriter interface {
	Put(ctx context.Context, shortcode, url string) error
}

// SimulatedBackend имитирует сетевой вызов фиксированной задержкой.
type SimulatedBackend struct {
	Store   MappingWriter
	Delay   time.Duration
	BaseURL string
	Logger  *zap.Logger
	Now     func() time.Time
}

func NewSimulatedBackend(store MappingWriter, delay time.Duration, baseURL string, logger *zap.Logger) *SimulatedBackend {
	return &SimulatedBackend{
		Store:   store,
		Delay:   delay,
		BaseURL: baseURL,
		Logger:  logger,
		Now:     time.Now,
	}
}

// Submit ждёт Delay и записывает ссылку. Отмена контекста не прерывает начатую отправку.
func (b *SimulatedBackend) Submit(ctx context.Context, sub model.Submission) (*model.Mapping, error) {
	if b.Delay > 0 {
		time.Sleep(b.Delay)
	}

	shortcode := util.ResolveShortcode(sub.UseCustomShortcode, sub.CustomShortcode)
	expiry := model.ExpiryNever
	if sub.UseCustomValidity {
		minutes, _ := validator.ParseValidity(sub.ValidityPeriod)
		expiry = FormatExpiry(b.Now(), minutes)
	}

	if err := b.Store.Put(context.WithoutCancel(ctx), shortcode, sub.LongURL); err != nil {
		return nil, err
	}
	b.Logger.Debug("Simulated submission committed", zap.String("shortcode", shortcode), zap.String("expiry", expiry))

	return &model.Mapping{
		Shortcode:     shortcode,
		OriginalURL:   sub.LongURL,
		ShortURL:      util.BuildShortURL(b.BaseURL, shortcode),
		ExpiryDisplay: expiry,
	}, nil
}

// FormatExpiry возвращает момент now+minutes в локальном формате.
func FormatExpiry(now time.Time, minutes float64) string {
	d := time.Duration(math.MaxInt64)
	if ns := minutes * float64(time.Minute); ns < float64(math.MaxInt64) {
		d = time.Duration(ns)
	}
	return now.Add(d).Format(ExpiryLayout)
}

// Shortener проверяет форму и передаёт её в Submitter, не допуская
// параллельных отправок в рамках одной сессии.
type Shortener struct {
	Submitter Submitter
	Logger    *zap.Logger

	busy sync.Map
}

func NewShortener(submitter Submitter, logger *zap.Logger) *Shortener {
	return &Shortener{
		Submitter: submitter,
		Logger:    logger,
	}
}

// Shorten возвращает *validator.ValidationError, ErrSubmissionInProgress
// или *SimulatedBackendError при неудаче.
func (s *Shortener) Shorten(ctx context.Context, sessionID string, sub model.Submission) (*model.Mapping, error) {
	if _, inFlight := s.busy.LoadOrStore(sessionID, struct{}{}); inFlight {
		s.Logger.Warn("Submission rejected, previous one still in progress", zap.String("session", sessionID))
		return nil, ErrSubmissionInProgress
	}
	defer s.busy.Delete(sessionID)

	s.Logger.Info("Attempting to shorten URL", zap.String("session", sessionID))

	if verr := validator.Validate(sub); verr != nil {
		s.Logger.Warn("Validation failed",
			zap.String("field", verr.Field),
			zap.String("reason", verr.Message),
			zap.String("url", sub.LongURL),
		)
		return nil, verr
	}

	s.Logger.Info("Validation passed",
		zap.String("url", sub.LongURL),
		zap.Bool("useCustomValidity", sub.UseCustomValidity),
		zap.String("validityPeriod", sub.ValidityPeriod),
		zap.Bool("useCustomShortcode", sub.UseCustomShortcode),
		zap.String("customShortcode", sub.CustomShortcode),
	)

	mapping, err := s.Submitter.Submit(ctx, sub)
	if err != nil {
		s.Logger.Error("Simulated API call failed", zap.Error(err))
		return nil, &SimulatedBackendError{Err: err}
	}

	s.Logger.Info("URL shortened successfully (simulated)", zap.String("shortUrl", mapping.ShortURL))
	return mapping, nil
}

// Busy сообщает, выполняется ли сейчас отправка в сессии.
func (s *Shortener) Busy(sessionID string) bool {
	_, ok := s.busy.Load(sessionID)
	return ok
}
