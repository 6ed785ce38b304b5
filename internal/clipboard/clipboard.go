// Package clipboard копирует короткие ссылки в буфер обмена.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"
)

// Writer записывает текст в буфер обмена.
type Writer interface {
	WriteText(text string) error
}

// System пишет в системный буфер обмена машины, на которой запущен сервис.
type System struct{}

func (System) WriteText(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard is not supported on this system")
	}
	return clipboard.WriteAll(text)
}

// ClipboardError ошибка копирования. Только логируется.
type ClipboardError struct {
	Err error
}

func (e *ClipboardError) Error() string {
	return fmt.Sprintf("failed to copy short URL: %v", e.Err)
}

func (e *ClipboardError) Unwrap() error {
	return e.Err
}

// Copier копирует ссылки и проглатывает ошибки, записывая их в журнал.
type Copier struct {
	Writer Writer
	Logger *zap.Logger
}

func NewCopier(w Writer, logger *zap.Logger) *Copier {
	return &Copier{Writer: w, Logger: logger}
}

// Copy копирует shortURL. Пустая ссылка игнорируется.
func (c *Copier) Copy(shortURL string) {
	if shortURL == "" {
		return
	}
	if err := c.Writer.WriteText(shortURL); err != nil {
		c.Logger.Error("Failed to copy short URL", zap.Error(&ClipboardError{Err: err}))
		return
	}
	c.Logger.Info("Short URL copied to clipboard", zap.String("shortUrl", shortURL))
}
